package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const (
	formatYAML  = "yaml"
	formatJSON  = "json"
	formatTable = "table"
)

func validateFormat(format string) error {
	switch format {
	case formatYAML, formatJSON, formatTable:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want yaml, json or table)", format)
	}
}

// encode renders v as yaml or json; table output is handled by callers.
func encode(format string, v interface{}) ([]byte, error) {
	switch format {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	}
}

func write(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

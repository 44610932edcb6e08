package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEnvFrom(t *testing.T) {
	t.Parallel()

	e, err := ParseEnvFrom(map[string]string{
		"TRYON_CONFIG":    "/etc/tryon.yaml",
		"TRYON_LOG_HUMAN": "true",
		"TRYON_STRICT":    "1",
	})
	require.NoError(t, err)
	require.Equal(t, Env{ConfigPath: "/etc/tryon.yaml", LogLevel: "info", LogHuman: true, Strict: true}, e)
}

func TestParseEnvFromRejectsBadBool(t *testing.T) {
	t.Parallel()

	_, err := ParseEnvFrom(map[string]string{"TRYON_STRICT": "maybe"})
	require.Error(t, err)
}

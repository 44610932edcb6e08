// Package catalog turns product attribute records into the typed option lists
// presented by the selection controllers. Catalog retrieval itself happens
// elsewhere; everything here is pure.
package catalog

import (
	"fmt"
	"strings"
)

// AttributeKind is the closed set of product attribute codes the try-on flow
// reads. Raw attribute codes are validated into a kind once, at the boundary.
type AttributeKind string

const (
	AttrHexacode    AttributeKind = "hexacode"
	AttrTexture     AttributeKind = "texture"
	AttrFabric      AttributeKind = "fabric"
	AttrColorFamily AttributeKind = "color"
	AttrPattern     AttributeKind = "pattern"
	AttrShape       AttributeKind = "shape"
)

var attributeKinds = []AttributeKind{
	AttrHexacode,
	AttrTexture,
	AttrFabric,
	AttrColorFamily,
	AttrPattern,
	AttrShape,
}

// ParseAttributeKind validates a raw attribute code.
func ParseAttributeKind(code string) (AttributeKind, error) {
	normalized := AttributeKind(strings.ToLower(strings.TrimSpace(code)))
	for _, kind := range attributeKinds {
		if kind == normalized {
			return kind, nil
		}
	}
	return "", fmt.Errorf("unknown attribute code %q", code)
}

// Attribute is one custom attribute record of a product.
type Attribute struct {
	Code  string `yaml:"attribute_code" json:"attribute_code" validate:"required"`
	Value string `yaml:"value" json:"value"`
}

// Product is the subset of a catalog product the selection layer consumes.
type Product struct {
	ID               int         `yaml:"id" json:"id"`
	SKU              string      `yaml:"sku" json:"sku" validate:"required"`
	Name             string      `yaml:"name" json:"name" validate:"required"`
	CustomAttributes []Attribute `yaml:"custom_attributes" json:"custom_attributes" validate:"dive"`
}

// Attribute returns the first value recorded for kind.
func (p Product) Attribute(kind AttributeKind) (string, bool) {
	for _, attr := range p.CustomAttributes {
		if strings.EqualFold(attr.Code, string(kind)) {
			return attr.Value, true
		}
	}
	return "", false
}

// ExtractAttributes collects the values recorded for kind across products,
// removing duplicates and keeping first-seen order.
func ExtractAttributes(products []Product, kind AttributeKind) []string {
	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, product := range products {
		for _, attr := range product.CustomAttributes {
			if !strings.EqualFold(attr.Code, string(kind)) {
				continue
			}
			if _, ok := seen[attr.Value]; ok {
				continue
			}
			seen[attr.Value] = struct{}{}
			values = append(values, attr.Value)
		}
	}
	return values
}

// SplitTokens splits comma-delimited multi-value tokens into individual
// tokens, trimming whitespace and dropping empties and repeats.
func SplitTokens(values []string) []string {
	seen := make(map[string]struct{})
	tokens := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			token := strings.TrimSpace(part)
			if token == "" {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// FilterByFamily returns the products whose color family matches family. An
// empty family returns every product.
func FilterByFamily(products []Product, family string) []Product {
	if family == "" {
		return append([]Product(nil), products...)
	}
	filtered := make([]Product, 0, len(products))
	for _, product := range products {
		value, ok := product.Attribute(AttrColorFamily)
		if !ok {
			continue
		}
		for _, token := range SplitTokens([]string{value}) {
			if token == family {
				filtered = append(filtered, product)
				break
			}
		}
	}
	return filtered
}

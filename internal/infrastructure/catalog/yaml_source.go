// Package catalog provides product sources backed by local YAML fixtures.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	cfgpkg "github.com/unveels/tryon/internal/config"
	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/ports"
	apperrors "github.com/unveels/tryon/pkg/errors"
)

// Document is the on-disk fixture layout: product cards grouped by category id.
type Document struct {
	Products map[string][]catalog.Product `yaml:"products" validate:"required,min=1,dive,keys,category_id,endkeys,dive"`
}

// YAMLSource serves products parsed from a fixture document.
type YAMLSource struct {
	logger     ports.Logger
	categories map[string][]catalog.Product
}

var _ ports.ProductSource = (*YAMLSource)(nil)

// LoadYAML reads and validates a fixture file.
func LoadYAML(path string, logger ports.Logger) (*YAMLSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewParseError(path, 0, err)
	}
	return ParseYAML(path, data, logger)
}

// ParseYAML decodes and validates fixture data. source names the document in errors.
func ParseYAML(source string, data []byte, logger ports.Logger) (*YAMLSource, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewParseError(source, cfgpkg.ExtractLine(err), err)
	}
	if err := cfgpkg.GetValidator().Struct(doc); err != nil {
		return nil, convertValidationError(err)
	}

	for category, products := range doc.Products {
		seen := make(map[string]struct{}, len(products))
		for i, product := range products {
			if _, dup := seen[product.SKU]; dup {
				return nil, apperrors.NewValidationError(fmt.Sprintf("products.%s[%d].sku", category, i), fmt.Sprintf("duplicate sku %q", product.SKU), nil)
			}
			seen[product.SKU] = struct{}{}
		}
	}

	return NewStaticSource(doc.Products, logger), nil
}

// NewStaticSource wraps an in-memory product table.
func NewStaticSource(products map[string][]catalog.Product, logger ports.Logger) *YAMLSource {
	categories := make(map[string][]catalog.Product, len(products))
	for category, list := range products {
		categories[category] = append([]catalog.Product(nil), list...)
	}
	return &YAMLSource{logger: logger, categories: categories}
}

// Categories lists the category ids that have products, sorted.
func (s *YAMLSource) Categories() []string {
	ids := make([]string, 0, len(s.categories))
	for id := range s.categories {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Products returns the product cards of category in fixture order.
func (s *YAMLSource) Products(ctx context.Context, category string) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	products, ok := s.categories[category]
	if !ok {
		return nil, apperrors.NewNotFoundError("category", category)
	}
	if s.logger != nil {
		s.logger.Debug(ctx, "products listed", "category", category, "count", len(products))
	}
	return append([]catalog.Product(nil), products...), nil
}

// Product looks up one product card by SKU. An empty SKU selects the first
// product of the category.
func (s *YAMLSource) Product(ctx context.Context, category, sku string) (catalog.Product, error) {
	products, err := s.Products(ctx, category)
	if err != nil {
		return catalog.Product{}, err
	}
	if sku == "" && len(products) > 0 {
		return products[0], nil
	}
	for _, product := range products {
		if product.SKU == sku {
			return product, nil
		}
	}
	return catalog.Product{}, apperrors.NewNotFoundError("product", sku)
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		return apperrors.NewValidationError(ve.Namespace(), fmt.Sprintf("%s failed validation for tag '%s'", ve.Namespace(), ve.Tag()), err)
	}
	return apperrors.NewValidationError("products", err.Error(), err)
}

package ports

import (
	"context"

	"github.com/unveels/tryon/internal/domain/catalog"
	"github.com/unveels/tryon/internal/domain/render"
)

// ProductSource supplies the product cards shown for a category. Retrieval
// is external to the selection layer; implementations adapt whatever backs it.
type ProductSource interface {
	Products(ctx context.Context, category string) ([]catalog.Product, error)
	Product(ctx context.Context, category, sku string) (catalog.Product, error)
}

// RenderEngine is the push-only command surface of the AR renderer.
type RenderEngine = render.Engine

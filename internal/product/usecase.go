package product

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/product/dto"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error)
	GetProduct(ctx context.Context, id string) (*model.Product, error)
	ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	BulkDeleteProducts(ctx context.Context, ids []string) (int64, error)

	BulkUpload(ctx context.Context, rows []sheet.Row) (*model.BulkResult, error)
	Stats(ctx context.Context) (*model.ProductStats, error)
}

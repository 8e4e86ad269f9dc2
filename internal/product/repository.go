package product

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/product/dto"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	BulkCreate(ctx context.Context, products []model.Product) (int, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
	Update(ctx context.Context, product *model.Product) error
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)

	// Master lookup
	FindByProductName(ctx context.Context, name string) (*model.Product, error)
	FindByKey(ctx context.Context, key model.ProductKey) (*model.Product, error)

	Stats(ctx context.Context, highValue decimal.Decimal) (*model.ProductStats, error)
	Search(ctx context.Context, query string, limit int) ([]model.Product, error)
	Recent(ctx context.Context, limit int) ([]model.Activity, error)
}

package calculation

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
)

type Repository interface {
	FindByID(ctx context.Context, id string) (*model.PriceCalculation, error)
	FindAll(ctx context.Context, withExcel bool) ([]model.PriceCalculation, error)
	Create(ctx context.Context, calc *model.PriceCalculation, withExcel bool) error
	Update(ctx context.Context, calc *model.PriceCalculation, withExcel bool) error
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)

	// BulkCreate inserts every calculation in one transaction; any failure
	// rolls back the whole batch.
	BulkCreate(ctx context.Context, calcs []model.PriceCalculation, withExcel bool) (int, error)

	// HasExcelCapacityColumns reports whether the optional sheet capacity
	// columns exist in the current schema.
	HasExcelCapacityColumns(ctx context.Context) (bool, error)
}

// MasterLookup resolves a product name against the masters. A miss is
// (nil, nil).
type MasterLookup interface {
	FindProduct(ctx context.Context, productName string) (*model.Product, error)
	FindSparePart(ctx context.Context, productName string) (*model.SparePart, error)
}

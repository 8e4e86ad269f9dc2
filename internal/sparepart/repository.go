package sparepart

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart/dto"
)

type Repository interface {
	Create(ctx context.Context, part *model.SparePart) error
	BulkCreate(ctx context.Context, parts []model.SparePart) (int, error)
	FindByID(ctx context.Context, id string) (*model.SparePart, error)
	FindAll(ctx context.Context, filters *dto.SparePartFilters) ([]model.SparePart, int, error)
	Update(ctx context.Context, part *model.SparePart) error
	Delete(ctx context.Context, id string) error
	BulkDelete(ctx context.Context, ids []string) (int64, error)

	// Master lookup
	FindByProductName(ctx context.Context, name string) (*model.SparePart, error)
	FindByKey(ctx context.Context, key model.ProductKey) (*model.SparePart, error)

	Count(ctx context.Context) (int, error)
	Search(ctx context.Context, query string, limit int) ([]model.SparePart, error)
	Recent(ctx context.Context, limit int) ([]model.Activity, error)
}

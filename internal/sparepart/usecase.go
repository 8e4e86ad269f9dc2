package sparepart

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart/dto"
)

type UseCase interface {
	CreateSparePart(ctx context.Context, input *dto.SparePartInput) (*model.SparePart, error)
	GetSparePart(ctx context.Context, id string) (*model.SparePart, error)
	ListSpareParts(ctx context.Context, filters *dto.SparePartFilters) ([]model.SparePart, int, error)
	UpdateSparePart(ctx context.Context, id string, input *dto.SparePartInput) (*model.SparePart, error)
	DeleteSparePart(ctx context.Context, id string) error
	BulkDeleteSpareParts(ctx context.Context, ids []string) (int64, error)

	BulkUpload(ctx context.Context, rows []sheet.Row) (*model.BulkResult, error)
}

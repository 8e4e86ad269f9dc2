package calculation

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/calculation/dto"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
)

type UseCase interface {
	Lookup(ctx context.Context, productName string) (*dto.LookupResult, error)
	Calculate(ctx context.Context, input *dto.CalculationInput) (*model.PriceCalculation, error)

	CreateCalculation(ctx context.Context, input *dto.CalculationInput) (*model.PriceCalculation, error)
	GetCalculation(ctx context.Context, id string) (*model.PriceCalculation, error)
	ListCalculations(ctx context.Context) ([]model.PriceCalculation, error)
	UpdateCalculation(ctx context.Context, id string, input *dto.CalculationInput) (*model.PriceCalculation, error)
	DeleteCalculation(ctx context.Context, id string) error
	BulkDeleteCalculations(ctx context.Context, ids []string) (int64, error)

	// Reconcile turns sheet rows into calculations without storing them.
	Reconcile(ctx context.Context, rows []sheet.Row) (*model.ReconcileResult, error)
	BulkUpload(ctx context.Context, rows []sheet.Row) (*model.BulkResult, error)
}

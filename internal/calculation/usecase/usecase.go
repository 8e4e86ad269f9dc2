package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-pricing-service/internal/calculation"
	"github.com/fekuna/omnipos-pricing-service/internal/calculation/dto"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/pricing"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type calculationUseCase struct {
	repo    calculation.Repository
	masters calculation.MasterLookup
	workers int
	logger  logger.ZapLogger
}

func NewCalculationUseCase(
	repo calculation.Repository,
	masters calculation.MasterLookup,
	workers int,
	log logger.ZapLogger,
) calculation.UseCase {
	return &calculationUseCase{
		repo:    repo,
		masters: masters,
		workers: max(workers, 1),
		logger:  log,
	}
}

func (uc *calculationUseCase) Lookup(ctx context.Context, productName string) (*dto.LookupResult, error) {
	product, part, err := uc.findMasters(ctx, productName)
	if err != nil {
		return nil, err
	}
	return &dto.LookupResult{Product: product, SparePart: part}, nil
}

// Calculate prices one unit against the current masters without storing it.
func (uc *calculationUseCase) Calculate(ctx context.Context, input *dto.CalculationInput) (*model.PriceCalculation, error) {
	v := model.Violations{}
	if strings.TrimSpace(input.ProductName) == "" {
		v["product_name"] = "required"
	}
	for c := range input.Statuses {
		if !c.Valid() {
			v["statuses."+string(c)] = "unknown_component"
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	product, part, err := uc.findMasters(ctx, input.ProductName)
	if err != nil {
		return nil, err
	}

	calc := &model.PriceCalculation{
		ProductName:      strings.TrimSpace(input.ProductName),
		TagNo:            model.StringPtr(input.TagNo),
		Grade:            model.StringPtr(input.Grade),
		LotNumber:        model.StringPtr(input.LotNumber),
		ExcelRAMCapacity: model.StringPtr(input.ExcelRAMCapacity),
		ExcelHDD:         model.StringPtr(input.ExcelHDD),
		ExcelSSD:         model.StringPtr(input.ExcelSSD),
	}
	applyMasters(calc, product, nil)
	pricing.Price(calc, pricing.Assessment(input.Statuses), product, part)
	return calc, nil
}

func (uc *calculationUseCase) CreateCalculation(ctx context.Context, input *dto.CalculationInput) (*model.PriceCalculation, error) {
	calc, err := uc.Calculate(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	calc.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}

	withExcel := uc.excelColumns(ctx)
	if !withExcel {
		calc.StripExcelCapacity()
	}
	if err := uc.repo.Create(ctx, calc, withExcel); err != nil {
		return nil, fmt.Errorf("create price calculation: %w", err)
	}
	return calc, nil
}

func (uc *calculationUseCase) GetCalculation(ctx context.Context, id string) (*model.PriceCalculation, error) {
	calc, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if calc == nil {
		return nil, model.ErrCalculationNotFound
	}
	return calc, nil
}

func (uc *calculationUseCase) ListCalculations(ctx context.Context) ([]model.PriceCalculation, error) {
	return uc.repo.FindAll(ctx, uc.excelColumns(ctx))
}

// UpdateCalculation re-prices the record against the masters as they are now.
func (uc *calculationUseCase) UpdateCalculation(ctx context.Context, id string, input *dto.CalculationInput) (*model.PriceCalculation, error) {
	existing, err := uc.GetCalculation(ctx, id)
	if err != nil {
		return nil, err
	}

	calc, err := uc.Calculate(ctx, input)
	if err != nil {
		return nil, err
	}
	calc.BaseModel = model.BaseModel{ID: existing.ID, CreatedAt: existing.CreatedAt, UpdatedAt: time.Now()}

	withExcel := uc.excelColumns(ctx)
	if !withExcel {
		calc.StripExcelCapacity()
	}
	if err := uc.repo.Update(ctx, calc, withExcel); err != nil {
		return nil, fmt.Errorf("update price calculation: %w", err)
	}
	return calc, nil
}

func (uc *calculationUseCase) DeleteCalculation(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete price calculation: %w", err)
	}
	return nil
}

func (uc *calculationUseCase) BulkDeleteCalculations(ctx context.Context, ids []string) (int64, error) {
	n, err := uc.repo.BulkDelete(ctx, lo.Uniq(lo.Compact(ids)))
	if err != nil {
		return 0, fmt.Errorf("bulk delete price calculations: %w", err)
	}
	return n, nil
}

func (uc *calculationUseCase) findMasters(ctx context.Context, productName string) (*model.Product, *model.SparePart, error) {
	product, err := uc.masters.FindProduct(ctx, productName)
	if err != nil {
		return nil, nil, fmt.Errorf("product lookup: %w", err)
	}
	part, err := uc.masters.FindSparePart(ctx, productName)
	if err != nil {
		return nil, nil, fmt.Errorf("spare part lookup: %w", err)
	}
	return product, part, nil
}

// excelColumns treats a failed schema probe as "columns absent".
func (uc *calculationUseCase) excelColumns(ctx context.Context) bool {
	ok, err := uc.repo.HasExcelCapacityColumns(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			uc.logger.Warn("excel capacity column check failed", zap.Error(err))
		}
		return false
	}
	return ok
}

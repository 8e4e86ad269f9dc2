package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-pricing-service/internal/lookup"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/search"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart/dto"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const sparePartMapping = `{
	"mappings": {
		"properties": {
			"make": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"model_number": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"cpu": { "type": "text" },
			"generation": { "type": "text" },
			"product_name": { "type": "text" },
			"created_at": { "type": "date" }
		}
	}
}`

const invalidateWait = 5 * time.Second

type sparePartUseCase struct {
	repo    sparepart.Repository
	es      *search.Client
	lookups lookup.Invalidator
	logger  logger.ZapLogger

	indexOnce sync.Once
}

func NewSparePartUseCase(repo sparepart.Repository, es *search.Client, lookups lookup.Invalidator, log logger.ZapLogger) sparepart.UseCase {
	return &sparePartUseCase{
		repo:    repo,
		es:      es,
		lookups: lookups,
		logger:  log,
	}
}

func (uc *sparePartUseCase) CreateSparePart(ctx context.Context, input *dto.SparePartInput) (*model.SparePart, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	now := time.Now()
	p := fromInput(input)
	p.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create spare part: %w", err)
	}

	uc.afterWrite(ctx, p)
	return p, nil
}

func (uc *sparePartUseCase) GetSparePart(ctx context.Context, id string) (*model.SparePart, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrSparePartNotFound
	}
	return p, nil
}

func (uc *sparePartUseCase) ListSpareParts(ctx context.Context, filters *dto.SparePartFilters) ([]model.SparePart, int, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *sparePartUseCase) UpdateSparePart(ctx context.Context, id string, input *dto.SparePartInput) (*model.SparePart, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	existing, err := uc.GetSparePart(ctx, id)
	if err != nil {
		return nil, err
	}

	p := fromInput(input)
	p.BaseModel = model.BaseModel{ID: existing.ID, CreatedAt: existing.CreatedAt, UpdatedAt: time.Now()}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update spare part: %w", err)
	}

	uc.afterWrite(ctx, p)
	return p, nil
}

func (uc *sparePartUseCase) DeleteSparePart(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete spare part: %w", err)
	}
	uc.afterDelete(ctx, id)
	return nil
}

func (uc *sparePartUseCase) BulkDeleteSpareParts(ctx context.Context, ids []string) (int64, error) {
	ids = lo.Uniq(lo.Compact(ids))
	n, err := uc.repo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete spare parts: %w", err)
	}
	uc.afterDelete(ctx, ids...)
	return n, nil
}

// BulkUpload imports sheet rows. Unparsable prices are stored as unknown.
func (uc *sparePartUseCase) BulkUpload(ctx context.Context, rows []sheet.Row) (*model.BulkResult, error) {
	now := time.Now()
	parts := make([]model.SparePart, 0, len(rows))
	for _, row := range rows {
		input := inputFromRow(row)
		if input.Make == "" || input.ModelNumber == "" {
			continue
		}
		if err := validate(input); err != nil {
			uc.logger.Debug("skipping invalid spare part row", zap.String("make", input.Make), zap.Error(err))
			continue
		}

		p := fromInput(input)
		p.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
		parts = append(parts, *p)
	}

	if len(parts) == 0 {
		return nil, model.ErrNoValidMasterRows
	}

	n, err := uc.repo.BulkCreate(ctx, parts)
	if err != nil {
		return nil, fmt.Errorf("bulk create spare parts: %w", err)
	}
	uc.logger.Info("bulk uploaded spare parts", zap.Int("count", n), zap.Int("rejected", len(rows)-len(parts)))

	uc.invalidateLookups(ctx)
	if uc.es != nil {
		go uc.indexBatch(context.Background(), parts)
	}

	return &model.BulkResult{Count: n, RejectedCount: len(rows) - len(parts)}, nil
}

func (uc *sparePartUseCase) afterWrite(ctx context.Context, p *model.SparePart) {
	uc.invalidateLookups(ctx)
	if uc.es != nil {
		go uc.syncToElastic(context.Background(), p)
	}
}

func (uc *sparePartUseCase) afterDelete(ctx context.Context, ids ...string) {
	uc.invalidateLookups(ctx)
	if uc.es == nil {
		return
	}
	go func() {
		for _, id := range ids {
			if err := uc.es.Delete(context.Background(), model.SparePartIndex, id); err != nil {
				uc.logger.Error("failed to remove spare part from index", zap.String("id", id), zap.Error(err))
			}
		}
	}()
}

func (uc *sparePartUseCase) invalidateLookups(ctx context.Context) {
	if uc.lookups == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateWait)
	defer cancel()
	if err := uc.lookups.Invalidate(ctx, lookup.SparePartKind); err != nil {
		uc.logger.Error("failed to invalidate spare part lookup cache", zap.Error(err))
	}
}

func (uc *sparePartUseCase) ensureIndex(ctx context.Context) {
	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, model.SparePartIndex, sparePartMapping); err != nil {
			uc.logger.Error("failed to create spare part index", zap.Error(err))
		}
	})
}

func (uc *sparePartUseCase) syncToElastic(ctx context.Context, p *model.SparePart) {
	uc.ensureIndex(ctx)
	if err := uc.es.Index(ctx, model.SparePartIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index spare part", zap.String("id", p.ID), zap.Error(err))
	}
}

func (uc *sparePartUseCase) indexBatch(ctx context.Context, parts []model.SparePart) {
	uc.ensureIndex(ctx)
	docs := lo.Map(parts, func(p model.SparePart, _ int) search.Document {
		return search.Document{ID: p.ID, Body: p}
	})
	if err := uc.es.BulkIndex(ctx, model.SparePartIndex, docs); err != nil {
		uc.logger.Error("failed to index uploaded spare parts", zap.Int("count", len(docs)), zap.Error(err))
	}
}

func validate(input *dto.SparePartInput) error {
	v := model.Violations{}
	model.ValidateName("make", input.Make, v)
	model.ValidateName("model_number", input.ModelNumber, v)
	for name, price := range input.Prices {
		if !model.Component(name).Valid() {
			v["prices."+name] = "unknown_component"
			continue
		}
		model.ValidateNullPrice("prices."+name, price, v)
	}
	return v.Err()
}

func fromInput(input *dto.SparePartInput) *model.SparePart {
	p := &model.SparePart{
		Make:        strings.TrimSpace(input.Make),
		ModelNumber: strings.TrimSpace(input.ModelNumber),
		CPU:         model.StringPtr(input.CPU),
		Generation:  model.StringPtr(input.Generation),
		ProductName: model.StringPtr(input.ProductName),
	}
	for _, c := range model.Components {
		price := input.Prices[string(c)]
		if price.Valid {
			price.Decimal = price.Decimal.Round(2)
		}
		p.SetPrice(c, price)
	}
	if p.ProductName == nil {
		name := p.Key().String()
		p.ProductName = &name
	}
	return p
}

func inputFromRow(row sheet.Row) *dto.SparePartInput {
	prices := make(map[string]decimal.NullDecimal, len(model.Components))
	for _, c := range model.Components {
		if price := row.NullDecimal(string(c)); price.Valid {
			prices[string(c)] = price
		}
	}

	return &dto.SparePartInput{
		Make:        row.String("make"),
		ModelNumber: row.String("modelNumber"),
		CPU:         row.String("cpu"),
		Generation:  row.String("generation", "gen"),
		ProductName: row.String("productName"),
		Prices:      prices,
	}
}

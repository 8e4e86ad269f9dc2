package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fekuna/omnipos-pricing-service/internal/lookup"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/search"
	"github.com/fekuna/omnipos-pricing-service/internal/product"
	"github.com/fekuna/omnipos-pricing-service/internal/product/dto"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	listCachePattern = "products:list:*"
	listCacheTTL     = 5 * time.Minute
	invalidateWait   = 5 * time.Second
)

const productMapping = `{
	"mappings": {
		"properties": {
			"make": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"model_number": { "type": "text", "fields": { "keyword": { "type": "keyword" } } },
			"cpu": { "type": "text" },
			"generation": { "type": "text" },
			"product_name": { "type": "text" },
			"sale_price": { "type": "double" },
			"created_at": { "type": "date" }
		}
	}
}`

type productUseCase struct {
	repo      product.Repository
	cache     *cache.RedisClient
	es        *search.Client
	lookups   lookup.Invalidator
	highValue decimal.Decimal
	logger    logger.ZapLogger

	indexOnce sync.Once
}

func NewProductUseCase(
	repo product.Repository,
	cache *cache.RedisClient,
	es *search.Client,
	lookups lookup.Invalidator,
	highValue decimal.Decimal,
	log logger.ZapLogger,
) product.UseCase {
	return &productUseCase{
		repo:      repo,
		cache:     cache,
		es:        es,
		lookups:   lookups,
		highValue: highValue,
		logger:    log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	now := time.Now()
	p := fromInput(input)
	p.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}

	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	uc.afterWrite(ctx, p)
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, model.ErrProductNotFound
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var result cachedList
			if err := json.Unmarshal(val, &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		if data, err := json.Marshal(cachedList{Products: products, Count: count}); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%x", md5.Sum(data)), nil
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, id string, input *dto.ProductInput) (*model.Product, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	existing, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	p := fromInput(input)
	p.BaseModel = model.BaseModel{ID: existing.ID, CreatedAt: existing.CreatedAt, UpdatedAt: time.Now()}

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	uc.afterWrite(ctx, p)
	return p, nil
}

func (uc *productUseCase) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*model.Product, error) {
	v := model.Violations{}
	model.ValidatePrice("sale_price", price, v)
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdatePrice(ctx, id, price); err != nil {
		return nil, fmt.Errorf("update product price: %w", err)
	}

	p, err := uc.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.afterWrite(ctx, p)
	return p, nil
}

func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	uc.afterDelete(ctx, id)
	return nil
}

func (uc *productUseCase) BulkDeleteProducts(ctx context.Context, ids []string) (int64, error) {
	ids = lo.Uniq(lo.Compact(ids))
	n, err := uc.repo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete products: %w", err)
	}
	uc.afterDelete(ctx, ids...)
	return n, nil
}

// BulkUpload imports sheet rows. Rows without make and model number, or
// failing validation, are skipped and counted as rejected.
func (uc *productUseCase) BulkUpload(ctx context.Context, rows []sheet.Row) (*model.BulkResult, error) {
	now := time.Now()
	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		input := inputFromRow(row)
		if input.Make == "" || input.ModelNumber == "" {
			continue
		}
		if err := validate(input); err != nil {
			uc.logger.Debug("skipping invalid product row", zap.String("make", input.Make), zap.Error(err))
			continue
		}

		p := fromInput(input)
		p.BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
		products = append(products, *p)
	}

	if len(products) == 0 {
		return nil, model.ErrNoValidMasterRows
	}

	n, err := uc.repo.BulkCreate(ctx, products)
	if err != nil {
		return nil, fmt.Errorf("bulk create products: %w", err)
	}
	uc.logger.Info("bulk uploaded products", zap.Int("count", n), zap.Int("rejected", len(rows)-len(products)))

	uc.invalidateCaches(ctx)
	if uc.es != nil {
		go uc.indexBatch(context.Background(), products)
	}

	return &model.BulkResult{Count: n, RejectedCount: len(rows) - len(products)}, nil
}

func (uc *productUseCase) Stats(ctx context.Context) (*model.ProductStats, error) {
	return uc.repo.Stats(ctx, uc.highValue)
}

// afterWrite runs once a master write has committed. Cached lookups are
// dropped before it returns; search indexing happens in the background.
func (uc *productUseCase) afterWrite(ctx context.Context, p *model.Product) {
	uc.invalidateCaches(ctx)
	if uc.es != nil {
		go uc.syncToElastic(context.Background(), p)
	}
}

func (uc *productUseCase) afterDelete(ctx context.Context, ids ...string) {
	uc.invalidateCaches(ctx)
	if uc.es == nil {
		return
	}
	go func() {
		for _, id := range ids {
			if err := uc.es.Delete(context.Background(), model.ProductIndex, id); err != nil {
				uc.logger.Error("failed to remove product from index", zap.String("id", id), zap.Error(err))
			}
		}
	}()
}

// invalidateCaches ignores cancellation of ctx; the write it follows has
// already committed.
func (uc *productUseCase) invalidateCaches(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), invalidateWait)
	defer cancel()

	if uc.lookups != nil {
		if err := uc.lookups.Invalidate(ctx, lookup.ProductKind); err != nil {
			uc.logger.Error("failed to invalidate product lookup cache", zap.Error(err))
		}
	}
	if uc.cache != nil {
		if err := uc.cache.DeletePattern(ctx, listCachePattern); err != nil {
			uc.logger.Error("failed to invalidate product list cache", zap.Error(err))
		}
	}
}

func (uc *productUseCase) ensureIndex(ctx context.Context) {
	uc.indexOnce.Do(func() {
		if err := uc.es.CreateIndex(ctx, model.ProductIndex, productMapping); err != nil {
			uc.logger.Error("failed to create product index", zap.Error(err))
		}
	})
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	uc.ensureIndex(ctx)
	if err := uc.es.Index(ctx, model.ProductIndex, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) indexBatch(ctx context.Context, products []model.Product) {
	uc.ensureIndex(ctx)
	docs := lo.Map(products, func(p model.Product, _ int) search.Document {
		return search.Document{ID: p.ID, Body: p}
	})
	if err := uc.es.BulkIndex(ctx, model.ProductIndex, docs); err != nil {
		uc.logger.Error("failed to index uploaded products", zap.Int("count", len(docs)), zap.Error(err))
	}
}

func validate(input *dto.ProductInput) error {
	v := model.Violations{}
	model.ValidateName("make", input.Make, v)
	model.ValidateName("model_number", input.ModelNumber, v)
	model.ValidatePrice("sale_price", input.SalePrice, v)
	return v.Err()
}

func fromInput(input *dto.ProductInput) *model.Product {
	p := &model.Product{
		Make:        strings.TrimSpace(input.Make),
		ModelNumber: strings.TrimSpace(input.ModelNumber),
		CPU:         model.StringPtr(input.CPU),
		Generation:  model.StringPtr(input.Generation),
		ProductName: model.StringPtr(input.ProductName),
		RAM:         model.StringPtr(input.RAM),
		SSD:         model.StringPtr(input.SSD),
		HDD:         model.StringPtr(input.HDD),
		SalePrice:   input.SalePrice.Round(2),
	}
	if p.ProductName == nil {
		name := p.Key().String()
		p.ProductName = &name
	}
	return p
}

func inputFromRow(row sheet.Row) *dto.ProductInput {
	return &dto.ProductInput{
		Make:        row.String("make"),
		ModelNumber: row.String("modelNumber"),
		CPU:         row.String("cpu"),
		Generation:  row.String("generation", "gen"),
		ProductName: row.String("productName"),
		RAM:         row.String("ram"),
		SSD:         row.String("ssd"),
		HDD:         row.String("hdd"),
		SalePrice:   row.Decimal("salePrice"),
	}
}

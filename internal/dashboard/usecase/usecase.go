package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/fekuna/omnipos-pricing-service/internal/dashboard"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/product"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	MinQueryLength = 2
	SearchLimit    = 20
	RecentLimit    = 5
)

var searchFields = []string{"make", "model_number", "product_name", "cpu", "generation"}

type dashboardUseCase struct {
	products   product.Repository
	spareParts sparepart.Repository
	searcher   dashboard.Searcher
	highValue  decimal.Decimal
	logger     logger.ZapLogger
}

// NewDashboardUseCase builds the dashboard. searcher may be nil, in which case
// Search goes straight to the database.
func NewDashboardUseCase(
	products product.Repository,
	spareParts sparepart.Repository,
	searcher dashboard.Searcher,
	highValue decimal.Decimal,
	log logger.ZapLogger,
) dashboard.UseCase {
	return &dashboardUseCase{
		products:   products,
		spareParts: spareParts,
		searcher:   searcher,
		highValue:  highValue,
		logger:     log,
	}
}

func (uc *dashboardUseCase) Overview(ctx context.Context) (*model.Dashboard, error) {
	var (
		stats          *model.ProductStats
		partCount      int
		recentProducts []model.Activity
		recentParts    []model.Activity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = uc.products.Stats(gctx, uc.highValue)
		return err
	})
	g.Go(func() (err error) {
		partCount, err = uc.spareParts.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		recentProducts, err = uc.products.Recent(gctx, RecentLimit)
		return err
	})
	g.Go(func() (err error) {
		recentParts, err = uc.spareParts.Recent(gctx, RecentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard overview: %w", err)
	}

	recent := append(recentProducts, recentParts...)
	recent = lo.Slice(sortByNewest(recent), 0, RecentLimit)

	return &model.Dashboard{
		Stats: model.DashboardStats{
			TotalProducts:     stats.TotalProducts,
			HighValueProducts: stats.HighValueItems,
			TotalSpareParts:   partCount,
			TotalInventory:    stats.TotalProducts + partCount,
		},
		RecentActivity: recent,
	}, nil
}

// Search looks the term up in both masters. Short terms return nothing. The
// search index is preferred; any index failure falls back to the database.
func (uc *dashboardUseCase) Search(ctx context.Context, query string) (*model.SearchResult, error) {
	query = strings.TrimSpace(query)
	empty := &model.SearchResult{Products: []model.Product{}, SpareParts: []model.SparePart{}}
	if len([]rune(query)) < MinQueryLength {
		return empty, nil
	}

	if uc.searcher != nil {
		res, err := uc.searchIndex(ctx, query)
		if err == nil {
			return res, nil
		}
		uc.logger.Warn("search index unavailable, using database", zap.String("query", query), zap.Error(err))
	}

	var res model.SearchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Products, err = uc.products.Search(gctx, query, SearchLimit)
		return err
	})
	g.Go(func() (err error) {
		res.SpareParts, err = uc.spareParts.Search(gctx, query, SearchLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return &res, nil
}

func (uc *dashboardUseCase) searchIndex(ctx context.Context, query string) (*model.SearchResult, error) {
	body := map[string]any{
		"size": SearchLimit,
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  query,
				"type":   "phrase_prefix",
				"fields": searchFields,
			},
		},
	}

	var res model.SearchResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.Products, err = searchHits[model.Product](gctx, uc.searcher, model.ProductIndex, body)
		return err
	})
	g.Go(func() (err error) {
		res.SpareParts, err = searchHits[model.SparePart](gctx, uc.searcher, model.SparePartIndex, body)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &res, nil
}

// sortByNewest orders entries newest first. Ties keep products ahead of spare
// parts.
func sortByNewest(items []model.Activity) []model.Activity {
	slices.SortStableFunc(items, func(a, b model.Activity) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return items
}

func searchHits[T any](ctx context.Context, s dashboard.Searcher, index string, body map[string]any) ([]T, error) {
	resp, err := s.Search(ctx, index, body)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		var doc T
		if err := json.Unmarshal(hit.Source, &doc); err != nil {
			return nil, fmt.Errorf("decode %s hit %s: %w", index, hit.ID, err)
		}
		out = append(out, doc)
	}
	return out, nil
}

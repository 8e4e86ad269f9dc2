package dashboard

import (
	"context"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/search"
)

type UseCase interface {
	Overview(ctx context.Context) (*model.Dashboard, error)
	Search(ctx context.Context, query string) (*model.SearchResult, error)
}

// Searcher is the full-text index used by Search. *search.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, index string, query map[string]any) (*search.SearchResponse, error)
}

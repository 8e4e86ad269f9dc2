// Package lookup resolves a free-text product name against the product and
// spare part masters.
package lookup

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// Master kinds with their own cache generation.
const (
	ProductKind   = "product"
	SparePartKind = "spare_part"
)

// missTTL caps how long a miss is remembered.
const missTTL = 15 * time.Second

type ProductRepository interface {
	FindByProductName(ctx context.Context, name string) (*model.Product, error)
	FindByKey(ctx context.Context, key model.ProductKey) (*model.Product, error)
}

type SparePartRepository interface {
	FindByProductName(ctx context.Context, name string) (*model.SparePart, error)
	FindByKey(ctx context.Context, key model.ProductKey) (*model.SparePart, error)
}

// Store is the key/value cache behind MasterLookup. Get returns
// cache.ErrMiss for an unset key.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// Invalidator drops every cached lookup of one master kind.
type Invalidator interface {
	Invalidate(ctx context.Context, kind string) error
}

// MasterLookup finds masters by product name. A miss is (nil, nil); only
// store failures are returned as errors.
//
// Cache entries are keyed by the kind's generation counter, read before the
// master store is queried. Invalidate bumps the counter, so an entry written
// by a lookup that raced a master write is never read again.
type MasterLookup struct {
	products   ProductRepository
	spareParts SparePartRepository
	cache      Store
	ttl        time.Duration
	logger     logger.ZapLogger
}

func NewMasterLookup(
	products ProductRepository,
	spareParts SparePartRepository,
	cache Store,
	ttl time.Duration,
	log logger.ZapLogger,
) *MasterLookup {
	return &MasterLookup{
		products:   products,
		spareParts: spareParts,
		cache:      cache,
		ttl:        ttl,
		logger:     log,
	}
}

func (l *MasterLookup) FindProduct(ctx context.Context, productName string) (*model.Product, error) {
	return find(ctx, l, ProductKind, productName, l.products.FindByProductName, l.products.FindByKey)
}

func (l *MasterLookup) FindSparePart(ctx context.Context, productName string) (*model.SparePart, error) {
	return find(ctx, l, SparePartKind, productName, l.spareParts.FindByProductName, l.spareParts.FindByKey)
}

// Invalidate starts a new cache generation for kind. Entries of older
// generations expire on their own.
func (l *MasterLookup) Invalidate(ctx context.Context, kind string) error {
	if !l.cacheEnabled() {
		return nil
	}
	if _, err := l.cache.Incr(ctx, generationKey(kind)); err != nil {
		return fmt.Errorf("bump %s lookup generation: %w", kind, err)
	}
	return nil
}

// cached wraps a lookup result so a remembered miss can be told apart from
// an absent cache entry.
type cached[T any] struct {
	Found bool `json:"found"`
	Value *T   `json:"value,omitempty"`
}

func find[T any](
	ctx context.Context,
	l *MasterLookup,
	kind, productName string,
	byName func(context.Context, string) (*T, error),
	byKey func(context.Context, model.ProductKey) (*T, error),
) (*T, error) {
	name := strings.TrimSpace(productName)
	if name == "" {
		return nil, nil
	}

	key, ok := l.entryKey(ctx, kind, name)
	if ok {
		if hit, ok := readCache[T](ctx, l, key); ok {
			return hit.Value, nil
		}
	}

	v, err := byName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find by product name: %w", err)
	}
	if v == nil {
		if parsed, ok := model.ParseProductName(name); ok {
			v, err = byKey(ctx, parsed)
			if err != nil {
				return nil, fmt.Errorf("find by key: %w", err)
			}
		}
	}

	if ok {
		writeCache(ctx, l, key, cached[T]{Found: v != nil, Value: v})
	}
	return v, nil
}

func (l *MasterLookup) cacheEnabled() bool {
	return l.cache != nil && l.ttl > 0
}

func generationKey(kind string) string {
	return "lookup:" + kind + ":gen"
}

// entryKey builds the cache key under the current generation of kind. It
// reports false when the cache is off or the generation cannot be read.
func (l *MasterLookup) entryKey(ctx context.Context, kind, name string) (string, bool) {
	if !l.cacheEnabled() {
		return "", false
	}

	var gen int64
	val, err := l.cache.Get(ctx, generationKey(kind))
	switch {
	case errors.Is(err, cache.ErrMiss):
	case err != nil:
		l.logger.Warn("lookup cache generation read failed", zap.String("kind", kind), zap.Error(err))
		return "", false
	default:
		if gen, err = strconv.ParseInt(string(val), 10, 64); err != nil {
			l.logger.Warn("lookup cache generation is not a number", zap.String("kind", kind), zap.ByteString("value", val))
			return "", false
		}
	}

	return fmt.Sprintf("lookup:%s:%d:%x", kind, gen, md5.Sum([]byte(strings.ToLower(name)))), true
}

func (l *MasterLookup) ttlFor(found bool) time.Duration {
	if !found && missTTL < l.ttl {
		return missTTL
	}
	return l.ttl
}

func readCache[T any](ctx context.Context, l *MasterLookup, key string) (cached[T], bool) {
	var out cached[T]
	val, err := l.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			l.logger.Warn("lookup cache read failed", zap.String("key", key), zap.Error(err))
		}
		return out, false
	}
	if err := json.Unmarshal(val, &out); err != nil {
		return out, false
	}
	return out, true
}

func writeCache[T any](ctx context.Context, l *MasterLookup, key string, v cached[T]) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := l.cache.Set(ctx, key, data, l.ttlFor(v.Found)); err != nil {
		l.logger.Warn("lookup cache write failed", zap.String("key", key), zap.Error(err))
	}
}

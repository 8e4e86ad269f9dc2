package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-pricing-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const insertProduct = `
	INSERT INTO products (
		id, make, model_number, cpu, generation, product_name,
		ram, ssd, hdd, sale_price, created_at, updated_at
	)
	VALUES (
		:id, :make, :model_number, :cpu, :generation, :product_name,
		:ram, :ssd, :hdd, :sale_price, :created_at, :updated_at
	)
`

var searchColumns = []string{"make", "model_number", "product_name", "cpu", "generation"}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	_, err := r.DB.NamedExecContext(ctx, insertProduct, p)
	return err
}

// BulkCreate inserts every product in one transaction.
func (r *PGRepository) BulkCreate(ctx context.Context, products []model.Product) (int, error) {
	if len(products) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	n, err := postgres.NamedInsertBatches(ctx, tx, insertProduct, products, postgres.DefaultBatchSize)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	query := `SELECT * FROM products WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &product, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindByProductName(ctx context.Context, name string) (*model.Product, error) {
	return r.findOne(ctx, postgres.EqualFold("product_name", strings.TrimSpace(name)))
}

// FindByKey matches make and model number case-insensitively. An empty CPU or
// generation only matches rows where that column is NULL.
func (r *PGRepository) FindByKey(ctx context.Context, key model.ProductKey) (*model.Product, error) {
	return r.findOne(ctx, sq.And{
		postgres.EqualFold("make", key.Make),
		postgres.EqualFold("model_number", key.ModelNumber),
		postgres.EqualFoldOrNull("cpu", key.CPU),
		postgres.EqualFoldOrNull("generation", key.Generation),
	})
}

func (r *PGRepository) findOne(ctx context.Context, where sq.Sqlizer) (*model.Product, error) {
	query, args, err := postgres.Builder.
		Select("*").
		From("products").
		Where(where).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := r.DB.GetContext(ctx, &product, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	where := sq.And{}
	if f.SearchQuery != "" {
		where = append(where, postgres.ContainsAny(f.SearchQuery, searchColumns...))
	}

	countQuery, args, err := postgres.Builder.Select("count(*)").From("products").Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	// Whitelisted sort columns only
	orderBy := "created_at"
	switch f.SortBy {
	case "make":
		orderBy = "make"
	case "price":
		orderBy = "sale_price"
	}
	if strings.ToLower(f.SortOrder) == "asc" {
		orderBy += " ASC"
	} else {
		orderBy += " DESC"
	}

	list := postgres.Builder.Select("*").From("products").Where(where).OrderBy(orderBy)
	if f.PageSize > 0 {
		page := max(f.Page, 1)
		list = list.Limit(uint64(f.PageSize)).Offset(uint64((page - 1) * f.PageSize))
	}
	query, args, err := list.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var products []model.Product
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, err
	}
	return products, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET make = :make,
			model_number = :model_number,
			cpu = :cpu,
			generation = :generation,
			product_name = :product_name,
			ram = :ram,
			ssd = :ssd,
			hdd = :hdd,
			sale_price = :sale_price,
			updated_at = :updated_at
		WHERE id = :id
	`
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *PGRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE products SET sale_price = $1, updated_at = NOW() WHERE id = $2`, price, id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *PGRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := postgres.Builder.Delete("products").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) Stats(ctx context.Context, highValue decimal.Decimal) (*model.ProductStats, error) {
	var counts struct {
		Total     int `db:"total"`
		HighValue int `db:"high_value"`
	}
	query := `
		SELECT count(*) AS total,
			count(*) FILTER (WHERE sale_price > $1) AS high_value
		FROM products
	`
	if err := r.DB.GetContext(ctx, &counts, query, highValue); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	stats := &model.ProductStats{
		TotalProducts:  counts.Total,
		HighValueItems: counts.HighValue,
	}

	var top model.Product
	err := r.DB.GetContext(ctx, &top, `SELECT * FROM products ORDER BY sale_price DESC, created_at DESC LIMIT 1`)
	switch {
	case err == nil:
		stats.ExpensiveProduct = &top
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("most expensive product: %w", err)
	}
	return stats, nil
}

func (r *PGRepository) Search(ctx context.Context, term string, limit int) ([]model.Product, error) {
	query, args, err := postgres.Builder.
		Select("*").
		From("products").
		Where(postgres.ContainsAny(term, searchColumns...)).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *PGRepository) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	var items []model.Activity
	query := `SELECT id, make, model_number, created_at FROM products ORDER BY created_at DESC LIMIT $1`
	if err := r.DB.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Type = model.ActivityProduct
	}
	return items, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrProductNotFound
	}
	return nil
}

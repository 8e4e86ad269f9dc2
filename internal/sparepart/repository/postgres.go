package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/postgres"
	"github.com/fekuna/omnipos-pricing-service/internal/sparepart/dto"
	"github.com/jmoiron/sqlx"
)

const insertSparePart = `
	INSERT INTO spare_parts (
		id, make, model_number, cpu, generation, product_name,
		front_panel, panel, screen_non_touch, screen_touch, hinge,
		touch_pad, base, keyboard, battery, created_at, updated_at
	)
	VALUES (
		:id, :make, :model_number, :cpu, :generation, :product_name,
		:front_panel, :panel, :screen_non_touch, :screen_touch, :hinge,
		:touch_pad, :base, :keyboard, :battery, :created_at, :updated_at
	)
`

var searchColumns = []string{"make", "model_number", "product_name", "cpu", "generation"}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.SparePart) error {
	_, err := r.DB.NamedExecContext(ctx, insertSparePart, p)
	return err
}

func (r *PGRepository) BulkCreate(ctx context.Context, parts []model.SparePart) (int, error) {
	if len(parts) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	n, err := postgres.NamedInsertBatches(ctx, tx, insertSparePart, parts, postgres.DefaultBatchSize)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.SparePart, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *PGRepository) FindByProductName(ctx context.Context, name string) (*model.SparePart, error) {
	return r.findOne(ctx, postgres.EqualFold("product_name", strings.TrimSpace(name)))
}

func (r *PGRepository) FindByKey(ctx context.Context, key model.ProductKey) (*model.SparePart, error) {
	return r.findOne(ctx, sq.And{
		postgres.EqualFold("make", key.Make),
		postgres.EqualFold("model_number", key.ModelNumber),
		postgres.EqualFoldOrNull("cpu", key.CPU),
		postgres.EqualFoldOrNull("generation", key.Generation),
	})
}

func (r *PGRepository) findOne(ctx context.Context, where sq.Sqlizer) (*model.SparePart, error) {
	query, args, err := postgres.Builder.
		Select("*").
		From("spare_parts").
		Where(where).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, err
	}

	var part model.SparePart
	if err := r.DB.GetContext(ctx, &part, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &part, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.SparePartFilters) ([]model.SparePart, int, error) {
	where := sq.And{}
	if f.SearchQuery != "" {
		where = append(where, postgres.ContainsAny(f.SearchQuery, searchColumns...))
	}

	countQuery, args, err := postgres.Builder.Select("count(*)").From("spare_parts").Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var count int
	if err := r.DB.GetContext(ctx, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	list := postgres.Builder.Select("*").From("spare_parts").Where(where).OrderBy("created_at DESC")
	if f.PageSize > 0 {
		page := max(f.Page, 1)
		list = list.Limit(uint64(f.PageSize)).Offset(uint64((page - 1) * f.PageSize))
	}
	query, args, err := list.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var parts []model.SparePart
	if err := r.DB.SelectContext(ctx, &parts, query, args...); err != nil {
		return nil, 0, err
	}
	return parts, count, nil
}

func (r *PGRepository) Update(ctx context.Context, p *model.SparePart) error {
	query := `
		UPDATE spare_parts
		SET make = :make,
			model_number = :model_number,
			cpu = :cpu,
			generation = :generation,
			product_name = :product_name,
			front_panel = :front_panel,
			panel = :panel,
			screen_non_touch = :screen_non_touch,
			screen_touch = :screen_touch,
			hinge = :hinge,
			touch_pad = :touch_pad,
			base = :base,
			keyboard = :keyboard,
			battery = :battery,
			updated_at = :updated_at
		WHERE id = :id
	`
	res, err := r.DB.NamedExecContext(ctx, query, p)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM spare_parts WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectRow(res)
}

func (r *PGRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := postgres.Builder.Delete("spare_parts").Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.DB.GetContext(ctx, &n, `SELECT count(*) FROM spare_parts`)
	return n, err
}

func (r *PGRepository) Search(ctx context.Context, term string, limit int) ([]model.SparePart, error) {
	query, args, err := postgres.Builder.
		Select("*").
		From("spare_parts").
		Where(postgres.ContainsAny(term, searchColumns...)).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	parts := []model.SparePart{}
	if err := r.DB.SelectContext(ctx, &parts, query, args...); err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *PGRepository) Recent(ctx context.Context, limit int) ([]model.Activity, error) {
	var items []model.Activity
	query := `SELECT id, make, model_number, created_at FROM spare_parts ORDER BY created_at DESC LIMIT $1`
	if err := r.DB.SelectContext(ctx, &items, query, limit); err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Type = model.ActivitySparePart
	}
	return items, nil
}

func expectRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrSparePartNotFound
	}
	return nil
}

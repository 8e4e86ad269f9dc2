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
	"github.com/jmoiron/sqlx"
)

const table = "price_calculations"

var baseColumns = []string{
	"id", "product_name", "tag_no", "grade", "lot_number",
	"make", "model_number", "cpu", "generation",
	"ram_present", "ram_capacity", "hdd_present", "hdd", "ssd_present", "ssd",
	"front_panel", "front_panel_cost",
	"panel", "panel_cost",
	"screen_non_touch", "screen_non_touch_cost",
	"screen_touch", "screen_touch_cost",
	"hinge", "hinge_cost",
	"touch_pad", "touch_pad_cost",
	"base", "base_cost",
	"keyboard", "keyboard_cost",
	"battery", "battery_cost",
	"repair_cost", "sale_price", "suggested_sale_price",
	"created_at", "updated_at",
}

// ExcelColumns are added by a later migration and may be missing.
var ExcelColumns = []string{"excel_ram_capacity", "excel_hdd", "excel_ssd"}

func columns(withExcel bool) []string {
	if !withExcel {
		return baseColumns
	}
	return append(append([]string{}, baseColumns...), ExcelColumns...)
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func insertQuery(withExcel bool) string {
	cols, vals := postgres.NamedColumns(columns(withExcel))
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, cols, vals)
}

func (r *PGRepository) Create(ctx context.Context, c *model.PriceCalculation, withExcel bool) error {
	_, err := r.DB.NamedExecContext(ctx, insertQuery(withExcel), c)
	return err
}

func (r *PGRepository) BulkCreate(ctx context.Context, calcs []model.PriceCalculation, withExcel bool) (int, error) {
	if len(calcs) == 0 {
		return 0, nil
	}

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	n, err := postgres.NamedInsertBatches(ctx, tx, insertQuery(withExcel), calcs, postgres.DefaultBatchSize)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.PriceCalculation, error) {
	var calc model.PriceCalculation
	err := r.DB.GetContext(ctx, &calc, `SELECT * FROM price_calculations WHERE id = $1 LIMIT 1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &calc, nil
}

func (r *PGRepository) FindAll(ctx context.Context, withExcel bool) ([]model.PriceCalculation, error) {
	query, args, err := postgres.Builder.
		Select(columns(withExcel)...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	calcs := []model.PriceCalculation{}
	if err := r.DB.SelectContext(ctx, &calcs, query, args...); err != nil {
		return nil, err
	}
	return calcs, nil
}

func (r *PGRepository) Update(ctx context.Context, c *model.PriceCalculation, withExcel bool) error {
	sets := make([]string, 0, len(baseColumns)+len(ExcelColumns))
	for _, col := range columns(withExcel) {
		if col == "id" || col == "created_at" {
			continue
		}
		sets = append(sets, col+" = :"+col)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", table, strings.Join(sets, ", "))

	res, err := r.DB.NamedExecContext(ctx, query, c)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrCalculationNotFound
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM price_calculations WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrCalculationNotFound
	}
	return nil
}

func (r *PGRepository) BulkDelete(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query, args, err := postgres.Builder.Delete(table).Where(sq.Eq{"id": ids}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) HasExcelCapacityColumns(ctx context.Context) (bool, error) {
	query, args, err := postgres.Builder.
		Select("count(*)").
		From("information_schema.columns").
		Where(sq.Expr("table_schema = current_schema()")).
		Where(sq.Eq{"table_name": table, "column_name": ExcelColumns}).
		ToSql()
	if err != nil {
		return false, err
	}

	var n int
	if err := r.DB.GetContext(ctx, &n, query, args...); err != nil {
		return false, err
	}
	return n == len(ExcelColumns), nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pricing"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Column spellings accepted for each calculation field, tried in order.
var (
	productNameColumns = []string{"productName", "product name", "product"}
	screenColumns      = []string{"screen", "display"}

	statusColumns = map[model.Component][]string{
		model.ComponentFrontPanel:     {"frontPanel", "front panel", "bazel", "front panel(bazel)"},
		model.ComponentPanel:          {"panel"},
		model.ComponentScreenNonTouch: {"screenNonTouch", "screen non touch"},
		model.ComponentScreenTouch:    {"screenTouch", "screen touch"},
		model.ComponentHinge:          {"hinge"},
		model.ComponentTouchPad:       {"touchPad", "touch pad", "touchpad"},
		model.ComponentBase:           {"base"},
		model.ComponentKeyboard:       {"keyboard"},
		model.ComponentBattery:        {"battery", "batt"},
	}

	ramCapacityColumns = []string{"ramCapacity", "ram capacity", "ramcap", "memory"}
	hddCapacityColumns = []string{"hddCapacity", "hdd capacity", "hddcap", "harddrive", "hard drive"}
	ssdCapacityColumns = []string{"ssdCapacity", "ssd capacity", "ssdcap", "solidstatedrive", "solid state drive"}
)

type masters struct {
	product *model.Product
	part    *model.SparePart
}

// Reconcile prices every row that names a product. Rows are looked up in
// parallel but Admitted keeps input order. A master miss is not a rejection.
func (uc *calculationUseCase) Reconcile(ctx context.Context, rows []sheet.Row) (*model.ReconcileResult, error) {
	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.String(productNameColumns...)
	}

	found := make([]masters, len(rows))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, name := range names {
		if name == "" {
			continue
		}
		g.Go(func() error {
			product, part, err := uc.findMasters(gctx, name)
			if err != nil {
				return fmt.Errorf("row %d: %w", i+1, err)
			}
			found[i] = masters{product: product, part: part}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &model.ReconcileResult{Admitted: make([]model.PriceCalculation, 0, len(rows))}
	for i, row := range rows {
		if names[i] == "" {
			res.RejectedCount++
			continue
		}
		res.Admitted = append(res.Admitted, draft(row, names[i], found[i].product, found[i].part))
	}
	return res, nil
}

// BulkUpload reconciles rows and stores every admitted calculation in one
// batch. The sheet capacity fields are dropped when the schema lacks them.
func (uc *calculationUseCase) BulkUpload(ctx context.Context, rows []sheet.Row) (*model.BulkResult, error) {
	res, err := uc.Reconcile(ctx, rows)
	if err != nil {
		return nil, err
	}
	if len(res.Admitted) == 0 {
		return nil, model.ErrNoValidRows
	}

	withExcel := uc.excelColumns(ctx)
	now := time.Now()
	for i := range res.Admitted {
		res.Admitted[i].BaseModel = model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
		if !withExcel {
			res.Admitted[i].StripExcelCapacity()
		}
	}

	n, err := uc.repo.BulkCreate(ctx, res.Admitted, withExcel)
	if err != nil {
		return nil, fmt.Errorf("bulk create price calculations: %w", err)
	}

	uc.logger.Info("bulk uploaded price calculations",
		zap.Int("count", n),
		zap.Int("rejected", res.RejectedCount),
		zap.Bool("excel_capacity", withExcel),
	)
	return &model.BulkResult{Count: n, RejectedCount: res.RejectedCount}, nil
}

func draft(row sheet.Row, productName string, product *model.Product, part *model.SparePart) model.PriceCalculation {
	calc := model.PriceCalculation{
		ProductName:      productName,
		TagNo:            row.StringPtr("tagNo", "tag no", "tag"),
		Grade:            row.StringPtr("grade"),
		LotNumber:        row.StringPtr("lotNumber", "lot number", "lot no"),
		ExcelRAMCapacity: row.Present(ramCapacityColumns...),
		ExcelHDD:         row.Present(hddCapacityColumns...),
		ExcelSSD:         row.Present(ssdCapacityColumns...),
	}
	applyMasters(&calc, product, row)
	pricing.Price(&calc, assessment(row), product, part)
	return calc
}

// assessment reads the nine statuses. A sheet "screen" or "display" column
// applies to both screens unless a screen-specific column is present.
func assessment(row sheet.Row) pricing.Assessment {
	a := make(pricing.Assessment, len(statusColumns))
	shared := row.String(screenColumns...)
	for c, cols := range statusColumns {
		v, ok := row.Find(cols...)
		switch {
		case ok:
			a[c] = sheet.Stringify(v)
		case c == model.ComponentScreenNonTouch || c == model.ComponentScreenTouch:
			a[c] = shared
		}
	}
	return a
}

// applyMasters copies identity and capacity from the product master. Without
// a master, identity falls back to the row; presence flags never do.
func applyMasters(calc *model.PriceCalculation, product *model.Product, row sheet.Row) {
	var master model.Product
	if product != nil {
		master = *product
	}

	pick := func(fromMaster string, cols ...string) *string {
		if v := model.StringPtr(fromMaster); v != nil {
			return v
		}
		if row == nil {
			return nil
		}
		return row.StringPtr(cols...)
	}

	calc.Make = pick(master.Make, "make")
	calc.ModelNumber = pick(master.ModelNumber, "modelNumber", "model number", "model")
	calc.CPU = pick(deref(master.CPU), "cpu")
	calc.Generation = pick(deref(master.Generation), "generation", "gen")

	calc.RAMCapacity = model.StringPtr(deref(master.RAM))
	calc.HDD = model.StringPtr(deref(master.HDD))
	calc.SSD = model.StringPtr(deref(master.SSD))
	calc.RAMPresent = calc.RAMCapacity != nil
	calc.HDDPresent = calc.HDD != nil
	calc.SSDPresent = calc.SSD != nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

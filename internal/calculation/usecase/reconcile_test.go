package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fekuna/omnipos-pricing-service/internal/calculation/mocks"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/fekuna/omnipos-pricing-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-pricing-service/internal/sheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const dellName = "Dell/Latitude 5420/i5/11th"

type deps struct {
	repo    *mocks.MockRepository
	masters *mocks.MockMasterLookup
}

func newDeps(t *testing.T) deps {
	return deps{
		repo:    mocks.NewMockRepository(t),
		masters: mocks.NewMockMasterLookup(t),
	}
}

func (d deps) useCase(workers int) *calculationUseCase {
	return NewCalculationUseCase(d.repo, d.masters, workers, logger.NewNop()).(*calculationUseCase)
}

func dellProduct() *model.Product {
	cpu, gen, ram, ssd := "i5", "11th", "8GB", "256GB"
	return &model.Product{
		Make:        "Dell",
		ModelNumber: "Latitude 5420",
		CPU:         &cpu,
		Generation:  &gen,
		RAM:         &ram,
		SSD:         &ssd,
		SalePrice:   decimal.NewFromInt(30000),
	}
}

func dellPart() *model.SparePart {
	return &model.SparePart{
		Make:        "Dell",
		ModelNumber: "Latitude 5420",
		FrontPanel:  decimal.NewNullDecimal(decimal.NewFromInt(1500)),
		Battery:     decimal.NewNullDecimal(decimal.NewFromInt(900)),
		ScreenTouch: decimal.NewNullDecimal(decimal.NewFromInt(4000)),
	}
}

func expectMasters(d deps, name string, product *model.Product, part *model.SparePart) {
	d.masters.On("FindProduct", mock.Anything, name).Return(product, nil).Once()
	d.masters.On("FindSparePart", mock.Anything, name).Return(part, nil).Once()
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name   string
		rows   []sheet.Row
		setup  func(d deps)
		assert func(t *testing.T, res *model.ReconcileResult, err error)
	}

	tests := []testCase{
		{
			name: "defective front panel is charged at master price",
			rows: []sheet.Row{{"Product Name": dellName, "Front Panel": "broken"}},
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Len(t, res.Admitted, 1)
				assert.Zero(t, res.RejectedCount)

				calc := res.Admitted[0]
				assert.Equal(t, dellName, calc.ProductName)
				assert.Equal(t, "broken", calc.FrontPanel)
				assert.True(t, decimal.NewFromInt(1500).Equal(calc.FrontPanelCost))
				assert.True(t, decimal.NewFromInt(1500).Equal(calc.RepairCost))
				assert.True(t, decimal.NewFromInt(30000).Equal(calc.SalePrice))
				assert.True(t, decimal.NewFromInt(28500).Equal(calc.SuggestedSalePrice))
				for _, c := range model.Components {
					if c != model.ComponentFrontPanel {
						assert.Equal(t, model.StatusOK, calc.Status(c), c)
						assert.True(t, calc.Cost(c).IsZero(), c)
					}
				}
			},
		},
		{
			name: "master miss degrades to zero prices",
			rows: []sheet.Row{{"Product Name": dellName, "Front Panel": "broken"}},
			setup: func(d deps) {
				expectMasters(d, dellName, nil, nil)
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Len(t, res.Admitted, 1)

				calc := res.Admitted[0]
				assert.Equal(t, "broken", calc.FrontPanel)
				assert.True(t, calc.FrontPanelCost.IsZero())
				assert.True(t, calc.RepairCost.IsZero())
				assert.True(t, calc.SalePrice.IsZero())
				assert.True(t, calc.SuggestedSalePrice.IsZero())
				assert.False(t, calc.RAMPresent)
				assert.Nil(t, calc.RAMCapacity)
			},
		},
		{
			name: "row without product name is rejected and others admitted",
			rows: []sheet.Row{
				{"Grade": "A", "Front Panel": "broken"},
				{"Product": dellName},
			},
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				assert.Equal(t, 1, res.RejectedCount)
				require.Len(t, res.Admitted, 1)
				assert.Equal(t, dellName, res.Admitted[0].ProductName)
			},
		},
		{
			name: "battery zero means ok",
			rows: []sheet.Row{{"productName": dellName, "Battery": "0"}},
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				require.Len(t, res.Admitted, 1)
				assert.Equal(t, model.StatusOK, res.Admitted[0].Battery)
				assert.True(t, res.Admitted[0].BatteryCost.IsZero())
				assert.True(t, decimal.NewFromInt(30000).Equal(res.Admitted[0].SuggestedSalePrice))
			},
		},
		{
			name: "one master miss keeps every row",
			rows: []sheet.Row{
				{"Product Name": dellName},
				{"Product Name": "HP/EliteBook 840"},
				{"Product Name": "Lenovo/T480"},
			},
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
				expectMasters(d, "HP/EliteBook 840", nil, nil)
				expectMasters(d, "Lenovo/T480", &model.Product{Make: "Lenovo", ModelNumber: "T480"}, nil)
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				assert.Len(t, res.Admitted, 3)
				assert.Zero(t, res.RejectedCount)
			},
		},
		{
			name: "shared screen column applies to both screens",
			rows: []sheet.Row{{"Product Name": dellName, "Display": "Cracked"}},
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				calc := res.Admitted[0]
				assert.Equal(t, "cracked", calc.ScreenNonTouch)
				assert.Equal(t, "cracked", calc.ScreenTouch)
				assert.True(t, calc.ScreenNonTouchCost.IsZero())
				assert.True(t, decimal.NewFromInt(4000).Equal(calc.ScreenTouchCost))
			},
		},
		{
			name: "negative suggested price is kept",
			rows: []sheet.Row{{"Product Name": dellName, "Front Panel": "broken", "Battery": "dead", "Screen Touch": "broken"}},
			setup: func(d deps) {
				p := dellProduct()
				p.SalePrice = decimal.NewFromInt(5000)
				expectMasters(d, dellName, p, dellPart())
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				calc := res.Admitted[0]
				assert.True(t, decimal.NewFromInt(6400).Equal(calc.RepairCost), calc.RepairCost.String())
				assert.True(t, decimal.NewFromInt(-1400).Equal(calc.SuggestedSalePrice), calc.SuggestedSalePrice.String())
			},
		},
		{
			name: "identity and capacity come from the product master",
			rows: []sheet.Row{{
				"Product Name": dellName,
				"Make":         "Dell Inc",
				"RAM Capacity": "16GB",
				"HDD Capacity": "No",
				"Tag No":       "TG-1",
				"Grade":        "B",
				"Lot No":       "L7",
			}},
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), nil)
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				calc := res.Admitted[0]
				assert.Equal(t, "Dell", *calc.Make)
				assert.Equal(t, "i5", *calc.CPU)
				assert.True(t, calc.RAMPresent)
				assert.Equal(t, "8GB", *calc.RAMCapacity)
				assert.Equal(t, "16GB", *calc.ExcelRAMCapacity)
				assert.False(t, calc.HDDPresent)
				assert.Nil(t, calc.ExcelHDD)
				assert.True(t, calc.SSDPresent)
				assert.Equal(t, "TG-1", *calc.TagNo)
				assert.Equal(t, "B", *calc.Grade)
				assert.Equal(t, "L7", *calc.LotNumber)
			},
		},
		{
			name: "identity falls back to the row without a master",
			rows: []sheet.Row{{"Product Name": "Acer/Aspire 5", "Make": "Acer", "Model": "Aspire 5", "RAM": "yes"}},
			setup: func(d deps) {
				expectMasters(d, "Acer/Aspire 5", nil, nil)
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.NoError(t, err)
				calc := res.Admitted[0]
				assert.Equal(t, "Acer", *calc.Make)
				assert.Equal(t, "Aspire 5", *calc.ModelNumber)
				assert.Nil(t, calc.CPU)
				assert.False(t, calc.RAMPresent)
			},
		},
		{
			name: "lookup failure fails the batch",
			rows: []sheet.Row{{"Product Name": dellName}},
			setup: func(d deps) {
				d.masters.On("FindProduct", mock.Anything, dellName).Return(nil, errors.New("connection reset")).Once()
			},
			assert: func(t *testing.T, res *model.ReconcileResult, err error) {
				require.Error(t, err)
				assert.Nil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()

			res, err := d.useCase(4).Reconcile(ctx, tt.rows)
			tt.assert(t, res, err)
		})
	}
}

func TestReconcileKeepsInputOrder(t *testing.T) {
	t.Parallel()

	d := newDeps(t)
	rows := make([]sheet.Row, 0, 40)
	want := make([]string, 0, 40)
	for i := 0; i < 40; i++ {
		name := fmt.Sprintf("%s/%s-%d", gofakeit.Company(), gofakeit.LetterN(6), i)
		if i%7 == 3 {
			rows = append(rows, sheet.Row{"Tag": name})
			continue
		}
		rows = append(rows, sheet.Row{"Product Name": name})
		want = append(want, name)

		delay := time.Duration(gofakeit.Number(0, 5)) * time.Millisecond
		d.masters.On("FindProduct", mock.Anything, name).After(delay).Return(nil, nil).Once()
		d.masters.On("FindSparePart", mock.Anything, name).Return(nil, nil).Once()
	}

	res, err := d.useCase(8).Reconcile(context.Background(), rows)
	require.NoError(t, err)

	got := make([]string, len(res.Admitted))
	for i, c := range res.Admitted {
		got[i] = c.ProductName
	}
	assert.Equal(t, want, got)
	assert.Equal(t, len(rows)-len(want), res.RejectedCount)
}

func TestBulkUpload(t *testing.T) {
	t.Parallel()

	rows := []sheet.Row{
		{"Product Name": dellName, "Front Panel": "broken", "RAM Capacity": "16GB"},
		{"Grade": "C"},
	}

	type testCase struct {
		name   string
		rows   []sheet.Row
		setup  func(d deps)
		assert func(t *testing.T, res *model.BulkResult, err error, d deps)
	}

	tests := []testCase{
		{
			name: "stores admitted rows with excel capacity",
			rows: rows,
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
				d.repo.On("HasExcelCapacityColumns", mock.Anything).Return(true, nil).Once()
				d.repo.On("BulkCreate", mock.Anything, mock.MatchedBy(func(calcs []model.PriceCalculation) bool {
					return len(calcs) == 1 &&
						calcs[0].ID != "" &&
						calcs[0].ExcelRAMCapacity != nil && *calcs[0].ExcelRAMCapacity == "16GB"
				}), true).Return(1, nil).Once()
			},
			assert: func(t *testing.T, res *model.BulkResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, &model.BulkResult{Count: 1, RejectedCount: 1}, res)
			},
		},
		{
			name: "strips excel capacity when columns are missing",
			rows: rows,
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
				d.repo.On("HasExcelCapacityColumns", mock.Anything).Return(false, nil).Once()
				d.repo.On("BulkCreate", mock.Anything, mock.MatchedBy(func(calcs []model.PriceCalculation) bool {
					for _, c := range calcs {
						if c.ExcelRAMCapacity != nil || c.ExcelHDD != nil || c.ExcelSSD != nil {
							return false
						}
					}
					return len(calcs) == 1
				}), false).Return(1, nil).Once()
			},
			assert: func(t *testing.T, res *model.BulkResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Count)
			},
		},
		{
			name: "schema probe failure counts as missing columns",
			rows: rows,
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
				d.repo.On("HasExcelCapacityColumns", mock.Anything).Return(false, errors.New("permission denied")).Once()
				d.repo.On("BulkCreate", mock.Anything, mock.Anything, false).Return(1, nil).Once()
			},
			assert: func(t *testing.T, res *model.BulkResult, err error, d deps) {
				require.NoError(t, err)
				assert.Equal(t, 1, res.Count)
			},
		},
		{
			name: "no product names fails without writing",
			rows: []sheet.Row{{"Grade": "A"}, {"Tag No": "T1"}},
			assert: func(t *testing.T, res *model.BulkResult, err error, d deps) {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNoValidRows)
				assert.Nil(t, res)
				d.repo.AssertNotCalled(t, "BulkCreate", mock.Anything, mock.Anything, mock.Anything)
			},
		},
		{
			name: "store failure fails the whole batch",
			rows: rows,
			setup: func(d deps) {
				expectMasters(d, dellName, dellProduct(), dellPart())
				d.repo.On("HasExcelCapacityColumns", mock.Anything).Return(true, nil).Once()
				d.repo.On("BulkCreate", mock.Anything, mock.Anything, true).Return(0, errors.New("unique violation")).Once()
			},
			assert: func(t *testing.T, res *model.BulkResult, err error, d deps) {
				require.Error(t, err)
				assert.NotErrorIs(t, err, model.ErrNoValidRows)
				assert.Nil(t, res)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := newDeps(t)
			if tt.setup != nil {
				tt.setup(d)
			}

			res, err := d.useCase(2).BulkUpload(context.Background(), tt.rows)
			tt.assert(t, res, err, d)
		})
	}
}

package pricing

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"":          model.StatusOK,
		"   ":       model.StatusOK,
		"OK":        model.StatusOK,
		" ok ":      model.StatusOK,
		"0":         model.StatusOK,
		"Broken":    "broken",
		" MISSING ": "missing",
		"faulty":    "faulty",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeStatus(in), "%q", in)
	}
}

func TestComponentCost(t *testing.T) {
	t.Parallel()

	price := decimal.NewFromFloat(gofakeit.Price(100, 5000)).Round(2)

	tests := []struct {
		name   string
		status string
		price  decimal.NullDecimal
		want   decimal.Decimal
	}{
		{name: "ok ignores price", status: "ok", price: decimal.NewNullDecimal(price), want: decimal.Zero},
		{name: "blank is ok", status: "", price: decimal.NewNullDecimal(price), want: decimal.Zero},
		{name: "zero is ok", status: "0", price: decimal.NewNullDecimal(price), want: decimal.Zero},
		{name: "defect takes master price", status: "broken", price: decimal.NewNullDecimal(price), want: price},
		{name: "defect without master price", status: "missing", price: decimal.NullDecimal{}, want: decimal.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComponentCost(tt.status, tt.price)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestSuggestedSalePriceKeepsNegative(t *testing.T) {
	t.Parallel()

	got := SuggestedSalePrice(decimal.NewFromInt(1000), decimal.NewFromInt(2500))
	assert.True(t, decimal.NewFromInt(-1500).Equal(got), got.String())
}

func TestTotalRepairCost(t *testing.T) {
	t.Parallel()

	assert.True(t, TotalRepairCost().IsZero())
	got := TotalRepairCost(decimal.RequireFromString("0.10"), decimal.RequireFromString("0.20"))
	assert.True(t, decimal.RequireFromString("0.30").Equal(got), got.String())
}

func TestPrice(t *testing.T) {
	t.Parallel()

	product := &model.Product{SalePrice: decimal.NewFromInt(30000)}
	part := &model.SparePart{
		FrontPanel: decimal.NewNullDecimal(decimal.NewFromInt(1500)),
		Battery:    decimal.NewNullDecimal(decimal.NewFromInt(900)),
	}

	t.Run("matched masters", func(t *testing.T) {
		t.Parallel()

		var calc model.PriceCalculation
		Price(&calc, Assessment{
			model.ComponentFrontPanel: "Broken",
			model.ComponentBattery:    "0",
			model.ComponentHinge:      "loose",
		}, product, part)

		assert.Equal(t, "broken", calc.FrontPanel)
		assert.True(t, decimal.NewFromInt(1500).Equal(calc.FrontPanelCost))
		assert.Equal(t, model.StatusOK, calc.Battery)
		assert.True(t, calc.BatteryCost.IsZero())
		assert.Equal(t, "loose", calc.Hinge)
		assert.True(t, calc.HingeCost.IsZero())
		assert.Equal(t, model.StatusOK, calc.Keyboard)
		assert.True(t, decimal.NewFromInt(1500).Equal(calc.RepairCost))
		assert.True(t, decimal.NewFromInt(30000).Equal(calc.SalePrice))
		assert.True(t, decimal.NewFromInt(28500).Equal(calc.SuggestedSalePrice))
	})

	t.Run("no masters", func(t *testing.T) {
		t.Parallel()

		var calc model.PriceCalculation
		Price(&calc, Assessment{model.ComponentFrontPanel: "broken"}, nil, nil)

		assert.Equal(t, "broken", calc.FrontPanel)
		for _, c := range model.Components {
			assert.True(t, calc.Cost(c).IsZero(), c)
		}
		assert.True(t, calc.RepairCost.IsZero())
		assert.True(t, calc.SalePrice.IsZero())
		assert.True(t, calc.SuggestedSalePrice.IsZero())
	})
}

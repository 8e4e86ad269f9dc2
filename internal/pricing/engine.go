// Package pricing holds the repair cost and resale price rules.
package pricing

import (
	"strings"

	"github.com/fekuna/omnipos-pricing-service/internal/model"
	"github.com/shopspring/decimal"
)

// NormalizeStatus trims and lower-cases a condition label. Blank, "ok" and
// "0" all collapse to model.StatusOK.
func NormalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" || s == "0" || s == model.StatusOK {
		return model.StatusOK
	}
	return s
}

// IsOK reports whether status describes an undamaged component.
func IsOK(status string) bool {
	return NormalizeStatus(status) == model.StatusOK
}

// ComponentCost is zero for an ok component and the master price otherwise.
// A missing master price counts as zero.
func ComponentCost(status string, masterPrice decimal.NullDecimal) decimal.Decimal {
	if IsOK(status) || !masterPrice.Valid {
		return decimal.Zero
	}
	return masterPrice.Decimal
}

// TotalRepairCost sums the component costs of one unit.
func TotalRepairCost(costs ...decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, costs...)
}

// SuggestedSalePrice is the master sale price less the repair cost. The
// result is not clamped; a negative price marks a unit not worth repairing.
func SuggestedSalePrice(salePrice, repairCost decimal.Decimal) decimal.Decimal {
	return salePrice.Sub(repairCost)
}

// Assessment is the per-component condition of one physical unit.
type Assessment map[model.Component]string

// Price fills every component status and cost on calc from the assessment
// and the matched masters, then sets the sale, repair and suggested prices.
// Either master may be nil.
func Price(calc *model.PriceCalculation, statuses Assessment, product *model.Product, part *model.SparePart) {
	costs := make([]decimal.Decimal, 0, len(model.Components))
	for _, c := range model.Components {
		status := NormalizeStatus(statuses[c])
		cost := ComponentCost(status, part.Price(c))
		calc.SetComponent(c, status, cost)
		costs = append(costs, cost)
	}

	calc.SalePrice = decimal.Zero
	if product != nil {
		calc.SalePrice = product.SalePrice
	}
	calc.RepairCost = TotalRepairCost(costs...)
	calc.SuggestedSalePrice = SuggestedSalePrice(calc.SalePrice, calc.RepairCost)
}

package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Make        string          `db:"make" json:"make"`
	ModelNumber string          `db:"model_number" json:"model_number"`
	CPU         *string         `db:"cpu" json:"cpu"`               // Nullable
	Generation  *string         `db:"generation" json:"generation"` // Nullable
	ProductName *string         `db:"product_name" json:"product_name"`
	RAM         *string         `db:"ram" json:"ram"`
	SSD         *string         `db:"ssd" json:"ssd"`
	HDD         *string         `db:"hdd" json:"hdd"`
	SalePrice   decimal.Decimal `db:"sale_price" json:"sale_price"`
}

func (p *Product) Key() ProductKey {
	return ProductKey{
		Make:        p.Make,
		ModelNumber: p.ModelNumber,
		CPU:         deref(p.CPU),
		Generation:  deref(p.Generation),
	}
}

// ProductKey is the (make, modelNumber, cpu, generation) identity shared by
// products, spare parts and calculations. Empty CPU/Generation mean absent.
type ProductKey struct {
	Make        string
	ModelNumber string
	CPU         string
	Generation  string
}

// ParseProductName splits a "Make/Model/CPU/Generation" name into its parts.
// Parts beyond the fourth are ignored. ok is false unless both make and model
// number are present.
func ParseProductName(name string) (key ProductKey, ok bool) {
	parts := strings.Split(name, "/")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	get := func(i int) string {
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}

	key = ProductKey{
		Make:        get(0),
		ModelNumber: get(1),
		CPU:         get(2),
		Generation:  get(3),
	}
	return key, key.Make != "" && key.ModelNumber != ""
}

// String joins the non-empty parts with "/".
func (k ProductKey) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{k.Make, k.ModelNumber, k.CPU, k.Generation} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}

type ProductStats struct {
	TotalProducts    int      `json:"total_products"`
	HighValueItems   int      `json:"high_value_items"`
	ExpensiveProduct *Product `json:"expensive_product"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns nil for blank strings, otherwise a pointer to the trimmed value.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

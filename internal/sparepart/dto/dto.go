package dto

import "github.com/shopspring/decimal"

type SparePartFilters struct {
	SearchQuery string `json:"search_query"`
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

// SparePartInput carries the nine component prices keyed by component name.
// A missing key leaves that price unknown.
type SparePartInput struct {
	Make        string                         `json:"make"`
	ModelNumber string                         `json:"model_number"`
	CPU         string                         `json:"cpu"`
	Generation  string                         `json:"generation"`
	ProductName string                         `json:"product_name"`
	Prices      map[string]decimal.NullDecimal `json:"prices"`
}

type BulkDeleteInput struct {
	IDs []string `json:"ids"`
}

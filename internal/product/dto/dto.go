package dto

import "github.com/shopspring/decimal"

type ProductFilters struct {
	SearchQuery string `json:"search_query"` // make, model number, product name, cpu or generation
	SortBy      string `json:"sort_by"`      // make, price, created_at
	SortOrder   string `json:"sort_order"`   // asc, desc
	Page        int    `json:"page"`
	PageSize    int    `json:"page_size"`
}

type ProductInput struct {
	Make        string          `json:"make"`
	ModelNumber string          `json:"model_number"`
	CPU         string          `json:"cpu"`
	Generation  string          `json:"generation"`
	ProductName string          `json:"product_name"`
	RAM         string          `json:"ram"`
	SSD         string          `json:"ssd"`
	HDD         string          `json:"hdd"`
	SalePrice   decimal.Decimal `json:"sale_price"`
}

type UpdatePriceInput struct {
	SalePrice decimal.Decimal `json:"sale_price"`
}

type BulkDeleteInput struct {
	IDs []string `json:"ids"`
}

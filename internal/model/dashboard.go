package model

import "time"

// Search index names.
const (
	ProductIndex   = "products"
	SparePartIndex = "spare_parts"
)

const (
	ActivityProduct   = "Product"
	ActivitySparePart = "Spare Part"
)

type DashboardStats struct {
	TotalProducts     int `json:"total_products"`
	HighValueProducts int `json:"high_value_products"`
	TotalSpareParts   int `json:"total_spare_parts"`
	TotalInventory    int `json:"total_inventory"`
}

// Activity is one recently created master entry.
type Activity struct {
	ID          string    `db:"id" json:"id"`
	Make        string    `db:"make" json:"make"`
	ModelNumber string    `db:"model_number" json:"model_number"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	Type        string    `db:"-" json:"type"`
}

type Dashboard struct {
	Stats          DashboardStats `json:"stats"`
	RecentActivity []Activity     `json:"recent_activity"`
}

type SearchResult struct {
	Products   []Product   `json:"products"`
	SpareParts []SparePart `json:"spare_parts"`
}

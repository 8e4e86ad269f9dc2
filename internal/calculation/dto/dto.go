package dto

import "github.com/fekuna/omnipos-pricing-service/internal/model"

// CalculationInput describes one unit assessed by hand in the calculator.
// Statuses missing from the map count as ok.
type CalculationInput struct {
	ProductName      string                     `json:"product_name"`
	TagNo            string                     `json:"tag_no"`
	Grade            string                     `json:"grade"`
	LotNumber        string                     `json:"lot_number"`
	Statuses         map[model.Component]string `json:"statuses"`
	ExcelRAMCapacity string                     `json:"excel_ram_capacity"`
	ExcelHDD         string                     `json:"excel_hdd"`
	ExcelSSD         string                     `json:"excel_ssd"`
}

// LookupResult is the master data the calculator form is filled from.
type LookupResult struct {
	Product   *model.Product   `json:"product"`
	SparePart *model.SparePart `json:"spare_part"`
}

type BulkDeleteInput struct {
	IDs []string `json:"ids"`
}

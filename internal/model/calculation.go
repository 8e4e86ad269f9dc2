package model

import "github.com/shopspring/decimal"

// PriceCalculation is a point-in-time valuation of one physical unit. Master
// data is copied in when the record is computed and never re-resolved.
type PriceCalculation struct {
	BaseModel
	ProductName string  `db:"product_name" json:"product_name"`
	TagNo       *string `db:"tag_no" json:"tag_no"`
	Grade       *string `db:"grade" json:"grade"`
	LotNumber   *string `db:"lot_number" json:"lot_number"`

	Make        *string `db:"make" json:"make"`
	ModelNumber *string `db:"model_number" json:"model_number"`
	CPU         *string `db:"cpu" json:"cpu"`
	Generation  *string `db:"generation" json:"generation"`

	RAMPresent  bool    `db:"ram_present" json:"ram_present"`
	RAMCapacity *string `db:"ram_capacity" json:"ram_capacity"`
	HDDPresent  bool    `db:"hdd_present" json:"hdd_present"`
	HDD         *string `db:"hdd" json:"hdd"`
	SSDPresent  bool    `db:"ssd_present" json:"ssd_present"`
	SSD         *string `db:"ssd" json:"ssd"`

	// Capacities read straight from an import sheet. Kept apart from the
	// master values so disagreements stay visible.
	ExcelRAMCapacity *string `db:"excel_ram_capacity" json:"excel_ram_capacity"`
	ExcelHDD         *string `db:"excel_hdd" json:"excel_hdd"`
	ExcelSSD         *string `db:"excel_ssd" json:"excel_ssd"`

	FrontPanel         string          `db:"front_panel" json:"front_panel"`
	FrontPanelCost     decimal.Decimal `db:"front_panel_cost" json:"front_panel_cost"`
	Panel              string          `db:"panel" json:"panel"`
	PanelCost          decimal.Decimal `db:"panel_cost" json:"panel_cost"`
	ScreenNonTouch     string          `db:"screen_non_touch" json:"screen_non_touch"`
	ScreenNonTouchCost decimal.Decimal `db:"screen_non_touch_cost" json:"screen_non_touch_cost"`
	ScreenTouch        string          `db:"screen_touch" json:"screen_touch"`
	ScreenTouchCost    decimal.Decimal `db:"screen_touch_cost" json:"screen_touch_cost"`
	Hinge              string          `db:"hinge" json:"hinge"`
	HingeCost          decimal.Decimal `db:"hinge_cost" json:"hinge_cost"`
	TouchPad           string          `db:"touch_pad" json:"touch_pad"`
	TouchPadCost       decimal.Decimal `db:"touch_pad_cost" json:"touch_pad_cost"`
	Base               string          `db:"base" json:"base"`
	BaseCost           decimal.Decimal `db:"base_cost" json:"base_cost"`
	Keyboard           string          `db:"keyboard" json:"keyboard"`
	KeyboardCost       decimal.Decimal `db:"keyboard_cost" json:"keyboard_cost"`
	Battery            string          `db:"battery" json:"battery"`
	BatteryCost        decimal.Decimal `db:"battery_cost" json:"battery_cost"`

	RepairCost         decimal.Decimal `db:"repair_cost" json:"repair_cost"`
	SalePrice          decimal.Decimal `db:"sale_price" json:"sale_price"`
	SuggestedSalePrice decimal.Decimal `db:"suggested_sale_price" json:"suggested_sale_price"`
}

// Status returns the condition label recorded for c.
func (p *PriceCalculation) Status(c Component) string {
	if s, _ := p.fields(c); s != nil {
		return *s
	}
	return ""
}

// Cost returns the repair cost recorded for c.
func (p *PriceCalculation) Cost(c Component) decimal.Decimal {
	if _, cost := p.fields(c); cost != nil {
		return *cost
	}
	return decimal.Zero
}

func (p *PriceCalculation) SetComponent(c Component, status string, cost decimal.Decimal) {
	s, k := p.fields(c)
	if s == nil {
		return
	}
	*s = status
	*k = cost
}

// StripExcelCapacity clears the sheet-sourced capacity fields.
func (p *PriceCalculation) StripExcelCapacity() {
	p.ExcelRAMCapacity = nil
	p.ExcelHDD = nil
	p.ExcelSSD = nil
}

func (p *PriceCalculation) fields(c Component) (*string, *decimal.Decimal) {
	switch c {
	case ComponentFrontPanel:
		return &p.FrontPanel, &p.FrontPanelCost
	case ComponentPanel:
		return &p.Panel, &p.PanelCost
	case ComponentScreenNonTouch:
		return &p.ScreenNonTouch, &p.ScreenNonTouchCost
	case ComponentScreenTouch:
		return &p.ScreenTouch, &p.ScreenTouchCost
	case ComponentHinge:
		return &p.Hinge, &p.HingeCost
	case ComponentTouchPad:
		return &p.TouchPad, &p.TouchPadCost
	case ComponentBase:
		return &p.Base, &p.BaseCost
	case ComponentKeyboard:
		return &p.Keyboard, &p.KeyboardCost
	case ComponentBattery:
		return &p.Battery, &p.BatteryCost
	}
	return nil, nil
}

// ReconcileResult is the outcome of running a batch of sheet rows through the
// calculator. Admitted keeps the input order of the accepted rows.
type ReconcileResult struct {
	Admitted      []PriceCalculation `json:"admitted"`
	RejectedCount int                `json:"rejected_count"`
}

// BulkResult reports how many rows a bulk upload stored and skipped.
type BulkResult struct {
	Count         int `json:"count"`
	RejectedCount int `json:"rejected_count"`
}

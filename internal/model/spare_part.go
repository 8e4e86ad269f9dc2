package model

import "github.com/shopspring/decimal"

type SparePart struct {
	BaseModel
	Make           string              `db:"make" json:"make"`
	ModelNumber    string              `db:"model_number" json:"model_number"`
	CPU            *string             `db:"cpu" json:"cpu"`
	Generation     *string             `db:"generation" json:"generation"`
	ProductName    *string             `db:"product_name" json:"product_name"`
	FrontPanel     decimal.NullDecimal `db:"front_panel" json:"front_panel"`
	Panel          decimal.NullDecimal `db:"panel" json:"panel"`
	ScreenNonTouch decimal.NullDecimal `db:"screen_non_touch" json:"screen_non_touch"`
	ScreenTouch    decimal.NullDecimal `db:"screen_touch" json:"screen_touch"`
	Hinge          decimal.NullDecimal `db:"hinge" json:"hinge"`
	TouchPad       decimal.NullDecimal `db:"touch_pad" json:"touch_pad"`
	Base           decimal.NullDecimal `db:"base" json:"base"`
	Keyboard       decimal.NullDecimal `db:"keyboard" json:"keyboard"`
	Battery        decimal.NullDecimal `db:"battery" json:"battery"`
}

func (s *SparePart) Key() ProductKey {
	return ProductKey{
		Make:        s.Make,
		ModelNumber: s.ModelNumber,
		CPU:         deref(s.CPU),
		Generation:  deref(s.Generation),
	}
}

// Price returns the master repair price for c. A nil receiver has no prices.
func (s *SparePart) Price(c Component) decimal.NullDecimal {
	if s == nil {
		return decimal.NullDecimal{}
	}
	if p := s.price(c); p != nil {
		return *p
	}
	return decimal.NullDecimal{}
}

func (s *SparePart) SetPrice(c Component, v decimal.NullDecimal) {
	if p := s.price(c); p != nil {
		*p = v
	}
}

func (s *SparePart) price(c Component) *decimal.NullDecimal {
	switch c {
	case ComponentFrontPanel:
		return &s.FrontPanel
	case ComponentPanel:
		return &s.Panel
	case ComponentScreenNonTouch:
		return &s.ScreenNonTouch
	case ComponentScreenTouch:
		return &s.ScreenTouch
	case ComponentHinge:
		return &s.Hinge
	case ComponentTouchPad:
		return &s.TouchPad
	case ComponentBase:
		return &s.Base
	case ComponentKeyboard:
		return &s.Keyboard
	case ComponentBattery:
		return &s.Battery
	}
	return nil
}

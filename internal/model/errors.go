package model

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrSparePartNotFound   = errors.New("spare part not found")
	ErrCalculationNotFound = errors.New("price calculation not found")

	ErrValidation = errors.New("validation failed")
	// ErrNoValidRows is returned when a calculation upload admits zero rows.
	ErrNoValidRows = errors.New("no valid rows")
	// ErrNoValidMasterRows is returned when a product or spare part upload
	// has no row carrying both make and model number.
	ErrNoValidMasterRows = errors.New("no valid master rows")
)

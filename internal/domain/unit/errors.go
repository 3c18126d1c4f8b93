package unit

import "errors"

// Domain errors for units and generic conversions
var (
	ErrNotFound           = errors.New("unit not found")
	ErrNameTaken          = errors.New("unit name already exists")
	ErrInvalidName        = errors.New("unit name cannot be empty")
	ErrInvalidType        = errors.New("invalid unit type")
	ErrInvalidFactor      = errors.New("conversion factor must be positive")
	ErrSameUnit           = errors.New("conversion requires two distinct units")
	ErrConversionNotFound = errors.New("unit conversion not found")
	ErrNoConversionPath   = errors.New("no conversion path between units")
	ErrConversionExists   = errors.New("unit conversion already exists")
	ErrInUse              = errors.New("unit is referenced by existing conversions")
)

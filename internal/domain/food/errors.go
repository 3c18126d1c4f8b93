package food

import "errors"

// Domain errors for food items and food-specific conversions
var (
	ErrNotFound           = errors.New("food item not found")
	ErrNameTaken          = errors.New("food item name already exists")
	ErrInvalidName        = errors.New("food item name cannot be empty")
	ErrInvalidBaseUnit    = errors.New("food item requires a base unit")
	ErrInvalidFactor      = errors.New("conversion factor must be positive")
	ErrSameUnit           = errors.New("conversion requires two distinct units")
	ErrConversionNotFound = errors.New("food unit conversion not found")
	ErrConversionExists   = errors.New("food unit conversion already exists")
)

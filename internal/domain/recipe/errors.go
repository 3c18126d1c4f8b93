package recipe

import (
	"errors"
	"fmt"
)

// Domain errors for recipes
var (
	ErrNotFound            = errors.New("recipe not found")
	ErrInvalidTitle        = errors.New("recipe title cannot be empty")
	ErrInvalidAmount       = errors.New("ingredient amount must be positive")
	ErrUnknownFoodItem     = errors.New("ingredient references an unknown food item")
	ErrDuplicateIngredient = errors.New("recipe lists the same food item twice")
	ErrNoIngredients       = errors.New("recipe has no ingredients")
)

// Shortfall describes one ingredient the kitchen cannot cover.
type Shortfall struct {
	FoodItemID      int64   `json:"food_item_id"`
	FoodItemName    string  `json:"food_item_name"`
	RequiredAmount  float64 `json:"required_amount"`
	AvailableAmount float64 `json:"available_amount"`
}

// InsufficientIngredientsError aborts a cook operation. It carries the
// complete shortfall list so the caller sees everything that is missing,
// not just the first gap.
type InsufficientIngredientsError struct {
	Shortfalls []Shortfall
}

// Error implements the error interface.
func (e *InsufficientIngredientsError) Error() string {
	return fmt.Sprintf("insufficient ingredients: %d item(s) short", len(e.Shortfalls))
}

// NewInsufficientIngredientsError wraps a shortfall list.
func NewInsufficientIngredientsError(shortfalls []Shortfall) *InsufficientIngredientsError {
	return &InsufficientIngredientsError{Shortfalls: shortfalls}
}

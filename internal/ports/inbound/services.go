// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the HTTP layer drives
package inbound

import (
	"context"

	"github.com/nugamoto/v2/internal/domain/recipe"
)

// ConversionResult is the outcome of resolving one conversion.
// FoodSpecific reports whether a food-specific factor was applied.
type ConversionResult struct {
	Value        float64
	Factor       float64
	FoodSpecific bool
}

// ConversionService resolves unit conversions, generic and food-specific
type ConversionService interface {
	ConvertValue(ctx context.Context, value float64, fromUnitID, toUnitID int64) (*ConversionResult, error)
	CanConvertUnits(ctx context.Context, fromUnitID, toUnitID int64) (bool, error)
	ConvertFoodValue(ctx context.Context, foodItemID int64, value float64, fromUnitID, toUnitID int64) (*ConversionResult, error)
	CanConvertFoodUnits(ctx context.Context, foodItemID, fromUnitID, toUnitID int64) (bool, error)
}

// CookingService executes recipes against kitchen inventory
type CookingService interface {
	CookRecipe(ctx context.Context, recipeID, kitchenID int64) (*recipe.CookResult, error)
}

// RecipeService manages the recipe catalog
type RecipeService interface {
	CreateRecipe(ctx context.Context, r *recipe.Recipe) error
	GetRecipe(ctx context.Context, id int64) (*recipe.Recipe, error)
	ListRecipes(ctx context.Context, filter recipe.Filter) ([]*recipe.Recipe, int, error)
	UpdateRecipe(ctx context.Context, r *recipe.Recipe) error
	DeleteRecipe(ctx context.Context, id int64) error
	Summary(ctx context.Context) (*recipe.Summary, error)

	// FindCookable returns recipes whose ingredients the kitchen's
	// current inventory covers to at least minMatch (0..1).
	FindCookable(ctx context.Context, kitchenID int64, minMatch float64) ([]*recipe.Recipe, error)
}

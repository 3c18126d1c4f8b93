// Package recipe contains the recipe domain model and the cooking
// result types shared between the cooking engine and the API layer.
package recipe

import (
	"strings"
	"time"
)

// Difficulty levels for recipes
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe is the aggregate root: a titled dish with ordered ingredients,
// preparation steps, and optional nutrition facts.
type Recipe struct {
	ID              int64
	Title           string
	Description     string
	Servings        int
	Difficulty      string
	Tags            []string
	AIGenerated     bool
	AIModel         string
	PrepTimeMinutes int
	CookTimeMinutes int
	Ingredients     []Ingredient
	Steps           []Step
	Nutrition       *Nutrition
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Ingredient links a recipe to a food item. AmountInBaseUnit is always
// expressed in the food item's base unit; the original amount and unit
// the author entered are kept for display. FoodItemName is denormalized
// at load time so the cooking engine can report shortfalls by name
// without extra lookups.
type Ingredient struct {
	RecipeID         int64
	FoodItemID       int64
	FoodItemName     string
	AmountInBaseUnit float64
	OriginalAmount   *float64
	OriginalUnitID   *int64
}

// Step is one ordered preparation instruction.
type Step struct {
	RecipeID    int64
	StepNumber  int
	Instruction string
}

// Nutrition holds per-serving nutrition facts. All fields are optional
// since most recipes are entered without them.
type Nutrition struct {
	RecipeID int64
	Kcal     *float64
	Protein  *float64
	Fat      *float64
	Carbs    *float64
}

// NewRecipe creates a validated recipe.
func NewRecipe(title string, servings int) (*Recipe, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if servings <= 0 {
		servings = 1
	}
	return &Recipe{
		Title:    title,
		Servings: servings,
	}, nil
}

// Validate checks the recipe's ingredient list invariants.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrInvalidTitle
	}
	seen := make(map[int64]bool, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing.FoodItemID <= 0 {
			return ErrUnknownFoodItem
		}
		if ing.AmountInBaseUnit <= 0 {
			return ErrInvalidAmount
		}
		if seen[ing.FoodItemID] {
			return ErrDuplicateIngredient
		}
		seen[ing.FoodItemID] = true
	}
	return nil
}

// Filter narrows recipe listings. Zero values mean "no constraint".
type Filter struct {
	Title       string
	AIGenerated *bool
	MaxKcal     *float64
	MinProtein  *float64
	Offset      int
	Limit       int
}

// Summary holds aggregate statistics over the recipe catalog.
type Summary struct {
	TotalRecipes    int64   `json:"total_recipes"`
	AIGenerated     int64   `json:"ai_generated"`
	WithNutrition   int64   `json:"with_nutrition"`
	AverageServings float64 `json:"average_servings"`
}

// CookResult is the outcome of a successful cook operation.
type CookResult struct {
	Success               bool    `json:"success"`
	Message               string  `json:"message"`
	UpdatedInventoryItems []int64 `json:"updated_inventory_items"`
}

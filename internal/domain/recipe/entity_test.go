package recipe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipe(t *testing.T) {
	t.Run("valid recipe", func(t *testing.T) {
		r, err := NewRecipe("Pancakes", 4)
		require.NoError(t, err)
		assert.Equal(t, "Pancakes", r.Title)
		assert.Equal(t, 4, r.Servings)
	})

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := NewRecipe("   ", 2)
		assert.ErrorIs(t, err, ErrInvalidTitle)
	})

	t.Run("servings default to one", func(t *testing.T) {
		r, err := NewRecipe("Toast", 0)
		require.NoError(t, err)
		assert.Equal(t, 1, r.Servings)
	})
}

func TestRecipeValidate(t *testing.T) {
	t.Run("valid ingredient list", func(t *testing.T) {
		r := &Recipe{
			Title: "Omelette",
			Ingredients: []Ingredient{
				{FoodItemID: 1, AmountInBaseUnit: 3},
				{FoodItemID: 2, AmountInBaseUnit: 20},
			},
		}
		assert.NoError(t, r.Validate())
	})

	t.Run("duplicate food item rejected", func(t *testing.T) {
		r := &Recipe{
			Title: "Omelette",
			Ingredients: []Ingredient{
				{FoodItemID: 1, AmountInBaseUnit: 3},
				{FoodItemID: 1, AmountInBaseUnit: 5},
			},
		}
		assert.ErrorIs(t, r.Validate(), ErrDuplicateIngredient)
	})

	t.Run("non-positive amount rejected", func(t *testing.T) {
		r := &Recipe{
			Title:       "Omelette",
			Ingredients: []Ingredient{{FoodItemID: 1, AmountInBaseUnit: 0}},
		}
		assert.ErrorIs(t, r.Validate(), ErrInvalidAmount)
	})
}

func TestInsufficientIngredientsError(t *testing.T) {
	err := NewInsufficientIngredientsError([]Shortfall{
		{FoodItemID: 1, FoodItemName: "sugar", RequiredAmount: 500, AvailableAmount: 120},
		{FoodItemID: 2, FoodItemName: "egg", RequiredAmount: 3, AvailableAmount: 0},
	})

	assert.Equal(t, "insufficient ingredients: 2 item(s) short", err.Error())

	// Callers discriminate with errors.As on the wrapped chain.
	var target *InsufficientIngredientsError
	require.True(t, errors.As(error(err), &target))
	assert.Len(t, target.Shortfalls, 2)
	assert.Equal(t, "sugar", target.Shortfalls[0].FoodItemName)
}

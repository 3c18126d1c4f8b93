// Package cooking implements the cook engine: executing a recipe
// against a kitchen's inventory.
//
// The operation runs in two phases. The check phase is read-only: it
// walks every ingredient, sums the available lots, and either records a
// shortfall or plans deductions oldest-stock-first. Only when every
// ingredient is covered does the commit phase apply the full plan in a
// single guarded transaction. A partially cookable recipe never mutates
// inventory, so a failed cook can be retried as-is.
package cooking

import (
	"context"
	"fmt"

	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/ports/inbound"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service executes recipes against kitchen inventory.
type Service struct {
	recipes   outbound.RecipeRepository
	inventory outbound.InventoryRepository
	logger    *zap.Logger
}

// NewService creates a new cooking service.
func NewService(
	recipes outbound.RecipeRepository,
	inventory outbound.InventoryRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		recipes:   recipes,
		inventory: inventory,
		logger:    logger.Named("cooking-service"),
	}
}

var _ inbound.CookingService = (*Service)(nil)

// CookRecipe deducts a recipe's ingredients from the kitchen's inventory.
// It returns recipe.ErrNotFound when the recipe does not exist, an
// *recipe.InsufficientIngredientsError carrying every shortfall when the
// kitchen cannot cover the recipe, and inventory.ErrStockConflict when a
// concurrent writer drained a lot between check and commit.
func (s *Service) CookRecipe(ctx context.Context, recipeID, kitchenID int64) (*recipe.CookResult, error) {
	rec, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if len(rec.Ingredients) == 0 {
		return nil, recipe.ErrNoIngredients
	}

	plan, shortfalls, err := s.checkIngredients(ctx, rec, kitchenID)
	if err != nil {
		return nil, err
	}
	if len(shortfalls) > 0 {
		s.logger.Info("cook aborted, ingredients missing",
			zap.Int64("recipe_id", recipeID),
			zap.Int64("kitchen_id", kitchenID),
			zap.Int("shortfalls", len(shortfalls)),
		)
		return nil, recipe.NewInsufficientIngredientsError(shortfalls)
	}

	if err := s.inventory.DeductLots(ctx, plan); err != nil {
		return nil, err
	}

	updated := make([]int64, 0, len(plan))
	for _, d := range plan {
		updated = append(updated, d.ItemID)
	}

	s.logger.Info("recipe cooked",
		zap.Int64("recipe_id", recipeID),
		zap.Int64("kitchen_id", kitchenID),
		zap.Int("lots_updated", len(updated)),
	)

	return &recipe.CookResult{
		Success:               true,
		Message:               fmt.Sprintf("Successfully cooked recipe '%s'", rec.Title),
		UpdatedInventoryItems: updated,
	}, nil
}

// checkIngredients walks all ingredients before deciding anything.
// Ingredients that cannot be covered are collected as shortfalls rather
// than aborting early, so the caller learns about every gap at once.
func (s *Service) checkIngredients(ctx context.Context, rec *recipe.Recipe, kitchenID int64) ([]inventory.Deduction, []recipe.Shortfall, error) {
	var plan []inventory.Deduction
	var shortfalls []recipe.Shortfall

	for _, ing := range rec.Ingredients {
		lots, err := s.inventory.FindAvailableLots(ctx, kitchenID, ing.FoodItemID)
		if err != nil {
			return nil, nil, err
		}

		var available float64
		for _, lot := range lots {
			available += lot.Quantity
		}

		if available < ing.AmountInBaseUnit {
			shortfalls = append(shortfalls, recipe.Shortfall{
				FoodItemID:      ing.FoodItemID,
				FoodItemName:    ing.FoodItemName,
				RequiredAmount:  ing.AmountInBaseUnit,
				AvailableAmount: available,
			})
			continue
		}

		// Lots arrive oldest-expiration-first; drain them greedily.
		remaining := ing.AmountInBaseUnit
		for _, lot := range lots {
			if remaining <= 0 {
				break
			}
			take := lot.Quantity
			if take > remaining {
				take = remaining
			}
			plan = append(plan, inventory.Deduction{ItemID: lot.ID, Amount: take})
			remaining -= take
		}
	}

	return plan, shortfalls, nil
}

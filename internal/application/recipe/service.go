// Package recipe provides the application layer for recipe management
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/ports/inbound"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// RecipeService implements the recipe use cases
type RecipeService struct {
	recipeRepo    outbound.RecipeRepository
	foodRepo      outbound.FoodRepository
	inventoryRepo outbound.InventoryRepository
	cache         outbound.CacheRepository
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	foodRepo outbound.FoodRepository,
	inventoryRepo outbound.InventoryRepository,
	cache outbound.CacheRepository,
	cacheTTL time.Duration,
	logger *zap.Logger,
) inbound.RecipeService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &RecipeService{
		recipeRepo:    recipeRepo,
		foodRepo:      foodRepo,
		inventoryRepo: inventoryRepo,
		cache:         cache,
		cacheTTL:      cacheTTL,
		logger:        logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe after validating that every
// ingredient references an existing food item.
func (s *RecipeService) CreateRecipe(ctx context.Context, r *recipe.Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.resolveIngredientNames(ctx, r); err != nil {
		return err
	}

	if err := s.recipeRepo.Create(ctx, r); err != nil {
		return err
	}

	s.logger.Info("Recipe created",
		zap.Int64("recipe_id", r.ID),
		zap.String("title", r.Title),
		zap.Int("ingredients", len(r.Ingredients)),
	)
	return nil
}

// GetRecipe loads a recipe with full details, cache-aside.
func (s *RecipeService) GetRecipe(ctx context.Context, id int64) (*recipe.Recipe, error) {
	key := recipeCacheKey(id)
	if data, err := s.cache.Get(ctx, key); err == nil {
		var cached recipe.Recipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		// Corrupt entries are dropped and reloaded from the store.
		_ = s.cache.Delete(ctx, key)
	}

	r, err := s.recipeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(r); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
			s.logger.Debug("Recipe cache set failed", zap.Int64("recipe_id", id), zap.Error(err))
		}
	}
	return r, nil
}

// ListRecipes returns a filtered, paginated recipe listing with the
// total count of matches.
func (s *RecipeService) ListRecipes(ctx context.Context, filter recipe.Filter) ([]*recipe.Recipe, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.recipeRepo.FindAll(ctx, filter)
}

// UpdateRecipe replaces a recipe's content and invalidates its cache entry.
func (s *RecipeService) UpdateRecipe(ctx context.Context, r *recipe.Recipe) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if err := s.resolveIngredientNames(ctx, r); err != nil {
		return err
	}

	if err := s.recipeRepo.Update(ctx, r); err != nil {
		return err
	}

	s.invalidateCache(ctx, r.ID)
	s.logger.Info("Recipe updated", zap.Int64("recipe_id", r.ID))
	return nil
}

// DeleteRecipe removes a recipe and invalidates its cache entry.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	if err := s.recipeRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx, id)
	s.logger.Info("Recipe deleted", zap.Int64("recipe_id", id))
	return nil
}

// Summary returns aggregate statistics over the catalog.
func (s *RecipeService) Summary(ctx context.Context) (*recipe.Summary, error) {
	return s.recipeRepo.Summary(ctx)
}

// FindCookable returns recipes covered by the kitchen's current
// inventory to at least minMatch.
func (s *RecipeService) FindCookable(ctx context.Context, kitchenID int64, minMatch float64) ([]*recipe.Recipe, error) {
	if minMatch <= 0 || minMatch > 1 {
		minMatch = 1
	}

	items, err := s.inventoryRepo.FindByKitchen(ctx, kitchenID)
	if err != nil {
		return nil, err
	}

	available := make(map[int64]bool)
	foodIDs := make([]int64, 0, len(items))
	for _, item := range items {
		if item.Quantity > 0 && !available[item.FoodItemID] {
			available[item.FoodItemID] = true
			foodIDs = append(foodIDs, item.FoodItemID)
		}
	}
	if len(foodIDs) == 0 {
		return []*recipe.Recipe{}, nil
	}

	return s.recipeRepo.FindByFoodItems(ctx, foodIDs, minMatch)
}

// resolveIngredientNames verifies each ingredient's food item exists and
// fills in the denormalized name.
func (s *RecipeService) resolveIngredientNames(ctx context.Context, r *recipe.Recipe) error {
	for i := range r.Ingredients {
		item, err := s.foodRepo.FindByID(ctx, r.Ingredients[i].FoodItemID)
		if err != nil {
			return fmt.Errorf("ingredient %d: %w", i, err)
		}
		r.Ingredients[i].FoodItemName = item.Name
	}
	return nil
}

func (s *RecipeService) invalidateCache(ctx context.Context, id int64) {
	if err := s.cache.Delete(ctx, recipeCacheKey(id)); err != nil {
		s.logger.Debug("Recipe cache invalidation failed", zap.Int64("recipe_id", id), zap.Error(err))
	}
}

func recipeCacheKey(id int64) string {
	return fmt.Sprintf("recipe:%d", id)
}

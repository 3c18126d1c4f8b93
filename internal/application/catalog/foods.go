package catalog

import (
	"context"
	"errors"

	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// FoodService manages the food catalog and food-specific conversions.
type FoodService struct {
	foods       outbound.FoodRepository
	conversions outbound.FoodConversionRepository
	units       outbound.UnitRepository
	logger      *zap.Logger
}

// NewFoodService creates a new food service.
func NewFoodService(
	foods outbound.FoodRepository,
	conversions outbound.FoodConversionRepository,
	units outbound.UnitRepository,
	logger *zap.Logger,
) *FoodService {
	return &FoodService{
		foods:       foods,
		conversions: conversions,
		units:       units,
		logger:      logger.Named("food-service"),
	}
}

// CreateFood registers a new food item with a normalized, unique name.
func (s *FoodService) CreateFood(ctx context.Context, name, category string, baseUnitID int64) (*food.Item, error) {
	item, err := food.NewItem(name, category, baseUnitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.units.FindByID(ctx, baseUnitID); err != nil {
		return nil, err
	}

	if _, err := s.foods.FindByName(ctx, item.Name); err == nil {
		return nil, food.ErrNameTaken
	} else if !errors.Is(err, food.ErrNotFound) {
		return nil, err
	}

	if err := s.foods.Create(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("Food item created", zap.Int64("food_item_id", item.ID), zap.String("name", item.Name))
	return item, nil
}

// GetFood loads one food item.
func (s *FoodService) GetFood(ctx context.Context, id int64) (*food.Item, error) {
	return s.foods.FindByID(ctx, id)
}

// ListFoods returns a paginated food listing, optionally filtered by category.
func (s *FoodService) ListFoods(ctx context.Context, category string, offset, limit int) ([]*food.Item, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.foods.FindAll(ctx, category, offset, limit)
}

// UpdateFood modifies a food item.
func (s *FoodService) UpdateFood(ctx context.Context, id int64, name, category string, baseUnitID int64) (*food.Item, error) {
	existing, err := s.foods.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := food.NewItem(name, category, baseUnitID)
	if err != nil {
		return nil, err
	}
	if _, err := s.units.FindByID(ctx, baseUnitID); err != nil {
		return nil, err
	}

	if updated.Name != existing.Name {
		if _, err := s.foods.FindByName(ctx, updated.Name); err == nil {
			return nil, food.ErrNameTaken
		} else if !errors.Is(err, food.ErrNotFound) {
			return nil, err
		}
	}

	existing.Name = updated.Name
	existing.Category = updated.Category
	existing.BaseUnitID = updated.BaseUnitID
	if err := s.foods.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteFood removes a food item.
func (s *FoodService) DeleteFood(ctx context.Context, id int64) error {
	return s.foods.Delete(ctx, id)
}

// CreateConversion registers a food-specific conversion.
func (s *FoodService) CreateConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID int64, factor float64) (*food.Conversion, error) {
	if _, err := s.foods.FindByID(ctx, foodItemID); err != nil {
		return nil, err
	}
	conv, err := food.NewConversion(foodItemID, fromUnitID, toUnitID, factor)
	if err != nil {
		return nil, err
	}
	if _, err := s.units.FindByID(ctx, fromUnitID); err != nil {
		return nil, err
	}
	if _, err := s.units.FindByID(ctx, toUnitID); err != nil {
		return nil, err
	}

	if _, err := s.conversions.FindPair(ctx, foodItemID, fromUnitID, toUnitID); err == nil {
		return nil, food.ErrConversionExists
	} else if !errors.Is(err, food.ErrConversionNotFound) {
		return nil, err
	}

	if err := s.conversions.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// ListConversions returns all food-specific conversions of a food item.
func (s *FoodService) ListConversions(ctx context.Context, foodItemID int64) ([]*food.Conversion, error) {
	if _, err := s.foods.FindByID(ctx, foodItemID); err != nil {
		return nil, err
	}
	return s.conversions.FindByFoodItem(ctx, foodItemID)
}

// DeleteConversion removes a food-specific conversion.
func (s *FoodService) DeleteConversion(ctx context.Context, foodItemID, fromUnitID, toUnitID int64) error {
	return s.conversions.Delete(ctx, foodItemID, fromUnitID, toUnitID)
}

package gorm

import (
	"context"
	"errors"

	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// FoodRepository implements outbound.FoodRepository using GORM
type FoodRepository struct {
	db *gorm.DB
}

// NewFoodRepository creates a new food repository
func NewFoodRepository(db *gorm.DB) *FoodRepository {
	return &FoodRepository{db: db}
}

var _ outbound.FoodRepository = (*FoodRepository)(nil)

// Create persists a new food item
func (r *FoodRepository) Create(ctx context.Context, item *food.Item) error {
	model := foodItemToModel(item)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	return nil
}

// Update persists food item changes
func (r *FoodRepository) Update(ctx context.Context, item *food.Item) error {
	result := r.db.WithContext(ctx).Model(&FoodItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":         item.Name,
			"category":     item.Category,
			"base_unit_id": item.BaseUnitID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return food.ErrNotFound
	}
	return nil
}

// Delete removes a food item and its food-specific conversions
func (r *FoodRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_item_id = ?", id).Delete(&FoodItemUnitConversionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&FoodItemModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return food.ErrNotFound
		}
		return nil
	})
}

// FindByID loads one food item by primary key
func (r *FoodRepository) FindByID(ctx context.Context, id int64) (*food.Item, error) {
	var model FoodItemModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, food.ErrNotFound
		}
		return nil, err
	}
	return foodItemToDomain(&model), nil
}

// FindByName loads one food item by its normalized name
func (r *FoodRepository) FindByName(ctx context.Context, name string) (*food.Item, error) {
	var model FoodItemModel
	if err := r.db.WithContext(ctx).Where("name = ?", food.NormalizeName(name)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, food.ErrNotFound
		}
		return nil, err
	}
	return foodItemToDomain(&model), nil
}

// FindAll lists food items with optional category filter and pagination
func (r *FoodRepository) FindAll(ctx context.Context, category string, offset, limit int) ([]*food.Item, int, error) {
	query := r.db.WithContext(ctx).Model(&FoodItemModel{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []FoodItemModel
	if err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*food.Item, 0, len(models))
	for i := range models {
		items = append(items, foodItemToDomain(&models[i]))
	}
	return items, int(total), nil
}

// FoodConversionRepository implements outbound.FoodConversionRepository using GORM
type FoodConversionRepository struct {
	db *gorm.DB
}

// NewFoodConversionRepository creates a new food conversion repository
func NewFoodConversionRepository(db *gorm.DB) *FoodConversionRepository {
	return &FoodConversionRepository{db: db}
}

var _ outbound.FoodConversionRepository = (*FoodConversionRepository)(nil)

// Create persists a new food-specific conversion
func (r *FoodConversionRepository) Create(ctx context.Context, c *food.Conversion) error {
	model := &FoodItemUnitConversionModel{
		FoodItemID: c.FoodItemID,
		FromUnitID: c.FromUnitID,
		ToUnitID:   c.ToUnitID,
		Factor:     c.Factor,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	c.CreatedAt = model.CreatedAt
	return nil
}

// Delete removes a food-specific conversion
func (r *FoodConversionRepository) Delete(ctx context.Context, foodItemID, fromUnitID, toUnitID int64) error {
	result := r.db.WithContext(ctx).
		Where("food_item_id = ? AND from_unit_id = ? AND to_unit_id = ?", foodItemID, fromUnitID, toUnitID).
		Delete(&FoodItemUnitConversionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return food.ErrConversionNotFound
	}
	return nil
}

// FindPair loads the food-specific conversion row for an exact unit pair
func (r *FoodConversionRepository) FindPair(ctx context.Context, foodItemID, fromUnitID, toUnitID int64) (*food.Conversion, error) {
	var model FoodItemUnitConversionModel
	err := r.db.WithContext(ctx).
		Where("food_item_id = ? AND from_unit_id = ? AND to_unit_id = ?", foodItemID, fromUnitID, toUnitID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, food.ErrConversionNotFound
		}
		return nil, err
	}
	return foodConversionToDomain(&model), nil
}

// FindByFoodItem lists all conversions registered for one food item
func (r *FoodConversionRepository) FindByFoodItem(ctx context.Context, foodItemID int64) ([]*food.Conversion, error) {
	var models []FoodItemUnitConversionModel
	err := r.db.WithContext(ctx).
		Where("food_item_id = ?", foodItemID).
		Order("from_unit_id, to_unit_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	conversions := make([]*food.Conversion, 0, len(models))
	for i := range models {
		conversions = append(conversions, foodConversionToDomain(&models[i]))
	}
	return conversions, nil
}

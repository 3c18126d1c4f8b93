package gorm

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate runs schema migrations for all models
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&UnitModel{},
		&UnitConversionModel{},
		&FoodItemModel{},
		&FoodItemUnitConversionModel{},
		&KitchenModel{},
		&StorageLocationModel{},
		&InventoryItemModel{},
		&RecipeModel{},
		&RecipeIngredientModel{},
		&RecipeStepModel{},
		&RecipeNutritionModel{},
		&AIModelOutputModel{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Seed inserts the base unit catalog, a few pantry staples, and a starter
// kitchen. It is idempotent: a non-empty units table skips seeding entirely.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&UnitModel{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing units: %w", err)
	}
	if count > 0 {
		return nil
	}

	units := []UnitModel{
		{Name: "gram", Type: "weight", ToBaseFactor: 1},
		{Name: "kilogram", Type: "weight", ToBaseFactor: 1000},
		{Name: "milliliter", Type: "volume", ToBaseFactor: 1},
		{Name: "liter", Type: "volume", ToBaseFactor: 1000},
		{Name: "piece", Type: "count", ToBaseFactor: 1},
		{Name: "dozen", Type: "count", ToBaseFactor: 12},
		{Name: "teaspoon", Type: "measure", ToBaseFactor: 1},
		{Name: "tablespoon", Type: "measure", ToBaseFactor: 3},
		{Name: "cup", Type: "measure", ToBaseFactor: 48},
		{Name: "package", Type: "package", ToBaseFactor: 1},
	}
	if err := db.Create(&units).Error; err != nil {
		return fmt.Errorf("failed to seed units: %w", err)
	}

	byName := make(map[string]int64, len(units))
	for _, u := range units {
		byName[u.Name] = u.ID
	}

	conversions := []UnitConversionModel{
		{FromUnitID: byName["tablespoon"], ToUnitID: byName["milliliter"], Factor: 15},
		{FromUnitID: byName["teaspoon"], ToUnitID: byName["milliliter"], Factor: 5},
		{FromUnitID: byName["cup"], ToUnitID: byName["milliliter"], Factor: 240},
	}
	if err := db.Create(&conversions).Error; err != nil {
		return fmt.Errorf("failed to seed unit conversions: %w", err)
	}

	foods := []FoodItemModel{
		{Name: "flour", Category: "baking", BaseUnitID: byName["gram"]},
		{Name: "sugar", Category: "baking", BaseUnitID: byName["gram"]},
		{Name: "milk", Category: "dairy", BaseUnitID: byName["milliliter"]},
		{Name: "egg", Category: "dairy", BaseUnitID: byName["piece"]},
		{Name: "olive oil", Category: "pantry", BaseUnitID: byName["milliliter"]},
	}
	if err := db.Create(&foods).Error; err != nil {
		return fmt.Errorf("failed to seed food items: %w", err)
	}

	// Density bridges so volume recipes can draw on weight-tracked stock.
	foodConversions := []FoodItemUnitConversionModel{
		{FoodItemID: foods[0].ID, FromUnitID: byName["cup"], ToUnitID: byName["gram"], Factor: 120},
		{FoodItemID: foods[1].ID, FromUnitID: byName["cup"], ToUnitID: byName["gram"], Factor: 200},
	}
	if err := db.Create(&foodConversions).Error; err != nil {
		return fmt.Errorf("failed to seed food conversions: %w", err)
	}

	kitchen := KitchenModel{Name: "Home Kitchen"}
	if err := db.Create(&kitchen).Error; err != nil {
		return fmt.Errorf("failed to seed kitchen: %w", err)
	}
	locations := []StorageLocationModel{
		{KitchenID: kitchen.ID, Name: "Pantry"},
		{KitchenID: kitchen.ID, Name: "Fridge"},
		{KitchenID: kitchen.ID, Name: "Freezer"},
	}
	if err := db.Create(&locations).Error; err != nil {
		return fmt.Errorf("failed to seed storage locations: %w", err)
	}

	return nil
}

// Package food contains the food catalog domain model.
// Every food item declares a base unit; amounts stored elsewhere
// (inventory lots, recipe ingredients) are expressed in that base unit.
package food

import (
	"strings"
	"time"
)

// Item represents a catalog entry such as "sugar" or "olive oil".
type Item struct {
	ID         int64
	Name       string
	Category   string
	BaseUnitID int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeName collapses interior whitespace and lowercases a food name
// so that "  Brown   Sugar " and "brown sugar" identify the same item.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// NewItem creates a validated food item with a normalized name.
func NewItem(name, category string, baseUnitID int64) (*Item, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if baseUnitID <= 0 {
		return nil, ErrInvalidBaseUnit
	}
	return &Item{
		Name:       name,
		Category:   strings.TrimSpace(category),
		BaseUnitID: baseUnitID,
	}, nil
}

// Conversion is a food-specific conversion between two units, used when
// density or packaging makes the generic factors wrong for this food
// (e.g. 1 cup of flour weighs less than 1 cup of sugar).
type Conversion struct {
	FoodItemID int64
	FromUnitID int64
	ToUnitID   int64
	Factor     float64
	CreatedAt  time.Time
}

// NewConversion creates a validated food-specific conversion.
func NewConversion(foodItemID, fromUnitID, toUnitID int64, factor float64) (*Conversion, error) {
	if foodItemID <= 0 {
		return nil, ErrNotFound
	}
	if fromUnitID == toUnitID {
		return nil, ErrSameUnit
	}
	if factor <= 0 {
		return nil, ErrInvalidFactor
	}
	return &Conversion{
		FoodItemID: foodItemID,
		FromUnitID: fromUnitID,
		ToUnitID:   toUnitID,
		Factor:     factor,
	}, nil
}

// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UnitModel represents the GORM model for measurement units
type UnitModel struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Name         string  `gorm:"type:varchar(100);uniqueIndex;not null"`
	Type         string  `gorm:"type:varchar(20);not null;index"`
	ToBaseFactor float64 `gorm:"not null;check:to_base_factor > 0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UnitConversionModel represents generic conversions between units
type UnitConversionModel struct {
	FromUnitID int64   `gorm:"primaryKey;autoIncrement:false"`
	ToUnitID   int64   `gorm:"primaryKey;autoIncrement:false"`
	Factor     float64 `gorm:"not null;check:factor > 0"`
	CreatedAt  time.Time

	FromUnit UnitModel `gorm:"foreignKey:FromUnitID"`
	ToUnit   UnitModel `gorm:"foreignKey:ToUnitID"`
}

// FoodItemModel represents the GORM model for food catalog entries
type FoodItemModel struct {
	ID         int64  `gorm:"primaryKey;autoIncrement"`
	Name       string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Category   string `gorm:"type:varchar(100);index"`
	BaseUnitID int64  `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	BaseUnit UnitModel `gorm:"foreignKey:BaseUnitID"`
}

// FoodItemUnitConversionModel represents food-specific conversions
type FoodItemUnitConversionModel struct {
	FoodItemID int64   `gorm:"primaryKey;autoIncrement:false"`
	FromUnitID int64   `gorm:"primaryKey;autoIncrement:false"`
	ToUnitID   int64   `gorm:"primaryKey;autoIncrement:false"`
	Factor     float64 `gorm:"not null;check:factor > 0"`
	CreatedAt  time.Time

	FoodItem FoodItemModel `gorm:"foreignKey:FoodItemID"`
	FromUnit UnitModel     `gorm:"foreignKey:FromUnitID"`
	ToUnit   UnitModel     `gorm:"foreignKey:ToUnitID"`
}

// KitchenModel represents the GORM model for kitchens
type KitchenModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Name      string `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StorageLocationModel represents named places inside a kitchen
type StorageLocationModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	KitchenID int64  `gorm:"not null;uniqueIndex:idx_location_kitchen_name"`
	Name      string `gorm:"type:varchar(100);not null;uniqueIndex:idx_location_kitchen_name"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Kitchen KitchenModel `gorm:"foreignKey:KitchenID"`
}

// InventoryItemModel represents one inventory lot
type InventoryItemModel struct {
	ID                int64      `gorm:"primaryKey;autoIncrement"`
	KitchenID         int64      `gorm:"not null;uniqueIndex:idx_inventory_lot;index"`
	FoodItemID        int64      `gorm:"not null;uniqueIndex:idx_inventory_lot;index"`
	StorageLocationID int64      `gorm:"not null;uniqueIndex:idx_inventory_lot"`
	Quantity          float64    `gorm:"not null;check:quantity >= 0"`
	MinQuantity       *float64   `gorm:""`
	ExpirationDate    *time.Time `gorm:"index"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Kitchen         KitchenModel         `gorm:"foreignKey:KitchenID"`
	FoodItem        FoodItemModel        `gorm:"foreignKey:FoodItemID"`
	StorageLocation StorageLocationModel `gorm:"foreignKey:StorageLocationID"`
}

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID              int64       `gorm:"primaryKey;autoIncrement"`
	Title           string      `gorm:"type:varchar(255);not null;index"`
	Description     string      `gorm:"type:text"`
	Servings        int         `gorm:"default:1"`
	Difficulty      string      `gorm:"type:varchar(20);index"`
	Tags            StringSlice `gorm:"type:json"`
	AIGenerated     bool        `gorm:"default:false;index"`
	AIModel         string      `gorm:"type:varchar(100)"`
	PrepTimeMinutes int         `gorm:"column:prep_time_minutes;default:0"`
	CookTimeMinutes int         `gorm:"column:cook_time_minutes;default:0"`
	CreatedAt       time.Time   `gorm:"index"`
	UpdatedAt       time.Time

	Ingredients []RecipeIngredientModel `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Steps       []RecipeStepModel       `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Nutrition   *RecipeNutritionModel   `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredientModel links a recipe to a food item
type RecipeIngredientModel struct {
	RecipeID         int64    `gorm:"primaryKey;autoIncrement:false"`
	FoodItemID       int64    `gorm:"primaryKey;autoIncrement:false"`
	AmountInBaseUnit float64  `gorm:"not null;check:amount_in_base_unit > 0"`
	OriginalAmount   *float64 `gorm:""`
	OriginalUnitID   *int64   `gorm:""`

	FoodItem FoodItemModel `gorm:"foreignKey:FoodItemID"`
}

// RecipeStepModel represents one ordered preparation step
type RecipeStepModel struct {
	RecipeID    int64  `gorm:"primaryKey;autoIncrement:false"`
	StepNumber  int    `gorm:"primaryKey;autoIncrement:false"`
	Instruction string `gorm:"type:text;not null"`
}

// RecipeNutritionModel holds per-serving nutrition facts
type RecipeNutritionModel struct {
	RecipeID int64    `gorm:"primaryKey;autoIncrement:false"`
	Kcal     *float64 `gorm:""`
	Protein  *float64 `gorm:""`
	Fat      *float64 `gorm:""`
	Carbs    *float64 `gorm:""`
}

// AIModelOutputModel is the audit record of one AI round trip
type AIModelOutputModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	RequestID   uuid.UUID `gorm:"type:char(36);uniqueIndex;not null"`
	Provider    string    `gorm:"type:varchar(50);not null"`
	Model       string    `gorm:"type:varchar(100);not null"`
	Prompt      string    `gorm:"type:text;not null"`
	RawResponse string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"index"`
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// TableName methods for custom table names
func (UnitModel) TableName() string {
	return "units"
}

func (UnitConversionModel) TableName() string {
	return "unit_conversions"
}

func (FoodItemModel) TableName() string {
	return "food_items"
}

func (FoodItemUnitConversionModel) TableName() string {
	return "food_item_unit_conversions"
}

func (KitchenModel) TableName() string {
	return "kitchens"
}

func (StorageLocationModel) TableName() string {
	return "storage_locations"
}

func (InventoryItemModel) TableName() string {
	return "inventory_items"
}

func (RecipeModel) TableName() string {
	return "recipes"
}

func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

func (RecipeStepModel) TableName() string {
	return "recipe_steps"
}

func (RecipeNutritionModel) TableName() string {
	return "recipe_nutrition"
}

func (AIModelOutputModel) TableName() string {
	return "ai_model_outputs"
}

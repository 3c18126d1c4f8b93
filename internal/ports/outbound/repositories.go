// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/kitchen"
	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/domain/unit"
)

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	Create(ctx context.Context, u *unit.Unit) error
	Update(ctx context.Context, u *unit.Unit) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*unit.Unit, error)
	FindByName(ctx context.Context, name string) (*unit.Unit, error)
	FindAll(ctx context.Context, unitType *unit.Type) ([]*unit.Unit, error)

	// HasConversions reports whether any generic or food-specific
	// conversion references the unit. Deletion is blocked while true.
	HasConversions(ctx context.Context, id int64) (bool, error)
}

// UnitConversionRepository defines the interface for generic conversion persistence
type UnitConversionRepository interface {
	Create(ctx context.Context, c *unit.Conversion) error
	Delete(ctx context.Context, fromUnitID, toUnitID int64) error
	FindPair(ctx context.Context, fromUnitID, toUnitID int64) (*unit.Conversion, error)
	FindAll(ctx context.Context) ([]*unit.Conversion, error)
}

// FoodRepository defines the interface for food catalog persistence
type FoodRepository interface {
	Create(ctx context.Context, item *food.Item) error
	Update(ctx context.Context, item *food.Item) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*food.Item, error)
	FindByName(ctx context.Context, name string) (*food.Item, error)
	FindAll(ctx context.Context, category string, offset, limit int) ([]*food.Item, int, error)
}

// FoodConversionRepository defines the interface for food-specific conversion persistence
type FoodConversionRepository interface {
	Create(ctx context.Context, c *food.Conversion) error
	Delete(ctx context.Context, foodItemID, fromUnitID, toUnitID int64) error
	FindPair(ctx context.Context, foodItemID, fromUnitID, toUnitID int64) (*food.Conversion, error)
	FindByFoodItem(ctx context.Context, foodItemID int64) ([]*food.Conversion, error)
}

// KitchenRepository defines the interface for kitchen and storage location persistence
type KitchenRepository interface {
	Create(ctx context.Context, k *kitchen.Kitchen) error
	Update(ctx context.Context, k *kitchen.Kitchen) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*kitchen.Kitchen, error)
	FindAll(ctx context.Context) ([]*kitchen.Kitchen, error)

	CreateLocation(ctx context.Context, loc *kitchen.StorageLocation) error
	UpdateLocation(ctx context.Context, loc *kitchen.StorageLocation) error
	DeleteLocation(ctx context.Context, id int64) error
	FindLocationByID(ctx context.Context, id int64) (*kitchen.StorageLocation, error)
	FindLocations(ctx context.Context, kitchenID int64) ([]*kitchen.StorageLocation, error)
}

// InventoryRepository defines the interface for inventory lot persistence
type InventoryRepository interface {
	Save(ctx context.Context, item *inventory.Item) error
	Update(ctx context.Context, item *inventory.Item) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*inventory.Item, error)
	FindByKey(ctx context.Context, kitchenID, foodItemID, storageLocationID int64) (*inventory.Item, error)
	FindByKitchen(ctx context.Context, kitchenID int64) ([]*inventory.Item, error)

	// FindAvailableLots returns all lots of a food item in a kitchen with
	// quantity > 0, ordered by expiration date ascending with undated
	// lots last, so consumption always drains the oldest stock first.
	FindAvailableLots(ctx context.Context, kitchenID, foodItemID int64) ([]*inventory.Item, error)

	// DeductLots applies all deductions in a single transaction using
	// guarded decrements. If any lot no longer covers its deduction the
	// whole transaction rolls back with inventory.ErrStockConflict.
	DeductLots(ctx context.Context, deductions []inventory.Deduction) error

	FindLowStock(ctx context.Context, kitchenID int64) ([]*inventory.Item, error)
	FindExpiringBefore(ctx context.Context, kitchenID int64, cutoff time.Time) ([]*inventory.Item, error)
}

// RecipeRepository defines the interface for recipe persistence
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id int64) error

	// FindByID loads the recipe with ingredients (including denormalized
	// food item names), steps, and nutrition.
	FindByID(ctx context.Context, id int64) (*recipe.Recipe, error)
	FindAll(ctx context.Context, filter recipe.Filter) ([]*recipe.Recipe, int, error)

	// FindByFoodItems returns recipes whose ingredient lists are covered
	// by the given food items to at least minMatch (0..1).
	FindByFoodItems(ctx context.Context, foodItemIDs []int64, minMatch float64) ([]*recipe.Recipe, error)

	Summary(ctx context.Context) (*recipe.Summary, error)
}

// AIModelOutput is an audit record of one AI generation round trip.
type AIModelOutput struct {
	ID          int64
	RequestID   uuid.UUID
	Provider    string
	Model       string
	Prompt      string
	RawResponse string
	CreatedAt   time.Time
}

// ErrAIOutputNotFound is returned when no audit record exists for a request.
var ErrAIOutputNotFound = errors.New("ai output not found")

// AIOutputRepository defines the interface for AI audit trail persistence
type AIOutputRepository interface {
	Create(ctx context.Context, output *AIModelOutput) error
	FindByRequestID(ctx context.Context, requestID uuid.UUID) (*AIModelOutput, error)
	FindRecent(ctx context.Context, limit int) ([]*AIModelOutput, error)
}

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// AIConstraints for AI recipe generation
type AIConstraints struct {
	Servings         int
	MaxKcal          int
	Dietary          []string
	AvoidIngredients []string
}

// AIIngredient from the AI provider
type AIIngredient struct {
	Name   string
	Amount float64
	Unit   string
}

// AIRecipeResponse from the AI provider
type AIRecipeResponse struct {
	RequestID    uuid.UUID
	Provider     string
	Model        string
	Title        string
	Description  string
	Ingredients  []AIIngredient
	Instructions []string
	Tags         []string
}

// AIClient defines the interface one AI provider adapter implements
type AIClient interface {
	Provider() string
	Model() string
	GenerateRecipe(ctx context.Context, prompt string, constraints AIConstraints) (*AIRecipeResponse, error)
}

// AIService defines the interface for AI operations as seen by the API layer
type AIService interface {
	GenerateRecipe(ctx context.Context, prompt string, constraints AIConstraints) (*AIRecipeResponse, error)
}

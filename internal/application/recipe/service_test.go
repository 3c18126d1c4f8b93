package recipe

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/ports/outbound"
)

type mockRecipeRepo struct{ mock.Mock }

func (m *mockRecipeRepo) Create(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRecipeRepo) Update(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRecipeRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRecipeRepo) FindByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*recipe.Recipe), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecipeRepo) FindAll(ctx context.Context, filter recipe.Filter) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.([]*recipe.Recipe), args.Int(1), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockRecipeRepo) FindByFoodItems(ctx context.Context, foodItemIDs []int64, minMatch float64) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, foodItemIDs, minMatch)
	if r := args.Get(0); r != nil {
		return r.([]*recipe.Recipe), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecipeRepo) Summary(ctx context.Context) (*recipe.Summary, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*recipe.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFoodRepo struct{ mock.Mock }

func (m *mockFoodRepo) Create(ctx context.Context, item *food.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockFoodRepo) Update(ctx context.Context, item *food.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockFoodRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockFoodRepo) FindByID(ctx context.Context, id int64) (*food.Item, error) {
	args := m.Called(ctx, id)
	if f := args.Get(0); f != nil {
		return f.(*food.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFoodRepo) FindByName(ctx context.Context, name string) (*food.Item, error) {
	args := m.Called(ctx, name)
	if f := args.Get(0); f != nil {
		return f.(*food.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFoodRepo) FindAll(ctx context.Context, category string, offset, limit int) ([]*food.Item, int, error) {
	args := m.Called(ctx, category, offset, limit)
	if f := args.Get(0); f != nil {
		return f.([]*food.Item), args.Int(1), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

type mockInventoryRepo struct{ mock.Mock }

func (m *mockInventoryRepo) Save(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockInventoryRepo) Update(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *mockInventoryRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockInventoryRepo) FindByID(ctx context.Context, id int64) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if i := args.Get(0); i != nil {
		return i.(*inventory.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInventoryRepo) FindByKey(ctx context.Context, kitchenID, foodItemID, storageLocationID int64) (*inventory.Item, error) {
	args := m.Called(ctx, kitchenID, foodItemID, storageLocationID)
	if i := args.Get(0); i != nil {
		return i.(*inventory.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInventoryRepo) FindByKitchen(ctx context.Context, kitchenID int64) ([]*inventory.Item, error) {
	args := m.Called(ctx, kitchenID)
	if i := args.Get(0); i != nil {
		return i.([]*inventory.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInventoryRepo) FindAvailableLots(ctx context.Context, kitchenID, foodItemID int64) ([]*inventory.Item, error) {
	args := m.Called(ctx, kitchenID, foodItemID)
	if i := args.Get(0); i != nil {
		return i.([]*inventory.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInventoryRepo) DeductLots(ctx context.Context, deductions []inventory.Deduction) error {
	return m.Called(ctx, deductions).Error(0)
}

func (m *mockInventoryRepo) FindLowStock(ctx context.Context, kitchenID int64) ([]*inventory.Item, error) {
	args := m.Called(ctx, kitchenID)
	if i := args.Get(0); i != nil {
		return i.([]*inventory.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockInventoryRepo) FindExpiringBefore(ctx context.Context, kitchenID int64, cutoff time.Time) ([]*inventory.Item, error) {
	args := m.Called(ctx, kitchenID, cutoff)
	if i := args.Get(0); i != nil {
		return i.([]*inventory.Item), args.Error(1)
	}
	return nil, args.Error(1)
}

// fakeCache is a map-backed CacheRepository without expiry, enough to
// observe cache-aside behavior.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.entries[key]; ok {
		return data, nil
	}
	return nil, outbound.ErrCacheMiss
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func newTestService() (*RecipeService, *mockRecipeRepo, *mockFoodRepo, *mockInventoryRepo, *fakeCache) {
	recipes := new(mockRecipeRepo)
	foods := new(mockFoodRepo)
	inv := new(mockInventoryRepo)
	cache := newFakeCache()
	svc := NewRecipeService(recipes, foods, inv, cache, time.Minute, zap.NewNop()).(*RecipeService)
	return svc, recipes, foods, inv, cache
}

func sampleRecipe(id int64) *recipe.Recipe {
	return &recipe.Recipe{
		ID:       id,
		Title:    "Pancakes",
		Servings: 2,
		Ingredients: []recipe.Ingredient{
			{RecipeID: id, FoodItemID: 1, FoodItemName: "flour", AmountInBaseUnit: 200},
			{RecipeID: id, FoodItemID: 2, FoodItemName: "egg", AmountInBaseUnit: 2},
		},
	}
}

func TestGetRecipeCachesSecondRead(t *testing.T) {
	svc, recipes, _, _, _ := newTestService()
	ctx := context.Background()

	recipes.On("FindByID", ctx, int64(5)).Return(sampleRecipe(5), nil).Once()

	first, err := svc.GetRecipe(ctx, 5)
	require.NoError(t, err)

	// Served from cache; a second repository call would fail the mock.
	second, err := svc.GetRecipe(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, first.Title, second.Title)
	assert.Len(t, second.Ingredients, 2)
	recipes.AssertExpectations(t)
}

func TestUpdateRecipeInvalidatesCache(t *testing.T) {
	svc, recipes, foods, _, cache := newTestService()
	ctx := context.Background()

	recipes.On("FindByID", ctx, int64(5)).Return(sampleRecipe(5), nil)
	foods.On("FindByID", ctx, int64(1)).Return(&food.Item{ID: 1, Name: "flour"}, nil)
	foods.On("FindByID", ctx, int64(2)).Return(&food.Item{ID: 2, Name: "egg"}, nil)
	recipes.On("Update", ctx, mock.AnythingOfType("*recipe.Recipe")).Return(nil)

	_, err := svc.GetRecipe(ctx, 5)
	require.NoError(t, err)

	exists, _ := cache.Exists(ctx, "recipe:5")
	require.True(t, exists)

	require.NoError(t, svc.UpdateRecipe(ctx, sampleRecipe(5)))

	exists, _ = cache.Exists(ctx, "recipe:5")
	assert.False(t, exists)
}

func TestCreateRecipeResolvesIngredientNames(t *testing.T) {
	svc, recipes, foods, _, _ := newTestService()
	ctx := context.Background()

	r := sampleRecipe(0)
	r.Ingredients[0].FoodItemName = ""
	r.Ingredients[1].FoodItemName = ""

	foods.On("FindByID", ctx, int64(1)).Return(&food.Item{ID: 1, Name: "flour"}, nil)
	foods.On("FindByID", ctx, int64(2)).Return(&food.Item{ID: 2, Name: "egg"}, nil)
	recipes.On("Create", ctx, r).Return(nil)

	require.NoError(t, svc.CreateRecipe(ctx, r))
	assert.Equal(t, "flour", r.Ingredients[0].FoodItemName)
	assert.Equal(t, "egg", r.Ingredients[1].FoodItemName)
}

func TestCreateRecipeRejectsUnknownFoodItem(t *testing.T) {
	svc, _, foods, _, _ := newTestService()
	ctx := context.Background()

	foods.On("FindByID", ctx, int64(1)).Return(nil, food.ErrNotFound)

	err := svc.CreateRecipe(ctx, sampleRecipe(0))
	assert.ErrorIs(t, err, food.ErrNotFound)
}

func TestCreateRecipeRejectsDuplicateIngredients(t *testing.T) {
	svc, _, _, _, _ := newTestService()

	r := sampleRecipe(0)
	r.Ingredients[1].FoodItemID = 1

	err := svc.CreateRecipe(context.Background(), r)
	assert.ErrorIs(t, err, recipe.ErrDuplicateIngredient)
}

func TestListRecipesClampsPagination(t *testing.T) {
	svc, recipes, _, _, _ := newTestService()
	ctx := context.Background()

	recipes.On("FindAll", ctx, recipe.Filter{Limit: 20}).Return([]*recipe.Recipe{}, 0, nil)

	_, total, err := svc.ListRecipes(ctx, recipe.Filter{Limit: 0, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	recipes.AssertExpectations(t)
}

func TestFindCookableWithEmptyInventory(t *testing.T) {
	svc, recipes, _, inv, _ := newTestService()
	ctx := context.Background()

	inv.On("FindByKitchen", ctx, int64(1)).Return([]*inventory.Item{}, nil)

	result, err := svc.FindCookable(ctx, 1, 0.8)
	require.NoError(t, err)
	assert.Empty(t, result)
	recipes.AssertNotCalled(t, "FindByFoodItems")
}

func TestFindCookableDeduplicatesFoodItems(t *testing.T) {
	svc, recipes, _, inv, _ := newTestService()
	ctx := context.Background()

	inv.On("FindByKitchen", ctx, int64(1)).Return([]*inventory.Item{
		{ID: 1, FoodItemID: 7, Quantity: 100},
		{ID: 2, FoodItemID: 7, Quantity: 50},
		{ID: 3, FoodItemID: 8, Quantity: 0},
		{ID: 4, FoodItemID: 9, Quantity: 3},
	}, nil)
	recipes.On("FindByFoodItems", ctx, []int64{7, 9}, 0.8).Return([]*recipe.Recipe{sampleRecipe(5)}, nil)

	result, err := svc.FindCookable(ctx, 1, 0.8)
	require.NoError(t, err)
	require.Len(t, result, 1)
	recipes.AssertExpectations(t)
}

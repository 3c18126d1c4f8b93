package cooking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/recipe"
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

func newTestService() (*Service, *mockRecipeRepo, *mockInventoryRepo) {
	recipes := new(mockRecipeRepo)
	inv := new(mockInventoryRepo)
	return NewService(recipes, inv, zap.NewNop()), recipes, inv
}

func TestCookRecipeNotFound(t *testing.T) {
	svc, recipes, _ := newTestService()
	ctx := context.Background()

	recipes.On("FindByID", ctx, int64(99)).Return(nil, recipe.ErrNotFound)

	_, err := svc.CookRecipe(ctx, 99, 1)
	assert.ErrorIs(t, err, recipe.ErrNotFound)
}

func TestCookRecipeNoIngredients(t *testing.T) {
	svc, recipes, _ := newTestService()
	ctx := context.Background()

	recipes.On("FindByID", ctx, int64(1)).Return(&recipe.Recipe{ID: 1, Title: "Water"}, nil)

	_, err := svc.CookRecipe(ctx, 1, 1)
	assert.ErrorIs(t, err, recipe.ErrNoIngredients)
}

func TestCookRecipeDrainsOldestLotsFirst(t *testing.T) {
	svc, recipes, inv := newTestService()
	ctx := context.Background()

	recipes.On("FindByID", ctx, int64(1)).Return(&recipe.Recipe{
		ID:    1,
		Title: "Bread",
		Ingredients: []recipe.Ingredient{
			{RecipeID: 1, FoodItemID: 7, FoodItemName: "flour", AmountInBaseUnit: 5},
		},
	}, nil)

	// Repository returns lots oldest expiration first.
	inv.On("FindAvailableLots", ctx, int64(2), int64(7)).Return([]*inventory.Item{
		{ID: 11, KitchenID: 2, FoodItemID: 7, Quantity: 3},
		{ID: 12, KitchenID: 2, FoodItemID: 7, Quantity: 4},
	}, nil)

	inv.On("DeductLots", ctx, []inventory.Deduction{
		{ItemID: 11, Amount: 3},
		{ItemID: 12, Amount: 2},
	}).Return(nil)

	result, err := svc.CookRecipe(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, []int64{11, 12}, result.UpdatedInventoryItems)
	assert.Contains(t, result.Message, "Bread")
	inv.AssertExpectations(t)
}

func TestCookRecipeCollectsAllShortfalls(t *testing.T) {
	svc, recipes, inv := newTestService()
	ctx := context.Background()

	recipes.On("FindByID", ctx, int64(1)).Return(&recipe.Recipe{
		ID:    1,
		Title: "Cake",
		Ingredients: []recipe.Ingredient{
			{RecipeID: 1, FoodItemID: 1, FoodItemName: "sugar", AmountInBaseUnit: 500},
			{RecipeID: 1, FoodItemID: 2, FoodItemName: "egg", AmountInBaseUnit: 3},
			{RecipeID: 1, FoodItemID: 3, FoodItemName: "flour", AmountInBaseUnit: 200},
		},
	}, nil)

	inv.On("FindAvailableLots", ctx, int64(2), int64(1)).Return([]*inventory.Item{
		{ID: 21, Quantity: 120},
	}, nil)
	inv.On("FindAvailableLots", ctx, int64(2), int64(2)).Return([]*inventory.Item{}, nil)
	inv.On("FindAvailableLots", ctx, int64(2), int64(3)).Return([]*inventory.Item{
		{ID: 22, Quantity: 900},
	}, nil)

	_, err := svc.CookRecipe(ctx, 1, 2)
	require.Error(t, err)

	var insufficient *recipe.InsufficientIngredientsError
	require.ErrorAs(t, err, &insufficient)
	require.Len(t, insufficient.Shortfalls, 2)
	assert.Equal(t, recipe.Shortfall{
		FoodItemID: 1, FoodItemName: "sugar", RequiredAmount: 500, AvailableAmount: 120,
	}, insufficient.Shortfalls[0])
	assert.Equal(t, recipe.Shortfall{
		FoodItemID: 2, FoodItemName: "egg", RequiredAmount: 3, AvailableAmount: 0,
	}, insufficient.Shortfalls[1])

	// A partially cookable recipe must not touch inventory.
	inv.AssertNotCalled(t, "DeductLots", mock.Anything, mock.Anything)
}

func TestCookRecipeStockConflictPropagates(t *testing.T) {
	svc, recipes, inv := newTestService()
	ctx := context.Background()

	recipes.On("FindByID", ctx, int64(1)).Return(&recipe.Recipe{
		ID:    1,
		Title: "Soup",
		Ingredients: []recipe.Ingredient{
			{RecipeID: 1, FoodItemID: 5, FoodItemName: "carrot", AmountInBaseUnit: 2},
		},
	}, nil)
	inv.On("FindAvailableLots", ctx, int64(3), int64(5)).Return([]*inventory.Item{
		{ID: 31, Quantity: 6},
	}, nil)
	inv.On("DeductLots", ctx, mock.Anything).Return(inventory.ErrStockConflict)

	_, err := svc.CookRecipe(ctx, 1, 3)
	assert.ErrorIs(t, err, inventory.ErrStockConflict)
}

func TestCookRecipeCheckIsIdempotent(t *testing.T) {
	svc, recipes, inv := newTestService()
	ctx := context.Background()

	recipes.On("FindByID", ctx, int64(1)).Return(&recipe.Recipe{
		ID:    1,
		Title: "Cake",
		Ingredients: []recipe.Ingredient{
			{RecipeID: 1, FoodItemID: 1, FoodItemName: "sugar", AmountInBaseUnit: 500},
		},
	}, nil)
	inv.On("FindAvailableLots", ctx, int64(2), int64(1)).Return([]*inventory.Item{
		{ID: 21, Quantity: 120},
	}, nil)

	for i := 0; i < 2; i++ {
		_, err := svc.CookRecipe(ctx, 1, 2)
		var insufficient *recipe.InsufficientIngredientsError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 120.0, insufficient.Shortfalls[0].AvailableAmount)
	}
	inv.AssertNotCalled(t, "DeductLots", mock.Anything, mock.Anything)
}

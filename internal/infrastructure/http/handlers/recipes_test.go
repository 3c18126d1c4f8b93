package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/infrastructure/monitoring"
)

type mockRecipeService struct{ mock.Mock }

func (m *mockRecipeService) CreateRecipe(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRecipeService) GetRecipe(ctx context.Context, id int64) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*recipe.Recipe), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecipeService) ListRecipes(ctx context.Context, filter recipe.Filter) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.([]*recipe.Recipe), args.Int(1), args.Error(2)
	}
	return nil, 0, args.Error(2)
}

func (m *mockRecipeService) UpdateRecipe(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRecipeService) DeleteRecipe(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRecipeService) Summary(ctx context.Context) (*recipe.Summary, error) {
	args := m.Called(ctx)
	if s := args.Get(0); s != nil {
		return s.(*recipe.Summary), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRecipeService) FindCookable(ctx context.Context, kitchenID int64, minMatch float64) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, kitchenID, minMatch)
	if r := args.Get(0); r != nil {
		return r.([]*recipe.Recipe), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCookingService struct{ mock.Mock }

func (m *mockCookingService) CookRecipe(ctx context.Context, recipeID, kitchenID int64) (*recipe.CookResult, error) {
	args := m.Called(ctx, recipeID, kitchenID)
	if r := args.Get(0); r != nil {
		return r.(*recipe.CookResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func newRecipesTestRouter(t *testing.T) (*chi.Mux, *mockRecipeService, *mockCookingService) {
	t.Helper()
	recipes := new(mockRecipeService)
	cooking := new(mockCookingService)
	handler := NewRecipesHandler(recipes, cooking, monitoring.NewMetrics(), validator.New(), zap.NewNop())

	r := chi.NewRouter()
	r.Route("/recipes", handler.Routes)
	return r, recipes, cooking
}

func doCook(t *testing.T, router http.Handler, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCookSuccess(t *testing.T) {
	router, _, cooking := newRecipesTestRouter(t)

	cooking.On("CookRecipe", mock.Anything, int64(5), int64(1)).Return(&recipe.CookResult{
		Success:               true,
		Message:               "recipe cooked",
		UpdatedInventoryItems: []int64{10, 11},
	}, nil)

	rec := doCook(t, router, "/recipes/5/cook", `{"kitchen_id": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	result := resp.Data.(map[string]interface{})
	assert.Equal(t, true, result["success"])
	assert.Len(t, result["updated_inventory_items"], 2)
}

func TestCookAcceptsKitchenIDQueryParam(t *testing.T) {
	router, _, cooking := newRecipesTestRouter(t)

	cooking.On("CookRecipe", mock.Anything, int64(5), int64(2)).Return(&recipe.CookResult{
		Success: true,
		Message: "recipe cooked",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/recipes/5/cook?kitchen_id=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	cooking.AssertExpectations(t)
}

func TestCookRecipeNotFound(t *testing.T) {
	router, _, cooking := newRecipesTestRouter(t)

	cooking.On("CookRecipe", mock.Anything, int64(5), int64(1)).Return(nil, recipe.ErrNotFound)

	rec := doCook(t, router, "/recipes/5/cook", `{"kitchen_id": 1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCookInsufficientIngredients(t *testing.T) {
	router, _, cooking := newRecipesTestRouter(t)

	cooking.On("CookRecipe", mock.Anything, int64(5), int64(1)).Return(nil,
		recipe.NewInsufficientIngredientsError([]recipe.Shortfall{
			{FoodItemID: 3, FoodItemName: "flour", RequiredAmount: 500, AvailableAmount: 120},
		}))

	rec := doCook(t, router, "/recipes/5/cook", `{"kitchen_id": 1}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	shortfalls := data["insufficient_ingredients"].([]interface{})
	require.Len(t, shortfalls, 1)
	first := shortfalls[0].(map[string]interface{})
	assert.Equal(t, "flour", first["food_item_name"])
	assert.Equal(t, 500.0, first["required_amount"])
	assert.Equal(t, 120.0, first["available_amount"])
}

func TestCookStockConflict(t *testing.T) {
	router, _, cooking := newRecipesTestRouter(t)

	cooking.On("CookRecipe", mock.Anything, int64(5), int64(1)).Return(nil, inventory.ErrStockConflict)

	rec := doCook(t, router, "/recipes/5/cook", `{"kitchen_id": 1}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCookRequiresKitchenID(t *testing.T) {
	router, _, cooking := newRecipesTestRouter(t)

	rec := doCook(t, router, "/recipes/5/cook", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	cooking.AssertNotCalled(t, "CookRecipe")
}

func TestCookRejectsInvalidRecipeID(t *testing.T) {
	router, _, cooking := newRecipesTestRouter(t)

	rec := doCook(t, router, "/recipes/abc/cook", `{"kitchen_id": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	cooking.AssertNotCalled(t, "CookRecipe")
}

package conversion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/domain/unit"
)

type mockUnitRepo struct{ mock.Mock }

func (m *mockUnitRepo) Create(ctx context.Context, u *unit.Unit) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUnitRepo) Update(ctx context.Context, u *unit.Unit) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUnitRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUnitRepo) FindByID(ctx context.Context, id int64) (*unit.Unit, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*unit.Unit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUnitRepo) FindByName(ctx context.Context, name string) (*unit.Unit, error) {
	args := m.Called(ctx, name)
	if u := args.Get(0); u != nil {
		return u.(*unit.Unit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUnitRepo) FindAll(ctx context.Context, unitType *unit.Type) ([]*unit.Unit, error) {
	args := m.Called(ctx, unitType)
	if u := args.Get(0); u != nil {
		return u.([]*unit.Unit), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUnitRepo) HasConversions(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockUnitConvRepo struct{ mock.Mock }

func (m *mockUnitConvRepo) Create(ctx context.Context, c *unit.Conversion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockUnitConvRepo) Delete(ctx context.Context, from, to int64) error {
	return m.Called(ctx, from, to).Error(0)
}

func (m *mockUnitConvRepo) FindPair(ctx context.Context, from, to int64) (*unit.Conversion, error) {
	args := m.Called(ctx, from, to)
	if c := args.Get(0); c != nil {
		return c.(*unit.Conversion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUnitConvRepo) FindAll(ctx context.Context) ([]*unit.Conversion, error) {
	args := m.Called(ctx)
	if c := args.Get(0); c != nil {
		return c.([]*unit.Conversion), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockFoodConvRepo struct{ mock.Mock }

func (m *mockFoodConvRepo) Create(ctx context.Context, c *food.Conversion) error {
	return m.Called(ctx, c).Error(0)
}

func (m *mockFoodConvRepo) Delete(ctx context.Context, foodID, from, to int64) error {
	return m.Called(ctx, foodID, from, to).Error(0)
}

func (m *mockFoodConvRepo) FindPair(ctx context.Context, foodID, from, to int64) (*food.Conversion, error) {
	args := m.Called(ctx, foodID, from, to)
	if c := args.Get(0); c != nil {
		return c.(*food.Conversion), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockFoodConvRepo) FindByFoodItem(ctx context.Context, foodID int64) ([]*food.Conversion, error) {
	args := m.Called(ctx, foodID)
	if c := args.Get(0); c != nil {
		return c.([]*food.Conversion), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestService() (*Service, *mockUnitRepo, *mockUnitConvRepo, *mockFoodConvRepo) {
	units := new(mockUnitRepo)
	unitConvs := new(mockUnitConvRepo)
	foodConvs := new(mockFoodConvRepo)
	svc := NewService(units, unitConvs, foodConvs, zap.NewNop())
	return svc, units, unitConvs, foodConvs
}

func TestConvertFoodValueIdentity(t *testing.T) {
	svc, _, unitConvs, foodConvs := newTestService()

	result, err := svc.ConvertFoodValue(context.Background(), 10, 250, 7, 7)
	require.NoError(t, err)
	assert.Equal(t, 250.0, result.Value)
	assert.Equal(t, 1.0, result.Factor)
	assert.False(t, result.FoodSpecific)

	// Identity must short-circuit without touching the store.
	foodConvs.AssertNotCalled(t, "FindPair", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	unitConvs.AssertNotCalled(t, "FindPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertFoodValueFoodSpecificWins(t *testing.T) {
	svc, _, unitConvs, foodConvs := newTestService()
	ctx := context.Background()

	foodConvs.On("FindPair", ctx, int64(10), int64(1), int64(2)).
		Return(&food.Conversion{FoodItemID: 10, FromUnitID: 1, ToUnitID: 2, Factor: 0.95}, nil)

	result, err := svc.ConvertFoodValue(ctx, 10, 100, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 95.0, result.Value, 1e-9)
	assert.True(t, result.FoodSpecific)

	// Generic factors must never be consulted when a food factor exists.
	unitConvs.AssertNotCalled(t, "FindPair", mock.Anything, mock.Anything, mock.Anything)
}

func TestConvertFoodValueReciprocal(t *testing.T) {
	svc, _, _, foodConvs := newTestService()
	ctx := context.Background()

	foodConvs.On("FindPair", ctx, int64(10), int64(1), int64(2)).
		Return(nil, food.ErrConversionNotFound)
	foodConvs.On("FindPair", ctx, int64(10), int64(2), int64(1)).
		Return(&food.Conversion{FoodItemID: 10, FromUnitID: 2, ToUnitID: 1, Factor: 4}, nil)

	result, err := svc.ConvertFoodValue(ctx, 10, 100, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, result.Value, 1e-9)
	assert.InDelta(t, 0.25, result.Factor, 1e-9)
	assert.True(t, result.FoodSpecific)
}

func TestConvertFoodValueGenericFallback(t *testing.T) {
	svc, _, unitConvs, foodConvs := newTestService()
	ctx := context.Background()

	foodConvs.On("FindPair", ctx, int64(10), int64(1), int64(2)).
		Return(nil, food.ErrConversionNotFound)
	foodConvs.On("FindPair", ctx, int64(10), int64(2), int64(1)).
		Return(nil, food.ErrConversionNotFound)
	unitConvs.On("FindPair", ctx, int64(1), int64(2)).
		Return(&unit.Conversion{FromUnitID: 1, ToUnitID: 2, Factor: 1000}, nil)

	result, err := svc.ConvertFoodValue(ctx, 10, 2, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2000.0, result.Value, 1e-9)
	assert.False(t, result.FoodSpecific)
}

func TestConvertValueBaseFactorFallback(t *testing.T) {
	svc, units, unitConvs, _ := newTestService()
	ctx := context.Background()

	unitConvs.On("FindPair", ctx, int64(1), int64(2)).
		Return(nil, unit.ErrConversionNotFound)
	units.On("FindByID", ctx, int64(1)).
		Return(&unit.Unit{ID: 1, Name: "kilogram", Type: unit.TypeWeight, ToBaseFactor: 1000}, nil)
	units.On("FindByID", ctx, int64(2)).
		Return(&unit.Unit{ID: 2, Name: "gram", Type: unit.TypeWeight, ToBaseFactor: 1}, nil)

	result, err := svc.ConvertValue(ctx, 2.5, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 2500.0, result.Value, 1e-9)
	assert.InDelta(t, 1000.0, result.Factor, 1e-9)
}

func TestConvertValueCrossTypeHasNoPath(t *testing.T) {
	svc, units, unitConvs, _ := newTestService()
	ctx := context.Background()

	unitConvs.On("FindPair", ctx, int64(1), int64(3)).
		Return(nil, unit.ErrConversionNotFound)
	units.On("FindByID", ctx, int64(1)).
		Return(&unit.Unit{ID: 1, Name: "gram", Type: unit.TypeWeight, ToBaseFactor: 1}, nil)
	units.On("FindByID", ctx, int64(3)).
		Return(&unit.Unit{ID: 3, Name: "milliliter", Type: unit.TypeVolume, ToBaseFactor: 1}, nil)

	_, err := svc.ConvertValue(ctx, 100, 1, 3)
	assert.ErrorIs(t, err, unit.ErrNoConversionPath)
}

func TestCanConvertFoodUnits(t *testing.T) {
	t.Run("identity is always convertible", func(t *testing.T) {
		svc, _, _, _ := newTestService()
		ok, err := svc.CanConvertFoodUnits(context.Background(), 10, 5, 5)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("food-specific bridge across types", func(t *testing.T) {
		svc, _, _, foodConvs := newTestService()
		ctx := context.Background()
		foodConvs.On("FindPair", ctx, int64(10), int64(1), int64(3)).
			Return(&food.Conversion{FoodItemID: 10, FromUnitID: 1, ToUnitID: 3, Factor: 0.8}, nil)

		ok, err := svc.CanConvertFoodUnits(ctx, 10, 1, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("no path at all", func(t *testing.T) {
		svc, units, unitConvs, foodConvs := newTestService()
		ctx := context.Background()
		foodConvs.On("FindPair", ctx, int64(10), int64(1), int64(3)).
			Return(nil, food.ErrConversionNotFound)
		foodConvs.On("FindPair", ctx, int64(10), int64(3), int64(1)).
			Return(nil, food.ErrConversionNotFound)
		unitConvs.On("FindPair", ctx, int64(1), int64(3)).
			Return(nil, unit.ErrConversionNotFound)
		units.On("FindByID", ctx, int64(1)).
			Return(&unit.Unit{ID: 1, Type: unit.TypeWeight, ToBaseFactor: 1}, nil)
		units.On("FindByID", ctx, int64(3)).
			Return(&unit.Unit{ID: 3, Type: unit.TypeVolume, ToBaseFactor: 1}, nil)

		ok, err := svc.CanConvertFoodUnits(ctx, 10, 1, 3)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFoodFactorZeroReverseFallsThrough(t *testing.T) {
	svc, _, unitConvs, foodConvs := newTestService()
	ctx := context.Background()

	foodConvs.On("FindPair", ctx, int64(10), int64(1), int64(2)).
		Return(nil, food.ErrConversionNotFound)
	foodConvs.On("FindPair", ctx, int64(10), int64(2), int64(1)).
		Return(&food.Conversion{FoodItemID: 10, FromUnitID: 2, ToUnitID: 1, Factor: 0}, nil)
	unitConvs.On("FindPair", ctx, int64(1), int64(2)).
		Return(&unit.Conversion{FromUnitID: 1, ToUnitID: 2, Factor: 10}, nil)

	result, err := svc.ConvertFoodValue(ctx, 10, 5, 1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, result.Value, 1e-9)
	assert.False(t, result.FoodSpecific)
}

package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/kitchen"
)

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

type mockKitchenRepo struct{ mock.Mock }

func (m *mockKitchenRepo) Create(ctx context.Context, k *kitchen.Kitchen) error {
	return m.Called(ctx, k).Error(0)
}

func (m *mockKitchenRepo) Update(ctx context.Context, k *kitchen.Kitchen) error {
	return m.Called(ctx, k).Error(0)
}

func (m *mockKitchenRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockKitchenRepo) FindByID(ctx context.Context, id int64) (*kitchen.Kitchen, error) {
	args := m.Called(ctx, id)
	if k := args.Get(0); k != nil {
		return k.(*kitchen.Kitchen), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockKitchenRepo) FindAll(ctx context.Context) ([]*kitchen.Kitchen, error) {
	args := m.Called(ctx)
	if k := args.Get(0); k != nil {
		return k.([]*kitchen.Kitchen), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockKitchenRepo) CreateLocation(ctx context.Context, loc *kitchen.StorageLocation) error {
	return m.Called(ctx, loc).Error(0)
}

func (m *mockKitchenRepo) UpdateLocation(ctx context.Context, loc *kitchen.StorageLocation) error {
	return m.Called(ctx, loc).Error(0)
}

func (m *mockKitchenRepo) DeleteLocation(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockKitchenRepo) FindLocationByID(ctx context.Context, id int64) (*kitchen.StorageLocation, error) {
	args := m.Called(ctx, id)
	if l := args.Get(0); l != nil {
		return l.(*kitchen.StorageLocation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockKitchenRepo) FindLocations(ctx context.Context, kitchenID int64) ([]*kitchen.StorageLocation, error) {
	args := m.Called(ctx, kitchenID)
	if l := args.Get(0); l != nil {
		return l.([]*kitchen.StorageLocation), args.Error(1)
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

func newTestService(thresholdDays int) (*Service, *mockInventoryRepo, *mockKitchenRepo, *mockFoodRepo) {
	inv := new(mockInventoryRepo)
	kitchens := new(mockKitchenRepo)
	foods := new(mockFoodRepo)
	return NewService(inv, kitchens, foods, thresholdDays, zap.NewNop()), inv, kitchens, foods
}

func day(offset int) *time.Time {
	t := time.Now().AddDate(0, 0, offset).Truncate(24 * time.Hour)
	return &t
}

func TestAddStockCreatesNewLot(t *testing.T) {
	svc, inv, kitchens, foods := newTestService(3)
	ctx := context.Background()

	foods.On("FindByID", ctx, int64(7)).Return(&food.Item{ID: 7, Name: "flour"}, nil)
	kitchens.On("FindLocationByID", ctx, int64(4)).Return(&kitchen.StorageLocation{ID: 4, KitchenID: 1, Name: "Pantry"}, nil)
	inv.On("FindByKey", ctx, int64(1), int64(7), int64(4)).Return(nil, inventory.ErrNotFound)
	inv.On("Save", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)

	item, err := svc.AddStock(ctx, 1, 7, 4, 500, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 500.0, item.Quantity)
	inv.AssertExpectations(t)
}

func TestAddStockMergesIntoExistingLot(t *testing.T) {
	svc, inv, kitchens, foods := newTestService(3)
	ctx := context.Background()

	later := day(10)
	earlier := day(5)

	foods.On("FindByID", ctx, int64(7)).Return(&food.Item{ID: 7, Name: "flour"}, nil)
	kitchens.On("FindLocationByID", ctx, int64(4)).Return(&kitchen.StorageLocation{ID: 4, KitchenID: 1, Name: "Pantry"}, nil)
	inv.On("FindByKey", ctx, int64(1), int64(7), int64(4)).Return(&inventory.Item{
		ID: 9, KitchenID: 1, FoodItemID: 7, StorageLocationID: 4,
		Quantity: 200, ExpirationDate: later,
	}, nil)
	inv.On("Update", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)

	item, err := svc.AddStock(ctx, 1, 7, 4, 300, nil, earlier)
	require.NoError(t, err)
	assert.Equal(t, int64(9), item.ID)
	assert.Equal(t, 500.0, item.Quantity)
	// The merged lot keeps the earlier expiration of the two.
	assert.Equal(t, *earlier, *item.ExpirationDate)
}

func TestAddStockKeepsEarlierExistingExpiration(t *testing.T) {
	svc, inv, kitchens, foods := newTestService(3)
	ctx := context.Background()

	earlier := day(2)
	later := day(8)

	foods.On("FindByID", ctx, int64(7)).Return(&food.Item{ID: 7}, nil)
	kitchens.On("FindLocationByID", ctx, int64(4)).Return(&kitchen.StorageLocation{ID: 4, KitchenID: 1}, nil)
	inv.On("FindByKey", ctx, int64(1), int64(7), int64(4)).Return(&inventory.Item{
		ID: 9, KitchenID: 1, FoodItemID: 7, StorageLocationID: 4,
		Quantity: 100, ExpirationDate: earlier,
	}, nil)
	inv.On("Update", ctx, mock.AnythingOfType("*inventory.Item")).Return(nil)

	item, err := svc.AddStock(ctx, 1, 7, 4, 50, nil, later)
	require.NoError(t, err)
	assert.Equal(t, *earlier, *item.ExpirationDate)
}

func TestAddStockRejectsLocationOfOtherKitchen(t *testing.T) {
	svc, _, kitchens, foods := newTestService(3)
	ctx := context.Background()

	foods.On("FindByID", ctx, int64(7)).Return(&food.Item{ID: 7}, nil)
	kitchens.On("FindLocationByID", ctx, int64(4)).Return(&kitchen.StorageLocation{ID: 4, KitchenID: 99}, nil)

	_, err := svc.AddStock(ctx, 1, 7, 4, 100, nil, nil)
	assert.ErrorIs(t, err, kitchen.ErrLocationNotFound)
}

func TestCreateLocationRejectsDuplicateName(t *testing.T) {
	svc, _, kitchens, _ := newTestService(3)
	ctx := context.Background()

	kitchens.On("FindByID", ctx, int64(1)).Return(&kitchen.Kitchen{ID: 1, Name: "Home"}, nil)
	kitchens.On("FindLocations", ctx, int64(1)).Return([]*kitchen.StorageLocation{
		{ID: 2, KitchenID: 1, Name: "Pantry"},
	}, nil)

	_, err := svc.CreateLocation(ctx, 1, "pantry")
	assert.ErrorIs(t, err, kitchen.ErrLocationNameTaken)
}

func TestExpiringUsesConfiguredThreshold(t *testing.T) {
	svc, inv, _, _ := newTestService(7)
	ctx := context.Background()

	inv.On("FindExpiringBefore", ctx, int64(1), mock.MatchedBy(func(cutoff time.Time) bool {
		expected := time.Now().AddDate(0, 0, 7)
		return cutoff.Sub(expected) < time.Minute && expected.Sub(cutoff) < time.Minute
	})).Return([]*inventory.Item{}, nil)

	_, err := svc.Expiring(ctx, 1)
	require.NoError(t, err)
	inv.AssertExpectations(t)
}

func TestSummaryByLocationAggregates(t *testing.T) {
	svc, inv, kitchens, _ := newTestService(3)
	ctx := context.Background()

	minQty := 5.0
	kitchens.On("FindLocations", ctx, int64(1)).Return([]*kitchen.StorageLocation{
		{ID: 10, KitchenID: 1, Name: "Pantry"},
		{ID: 11, KitchenID: 1, Name: "Fridge"},
	}, nil)
	inv.On("FindByKitchen", ctx, int64(1)).Return([]*inventory.Item{
		{ID: 1, StorageLocationID: 10, Quantity: 2, MinQuantity: &minQty},
		{ID: 2, StorageLocationID: 10, Quantity: 100},
		{ID: 3, StorageLocationID: 11, Quantity: 10, ExpirationDate: day(1)},
	}, nil)

	summaries, err := svc.SummaryByLocation(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "Pantry", summaries[0].StorageLocationName)
	assert.Equal(t, 2, summaries[0].ItemCount)
	assert.Equal(t, 1, summaries[0].LowStockCount)
	assert.Equal(t, 0, summaries[0].ExpiringCount)

	assert.Equal(t, "Fridge", summaries[1].StorageLocationName)
	assert.Equal(t, 1, summaries[1].ItemCount)
	assert.Equal(t, 1, summaries[1].ExpiringCount)
}

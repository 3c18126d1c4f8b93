package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// InventoryRepository implements outbound.InventoryRepository using GORM
type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

var _ outbound.InventoryRepository = (*InventoryRepository)(nil)

// Save persists a new inventory lot
func (r *InventoryRepository) Save(ctx context.Context, item *inventory.Item) error {
	model := inventoryItemToModel(item)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	return nil
}

// Update persists lot changes
func (r *InventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	result := r.db.WithContext(ctx).Model(&InventoryItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"quantity":        item.Quantity,
			"min_quantity":    item.MinQuantity,
			"expiration_date": item.ExpirationDate,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

// Delete removes an inventory lot
func (r *InventoryRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&InventoryItemModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return inventory.ErrNotFound
	}
	return nil
}

// FindByID loads one lot by primary key
func (r *InventoryRepository) FindByID(ctx context.Context, id int64) (*inventory.Item, error) {
	var model InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrNotFound
		}
		return nil, err
	}
	return inventoryItemToDomain(&model), nil
}

// FindByKey loads the unique lot for a kitchen, food item and storage location
func (r *InventoryRepository) FindByKey(ctx context.Context, kitchenID, foodItemID, storageLocationID int64) (*inventory.Item, error) {
	var model InventoryItemModel
	err := r.db.WithContext(ctx).
		Where("kitchen_id = ? AND food_item_id = ? AND storage_location_id = ?",
			kitchenID, foodItemID, storageLocationID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventory.ErrNotFound
		}
		return nil, err
	}
	return inventoryItemToDomain(&model), nil
}

// FindByKitchen lists all lots of a kitchen
func (r *InventoryRepository) FindByKitchen(ctx context.Context, kitchenID int64) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	err := r.db.WithContext(ctx).
		Where("kitchen_id = ?", kitchenID).
		Order("food_item_id, storage_location_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(models), nil
}

// FindAvailableLots lists non-empty lots of one food item ordered by
// expiration date ascending, with never-expiring lots last.
func (r *InventoryRepository) FindAvailableLots(ctx context.Context, kitchenID, foodItemID int64) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	err := r.db.WithContext(ctx).
		Where("kitchen_id = ? AND food_item_id = ? AND quantity > 0", kitchenID, foodItemID).
		Order("expiration_date IS NULL, expiration_date ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(models), nil
}

// DeductLots applies all deductions in a single transaction using guarded
// decrements. A lot that no longer covers its deduction rolls the whole
// transaction back with inventory.ErrStockConflict.
func (r *InventoryRepository) DeductLots(ctx context.Context, deductions []inventory.Deduction) error {
	if len(deductions) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		for _, d := range deductions {
			if d.Amount <= 0 {
				return inventory.ErrInvalidQuantity
			}
			result := tx.Model(&InventoryItemModel{}).
				Where("id = ? AND quantity >= ?", d.ItemID, d.Amount).
				Updates(map[string]interface{}{
					"quantity":   gorm.Expr("quantity - ?", d.Amount),
					"updated_at": now,
				})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return inventory.ErrStockConflict
			}
		}
		return nil
	})
}

// FindLowStock lists lots whose quantity dropped below their minimum
func (r *InventoryRepository) FindLowStock(ctx context.Context, kitchenID int64) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	err := r.db.WithContext(ctx).
		Where("kitchen_id = ? AND min_quantity IS NOT NULL AND quantity < min_quantity", kitchenID).
		Order("food_item_id").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(models), nil
}

// FindExpiringBefore lists lots expiring on or before the cutoff date
func (r *InventoryRepository) FindExpiringBefore(ctx context.Context, kitchenID int64, cutoff time.Time) ([]*inventory.Item, error) {
	var models []InventoryItemModel
	err := r.db.WithContext(ctx).
		Where("kitchen_id = ? AND expiration_date IS NOT NULL AND expiration_date <= ? AND quantity > 0",
			kitchenID, cutoff).
		Order("expiration_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toDomainItems(models), nil
}

func toDomainItems(models []InventoryItemModel) []*inventory.Item {
	items := make([]*inventory.Item, 0, len(models))
	for i := range models {
		items = append(items, inventoryItemToDomain(&models[i]))
	}
	return items
}

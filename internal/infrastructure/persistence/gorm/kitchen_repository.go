package gorm

import (
	"context"
	"errors"

	"github.com/nugamoto/v2/internal/domain/kitchen"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// KitchenRepository implements outbound.KitchenRepository using GORM
type KitchenRepository struct {
	db *gorm.DB
}

// NewKitchenRepository creates a new kitchen repository
func NewKitchenRepository(db *gorm.DB) *KitchenRepository {
	return &KitchenRepository{db: db}
}

var _ outbound.KitchenRepository = (*KitchenRepository)(nil)

// Create persists a new kitchen
func (r *KitchenRepository) Create(ctx context.Context, k *kitchen.Kitchen) error {
	model := &KitchenModel{Name: k.Name}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	k.ID = model.ID
	k.CreatedAt = model.CreatedAt
	return nil
}

// Update persists kitchen changes
func (r *KitchenRepository) Update(ctx context.Context, k *kitchen.Kitchen) error {
	result := r.db.WithContext(ctx).Model(&KitchenModel{}).
		Where("id = ?", k.ID).
		Update("name", k.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return kitchen.ErrNotFound
	}
	return nil
}

// Delete removes a kitchen together with its storage locations
func (r *KitchenRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("kitchen_id = ?", id).Delete(&StorageLocationModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&KitchenModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return kitchen.ErrNotFound
		}
		return nil
	})
}

// FindByID loads one kitchen by primary key
func (r *KitchenRepository) FindByID(ctx context.Context, id int64) (*kitchen.Kitchen, error) {
	var model KitchenModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, kitchen.ErrNotFound
		}
		return nil, err
	}
	return kitchenToDomain(&model), nil
}

// FindAll lists all kitchens
func (r *KitchenRepository) FindAll(ctx context.Context) ([]*kitchen.Kitchen, error) {
	var models []KitchenModel
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	kitchens := make([]*kitchen.Kitchen, 0, len(models))
	for i := range models {
		kitchens = append(kitchens, kitchenToDomain(&models[i]))
	}
	return kitchens, nil
}

// CreateLocation persists a new storage location
func (r *KitchenRepository) CreateLocation(ctx context.Context, loc *kitchen.StorageLocation) error {
	model := &StorageLocationModel{KitchenID: loc.KitchenID, Name: loc.Name}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	loc.ID = model.ID
	loc.CreatedAt = model.CreatedAt
	return nil
}

// UpdateLocation persists storage location changes
func (r *KitchenRepository) UpdateLocation(ctx context.Context, loc *kitchen.StorageLocation) error {
	result := r.db.WithContext(ctx).Model(&StorageLocationModel{}).
		Where("id = ?", loc.ID).
		Update("name", loc.Name)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return kitchen.ErrLocationNotFound
	}
	return nil
}

// DeleteLocation removes a storage location
func (r *KitchenRepository) DeleteLocation(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&StorageLocationModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return kitchen.ErrLocationNotFound
	}
	return nil
}

// FindLocationByID loads one storage location by primary key
func (r *KitchenRepository) FindLocationByID(ctx context.Context, id int64) (*kitchen.StorageLocation, error) {
	var model StorageLocationModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, kitchen.ErrLocationNotFound
		}
		return nil, err
	}
	return locationToDomain(&model), nil
}

// FindLocations lists the storage locations of a kitchen
func (r *KitchenRepository) FindLocations(ctx context.Context, kitchenID int64) ([]*kitchen.StorageLocation, error) {
	var models []StorageLocationModel
	err := r.db.WithContext(ctx).
		Where("kitchen_id = ?", kitchenID).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	locations := make([]*kitchen.StorageLocation, 0, len(models))
	for i := range models {
		locations = append(locations, locationToDomain(&models[i]))
	}
	return locations, nil
}

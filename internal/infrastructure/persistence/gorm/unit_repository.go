package gorm

import (
	"context"
	"errors"

	"github.com/nugamoto/v2/internal/domain/unit"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// UnitRepository implements outbound.UnitRepository using GORM
type UnitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

var _ outbound.UnitRepository = (*UnitRepository)(nil)

// Create persists a new unit
func (r *UnitRepository) Create(ctx context.Context, u *unit.Unit) error {
	model := unitToModel(u)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	return nil
}

// Update persists unit changes
func (r *UnitRepository) Update(ctx context.Context, u *unit.Unit) error {
	result := r.db.WithContext(ctx).Model(&UnitModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]interface{}{
			"name":           u.Name,
			"type":           string(u.Type),
			"to_base_factor": u.ToBaseFactor,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return unit.ErrNotFound
	}
	return nil
}

// Delete removes a unit
func (r *UnitRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&UnitModel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return unit.ErrNotFound
	}
	return nil
}

// FindByID loads one unit by primary key
func (r *UnitRepository) FindByID(ctx context.Context, id int64) (*unit.Unit, error) {
	var model UnitModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unit.ErrNotFound
		}
		return nil, err
	}
	return unitToDomain(&model), nil
}

// FindByName loads one unit by its normalized name
func (r *UnitRepository) FindByName(ctx context.Context, name string) (*unit.Unit, error) {
	var model UnitModel
	if err := r.db.WithContext(ctx).Where("name = ?", unit.NormalizeName(name)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unit.ErrNotFound
		}
		return nil, err
	}
	return unitToDomain(&model), nil
}

// FindAll lists units, optionally filtered by type
func (r *UnitRepository) FindAll(ctx context.Context, unitType *unit.Type) ([]*unit.Unit, error) {
	query := r.db.WithContext(ctx).Order("name ASC")
	if unitType != nil {
		query = query.Where("type = ?", string(*unitType))
	}

	var models []UnitModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	units := make([]*unit.Unit, 0, len(models))
	for i := range models {
		units = append(units, unitToDomain(&models[i]))
	}
	return units, nil
}

// HasConversions reports whether any conversion row references the unit
func (r *UnitRepository) HasConversions(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&UnitConversionModel{}).
		Where("from_unit_id = ? OR to_unit_id = ?", id, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	err = r.db.WithContext(ctx).Model(&FoodItemUnitConversionModel{}).
		Where("from_unit_id = ? OR to_unit_id = ?", id, id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UnitConversionRepository implements outbound.UnitConversionRepository using GORM
type UnitConversionRepository struct {
	db *gorm.DB
}

// NewUnitConversionRepository creates a new unit conversion repository
func NewUnitConversionRepository(db *gorm.DB) *UnitConversionRepository {
	return &UnitConversionRepository{db: db}
}

var _ outbound.UnitConversionRepository = (*UnitConversionRepository)(nil)

// Create persists a new generic conversion
func (r *UnitConversionRepository) Create(ctx context.Context, c *unit.Conversion) error {
	model := &UnitConversionModel{
		FromUnitID: c.FromUnitID,
		ToUnitID:   c.ToUnitID,
		Factor:     c.Factor,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	c.CreatedAt = model.CreatedAt
	return nil
}

// Delete removes a generic conversion
func (r *UnitConversionRepository) Delete(ctx context.Context, fromUnitID, toUnitID int64) error {
	result := r.db.WithContext(ctx).
		Where("from_unit_id = ? AND to_unit_id = ?", fromUnitID, toUnitID).
		Delete(&UnitConversionModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return unit.ErrConversionNotFound
	}
	return nil
}

// FindPair loads the conversion row for an exact unit pair
func (r *UnitConversionRepository) FindPair(ctx context.Context, fromUnitID, toUnitID int64) (*unit.Conversion, error) {
	var model UnitConversionModel
	err := r.db.WithContext(ctx).
		Where("from_unit_id = ? AND to_unit_id = ?", fromUnitID, toUnitID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, unit.ErrConversionNotFound
		}
		return nil, err
	}
	return unitConversionToDomain(&model), nil
}

// FindAll lists all generic conversions
func (r *UnitConversionRepository) FindAll(ctx context.Context) ([]*unit.Conversion, error) {
	var models []UnitConversionModel
	if err := r.db.WithContext(ctx).Order("from_unit_id, to_unit_id").Find(&models).Error; err != nil {
		return nil, err
	}
	conversions := make([]*unit.Conversion, 0, len(models))
	for i := range models {
		conversions = append(conversions, unitConversionToDomain(&models[i]))
	}
	return conversions, nil
}

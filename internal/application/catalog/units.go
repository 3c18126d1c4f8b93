// Package catalog provides the application layer for the unit registry
// and the food catalog.
package catalog

import (
	"context"
	"errors"

	"github.com/nugamoto/v2/internal/domain/unit"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// UnitService manages the unit registry and generic conversions.
type UnitService struct {
	units       outbound.UnitRepository
	conversions outbound.UnitConversionRepository
	logger      *zap.Logger
}

// NewUnitService creates a new unit service.
func NewUnitService(
	units outbound.UnitRepository,
	conversions outbound.UnitConversionRepository,
	logger *zap.Logger,
) *UnitService {
	return &UnitService{
		units:       units,
		conversions: conversions,
		logger:      logger.Named("unit-service"),
	}
}

// CreateUnit registers a new unit with a unique, normalized name.
func (s *UnitService) CreateUnit(ctx context.Context, name, unitType string, toBaseFactor float64) (*unit.Unit, error) {
	parsed, err := unit.ParseType(unitType)
	if err != nil {
		return nil, err
	}
	u, err := unit.NewUnit(name, parsed, toBaseFactor)
	if err != nil {
		return nil, err
	}

	if _, err := s.units.FindByName(ctx, u.Name); err == nil {
		return nil, unit.ErrNameTaken
	} else if !errors.Is(err, unit.ErrNotFound) {
		return nil, err
	}

	if err := s.units.Create(ctx, u); err != nil {
		return nil, err
	}
	s.logger.Info("Unit created", zap.Int64("unit_id", u.ID), zap.String("name", u.Name))
	return u, nil
}

// GetUnit loads one unit.
func (s *UnitService) GetUnit(ctx context.Context, id int64) (*unit.Unit, error) {
	return s.units.FindByID(ctx, id)
}

// ListUnits returns all units, optionally filtered by type.
func (s *UnitService) ListUnits(ctx context.Context, unitType string) ([]*unit.Unit, error) {
	if unitType == "" {
		return s.units.FindAll(ctx, nil)
	}
	parsed, err := unit.ParseType(unitType)
	if err != nil {
		return nil, err
	}
	return s.units.FindAll(ctx, &parsed)
}

// UpdateUnit modifies a unit's name, type, or base factor.
func (s *UnitService) UpdateUnit(ctx context.Context, id int64, name, unitType string, toBaseFactor float64) (*unit.Unit, error) {
	existing, err := s.units.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	parsed, err := unit.ParseType(unitType)
	if err != nil {
		return nil, err
	}
	updated, err := unit.NewUnit(name, parsed, toBaseFactor)
	if err != nil {
		return nil, err
	}

	if updated.Name != existing.Name {
		if _, err := s.units.FindByName(ctx, updated.Name); err == nil {
			return nil, unit.ErrNameTaken
		} else if !errors.Is(err, unit.ErrNotFound) {
			return nil, err
		}
	}

	existing.Name = updated.Name
	existing.Type = updated.Type
	existing.ToBaseFactor = updated.ToBaseFactor
	if err := s.units.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteUnit removes a unit. Deletion is blocked while conversions
// still reference the unit.
func (s *UnitService) DeleteUnit(ctx context.Context, id int64) error {
	inUse, err := s.units.HasConversions(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return unit.ErrInUse
	}
	return s.units.Delete(ctx, id)
}

// CreateConversion registers a generic conversion between two units.
func (s *UnitService) CreateConversion(ctx context.Context, fromUnitID, toUnitID int64, factor float64) (*unit.Conversion, error) {
	conv, err := unit.NewConversion(fromUnitID, toUnitID, factor)
	if err != nil {
		return nil, err
	}
	if _, err := s.units.FindByID(ctx, fromUnitID); err != nil {
		return nil, err
	}
	if _, err := s.units.FindByID(ctx, toUnitID); err != nil {
		return nil, err
	}

	if _, err := s.conversions.FindPair(ctx, fromUnitID, toUnitID); err == nil {
		return nil, unit.ErrConversionExists
	} else if !errors.Is(err, unit.ErrConversionNotFound) {
		return nil, err
	}

	if err := s.conversions.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// ListConversions returns all generic conversions.
func (s *UnitService) ListConversions(ctx context.Context) ([]*unit.Conversion, error) {
	return s.conversions.FindAll(ctx)
}

// DeleteConversion removes a generic conversion.
func (s *UnitService) DeleteConversion(ctx context.Context, fromUnitID, toUnitID int64) error {
	return s.conversions.Delete(ctx, fromUnitID, toUnitID)
}

// Package conversion implements the unit conversion resolver.
//
// Resolution order for a food-scoped conversion is fixed: identity,
// then the food-specific factor (direct row, then reciprocal of the
// reverse row), then the generic factor (exact pair row, then the
// to-base-factor ratio for units of the same type). Factors are always
// re-read from the store; nothing here caches.
package conversion

import (
	"context"
	"errors"

	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/domain/unit"
	"github.com/nugamoto/v2/internal/ports/inbound"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service resolves generic and food-specific unit conversions.
type Service struct {
	units           outbound.UnitRepository
	unitConversions outbound.UnitConversionRepository
	foodConversions outbound.FoodConversionRepository
	logger          *zap.Logger
}

// NewService creates a new conversion service.
func NewService(
	units outbound.UnitRepository,
	unitConversions outbound.UnitConversionRepository,
	foodConversions outbound.FoodConversionRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		units:           units,
		unitConversions: unitConversions,
		foodConversions: foodConversions,
		logger:          logger.Named("conversion-service"),
	}
}

var _ inbound.ConversionService = (*Service)(nil)

// ConvertValue converts a value between two units using generic factors
// only. Identity conversions short-circuit with factor 1.
func (s *Service) ConvertValue(ctx context.Context, value float64, fromUnitID, toUnitID int64) (*inbound.ConversionResult, error) {
	if fromUnitID == toUnitID {
		return &inbound.ConversionResult{Value: value, Factor: 1}, nil
	}

	factor, err := s.genericFactor(ctx, fromUnitID, toUnitID)
	if err != nil {
		return nil, err
	}
	return &inbound.ConversionResult{Value: value * factor, Factor: factor}, nil
}

// CanConvertUnits reports whether a generic conversion path exists.
func (s *Service) CanConvertUnits(ctx context.Context, fromUnitID, toUnitID int64) (bool, error) {
	if fromUnitID == toUnitID {
		return true, nil
	}
	_, err := s.genericFactor(ctx, fromUnitID, toUnitID)
	if err != nil {
		if errors.Is(err, unit.ErrNoConversionPath) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ConvertFoodValue converts a value between two units in the context of
// a food item. Food-specific factors take precedence over generic ones.
func (s *Service) ConvertFoodValue(ctx context.Context, foodItemID int64, value float64, fromUnitID, toUnitID int64) (*inbound.ConversionResult, error) {
	if fromUnitID == toUnitID {
		return &inbound.ConversionResult{Value: value, Factor: 1}, nil
	}

	factor, err := s.foodFactor(ctx, foodItemID, fromUnitID, toUnitID)
	if err == nil {
		return &inbound.ConversionResult{Value: value * factor, Factor: factor, FoodSpecific: true}, nil
	}
	if !errors.Is(err, unit.ErrNoConversionPath) {
		return nil, err
	}

	factor, err = s.genericFactor(ctx, fromUnitID, toUnitID)
	if err != nil {
		return nil, err
	}
	return &inbound.ConversionResult{Value: value * factor, Factor: factor}, nil
}

// CanConvertFoodUnits reports whether any conversion path exists for the
// food item, food-specific or generic.
func (s *Service) CanConvertFoodUnits(ctx context.Context, foodItemID, fromUnitID, toUnitID int64) (bool, error) {
	if fromUnitID == toUnitID {
		return true, nil
	}

	if _, err := s.foodFactor(ctx, foodItemID, fromUnitID, toUnitID); err == nil {
		return true, nil
	} else if !errors.Is(err, unit.ErrNoConversionPath) {
		return false, err
	}

	if _, err := s.genericFactor(ctx, fromUnitID, toUnitID); err == nil {
		return true, nil
	} else if !errors.Is(err, unit.ErrNoConversionPath) {
		return false, err
	}
	return false, nil
}

// foodFactor resolves the food-specific factor: the direct row first,
// then the reciprocal of the reverse row. The reverse row is queried on
// demand each time rather than derived from earlier lookups.
func (s *Service) foodFactor(ctx context.Context, foodItemID, fromUnitID, toUnitID int64) (float64, error) {
	conv, err := s.foodConversions.FindPair(ctx, foodItemID, fromUnitID, toUnitID)
	if err == nil {
		return conv.Factor, nil
	}
	if !isNotFound(err) {
		return 0, err
	}

	reverse, err := s.foodConversions.FindPair(ctx, foodItemID, toUnitID, fromUnitID)
	if err != nil {
		if isNotFound(err) {
			return 0, unit.ErrNoConversionPath
		}
		return 0, err
	}
	if reverse.Factor == 0 {
		return 0, unit.ErrNoConversionPath
	}
	return 1 / reverse.Factor, nil
}

// genericFactor resolves the food-independent factor: the exact pair row
// first, then the ratio of to-base factors when both units measure the
// same kind of quantity. Cross-type pairs have no generic path.
func (s *Service) genericFactor(ctx context.Context, fromUnitID, toUnitID int64) (float64, error) {
	conv, err := s.unitConversions.FindPair(ctx, fromUnitID, toUnitID)
	if err == nil {
		return conv.Factor, nil
	}
	if !isNotFound(err) {
		return 0, err
	}

	from, err := s.units.FindByID(ctx, fromUnitID)
	if err != nil {
		return 0, err
	}
	to, err := s.units.FindByID(ctx, toUnitID)
	if err != nil {
		return 0, err
	}

	if from.Type != to.Type || to.ToBaseFactor == 0 {
		return 0, unit.ErrNoConversionPath
	}
	return from.ToBaseFactor / to.ToBaseFactor, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, unit.ErrConversionNotFound) || errors.Is(err, food.ErrConversionNotFound)
}

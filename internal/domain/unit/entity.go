// Package unit contains the measurement unit domain model.
// Units are the foundation of the conversion system: every food item,
// inventory lot, and recipe ingredient is expressed in terms of a unit.
package unit

import (
	"strings"
	"time"
)

// Type classifies a unit by the kind of quantity it measures.
type Type string

const (
	TypeWeight  Type = "weight"
	TypeVolume  Type = "volume"
	TypeCount   Type = "count"
	TypeMeasure Type = "measure"
	TypePackage Type = "package"
)

// ParseType parses a string into a unit Type.
func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeWeight:
		return TypeWeight, nil
	case TypeVolume:
		return TypeVolume, nil
	case TypeCount:
		return TypeCount, nil
	case TypeMeasure:
		return TypeMeasure, nil
	case TypePackage:
		return TypePackage, nil
	default:
		return "", ErrInvalidType
	}
}

// Unit represents a measurement unit such as "gram" or "tablespoon".
// ToBaseFactor relates the unit to the base unit of its type
// (grams for weight, milliliters for volume, pieces for count).
type Unit struct {
	ID           int64
	Name         string
	Type         Type
	ToBaseFactor float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeName lowercases and trims a unit name.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewUnit creates a validated unit with a normalized name.
func NewUnit(name string, unitType Type, toBaseFactor float64) (*Unit, error) {
	name = NormalizeName(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if _, err := ParseType(string(unitType)); err != nil {
		return nil, err
	}
	if toBaseFactor <= 0 {
		return nil, ErrInvalidFactor
	}
	return &Unit{
		Name:         name,
		Type:         unitType,
		ToBaseFactor: toBaseFactor,
	}, nil
}

// Conversion is a generic, food-independent conversion between two units.
// Applying it means: value_in_to = value_in_from * Factor.
type Conversion struct {
	FromUnitID int64
	ToUnitID   int64
	Factor     float64
	CreatedAt  time.Time
}

// NewConversion creates a validated unit conversion.
func NewConversion(fromUnitID, toUnitID int64, factor float64) (*Conversion, error) {
	if fromUnitID == toUnitID {
		return nil, ErrSameUnit
	}
	if factor <= 0 {
		return nil, ErrInvalidFactor
	}
	return &Conversion{
		FromUnitID: fromUnitID,
		ToUnitID:   toUnitID,
		Factor:     factor,
	}, nil
}

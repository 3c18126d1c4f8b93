// Package kitchen contains the kitchen and storage location domain model.
package kitchen

import (
	"strings"
	"time"
)

// Kitchen is the top-level container for inventory; every inventory lot
// belongs to exactly one kitchen.
type Kitchen struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewKitchen creates a validated kitchen.
func NewKitchen(name string) (*Kitchen, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Kitchen{Name: name}, nil
}

// StorageLocation is a named place inside a kitchen, e.g. "fridge" or
// "pantry". Names are unique per kitchen.
type StorageLocation struct {
	ID        int64
	KitchenID int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStorageLocation creates a validated storage location.
func NewStorageLocation(kitchenID int64, name string) (*StorageLocation, error) {
	if kitchenID <= 0 {
		return nil, ErrNotFound
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	return &StorageLocation{KitchenID: kitchenID, Name: name}, nil
}

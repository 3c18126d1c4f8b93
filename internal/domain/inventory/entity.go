// Package inventory contains the inventory ledger domain model.
// Each Item is a lot: a quantity of one food item stored in one
// storage location of one kitchen, with an optional expiration date.
package inventory

import "time"

// Item represents an inventory lot. Quantity is always expressed in the
// base unit of the food item. The (kitchen, food item, storage location)
// triple is unique; adding stock merges into the existing lot.
type Item struct {
	ID                int64
	KitchenID         int64
	FoodItemID        int64
	StorageLocationID int64
	Quantity          float64
	MinQuantity       *float64
	ExpirationDate    *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewItem creates a validated inventory lot.
func NewItem(kitchenID, foodItemID, storageLocationID int64, quantity float64) (*Item, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	return &Item{
		KitchenID:         kitchenID,
		FoodItemID:        foodItemID,
		StorageLocationID: storageLocationID,
		Quantity:          quantity,
	}, nil
}

// IsLowStock reports whether the lot has a minimum quantity configured
// and the current quantity has fallen below it.
func (i *Item) IsLowStock() bool {
	return i.MinQuantity != nil && i.Quantity < *i.MinQuantity
}

// IsExpired reports whether the lot expired strictly before today.
// Lots without an expiration date never expire.
func (i *Item) IsExpired(today time.Time) bool {
	if i.ExpirationDate == nil {
		return false
	}
	return i.ExpirationDate.Before(truncateToDay(today))
}

// ExpiresSoon reports whether the lot expires within thresholdDays of
// today (inclusive). Already-expired lots also count as expiring soon.
func (i *Item) ExpiresSoon(today time.Time, thresholdDays int) bool {
	if i.ExpirationDate == nil {
		return false
	}
	cutoff := truncateToDay(today).AddDate(0, 0, thresholdDays)
	return !i.ExpirationDate.After(cutoff)
}

// Merge folds new stock into the lot: quantities are added and the
// earlier of the two expiration dates is kept, so the lot always
// reflects its oldest stock.
func (i *Item) Merge(quantity float64, expirationDate *time.Time) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	i.Quantity += quantity
	if expirationDate != nil {
		if i.ExpirationDate == nil || expirationDate.Before(*i.ExpirationDate) {
			i.ExpirationDate = expirationDate
		}
	}
	return nil
}

// Deduction is a planned withdrawal from one lot, produced by the
// cooking engine's check phase and applied atomically by the repository.
type Deduction struct {
	ItemID int64
	Amount float64
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

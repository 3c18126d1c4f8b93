// Package inventory provides the application layer for kitchens,
// storage locations, and the inventory ledger.
package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/kitchen"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// Service manages kitchens, storage locations, and inventory lots.
type Service struct {
	inventoryRepo outbound.InventoryRepository
	kitchenRepo   outbound.KitchenRepository
	foodRepo      outbound.FoodRepository
	// expiringThresholdDays defines the "expires soon" window; injected
	// from configuration at construction.
	expiringThresholdDays int
	logger                *zap.Logger
}

// NewService creates a new inventory service.
func NewService(
	inventoryRepo outbound.InventoryRepository,
	kitchenRepo outbound.KitchenRepository,
	foodRepo outbound.FoodRepository,
	expiringThresholdDays int,
	logger *zap.Logger,
) *Service {
	if expiringThresholdDays <= 0 {
		expiringThresholdDays = 3
	}
	return &Service{
		inventoryRepo:         inventoryRepo,
		kitchenRepo:           kitchenRepo,
		foodRepo:              foodRepo,
		expiringThresholdDays: expiringThresholdDays,
		logger:                logger.Named("inventory-service"),
	}
}

// --- Kitchens ---

// CreateKitchen creates a new kitchen.
func (s *Service) CreateKitchen(ctx context.Context, name string) (*kitchen.Kitchen, error) {
	k, err := kitchen.NewKitchen(name)
	if err != nil {
		return nil, err
	}
	if err := s.kitchenRepo.Create(ctx, k); err != nil {
		return nil, err
	}
	s.logger.Info("Kitchen created", zap.Int64("kitchen_id", k.ID), zap.String("name", k.Name))
	return k, nil
}

// GetKitchen loads one kitchen.
func (s *Service) GetKitchen(ctx context.Context, id int64) (*kitchen.Kitchen, error) {
	return s.kitchenRepo.FindByID(ctx, id)
}

// ListKitchens returns all kitchens.
func (s *Service) ListKitchens(ctx context.Context) ([]*kitchen.Kitchen, error) {
	return s.kitchenRepo.FindAll(ctx)
}

// UpdateKitchen renames a kitchen.
func (s *Service) UpdateKitchen(ctx context.Context, id int64, name string) (*kitchen.Kitchen, error) {
	k, err := s.kitchenRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, kitchen.ErrInvalidName
	}
	k.Name = name
	if err := s.kitchenRepo.Update(ctx, k); err != nil {
		return nil, err
	}
	return k, nil
}

// DeleteKitchen removes a kitchen.
func (s *Service) DeleteKitchen(ctx context.Context, id int64) error {
	return s.kitchenRepo.Delete(ctx, id)
}

// --- Storage locations ---

// CreateLocation adds a storage location to a kitchen. Names are unique
// within a kitchen.
func (s *Service) CreateLocation(ctx context.Context, kitchenID int64, name string) (*kitchen.StorageLocation, error) {
	if _, err := s.kitchenRepo.FindByID(ctx, kitchenID); err != nil {
		return nil, err
	}
	loc, err := kitchen.NewStorageLocation(kitchenID, name)
	if err != nil {
		return nil, err
	}

	existing, err := s.kitchenRepo.FindLocations(ctx, kitchenID)
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if strings.EqualFold(other.Name, loc.Name) {
			return nil, kitchen.ErrLocationNameTaken
		}
	}

	if err := s.kitchenRepo.CreateLocation(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// ListLocations returns a kitchen's storage locations.
func (s *Service) ListLocations(ctx context.Context, kitchenID int64) ([]*kitchen.StorageLocation, error) {
	return s.kitchenRepo.FindLocations(ctx, kitchenID)
}

// UpdateLocation renames a storage location.
func (s *Service) UpdateLocation(ctx context.Context, id int64, name string) (*kitchen.StorageLocation, error) {
	loc, err := s.kitchenRepo.FindLocationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, kitchen.ErrInvalidName
	}

	siblings, err := s.kitchenRepo.FindLocations(ctx, loc.KitchenID)
	if err != nil {
		return nil, err
	}
	for _, other := range siblings {
		if other.ID != loc.ID && strings.EqualFold(other.Name, name) {
			return nil, kitchen.ErrLocationNameTaken
		}
	}

	loc.Name = name
	if err := s.kitchenRepo.UpdateLocation(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// DeleteLocation removes a storage location.
func (s *Service) DeleteLocation(ctx context.Context, id int64) error {
	return s.kitchenRepo.DeleteLocation(ctx, id)
}

// --- Inventory lots ---

// AddStock adds stock to a kitchen. When a lot for the same food item
// and storage location already exists the stock merges into it:
// quantities add up and the earlier expiration date is kept.
func (s *Service) AddStock(
	ctx context.Context,
	kitchenID, foodItemID, storageLocationID int64,
	quantity float64,
	minQuantity *float64,
	expirationDate *time.Time,
) (*inventory.Item, error) {
	if _, err := s.foodRepo.FindByID(ctx, foodItemID); err != nil {
		return nil, err
	}
	loc, err := s.kitchenRepo.FindLocationByID(ctx, storageLocationID)
	if err != nil {
		return nil, err
	}
	if loc.KitchenID != kitchenID {
		return nil, kitchen.ErrLocationNotFound
	}

	existing, err := s.inventoryRepo.FindByKey(ctx, kitchenID, foodItemID, storageLocationID)
	if err != nil && !errors.Is(err, inventory.ErrNotFound) {
		return nil, err
	}

	if existing != nil {
		if err := existing.Merge(quantity, expirationDate); err != nil {
			return nil, err
		}
		if minQuantity != nil {
			existing.MinQuantity = minQuantity
		}
		if err := s.inventoryRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("Stock merged into existing lot",
			zap.Int64("item_id", existing.ID),
			zap.Float64("added", quantity),
			zap.Float64("total", existing.Quantity),
		)
		return existing, nil
	}

	item, err := inventory.NewItem(kitchenID, foodItemID, storageLocationID, quantity)
	if err != nil {
		return nil, err
	}
	item.MinQuantity = minQuantity
	item.ExpirationDate = expirationDate
	if err := s.inventoryRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("Stock lot created",
		zap.Int64("item_id", item.ID),
		zap.Int64("kitchen_id", kitchenID),
		zap.Int64("food_item_id", foodItemID),
	)
	return item, nil
}

// GetItem loads one inventory lot.
func (s *Service) GetItem(ctx context.Context, id int64) (*inventory.Item, error) {
	return s.inventoryRepo.FindByID(ctx, id)
}

// ListByKitchen returns all lots of a kitchen.
func (s *Service) ListByKitchen(ctx context.Context, kitchenID int64) ([]*inventory.Item, error) {
	return s.inventoryRepo.FindByKitchen(ctx, kitchenID)
}

// UpdateItem patches a lot's quantity, minimum quantity, and expiration date.
func (s *Service) UpdateItem(
	ctx context.Context,
	id int64,
	quantity *float64,
	minQuantity *float64,
	expirationDate *time.Time,
) (*inventory.Item, error) {
	item, err := s.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quantity != nil {
		if *quantity < 0 {
			return nil, inventory.ErrInvalidQuantity
		}
		item.Quantity = *quantity
	}
	if minQuantity != nil {
		item.MinQuantity = minQuantity
	}
	if expirationDate != nil {
		item.ExpirationDate = expirationDate
	}
	if err := s.inventoryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes an inventory lot.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	return s.inventoryRepo.Delete(ctx, id)
}

// LowStock returns lots that fell below their configured minimum.
func (s *Service) LowStock(ctx context.Context, kitchenID int64) ([]*inventory.Item, error) {
	return s.inventoryRepo.FindLowStock(ctx, kitchenID)
}

// Expiring returns lots expiring within the configured threshold window.
func (s *Service) Expiring(ctx context.Context, kitchenID int64) ([]*inventory.Item, error) {
	cutoff := time.Now().AddDate(0, 0, s.expiringThresholdDays)
	return s.inventoryRepo.FindExpiringBefore(ctx, kitchenID, cutoff)
}

// LocationSummary aggregates a kitchen's lots by storage location.
type LocationSummary struct {
	StorageLocationID   int64  `json:"storage_location_id"`
	StorageLocationName string `json:"storage_location_name"`
	ItemCount           int    `json:"item_count"`
	LowStockCount       int    `json:"low_stock_count"`
	ExpiringCount       int    `json:"expiring_count"`
}

// SummaryByLocation groups a kitchen's inventory by storage location.
func (s *Service) SummaryByLocation(ctx context.Context, kitchenID int64) ([]LocationSummary, error) {
	locations, err := s.kitchenRepo.FindLocations(ctx, kitchenID)
	if err != nil {
		return nil, err
	}
	items, err := s.inventoryRepo.FindByKitchen(ctx, kitchenID)
	if err != nil {
		return nil, err
	}

	today := time.Now()
	byLocation := make(map[int64]*LocationSummary, len(locations))
	summaries := make([]LocationSummary, len(locations))
	for i, loc := range locations {
		summaries[i] = LocationSummary{
			StorageLocationID:   loc.ID,
			StorageLocationName: loc.Name,
		}
		byLocation[loc.ID] = &summaries[i]
	}

	for _, item := range items {
		summary, ok := byLocation[item.StorageLocationID]
		if !ok {
			continue
		}
		summary.ItemCount++
		if item.IsLowStock() {
			summary.LowStockCount++
		}
		if item.ExpiresSoon(today, s.expiringThresholdDays) {
			summary.ExpiringCount++
		}
	}

	return summaries, nil
}

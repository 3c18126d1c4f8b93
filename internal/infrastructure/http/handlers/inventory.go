package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appinventory "github.com/nugamoto/v2/internal/application/inventory"
	"github.com/nugamoto/v2/internal/domain/inventory"
)

// InventoryHandler serves the inventory ledger
type InventoryHandler struct {
	inventory *appinventory.Service
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(
	inventory *appinventory.Service,
	validate *validator.Validate,
	logger *zap.Logger,
) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		validate:  validate,
		logger:    logger.Named("inventory-handler"),
	}
}

// KitchenRoutes mounts the kitchen-scoped inventory API
func (h *InventoryHandler) KitchenRoutes(r chi.Router) {
	r.Get("/", h.ListByKitchen)
	r.Post("/", h.AddStock)
	r.Get("/low-stock", h.LowStock)
	r.Get("/expiring", h.Expiring)
	r.Get("/summary", h.Summary)
}

// ItemRoutes mounts the lot API addressed by item id
func (h *InventoryHandler) ItemRoutes(r chi.Router) {
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

type addStockRequest struct {
	FoodItemID        int64      `json:"food_item_id" validate:"required,gt=0"`
	StorageLocationID int64      `json:"storage_location_id" validate:"required,gt=0"`
	Quantity          float64    `json:"quantity" validate:"required,gt=0"`
	MinQuantity       *float64   `json:"min_quantity,omitempty" validate:"omitempty,gte=0"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
}

type updateItemRequest struct {
	Quantity       *float64   `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	MinQuantity    *float64   `json:"min_quantity,omitempty" validate:"omitempty,gte=0"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
}

type inventoryItemResponse struct {
	ID                int64      `json:"id"`
	KitchenID         int64      `json:"kitchen_id"`
	FoodItemID        int64      `json:"food_item_id"`
	StorageLocationID int64      `json:"storage_location_id"`
	Quantity          float64    `json:"quantity"`
	MinQuantity       *float64   `json:"min_quantity,omitempty"`
	ExpirationDate    *time.Time `json:"expiration_date,omitempty"`
	LowStock          bool       `json:"low_stock"`
	Expired           bool       `json:"expired"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func toInventoryItemResponse(item *inventory.Item) inventoryItemResponse {
	return inventoryItemResponse{
		ID:                item.ID,
		KitchenID:         item.KitchenID,
		FoodItemID:        item.FoodItemID,
		StorageLocationID: item.StorageLocationID,
		Quantity:          item.Quantity,
		MinQuantity:       item.MinQuantity,
		ExpirationDate:    item.ExpirationDate,
		LowStock:          item.IsLowStock(),
		Expired:           item.IsExpired(time.Now()),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func toInventoryItemResponses(items []*inventory.Item) []inventoryItemResponse {
	responses := make([]inventoryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toInventoryItemResponse(item))
	}
	return responses
}

// AddStock handles POST /api/v1/kitchens/{id}/inventory
func (h *InventoryHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req addStockRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	item, err := h.inventory.AddStock(
		r.Context(),
		kitchenID, req.FoodItemID, req.StorageLocationID,
		req.Quantity, req.MinQuantity, req.ExpirationDate,
	)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, toInventoryItemResponse(item))
}

// ListByKitchen handles GET /api/v1/kitchens/{id}/inventory
func (h *InventoryHandler) ListByKitchen(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	items, err := h.inventory.ListByKitchen(r.Context(), kitchenID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	responses := toInventoryItemResponses(items)
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

// LowStock handles GET /api/v1/kitchens/{id}/inventory/low-stock
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	items, err := h.inventory.LowStock(r.Context(), kitchenID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	responses := toInventoryItemResponses(items)
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

// Expiring handles GET /api/v1/kitchens/{id}/inventory/expiring
func (h *InventoryHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	items, err := h.inventory.Expiring(r.Context(), kitchenID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	responses := toInventoryItemResponses(items)
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

// Summary handles GET /api/v1/kitchens/{id}/inventory/summary
func (h *InventoryHandler) Summary(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	summaries, err := h.inventory.SummaryByLocation(r.Context(), kitchenID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, summaries)
}

// Get handles GET /api/v1/inventory/{id}
func (h *InventoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	item, err := h.inventory.GetItem(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toInventoryItemResponse(item))
}

// Update handles PATCH /api/v1/inventory/{id}
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req updateItemRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	item, err := h.inventory.UpdateItem(r.Context(), id, req.Quantity, req.MinQuantity, req.ExpirationDate)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toInventoryItemResponse(item))
}

// Delete handles DELETE /api/v1/inventory/{id}
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.inventory.DeleteItem(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "inventory item deleted")
}

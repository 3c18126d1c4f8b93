package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	appinventory "github.com/nugamoto/v2/internal/application/inventory"
	"github.com/nugamoto/v2/internal/domain/kitchen"
)

// KitchensHandler serves kitchens and their storage locations
type KitchensHandler struct {
	inventory *appinventory.Service
	validate  *validator.Validate
	logger    *zap.Logger
}

// NewKitchensHandler creates a new kitchens handler
func NewKitchensHandler(
	inventory *appinventory.Service,
	validate *validator.Validate,
	logger *zap.Logger,
) *KitchensHandler {
	return &KitchensHandler{
		inventory: inventory,
		validate:  validate,
		logger:    logger.Named("kitchens-handler"),
	}
}

// Routes mounts the kitchens API. The inventory handler's kitchen-scoped
// routes nest under /{id}/inventory so the whole subtree shares one id
// parameter.
func (h *KitchensHandler) Routes(inventory *InventoryHandler) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Put("/", h.Update)
			r.Delete("/", h.Delete)

			r.Route("/locations", func(r chi.Router) {
				r.Get("/", h.ListLocations)
				r.Post("/", h.CreateLocation)
			})

			r.Route("/inventory", inventory.KitchenRoutes)
		})
	}
}

// LocationRoutes mounts the storage-location API addressed by location id
func (h *KitchensHandler) LocationRoutes(r chi.Router) {
	r.Put("/{id}", h.UpdateLocation)
	r.Delete("/{id}", h.DeleteLocation)
}

type kitchenRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type kitchenResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toKitchenResponse(k *kitchen.Kitchen) kitchenResponse {
	return kitchenResponse{
		ID:        k.ID,
		Name:      k.Name,
		CreatedAt: k.CreatedAt,
		UpdatedAt: k.UpdatedAt,
	}
}

type locationRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type locationResponse struct {
	ID        int64     `json:"id"`
	KitchenID int64     `json:"kitchen_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toLocationResponse(loc *kitchen.StorageLocation) locationResponse {
	return locationResponse{
		ID:        loc.ID,
		KitchenID: loc.KitchenID,
		Name:      loc.Name,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}

// Create handles POST /api/v1/kitchens
func (h *KitchensHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req kitchenRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	k, err := h.inventory.CreateKitchen(r.Context(), req.Name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, toKitchenResponse(k))
}

// Get handles GET /api/v1/kitchens/{id}
func (h *KitchensHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	k, err := h.inventory.GetKitchen(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toKitchenResponse(k))
}

// List handles GET /api/v1/kitchens
func (h *KitchensHandler) List(w http.ResponseWriter, r *http.Request) {
	kitchens, err := h.inventory.ListKitchens(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]kitchenResponse, 0, len(kitchens))
	for _, k := range kitchens {
		responses = append(responses, toKitchenResponse(k))
	}
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

// Update handles PUT /api/v1/kitchens/{id}
func (h *KitchensHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req kitchenRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	k, err := h.inventory.UpdateKitchen(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toKitchenResponse(k))
}

// Delete handles DELETE /api/v1/kitchens/{id}
func (h *KitchensHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.inventory.DeleteKitchen(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "kitchen deleted")
}

// CreateLocation handles POST /api/v1/kitchens/{id}/locations
func (h *KitchensHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req locationRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	loc, err := h.inventory.CreateLocation(r.Context(), kitchenID, req.Name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, toLocationResponse(loc))
}

// ListLocations handles GET /api/v1/kitchens/{id}/locations
func (h *KitchensHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	locations, err := h.inventory.ListLocations(r.Context(), kitchenID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]locationResponse, 0, len(locations))
	for _, loc := range locations {
		responses = append(responses, toLocationResponse(loc))
	}
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

// UpdateLocation handles PUT /api/v1/locations/{id}
func (h *KitchensHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req locationRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	loc, err := h.inventory.UpdateLocation(r.Context(), id, req.Name)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toLocationResponse(loc))
}

// DeleteLocation handles DELETE /api/v1/locations/{id}
func (h *KitchensHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.inventory.DeleteLocation(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "storage location deleted")
}

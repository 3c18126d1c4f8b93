package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/application/catalog"
	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/ports/inbound"
)

// FoodsHandler serves the food catalog and food-specific conversions
type FoodsHandler struct {
	foods       *catalog.FoodService
	conversions inbound.ConversionService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewFoodsHandler creates a new foods handler
func NewFoodsHandler(
	foods *catalog.FoodService,
	conversions inbound.ConversionService,
	validate *validator.Validate,
	logger *zap.Logger,
) *FoodsHandler {
	return &FoodsHandler{
		foods:       foods,
		conversions: conversions,
		validate:    validate,
		logger:      logger.Named("foods-handler"),
	}
}

// Routes mounts the foods API
func (h *FoodsHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)

		r.Route("/conversions", func(r chi.Router) {
			r.Get("/", h.ListConversions)
			r.Post("/", h.CreateConversion)
			r.Delete("/{fromID}/{toID}", h.DeleteConversion)
		})

		r.Get("/convert/{fromID}/{toID}", h.Convert)
		r.Get("/can-convert/{fromID}/{toID}", h.CanConvert)
	})
}

type foodRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Category   string `json:"category" validate:"max=100"`
	BaseUnitID int64  `json:"base_unit_id" validate:"required,gt=0"`
}

type foodResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	BaseUnitID int64     `json:"base_unit_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toFoodResponse(item *food.Item) foodResponse {
	return foodResponse{
		ID:         item.ID,
		Name:       item.Name,
		Category:   item.Category,
		BaseUnitID: item.BaseUnitID,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}

type foodConversionRequest struct {
	FromUnitID int64   `json:"from_unit_id" validate:"required,gt=0"`
	ToUnitID   int64   `json:"to_unit_id" validate:"required,gt=0"`
	Factor     float64 `json:"factor" validate:"required,gt=0"`
}

type foodConversionResponse struct {
	FoodItemID int64   `json:"food_item_id"`
	FromUnitID int64   `json:"from_unit_id"`
	ToUnitID   int64   `json:"to_unit_id"`
	Factor     float64 `json:"factor"`
}

// Create handles POST /api/v1/foods
func (h *FoodsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req foodRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	item, err := h.foods.CreateFood(r.Context(), req.Name, req.Category, req.BaseUnitID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, toFoodResponse(item))
}

// Get handles GET /api/v1/foods/{id}
func (h *FoodsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	item, err := h.foods.GetFood(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toFoodResponse(item))
}

// List handles GET /api/v1/foods?category=baking&offset=0&limit=50
func (h *FoodsHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, total, err := h.foods.ListFoods(r.Context(), r.URL.Query().Get("category"), offset, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]foodResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, toFoodResponse(item))
	}
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: total})
}

// Update handles PUT /api/v1/foods/{id}
func (h *FoodsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req foodRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	item, err := h.foods.UpdateFood(r.Context(), id, req.Name, req.Category, req.BaseUnitID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toFoodResponse(item))
}

// Delete handles DELETE /api/v1/foods/{id}
func (h *FoodsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.foods.DeleteFood(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "food item deleted")
}

// CreateConversion handles POST /api/v1/foods/{id}/conversions
func (h *FoodsHandler) CreateConversion(w http.ResponseWriter, r *http.Request) {
	foodID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req foodConversionRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	conv, err := h.foods.CreateConversion(r.Context(), foodID, req.FromUnitID, req.ToUnitID, req.Factor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, foodConversionResponse{
		FoodItemID: conv.FoodItemID,
		FromUnitID: conv.FromUnitID,
		ToUnitID:   conv.ToUnitID,
		Factor:     conv.Factor,
	})
}

// ListConversions handles GET /api/v1/foods/{id}/conversions
func (h *FoodsHandler) ListConversions(w http.ResponseWriter, r *http.Request) {
	foodID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	conversions, err := h.foods.ListConversions(r.Context(), foodID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]foodConversionResponse, 0, len(conversions))
	for _, conv := range conversions {
		responses = append(responses, foodConversionResponse{
			FoodItemID: conv.FoodItemID,
			FromUnitID: conv.FromUnitID,
			ToUnitID:   conv.ToUnitID,
			Factor:     conv.Factor,
		})
	}
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

// DeleteConversion handles DELETE /api/v1/foods/{id}/conversions/{fromID}/{toID}
func (h *FoodsHandler) DeleteConversion(w http.ResponseWriter, r *http.Request) {
	foodID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	fromID, err := urlParamID(r, "fromID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	toID, err := urlParamID(r, "toID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.foods.DeleteConversion(r.Context(), foodID, fromID, toID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "conversion deleted")
}

// Convert handles GET /api/v1/foods/{id}/convert/{fromID}/{toID}?value=2
func (h *FoodsHandler) Convert(w http.ResponseWriter, r *http.Request) {
	foodID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	fromID, err := urlParamID(r, "fromID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	toID, err := urlParamID(r, "toID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	value, err := strconv.ParseFloat(r.URL.Query().Get("value"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Error: "value query parameter is required"})
		return
	}

	result, err := h.conversions.ConvertFoodValue(r.Context(), foodID, value, fromID, toID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, conversionResultResponse{
		Value:        result.Value,
		Factor:       result.Factor,
		FoodSpecific: result.FoodSpecific,
	})
}

// CanConvert handles GET /api/v1/foods/{id}/can-convert/{fromID}/{toID}
func (h *FoodsHandler) CanConvert(w http.ResponseWriter, r *http.Request) {
	foodID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	fromID, err := urlParamID(r, "fromID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	toID, err := urlParamID(r, "toID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	ok, err := h.conversions.CanConvertFoodUnits(r.Context(), foodID, fromID, toID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"can_convert": ok})
}

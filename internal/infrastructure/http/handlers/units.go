package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/application/catalog"
	"github.com/nugamoto/v2/internal/domain/unit"
	"github.com/nugamoto/v2/internal/ports/inbound"
)

// UnitsHandler serves the unit registry and the generic conversion resolver
type UnitsHandler struct {
	units       *catalog.UnitService
	conversions inbound.ConversionService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewUnitsHandler creates a new units handler
func NewUnitsHandler(
	units *catalog.UnitService,
	conversions inbound.ConversionService,
	validate *validator.Validate,
	logger *zap.Logger,
) *UnitsHandler {
	return &UnitsHandler{
		units:       units,
		conversions: conversions,
		validate:    validate,
		logger:      logger.Named("units-handler"),
	}
}

// Routes mounts the units API
func (h *UnitsHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)

	r.Route("/conversions", func(r chi.Router) {
		r.Get("/", h.ListConversions)
		r.Post("/", h.CreateConversion)
		r.Delete("/{fromID}/{toID}", h.DeleteConversion)
	})

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Get("/convert-to/{toID}", h.Convert)
		r.Get("/can-convert-to/{toID}", h.CanConvert)
	})
}

type unitRequest struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Type         string  `json:"type" validate:"required"`
	ToBaseFactor float64 `json:"to_base_factor" validate:"required,gt=0"`
}

type unitResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	ToBaseFactor float64   `json:"to_base_factor"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUnitResponse(u *unit.Unit) unitResponse {
	return unitResponse{
		ID:           u.ID,
		Name:         u.Name,
		Type:         string(u.Type),
		ToBaseFactor: u.ToBaseFactor,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

type conversionRequest struct {
	FromUnitID int64   `json:"from_unit_id" validate:"required,gt=0"`
	ToUnitID   int64   `json:"to_unit_id" validate:"required,gt=0"`
	Factor     float64 `json:"factor" validate:"required,gt=0"`
}

type conversionResponse struct {
	FromUnitID int64   `json:"from_unit_id"`
	ToUnitID   int64   `json:"to_unit_id"`
	Factor     float64 `json:"factor"`
}

type conversionResultResponse struct {
	Value        float64 `json:"value"`
	Factor       float64 `json:"factor"`
	FoodSpecific bool    `json:"food_specific"`
}

// Create handles POST /api/v1/units
func (h *UnitsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req unitRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	u, err := h.units.CreateUnit(r.Context(), req.Name, req.Type, req.ToBaseFactor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, toUnitResponse(u))
}

// Get handles GET /api/v1/units/{id}
func (h *UnitsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	u, err := h.units.GetUnit(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toUnitResponse(u))
}

// List handles GET /api/v1/units?type=weight
func (h *UnitsHandler) List(w http.ResponseWriter, r *http.Request) {
	units, err := h.units.ListUnits(r.Context(), r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]unitResponse, 0, len(units))
	for _, u := range units {
		responses = append(responses, toUnitResponse(u))
	}
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

// Update handles PUT /api/v1/units/{id}
func (h *UnitsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req unitRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	u, err := h.units.UpdateUnit(r.Context(), id, req.Name, req.Type, req.ToBaseFactor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toUnitResponse(u))
}

// Delete handles DELETE /api/v1/units/{id}
func (h *UnitsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.units.DeleteUnit(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "unit deleted")
}

// CreateConversion handles POST /api/v1/units/conversions
func (h *UnitsHandler) CreateConversion(w http.ResponseWriter, r *http.Request) {
	var req conversionRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	conv, err := h.units.CreateConversion(r.Context(), req.FromUnitID, req.ToUnitID, req.Factor)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, conversionResponse{
		FromUnitID: conv.FromUnitID,
		ToUnitID:   conv.ToUnitID,
		Factor:     conv.Factor,
	})
}

// ListConversions handles GET /api/v1/units/conversions
func (h *UnitsHandler) ListConversions(w http.ResponseWriter, r *http.Request) {
	conversions, err := h.units.ListConversions(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]conversionResponse, 0, len(conversions))
	for _, conv := range conversions {
		responses = append(responses, conversionResponse{
			FromUnitID: conv.FromUnitID,
			ToUnitID:   conv.ToUnitID,
			Factor:     conv.Factor,
		})
	}
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

// DeleteConversion handles DELETE /api/v1/units/conversions/{fromID}/{toID}
func (h *UnitsHandler) DeleteConversion(w http.ResponseWriter, r *http.Request) {
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
	if err := h.units.DeleteConversion(r.Context(), fromID, toID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "conversion deleted")
}

// Convert handles GET /api/v1/units/{id}/convert-to/{toID}?value=2.5
func (h *UnitsHandler) Convert(w http.ResponseWriter, r *http.Request) {
	fromID, err := urlParamID(r, "id")
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

	result, err := h.conversions.ConvertValue(r.Context(), value, fromID, toID)
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

// CanConvert handles GET /api/v1/units/{id}/can-convert-to/{toID}
func (h *UnitsHandler) CanConvert(w http.ResponseWriter, r *http.Request) {
	fromID, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	toID, err := urlParamID(r, "toID")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	ok, err := h.conversions.CanConvertUnits(r.Context(), fromID, toID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"can_convert": ok})
}

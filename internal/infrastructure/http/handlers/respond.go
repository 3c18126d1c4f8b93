// Package handlers provides pure JSON API handlers
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/kitchen"
	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/domain/unit"
	apperrors "github.com/nugamoto/v2/pkg/errors"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ListResponse wraps a collection with its total match count
type ListResponse struct {
	Items interface{} `json:"items"`
	Total int         `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, response APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, APIResponse{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, APIResponse{Success: true, Message: message})
}

// writeError maps domain errors onto HTTP status codes. Anything
// unrecognized is treated as an internal error and logged.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	// A recipe that cannot be cooked carries the full shortfall list.
	var insufficient *recipe.InsufficientIngredientsError
	if errors.As(err, &insufficient) {
		writeJSON(w, http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error:   insufficient.Error(),
			Data:    map[string]interface{}{"insufficient_ingredients": insufficient.Shortfalls},
		})
		return
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode(), APIResponse{Success: false, Error: appErr.Message})
		return
	}

	status := statusForDomainError(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
		writeJSON(w, status, APIResponse{Success: false, Error: "internal server error"})
		return
	}
	writeJSON(w, status, APIResponse{Success: false, Error: err.Error()})
}

func statusForDomainError(err error) int {
	switch {
	case errors.Is(err, unit.ErrNotFound),
		errors.Is(err, unit.ErrConversionNotFound),
		errors.Is(err, food.ErrNotFound),
		errors.Is(err, food.ErrConversionNotFound),
		errors.Is(err, kitchen.ErrNotFound),
		errors.Is(err, kitchen.ErrLocationNotFound),
		errors.Is(err, inventory.ErrNotFound),
		errors.Is(err, recipe.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, unit.ErrNameTaken),
		errors.Is(err, unit.ErrConversionExists),
		errors.Is(err, unit.ErrInUse),
		errors.Is(err, food.ErrNameTaken),
		errors.Is(err, food.ErrConversionExists),
		errors.Is(err, kitchen.ErrLocationNameTaken):
		return http.StatusConflict

	case errors.Is(err, inventory.ErrStockConflict):
		return http.StatusConflict

	case errors.Is(err, unit.ErrNoConversionPath),
		errors.Is(err, unit.ErrInvalidName),
		errors.Is(err, unit.ErrInvalidType),
		errors.Is(err, unit.ErrInvalidFactor),
		errors.Is(err, unit.ErrSameUnit),
		errors.Is(err, food.ErrInvalidName),
		errors.Is(err, food.ErrInvalidBaseUnit),
		errors.Is(err, food.ErrInvalidFactor),
		errors.Is(err, food.ErrSameUnit),
		errors.Is(err, kitchen.ErrInvalidName),
		errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, recipe.ErrInvalidTitle),
		errors.Is(err, recipe.ErrInvalidAmount),
		errors.Is(err, recipe.ErrUnknownFoodItem),
		errors.Is(err, recipe.ErrDuplicateIngredient),
		errors.Is(err, recipe.ErrNoIngredients):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// writeValidationError reports request body validation failures
func writeValidationError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.StatusCode(), APIResponse{Success: false, Error: appErr.Message})
		return
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]apperrors.ValidationError, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, apperrors.ValidationError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Message: fe.Error(),
			})
		}
		appErr := apperrors.NewValidationErrors(fields)
		writeJSON(w, appErr.StatusCode(), APIResponse{Success: false, Error: appErr.Details})
		return
	}
	writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Error: err.Error()})
}

// decodeBody parses and validates a JSON request body
func decodeBody(r *http.Request, validate *validator.Validate, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewBadRequestError("invalid JSON body")
	}
	return validate.Struct(dst)
}

// urlParamID parses a chi URL parameter as an int64 identifier
func urlParamID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewBadRequestError("invalid " + name + " parameter")
	}
	return id, nil
}

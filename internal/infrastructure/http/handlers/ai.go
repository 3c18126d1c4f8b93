package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/ports/outbound"
)

// AIHandler serves AI recipe generation
type AIHandler struct {
	ai       outbound.AIService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(ai outbound.AIService, validate *validator.Validate, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		ai:       ai,
		validate: validate,
		logger:   logger.Named("ai-handler"),
	}
}

// Routes mounts the AI API
func (h *AIHandler) Routes(r chi.Router) {
	r.Post("/generate-recipe", h.GenerateRecipe)
}

type generateRecipeRequest struct {
	Prompt           string   `json:"prompt" validate:"required,max=2000"`
	Servings         int      `json:"servings" validate:"omitempty,gt=0,lte=50"`
	MaxKcal          int      `json:"max_kcal" validate:"omitempty,gt=0"`
	Dietary          []string `json:"dietary,omitempty"`
	AvoidIngredients []string `json:"avoid_ingredients,omitempty"`
}

type generatedIngredientResponse struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type generatedRecipeResponse struct {
	RequestID    string                        `json:"request_id"`
	Provider     string                        `json:"provider"`
	Model        string                        `json:"model"`
	Title        string                        `json:"title"`
	Description  string                        `json:"description,omitempty"`
	Ingredients  []generatedIngredientResponse `json:"ingredients"`
	Instructions []string                      `json:"instructions"`
	Tags         []string                      `json:"tags,omitempty"`
}

// GenerateRecipe handles POST /api/v1/ai/generate-recipe
func (h *AIHandler) GenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req generateRecipeRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	resp, err := h.ai.GenerateRecipe(r.Context(), req.Prompt, outbound.AIConstraints{
		Servings:         req.Servings,
		MaxKcal:          req.MaxKcal,
		Dietary:          req.Dietary,
		AvoidIngredients: req.AvoidIngredients,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := generatedRecipeResponse{
		RequestID:    resp.RequestID.String(),
		Provider:     resp.Provider,
		Model:        resp.Model,
		Title:        resp.Title,
		Description:  resp.Description,
		Ingredients:  make([]generatedIngredientResponse, 0, len(resp.Ingredients)),
		Instructions: resp.Instructions,
		Tags:         resp.Tags,
	}
	for _, ing := range resp.Ingredients {
		result.Ingredients = append(result.Ingredients, generatedIngredientResponse{
			Name:   ing.Name,
			Amount: ing.Amount,
			Unit:   ing.Unit,
		})
	}
	writeData(w, http.StatusOK, result)
}

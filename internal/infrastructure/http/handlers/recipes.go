package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/infrastructure/monitoring"
	"github.com/nugamoto/v2/internal/ports/inbound"
)

// RecipesHandler serves the recipe catalog and the cook operation
type RecipesHandler struct {
	recipes  inbound.RecipeService
	cooking  inbound.CookingService
	metrics  *monitoring.Metrics
	validate *validator.Validate
	logger   *zap.Logger
}

// NewRecipesHandler creates a new recipes handler
func NewRecipesHandler(
	recipes inbound.RecipeService,
	cooking inbound.CookingService,
	metrics *monitoring.Metrics,
	validate *validator.Validate,
	logger *zap.Logger,
) *RecipesHandler {
	return &RecipesHandler{
		recipes:  recipes,
		cooking:  cooking,
		metrics:  metrics,
		validate: validate,
		logger:   logger.Named("recipes-handler"),
	}
}

// Routes mounts the recipes API
func (h *RecipesHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/summary", h.Summary)
	r.Get("/cookable", h.Cookable)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
		r.Post("/cook", h.Cook)
	})
}

type recipeIngredientRequest struct {
	FoodItemID       int64    `json:"food_item_id" validate:"required,gt=0"`
	AmountInBaseUnit float64  `json:"amount_in_base_unit" validate:"required,gt=0"`
	OriginalAmount   *float64 `json:"original_amount,omitempty" validate:"omitempty,gt=0"`
	OriginalUnitID   *int64   `json:"original_unit_id,omitempty" validate:"omitempty,gt=0"`
}

type recipeStepRequest struct {
	Instruction string `json:"instruction" validate:"required"`
}

type recipeNutritionRequest struct {
	Kcal    *float64 `json:"kcal,omitempty" validate:"omitempty,gte=0"`
	Protein *float64 `json:"protein,omitempty" validate:"omitempty,gte=0"`
	Fat     *float64 `json:"fat,omitempty" validate:"omitempty,gte=0"`
	Carbs   *float64 `json:"carbs,omitempty" validate:"omitempty,gte=0"`
}

type recipeRequest struct {
	Title           string                    `json:"title" validate:"required,max=255"`
	Description     string                    `json:"description"`
	Servings        int                       `json:"servings" validate:"omitempty,gt=0"`
	Difficulty      string                    `json:"difficulty" validate:"omitempty,oneof=easy medium hard"`
	Tags            []string                  `json:"tags,omitempty"`
	PrepTimeMinutes int                       `json:"prep_time_minutes" validate:"gte=0"`
	CookTimeMinutes int                       `json:"cook_time_minutes" validate:"gte=0"`
	Ingredients     []recipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	Steps           []recipeStepRequest       `json:"steps" validate:"dive"`
	Nutrition       *recipeNutritionRequest   `json:"nutrition,omitempty"`
}

func (req *recipeRequest) toDomain(id int64) *recipe.Recipe {
	r := &recipe.Recipe{
		ID:              id,
		Title:           req.Title,
		Description:     req.Description,
		Servings:        req.Servings,
		Difficulty:      req.Difficulty,
		Tags:            req.Tags,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
	}
	if r.Servings <= 0 {
		r.Servings = 1
	}
	for _, ing := range req.Ingredients {
		r.Ingredients = append(r.Ingredients, recipe.Ingredient{
			RecipeID:         id,
			FoodItemID:       ing.FoodItemID,
			AmountInBaseUnit: ing.AmountInBaseUnit,
			OriginalAmount:   ing.OriginalAmount,
			OriginalUnitID:   ing.OriginalUnitID,
		})
	}
	for i, step := range req.Steps {
		r.Steps = append(r.Steps, recipe.Step{
			RecipeID:    id,
			StepNumber:  i + 1,
			Instruction: step.Instruction,
		})
	}
	if req.Nutrition != nil {
		r.Nutrition = &recipe.Nutrition{
			RecipeID: id,
			Kcal:     req.Nutrition.Kcal,
			Protein:  req.Nutrition.Protein,
			Fat:      req.Nutrition.Fat,
			Carbs:    req.Nutrition.Carbs,
		}
	}
	return r
}

type recipeIngredientResponse struct {
	FoodItemID       int64    `json:"food_item_id"`
	FoodItemName     string   `json:"food_item_name"`
	AmountInBaseUnit float64  `json:"amount_in_base_unit"`
	OriginalAmount   *float64 `json:"original_amount,omitempty"`
	OriginalUnitID   *int64   `json:"original_unit_id,omitempty"`
}

type recipeStepResponse struct {
	StepNumber  int    `json:"step_number"`
	Instruction string `json:"instruction"`
}

type recipeNutritionResponse struct {
	Kcal    *float64 `json:"kcal,omitempty"`
	Protein *float64 `json:"protein,omitempty"`
	Fat     *float64 `json:"fat,omitempty"`
	Carbs   *float64 `json:"carbs,omitempty"`
}

type recipeResponse struct {
	ID              int64                      `json:"id"`
	Title           string                     `json:"title"`
	Description     string                     `json:"description,omitempty"`
	Servings        int                        `json:"servings"`
	Difficulty      string                     `json:"difficulty,omitempty"`
	Tags            []string                   `json:"tags,omitempty"`
	AIGenerated     bool                       `json:"ai_generated"`
	AIModel         string                     `json:"ai_model,omitempty"`
	PrepTimeMinutes int                        `json:"prep_time_minutes"`
	CookTimeMinutes int                        `json:"cook_time_minutes"`
	Ingredients     []recipeIngredientResponse `json:"ingredients"`
	Steps           []recipeStepResponse       `json:"steps"`
	Nutrition       *recipeNutritionResponse   `json:"nutrition,omitempty"`
	CreatedAt       time.Time                  `json:"created_at"`
	UpdatedAt       time.Time                  `json:"updated_at"`
}

func toRecipeResponse(r *recipe.Recipe) recipeResponse {
	resp := recipeResponse{
		ID:              r.ID,
		Title:           r.Title,
		Description:     r.Description,
		Servings:        r.Servings,
		Difficulty:      r.Difficulty,
		Tags:            r.Tags,
		AIGenerated:     r.AIGenerated,
		AIModel:         r.AIModel,
		PrepTimeMinutes: r.PrepTimeMinutes,
		CookTimeMinutes: r.CookTimeMinutes,
		Ingredients:     make([]recipeIngredientResponse, 0, len(r.Ingredients)),
		Steps:           make([]recipeStepResponse, 0, len(r.Steps)),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
	for _, ing := range r.Ingredients {
		resp.Ingredients = append(resp.Ingredients, recipeIngredientResponse{
			FoodItemID:       ing.FoodItemID,
			FoodItemName:     ing.FoodItemName,
			AmountInBaseUnit: ing.AmountInBaseUnit,
			OriginalAmount:   ing.OriginalAmount,
			OriginalUnitID:   ing.OriginalUnitID,
		})
	}
	for _, step := range r.Steps {
		resp.Steps = append(resp.Steps, recipeStepResponse{
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
		})
	}
	if r.Nutrition != nil {
		resp.Nutrition = &recipeNutritionResponse{
			Kcal:    r.Nutrition.Kcal,
			Protein: r.Nutrition.Protein,
			Fat:     r.Nutrition.Fat,
			Carbs:   r.Nutrition.Carbs,
		}
	}
	return resp
}

// Create handles POST /api/v1/recipes
func (h *RecipesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	rec := req.toDomain(0)
	if err := h.recipes.CreateRecipe(r.Context(), rec); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusCreated, toRecipeResponse(rec))
}

// Get handles GET /api/v1/recipes/{id}
func (h *RecipesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	rec, err := h.recipes.GetRecipe(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toRecipeResponse(rec))
}

// List handles GET /api/v1/recipes with filter query parameters
func (h *RecipesHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := recipe.Filter{Title: query.Get("title")}
	filter.Offset, _ = strconv.Atoi(query.Get("offset"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	if raw := query.Get("ai_generated"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.AIGenerated = &v
		}
	}
	if raw := query.Get("max_kcal"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MaxKcal = &v
		}
	}
	if raw := query.Get("min_protein"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinProtein = &v
		}
	}

	recipes, total, err := h.recipes.ListRecipes(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]recipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		responses = append(responses, toRecipeResponse(rec))
	}
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: total})
}

// Update handles PUT /api/v1/recipes/{id}
func (h *RecipesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	var req recipeRequest
	if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	rec := req.toDomain(id)
	if err := h.recipes.UpdateRecipe(r.Context(), rec); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, toRecipeResponse(rec))
}

// Delete handles DELETE /api/v1/recipes/{id}
func (h *RecipesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if err := h.recipes.DeleteRecipe(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "recipe deleted")
}

// Summary handles GET /api/v1/recipes/summary
func (h *RecipesHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.recipes.Summary(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, summary)
}

// Cookable handles GET /api/v1/recipes/cookable?kitchen_id=1&min_match=0.8
func (h *RecipesHandler) Cookable(w http.ResponseWriter, r *http.Request) {
	kitchenID, err := strconv.ParseInt(r.URL.Query().Get("kitchen_id"), 10, 64)
	if err != nil || kitchenID <= 0 {
		writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Error: "kitchen_id query parameter is required"})
		return
	}
	minMatch := 1.0
	if raw := r.URL.Query().Get("min_match"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			minMatch = v
		}
	}

	recipes, err := h.recipes.FindCookable(r.Context(), kitchenID, minMatch)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	responses := make([]recipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		responses = append(responses, toRecipeResponse(rec))
	}
	writeData(w, http.StatusOK, ListResponse{Items: responses, Total: len(responses)})
}

type cookRequest struct {
	KitchenID int64 `json:"kitchen_id" validate:"required,gt=0"`
}

// Cook handles POST /api/v1/recipes/{id}/cook?kitchen_id={id}.
// The kitchen may be given as a query parameter or a JSON body.
func (h *RecipesHandler) Cook(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req cookRequest
	if raw := r.URL.Query().Get("kitchen_id"); raw != "" {
		req.KitchenID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || req.KitchenID <= 0 {
			writeJSON(w, http.StatusBadRequest, APIResponse{Success: false, Error: "invalid kitchen_id parameter"})
			return
		}
	} else if err := decodeBody(r, h.validate, &req); err != nil {
		writeValidationError(w, err)
		return
	}

	result, err := h.cooking.CookRecipe(r.Context(), id, req.KitchenID)
	if err != nil {
		h.metrics.RecordCookAttempt(cookResultLabel(err))
		writeError(w, h.logger, err)
		return
	}

	h.metrics.RecordCookAttempt(monitoring.CookResultSuccess)
	writeData(w, http.StatusOK, result)
}

func cookResultLabel(err error) string {
	var insufficient *recipe.InsufficientIngredientsError
	switch {
	case errors.As(err, &insufficient):
		return monitoring.CookResultInsufficient
	case errors.Is(err, inventory.ErrStockConflict):
		return monitoring.CookResultConflict
	default:
		return monitoring.CookResultError
	}
}

package gorm

import (
	"context"
	"errors"

	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/ports/outbound"
	"gorm.io/gorm"
)

// RecipeRepository implements outbound.RecipeRepository using GORM
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// Create persists a recipe with its ingredients, steps and nutrition
func (r *RecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	model := recipeToModel(rec)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	rec.ID = model.ID
	rec.CreatedAt = model.CreatedAt
	return nil
}

// Update replaces the recipe row and all of its associations
func (r *RecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&RecipeModel{}).
			Where("id = ?", rec.ID).
			Updates(map[string]interface{}{
				"title":             rec.Title,
				"description":       rec.Description,
				"servings":          rec.Servings,
				"difficulty":        rec.Difficulty,
				"tags":              StringSlice(rec.Tags),
				"ai_generated":      rec.AIGenerated,
				"ai_model":          rec.AIModel,
				"prep_time_minutes": rec.PrepTimeMinutes,
				"cook_time_minutes": rec.CookTimeMinutes,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return recipe.ErrNotFound
		}

		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeStepModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rec.ID).Delete(&RecipeNutritionModel{}).Error; err != nil {
			return err
		}

		model := recipeToModel(rec)
		if len(model.Ingredients) > 0 {
			if err := tx.Create(&model.Ingredients).Error; err != nil {
				return err
			}
		}
		if len(model.Steps) > 0 {
			if err := tx.Create(&model.Steps).Error; err != nil {
				return err
			}
		}
		if model.Nutrition != nil {
			if err := tx.Create(model.Nutrition).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a recipe and its associations
func (r *RecipeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&RecipeStepModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&RecipeNutritionModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&RecipeModel{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return recipe.ErrNotFound
		}
		return nil
	})
}

// FindByID loads one recipe with all associations preloaded
func (r *RecipeRepository) FindByID(ctx context.Context, id int64) (*recipe.Recipe, error) {
	var model RecipeModel
	err := r.db.WithContext(ctx).
		Preload("Ingredients.FoodItem").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_steps.step_number ASC")
		}).
		Preload("Nutrition").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrNotFound
		}
		return nil, err
	}
	return recipeToDomain(&model), nil
}

// FindAll lists recipes matching the filter together with the total count
func (r *RecipeRepository) FindAll(ctx context.Context, filter recipe.Filter) ([]*recipe.Recipe, int, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{})

	if filter.Title != "" {
		query = query.Where("recipes.title LIKE ?", "%"+filter.Title+"%")
	}
	if filter.AIGenerated != nil {
		query = query.Where("recipes.ai_generated = ?", *filter.AIGenerated)
	}
	if filter.MaxKcal != nil || filter.MinProtein != nil {
		query = query.Joins("JOIN recipe_nutrition ON recipe_nutrition.recipe_id = recipes.id")
		if filter.MaxKcal != nil {
			query = query.Where("recipe_nutrition.kcal <= ?", *filter.MaxKcal)
		}
		if filter.MinProtein != nil {
			query = query.Where("recipe_nutrition.protein >= ?", *filter.MinProtein)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecipeModel
	err := query.
		Preload("Ingredients.FoodItem").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_steps.step_number ASC")
		}).
		Preload("Nutrition").
		Order("recipes.created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, recipeToDomain(&models[i]))
	}
	return recipes, int(total), nil
}

// FindByFoodItems lists recipes whose ingredient coverage by the given
// food items reaches minMatch (0..1).
func (r *RecipeRepository) FindByFoodItems(ctx context.Context, foodItemIDs []int64, minMatch float64) ([]*recipe.Recipe, error) {
	if len(foodItemIDs) == 0 {
		return []*recipe.Recipe{}, nil
	}

	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&RecipeIngredientModel{}).
		Select("recipe_id").
		Group("recipe_id").
		Having("SUM(CASE WHEN food_item_id IN (?) THEN 1.0 ELSE 0.0 END) / COUNT(*) >= ?",
			foodItemIDs, minMatch).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*recipe.Recipe{}, nil
	}

	var models []RecipeModel
	err = r.db.WithContext(ctx).
		Preload("Ingredients.FoodItem").
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipe_steps.step_number ASC")
		}).
		Preload("Nutrition").
		Where("id IN ?", ids).
		Order("title ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	recipes := make([]*recipe.Recipe, 0, len(models))
	for i := range models {
		recipes = append(recipes, recipeToDomain(&models[i]))
	}
	return recipes, nil
}

// Summary aggregates catalog-wide recipe statistics
func (r *RecipeRepository) Summary(ctx context.Context) (*recipe.Summary, error) {
	summary := &recipe.Summary{}
	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&RecipeModel{}).Count(&total).Error; err != nil {
		return nil, err
	}
	summary.TotalRecipes = total

	if err := db.Model(&RecipeModel{}).Where("ai_generated = ?", true).Count(&summary.AIGenerated).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&RecipeNutritionModel{}).Count(&summary.WithNutrition).Error; err != nil {
		return nil, err
	}

	if total > 0 {
		var avg float64
		err := db.Model(&RecipeModel{}).
			Select("AVG(servings)").
			Scan(&avg).Error
		if err != nil {
			return nil, err
		}
		summary.AverageServings = avg
	}
	return summary, nil
}

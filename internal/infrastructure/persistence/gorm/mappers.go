package gorm

import (
	"github.com/nugamoto/v2/internal/domain/food"
	"github.com/nugamoto/v2/internal/domain/inventory"
	"github.com/nugamoto/v2/internal/domain/kitchen"
	"github.com/nugamoto/v2/internal/domain/recipe"
	"github.com/nugamoto/v2/internal/domain/unit"
	"github.com/nugamoto/v2/internal/ports/outbound"
)

func unitToDomain(m *UnitModel) *unit.Unit {
	return &unit.Unit{
		ID:           m.ID,
		Name:         m.Name,
		Type:         unit.Type(m.Type),
		ToBaseFactor: m.ToBaseFactor,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func unitToModel(u *unit.Unit) *UnitModel {
	return &UnitModel{
		ID:           u.ID,
		Name:         u.Name,
		Type:         string(u.Type),
		ToBaseFactor: u.ToBaseFactor,
	}
}

func unitConversionToDomain(m *UnitConversionModel) *unit.Conversion {
	return &unit.Conversion{
		FromUnitID: m.FromUnitID,
		ToUnitID:   m.ToUnitID,
		Factor:     m.Factor,
		CreatedAt:  m.CreatedAt,
	}
}

func foodItemToDomain(m *FoodItemModel) *food.Item {
	return &food.Item{
		ID:         m.ID,
		Name:       m.Name,
		Category:   m.Category,
		BaseUnitID: m.BaseUnitID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func foodItemToModel(item *food.Item) *FoodItemModel {
	return &FoodItemModel{
		ID:         item.ID,
		Name:       item.Name,
		Category:   item.Category,
		BaseUnitID: item.BaseUnitID,
	}
}

func foodConversionToDomain(m *FoodItemUnitConversionModel) *food.Conversion {
	return &food.Conversion{
		FoodItemID: m.FoodItemID,
		FromUnitID: m.FromUnitID,
		ToUnitID:   m.ToUnitID,
		Factor:     m.Factor,
		CreatedAt:  m.CreatedAt,
	}
}

func kitchenToDomain(m *KitchenModel) *kitchen.Kitchen {
	return &kitchen.Kitchen{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func locationToDomain(m *StorageLocationModel) *kitchen.StorageLocation {
	return &kitchen.StorageLocation{
		ID:        m.ID,
		KitchenID: m.KitchenID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func inventoryItemToDomain(m *InventoryItemModel) *inventory.Item {
	return &inventory.Item{
		ID:                m.ID,
		KitchenID:         m.KitchenID,
		FoodItemID:        m.FoodItemID,
		StorageLocationID: m.StorageLocationID,
		Quantity:          m.Quantity,
		MinQuantity:       m.MinQuantity,
		ExpirationDate:    m.ExpirationDate,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func inventoryItemToModel(item *inventory.Item) *InventoryItemModel {
	return &InventoryItemModel{
		ID:                item.ID,
		KitchenID:         item.KitchenID,
		FoodItemID:        item.FoodItemID,
		StorageLocationID: item.StorageLocationID,
		Quantity:          item.Quantity,
		MinQuantity:       item.MinQuantity,
		ExpirationDate:    item.ExpirationDate,
	}
}

// recipeToDomain maps a fully preloaded recipe model. Ingredient food
// names come from the preloaded FoodItem association.
func recipeToDomain(m *RecipeModel) *recipe.Recipe {
	r := &recipe.Recipe{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		Servings:        m.Servings,
		Difficulty:      m.Difficulty,
		Tags:            m.Tags,
		AIGenerated:     m.AIGenerated,
		AIModel:         m.AIModel,
		PrepTimeMinutes: m.PrepTimeMinutes,
		CookTimeMinutes: m.CookTimeMinutes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}

	for _, ing := range m.Ingredients {
		r.Ingredients = append(r.Ingredients, recipe.Ingredient{
			RecipeID:         ing.RecipeID,
			FoodItemID:       ing.FoodItemID,
			FoodItemName:     ing.FoodItem.Name,
			AmountInBaseUnit: ing.AmountInBaseUnit,
			OriginalAmount:   ing.OriginalAmount,
			OriginalUnitID:   ing.OriginalUnitID,
		})
	}
	for _, step := range m.Steps {
		r.Steps = append(r.Steps, recipe.Step{
			RecipeID:    step.RecipeID,
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
		})
	}
	if m.Nutrition != nil {
		r.Nutrition = &recipe.Nutrition{
			RecipeID: m.Nutrition.RecipeID,
			Kcal:     m.Nutrition.Kcal,
			Protein:  m.Nutrition.Protein,
			Fat:      m.Nutrition.Fat,
			Carbs:    m.Nutrition.Carbs,
		}
	}
	return r
}

func recipeToModel(r *recipe.Recipe) *RecipeModel {
	m := &RecipeModel{
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
	}

	for _, ing := range r.Ingredients {
		m.Ingredients = append(m.Ingredients, RecipeIngredientModel{
			RecipeID:         r.ID,
			FoodItemID:       ing.FoodItemID,
			AmountInBaseUnit: ing.AmountInBaseUnit,
			OriginalAmount:   ing.OriginalAmount,
			OriginalUnitID:   ing.OriginalUnitID,
		})
	}
	for _, step := range r.Steps {
		m.Steps = append(m.Steps, RecipeStepModel{
			RecipeID:    r.ID,
			StepNumber:  step.StepNumber,
			Instruction: step.Instruction,
		})
	}
	if r.Nutrition != nil {
		m.Nutrition = &RecipeNutritionModel{
			RecipeID: r.ID,
			Kcal:     r.Nutrition.Kcal,
			Protein:  r.Nutrition.Protein,
			Fat:      r.Nutrition.Fat,
			Carbs:    r.Nutrition.Carbs,
		}
	}
	return m
}

func aiOutputToDomain(m *AIModelOutputModel) *outbound.AIModelOutput {
	return &outbound.AIModelOutput{
		ID:          m.ID,
		RequestID:   m.RequestID,
		Provider:    m.Provider,
		Model:       m.Model,
		Prompt:      m.Prompt,
		RawResponse: m.RawResponse,
		CreatedAt:   m.CreatedAt,
	}
}

func aiOutputToModel(o *outbound.AIModelOutput) *AIModelOutputModel {
	return &AIModelOutputModel{
		ID:          o.ID,
		RequestID:   o.RequestID,
		Provider:    o.Provider,
		Model:       o.Model,
		Prompt:      o.Prompt,
		RawResponse: o.RawResponse,
	}
}

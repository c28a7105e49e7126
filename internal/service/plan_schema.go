package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pageza/ada/backend/internal/models"
)

// Schema is the subset of the OpenAPI schema object understood by Gemini
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

var (
	stringSchema = &Schema{Type: "STRING"}
	numberSchema = &Schema{Type: "NUMBER"}
)

var mealSchema = &Schema{
	Type: "OBJECT",
	Properties: map[string]*Schema{
		"type":        {Type: "STRING", Description: "Meal type (Kahvaltı, Öğle, Akşam, Ara)"},
		"name":        stringSchema,
		"calories":    numberSchema,
		"recipe":      {Type: "STRING", Description: "Short recipe instructions"},
		"ingredients": {Type: "ARRAY", Items: stringSchema, Description: "List of ingredients with amounts"},
	},
	Required: []string{"type", "name", "calories", "recipe", "ingredients"},
}

var dailyPlanSchema = &Schema{
	Type: "OBJECT",
	Properties: map[string]*Schema{
		"day":              {Type: "STRING", Description: "Day of the week (e.g., Pazartesi)"},
		"totalCalories":    numberSchema,
		"estimatedCostTRY": {Type: "NUMBER", Description: "Estimated cost for this day in TRY"},
		"meals":            {Type: "ARRAY", Items: mealSchema},
	},
	Required: []string{"day", "totalCalories", "estimatedCostTRY", "meals"},
}

var dietPlanSchema = &Schema{
	Type: "OBJECT",
	Properties: map[string]*Schema{
		"introduction": {
			Type:        "STRING",
			Description: "A motivating introduction and summary of the plan in Turkish, referencing their BMI stats.",
		},
		"analysis": {
			Type:        "OBJECT",
			Description: "Mathematical analysis of calories and timeline.",
			Properties: map[string]*Schema{
				"maintenanceCalories":    {Type: "NUMBER", Description: "Calculated TDEE (Total Daily Energy Expenditure)."},
				"targetDailyCalories":    {Type: "NUMBER", Description: "Recommended daily calorie intake for the goal."},
				"dailyCalorieDifference": {Type: "NUMBER", Description: "The calorie deficit (negative) or surplus (positive) amount."},
				"estimatedWeeksToGoal":   {Type: "NUMBER", Description: "Estimated number of weeks to reach target weight based on the deficit/surplus."},
				"message":                {Type: "STRING", Description: "Short explanation of the math in Turkish (e.g. 'To lose X kg, you need a deficit of Y kcal...')"},
			},
			Required: []string{"maintenanceCalories", "targetDailyCalories", "dailyCalorieDifference", "estimatedWeeksToGoal", "message"},
		},
		"totalWeeklyCostEstimate": {
			Type:        "NUMBER",
			Description: "Estimated total cost of the shopping list in Turkish Lira (TRY).",
		},
		"weeklyShoppingList": {
			Type:        "ARRAY",
			Items:       stringSchema,
			Description: "A consolidated list of ingredients needed for the whole week.",
		},
		"weeklyPlan": {Type: "ARRAY", Items: dailyPlanSchema},
	},
	Required: []string{"introduction", "analysis", "weeklyPlan", "weeklyShoppingList", "totalWeeklyCostEstimate"},
}

var planValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidatePlan checks a decoded plan against the response schema. Every
// problem is reported in one *SchemaMismatchError.
func ValidatePlan(plan *models.DietPlan) error {
	if plan == nil {
		return &SchemaMismatchError{Problems: []string{"plan is empty"}}
	}

	err := planValidator.Struct(plan)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return &SchemaMismatchError{Problems: []string{err.Error()}}
	}

	problems := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		problems = append(problems, describeFieldError(fe))
	}
	return &SchemaMismatchError{Problems: problems}
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "DietPlan.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must have %s entries", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("%s must be %s %s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

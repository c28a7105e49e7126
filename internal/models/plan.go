package models

// Meal is a single meal of a day plan
type Meal struct {
	Type        string   `json:"type" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Calories    float64  `json:"calories" validate:"gte=0"`
	Recipe      string   `json:"recipe" validate:"required"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,required"`
}

// DailyPlan is one day of the weekly plan
type DailyPlan struct {
	Day              string  `json:"day" validate:"required"`
	TotalCalories    float64 `json:"totalCalories" validate:"gte=0"`
	EstimatedCostTRY float64 `json:"estimatedCostTRY" validate:"gte=0"`
	Meals            []Meal  `json:"meals" validate:"required,min=1,dive"`
}

// PlanAnalysis is the calorie and timeline analysis computed by the model
type PlanAnalysis struct {
	MaintenanceCalories    float64 `json:"maintenanceCalories" validate:"gt=0"`
	TargetDailyCalories    float64 `json:"targetDailyCalories" validate:"gt=0"`
	DailyCalorieDifference float64 `json:"dailyCalorieDifference"`
	EstimatedWeeksToGoal   float64 `json:"estimatedWeeksToGoal" validate:"gte=0"`
	Message                string  `json:"message" validate:"required"`
}

// DietPlan is the full weekly plan. Timestamp is set once, in milliseconds
// since the Unix epoch, when the plan is accepted.
type DietPlan struct {
	Introduction            string       `json:"introduction" validate:"required"`
	Analysis                PlanAnalysis `json:"analysis"`
	WeeklyPlan              []DailyPlan  `json:"weeklyPlan" validate:"required,len=7,dive"`
	WeeklyShoppingList      []string     `json:"weeklyShoppingList" validate:"required,min=1,dive,required"`
	TotalWeeklyCostEstimate float64      `json:"totalWeeklyCostEstimate" validate:"gte=0"`
	Timestamp               *int64       `json:"timestamp,omitempty"`
}

// Place is a store returned by the nearby-store lookup
type Place struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

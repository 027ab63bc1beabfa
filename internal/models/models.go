package models

import "time"

type User struct {
	ID            string   `db:"id" json:"id"`
	Username      string   `db:"username" json:"username"`
	PasswordHash  string   `db:"password_hash" json:"-"`
	Name          string   `db:"name" json:"name"`
	SurgeryDate   *string  `db:"surgery_date" json:"surgeryDate,omitempty"` // YYYY-MM-DD
	DailyFatLimit *float64 `db:"daily_fat_limit" json:"dailyFatLimit,omitempty"`
}

type Food struct {
	ID              string  `db:"id" json:"id"`
	Name            string  `db:"name" json:"name"`
	Category        string  `db:"category" json:"category"` // protein, vegetable, fruit, grain, dairy, ...
	FatPer100g      float64 `db:"fat_per_100g" json:"fatPer100g"`
	CaloriesPer100g int     `db:"calories_per_100g" json:"caloriesPer100g"`
	ProteinPer100g  float64 `db:"protein_per_100g" json:"proteinPer100g"`
	CarbsPer100g    float64 `db:"carbs_per_100g" json:"carbsPer100g"`
	FiberPer100g    float64 `db:"fiber_per_100g" json:"fiberPer100g"`
	ServingSize     string  `db:"serving_size" json:"servingSize"` // e.g. "100g", "1 cup", "1 medium"
	ServingWeight   int     `db:"serving_weight" json:"servingWeight"` // grams
	SafetyLevel     string  `db:"safety_level" json:"safetyLevel"`
	Description     *string `db:"description" json:"description,omitempty"`
	RecoveryNotes   *string `db:"recovery_notes" json:"recoveryNotes,omitempty"`
}

type Recipe struct {
	ID                 string         `db:"id" json:"id"`
	Name               string         `db:"name" json:"name"`
	Description        *string        `db:"description" json:"description,omitempty"`
	Instructions       string         `db:"instructions" json:"instructions"` // newline-delimited steps
	PrepTime           *int           `db:"prep_time" json:"prepTime,omitempty"` // minutes
	CookTime           *int           `db:"cook_time" json:"cookTime,omitempty"`
	Servings           int            `db:"servings" json:"servings"`
	TotalFatPerServing float64        `db:"total_fat_per_serving" json:"totalFatPerServing"`
	SafetyLevel        string         `db:"safety_level" json:"safetyLevel"`
	Ingredients        IngredientList `db:"ingredients" json:"ingredients"`
	Tags               Tags           `db:"tags" json:"tags,omitempty"`
}

type MealPlan struct {
	ID       string          `db:"id" json:"id"`
	UserID   string          `db:"user_id" json:"userId"`
	Date     string          `db:"date" json:"date"` // YYYY-MM-DD
	Meals    PlannedMealList `db:"meals" json:"meals"`
	TotalFat float64         `db:"total_fat" json:"totalFat"`
	Notes    *string         `db:"notes" json:"notes,omitempty"`
}

type GroceryList struct {
	ID            string          `db:"id" json:"id"`
	UserID        string          `db:"user_id" json:"userId"`
	Name          string          `db:"name" json:"name"`
	WeekStartDate string          `db:"week_start_date" json:"weekStartDate"` // YYYY-MM-DD
	Items         GroceryItemList `db:"items" json:"items"`
	IsActive      bool            `db:"is_active" json:"isActive"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
}

type UserProgress struct {
	ID          string        `db:"id" json:"id"`
	UserID      string        `db:"user_id" json:"userId"`
	Date        string        `db:"date" json:"date"` // YYYY-MM-DD
	FatIntake   float64       `db:"fat_intake" json:"fatIntake"`
	FatLimit    float64       `db:"fat_limit" json:"fatLimit"`
	RecoveryDay int           `db:"recovery_day" json:"recoveryDay"` // days since surgery
	Notes       *string       `db:"notes" json:"notes,omitempty"`
	FoodsEaten  FoodEatenList `db:"foods_eaten" json:"foodsEaten,omitempty"`
}

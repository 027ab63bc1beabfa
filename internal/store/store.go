// Package store provides durable and in-memory persistence for the six
// record kinds behind the API. Both implementations satisfy Storage and
// are interchangeable.
package store

import (
	"context"
	"errors"

	"biletrack/internal/models"
)

// ErrNotFound is returned when a lookup or partial update targets an id,
// date, or user that has no record.
var ErrNotFound = errors.New("not found")

// UserPatch carries the fields of a partial user update; nil fields are
// left untouched.
type UserPatch struct {
	Username      *string  `json:"username"`
	PasswordHash  *string  `json:"-"` // set by the handler after hashing
	Name          *string  `json:"name"`
	SurgeryDate   *string  `json:"surgeryDate"`
	DailyFatLimit *float64 `json:"dailyFatLimit"`
}

type MealPlanPatch struct {
	Date     *string                 `json:"date"`
	Meals    *models.PlannedMealList `json:"meals"`
	TotalFat *float64                `json:"totalFat"`
	Notes    *string                 `json:"notes"`
}

type GroceryListPatch struct {
	Name          *string                 `json:"name"`
	WeekStartDate *string                 `json:"weekStartDate"`
	Items         *models.GroceryItemList `json:"items"`
	IsActive      *bool                   `json:"isActive"`
}

type ProgressPatch struct {
	Date        *string               `json:"date"`
	FatIntake   *float64              `json:"fatIntake"`
	FatLimit    *float64              `json:"fatLimit"`
	RecoveryDay *int                  `json:"recoveryDay"`
	Notes       *string               `json:"notes"`
	FoodsEaten  *models.FoodEatenList `json:"foodsEaten"`
}

type Storage interface {
	// Users
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, id string, p UserPatch) (*models.User, error)

	// Foods
	AllFoods(ctx context.Context) ([]models.Food, error)
	FoodByID(ctx context.Context, id string) (*models.Food, error)
	SearchFoods(ctx context.Context, query string) ([]models.Food, error)
	FoodsByCategory(ctx context.Context, category string) ([]models.Food, error)
	CreateFood(ctx context.Context, f *models.Food) error

	// Recipes
	AllRecipes(ctx context.Context) ([]models.Recipe, error)
	RecipeByID(ctx context.Context, id string) (*models.Recipe, error)
	RecipesByTag(ctx context.Context, tag string) ([]models.Recipe, error)
	SafeRecipes(ctx context.Context) ([]models.Recipe, error)
	CreateRecipe(ctx context.Context, r *models.Recipe) error

	// Meal plans
	MealPlanByDate(ctx context.Context, userID, date string) (*models.MealPlan, error)
	MealPlansForWeek(ctx context.Context, userID, weekStart string) ([]models.MealPlan, error)
	CreateMealPlan(ctx context.Context, mp *models.MealPlan) error
	UpdateMealPlan(ctx context.Context, id string, p MealPlanPatch) (*models.MealPlan, error)

	// Grocery lists
	ActiveGroceryList(ctx context.Context, userID string) (*models.GroceryList, error)
	GroceryListByID(ctx context.Context, id string) (*models.GroceryList, error)
	CreateGroceryList(ctx context.Context, gl *models.GroceryList) error
	UpdateGroceryList(ctx context.Context, id string, p GroceryListPatch) (*models.GroceryList, error)

	// Progress
	ProgressByDate(ctx context.Context, userID, date string) (*models.UserProgress, error)
	ProgressForWeek(ctx context.Context, userID, weekStart string) ([]models.UserProgress, error)
	CreateProgress(ctx context.Context, up *models.UserProgress) error
	UpdateProgress(ctx context.Context, id string, p ProgressPatch) (*models.UserProgress, error)

	// Reset wipes every table; used by the admin reseed.
	Reset(ctx context.Context) error
}

// Package seed holds the sample dataset used by the in-memory store,
// the admin reseed endpoint, and SEED_ON_START.
package seed

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"biletrack/internal/models"
	"biletrack/internal/store"
)

const (
	DefaultUserID   = "user-1"
	DefaultUsername = "sarah"
	// DefaultPassword is the demo account credential; it is stored hashed.
	DefaultPassword = "password123"
)

func strp(s string) *string   { return &s }
func intp(n int) *int         { return &n }
func f64p(f float64) *float64 { return &f }

// Apply wipes the store and repopulates every table with the sample
// dataset.
func Apply(ctx context.Context, s store.Storage) error {
	if err := s.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		ID:            DefaultUserID,
		Username:      DefaultUsername,
		PasswordHash:  string(hash),
		Name:          "Sarah Johnson",
		SurgeryDate:   strp("2024-03-01"),
		DailyFatLimit: f64p(30),
	}
	if err := s.CreateUser(ctx, &user); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	for i := range Foods {
		f := Foods[i]
		if err := s.CreateFood(ctx, &f); err != nil {
			return fmt.Errorf("seed food %s: %w", f.Name, err)
		}
	}
	for i := range Recipes {
		r := Recipes[i]
		if err := s.CreateRecipe(ctx, &r); err != nil {
			return fmt.Errorf("seed recipe %s: %w", r.Name, err)
		}
	}

	mealPlan := models.MealPlan{
		ID:     "mealplan-1",
		UserID: DefaultUserID,
		Date:   "2024-03-15",
		Meals: models.PlannedMealList{
			{Type: "breakfast", RecipeID: strp("recipe-2"), FatContent: 2.5},
			{Type: "lunch", RecipeID: strp("recipe-1"), FatContent: 4.2},
			{Type: "dinner", RecipeID: strp("recipe-3"), FatContent: 8.5},
		},
		TotalFat: 15.2,
		Notes:    strp("Good variety today, staying well under limit"),
	}
	if err := s.CreateMealPlan(ctx, &mealPlan); err != nil {
		return fmt.Errorf("seed meal plan: %w", err)
	}

	progress := models.UserProgress{
		ID:          "progress-1",
		UserID:      DefaultUserID,
		Date:        "2024-03-15",
		FatIntake:   18.0,
		FatLimit:    30.0,
		RecoveryDay: 12,
		Notes:       strp("Feeling good today"),
		FoodsEaten: models.FoodEatenList{
			{FoodID: "food-8", Amount: 234, MealType: "breakfast"},
			{FoodID: "food-9", Amount: 80, MealType: "breakfast"},
			{FoodID: "food-1", Amount: 100, MealType: "lunch"},
			{FoodID: "food-6", Amount: 91, MealType: "lunch"},
			{FoodID: "food-7", Amount: 110, MealType: "lunch"},
		},
	}
	if err := s.CreateProgress(ctx, &progress); err != nil {
		return fmt.Errorf("seed progress: %w", err)
	}

	grocery := models.GroceryList{
		ID:            "grocery-1",
		UserID:        DefaultUserID,
		Name:          "Week of March 15",
		WeekStartDate: "2024-03-15",
		Items: models.GroceryItemList{
			{FoodID: "food-1", Quantity: 2, Unit: "lbs", Category: "Proteins"},
			{FoodID: "food-2", Quantity: 1, Unit: "lb", Category: "Proteins"},
			{FoodID: "food-10", Quantity: 1, Unit: "container", Category: "Proteins"},
			{FoodID: "food-6", Quantity: 2, Unit: "heads", Category: "Vegetables"},
			{FoodID: "food-7", Quantity: 1, Unit: "bag", Category: "Vegetables"},
			{FoodID: "food-5", Quantity: 3, Unit: "pieces", Category: "Vegetables"},
		},
		IsActive: true,
	}
	if err := s.CreateGroceryList(ctx, &grocery); err != nil {
		return fmt.Errorf("seed grocery list: %w", err)
	}
	return nil
}

// Foods is the reference food catalog: lean proteins, vegetables, grains
// and a couple of deliberately high-fat entries for classifier coverage.
var Foods = []models.Food{
	{
		ID: "food-1", Name: "Chicken Breast", Category: "protein",
		FatPer100g: 3.6, CaloriesPer100g: 165, ProteinPer100g: 31.0,
		ServingSize: "100g", ServingWeight: 100, SafetyLevel: "safe",
		Description:   strp("Skinless, boneless chicken breast"),
		RecoveryNotes: strp("Excellent lean protein source for recovery"),
	},
	{
		ID: "food-2", Name: "White Fish Fillet", Category: "protein",
		FatPer100g: 1.3, CaloriesPer100g: 82, ProteinPer100g: 18.0,
		ServingSize: "100g", ServingWeight: 100, SafetyLevel: "safe",
		Description:   strp("Cod, tilapia, or similar white fish"),
		RecoveryNotes: strp("Very low fat, easy to digest"),
	},
	{
		ID: "food-3", Name: "Turkey Breast", Category: "protein",
		FatPer100g: 2.4, CaloriesPer100g: 135, ProteinPer100g: 30.0,
		ServingSize: "85g", ServingWeight: 85, SafetyLevel: "safe",
		Description:   strp("Skinless turkey breast"),
		RecoveryNotes: strp("Lean protein, remove all skin"),
	},
	{
		ID: "food-4", Name: "Brown Rice", Category: "grain",
		FatPer100g: 1.8, CaloriesPer100g: 123, ProteinPer100g: 2.6,
		CarbsPer100g: 25.0, FiberPer100g: 1.8,
		ServingSize: "1 cup cooked", ServingWeight: 195, SafetyLevel: "safe",
		Description:   strp("Cooked brown rice"),
		RecoveryNotes: strp("Good source of fiber and energy"),
	},
	{
		ID: "food-5", Name: "Sweet Potato", Category: "vegetable",
		FatPer100g: 0.3, CaloriesPer100g: 103, ProteinPer100g: 2.3,
		CarbsPer100g: 24.0, FiberPer100g: 3.0,
		ServingSize: "1 medium", ServingWeight: 200, SafetyLevel: "safe",
		Description:   strp("Baked sweet potato"),
		RecoveryNotes: strp("Rich in vitamins, very low fat"),
	},
	{
		ID: "food-6", Name: "Broccoli", Category: "vegetable",
		FatPer100g: 0.4, CaloriesPer100g: 34, ProteinPer100g: 2.8,
		CarbsPer100g: 7.0, FiberPer100g: 2.6,
		ServingSize: "1 cup", ServingWeight: 91, SafetyLevel: "safe",
		Description:   strp("Steamed broccoli"),
		RecoveryNotes: strp("High in nutrients, very low fat"),
	},
	{
		ID: "food-7", Name: "Green Beans", Category: "vegetable",
		FatPer100g: 0.1, CaloriesPer100g: 31, ProteinPer100g: 1.8,
		CarbsPer100g: 7.0, FiberPer100g: 3.4,
		ServingSize: "1 cup", ServingWeight: 110, SafetyLevel: "safe",
		Description:   strp("Steamed green beans"),
		RecoveryNotes: strp("Excellent low-fat vegetable"),
	},
	{
		ID: "food-8", Name: "Oatmeal", Category: "grain",
		FatPer100g: 6.9, CaloriesPer100g: 68, ProteinPer100g: 2.4,
		CarbsPer100g: 12.0, FiberPer100g: 1.7,
		ServingSize: "1 cup cooked", ServingWeight: 234, SafetyLevel: "safe",
		Description:   strp("Plain oatmeal cooked with water"),
		RecoveryNotes: strp("Good breakfast option, use water not milk"),
	},
	{
		ID: "food-9", Name: "Banana", Category: "fruit",
		FatPer100g: 0.3, CaloriesPer100g: 89, ProteinPer100g: 1.1,
		CarbsPer100g: 23.0, FiberPer100g: 2.6,
		ServingSize: "1 medium", ServingWeight: 118, SafetyLevel: "safe",
		Description:   strp("Fresh banana"),
		RecoveryNotes: strp("Easy to digest, good for potassium"),
	},
	{
		ID: "food-10", Name: "Low-fat Greek Yogurt", Category: "dairy",
		FatPer100g: 0.4, CaloriesPer100g: 59, ProteinPer100g: 10.0,
		CarbsPer100g: 3.6,
		ServingSize: "1 cup", ServingWeight: 245, SafetyLevel: "safe",
		Description:   strp("Plain, non-fat Greek yogurt"),
		RecoveryNotes: strp("Good protein source, choose non-fat versions"),
	},
	{
		ID: "food-11", Name: "Salmon Fillet", Category: "protein",
		FatPer100g: 13.4, CaloriesPer100g: 208, ProteinPer100g: 22.0,
		ServingSize: "85g", ServingWeight: 85, SafetyLevel: "moderate",
		Description:   strp("Atlantic salmon fillet"),
		RecoveryNotes: strp("Omega-3 rich but higher in fat, use small portions"),
	},
	{
		ID: "food-12", Name: "Avocado", Category: "fruit",
		FatPer100g: 29.5, CaloriesPer100g: 322, ProteinPer100g: 4.0,
		CarbsPer100g: 17.0, FiberPer100g: 10.0,
		ServingSize: "1 medium", ServingWeight: 200, SafetyLevel: "avoid",
		Description:   strp("Fresh avocado"),
		RecoveryNotes: strp("Very high fat content, avoid during early recovery"),
	},
}

var Recipes = []models.Recipe{
	{
		ID: "recipe-1", Name: "Grilled Chicken with Steamed Vegetables",
		Description:  strp("Simple, recovery-friendly meal with lean protein and vegetables"),
		Instructions: "1. Season chicken breast with herbs and spices (no oil)\n2. Grill chicken on non-stick pan\n3. Steam broccoli and green beans\n4. Serve together",
		PrepTime:     intp(10), CookTime: intp(20), Servings: 1,
		TotalFatPerServing: 4.2, SafetyLevel: "safe",
		Ingredients: models.IngredientList{
			{FoodID: "food-1", Amount: 100, Unit: "g"},
			{FoodID: "food-6", Amount: 91, Unit: "g"},
			{FoodID: "food-7", Amount: 110, Unit: "g"},
		},
		Tags: models.Tags{"lunch", "dinner", "low-fat", "protein-rich"},
	},
	{
		ID: "recipe-2", Name: "Oatmeal with Berries",
		Description:  strp("Nutritious breakfast perfect for recovery"),
		Instructions: "1. Cook oatmeal with water according to package directions\n2. Top with fresh berries\n3. Add a drizzle of honey if desired",
		PrepTime:     intp(5), CookTime: intp(5), Servings: 1,
		TotalFatPerServing: 2.5, SafetyLevel: "safe",
		Ingredients: models.IngredientList{
			{FoodID: "food-8", Amount: 40, Unit: "g"},
			{FoodID: "food-9", Amount: 80, Unit: "g"},
		},
		Tags: models.Tags{"breakfast", "low-fat", "fiber-rich"},
	},
	{
		ID: "recipe-3", Name: "Baked Cod with Sweet Potato",
		Description:  strp("Low-fat fish dinner with nutritious sweet potato"),
		Instructions: "1. Bake cod fillet with herbs and lemon\n2. Bake sweet potato until tender\n3. Steam green beans\n4. Serve together",
		PrepTime:     intp(15), CookTime: intp(25), Servings: 1,
		TotalFatPerServing: 8.5, SafetyLevel: "moderate",
		Ingredients: models.IngredientList{
			{FoodID: "food-2", Amount: 150, Unit: "g"},
			{FoodID: "food-5", Amount: 200, Unit: "g"},
			{FoodID: "food-7", Amount: 110, Unit: "g"},
		},
		Tags: models.Tags{"dinner", "low-fat", "omega-3"},
	},
}

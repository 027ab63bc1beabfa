package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biletrack/internal/models"
)

func strp(s string) *string { return &s }

func f64p(v float64) *float64 { return &v }

func TestMemStoreUsers(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	u := &models.User{Username: "sarah", PasswordHash: "hash", Name: "Sarah Johnson"}
	require.NoError(t, s.CreateUser(ctx, u))
	assert.NotEmpty(t, u.ID, "id should be assigned")

	got, err := s.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "sarah", got.Username)

	byName, err := s.GetUserByUsername(ctx, "sarah")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byName.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := s.UpdateUser(ctx, u.ID, UserPatch{
		SurgeryDate:   strp("2024-03-01"),
		DailyFatLimit: f64p(30),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.SurgeryDate)
	assert.Equal(t, "2024-03-01", *updated.SurgeryDate)
	assert.Equal(t, "Sarah Johnson", updated.Name, "untouched fields survive a patch")

	_, err = s.UpdateUser(ctx, "missing", UserPatch{Name: strp("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreFoodSearch(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.CreateFood(ctx, &models.Food{
		ID: "f1", Name: "Chicken Breast", Category: "protein", FatPer100g: 3.6,
	}))
	require.NoError(t, s.CreateFood(ctx, &models.Food{
		ID: "f2", Name: "Broccoli", Category: "vegetable", FatPer100g: 0.4,
		Description: strp("Steamed greens"),
	}))
	require.NoError(t, s.CreateFood(ctx, &models.Food{
		ID: "f3", Name: "Salmon", Category: "protein", FatPer100g: 13.4,
	}))

	t.Run("name match is case insensitive", func(t *testing.T) {
		got, err := s.SearchFoods(ctx, "CHICKEN")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "f1", got[0].ID)
	})

	t.Run("matches description", func(t *testing.T) {
		got, err := s.SearchFoods(ctx, "steamed")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "f2", got[0].ID)
	})

	t.Run("matches category", func(t *testing.T) {
		got, err := s.SearchFoods(ctx, "protein")
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("no match", func(t *testing.T) {
		got, err := s.SearchFoods(ctx, "pizza")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	byCat, err := s.FoodsByCategory(ctx, "vegetable")
	require.NoError(t, err)
	require.Len(t, byCat, 1)
	assert.Equal(t, "f2", byCat[0].ID)

	_, err = s.FoodByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreRecipes(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.CreateRecipe(ctx, &models.Recipe{
		ID: "r1", Name: "Grilled Chicken", Servings: 2, SafetyLevel: "safe",
		Tags: models.Tags{"high-protein", "quick"},
	}))
	require.NoError(t, s.CreateRecipe(ctx, &models.Recipe{
		ID: "r2", Name: "Baked Salmon", Servings: 1, SafetyLevel: "moderate",
		Tags: models.Tags{"omega-3"},
	}))

	safe, err := s.SafeRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, safe, 1)
	assert.Equal(t, "r1", safe[0].ID)

	tagged, err := s.RecipesByTag(ctx, "quick")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "r1", tagged[0].ID)

	none, err := s.RecipesByTag(ctx, "dessert")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = s.RecipeByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreMealPlanWeek(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	dates := []string{"2024-03-03", "2024-03-04", "2024-03-10", "2024-03-11"}
	for i, d := range dates {
		require.NoError(t, s.CreateMealPlan(ctx, &models.MealPlan{
			ID: dates[i], UserID: "u1", Date: d,
		}))
	}
	// other user's plan inside the window must not leak
	require.NoError(t, s.CreateMealPlan(ctx, &models.MealPlan{
		ID: "other", UserID: "u2", Date: "2024-03-05",
	}))

	// window [2024-03-04, 2024-03-11): picks up the 4th and the 10th only
	week, err := s.MealPlansForWeek(ctx, "u1", "2024-03-04")
	require.NoError(t, err)
	require.Len(t, week, 2)

	_, err = s.MealPlansForWeek(ctx, "u1", "not-a-date")
	assert.Error(t, err)

	byDate, err := s.MealPlanByDate(ctx, "u1", "2024-03-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-03", byDate.Date)

	_, err = s.MealPlanByDate(ctx, "u1", "2024-06-01")
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := s.UpdateMealPlan(ctx, "2024-03-03", MealPlanPatch{TotalFat: f64p(12.5)})
	require.NoError(t, err)
	assert.Equal(t, 12.5, updated.TotalFat)

	_, err = s.UpdateMealPlan(ctx, "missing", MealPlanPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreGroceryLists(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	active := &models.GroceryList{
		ID: "g1", UserID: "u1", Name: "Week 1", WeekStartDate: "2024-03-04",
		Items: models.GroceryItemList{
			{FoodID: "f1", Quantity: 2, Unit: "lbs", Category: "Proteins"},
			{FoodID: "f2", Quantity: 1, Unit: "bunch", Category: "Vegetables"},
		},
		IsActive: true,
	}
	require.NoError(t, s.CreateGroceryList(ctx, active))
	assert.False(t, active.CreatedAt.IsZero(), "created_at should be stamped")

	require.NoError(t, s.CreateGroceryList(ctx, &models.GroceryList{
		ID: "g2", UserID: "u1", Name: "Old week", WeekStartDate: "2024-02-26",
	}))

	got, err := s.ActiveGroceryList(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "g1", got.ID)

	_, err = s.ActiveGroceryList(ctx, "u2")
	assert.ErrorIs(t, err, ErrNotFound)

	// checking one item off leaves the rest alone
	items := make(models.GroceryItemList, len(active.Items))
	copy(items, active.Items)
	items[0].Checked = true
	updated, err := s.UpdateGroceryList(ctx, "g1", GroceryListPatch{Items: &items})
	require.NoError(t, err)
	require.Len(t, updated.Items, 2)
	assert.True(t, updated.Items[0].Checked)
	assert.False(t, updated.Items[1].Checked)

	_, err = s.UpdateGroceryList(ctx, "missing", GroceryListPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreProgressWeek(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	for _, d := range []string{"2024-03-04", "2024-03-06", "2024-03-11"} {
		require.NoError(t, s.CreateProgress(ctx, &models.UserProgress{
			ID: d, UserID: "u1", Date: d, FatIntake: 15, FatLimit: 20,
		}))
	}

	week, err := s.ProgressForWeek(ctx, "u1", "2024-03-04")
	require.NoError(t, err)
	assert.Len(t, week, 2, "the 11th falls outside [start, start+7d)")

	byDate, err := s.ProgressByDate(ctx, "u1", "2024-03-06")
	require.NoError(t, err)
	assert.Equal(t, 15.0, byDate.FatIntake)

	updated, err := s.UpdateProgress(ctx, "2024-03-06", ProgressPatch{
		FatIntake: f64p(18.2),
		Notes:     strp("feeling better"),
	})
	require.NoError(t, err)
	assert.Equal(t, 18.2, updated.FatIntake)
	assert.Equal(t, 20.0, updated.FatLimit, "unpatched fields keep their values")

	_, err = s.UpdateProgress(ctx, "missing", ProgressPatch{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreReset(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	require.NoError(t, s.CreateFood(ctx, &models.Food{ID: "f1", Name: "Chicken"}))
	require.NoError(t, s.Reset(ctx))

	foods, err := s.AllFoods(ctx)
	require.NoError(t, err)
	assert.Empty(t, foods)
}

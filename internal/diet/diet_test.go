package diet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"biletrack/internal/models"
)

func TestClassifyFat(t *testing.T) {
	tests := []struct {
		name string
		fat  float64
		want SafetyLevel
	}{
		{"zero", 0, Safe},
		{"below safe max", 3.6, Safe},
		{"safe boundary resolves low", 5.0, Safe},
		{"just over safe", 5.01, Moderate},
		{"mid moderate", 13.4, Moderate},
		{"moderate boundary resolves low", 15.0, Moderate},
		{"just over moderate", 15.01, Avoid},
		{"very high", 29.5, Avoid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyFat(tt.fat))
		})
	}
}

func TestClassifyServing(t *testing.T) {
	// 3.6g/100g over a 100g serving is 3.6g per serving
	assert.Equal(t, Safe, ClassifyServing(3.6, 100))
	// 13.4g/100g over 85g is 11.39g
	assert.Equal(t, Moderate, ClassifyServing(13.4, 85))
	// 29.5g/100g over 200g is 59g
	assert.Equal(t, Avoid, ClassifyServing(29.5, 200))
	// 10g/100g over a 50g serving lands exactly on the safe boundary
	assert.Equal(t, Safe, ClassifyServing(10, 50))
}

func TestRecipeFatPerServing(t *testing.T) {
	fat := map[string]float64{"a": 13.4, "b": 3.6, "c": 0.4}

	t.Run("single ingredient", func(t *testing.T) {
		got, err := RecipeFatPerServing([]models.Ingredient{{FoodID: "a", Amount: 100}}, fat, 1)
		require.NoError(t, err)
		assert.Equal(t, 13.4, got)
	})

	t.Run("divides by servings and rounds", func(t *testing.T) {
		ings := []models.Ingredient{
			{FoodID: "a", Amount: 100},
			{FoodID: "b", Amount: 50},
		}
		// total 13.4 + 1.8 = 15.2; per serving 5.066... -> 5.07
		got, err := RecipeFatPerServing(ings, fat, 3)
		require.NoError(t, err)
		assert.Equal(t, 5.07, got)
	})

	t.Run("order independent", func(t *testing.T) {
		ab := []models.Ingredient{{FoodID: "a", Amount: 100}, {FoodID: "b", Amount: 75}}
		ba := []models.Ingredient{{FoodID: "b", Amount: 75}, {FoodID: "a", Amount: 100}}
		got1, err := RecipeFatPerServing(ab, fat, 2)
		require.NoError(t, err)
		got2, err := RecipeFatPerServing(ba, fat, 2)
		require.NoError(t, err)
		assert.Equal(t, got1, got2)
	})

	t.Run("unresolved food ids are skipped", func(t *testing.T) {
		ings := []models.Ingredient{
			{FoodID: "a", Amount: 100},
			{FoodID: "missing", Amount: 500},
		}
		got, err := RecipeFatPerServing(ings, fat, 1)
		require.NoError(t, err)
		assert.Equal(t, 13.4, got)
	})

	t.Run("rejects zero servings", func(t *testing.T) {
		_, err := RecipeFatPerServing([]models.Ingredient{{FoodID: "a", Amount: 100}}, fat, 0)
		assert.ErrorIs(t, err, ErrInvalidServings)
	})

	t.Run("rejects negative servings", func(t *testing.T) {
		_, err := RecipeFatPerServing(nil, fat, -1)
		assert.ErrorIs(t, err, ErrInvalidServings)
	})
}

func TestFatProgress(t *testing.T) {
	assert.Equal(t, 50.0, FatProgress(15, 30))
	assert.Equal(t, 100.0, FatProgress(30, 30))
	// clamped, never exceeds 100
	assert.Equal(t, 100.0, FatProgress(60, 30))
	assert.Equal(t, 0.0, FatProgress(0, 30))
}

func TestIsIntakeSafe(t *testing.T) {
	assert.True(t, IsIntakeSafe(24, 30))  // exactly 80%
	assert.True(t, IsIntakeSafe(10, 30))
	assert.False(t, IsIntakeSafe(25, 30))
	assert.False(t, IsIntakeSafe(31, 30))
}

func TestCheckMealPlan(t *testing.T) {
	t.Run("valid quiet day", func(t *testing.T) {
		meals := []models.PlannedMeal{
			{Type: "breakfast", FatContent: 2.5},
			{Type: "lunch", FatContent: 4.2},
		}
		res := CheckMealPlan(meals, 30)
		assert.True(t, res.Valid)
		assert.Equal(t, 6.7, res.TotalFat)
		assert.Empty(t, res.Warnings)
	})

	t.Run("high fat meal draws a warning", func(t *testing.T) {
		meals := []models.PlannedMeal{{Type: "dinner", FatContent: 12}}
		res := CheckMealPlan(meals, 30)
		assert.True(t, res.Valid)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "dinner")
	})

	t.Run("approaching limit warns but stays valid", func(t *testing.T) {
		meals := []models.PlannedMeal{
			{Type: "breakfast", FatContent: 9},
			{Type: "lunch", FatContent: 9},
			{Type: "dinner", FatContent: 9},
		}
		res := CheckMealPlan(meals, 30) // 27 > 24 (80%)
		assert.True(t, res.Valid)
		require.Len(t, res.Warnings, 1)
		assert.Contains(t, res.Warnings[0], "approaching")
	})

	t.Run("over the limit is invalid", func(t *testing.T) {
		meals := []models.PlannedMeal{
			{Type: "lunch", FatContent: 20},
			{Type: "dinner", FatContent: 15},
		}
		res := CheckMealPlan(meals, 30)
		assert.False(t, res.Valid)
		assert.Equal(t, 35.0, res.TotalFat)
	})
}

func TestCategorizeFoods(t *testing.T) {
	foods := []models.Food{
		{ID: "1", Name: "Chicken", Category: "proteins"},
		{ID: "2", Name: "Broccoli", Category: "vegetables"},
		{ID: "3", Name: "Mystery", Category: "snacks"},
	}
	got := CategorizeFoods(foods)
	require.Len(t, got, 3)
	assert.Len(t, got["Proteins"], 1)
	assert.Len(t, got["Vegetables"], 1)
	assert.Len(t, got["Other"], 1)
	// no empty buckets
	_, hasFruits := got["Fruits"]
	assert.False(t, hasFruits)
}

func TestFilterFoodsBySafety(t *testing.T) {
	foods := []models.Food{
		{ID: "1", SafetyLevel: "safe"},
		{ID: "2", SafetyLevel: "moderate"},
		{ID: "3", SafetyLevel: "safe"},
		{ID: "4", SafetyLevel: "avoid"},
	}
	tests := []struct {
		level SafetyLevel
		want  []string
	}{
		{Safe, []string{"1", "3"}},
		{Moderate, []string{"2"}},
		{Avoid, []string{"4"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got := FilterFoodsBySafety(foods, tt.level)
			require.Len(t, got, len(tt.want))
			for i, id := range tt.want {
				assert.Equal(t, id, got[i].ID)
			}
		})
	}
}

func TestFilterRecipesBySafety(t *testing.T) {
	recipes := []models.Recipe{
		{ID: "r1", SafetyLevel: "safe"},
		{ID: "r2", SafetyLevel: "moderate"},
		{ID: "r3", SafetyLevel: "moderate"},
	}
	tests := []struct {
		level SafetyLevel
		want  []string
	}{
		{Safe, []string{"r1"}},
		{Moderate, []string{"r2", "r3"}},
		{Avoid, []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			got := FilterRecipesBySafety(recipes, tt.level)
			require.NotNil(t, got)
			require.Len(t, got, len(tt.want))
			for i, id := range tt.want {
				assert.Equal(t, id, got[i].ID)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	assert.True(t, ValidLevel("safe"))
	assert.True(t, ValidLevel("moderate"))
	assert.True(t, ValidLevel("avoid"))
	assert.False(t, ValidLevel("Safe"))
	assert.False(t, ValidLevel("greasy"))
	assert.False(t, ValidLevel(""))
}

func TestSuggestLowerFat(t *testing.T) {
	ref := models.Food{ID: "x", Category: "protein", FatPer100g: 13.4}
	all := []models.Food{
		ref,
		{ID: "a", Category: "protein", FatPer100g: 3.6},
		{ID: "b", Category: "protein", FatPer100g: 1.3},
		{ID: "c", Category: "protein", FatPer100g: 2.4},
		{ID: "d", Category: "protein", FatPer100g: 2.0},
		{ID: "e", Category: "protein", FatPer100g: 20.0}, // higher, excluded
		{ID: "f", Category: "fruit", FatPer100g: 0.3},    // wrong category
	}
	got := SuggestLowerFat(ref, all)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "d", got[1].ID)
	assert.Equal(t, "c", got[2].ID)
}

func TestEstimateCalories(t *testing.T) {
	f := models.Food{FatPer100g: 3.6, ProteinPer100g: 31, CarbsPer100g: 0}
	// 3.6*9 + 31*4 = 32.4 + 124 = 156.4 -> 156
	assert.Equal(t, 156, EstimateCalories(f))
}

func TestSortFoodsByFat(t *testing.T) {
	foods := []models.Food{
		{ID: "high", FatPer100g: 29.5},
		{ID: "low", FatPer100g: 0.1},
		{ID: "mid", FatPer100g: 6.9},
	}
	got := SortFoodsByFat(foods)
	assert.Equal(t, []string{"low", "mid", "high"}, []string{got[0].ID, got[1].ID, got[2].ID})
	// input untouched
	assert.Equal(t, "high", foods[0].ID)
}

func TestFormatFat(t *testing.T) {
	assert.Equal(t, "3.6g", FormatFat(3.6))
	assert.Equal(t, "13.4g", FormatFat(13.4))
	assert.Equal(t, "0.0g", FormatFat(0))
}

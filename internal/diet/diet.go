// Package diet holds the fat-safety and recovery rules for gallbladder
// post-surgery diet tracking. Everything here is a pure function of its
// inputs; the thresholds below are the single authoritative copy used by
// every layer of the application.
package diet

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"biletrack/internal/models"
)

// SafetyLevel classifies fat grams per serving into three ordinal tiers.
type SafetyLevel string

const (
	Safe     SafetyLevel = "safe"
	Moderate SafetyLevel = "moderate"
	Avoid    SafetyLevel = "avoid"
)

// Fat-per-serving breakpoints in grams. Boundary values resolve to the
// lower tier.
const (
	SafeMaxFat     = 5.0
	ModerateMaxFat = 15.0
)

// IntakeSafeRatio is the fraction of the daily limit under which intake
// still counts as safe.
const IntakeSafeRatio = 0.8

// HighFatMealGrams is the per-meal fat content above which a planned meal
// draws a warning.
const HighFatMealGrams = 10.0

var ErrInvalidServings = errors.New("servings must be at least 1")

// ValidLevel reports whether s is one of the three recognized tiers.
func ValidLevel(s string) bool {
	switch SafetyLevel(s) {
	case Safe, Moderate, Avoid:
		return true
	}
	return false
}

// ClassifyFat maps a fat mass in grams per serving to its safety tier.
func ClassifyFat(fatPerServing float64) SafetyLevel {
	switch {
	case fatPerServing <= SafeMaxFat:
		return Safe
	case fatPerServing <= ModerateMaxFat:
		return Moderate
	default:
		return Avoid
	}
}

// ClassifyServing converts a per-100g fat density and a serving weight in
// grams to fat per serving, then classifies it.
func ClassifyServing(fatPer100g, servingWeight float64) SafetyLevel {
	return ClassifyFat(fatPer100g * servingWeight / 100)
}

// RecipeFatPerServing totals fat across a recipe's ingredients and divides
// by the serving count, rounded half-up to two decimals. Ingredients whose
// foodId is not present in fatPer100g are skipped. Amounts are grams.
func RecipeFatPerServing(ingredients []models.Ingredient, fatPer100g map[string]float64, servings int) (float64, error) {
	if servings < 1 {
		return 0, ErrInvalidServings
	}
	var total float64
	for _, ing := range ingredients {
		density, ok := fatPer100g[ing.FoodID]
		if !ok {
			continue
		}
		total += density * ing.Amount / 100
	}
	return round2(total / float64(servings)), nil
}

// FatProgress returns intake as a percentage of the daily limit, clamped
// to [0, 100].
func FatProgress(intake, limit float64) float64 {
	return math.Min(intake/limit*100, 100)
}

// IsIntakeSafe reports whether intake is comfortably under the daily
// limit (at or below 80% of it).
func IsIntakeSafe(intake, limit float64) bool {
	return intake <= limit*IntakeSafeRatio
}

// MealPlanCheck is the result of validating a day's planned meals against
// a daily fat limit.
type MealPlanCheck struct {
	Valid    bool     `json:"isValid"`
	TotalFat float64  `json:"totalFat"`
	Warnings []string `json:"warnings"`
}

// CheckMealPlan sums fat across planned meals, warning on any single meal
// over HighFatMealGrams and on a total past 80% of the limit. The plan is
// valid while the total stays at or under the limit.
func CheckMealPlan(meals []models.PlannedMeal, dailyLimit float64) MealPlanCheck {
	var total float64
	warnings := []string{}
	for _, m := range meals {
		total += m.FatContent
		if m.FatContent > HighFatMealGrams {
			warnings = append(warnings, fmt.Sprintf("%s contains high fat content (%.1fg)", m.Type, m.FatContent))
		}
	}
	if total > dailyLimit*IntakeSafeRatio {
		warnings = append(warnings, fmt.Sprintf("Total fat intake (%.1fg) is approaching daily limit (%.1fg)", total, dailyLimit))
	}
	return MealPlanCheck{
		Valid:    total <= dailyLimit,
		TotalFat: round2(total),
		Warnings: warnings,
	}
}

// CategorizeFoods buckets foods by title-cased category for grocery
// display. Categories outside the known set land in "Other"; empty
// buckets are dropped.
func CategorizeFoods(foods []models.Food) map[string][]models.Food {
	known := map[string]bool{
		"Proteins": true, "Vegetables": true, "Fruits": true,
		"Grains": true, "Dairy": true,
	}
	out := map[string][]models.Food{}
	for _, f := range foods {
		bucket := TitleCategory(f.Category)
		if !known[bucket] {
			bucket = "Other"
		}
		out[bucket] = append(out[bucket], f)
	}
	return out
}

// TitleCategory capitalizes a raw category string for display, e.g.
// "proteins" -> "Proteins".
func TitleCategory(category string) string {
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

// SuggestLowerFat returns up to three foods from the same category with
// strictly lower per-100g fat than the reference food, leanest first.
func SuggestLowerFat(food models.Food, all []models.Food) []models.Food {
	out := []models.Food{}
	for _, f := range all {
		if f.Category == food.Category && f.ID != food.ID && f.FatPer100g < food.FatPer100g {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FatPer100g < out[j].FatPer100g })
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// EstimateCalories approximates calories per 100g from macronutrients
// (9 cal/g fat, 4 cal/g protein and carbs).
func EstimateCalories(f models.Food) int {
	return int(math.Round(f.FatPer100g*9 + f.ProteinPer100g*4 + f.CarbsPer100g*4))
}

// SortFoodsByFat returns a copy of foods ordered by ascending per-100g fat.
func SortFoodsByFat(foods []models.Food) []models.Food {
	out := make([]models.Food, len(foods))
	copy(out, foods)
	sort.Slice(out, func(i, j int) bool { return out[i].FatPer100g < out[j].FatPer100g })
	return out
}

// FilterFoodsBySafety keeps foods at the given tier.
func FilterFoodsBySafety(foods []models.Food, level SafetyLevel) []models.Food {
	out := []models.Food{}
	for _, f := range foods {
		if f.SafetyLevel == string(level) {
			out = append(out, f)
		}
	}
	return out
}

// FilterRecipesBySafety keeps recipes at the given tier.
func FilterRecipesBySafety(recipes []models.Recipe, level SafetyLevel) []models.Recipe {
	out := []models.Recipe{}
	for _, r := range recipes {
		if r.SafetyLevel == string(level) {
			out = append(out, r)
		}
	}
	return out
}

// FormatFat renders grams with one decimal, e.g. "3.6g".
func FormatFat(grams float64) string {
	return fmt.Sprintf("%.1fg", grams)
}

// round2 rounds half away from zero to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

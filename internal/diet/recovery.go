package diet

import (
	"math"
	"time"
)

// Daily fat allowance in grams by recovery stage.
const (
	EarlyRecoveryLimit = 20.0 // first 4 weeks
	MidRecoveryLimit   = 30.0 // through 3 months
	LateRecoveryLimit  = 40.0
)

// Recovery-day breakpoints. The allowance schedule and the food
// recommendation schedule intentionally use different splits (28/90 vs
// 7/28); they come from separate clinical guidance and must not be
// merged.
const (
	earlyRecoveryMaxDay = 28
	midRecoveryMaxDay   = 90
	firstWeekMaxDay     = 7
)

// RecoveryDay counts days elapsed since the surgery date, rounding any
// partial day up. The practical minimum is day 1.
func RecoveryDay(surgeryDate, now time.Time) int {
	days := int(math.Ceil(math.Abs(now.Sub(surgeryDate).Hours()) / 24))
	if days < 1 {
		return 1
	}
	return days
}

// DailyFatLimit returns the recommended fat allowance in grams for a
// given recovery day.
func DailyFatLimit(recoveryDay int) float64 {
	switch {
	case recoveryDay <= earlyRecoveryMaxDay:
		return EarlyRecoveryLimit
	case recoveryDay <= midRecoveryMaxDay:
		return MidRecoveryLimit
	default:
		return LateRecoveryLimit
	}
}

// RecoveryStage names the phase a recovery day falls in.
func RecoveryStage(recoveryDay int) string {
	switch {
	case recoveryDay <= firstWeekMaxDay:
		return "Early Recovery"
	case recoveryDay <= earlyRecoveryMaxDay:
		return "Initial Recovery"
	case recoveryDay <= midRecoveryMaxDay:
		return "Mid Recovery"
	default:
		return "Established Recovery"
	}
}

// MealRecommendations are textual food guidance tiers for a recovery
// stage.
type MealRecommendations struct {
	Recommended []string `json:"recommended"`
	Caution     []string `json:"caution"`
	Avoid       []string `json:"avoid"`
}

// RecommendationsForDay returns food guidance keyed by recovery day.
// Note the 7/28-day splits here, distinct from the allowance schedule.
func RecommendationsForDay(recoveryDay int) MealRecommendations {
	if recoveryDay <= firstWeekMaxDay {
		return MealRecommendations{
			Recommended: []string{"Clear broths", "Plain rice", "Bananas", "Toast", "Lean chicken breast"},
			Caution:     []string{"Small amounts of dairy", "Cooked vegetables", "White fish"},
			Avoid:       []string{"Fried foods", "High-fat dairy", "Nuts", "Red meat", "Chocolate"},
		}
	}
	if recoveryDay <= earlyRecoveryMaxDay {
		return MealRecommendations{
			Recommended: []string{"Lean proteins", "Steamed vegetables", "Brown rice", "Oatmeal", "Fresh fruits"},
			Caution:     []string{"Low-fat dairy", "Olive oil (small amounts)", "Eggs", "Salmon"},
			Avoid:       []string{"Fried foods", "High-fat meats", "Nuts", "Avocado", "Cream-based sauces"},
		}
	}
	return MealRecommendations{
		Recommended: []string{"Varied lean proteins", "All vegetables", "Whole grains", "Most fruits"},
		Caution:     []string{"Moderate fat foods", "Nuts in small amounts", "Full-fat dairy occasionally"},
		Avoid:       []string{"Deep fried foods", "Very high fat meals", "Excessive portions"},
	}
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"biletrack/internal/diet"
	"biletrack/internal/models"
	"biletrack/internal/store"
)

type MealPlanHandler struct {
	store store.Storage
}

func NewMealPlanHandler(s store.Storage) *MealPlanHandler {
	return &MealPlanHandler{store: s}
}

func (h *MealPlanHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	date := chi.URLParam(r, "date")
	plan, err := h.store.MealPlanByDate(r.Context(), userID, date)
	if err != nil {
		writeStoreError(w, err, "Meal plan not found", "Failed to fetch meal plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (h *MealPlanHandler) Week(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	weekStart := chi.URLParam(r, "weekStartDate")
	if !validDate(weekStart) {
		writeMessage(w, http.StatusBadRequest, "invalid weekStartDate; expected YYYY-MM-DD")
		return
	}
	plans, err := h.store.MealPlansForWeek(r.Context(), userID, weekStart)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch meal plans")
		return
	}
	if plans == nil {
		plans = []models.MealPlan{}
	}
	writeJSON(w, http.StatusOK, plans)
}

type createMealPlanRequest struct {
	UserID   string                 `json:"userId"`
	Date     string                 `json:"date"`
	Meals    models.PlannedMealList `json:"meals"`
	TotalFat *float64               `json:"totalFat"`
	Notes    *string                `json:"notes"`
}

func (req *createMealPlanRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if req.UserID == "" {
		errs["userId"] = "userId is required"
	}
	if !validDate(req.Date) {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if len(req.Meals) == 0 {
		errs["meals"] = "at least one meal is required"
	}
	for _, m := range req.Meals {
		if !validMealType(m.Type) {
			errs["meals"] = "meal type must be breakfast, lunch, dinner or snack"
			break
		}
		if m.FatContent < 0 {
			errs["meals"] = "meal fatContent must be non-negative"
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid meal plan data")
		return
	}
	if errs := req.validate(); errs != nil {
		writeInvalid(w, "Invalid meal plan data", errs)
		return
	}

	// Total defaults to the sum over meals when not supplied.
	total := 0.0
	for _, m := range req.Meals {
		total += m.FatContent
	}
	if req.TotalFat != nil {
		total = *req.TotalFat
	}

	plan := models.MealPlan{
		UserID:   req.UserID,
		Date:     req.Date,
		Meals:    req.Meals,
		TotalFat: total,
		Notes:    req.Notes,
	}
	if err := h.store.CreateMealPlan(r.Context(), &plan); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create meal plan")
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (h *MealPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch store.MealPlanPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid meal plan data")
		return
	}
	if patch.Date != nil && !validDate(*patch.Date) {
		writeInvalid(w, "Invalid meal plan data", fieldErrors{"date": "date must be YYYY-MM-DD"})
		return
	}
	plan, err := h.store.UpdateMealPlan(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err, "Meal plan not found", "Failed to update meal plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type validateMealPlanRequest struct {
	UserID string                 `json:"userId"`
	Meals  models.PlannedMealList `json:"meals"`
}

// Validate checks a prospective day of meals against the user's current
// daily fat limit, derived from their surgery date.
func (h *MealPlanHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateMealPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		writeMessage(w, http.StatusBadRequest, "Invalid meal plan data")
		return
	}
	user, err := h.store.GetUser(r.Context(), req.UserID)
	if err != nil {
		writeStoreError(w, err, "User not found", "Failed to validate meal plan")
		return
	}
	limit := dailyLimitFor(user, time.Now().UTC())
	writeJSON(w, http.StatusOK, diet.CheckMealPlan(req.Meals, limit))
}

// dailyLimitFor resolves a user's daily fat allowance: an explicit
// profile override wins, otherwise the recovery-stage schedule applies.
func dailyLimitFor(u *models.User, now time.Time) float64 {
	if u.DailyFatLimit != nil && *u.DailyFatLimit > 0 {
		return *u.DailyFatLimit
	}
	if u.SurgeryDate != nil {
		if surgery, err := time.Parse("2006-01-02", *u.SurgeryDate); err == nil {
			return diet.DailyFatLimit(diet.RecoveryDay(surgery, now))
		}
	}
	return diet.MidRecoveryLimit
}

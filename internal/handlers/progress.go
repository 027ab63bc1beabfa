package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"biletrack/internal/diet"
	"biletrack/internal/models"
	"biletrack/internal/store"
)

type ProgressHandler struct {
	store store.Storage
}

func NewProgressHandler(s store.Storage) *ProgressHandler {
	return &ProgressHandler{store: s}
}

// progressResponse decorates a progress record with derived percentage
// and safety fields so clients don't re-implement the thresholds.
type progressResponse struct {
	models.UserProgress
	ProgressPercentage float64 `json:"progressPercentage"`
	IsSafe             bool    `json:"isSafe"`
}

func toProgressResponse(up *models.UserProgress) progressResponse {
	return progressResponse{
		UserProgress:       *up,
		ProgressPercentage: diet.FatProgress(up.FatIntake, up.FatLimit),
		IsSafe:             diet.IsIntakeSafe(up.FatIntake, up.FatLimit),
	}
}

func (h *ProgressHandler) ByDate(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	date := chi.URLParam(r, "date")
	up, err := h.store.ProgressByDate(r.Context(), userID, date)
	if err != nil {
		writeStoreError(w, err, "Progress not found", "Failed to fetch progress")
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(up))
}

func (h *ProgressHandler) Week(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	weekStart := chi.URLParam(r, "weekStartDate")
	if !validDate(weekStart) {
		writeMessage(w, http.StatusBadRequest, "invalid weekStartDate; expected YYYY-MM-DD")
		return
	}
	entries, err := h.store.ProgressForWeek(r.Context(), userID, weekStart)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch weekly progress")
		return
	}
	out := make([]progressResponse, 0, len(entries))
	for i := range entries {
		out = append(out, toProgressResponse(&entries[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type createProgressRequest struct {
	UserID      string               `json:"userId"`
	Date        string               `json:"date"`
	FatIntake   float64              `json:"fatIntake"`
	FatLimit    *float64             `json:"fatLimit"`
	RecoveryDay int                  `json:"recoveryDay"`
	Notes       *string              `json:"notes"`
	FoodsEaten  models.FoodEatenList `json:"foodsEaten"`
}

func (req *createProgressRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if req.UserID == "" {
		errs["userId"] = "userId is required"
	}
	if !validDate(req.Date) {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if req.FatIntake < 0 {
		errs["fatIntake"] = "fatIntake must be non-negative"
	}
	if req.FatLimit != nil && *req.FatLimit <= 0 {
		errs["fatLimit"] = "fatLimit must be positive"
	}
	if req.RecoveryDay < 1 {
		errs["recoveryDay"] = "recoveryDay must be at least 1"
	}
	for _, fe := range req.FoodsEaten {
		if fe.FoodID == "" || fe.Amount < 0 || !validMealType(fe.MealType) {
			errs["foodsEaten"] = "each entry needs a foodId, non-negative amount and a valid mealType"
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (h *ProgressHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid progress data")
		return
	}
	if errs := req.validate(); errs != nil {
		writeInvalid(w, "Invalid progress data", errs)
		return
	}

	// Missing limit falls back to the recovery-day schedule.
	limit := diet.DailyFatLimit(req.RecoveryDay)
	if req.FatLimit != nil {
		limit = *req.FatLimit
	}
	up := models.UserProgress{
		UserID:      req.UserID,
		Date:        req.Date,
		FatIntake:   req.FatIntake,
		FatLimit:    limit,
		RecoveryDay: req.RecoveryDay,
		Notes:       req.Notes,
		FoodsEaten:  req.FoodsEaten,
	}
	if err := h.store.CreateProgress(r.Context(), &up); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create progress")
		return
	}
	writeJSON(w, http.StatusCreated, toProgressResponse(&up))
}

func (h *ProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch store.ProgressPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid progress data")
		return
	}
	errs := fieldErrors{}
	if patch.Date != nil && !validDate(*patch.Date) {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if patch.FatIntake != nil && *patch.FatIntake < 0 {
		errs["fatIntake"] = "fatIntake must be non-negative"
	}
	if patch.FatLimit != nil && *patch.FatLimit <= 0 {
		errs["fatLimit"] = "fatLimit must be positive"
	}
	if len(errs) > 0 {
		writeInvalid(w, "Invalid progress data", errs)
		return
	}
	up, err := h.store.UpdateProgress(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err, "Progress not found", "Failed to update progress")
		return
	}
	writeJSON(w, http.StatusOK, toProgressResponse(up))
}

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"biletrack/internal/diet"
	"biletrack/internal/store"
)

type UserHandler struct {
	store store.Storage
}

func NewUserHandler(s store.Storage) *UserHandler {
	return &UserHandler{store: s}
}

// Get returns a user profile. The password hash never leaves the model's
// json:"-" field.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "User not found", "Failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type updateUserRequest struct {
	Username      *string  `json:"username"`
	Password      *string  `json:"password"`
	Name          *string  `json:"name"`
	SurgeryDate   *string  `json:"surgeryDate"`
	DailyFatLimit *float64 `json:"dailyFatLimit"`
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid user data")
		return
	}
	errs := fieldErrors{}
	if req.Username != nil && *req.Username == "" {
		errs["username"] = "username must not be empty"
	}
	if req.SurgeryDate != nil && *req.SurgeryDate != "" && !validDate(*req.SurgeryDate) {
		errs["surgeryDate"] = "surgeryDate must be YYYY-MM-DD"
	}
	if req.DailyFatLimit != nil && *req.DailyFatLimit <= 0 {
		errs["dailyFatLimit"] = "dailyFatLimit must be positive"
	}
	if len(errs) > 0 {
		writeInvalid(w, "Invalid user data", errs)
		return
	}

	patch := store.UserPatch{
		Username:      req.Username,
		Name:          req.Name,
		SurgeryDate:   req.SurgeryDate,
		DailyFatLimit: req.DailyFatLimit,
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeMessage(w, http.StatusInternalServerError, "Failed to update user")
			return
		}
		s := string(hashed)
		patch.PasswordHash = &s
	}

	user, err := h.store.UpdateUser(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err, "User not found", "Failed to update user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

type recoveryResponse struct {
	RecoveryDay     int                      `json:"recoveryDay"`
	Stage           string                   `json:"stage"`
	DailyFatLimit   float64                  `json:"dailyFatLimit"`
	Recommendations diet.MealRecommendations `json:"recommendations"`
}

// Recovery reports where a user is in their recovery: day count, stage
// name, current fat allowance and the stage's food guidance.
func (h *UserHandler) Recovery(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "User not found", "Failed to fetch user")
		return
	}

	day := 1
	if user.SurgeryDate != nil {
		if surgery, err := time.Parse("2006-01-02", *user.SurgeryDate); err == nil {
			day = diet.RecoveryDay(surgery, time.Now().UTC())
		}
	}
	writeJSON(w, http.StatusOK, recoveryResponse{
		RecoveryDay:     day,
		Stage:           diet.RecoveryStage(day),
		DailyFatLimit:   dailyLimitFor(user, time.Now().UTC()),
		Recommendations: diet.RecommendationsForDay(day),
	})
}

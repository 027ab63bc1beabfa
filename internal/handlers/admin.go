package handlers

import (
	"log/slog"
	"net/http"

	"biletrack/internal/seed"
	"biletrack/internal/store"
)

type AdminHandler struct {
	store store.Storage
}

func NewAdminHandler(s store.Storage) *AdminHandler {
	return &AdminHandler{store: s}
}

// Reseed godoc
// @Summary Reseed all tables
// @Description Wipes every table and repopulates the sample dataset
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 500 {string} string "Internal server error"
// @Router /admin/reseed [post]
func (h *AdminHandler) Reseed(w http.ResponseWriter, r *http.Request) {
	if err := seed.Apply(r.Context(), h.store); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to reseed database")
		return
	}
	slog.Info("database reseeded", slog.String("userID", currentUserID(r)))
	writeMessage(w, http.StatusOK, "Database reseeded")
}

type adminOverview struct {
	TotalFoods   int `json:"totalFoods"`
	TotalRecipes int `json:"totalRecipes"`
}

// Overview returns catalog counts.
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	var out adminOverview
	foods, err := h.store.AllFoods(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}
	out.TotalFoods = len(foods)
	recipes, err := h.store.AllRecipes(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "server error")
		return
	}
	out.TotalRecipes = len(recipes)
	writeJSON(w, http.StatusOK, out)
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"biletrack/internal/diet"
	"biletrack/internal/store"
)

type FoodHandler struct {
	store store.Storage
}

func NewFoodHandler(s store.Storage) *FoodHandler {
	return &FoodHandler{store: s}
}

// List returns the food catalog, optionally narrowed to one safety tier
// via ?safety=safe|moderate|avoid.
func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	safety := r.URL.Query().Get("safety")
	if safety != "" && !diet.ValidLevel(safety) {
		writeMessage(w, http.StatusBadRequest, "safety must be safe, moderate or avoid")
		return
	}
	foods, err := h.store.AllFoods(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch foods")
		return
	}
	if safety != "" {
		foods = diet.FilterFoodsBySafety(foods, diet.SafetyLevel(safety))
	}
	writeJSON(w, http.StatusOK, foods)
}

// Search godoc
// @Summary Search foods
// @Description Case-insensitive substring match over name, description and category
// @Tags foods
// @Produce json
// @Param q query string true "search query"
// @Success 200 {array} models.Food
// @Failure 400 {object} map[string]string
// @Router /foods/search [get]
func (h *FoodHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeMessage(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}
	foods, err := h.store.SearchFoods(r.Context(), q)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to search foods")
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *FoodHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	foods, err := h.store.FoodsByCategory(r.Context(), category)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch foods by category")
		return
	}
	writeJSON(w, http.StatusOK, foods)
}

func (h *FoodHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	food, err := h.store.FoodByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Food not found", "Failed to fetch food")
		return
	}
	writeJSON(w, http.StatusOK, food)
}

// Alternatives suggests up to three same-category foods with lower fat
// than the requested one, leanest first.
func (h *FoodHandler) Alternatives(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	food, err := h.store.FoodByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Food not found", "Failed to fetch food")
		return
	}
	all, err := h.store.AllFoods(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch foods")
		return
	}
	writeJSON(w, http.StatusOK, diet.SuggestLowerFat(*food, all))
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"biletrack/internal/models"
	"biletrack/internal/store"
)

type GroceryHandler struct {
	store store.Storage
}

func NewGroceryHandler(s store.Storage) *GroceryHandler {
	return &GroceryHandler{store: s}
}

func (h *GroceryHandler) Active(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	list, err := h.store.ActiveGroceryList(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err, "No active grocery list found", "Failed to fetch grocery list")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *GroceryHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	list, err := h.store.GroceryListByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Grocery list not found", "Failed to fetch grocery list")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

type createGroceryListRequest struct {
	UserID        string                 `json:"userId"`
	Name          string                 `json:"name"`
	WeekStartDate string                 `json:"weekStartDate"`
	Items         models.GroceryItemList `json:"items"`
	IsActive      *bool                  `json:"isActive"`
}

func (req *createGroceryListRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if req.UserID == "" {
		errs["userId"] = "userId is required"
	}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if !validDate(req.WeekStartDate) {
		errs["weekStartDate"] = "weekStartDate must be YYYY-MM-DD"
	}
	for _, it := range req.Items {
		if it.FoodID == "" || it.Quantity < 0 {
			errs["items"] = "each item needs a foodId and a non-negative quantity"
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (h *GroceryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createGroceryListRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid grocery list data")
		return
	}
	if errs := req.validate(); errs != nil {
		writeInvalid(w, "Invalid grocery list data", errs)
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	items := req.Items
	if items == nil {
		items = models.GroceryItemList{}
	}
	list := models.GroceryList{
		UserID:        req.UserID,
		Name:          req.Name,
		WeekStartDate: req.WeekStartDate,
		Items:         items,
		IsActive:      active,
	}
	if err := h.store.CreateGroceryList(r.Context(), &list); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create grocery list")
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

func (h *GroceryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var patch store.GroceryListPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid grocery list data")
		return
	}
	if patch.WeekStartDate != nil && !validDate(*patch.WeekStartDate) {
		writeInvalid(w, "Invalid grocery list data", fieldErrors{"weekStartDate": "weekStartDate must be YYYY-MM-DD"})
		return
	}
	list, err := h.store.UpdateGroceryList(r.Context(), id, patch)
	if err != nil {
		writeStoreError(w, err, "Grocery list not found", "Failed to update grocery list")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"biletrack/internal/diet"
	"biletrack/internal/models"
	"biletrack/internal/store"
)

type RecipeHandler struct {
	store store.Storage
}

func NewRecipeHandler(s store.Storage) *RecipeHandler {
	return &RecipeHandler{store: s}
}

// List returns all recipes, optionally narrowed to one safety tier via
// ?safety=safe|moderate|avoid.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	safety := r.URL.Query().Get("safety")
	if safety != "" && !diet.ValidLevel(safety) {
		writeMessage(w, http.StatusBadRequest, "safety must be safe, moderate or avoid")
		return
	}
	recipes, err := h.store.AllRecipes(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch recipes")
		return
	}
	if safety != "" {
		recipes = diet.FilterRecipesBySafety(recipes, diet.SafetyLevel(safety))
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) Safe(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.store.SafeRecipes(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch safe recipes")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) ByTag(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	recipes, err := h.store.RecipesByTag(r.Context(), tag)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch recipes by tag")
		return
	}
	writeJSON(w, http.StatusOK, recipes)
}

func (h *RecipeHandler) ByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	recipe, err := h.store.RecipeByID(r.Context(), id)
	if err != nil {
		writeStoreError(w, err, "Recipe not found", "Failed to fetch recipe")
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

type createRecipeRequest struct {
	Name         string                `json:"name"`
	Description  *string               `json:"description"`
	Instructions string                `json:"instructions"`
	PrepTime     *int                  `json:"prepTime"`
	CookTime     *int                  `json:"cookTime"`
	Servings     int                   `json:"servings"`
	Ingredients  models.IngredientList `json:"ingredients"`
	Tags         models.Tags           `json:"tags"`
}

func (req *createRecipeRequest) validate() fieldErrors {
	errs := fieldErrors{}
	if req.Name == "" {
		errs["name"] = "name is required"
	}
	if req.Instructions == "" {
		errs["instructions"] = "instructions are required"
	}
	if req.Servings < 1 {
		errs["servings"] = "servings must be at least 1"
	}
	if len(req.Ingredients) == 0 {
		errs["ingredients"] = "at least one ingredient is required"
	}
	for _, ing := range req.Ingredients {
		if ing.FoodID == "" || ing.Amount < 0 {
			errs["ingredients"] = "each ingredient needs a foodId and a non-negative amount"
			break
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Create stores a recipe with server-derived fat-per-serving and safety
// level; the client never supplies either.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid recipe data")
		return
	}
	if errs := req.validate(); errs != nil {
		writeInvalid(w, "Invalid recipe data", errs)
		return
	}

	foods, err := h.store.AllFoods(r.Context())
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create recipe")
		return
	}
	fatByID := make(map[string]float64, len(foods))
	for _, f := range foods {
		fatByID[f.ID] = f.FatPer100g
	}
	perServing, err := diet.RecipeFatPerServing(req.Ingredients, fatByID, req.Servings)
	if err != nil {
		writeInvalid(w, "Invalid recipe data", fieldErrors{"servings": err.Error()})
		return
	}

	recipe := models.Recipe{
		Name:               req.Name,
		Description:        req.Description,
		Instructions:       req.Instructions,
		PrepTime:           req.PrepTime,
		CookTime:           req.CookTime,
		Servings:           req.Servings,
		TotalFatPerServing: perServing,
		SafetyLevel:        string(diet.ClassifyFat(perServing)),
		Ingredients:        req.Ingredients,
		Tags:               req.Tags,
	}
	if err := h.store.CreateRecipe(r.Context(), &recipe); err != nil {
		writeMessage(w, http.StatusInternalServerError, "Failed to create recipe")
		return
	}
	writeJSON(w, http.StatusCreated, recipe)
}

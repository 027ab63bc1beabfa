package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	mw "biletrack/internal/middleware"
	"biletrack/internal/models"
	"biletrack/internal/store"
)

const testJWTSecret = "test-secret"

func strp(s string) *string { return &s }

func f64p(v float64) *float64 { return &v }

// newTestRouter wires every handler over a MemStore the way main does,
// minus logging.
func newTestRouter(t *testing.T) (*chi.Mux, *store.MemStore) {
	t.Helper()
	st := store.NewMemStore()

	authHandler := NewAuthHandler(st, []byte(testJWTSecret))
	foodHandler := NewFoodHandler(st)
	recipeHandler := NewRecipeHandler(st)
	mealPlanHandler := NewMealPlanHandler(st)
	groceryHandler := NewGroceryHandler(st)
	progressHandler := NewProgressHandler(st)
	userHandler := NewUserHandler(st)
	adminHandler := NewAdminHandler(st)
	authMW := mw.NewAuthMiddleware([]byte(testJWTSecret))

	r := chi.NewRouter()
	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", authHandler.Register)
		api.Post("/auth/login", authHandler.Login)

		api.Get("/foods", foodHandler.List)
		api.Get("/foods/search", foodHandler.Search)
		api.Get("/foods/category/{category}", foodHandler.ByCategory)
		api.Get("/foods/{id}", foodHandler.ByID)
		api.Get("/foods/{id}/alternatives", foodHandler.Alternatives)

		api.Get("/recipes", recipeHandler.List)
		api.Get("/recipes/safe", recipeHandler.Safe)
		api.Get("/recipes/tag/{tag}", recipeHandler.ByTag)
		api.Get("/recipes/{id}", recipeHandler.ByID)
		api.Post("/recipes", recipeHandler.Create)

		api.Get("/meal-plans/{userId}/week/{weekStartDate}", mealPlanHandler.Week)
		api.Get("/meal-plans/{userId}/{date}", mealPlanHandler.ByDate)
		api.Post("/meal-plans", mealPlanHandler.Create)
		api.Post("/meal-plans/validate", mealPlanHandler.Validate)
		api.Patch("/meal-plans/{id}", mealPlanHandler.Update)

		api.Get("/grocery-lists/{userId}/active", groceryHandler.Active)
		api.Get("/grocery-lists/{id}", groceryHandler.ByID)
		api.Post("/grocery-lists", groceryHandler.Create)
		api.Patch("/grocery-lists/{id}", groceryHandler.Update)

		api.Get("/progress/{userId}/week/{weekStartDate}", progressHandler.Week)
		api.Get("/progress/{userId}/{date}", progressHandler.ByDate)
		api.Post("/progress", progressHandler.Create)
		api.Patch("/progress/{id}", progressHandler.Update)

		api.Get("/users/{id}", userHandler.Get)
		api.Get("/users/{id}/recovery", userHandler.Recovery)
		api.Patch("/users/{id}", userHandler.Update)

		api.Group(func(pr chi.Router) {
			pr.Use(authMW.RequireAuth)
			pr.Post("/admin/reseed", adminHandler.Reseed)
			pr.Get("/admin/overview", adminHandler.Overview)
		})
	})
	return r, st
}

func seedUser(t *testing.T, st *store.MemStore, id, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Sarah Johnson",
		SurgeryDate:  strp("2024-03-01"),
	}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func seedFoods(t *testing.T, st *store.MemStore) {
	t.Helper()
	foods := []models.Food{
		{ID: "food-1", Name: "Chicken Breast", Category: "protein", FatPer100g: 3.6, SafetyLevel: "safe"},
		{ID: "food-2", Name: "White Fish", Category: "protein", FatPer100g: 1.3, SafetyLevel: "safe"},
		{ID: "food-3", Name: "Salmon", Category: "protein", FatPer100g: 13.4, SafetyLevel: "moderate", Description: strp("Fatty fish rich in omega-3")},
		{ID: "food-4", Name: "Broccoli", Category: "vegetable", FatPer100g: 0.4, SafetyLevel: "safe"},
		{ID: "food-5", Name: "Avocado", Category: "fruit", FatPer100g: 29.5, SafetyLevel: "avoid"},
	}
	for i := range foods {
		require.NoError(t, st.CreateFood(context.Background(), &foods[i]))
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"biletrack/internal/models"
)

// MemStore is an ephemeral Storage used for tests and seeding. A single
// RWMutex serializes access; ISO dates compare correctly as strings, so
// week windows are plain string comparisons.
type MemStore struct {
	mu           sync.RWMutex
	users        map[string]models.User
	foods        map[string]models.Food
	recipes      map[string]models.Recipe
	mealPlans    map[string]models.MealPlan
	groceryLists map[string]models.GroceryList
	progress     map[string]models.UserProgress
}

func NewMemStore() *MemStore {
	s := &MemStore{}
	s.reset()
	return s
}

func (s *MemStore) reset() {
	s.users = map[string]models.User{}
	s.foods = map[string]models.Food{}
	s.recipes = map[string]models.Recipe{}
	s.mealPlans = map[string]models.MealPlan{}
	s.groceryLists = map[string]models.GroceryList{}
	s.progress = map[string]models.UserProgress{}
}

func (s *MemStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

// weekEnd returns the exclusive end of a seven-day window starting at
// weekStart (YYYY-MM-DD).
func weekEnd(weekStart string) (string, error) {
	t, err := time.Parse("2006-01-02", weekStart)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, 7).Format("2006-01-02"), nil
}

// Users

func (s *MemStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	s.users[u.ID] = *u
	return nil
}

func (s *MemStore) UpdateUser(ctx context.Context, id string, p UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.SurgeryDate != nil {
		u.SurgeryDate = p.SurgeryDate
	}
	if p.DailyFatLimit != nil {
		u.DailyFatLimit = p.DailyFatLimit
	}
	s.users[id] = u
	return &u, nil
}

// Foods

func (s *MemStore) AllFoods(ctx context.Context) ([]models.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Food, 0, len(s.foods))
	for _, f := range s.foods {
		out = append(out, f)
	}
	return out, nil
}

func (s *MemStore) FoodByID(ctx context.Context, id string) (*models.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.foods[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (s *MemStore) SearchFoods(ctx context.Context, query string) ([]models.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := strings.ToLower(query)
	var out []models.Food
	for _, f := range s.foods {
		desc := ""
		if f.Description != nil {
			desc = *f.Description
		}
		if strings.Contains(strings.ToLower(f.Name), q) ||
			strings.Contains(strings.ToLower(desc), q) ||
			strings.Contains(strings.ToLower(f.Category), q) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *MemStore) FoodsByCategory(ctx context.Context, category string) ([]models.Food, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Food
	for _, f := range s.foods {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out, nil
}

func (s *MemStore) CreateFood(ctx context.Context, f *models.Food) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	s.foods[f.ID] = *f
	return nil
}

// Recipes

func (s *MemStore) AllRecipes(ctx context.Context) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, r)
	}
	return out, nil
}

func (s *MemStore) RecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s *MemStore) RecipesByTag(ctx context.Context, tag string) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Recipe
	for _, r := range s.recipes {
		for _, t := range r.Tags {
			if t == tag {
				out = append(out, r)
				break
			}
		}
	}
	return out, nil
}

func (s *MemStore) SafeRecipes(ctx context.Context) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Recipe
	for _, r := range s.recipes {
		if r.SafetyLevel == "safe" {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemStore) CreateRecipe(ctx context.Context, r *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.recipes[r.ID] = *r
	return nil
}

// Meal plans

func (s *MemStore) MealPlanByDate(ctx context.Context, userID, date string) (*models.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, mp := range s.mealPlans {
		if mp.UserID == userID && mp.Date == date {
			mp := mp
			return &mp, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) MealPlansForWeek(ctx context.Context, userID, weekStart string) ([]models.MealPlan, error) {
	end, err := weekEnd(weekStart)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.MealPlan
	for _, mp := range s.mealPlans {
		if mp.UserID == userID && mp.Date >= weekStart && mp.Date < end {
			out = append(out, mp)
		}
	}
	return out, nil
}

func (s *MemStore) CreateMealPlan(ctx context.Context, mp *models.MealPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mp.ID == "" {
		mp.ID = uuid.NewString()
	}
	s.mealPlans[mp.ID] = *mp
	return nil
}

func (s *MemStore) UpdateMealPlan(ctx context.Context, id string, p MealPlanPatch) (*models.MealPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mp, ok := s.mealPlans[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Date != nil {
		mp.Date = *p.Date
	}
	if p.Meals != nil {
		mp.Meals = *p.Meals
	}
	if p.TotalFat != nil {
		mp.TotalFat = *p.TotalFat
	}
	if p.Notes != nil {
		mp.Notes = p.Notes
	}
	s.mealPlans[id] = mp
	return &mp, nil
}

// Grocery lists

func (s *MemStore) ActiveGroceryList(ctx context.Context, userID string) (*models.GroceryList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, gl := range s.groceryLists {
		if gl.UserID == userID && gl.IsActive {
			gl := gl
			return &gl, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) GroceryListByID(ctx context.Context, id string) (*models.GroceryList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gl, ok := s.groceryLists[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &gl, nil
}

func (s *MemStore) CreateGroceryList(ctx context.Context, gl *models.GroceryList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gl.ID == "" {
		gl.ID = uuid.NewString()
	}
	if gl.CreatedAt.IsZero() {
		gl.CreatedAt = time.Now().UTC()
	}
	s.groceryLists[gl.ID] = *gl
	return nil
}

func (s *MemStore) UpdateGroceryList(ctx context.Context, id string, p GroceryListPatch) (*models.GroceryList, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gl, ok := s.groceryLists[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Name != nil {
		gl.Name = *p.Name
	}
	if p.WeekStartDate != nil {
		gl.WeekStartDate = *p.WeekStartDate
	}
	if p.Items != nil {
		gl.Items = *p.Items
	}
	if p.IsActive != nil {
		gl.IsActive = *p.IsActive
	}
	s.groceryLists[id] = gl
	return &gl, nil
}

// Progress

func (s *MemStore) ProgressByDate(ctx context.Context, userID, date string) (*models.UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, up := range s.progress {
		if up.UserID == userID && up.Date == date {
			up := up
			return &up, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) ProgressForWeek(ctx context.Context, userID, weekStart string) ([]models.UserProgress, error) {
	end, err := weekEnd(weekStart)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.UserProgress
	for _, up := range s.progress {
		if up.UserID == userID && up.Date >= weekStart && up.Date < end {
			out = append(out, up)
		}
	}
	return out, nil
}

func (s *MemStore) CreateProgress(ctx context.Context, up *models.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if up.ID == "" {
		up.ID = uuid.NewString()
	}
	s.progress[up.ID] = *up
	return nil
}

func (s *MemStore) UpdateProgress(ctx context.Context, id string, p ProgressPatch) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	up, ok := s.progress[id]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Date != nil {
		up.Date = *p.Date
	}
	if p.FatIntake != nil {
		up.FatIntake = *p.FatIntake
	}
	if p.FatLimit != nil {
		up.FatLimit = *p.FatLimit
	}
	if p.RecoveryDay != nil {
		up.RecoveryDay = *p.RecoveryDay
	}
	if p.Notes != nil {
		up.Notes = p.Notes
	}
	if p.FoodsEaten != nil {
		up.FoodsEaten = *p.FoodsEaten
	}
	s.progress[id] = up
	return &up, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"biletrack/internal/models"
)

// PostgresStore is the durable Storage over sqlx. Schema lives in
// internal/db.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const (
	userCols        = `id, username, password_hash, name, surgery_date, daily_fat_limit`
	foodCols        = `id, name, category, fat_per_100g, calories_per_100g, protein_per_100g, carbs_per_100g, fiber_per_100g, serving_size, serving_weight, safety_level, description, recovery_notes`
	recipeCols      = `id, name, description, instructions, prep_time, cook_time, servings, total_fat_per_serving, safety_level, ingredients, tags`
	mealPlanCols    = `id, user_id, date, meals, total_fat, notes`
	groceryListCols = `id, user_id, name, week_start_date, items, is_active, created_at`
	progressCols    = `id, user_id, date, fat_intake, fat_limit, recovery_day, notes, foods_eaten`
)

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// applyPatch runs a dynamic partial UPDATE and scans the updated row into
// dest. Columns are appended in caller order; a missing row maps to
// ErrNotFound.
func (s *PostgresStore) applyPatch(ctx context.Context, dest any, table, returning string, id string, cols []string, args []any) error {
	if len(cols) == 0 {
		// Nothing to change; still report whether the row exists.
		q := fmt.Sprintf(`SELECT %s FROM %s WHERE id=$1`, returning, table)
		return notFound(s.db.GetContext(ctx, dest, q, id))
	}
	set := make([]string, len(cols))
	for i, c := range cols {
		set[i] = fmt.Sprintf("%s=$%d", c, i+1)
	}
	args = append(args, id)
	q := fmt.Sprintf(`UPDATE %s SET %s WHERE id=$%d RETURNING %s`,
		table, strings.Join(set, ", "), len(args), returning)
	return notFound(s.db.GetContext(ctx, dest, q, args...))
}

// Users

func (s *PostgresStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE id=$1`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `SELECT `+userCols+` FROM users WHERE username=$1`, username)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *PostgresStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, name, surgery_date, daily_fat_limit)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.PasswordHash, u.Name, u.SurgeryDate, u.DailyFatLimit)
	return err
}

func (s *PostgresStore) UpdateUser(ctx context.Context, id string, p UserPatch) (*models.User, error) {
	var cols []string
	var args []any
	if p.Username != nil {
		cols, args = append(cols, "username"), append(args, *p.Username)
	}
	if p.PasswordHash != nil {
		cols, args = append(cols, "password_hash"), append(args, *p.PasswordHash)
	}
	if p.Name != nil {
		cols, args = append(cols, "name"), append(args, *p.Name)
	}
	if p.SurgeryDate != nil {
		cols, args = append(cols, "surgery_date"), append(args, *p.SurgeryDate)
	}
	if p.DailyFatLimit != nil {
		cols, args = append(cols, "daily_fat_limit"), append(args, *p.DailyFatLimit)
	}
	var u models.User
	if err := s.applyPatch(ctx, &u, "users", userCols, id, cols, args); err != nil {
		return nil, err
	}
	return &u, nil
}

// Foods

func (s *PostgresStore) AllFoods(ctx context.Context) ([]models.Food, error) {
	var out []models.Food
	err := s.db.SelectContext(ctx, &out, `SELECT `+foodCols+` FROM foods ORDER BY name`)
	return out, err
}

func (s *PostgresStore) FoodByID(ctx context.Context, id string) (*models.Food, error) {
	var f models.Food
	err := s.db.GetContext(ctx, &f, `SELECT `+foodCols+` FROM foods WHERE id=$1`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

func (s *PostgresStore) SearchFoods(ctx context.Context, query string) ([]models.Food, error) {
	var out []models.Food
	pattern := "%" + query + "%"
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+foodCols+` FROM foods
		 WHERE name ILIKE $1 OR description ILIKE $1 OR category ILIKE $1
		 ORDER BY name`, pattern)
	return out, err
}

func (s *PostgresStore) FoodsByCategory(ctx context.Context, category string) ([]models.Food, error) {
	var out []models.Food
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+foodCols+` FROM foods WHERE category=$1 ORDER BY name`, category)
	return out, err
}

func (s *PostgresStore) CreateFood(ctx context.Context, f *models.Food) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO foods (`+foodCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		f.ID, f.Name, f.Category, f.FatPer100g, f.CaloriesPer100g, f.ProteinPer100g,
		f.CarbsPer100g, f.FiberPer100g, f.ServingSize, f.ServingWeight, f.SafetyLevel,
		f.Description, f.RecoveryNotes)
	return err
}

// Recipes

func (s *PostgresStore) AllRecipes(ctx context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	err := s.db.SelectContext(ctx, &out, `SELECT `+recipeCols+` FROM recipes ORDER BY name`)
	return out, err
}

func (s *PostgresStore) RecipeByID(ctx context.Context, id string) (*models.Recipe, error) {
	var r models.Recipe
	err := s.db.GetContext(ctx, &r, `SELECT `+recipeCols+` FROM recipes WHERE id=$1`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &r, nil
}

func (s *PostgresStore) RecipesByTag(ctx context.Context, tag string) ([]models.Recipe, error) {
	var out []models.Recipe
	// jsonb containment on the tags array
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+recipeCols+` FROM recipes WHERE tags @> to_jsonb($1::text) ORDER BY name`, tag)
	return out, err
}

func (s *PostgresStore) SafeRecipes(ctx context.Context) ([]models.Recipe, error) {
	var out []models.Recipe
	err := s.db.SelectContext(ctx, &out,
		`SELECT `+recipeCols+` FROM recipes WHERE safety_level='safe' ORDER BY name`)
	return out, err
}

func (s *PostgresStore) CreateRecipe(ctx context.Context, r *models.Recipe) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recipes (`+recipeCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		r.ID, r.Name, r.Description, r.Instructions, r.PrepTime, r.CookTime,
		r.Servings, r.TotalFatPerServing, r.SafetyLevel, r.Ingredients, r.Tags)
	return err
}

// Meal plans

func (s *PostgresStore) MealPlanByDate(ctx context.Context, userID, date string) (*models.MealPlan, error) {
	var mp models.MealPlan
	err := s.db.GetContext(ctx, &mp,
		`SELECT `+mealPlanCols+` FROM meal_plans WHERE user_id=$1 AND date=$2`, userID, date)
	if err != nil {
		return nil, notFound(err)
	}
	return &mp, nil
}

func (s *PostgresStore) MealPlansForWeek(ctx context.Context, userID, weekStart string) ([]models.MealPlan, error) {
	end, err := weekEnd(weekStart)
	if err != nil {
		return nil, err
	}
	var out []models.MealPlan
	err = s.db.SelectContext(ctx, &out,
		`SELECT `+mealPlanCols+` FROM meal_plans
		 WHERE user_id=$1 AND date >= $2 AND date < $3 ORDER BY date`, userID, weekStart, end)
	return out, err
}

func (s *PostgresStore) CreateMealPlan(ctx context.Context, mp *models.MealPlan) error {
	if mp.ID == "" {
		mp.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meal_plans (`+mealPlanCols+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		mp.ID, mp.UserID, mp.Date, mp.Meals, mp.TotalFat, mp.Notes)
	return err
}

func (s *PostgresStore) UpdateMealPlan(ctx context.Context, id string, p MealPlanPatch) (*models.MealPlan, error) {
	var cols []string
	var args []any
	if p.Date != nil {
		cols, args = append(cols, "date"), append(args, *p.Date)
	}
	if p.Meals != nil {
		cols, args = append(cols, "meals"), append(args, *p.Meals)
	}
	if p.TotalFat != nil {
		cols, args = append(cols, "total_fat"), append(args, *p.TotalFat)
	}
	if p.Notes != nil {
		cols, args = append(cols, "notes"), append(args, *p.Notes)
	}
	var mp models.MealPlan
	if err := s.applyPatch(ctx, &mp, "meal_plans", mealPlanCols, id, cols, args); err != nil {
		return nil, err
	}
	return &mp, nil
}

// Grocery lists

func (s *PostgresStore) ActiveGroceryList(ctx context.Context, userID string) (*models.GroceryList, error) {
	var gl models.GroceryList
	err := s.db.GetContext(ctx, &gl,
		`SELECT `+groceryListCols+` FROM grocery_lists
		 WHERE user_id=$1 AND is_active ORDER BY created_at DESC LIMIT 1`, userID)
	if err != nil {
		return nil, notFound(err)
	}
	return &gl, nil
}

func (s *PostgresStore) GroceryListByID(ctx context.Context, id string) (*models.GroceryList, error) {
	var gl models.GroceryList
	err := s.db.GetContext(ctx, &gl,
		`SELECT `+groceryListCols+` FROM grocery_lists WHERE id=$1`, id)
	if err != nil {
		return nil, notFound(err)
	}
	return &gl, nil
}

func (s *PostgresStore) CreateGroceryList(ctx context.Context, gl *models.GroceryList) error {
	if gl.ID == "" {
		gl.ID = uuid.NewString()
	}
	return notFound(s.db.GetContext(ctx, &gl.CreatedAt,
		`INSERT INTO grocery_lists (id, user_id, name, week_start_date, items, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`,
		gl.ID, gl.UserID, gl.Name, gl.WeekStartDate, gl.Items, gl.IsActive))
}

func (s *PostgresStore) UpdateGroceryList(ctx context.Context, id string, p GroceryListPatch) (*models.GroceryList, error) {
	var cols []string
	var args []any
	if p.Name != nil {
		cols, args = append(cols, "name"), append(args, *p.Name)
	}
	if p.WeekStartDate != nil {
		cols, args = append(cols, "week_start_date"), append(args, *p.WeekStartDate)
	}
	if p.Items != nil {
		cols, args = append(cols, "items"), append(args, *p.Items)
	}
	if p.IsActive != nil {
		cols, args = append(cols, "is_active"), append(args, *p.IsActive)
	}
	var gl models.GroceryList
	if err := s.applyPatch(ctx, &gl, "grocery_lists", groceryListCols, id, cols, args); err != nil {
		return nil, err
	}
	return &gl, nil
}

// Progress

func (s *PostgresStore) ProgressByDate(ctx context.Context, userID, date string) (*models.UserProgress, error) {
	var up models.UserProgress
	err := s.db.GetContext(ctx, &up,
		`SELECT `+progressCols+` FROM user_progress WHERE user_id=$1 AND date=$2`, userID, date)
	if err != nil {
		return nil, notFound(err)
	}
	return &up, nil
}

func (s *PostgresStore) ProgressForWeek(ctx context.Context, userID, weekStart string) ([]models.UserProgress, error) {
	end, err := weekEnd(weekStart)
	if err != nil {
		return nil, err
	}
	var out []models.UserProgress
	err = s.db.SelectContext(ctx, &out,
		`SELECT `+progressCols+` FROM user_progress
		 WHERE user_id=$1 AND date >= $2 AND date < $3 ORDER BY date`, userID, weekStart, end)
	return out, err
}

func (s *PostgresStore) CreateProgress(ctx context.Context, up *models.UserProgress) error {
	if up.ID == "" {
		up.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_progress (`+progressCols+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		up.ID, up.UserID, up.Date, up.FatIntake, up.FatLimit, up.RecoveryDay, up.Notes, up.FoodsEaten)
	return err
}

func (s *PostgresStore) UpdateProgress(ctx context.Context, id string, p ProgressPatch) (*models.UserProgress, error) {
	var cols []string
	var args []any
	if p.Date != nil {
		cols, args = append(cols, "date"), append(args, *p.Date)
	}
	if p.FatIntake != nil {
		cols, args = append(cols, "fat_intake"), append(args, *p.FatIntake)
	}
	if p.FatLimit != nil {
		cols, args = append(cols, "fat_limit"), append(args, *p.FatLimit)
	}
	if p.RecoveryDay != nil {
		cols, args = append(cols, "recovery_day"), append(args, *p.RecoveryDay)
	}
	if p.Notes != nil {
		cols, args = append(cols, "notes"), append(args, *p.Notes)
	}
	if p.FoodsEaten != nil {
		cols, args = append(cols, "foods_eaten"), append(args, *p.FoodsEaten)
	}
	var up models.UserProgress
	if err := s.applyPatch(ctx, &up, "user_progress", progressCols, id, cols, args); err != nil {
		return nil, err
	}
	return &up, nil
}

// Reset truncates every table. Only the admin reseed calls this.
func (s *PostgresStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx,
		`TRUNCATE user_progress, meal_plans, grocery_lists, recipes, foods, users`)
	return err
}

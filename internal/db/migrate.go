package db

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// RunMigrations creates the six application tables. Dates are kept as
// YYYY-MM-DD text to match the API's wire format; list-shaped fields are
// JSONB columns.
func RunMigrations(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    username TEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    name TEXT NOT NULL,
    surgery_date TEXT,
    daily_fat_limit NUMERIC(5,2)
);

CREATE TABLE IF NOT EXISTS foods (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    fat_per_100g NUMERIC(5,2) NOT NULL,
    calories_per_100g INTEGER NOT NULL,
    protein_per_100g NUMERIC(5,2) NOT NULL,
    carbs_per_100g NUMERIC(5,2) NOT NULL,
    fiber_per_100g NUMERIC(5,2) NOT NULL,
    serving_size TEXT NOT NULL,
    serving_weight INTEGER NOT NULL,
    safety_level TEXT NOT NULL CHECK (safety_level IN ('safe', 'moderate', 'avoid')),
    description TEXT,
    recovery_notes TEXT
);

CREATE TABLE IF NOT EXISTS recipes (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    instructions TEXT NOT NULL,
    prep_time INTEGER,
    cook_time INTEGER,
    servings INTEGER NOT NULL CHECK (servings >= 1),
    total_fat_per_serving NUMERIC(5,2) NOT NULL,
    safety_level TEXT NOT NULL CHECK (safety_level IN ('safe', 'moderate', 'avoid')),
    ingredients JSONB NOT NULL,
    tags JSONB
);

CREATE TABLE IF NOT EXISTS meal_plans (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    date TEXT NOT NULL,
    meals JSONB NOT NULL,
    total_fat NUMERIC(5,2) NOT NULL,
    notes TEXT
);
CREATE INDEX IF NOT EXISTS meal_plans_user_date_idx ON meal_plans (user_id, date);

CREATE TABLE IF NOT EXISTS grocery_lists (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    week_start_date TEXT NOT NULL,
    items JSONB NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT true,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS grocery_lists_user_idx ON grocery_lists (user_id);

CREATE TABLE IF NOT EXISTS user_progress (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    date TEXT NOT NULL,
    fat_intake NUMERIC(5,2) NOT NULL,
    fat_limit NUMERIC(5,2) NOT NULL DEFAULT 30,
    recovery_day INTEGER NOT NULL,
    notes TEXT,
    foods_eaten JSONB
);
CREATE INDEX IF NOT EXISTS user_progress_user_date_idx ON user_progress (user_id, date);
`
	_, err := db.ExecContext(context.Background(), schema)
	return err
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Ingredient references a food by id with an amount in grams.
type Ingredient struct {
	FoodID string  `json:"foodId"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// PlannedMeal is one slot of a daily meal plan. Either RecipeID or
// CustomMeal is set; FatContent is the planned fat in grams.
type PlannedMeal struct {
	Type       string  `json:"type"` // breakfast, lunch, dinner, snack
	RecipeID   *string `json:"recipeId,omitempty"`
	CustomMeal *string `json:"customMeal,omitempty"`
	FatContent float64 `json:"fatContent"`
}

type GroceryItem struct {
	FoodID   string  `json:"foodId"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Checked  bool    `json:"checked"`
	Category string  `json:"category"`
}

type FoodEaten struct {
	FoodID   string  `json:"foodId"`
	Amount   float64 `json:"amount"` // grams
	MealType string  `json:"mealType"`
}

type (
	IngredientList  []Ingredient
	PlannedMealList []PlannedMeal
	GroceryItemList []GroceryItem
	FoodEatenList   []FoodEaten
	Tags            []string
)

// The list types are stored as JSONB columns, so each implements
// driver.Valuer and sql.Scanner.

func jsonbValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func jsonbScan(dst any, src any) error {
	switch b := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(b, dst)
	case string:
		return json.Unmarshal([]byte(b), dst)
	default:
		return fmt.Errorf("unsupported jsonb source type %T", src)
	}
}

func (l IngredientList) Value() (driver.Value, error)  { return jsonbValue([]Ingredient(l)) }
func (l *IngredientList) Scan(src any) error           { return jsonbScan(l, src) }
func (l PlannedMealList) Value() (driver.Value, error) { return jsonbValue([]PlannedMeal(l)) }
func (l *PlannedMealList) Scan(src any) error          { return jsonbScan(l, src) }
func (l GroceryItemList) Value() (driver.Value, error) { return jsonbValue([]GroceryItem(l)) }
func (l *GroceryItemList) Scan(src any) error          { return jsonbScan(l, src) }
func (l FoodEatenList) Value() (driver.Value, error)   { return jsonbValue([]FoodEaten(l)) }
func (l *FoodEatenList) Scan(src any) error            { return jsonbScan(l, src) }
func (t Tags) Value() (driver.Value, error)            { return jsonbValue([]string(t)) }
func (t *Tags) Scan(src any) error                     { return jsonbScan(t, src) }

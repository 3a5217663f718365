package database

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/model"
)

// GetAllRecipes loads every recipe with its ingredient and sub-recipe lines,
// in stored line order.
func GetAllRecipes(db *sqlx.DB) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := db.Select(&recipes, `SELECT id, name, category, yield, sale_price, notes FROM recipes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select recipes: %w", err)
	}

	type ingredientLine struct {
		RecipeID string `db:"recipe_id"`
		model.RecipeIngredient
	}
	var ingredientLines []ingredientLine
	err = db.Select(&ingredientLines, `SELECT recipe_id, ingredient_id, quantity, unit, waste_percentage
		FROM recipe_ingredients ORDER BY recipe_id, line_no`)
	if err != nil {
		return nil, fmt.Errorf("failed to select recipe ingredients: %w", err)
	}

	type subLine struct {
		RecipeID    string   `db:"recipe_id"`
		SubRecipeID string   `db:"sub_recipe_id"`
		Quantity    float64  `db:"quantity"`
		DirectCost  *float64 `db:"direct_cost"`
	}
	var subLines []subLine
	err = db.Select(&subLines, `SELECT recipe_id, sub_recipe_id, quantity, direct_cost
		FROM sub_recipes ORDER BY recipe_id, line_no`)
	if err != nil {
		return nil, fmt.Errorf("failed to select sub recipes: %w", err)
	}

	byID := make(map[string]int, len(recipes))
	for i := range recipes {
		byID[recipes[i].ID] = i
	}
	for _, line := range ingredientLines {
		if i, ok := byID[line.RecipeID]; ok {
			recipes[i].Ingredients = append(recipes[i].Ingredients, line.RecipeIngredient)
		}
	}
	for _, line := range subLines {
		if i, ok := byID[line.RecipeID]; ok {
			recipes[i].SubRecipes = append(recipes[i].SubRecipes, model.SubRecipeItem{
				RecipeID:   line.SubRecipeID,
				Quantity:   line.Quantity,
				DirectCost: line.DirectCost,
			})
		}
	}
	return recipes, nil
}

// ReplaceAllRecipesInTx swaps the whole recipe collection, lines included.
func ReplaceAllRecipesInTx(tx *sqlx.Tx, recipes []model.Recipe) error {
	for _, table := range []string{"recipes", "recipe_ingredients", "sub_recipes"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	for _, r := range recipes {
		_, err := tx.Exec(`INSERT INTO recipes (id, name, category, yield, sale_price, notes) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Category, r.Yield, r.SalePrice, r.Notes)
		if err != nil {
			return fmt.Errorf("failed to insert recipe %s: %w", r.ID, err)
		}
		for i, line := range r.Ingredients {
			_, err := tx.Exec(`INSERT INTO recipe_ingredients (recipe_id, line_no, ingredient_id, quantity, unit, waste_percentage)
				VALUES (?, ?, ?, ?, ?, ?)`,
				r.ID, i, line.IngredientID, line.Quantity, line.Unit, line.WastePercentage)
			if err != nil {
				return fmt.Errorf("failed to insert ingredient line %d of recipe %s: %w", i, r.ID, err)
			}
		}
		for i, sub := range r.SubRecipes {
			_, err := tx.Exec(`INSERT INTO sub_recipes (recipe_id, line_no, sub_recipe_id, quantity, direct_cost)
				VALUES (?, ?, ?, ?, ?)`,
				r.ID, i, sub.RecipeID, sub.Quantity, sub.DirectCost)
			if err != nil {
				return fmt.Errorf("failed to insert sub-recipe line %d of recipe %s: %w", i, r.ID, err)
			}
		}
	}
	return nil
}

// AppendRecipeHistoryInTx stores a JSON snapshot of the recipe at save time.
func AppendRecipeHistoryInTx(tx *sqlx.Tx, entry model.RecipeHistoryEntry) error {
	snapshot, err := json.Marshal(entry.Recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe snapshot: %w", err)
	}
	_, err = tx.Exec(`INSERT INTO recipe_history (id, recipe_id, timestamp, snapshot) VALUES (?, ?, ?, ?)`,
		entry.ID, entry.RecipeID, entry.Timestamp, string(snapshot))
	if err != nil {
		return fmt.Errorf("failed to insert recipe history: %w", err)
	}
	return nil
}

func GetRecipeHistory(db *sqlx.DB, recipeID string) ([]model.RecipeHistoryEntry, error) {
	var entries []model.RecipeHistoryEntry
	err := db.Select(&entries, `SELECT id, recipe_id, timestamp, snapshot FROM recipe_history
		WHERE recipe_id = ? ORDER BY timestamp DESC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to select recipe history for %s: %w", recipeID, err)
	}
	for i := range entries {
		if err := json.Unmarshal([]byte(entries[i].Snapshot), &entries[i].Recipe); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe snapshot %s: %w", entries[i].ID, err)
		}
	}
	return entries, nil
}

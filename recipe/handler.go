package recipe

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/costing"
	"github.com/Martin4287/BalmoralCost/database"
	"github.com/Martin4287/BalmoralCost/model"
)

// ListRecipesHandler returns every recipe with its lines.
func ListRecipesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipes, err := database.GetAllRecipes(db)
		if err != nil {
			log.Printf("Error getting recipes: %v", err)
			http.Error(w, "Failed to get recipes.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recipes)
	}
}

// SaveRecipesHandler replaces the whole recipe collection and appends a
// history snapshot per recipe.
func SaveRecipesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var recipes []model.Recipe
		if err := json.NewDecoder(r.Body).Decode(&recipes); err != nil {
			http.Error(w, "Invalid request body.", http.StatusBadRequest)
			return
		}
		for i := range recipes {
			if recipes[i].ID == "" {
				recipes[i].ID = uuid.NewString()
			}
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.ReplaceAllRecipesInTx(tx, recipes); err != nil {
			log.Printf("Error saving recipes: %v", err)
			http.Error(w, "Failed to save recipes.", http.StatusInternalServerError)
			return
		}

		now := time.Now().Format(time.RFC3339)
		for _, rec := range recipes {
			entry := model.RecipeHistoryEntry{
				ID:        uuid.NewString(),
				RecipeID:  rec.ID,
				Timestamp: now,
				Recipe:    rec,
			}
			if err := database.AppendRecipeHistoryInTx(tx, entry); err != nil {
				log.Printf("Error appending recipe history for %s: %v", rec.ID, err)
				http.Error(w, "Failed to record recipe history.", http.StatusInternalServerError)
				return
			}
		}

		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"saved": len(recipes)})
	}
}

// GetRecipeHistoryHandler returns the saved snapshots for one recipe
// (path suffix is the recipe id).
func GetRecipeHistoryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID := strings.TrimPrefix(r.URL.Path, "/api/recipes/history/")
		if recipeID == "" {
			http.Error(w, "Recipe id is required.", http.StatusBadRequest)
			return
		}
		entries, err := database.GetRecipeHistory(db, recipeID)
		if err != nil {
			log.Printf("Error getting recipe history for %s: %v", recipeID, err)
			http.Error(w, "Failed to get recipe history.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}

// GetRecipeCostHandler resolves the cost per serving of one recipe against
// the current snapshot. ?id= selects the recipe.
func GetRecipeCostHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		recipeID := r.URL.Query().Get("id")
		if recipeID == "" {
			http.Error(w, "id parameter is required", http.StatusBadRequest)
			return
		}

		recipes, err := database.GetAllRecipes(db)
		if err != nil {
			log.Printf("Error getting recipes for cost resolution: %v", err)
			http.Error(w, "Failed to get recipes.", http.StatusInternalServerError)
			return
		}
		ingredients, err := database.GetAllIngredients(db)
		if err != nil {
			log.Printf("Error getting ingredients for cost resolution: %v", err)
			http.Error(w, "Failed to get ingredients.", http.StatusInternalServerError)
			return
		}

		var target *model.Recipe
		for i := range recipes {
			if recipes[i].ID == recipeID {
				target = &recipes[i]
				break
			}
		}
		if target == nil {
			http.NotFound(w, r)
			return
		}

		batch := costing.NewBatch(ingredients, recipes)
		cost := batch.CostPerServing(*target)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"recipeId":       recipeID,
			"costPerServing": cost,
		})
	}
}

package withdrawal

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/database"
	"github.com/Martin4287/BalmoralCost/model"
)

// ListWithdrawalsHandler returns every withdrawal slip with its items.
func ListWithdrawalsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		withdrawals, err := database.GetAllWithdrawals(db)
		if err != nil {
			log.Printf("Error getting withdrawals: %v", err)
			http.Error(w, "Failed to get withdrawals.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(withdrawals)
	}
}

// SaveWithdrawalHandler records a withdrawal slip. Item costs come from the
// specific purchase record each item was taken against, so client-supplied
// costs are recomputed server-side.
func SaveWithdrawalHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var wd model.Withdrawal
		if err := json.NewDecoder(r.Body).Decode(&wd); err != nil {
			http.Error(w, "Invalid request body.", http.StatusBadRequest)
			return
		}
		if wd.Date == "" || wd.Person == "" || len(wd.Items) == 0 {
			http.Error(w, "Date, person and at least one item are required.", http.StatusBadRequest)
			return
		}
		if wd.ID == "" {
			wd.ID = uuid.NewString()
		}

		ingredients, err := database.GetAllIngredients(db)
		if err != nil {
			log.Printf("Error getting ingredients for withdrawal: %v", err)
			http.Error(w, "Failed to get ingredients.", http.StatusInternalServerError)
			return
		}
		byID := make(map[string]model.Ingredient, len(ingredients))
		for _, ing := range ingredients {
			byID[ing.ID] = ing
		}

		wd.TotalCost = 0
		for i := range wd.Items {
			item := &wd.Items[i]
			ing, ok := byID[item.IngredientID]
			if !ok {
				http.Error(w, "Unknown ingredient: "+item.IngredientID, http.StatusBadRequest)
				return
			}
			item.IngredientName = ing.Canonical()
			item.Unit = ing.Unit
			item.CostPerUnit = ing.CostPerUnit
			item.TotalCost = item.Quantity * ing.CostPerUnit
			wd.TotalCost += item.TotalCost
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.SaveWithdrawalInTx(tx, wd); err != nil {
			log.Printf("Error saving withdrawal: %v", err)
			http.Error(w, "Failed to save withdrawal.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(wd)
	}
}

// DeleteWithdrawalHandler removes a withdrawal slip (path suffix is the id).
func DeleteWithdrawalHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/withdrawals/delete/")
		if id == "" {
			http.Error(w, "Withdrawal id is required.", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.DeleteWithdrawalInTx(tx, id); err != nil {
			log.Printf("Error deleting withdrawal %s: %v", id, err)
			http.Error(w, "Failed to delete withdrawal.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

package lowstock

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/database"
	"github.com/Martin4287/BalmoralCost/model"
)

// GetSettingsHandler returns the configured low-stock thresholds.
func GetSettingsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := database.GetLowStockSettings(db)
		if err != nil {
			log.Printf("Error getting low stock settings: %v", err)
			http.Error(w, "Failed to get low stock settings.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settings)
	}
}

// SaveSettingsHandler replaces the low-stock thresholds. Entries with a
// threshold of zero or less are dropped.
func SaveSettingsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings model.LowStockSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			http.Error(w, "Invalid request body.", http.StatusBadRequest)
			return
		}
		for name, threshold := range settings {
			if threshold <= 0 {
				delete(settings, name)
			}
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.ReplaceLowStockSettingsInTx(tx, settings); err != nil {
			log.Printf("Error saving low stock settings: %v", err)
			http.Error(w, "Failed to save low stock settings.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(settings)
	}
}

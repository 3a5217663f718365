package dashboard

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/config"
	"github.com/Martin4287/BalmoralCost/database"
	"github.com/Martin4287/BalmoralCost/model"
)

// GetDashboardHandler computes the dashboard over the current data. Optional
// ?start= and ?end= (YYYY-MM-DD, inclusive) restrict the sales period.
func GetDashboardHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := r.URL.Query().Get("start")
		end := r.URL.Query().Get("end")

		recipes, err := database.GetAllRecipes(db)
		if err != nil {
			log.Printf("Error getting recipes for dashboard: %v", err)
			http.Error(w, "Failed to get recipes.", http.StatusInternalServerError)
			return
		}
		ingredients, err := database.GetAllIngredients(db)
		if err != nil {
			log.Printf("Error getting ingredients for dashboard: %v", err)
			http.Error(w, "Failed to get ingredients.", http.StatusInternalServerError)
			return
		}
		sales, err := database.GetAllSales(db)
		if err != nil {
			log.Printf("Error getting sales for dashboard: %v", err)
			http.Error(w, "Failed to get sales.", http.StatusInternalServerError)
			return
		}
		internal, err := database.GetAllInternalConsumptions(db)
		if err != nil {
			log.Printf("Error getting internal consumptions for dashboard: %v", err)
			http.Error(w, "Failed to get internal consumptions.", http.StatusInternalServerError)
			return
		}
		prices, err := database.GetAllProductPrices(db)
		if err != nil {
			log.Printf("Error getting product prices for dashboard: %v", err)
			http.Error(w, "Failed to get product prices.", http.StatusInternalServerError)
			return
		}
		withdrawals, err := database.GetAllWithdrawals(db)
		if err != nil {
			log.Printf("Error getting withdrawals for dashboard: %v", err)
			http.Error(w, "Failed to get withdrawals.", http.StatusInternalServerError)
			return
		}
		lowStock, err := database.GetLowStockSettings(db)
		if err != nil {
			log.Printf("Error getting low stock settings for dashboard: %v", err)
			http.Error(w, "Failed to get low stock settings.", http.StatusInternalServerError)
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			log.Printf("WARN: failed to load config, using defaults: %v", err)
		}

		sales = filterByPeriod(sales, start, end)
		internal = filterByPeriod(internal, start, end)

		data := Build(recipes, ingredients, sales, internal, prices, withdrawals, lowStock, cfg.VatRate)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(data)
	}
}

func filterByPeriod(sales []model.ProductSale, start, end string) []model.ProductSale {
	if start == "" && end == "" {
		return sales
	}
	filtered := sales[:0]
	for _, s := range sales {
		if start != "" && s.Date < start {
			continue
		}
		if end != "" && s.Date > end {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

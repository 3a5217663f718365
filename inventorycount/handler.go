package inventorycount

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/database"
	"github.com/Martin4287/BalmoralCost/model"
	"github.com/Martin4287/BalmoralCost/stockledger"
)

// ListInventoryCountsHandler returns every saved physical count.
func ListInventoryCountsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := database.GetAllInventoryCounts(db)
		if err != nil {
			log.Printf("Error getting inventory counts: %v", err)
			http.Error(w, "Failed to get inventory counts.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(counts)
	}
}

// GetTheoreticalStockHandler returns the ledger balances as of ?date=, the
// starting point for a physical count sheet.
func GetTheoreticalStockHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		if date == "" {
			http.Error(w, "date parameter is required", http.StatusBadRequest)
			return
		}

		ledgers, err := ledgersAsOf(db, date)
		if err != nil {
			log.Printf("Error building theoretical stock: %v", err)
			http.Error(w, "Failed to build theoretical stock.", http.StatusInternalServerError)
			return
		}

		items := make([]model.InventoryCountItem, 0, len(ledgers))
		for _, ledger := range ledgers {
			items = append(items, model.InventoryCountItem{
				IngredientName: ledger.IngredientName,
				Unit:           ledger.Unit,
				TheoreticalQty: ledger.FinalBalance,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(items)
	}
}

// SaveInventoryCountHandler stores a physical count. Variances are recomputed
// server-side against the ledger as of the count date, and each variance is
// valued at the representative purchase cost of the ingredient.
func SaveInventoryCountHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var count model.InventoryCount
		if err := json.NewDecoder(r.Body).Decode(&count); err != nil {
			http.Error(w, "Invalid request body.", http.StatusBadRequest)
			return
		}
		if count.Date == "" || len(count.Items) == 0 {
			http.Error(w, "Date and at least one item are required.", http.StatusBadRequest)
			return
		}
		if count.ID == "" {
			count.ID = uuid.NewString()
		}

		ledgers, err := ledgersAsOf(db, count.Date)
		if err != nil {
			log.Printf("Error building ledgers for inventory count: %v", err)
			http.Error(w, "Failed to build stock ledgers.", http.StatusInternalServerError)
			return
		}
		theoretical := make(map[string]model.StockLedger, len(ledgers))
		for _, ledger := range ledgers {
			theoretical[ledger.IngredientName] = ledger
		}

		ingredients, err := database.GetAllIngredients(db)
		if err != nil {
			log.Printf("Error getting ingredients for inventory count: %v", err)
			http.Error(w, "Failed to get ingredients.", http.StatusInternalServerError)
			return
		}
		costByName := make(map[string]float64)
		for _, ing := range ingredients {
			key := ing.Canonical()
			if _, ok := costByName[key]; !ok {
				costByName[key] = ing.CostPerUnit
			}
		}

		for i := range count.Items {
			item := &count.Items[i]
			if ledger, ok := theoretical[item.IngredientName]; ok {
				item.TheoreticalQty = ledger.FinalBalance
				item.Unit = ledger.Unit
			}
			item.VarianceQty = item.PhysicalQty - item.TheoreticalQty
			item.CostOfVariance = item.VarianceQty * costByName[item.IngredientName]
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.SaveInventoryCountInTx(tx, count); err != nil {
			log.Printf("Error saving inventory count: %v", err)
			http.Error(w, "Failed to save inventory count.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(count)
	}
}

func ledgersAsOf(db *sqlx.DB, date string) ([]model.StockLedger, error) {
	recipes, err := database.GetAllRecipes(db)
	if err != nil {
		return nil, err
	}
	ingredients, err := database.GetAllIngredients(db)
	if err != nil {
		return nil, err
	}
	sales, err := database.GetAllSales(db)
	if err != nil {
		return nil, err
	}
	internal, err := database.GetAllInternalConsumptions(db)
	if err != nil {
		return nil, err
	}
	withdrawals, err := database.GetAllWithdrawals(db)
	if err != nil {
		return nil, err
	}
	return stockledger.Build(recipes, ingredients, sales, internal, withdrawals, date), nil
}

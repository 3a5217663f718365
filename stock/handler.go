package stock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/database"
	"github.com/Martin4287/BalmoralCost/model"
	"github.com/Martin4287/BalmoralCost/render"
	"github.com/Martin4287/BalmoralCost/stockledger"
)

func buildLedgers(db *sqlx.DB, asOf string) ([]model.StockLedger, error) {
	recipes, err := database.GetAllRecipes(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipes: %w", err)
	}
	ingredients, err := database.GetAllIngredients(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	sales, err := database.GetAllSales(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}
	internal, err := database.GetAllInternalConsumptions(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get internal consumptions: %w", err)
	}
	withdrawals, err := database.GetAllWithdrawals(db)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawals: %w", err)
	}
	return stockledger.Build(recipes, ingredients, sales, internal, withdrawals, asOf), nil
}

// GetStockHandler returns the stock ledgers as JSON. ?as_of=YYYY-MM-DD limits
// the ledger to movements up to that day; empty means the full history.
func GetStockHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ledgers, err := buildLedgers(db, r.URL.Query().Get("as_of"))
		if err != nil {
			log.Printf("Error building stock ledgers: %v", err)
			http.Error(w, "Failed to build stock ledgers.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ledgers)
	}
}

// GetStockTableHandler returns the rendered movement table for one ingredient
// (path suffix is the canonical name, URL-escaped).
func GetStockTableHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/api/stock/table/"))
		if err != nil || name == "" {
			http.Error(w, "Ingredient name is required.", http.StatusBadRequest)
			return
		}

		ledgers, err := buildLedgers(db, r.URL.Query().Get("as_of"))
		if err != nil {
			log.Printf("Error building stock ledgers: %v", err)
			http.Error(w, "Failed to build stock ledgers.", http.StatusInternalServerError)
			return
		}
		for _, ledger := range ledgers {
			if ledger.IngredientName == name {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				fmt.Fprint(w, render.RenderLedgerTableHTML(ledger))
				return
			}
		}
		http.NotFound(w, r)
	}
}

func quoteAll(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportStockCSVHandler writes the final balances as a CSV download.
func ExportStockCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		asOf := r.URL.Query().Get("as_of")
		ledgers, err := buildLedgers(db, asOf)
		if err != nil {
			log.Printf("Error building stock ledgers for export: %v", err)
			http.Error(w, "Failed to build stock ledgers.", http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM

		header := []string{"Ingrediente", "Unidad", "Saldo"}
		buf.WriteString(strings.Join(header, ",") + "\r\n")

		for _, ledger := range ledgers {
			record := []string{
				quoteAll(ledger.IngredientName),
				quoteAll(ledger.Unit),
				quoteAll(fmt.Sprintf("%.2f", ledger.FinalBalance)),
			}
			buf.WriteString(strings.Join(record, ",") + "\r\n")
		}

		label := asOf
		if label == "" {
			label = "completo"
		}
		filename := fmt.Sprintf("stock_balmoral_%s.csv", label)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
		w.Write(buf.Bytes())
	}
}

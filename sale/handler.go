package sale

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/database"
	"github.com/Martin4287/BalmoralCost/model"
	"github.com/Martin4287/BalmoralCost/parsers"
)

// ListSalesHandler returns all recorded product sales.
func ListSalesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sales, err := database.GetAllSales(db)
		if err != nil {
			log.Printf("Error getting sales: %v", err)
			http.Error(w, "Failed to get sales.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sales)
	}
}

// SaveSalesHandler replaces the whole sales collection.
func SaveSalesHandler(db *sqlx.DB) http.HandlerFunc {
	return saveSales(db, database.ReplaceAllSalesInTx)
}

// ListInternalConsumptionsHandler returns all internal-consumption lines.
func ListInternalConsumptionsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		consumptions, err := database.GetAllInternalConsumptions(db)
		if err != nil {
			log.Printf("Error getting internal consumptions: %v", err)
			http.Error(w, "Failed to get internal consumptions.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(consumptions)
	}
}

// SaveInternalConsumptionsHandler replaces the internal-consumption collection.
func SaveInternalConsumptionsHandler(db *sqlx.DB) http.HandlerFunc {
	return saveSales(db, database.ReplaceAllInternalConsumptionsInTx)
}

func saveSales(db *sqlx.DB, replace func(*sqlx.Tx, []model.ProductSale) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sales []model.ProductSale
		if err := json.NewDecoder(r.Body).Decode(&sales); err != nil {
			http.Error(w, "Invalid request body.", http.StatusBadRequest)
			return
		}
		for i := range sales {
			if sales[i].ID == "" {
				sales[i].ID = uuid.NewString()
			}
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := replace(tx, sales); err != nil {
			log.Printf("Error saving sales: %v", err)
			http.Error(w, "Failed to save sales.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"saved": len(sales)})
	}
}

// ListProductPricesHandler returns the POS price list.
func ListProductPricesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prices, err := database.GetAllProductPrices(db)
		if err != nil {
			log.Printf("Error getting product prices: %v", err)
			http.Error(w, "Failed to get product prices.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(prices)
	}
}

// SaveProductPricesHandler replaces the POS price list.
func SaveProductPricesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var prices []model.ProductPrice
		if err := json.NewDecoder(r.Body).Decode(&prices); err != nil {
			http.Error(w, "Invalid request body.", http.StatusBadRequest)
			return
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.ReplaceAllProductPricesInTx(tx, prices); err != nil {
			log.Printf("Error saving product prices: %v", err)
			http.Error(w, "Failed to save product prices.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"saved": len(prices)})
	}
}

// ImportSalesStream parses a POS sales CSV and stores its lines. Lines whose
// table type marks internal consumption go to that stream; everything else is
// a regular sale. Shared by the upload handler and the portal automation.
func ImportSalesStream(db *sqlx.DB, r io.Reader) (salesCount, internalCount int, err error) {
	records, err := parsers.ParseSalesCSV(r)
	if err != nil {
		return 0, 0, err
	}

	var sales, internal []model.ProductSale
	for _, rec := range records {
		s := model.ProductSale{
			ID:        uuid.NewString(),
			Date:      rec.Date,
			Name:      rec.Name,
			Quantity:  rec.Quantity,
			TableType: rec.TableType,
		}
		if parsers.IsInternalTableType(rec.TableType) {
			internal = append(internal, s)
		} else {
			sales = append(sales, s)
		}
	}

	tx, err := db.Beginx()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if err := database.InsertSalesInTx(tx, sales); err != nil {
		return 0, 0, fmt.Errorf("failed to save imported sales: %w", err)
	}
	if err := database.InsertInternalConsumptionsInTx(tx, internal); err != nil {
		return 0, 0, fmt.Errorf("failed to save imported internal consumptions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit: %w", err)
	}

	log.Printf("INFO: imported %d sales and %d internal consumptions from CSV", len(sales), len(internal))
	return len(sales), len(internal), nil
}

// ImportSalesCSVHandler ingests an uploaded POS sales CSV.
func ImportSalesCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "Failed to parse form.", http.StatusBadRequest)
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "File is required.", http.StatusBadRequest)
			return
		}
		defer file.Close()

		salesCount, internalCount, err := ImportSalesStream(db, file)
		if err != nil {
			log.Printf("Error importing sales CSV: %v", err)
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{
			"sales":                salesCount,
			"internalConsumptions": internalCount,
		})
	}
}

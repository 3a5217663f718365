package ingredient

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/database"
	"github.com/Martin4287/BalmoralCost/model"
	"github.com/Martin4287/BalmoralCost/parsers"
)

// ListIngredientsHandler returns every purchase record.
func ListIngredientsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ingredients, err := database.GetAllIngredients(db)
		if err != nil {
			log.Printf("Error getting ingredients: %v", err)
			http.Error(w, "Failed to get ingredients.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(ingredients)
	}
}

// SaveIngredientsHandler replaces the whole purchase-record collection. The
// ingredients page edits the list in place and posts it back wholesale.
func SaveIngredientsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ingredients []model.Ingredient
		if err := json.NewDecoder(r.Body).Decode(&ingredients); err != nil {
			http.Error(w, "Invalid request body.", http.StatusBadRequest)
			return
		}
		for i := range ingredients {
			if ingredients[i].ID == "" {
				ingredients[i].ID = uuid.NewString()
			}
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.ReplaceAllIngredientsInTx(tx, ingredients); err != nil {
			log.Printf("Error saving ingredients: %v", err)
			http.Error(w, "Failed to save ingredients.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"saved": len(ingredients)})
	}
}

// ImportPurchasesCSVHandler appends purchase records parsed from an uploaded
// invoice CSV.
func ImportPurchasesCSVHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			http.Error(w, "Expected multipart upload.", http.StatusBadRequest)
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			http.Error(w, "File upload error: "+err.Error(), http.StatusBadRequest)
			return
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Missing file field.", http.StatusBadRequest)
			return
		}
		defer file.Close()
		log.Printf("Processing purchases CSV: %s", header.Filename)

		parsed, err := parsers.ParsePurchasesCSV(file)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to parse %s: %v", header.Filename, err), http.StatusBadRequest)
			return
		}

		ingredients := make([]model.Ingredient, 0, len(parsed))
		for _, p := range parsed {
			date := p.PurchaseDate
			if date == "" {
				date = time.Now().Format("2006-01-02")
			}
			ingredients = append(ingredients, model.Ingredient{
				ID:               uuid.NewString(),
				Name:             p.Name,
				CanonicalName:    p.CanonicalName,
				Supplier:         p.Supplier,
				PurchaseDate:     date,
				PurchaseQuantity: p.PurchaseQuantity,
				Unit:             p.Unit,
				CostPerUnit:      p.CostPerUnit,
			})
		}

		tx, err := db.Beginx()
		if err != nil {
			http.Error(w, "Failed to start transaction.", http.StatusInternalServerError)
			return
		}
		defer tx.Rollback()

		if err := database.InsertIngredientsInTx(tx, ingredients); err != nil {
			log.Printf("Error inserting imported ingredients: %v", err)
			http.Error(w, "Failed to store imported purchases.", http.StatusInternalServerError)
			return
		}
		if err := tx.Commit(); err != nil {
			http.Error(w, "Failed to commit.", http.StatusInternalServerError)
			return
		}

		log.Printf("Imported %d purchase records from %s", len(ingredients), header.Filename)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"imported": len(ingredients)})
	}
}

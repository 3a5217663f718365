package main

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/database"
)

// ListSuppliersHandler returns the supplier names used on purchase records.
func ListSuppliersHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		suppliers, err := database.GetAllSuppliers(db)
		if err != nil {
			log.Printf("Error getting all suppliers: %v", err)
			http.Error(w, "Failed to list suppliers.", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(suppliers)
	}
}

// CreateSupplierHandler registers a new supplier name.
func CreateSupplierHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			http.Error(w, "Invalid request body.", http.StatusBadRequest)
			return
		}
		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			http.Error(w, "Supplier name is required.", http.StatusBadRequest)
			return
		}
		if err := database.CreateSupplier(db, input.Name); err != nil {
			log.Printf("Error creating supplier %q: %v", input.Name, err)
			http.Error(w, "Failed to create supplier.", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusCreated)
	}
}

// DeleteSupplierHandler removes a supplier by name (path suffix).
func DeleteSupplierHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/api/suppliers/delete/")
		if name == "" {
			http.Error(w, "Supplier name is required.", http.StatusBadRequest)
			return
		}
		if err := database.DeleteSupplier(db, name); err != nil {
			log.Printf("Error deleting supplier %q: %v", name, err)
			http.Error(w, "Failed to delete supplier.", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

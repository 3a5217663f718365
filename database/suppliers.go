package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func GetAllSuppliers(db *sqlx.DB) ([]string, error) {
	var names []string
	err := db.Select(&names, `SELECT name FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select suppliers: %w", err)
	}
	return names, nil
}

func CreateSupplier(db *sqlx.DB, name string) error {
	if _, err := db.Exec(`INSERT OR IGNORE INTO suppliers (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("failed to create supplier %s: %w", name, err)
	}
	return nil
}

func DeleteSupplier(db *sqlx.DB, name string) error {
	if _, err := db.Exec(`DELETE FROM suppliers WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete supplier %s: %w", name, err)
	}
	return nil
}

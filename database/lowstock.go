package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/model"
)

func GetLowStockSettings(db *sqlx.DB) (model.LowStockSettings, error) {
	type row struct {
		IngredientName string  `db:"ingredient_name"`
		Threshold      float64 `db:"threshold"`
	}
	var rows []row
	err := db.Select(&rows, `SELECT ingredient_name, threshold FROM low_stock_settings`)
	if err != nil {
		return nil, fmt.Errorf("failed to select low stock settings: %w", err)
	}
	settings := make(model.LowStockSettings, len(rows))
	for _, r := range rows {
		settings[r.IngredientName] = r.Threshold
	}
	return settings, nil
}

func ReplaceLowStockSettingsInTx(tx *sqlx.Tx, settings model.LowStockSettings) error {
	if _, err := tx.Exec(`DELETE FROM low_stock_settings`); err != nil {
		return fmt.Errorf("failed to clear low stock settings: %w", err)
	}
	for name, threshold := range settings {
		_, err := tx.Exec(`INSERT INTO low_stock_settings (ingredient_name, threshold) VALUES (?, ?)`, name, threshold)
		if err != nil {
			return fmt.Errorf("failed to insert low stock threshold for %s: %w", name, err)
		}
	}
	return nil
}

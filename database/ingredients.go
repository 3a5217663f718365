package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/model"
)

const ingredientColumns = `id, name, canonical_name, supplier, purchase_date, purchase_quantity, unit, cost_per_unit`

func GetAllIngredients(db *sqlx.DB) ([]model.Ingredient, error) {
	var list []model.Ingredient
	err := db.Select(&list, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name, purchase_date`)
	if err != nil {
		return nil, fmt.Errorf("failed to select ingredients: %w", err)
	}
	return list, nil
}

// ReplaceAllIngredientsInTx swaps the whole purchase-record collection. The
// front end edits the list as a whole and saves it back wholesale.
func ReplaceAllIngredientsInTx(tx *sqlx.Tx, ingredients []model.Ingredient) error {
	if _, err := tx.Exec(`DELETE FROM ingredients`); err != nil {
		return fmt.Errorf("failed to clear ingredients: %w", err)
	}
	return InsertIngredientsInTx(tx, ingredients)
}

// InsertIngredientsInTx appends purchase records, e.g. from an invoice CSV.
func InsertIngredientsInTx(tx *sqlx.Tx, ingredients []model.Ingredient) error {
	for _, ing := range ingredients {
		_, err := tx.Exec(`INSERT INTO ingredients (`+ingredientColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ing.ID, ing.Name, ing.CanonicalName, ing.Supplier, ing.PurchaseDate,
			ing.PurchaseQuantity, ing.Unit, ing.CostPerUnit)
		if err != nil {
			return fmt.Errorf("failed to insert ingredient %s: %w", ing.ID, err)
		}
	}
	return nil
}

package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/model"
)

func GetAllInventoryCounts(db *sqlx.DB) ([]model.InventoryCount, error) {
	var counts []model.InventoryCount
	err := db.Select(&counts, `SELECT id, date FROM inventory_counts ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select inventory counts: %w", err)
	}

	type itemRow struct {
		CountID string `db:"count_id"`
		model.InventoryCountItem
	}
	var items []itemRow
	err = db.Select(&items, `SELECT count_id, ingredient_name, unit, theoretical_qty, physical_qty, variance_qty, cost_of_variance
		FROM inventory_count_items ORDER BY count_id, line_no`)
	if err != nil {
		return nil, fmt.Errorf("failed to select inventory count items: %w", err)
	}

	byID := make(map[string]int, len(counts))
	for i := range counts {
		byID[counts[i].ID] = i
	}
	for _, item := range items {
		if i, ok := byID[item.CountID]; ok {
			counts[i].Items = append(counts[i].Items, item.InventoryCountItem)
		}
	}
	return counts, nil
}

// SaveInventoryCountInTx persists one physical count with its embedded
// theoretical balances, so the saved variance never changes afterwards.
func SaveInventoryCountInTx(tx *sqlx.Tx, count model.InventoryCount) error {
	_, err := tx.Exec(`INSERT INTO inventory_counts (id, date) VALUES (?, ?)`, count.ID, count.Date)
	if err != nil {
		return fmt.Errorf("failed to insert inventory count %s: %w", count.ID, err)
	}
	for i, item := range count.Items {
		_, err := tx.Exec(`INSERT INTO inventory_count_items
			(count_id, line_no, ingredient_name, unit, theoretical_qty, physical_qty, variance_qty, cost_of_variance)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			count.ID, i, item.IngredientName, item.Unit, item.TheoreticalQty, item.PhysicalQty, item.VarianceQty, item.CostOfVariance)
		if err != nil {
			return fmt.Errorf("failed to insert count item %d of %s: %w", i, count.ID, err)
		}
	}
	return nil
}

package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/model"
)

func GetAllWithdrawals(db *sqlx.DB) ([]model.Withdrawal, error) {
	var withdrawals []model.Withdrawal
	err := db.Select(&withdrawals, `SELECT id, date, person, observations, total_cost FROM withdrawals ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to select withdrawals: %w", err)
	}

	type itemRow struct {
		WithdrawalID string `db:"withdrawal_id"`
		model.WithdrawalItem
	}
	var items []itemRow
	err = db.Select(&items, `SELECT withdrawal_id, ingredient_id, ingredient_name, quantity, unit, cost_per_unit, total_cost
		FROM withdrawal_items ORDER BY withdrawal_id, line_no`)
	if err != nil {
		return nil, fmt.Errorf("failed to select withdrawal items: %w", err)
	}

	byID := make(map[string]int, len(withdrawals))
	for i := range withdrawals {
		byID[withdrawals[i].ID] = i
	}
	for _, item := range items {
		if i, ok := byID[item.WithdrawalID]; ok {
			withdrawals[i].Items = append(withdrawals[i].Items, item.WithdrawalItem)
		}
	}
	return withdrawals, nil
}

// SaveWithdrawalInTx inserts one slip with its items.
func SaveWithdrawalInTx(tx *sqlx.Tx, wd model.Withdrawal) error {
	_, err := tx.Exec(`INSERT INTO withdrawals (id, date, person, observations, total_cost) VALUES (?, ?, ?, ?, ?)`,
		wd.ID, wd.Date, wd.Person, wd.Observations, wd.TotalCost)
	if err != nil {
		return fmt.Errorf("failed to insert withdrawal %s: %w", wd.ID, err)
	}
	for i, item := range wd.Items {
		_, err := tx.Exec(`INSERT INTO withdrawal_items
			(withdrawal_id, line_no, ingredient_id, ingredient_name, quantity, unit, cost_per_unit, total_cost)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			wd.ID, i, item.IngredientID, item.IngredientName, item.Quantity, item.Unit, item.CostPerUnit, item.TotalCost)
		if err != nil {
			return fmt.Errorf("failed to insert withdrawal item %d of %s: %w", i, wd.ID, err)
		}
	}
	return nil
}

func DeleteWithdrawalInTx(tx *sqlx.Tx, id string) error {
	if _, err := tx.Exec(`DELETE FROM withdrawal_items WHERE withdrawal_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete items of withdrawal %s: %w", id, err)
	}
	if _, err := tx.Exec(`DELETE FROM withdrawals WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete withdrawal %s: %w", id, err)
	}
	return nil
}

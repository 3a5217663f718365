package model

// InventoryCountItem compares the theoretical ledger balance of one canonical
// ingredient against a physically counted quantity.
type InventoryCountItem struct {
	IngredientName string  `db:"ingredient_name" json:"ingredientName"`
	Unit           string  `db:"unit" json:"unit"`
	TheoreticalQty float64 `db:"theoretical_qty" json:"theoreticalQty"`
	PhysicalQty    float64 `db:"physical_qty" json:"physicalQty"`
	VarianceQty    float64 `db:"variance_qty" json:"varianceQty"`
	CostOfVariance float64 `db:"cost_of_variance" json:"costOfVariance"`
}

// InventoryCount is a saved physical count taken on a specific day. It embeds
// the ledger balances as of that day, so later recomputation cannot change it.
type InventoryCount struct {
	ID    string               `db:"id" json:"id"`
	Date  string               `db:"date" json:"date"`
	Items []InventoryCountItem `json:"items"`
}

// LowStockSettings maps canonical ingredient names to alert thresholds.
type LowStockSettings map[string]float64

type LowStockItem struct {
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	Threshold float64 `json:"threshold"`
	Unit      string  `json:"unit"`
}

package model

// WithdrawalItem is one ingredient line of a withdrawal slip. It records the
// specific purchase record it was taken against, so the unit cost is the cost
// of that purchase, not an average.
type WithdrawalItem struct {
	IngredientID   string  `db:"ingredient_id" json:"ingredientId"`
	IngredientName string  `db:"ingredient_name" json:"ingredientName"`
	Quantity       float64 `db:"quantity" json:"quantity"`
	Unit           string  `db:"unit" json:"unit"`
	CostPerUnit    float64 `db:"cost_per_unit" json:"costPerUnit"`
	TotalCost      float64 `db:"total_cost" json:"totalCost"`
}

// Withdrawal is a manual stock removal signed by one person.
type Withdrawal struct {
	ID           string           `db:"id" json:"id"`
	Date         string           `db:"date" json:"date"`
	Person       string           `db:"person" json:"person"`
	Observations string           `db:"observations" json:"observations,omitempty"`
	TotalCost    float64          `db:"total_cost" json:"totalWithdrawalCost"`
	Items        []WithdrawalItem `json:"items"`
}

package model

// MovementType tags one stock ledger entry.
type MovementType string

const (
	MovementPurchase            MovementType = "Purchase"
	MovementSaleConsumption     MovementType = "SaleConsumption"
	MovementInternalConsumption MovementType = "InternalConsumption"
	MovementWithdrawal          MovementType = "Withdrawal"
)

// StockMovement is a single dated debit or credit against one canonical
// ingredient. Balance is derived during the chronological pass, never stored.
type StockMovement struct {
	Date        string       `json:"date"`
	Type        MovementType `json:"type"`
	Description string       `json:"description"`
	Debit       float64      `json:"debit"`
	Credit      float64      `json:"credit"`
	Balance     float64      `json:"balance"`
}

// StockLedger is the full movement history for one canonical ingredient.
type StockLedger struct {
	IngredientName string          `json:"ingredientName"`
	Unit           string          `json:"unit"`
	FinalBalance   float64         `json:"finalBalance"`
	Movements      []StockMovement `json:"movements"`
}

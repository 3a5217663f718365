package model

// Ingredient is one purchase record: one row per invoice line, not per
// logical ingredient. Several purchases may share a canonical name.
type Ingredient struct {
	ID               string  `db:"id" json:"id"`
	Name             string  `db:"name" json:"name"`
	CanonicalName    string  `db:"canonical_name" json:"canonicalName,omitempty"`
	Supplier         string  `db:"supplier" json:"supplier,omitempty"`
	PurchaseDate     string  `db:"purchase_date" json:"purchaseDate,omitempty"`
	PurchaseQuantity float64 `db:"purchase_quantity" json:"purchaseQuantity"`
	Unit             string  `db:"unit" json:"unit"`
	CostPerUnit      float64 `db:"cost_per_unit" json:"costPerUnit"`
}

// Canonical returns the unification key used for stock aggregation:
// the canonical name when one was assigned, the invoice name otherwise.
func (i Ingredient) Canonical() string {
	if i.CanonicalName != "" {
		return i.CanonicalName
	}
	return i.Name
}

package model

// ProductSale is one sold (or internally consumed) product line from the POS.
// The same shape serves both the sales stream and the internal-consumption
// stream; they are stored and processed separately.
type ProductSale struct {
	ID        string  `db:"id" json:"id"`
	Date      string  `db:"date" json:"date"`
	Name      string  `db:"name" json:"name"`
	Quantity  float64 `db:"quantity" json:"quantity"`
	TableType string  `db:"table_type" json:"tableType,omitempty"`
}

// ProductPrice is one row of the POS price list. SalePrice holds the primary
// (salon) price; OtherPrices carries named alternates such as delivery.
type ProductPrice struct {
	Name        string             `db:"name" json:"name"`
	SalePrice   float64            `db:"sale_price" json:"salePrice"`
	Rubro       string             `db:"rubro" json:"rubro,omitempty"`
	Codigo      string             `db:"codigo" json:"codigo,omitempty"`
	OtherPrices map[string]float64 `json:"otherPrices,omitempty"`
}

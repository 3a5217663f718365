package database

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/model"
)

// Sales and internal consumptions share one row shape but live in separate
// tables; the ledger treats them as separate streams.

func GetAllSales(db *sqlx.DB) ([]model.ProductSale, error) {
	return selectSales(db, "product_sales")
}

func GetAllInternalConsumptions(db *sqlx.DB) ([]model.ProductSale, error) {
	return selectSales(db, "internal_consumptions")
}

func selectSales(db *sqlx.DB, table string) ([]model.ProductSale, error) {
	var list []model.ProductSale
	err := db.Select(&list, `SELECT id, date, name, quantity, table_type FROM `+table+` ORDER BY date, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", table, err)
	}
	return list, nil
}

func ReplaceAllSalesInTx(tx *sqlx.Tx, sales []model.ProductSale) error {
	return replaceSales(tx, "product_sales", sales)
}

func ReplaceAllInternalConsumptionsInTx(tx *sqlx.Tx, consumptions []model.ProductSale) error {
	return replaceSales(tx, "internal_consumptions", consumptions)
}

func replaceSales(tx *sqlx.Tx, table string, sales []model.ProductSale) error {
	if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return insertSales(tx, table, sales)
}

func InsertSalesInTx(tx *sqlx.Tx, sales []model.ProductSale) error {
	return insertSales(tx, "product_sales", sales)
}

func InsertInternalConsumptionsInTx(tx *sqlx.Tx, consumptions []model.ProductSale) error {
	return insertSales(tx, "internal_consumptions", consumptions)
}

func insertSales(tx *sqlx.Tx, table string, sales []model.ProductSale) error {
	for _, s := range sales {
		_, err := tx.Exec(`INSERT INTO `+table+` (id, date, name, quantity, table_type) VALUES (?, ?, ?, ?, ?)`,
			s.ID, s.Date, s.Name, s.Quantity, s.TableType)
		if err != nil {
			return fmt.Errorf("failed to insert into %s: %w", table, err)
		}
	}
	return nil
}

func GetAllProductPrices(db *sqlx.DB) ([]model.ProductPrice, error) {
	type priceRow struct {
		Name        string  `db:"name"`
		SalePrice   float64 `db:"sale_price"`
		Rubro       string  `db:"rubro"`
		Codigo      string  `db:"codigo"`
		OtherPrices string  `db:"other_prices"`
	}
	var rows []priceRow
	err := db.Select(&rows, `SELECT name, sale_price, rubro, codigo, other_prices FROM product_prices ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select product prices: %w", err)
	}

	prices := make([]model.ProductPrice, 0, len(rows))
	for _, row := range rows {
		p := model.ProductPrice{Name: row.Name, SalePrice: row.SalePrice, Rubro: row.Rubro, Codigo: row.Codigo}
		if row.OtherPrices != "" && row.OtherPrices != "{}" {
			if err := json.Unmarshal([]byte(row.OtherPrices), &p.OtherPrices); err != nil {
				return nil, fmt.Errorf("failed to unmarshal other prices for %s: %w", row.Name, err)
			}
		}
		prices = append(prices, p)
	}
	return prices, nil
}

func ReplaceAllProductPricesInTx(tx *sqlx.Tx, prices []model.ProductPrice) error {
	if _, err := tx.Exec(`DELETE FROM product_prices`); err != nil {
		return fmt.Errorf("failed to clear product prices: %w", err)
	}
	for _, p := range prices {
		other := "{}"
		if len(p.OtherPrices) > 0 {
			raw, err := json.Marshal(p.OtherPrices)
			if err != nil {
				return fmt.Errorf("failed to marshal other prices for %s: %w", p.Name, err)
			}
			other = string(raw)
		}
		_, err := tx.Exec(`INSERT OR REPLACE INTO product_prices (name, sale_price, rubro, codigo, other_prices) VALUES (?, ?, ?, ?, ?)`,
			p.Name, p.SalePrice, p.Rubro, p.Codigo, other)
		if err != nil {
			return fmt.Errorf("failed to insert product price %s: %w", p.Name, err)
		}
	}
	return nil
}

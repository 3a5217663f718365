package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Martin4287/BalmoralCost/units"
)

type ParsedPurchaseRecord struct {
	Name             string
	CanonicalName    string
	Supplier         string
	PurchaseDate     string
	PurchaseQuantity float64
	Unit             string
	CostPerUnit      float64
}

// ParsePurchasesCSV reads an invoice-entry CSV (UTF-8, BOM tolerated).
// Required columns: Producto, Cantidad, Unidad, Costo Unitario. Optional:
// Nombre Unificado, Proveedor, Fecha.
func ParsePurchasesCSV(r io.Reader) ([]ParsedPurchaseRecord, error) {
	reader := csv.NewReader(SkipBOM(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("purchases CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read purchases CSV header: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"Producto", "Cantidad", "Unidad", "Costo Unitario"})
	if err != nil {
		return nil, err
	}
	idxCanonical, hasCanonical := colIndex["Nombre Unificado"]
	idxSupplier, hasSupplier := colIndex["Proveedor"]
	idxDate, hasDate := colIndex["Fecha"]

	var records []ParsedPurchaseRecord
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: purchases CSV line %d unreadable (skipped): %v", line, err)
			continue
		}

		get := func(idx int) string {
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		name := get(colIndex["Producto"])
		if name == "" {
			continue
		}
		qty, err := parseQuantity(get(colIndex["Cantidad"]))
		if err != nil || qty <= 0 {
			log.Printf("WARN: purchases CSV line %d has no usable quantity (skipped)", line)
			continue
		}
		cost, err := parseQuantity(get(colIndex["Costo Unitario"]))
		if err != nil {
			log.Printf("WARN: purchases CSV line %d has no usable unit cost (skipped)", line)
			continue
		}

		unit := units.Normalize(get(colIndex["Unidad"]))
		if !units.IsValid(unit) {
			log.Printf("WARN: purchases CSV line %d has unknown unit %q (kept as-is)", line, unit)
		}

		parsed := ParsedPurchaseRecord{
			Name:             name,
			PurchaseQuantity: qty,
			Unit:             unit,
			CostPerUnit:      cost,
		}
		if hasCanonical {
			parsed.CanonicalName = get(idxCanonical)
		}
		if hasSupplier {
			parsed.Supplier = get(idxSupplier)
		}
		if hasDate {
			parsed.PurchaseDate = normalizeDate(get(idxDate))
		}
		records = append(records, parsed)
	}
	return records, nil
}

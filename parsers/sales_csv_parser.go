package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
)

type ParsedSaleRecord struct {
	Date      string
	Name      string
	Quantity  float64
	TableType string
}

// ParseSalesCSV reads a POS sales export (Windows-1252 encoded). Required
// columns: Fecha, Producto, Cantidad. The optional Mesa column carries the
// table type used to split internal consumption from regular sales.
// Unreadable lines are skipped with a warning, not fatal.
func ParseSalesCSV(r io.Reader) ([]ParsedSaleRecord, error) {
	reader := csv.NewReader(DecodeANSI(r))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("sales CSV is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sales CSV header: %w", err)
	}

	colIndex, err := getColIndex(header, []string{"Fecha", "Producto", "Cantidad"})
	if err != nil {
		return nil, err
	}
	idxMesa, hasMesa := colIndex["Mesa"]

	var records []ParsedSaleRecord
	line := 1
	for {
		line++
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("WARN: sales CSV line %d unreadable (skipped): %v", line, err)
			continue
		}

		get := func(idx int) string {
			if idx < len(rec) {
				return strings.TrimSpace(rec[idx])
			}
			return ""
		}

		qty, err := parseQuantity(get(colIndex["Cantidad"]))
		if err != nil || qty <= 0 {
			continue
		}
		name := get(colIndex["Producto"])
		if name == "" {
			continue
		}

		parsed := ParsedSaleRecord{
			Date:     normalizeDate(get(colIndex["Fecha"])),
			Name:     name,
			Quantity: qty,
		}
		if hasMesa {
			parsed.TableType = get(idxMesa)
		}
		records = append(records, parsed)
	}
	return records, nil
}

// IsInternalTableType reports whether a sale line belongs to the internal
// consumption stream (staff meals, comps) rather than regular sales.
func IsInternalTableType(tableType string) bool {
	switch strings.ToUpper(strings.TrimSpace(tableType)) {
	case "INVITACION", "CONSUMO PERSONAL":
		return true
	}
	return false
}

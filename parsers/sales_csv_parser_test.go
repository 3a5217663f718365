package parsers

import (
	"strings"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func ansiReader(t *testing.T, s string) *strings.Reader {
	t.Helper()
	encoded, _, err := transform.String(charmap.Windows1252.NewEncoder(), s)
	if err != nil {
		t.Fatalf("failed to encode test fixture: %v", err)
	}
	return strings.NewReader(encoded)
}

func TestParseSalesCSV(t *testing.T) {
	csvData := "Fecha,Producto,Cantidad,Mesa\n" +
		"15/03/2024,Café con leche,3,SALON\n" +
		"15/03/2024,Milanesa napolitana,\"2,5\",DELIVERY\n" +
		"16/03/2024,Flan casero,0,SALON\n" + // zero quantity dropped
		"16/03/2024,,4,SALON\n" // empty product dropped

	records, err := ParseSalesCSV(ansiReader(t, csvData))
	if err != nil {
		t.Fatalf("ParseSalesCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2: %+v", len(records), records)
	}
	if records[0].Name != "Café con leche" {
		t.Errorf("accented name decoded as %q", records[0].Name)
	}
	if records[0].Date != "2024-03-15" {
		t.Errorf("date normalized to %q, want 2024-03-15", records[0].Date)
	}
	if records[1].Quantity != 2.5 {
		t.Errorf("decimal-comma quantity = %v, want 2.5", records[1].Quantity)
	}
	if records[1].TableType != "DELIVERY" {
		t.Errorf("table type = %q, want DELIVERY", records[1].TableType)
	}
}

func TestParseSalesCSVMissingHeader(t *testing.T) {
	_, err := ParseSalesCSV(ansiReader(t, "Fecha,Cantidad\n2024-03-15,3\n"))
	if err == nil {
		t.Fatal("expected error for missing Producto header")
	}
}

func TestIsInternalTableType(t *testing.T) {
	tests := []struct {
		tableType string
		want      bool
	}{
		{"SALON", false},
		{"DELIVERY", false},
		{"INVITACION", true},
		{"consumo personal", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsInternalTableType(tt.tableType); got != tt.want {
			t.Errorf("IsInternalTableType(%q) = %v, want %v", tt.tableType, got, tt.want)
		}
	}
}

func TestParsePurchasesCSV(t *testing.T) {
	csvData := "\xEF\xBB\xBFProducto,Nombre Unificado,Proveedor,Fecha,Cantidad,Unidad,Costo Unitario\n" +
		"Harina 0000 x25,Harina,Molinos Sur,2024-03-01,25,KG,120\n" +
		"Aceite girasol,,Distribuidora Norte,01/03/2024,5,lt,800\n" +
		"Sin cantidad,Nada,X,2024-03-01,,kg,10\n"

	records, err := ParsePurchasesCSV(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("ParsePurchasesCSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2: %+v", len(records), records)
	}
	if records[0].CanonicalName != "Harina" || records[0].Unit != "kg" {
		t.Errorf("first record = %+v", records[0])
	}
	if records[1].PurchaseDate != "2024-03-01" {
		t.Errorf("slash date normalized to %q, want 2024-03-01", records[1].PurchaseDate)
	}
	if records[1].Unit != "l" {
		t.Errorf("unit normalized to %q, want l", records[1].Unit)
	}
}

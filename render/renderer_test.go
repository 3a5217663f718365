package render

import (
	"strings"
	"testing"

	"github.com/Martin4287/BalmoralCost/model"
)

func TestRenderLedgerTableHTML(t *testing.T) {
	ledger := model.StockLedger{
		IngredientName: "Tomate",
		Unit:           "kg",
		FinalBalance:   4,
		Movements: []model.StockMovement{
			{Date: "2025-05-10", Type: model.MovementPurchase, Description: "Compra a Verdulería Sur", Debit: 10, Balance: 10},
			{Date: "2025-05-11", Type: model.MovementSaleConsumption, Description: `Venta de 3x "Ensalada <mixta>"`, Credit: 6, Balance: 4},
		},
	}

	html := RenderLedgerTableHTML(ledger)

	for _, want := range []string{
		"Compra a Verdulería Sur",
		"2025-05-10",
		"10.00 kg",
		"4.00 kg",
		">Compra<",
		">Venta<",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered table missing %q", want)
		}
	}

	if strings.Contains(html, "<mixta>") {
		t.Errorf("description was not HTML-escaped")
	}
	if !strings.Contains(html, "&lt;mixta&gt;") {
		t.Errorf("escaped description not found")
	}
}

func TestRenderLedgerTableHTMLEmpty(t *testing.T) {
	html := RenderLedgerTableHTML(model.StockLedger{IngredientName: "Harina", Unit: "kg"})
	if !strings.Contains(html, "Sin movimientos registrados.") {
		t.Errorf("empty ledger should render the placeholder row")
	}
}

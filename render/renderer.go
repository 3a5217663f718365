package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Martin4287/BalmoralCost/model"
)

// RenderLedgerTableHTML builds an HTML table body for one ingredient's
// movement history. Shared by the stock view and the inventory count view.
func RenderLedgerTableHTML(ledger model.StockLedger) string {
	var sb strings.Builder

	sb.WriteString(`
    <thead>
        <tr>
            <th class="col-date">Fecha</th>
            <th class="col-type">Tipo</th>
            <th class="col-desc">Descripción</th>
            <th class="col-debit">Entrada</th>
            <th class="col-credit">Salida</th>
            <th class="col-balance">Saldo</th>
        </tr>
    </thead>`)

	sb.WriteString(`<tbody>`)
	if len(ledger.Movements) == 0 {
		sb.WriteString(`<tr><td colspan="6">Sin movimientos registrados.</td></tr>`)
	} else {
		for _, mv := range ledger.Movements {
			var typeText string
			switch mv.Type {
			case model.MovementPurchase:
				typeText = "Compra"
			case model.MovementSaleConsumption:
				typeText = "Venta"
			case model.MovementInternalConsumption:
				typeText = "Consumo interno"
			case model.MovementWithdrawal:
				typeText = "Retiro"
			default:
				typeText = string(mv.Type)
			}

			sb.WriteString(`<tr>`)
			sb.WriteString(fmt.Sprintf(`<td class="center col-date">%s</td>`, mv.Date))
			sb.WriteString(fmt.Sprintf(`<td class="center col-type">%s</td>`, typeText))
			sb.WriteString(fmt.Sprintf(`<td class="col-desc">%s</td>`, escape(mv.Description)))
			sb.WriteString(fmt.Sprintf(`<td class="right col-debit">%s</td>`, formatQty(mv.Debit, ledger.Unit)))
			sb.WriteString(fmt.Sprintf(`<td class="right col-credit">%s</td>`, formatQty(mv.Credit, ledger.Unit)))
			sb.WriteString(fmt.Sprintf(`<td class="right col-balance">%s %s</td>`, strconv.FormatFloat(mv.Balance, 'f', 2, 64), ledger.Unit))
			sb.WriteString(`</tr>`)
		}
	}
	sb.WriteString(`</tbody>`)

	return sb.String()
}

func formatQty(v float64, unit string) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + " " + unit
}

func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

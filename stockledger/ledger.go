package stockledger

import (
	"fmt"
	"sort"

	"github.com/Martin4287/BalmoralCost/costing"
	"github.com/Martin4287/BalmoralCost/model"
)

// Build turns the full record snapshot into one chronological ledger per
// canonical ingredient. Dates are YYYY-MM-DD strings and compare lexically.
// asOf, when non-empty, drops every movement dated after it; this is how
// "theoretical stock as of day X" is produced for physical inventory counts.
//
// Nothing here fails: a sale whose product name matches no recipe, or a
// recipe line pointing at a deleted purchase record, simply contributes no
// movements. One bad record must never block the rest of the report.
func Build(
	recipes []model.Recipe,
	ingredients []model.Ingredient,
	sales []model.ProductSale,
	internalConsumptions []model.ProductSale,
	withdrawals []model.Withdrawal,
	asOf string,
) []model.StockLedger {
	movements := make(map[string][]model.StockMovement)
	batch := costing.NewBatch(ingredients, recipes)

	// Purchases debit the ledger.
	for _, ing := range ingredients {
		name := ing.Canonical()
		supplier := ing.Supplier
		if supplier == "" {
			supplier = "N/A"
		}
		movements[name] = append(movements[name], model.StockMovement{
			Date:        ing.PurchaseDate,
			Type:        model.MovementPurchase,
			Description: fmt.Sprintf("Compra a %s", supplier),
			Debit:       ing.PurchaseQuantity,
		})
	}

	// Sales credit every ingredient of the matched recipe's breakdown.
	appendConsumption(movements, batch, sales, model.MovementSaleConsumption, "Venta de")

	// Internal consumption (staff meals, comps, control tables) likewise.
	appendConsumption(movements, batch, internalConsumptions, model.MovementInternalConsumption, "Consumo interno de")

	// Withdrawals name the ingredient directly; no decomposition.
	for _, wd := range withdrawals {
		description := fmt.Sprintf("Retiro por %s", wd.Person)
		if wd.Observations != "" {
			description += fmt.Sprintf(" (%s)", wd.Observations)
		}
		for _, item := range wd.Items {
			movements[item.IngredientName] = append(movements[item.IngredientName], model.StockMovement{
				Date:        wd.Date,
				Type:        model.MovementWithdrawal,
				Description: description,
				Credit:      item.Quantity,
			})
		}
	}

	ledgers := make([]model.StockLedger, 0, len(movements))
	for name, list := range movements {
		if asOf != "" {
			kept := list[:0]
			for _, m := range list {
				if m.Date <= asOf {
					kept = append(kept, m)
				}
			}
			list = kept
		}

		// Stable, so same-day movements keep purchase/sale/internal/withdrawal
		// insertion order. The displayed balance sequence depends on it.
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Date < list[j].Date
		})

		var balance float64
		for i := range list {
			balance += list[i].Debit - list[i].Credit
			list[i].Balance = balance
		}

		ledgers = append(ledgers, model.StockLedger{
			IngredientName: name,
			Unit:           representativeUnit(ingredients, name),
			FinalBalance:   balance,
			Movements:      list,
		})
	}

	sort.Slice(ledgers, func(i, j int) bool {
		return ledgers[i].IngredientName < ledgers[j].IngredientName
	})
	return ledgers
}

func appendConsumption(
	movements map[string][]model.StockMovement,
	batch *costing.Batch,
	events []model.ProductSale,
	movementType model.MovementType,
	verb string,
) {
	for _, ev := range events {
		recipe, ok := batch.RecipeByName(ev.Name)
		if !ok {
			continue
		}
		for name, perPortion := range batch.PortionIngredients(recipe) {
			movements[name] = append(movements[name], model.StockMovement{
				Date:        ev.Date,
				Type:        movementType,
				Description: fmt.Sprintf("%s %gx %q", verb, ev.Quantity, ev.Name),
				Credit:      perPortion * ev.Quantity,
			})
		}
	}
}

// representativeUnit picks the unit of the first purchase record carrying the
// canonical name. Units are never converted between purchases; a kg/g mix
// under one canonical name is a data-entry problem surfaced elsewhere.
func representativeUnit(ingredients []model.Ingredient, canonical string) string {
	for _, ing := range ingredients {
		if ing.Canonical() == canonical {
			return ing.Unit
		}
	}
	return "unidad"
}

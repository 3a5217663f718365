package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/Martin4287/BalmoralCost/costing"
	"github.com/Martin4287/BalmoralCost/model"
	"github.com/Martin4287/BalmoralCost/stockledger"
)

type processedSale struct {
	name          string
	quantity      float64
	profitPerUnit float64
	totalProfit   float64
	margin        float64
	category      string
}

// Build computes the dashboard from one full snapshot. The price list wins
// over the recipe's own sale price when both exist, and VAT is loaded onto
// cost (not price) before margins, which is how the house reads its numbers.
func Build(
	recipes []model.Recipe,
	ingredients []model.Ingredient,
	sales []model.ProductSale,
	internalConsumptions []model.ProductSale,
	prices []model.ProductPrice,
	withdrawals []model.Withdrawal,
	lowStockSettings model.LowStockSettings,
	vatRate float64,
) model.DashboardData {
	batch := costing.NewBatch(ingredients, recipes)

	priceByName := make(map[string]float64, len(prices))
	for _, p := range prices {
		priceByName[p.Name] = p.SalePrice
	}

	type recipeData struct {
		cost     float64
		price    float64
		category string
	}
	dataByName := make(map[string]recipeData, len(recipes))
	for _, r := range recipes {
		cost := batch.CostPerServing(r)
		price := r.SalePrice
		if listed, ok := priceByName[r.Name]; ok {
			price = listed
		}
		dataByName[r.Name] = recipeData{cost: cost, price: price, category: r.Category}
	}

	// Cover charges are summarised on their own card, not analysed as dishes.
	var cubiertosQty float64
	var regularSales []model.ProductSale
	for _, s := range sales {
		lower := strings.ToLower(s.Name)
		if strings.Contains(lower, "cubierto") {
			if strings.Contains(lower, "cubierto almuerzo") || strings.Contains(lower, "cubierto cena") {
				cubiertosQty += s.Quantity
			}
			continue
		}
		regularSales = append(regularSales, s)
	}
	var cubiertosSale *model.ProductSale
	if cubiertosQty > 0 {
		cubiertosSale = &model.ProductSale{
			ID:       "cubiertos-summary",
			Date:     time.Now().Format("2006-01-02"),
			Name:     "Cubiertos",
			Quantity: cubiertosQty,
		}
	}

	var processed []processedSale
	for _, s := range regularSales {
		data, ok := dataByName[s.Name]
		if !ok {
			continue
		}
		costWithVAT := data.cost * (1 + vatRate)
		profitPerUnit := data.price - costWithVAT
		var margin float64
		if data.price > 0 {
			margin = profitPerUnit / data.price * 100
		}
		processed = append(processed, processedSale{
			name:          s.Name,
			quantity:      s.Quantity,
			profitPerUnit: profitPerUnit,
			totalProfit:   profitPerUnit * s.Quantity,
			margin:        margin,
			category:      data.category,
		})
	}

	topSelling := make([]model.TopSellingItem, 0, 10)
	for _, item := range topN(processed, 10, func(a, b processedSale) bool { return a.quantity > b.quantity }) {
		topSelling = append(topSelling, model.TopSellingItem{Name: item.name, Quantity: item.quantity})
	}

	var marginCandidates []processedSale
	for _, item := range processed {
		if item.margin < 100 {
			marginCandidates = append(marginCandidates, item)
		}
	}
	mostProfitable := make([]model.MostProfitableItem, 0, 10)
	for _, item := range topN(marginCandidates, 10, func(a, b processedSale) bool { return a.margin > b.margin }) {
		mostProfitable = append(mostProfitable, model.MostProfitableItem{Name: item.name, Margin: item.margin})
	}

	salesForce := make([]model.SalesForceItem, 0, 10)
	for _, item := range topN(processed, 10, func(a, b processedSale) bool { return a.totalProfit > b.totalProfit }) {
		salesForce = append(salesForce, model.SalesForceItem{Name: item.name, Force: item.totalProfit})
	}

	engineering := menuEngineering(processed)

	internalTop := make([]model.ProductSale, len(internalConsumptions))
	copy(internalTop, internalConsumptions)
	sort.SliceStable(internalTop, func(i, j int) bool { return internalTop[i].Quantity > internalTop[j].Quantity })
	if len(internalTop) > 10 {
		internalTop = internalTop[:10]
	}

	var lowStockItems []model.LowStockItem
	for _, ledger := range stockledger.Build(recipes, ingredients, sales, internalConsumptions, withdrawals, "") {
		threshold, ok := lowStockSettings[ledger.IngredientName]
		if !ok {
			continue
		}
		if ledger.FinalBalance <= threshold {
			lowStockItems = append(lowStockItems, model.LowStockItem{
				Name:      ledger.IngredientName,
				Balance:   ledger.FinalBalance,
				Threshold: threshold,
				Unit:      ledger.Unit,
			})
		}
	}

	return model.DashboardData{
		TopSelling:                  topSelling,
		MostProfitable:              mostProfitable,
		SalesForce:                  salesForce,
		MenuEngineering:             engineering,
		CubiertosSale:               cubiertosSale,
		InternalConsumptionsSummary: internalTop,
		LowStockItems:               lowStockItems,
	}
}

// menuEngineering places each analysed dish in a popularity/profitability
// quadrant relative to the averages across analysed dishes.
func menuEngineering(processed []processedSale) model.MenuEngineeringData {
	var source []processedSale
	for _, item := range processed {
		if item.category != "Sin Analizar" && item.margin < 100 {
			source = append(source, item)
		}
	}

	var totalPopularity, totalProfitability float64
	for _, item := range source {
		totalPopularity += item.quantity
		totalProfitability += item.profitPerUnit
	}
	var avgPopularity, avgProfitability float64
	if totalPopularity > 0 {
		avgPopularity = totalPopularity / float64(len(source))
	}
	if len(source) > 0 {
		avgProfitability = totalProfitability / float64(len(source))
	}

	items := make([]model.MenuEngineeringItem, 0, len(source))
	for _, item := range source {
		highPopularity := item.quantity >= avgPopularity
		highProfitability := item.profitPerUnit >= avgProfitability

		var quadrant string
		switch {
		case highPopularity && highProfitability:
			quadrant = model.QuadrantEstrella
		case !highPopularity && highProfitability:
			quadrant = model.QuadrantPuzzle
		case highPopularity && !highProfitability:
			quadrant = model.QuadrantCaballo
		default:
			quadrant = model.QuadrantPerro
		}

		items = append(items, model.MenuEngineeringItem{
			Name:          item.name,
			Popularity:    item.quantity,
			Profitability: item.profitPerUnit,
			Margin:        item.margin,
			Quadrant:      quadrant,
		})
	}

	return model.MenuEngineeringData{
		Items:            items,
		AvgPopularity:    avgPopularity,
		AvgProfitability: avgProfitability,
	}
}

func topN(items []processedSale, n int, less func(a, b processedSale) bool) []processedSale {
	sorted := make([]processedSale, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

package dashboard

import (
	"math"
	"testing"

	"github.com/Martin4287/BalmoralCost/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func fixture() ([]model.Recipe, []model.Ingredient, []model.ProductSale) {
	ingredients := []model.Ingredient{
		{ID: "i1", Name: "Carne picada", CanonicalName: "Carne", PurchaseDate: "2024-03-01", PurchaseQuantity: 10, Unit: "kg", CostPerUnit: 100},
		{ID: "i2", Name: "Lechuga", PurchaseDate: "2024-03-01", PurchaseQuantity: 5, Unit: "kg", CostPerUnit: 10},
	}
	recipes := []model.Recipe{
		{
			ID: "r1", Name: "Milanesa", Category: "Plato Principal", Yield: 1, SalePrice: 1000,
			Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 0.5, Unit: "kg"}},
		},
		{
			ID: "r2", Name: "Ensalada", Category: "Ensalada", Yield: 1, SalePrice: 500,
			Ingredients: []model.RecipeIngredient{{IngredientID: "i2", Quantity: 0.2, Unit: "kg"}},
		},
	}
	sales := []model.ProductSale{
		{ID: "s1", Date: "2024-03-02", Name: "Milanesa", Quantity: 10},
		{ID: "s2", Date: "2024-03-02", Name: "Ensalada", Quantity: 2},
		{ID: "s3", Date: "2024-03-02", Name: "Cubierto Almuerzo", Quantity: 12},
	}
	return recipes, ingredients, sales
}

func TestBuildMarginsWithVAT(t *testing.T) {
	recipes, ingredients, sales := fixture()
	data := Build(recipes, ingredients, sales, nil, nil, nil, nil, 0.21)

	// Milanesa: cost 50, with VAT 60.5, profit 939.5, margin 93.95%.
	found := false
	for _, item := range data.MostProfitable {
		if item.Name == "Milanesa" {
			found = true
			if !almostEqual(item.Margin, 93.95) {
				t.Errorf("Milanesa margin = %v, want 93.95", item.Margin)
			}
		}
	}
	if !found {
		t.Error("Milanesa missing from most profitable")
	}
}

func TestBuildPriceListOverridesRecipePrice(t *testing.T) {
	recipes, ingredients, sales := fixture()
	prices := []model.ProductPrice{{Name: "Milanesa", SalePrice: 2000}}
	data := Build(recipes, ingredients, sales, nil, prices, nil, nil, 0)

	for _, item := range data.SalesForce {
		if item.Name == "Milanesa" {
			// profit (2000 - 50) * 10 sold.
			if !almostEqual(item.Force, 19500) {
				t.Errorf("Milanesa sales force = %v, want 19500", item.Force)
			}
			return
		}
	}
	t.Error("Milanesa missing from sales force")
}

func TestBuildCubiertosSplitOut(t *testing.T) {
	recipes, ingredients, sales := fixture()
	data := Build(recipes, ingredients, sales, nil, nil, nil, nil, 0.21)

	if data.CubiertosSale == nil || data.CubiertosSale.Quantity != 12 {
		t.Fatalf("cubiertos summary = %+v, want quantity 12", data.CubiertosSale)
	}
	for _, item := range data.TopSelling {
		if item.Name == "Cubierto Almuerzo" {
			t.Error("cover charge leaked into top selling")
		}
	}
}

func TestBuildTopSellingOrder(t *testing.T) {
	recipes, ingredients, sales := fixture()
	data := Build(recipes, ingredients, sales, nil, nil, nil, nil, 0.21)

	if len(data.TopSelling) != 2 {
		t.Fatalf("top selling = %d entries, want 2", len(data.TopSelling))
	}
	if data.TopSelling[0].Name != "Milanesa" || data.TopSelling[1].Name != "Ensalada" {
		t.Errorf("top selling order = %+v", data.TopSelling)
	}
}

func TestBuildMenuEngineeringQuadrants(t *testing.T) {
	recipes, ingredients, sales := fixture()
	data := Build(recipes, ingredients, sales, nil, nil, nil, nil, 0.21)

	quadrants := make(map[string]string)
	for _, item := range data.MenuEngineering.Items {
		quadrants[item.Name] = item.Quadrant
	}
	// Milanesa sells more and earns more per unit than average; Ensalada the opposite.
	if quadrants["Milanesa"] != model.QuadrantEstrella {
		t.Errorf("Milanesa quadrant = %q, want %q", quadrants["Milanesa"], model.QuadrantEstrella)
	}
	if quadrants["Ensalada"] != model.QuadrantPerro {
		t.Errorf("Ensalada quadrant = %q, want %q", quadrants["Ensalada"], model.QuadrantPerro)
	}
}

func TestBuildLowStockItems(t *testing.T) {
	recipes, ingredients, sales := fixture()
	settings := model.LowStockSettings{"Carne": 6}
	data := Build(recipes, ingredients, sales, nil, nil, nil, settings, 0.21)

	// 10 purchased, 5 consumed by sales -> balance 5 <= threshold 6.
	if len(data.LowStockItems) != 1 {
		t.Fatalf("low stock items = %+v, want 1 entry", data.LowStockItems)
	}
	item := data.LowStockItems[0]
	if item.Name != "Carne" || !almostEqual(item.Balance, 5) || item.Threshold != 6 {
		t.Errorf("low stock item = %+v", item)
	}
}

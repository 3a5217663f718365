package costing

import (
	"math"
	"testing"

	"github.com/Martin4287/BalmoralCost/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func ing(id, name, canonical string, cost float64) model.Ingredient {
	return model.Ingredient{ID: id, Name: name, CanonicalName: canonical, Unit: "kg", CostPerUnit: cost, PurchaseQuantity: 10}
}

func TestCostPerServingEmptyRecipe(t *testing.T) {
	r := model.Recipe{ID: "r1", Name: "Agua", Yield: 4}
	b := NewBatch(nil, []model.Recipe{r})
	if got := b.CostPerServing(r); got != 0 {
		t.Errorf("empty recipe cost = %v, want 0", got)
	}
}

func TestCostPerServingZeroYield(t *testing.T) {
	flour := ing("i1", "Harina 0000", "Harina", 100)
	for _, yield := range []float64{0, -2} {
		r := model.Recipe{
			ID: "r1", Name: "Pan", Yield: yield,
			Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 2, Unit: "kg"}},
		}
		b := NewBatch([]model.Ingredient{flour}, []model.Recipe{r})
		if got := b.CostPerServing(r); got != 0 {
			t.Errorf("yield %v: cost = %v, want 0", yield, got)
		}
	}
}

func TestCostPerServingWaste(t *testing.T) {
	tests := []struct {
		name  string
		waste float64
		want  float64
	}{
		{"no waste", 0, 200},
		{"half wasted doubles the line", 50, 400},
		{"full waste zeroes the line", 100, 0},
		{"over full waste zeroes the line", 120, 0},
	}
	flour := ing("i1", "Harina 0000", "Harina", 100)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := model.Recipe{
				ID: "r1", Name: "Pan", Yield: 1,
				Ingredients: []model.RecipeIngredient{
					{IngredientID: "i1", Quantity: 2, Unit: "kg", WastePercentage: tt.waste},
				},
			}
			b := NewBatch([]model.Ingredient{flour}, []model.Recipe{r})
			if got := b.CostPerServing(r); !almostEqual(got, tt.want) {
				t.Errorf("waste %v: cost = %v, want %v", tt.waste, got, tt.want)
			}
		})
	}
}

func TestCostPerServingMissingIngredientContributesZero(t *testing.T) {
	r := model.Recipe{
		ID: "r1", Name: "Pan", Yield: 1,
		Ingredients: []model.RecipeIngredient{{IngredientID: "nope", Quantity: 2, Unit: "kg"}},
	}
	b := NewBatch(nil, []model.Recipe{r})
	if got := b.CostPerServing(r); got != 0 {
		t.Errorf("missing ingredient cost = %v, want 0", got)
	}
}

func TestCostPerServingNestedSubRecipes(t *testing.T) {
	tomato := ing("i1", "Tomate perita", "Tomate", 10)
	// One batch of salsa: 3 kg tomato, yields 6 servings -> 5 per serving.
	salsa := model.Recipe{
		ID: "salsa", Name: "Salsa", Yield: 6,
		Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 3, Unit: "kg"}},
	}
	// One batch of pasta uses 2 salsa servings, yields 2 -> 5 per serving.
	pasta := model.Recipe{
		ID: "pasta", Name: "Pasta", Yield: 2,
		SubRecipes: []model.SubRecipeItem{{RecipeID: "salsa", Quantity: 2}},
	}
	b := NewBatch([]model.Ingredient{tomato}, []model.Recipe{salsa, pasta})
	if got := b.CostPerServing(pasta); !almostEqual(got, 5) {
		t.Errorf("pasta cost = %v, want 5", got)
	}
}

func TestCostPerServingSelfReferenceTerminates(t *testing.T) {
	flour := ing("i1", "Harina 0000", "Harina", 100)
	r := model.Recipe{
		ID: "r1", Name: "Masa madre", Yield: 1,
		Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 1, Unit: "kg"}},
		SubRecipes:  []model.SubRecipeItem{{RecipeID: "r1", Quantity: 1}},
	}
	b := NewBatch([]model.Ingredient{flour}, []model.Recipe{r})
	got := b.CostPerServing(r)
	if got < 0 || math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("self-referential cost = %v, want finite non-negative", got)
	}
	// The cyclic edge contributes zero, so only the flour remains.
	if !almostEqual(got, 100) {
		t.Errorf("self-referential cost = %v, want 100", got)
	}
}

func TestCostPerServingMutualReferenceTerminates(t *testing.T) {
	flour := ing("i1", "Harina 0000", "Harina", 100)
	a := model.Recipe{
		ID: "a", Name: "A", Yield: 1,
		Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 1, Unit: "kg"}},
		SubRecipes:  []model.SubRecipeItem{{RecipeID: "b", Quantity: 1}},
	}
	bb := model.Recipe{
		ID: "b", Name: "B", Yield: 1,
		SubRecipes: []model.SubRecipeItem{{RecipeID: "a", Quantity: 1}},
	}
	batch := NewBatch([]model.Ingredient{flour}, []model.Recipe{a, bb})
	got := batch.CostPerServing(a)
	if got < 0 || math.IsInf(got, 0) || math.IsNaN(got) {
		t.Fatalf("mutual-referential cost = %v, want finite non-negative", got)
	}
	if !almostEqual(got, 100) {
		t.Errorf("mutual-referential cost = %v, want 100 (cyclic edge contributes 0)", got)
	}
}

func TestDirectCostOverrideSkipsRecursion(t *testing.T) {
	override := 7.0
	// cyclic is deliberately self-referential; the override must keep us out.
	cyclic := model.Recipe{
		ID: "cyc", Name: "Cyc", Yield: 1,
		SubRecipes: []model.SubRecipeItem{{RecipeID: "cyc", Quantity: 1}},
	}
	parent := model.Recipe{
		ID: "p", Name: "P", Yield: 1,
		SubRecipes: []model.SubRecipeItem{{RecipeID: "cyc", Quantity: 3, DirectCost: &override}},
	}
	b := NewBatch(nil, []model.Recipe{cyclic, parent})
	if got := b.CostPerServing(parent); !almostEqual(got, 21) {
		t.Errorf("override cost = %v, want 21", got)
	}
	if b.costWalks != 1 {
		t.Errorf("cost walks = %d, want 1 (sub-recipe must not be resolved)", b.costWalks)
	}
}

func TestCostPerServingMemoized(t *testing.T) {
	flour := ing("i1", "Harina 0000", "Harina", 100)
	salsa := model.Recipe{
		ID: "salsa", Name: "Salsa", Yield: 1,
		Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 1, Unit: "kg"}},
	}
	pasta := model.Recipe{
		ID: "pasta", Name: "Pasta", Yield: 1,
		SubRecipes: []model.SubRecipeItem{{RecipeID: "salsa", Quantity: 2}},
	}
	b := NewBatch([]model.Ingredient{flour}, []model.Recipe{salsa, pasta})

	first := b.CostPerServing(salsa)
	walks := b.costWalks
	second := b.CostPerServing(salsa)
	if first != second {
		t.Errorf("repeated resolution differs: %v then %v", first, second)
	}
	if b.costWalks != walks {
		t.Errorf("second direct resolution re-traversed the recipe")
	}
	// Resolving the parent must reuse the cached sub-recipe cost too.
	b.CostPerServing(pasta)
	if b.costWalks != walks+1 {
		t.Errorf("resolving parent re-traversed the cached sub-recipe: walks=%d", b.costWalks)
	}
}

func TestPortionIngredientsBasic(t *testing.T) {
	flour := ing("i1", "Harina 0000", "Harina", 100)
	oil := ing("i2", "Aceite girasol x5", "Aceite", 50)
	r := model.Recipe{
		ID: "r1", Name: "Pan", Yield: 4,
		Ingredients: []model.RecipeIngredient{
			{IngredientID: "i1", Quantity: 2, Unit: "kg"},
			{IngredientID: "i2", Quantity: 1, Unit: "l", WastePercentage: 50},
			{IngredientID: "missing", Quantity: 9, Unit: "kg"},
		},
	}
	b := NewBatch([]model.Ingredient{flour, oil}, []model.Recipe{r})
	got := b.PortionIngredients(r)
	if !almostEqual(got["Harina"], 0.5) {
		t.Errorf("Harina per portion = %v, want 0.5", got["Harina"])
	}
	// 1 l at 50% waste -> 2 l per batch -> 0.5 per portion.
	if !almostEqual(got["Aceite"], 0.5) {
		t.Errorf("Aceite per portion = %v, want 0.5", got["Aceite"])
	}
	if len(got) != 2 {
		t.Errorf("portion map has %d entries, want 2: %v", len(got), got)
	}
}

func TestPortionIngredientsMergesCanonicalNames(t *testing.T) {
	a := ing("i1", "Harina 0000", "Harina", 100)
	c := ing("i2", "Harina 000 x25", "Harina", 90)
	r := model.Recipe{
		ID: "r1", Name: "Pan", Yield: 1,
		Ingredients: []model.RecipeIngredient{
			{IngredientID: "i1", Quantity: 2, Unit: "kg"},
			{IngredientID: "i2", Quantity: 3, Unit: "kg"},
		},
	}
	b := NewBatch([]model.Ingredient{a, c}, []model.Recipe{r})
	got := b.PortionIngredients(r)
	if !almostEqual(got["Harina"], 5) {
		t.Errorf("merged Harina = %v, want 5", got["Harina"])
	}
}

func TestPortionIngredientsSubRecipeScaling(t *testing.T) {
	tomato := ing("i1", "Tomate perita", "Tomate", 10)
	salsa := model.Recipe{
		ID: "salsa", Name: "Salsa", Yield: 6,
		Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 3, Unit: "kg"}},
	}
	pasta := model.Recipe{
		ID: "pasta", Name: "Pasta", Yield: 2,
		SubRecipes: []model.SubRecipeItem{{RecipeID: "salsa", Quantity: 2}},
	}
	b := NewBatch([]model.Ingredient{tomato}, []model.Recipe{salsa, pasta})
	got := b.PortionIngredients(pasta)
	// 0.5 kg per salsa serving * 2 servings / yield 2 = 0.5 kg per pasta serving.
	if !almostEqual(got["Tomate"], 0.5) {
		t.Errorf("Tomate per pasta portion = %v, want 0.5", got["Tomate"])
	}
}

func TestPortionIngredientsCycleYieldsPartialBreakdown(t *testing.T) {
	flour := ing("i1", "Harina 0000", "Harina", 100)
	r := model.Recipe{
		ID: "r1", Name: "Masa madre", Yield: 2,
		Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 4, Unit: "kg"}},
		SubRecipes:  []model.SubRecipeItem{{RecipeID: "r1", Quantity: 1}},
	}
	b := NewBatch([]model.Ingredient{flour}, []model.Recipe{r})
	got := b.PortionIngredients(r)
	if !almostEqual(got["Harina"], 2) {
		t.Errorf("cyclic breakdown Harina = %v, want 2 (cyclic edge contributes nothing)", got["Harina"])
	}
}

func TestPortionIngredientsZeroYield(t *testing.T) {
	flour := ing("i1", "Harina 0000", "Harina", 100)
	r := model.Recipe{
		ID: "r1", Name: "Pan", Yield: 0,
		Ingredients: []model.RecipeIngredient{{IngredientID: "i1", Quantity: 2, Unit: "kg"}},
	}
	b := NewBatch([]model.Ingredient{flour}, []model.Recipe{r})
	if got := b.PortionIngredients(r); len(got) != 0 {
		t.Errorf("zero-yield breakdown = %v, want empty", got)
	}
}

package costing

import (
	"github.com/Martin4287/BalmoralCost/model"
)

// Batch memoizes cost and per-portion resolution over one snapshot of the
// ingredient and recipe collections. Results are cached by recipe id for the
// life of the Batch, so build a fresh Batch whenever the collections change;
// there is no per-entry invalidation. A Batch is not safe for concurrent use;
// give each request its own.
type Batch struct {
	ingredientsByID map[string]model.Ingredient
	recipesByID     map[string]model.Recipe
	recipesByName   map[string]model.Recipe

	costs    map[string]float64
	portions map[string]map[string]float64

	costWalks int // full cost traversals, counted for tests
}

func NewBatch(ingredients []model.Ingredient, recipes []model.Recipe) *Batch {
	b := &Batch{
		ingredientsByID: make(map[string]model.Ingredient, len(ingredients)),
		recipesByID:     make(map[string]model.Recipe, len(recipes)),
		recipesByName:   make(map[string]model.Recipe, len(recipes)),
		costs:           make(map[string]float64),
		portions:        make(map[string]map[string]float64),
	}
	for _, ing := range ingredients {
		b.ingredientsByID[ing.ID] = ing
	}
	for _, r := range recipes {
		b.recipesByID[r.ID] = r
		if _, ok := b.recipesByName[r.Name]; !ok {
			b.recipesByName[r.Name] = r
		}
	}
	return b
}

// RecipeByName looks a recipe up by its exact display name. Sales and
// internal consumptions are matched to recipes this way.
func (b *Batch) RecipeByName(name string) (model.Recipe, bool) {
	r, ok := b.recipesByName[name]
	return r, ok
}

// CostPerServing resolves the cost of one serving of r, descending into
// sub-recipes. Missing ingredient or sub-recipe references contribute zero, a
// waste percentage of 100 or more zeroes that line, and a yield of zero or
// less makes the whole cost zero. A circular reference chain finds the
// placeholder written below and contributes zero instead of recursing
// forever; that undercount is accepted, cycles are a data-entry defect.
func (b *Batch) CostPerServing(r model.Recipe) float64 {
	if c, ok := b.costs[r.ID]; ok {
		return c
	}
	// Placeholder first, so a cycle through sub-recipes terminates.
	b.costs[r.ID] = 0
	b.costWalks++

	var total float64
	for _, line := range r.Ingredients {
		ing, ok := b.ingredientsByID[line.IngredientID]
		if !ok || line.Quantity <= 0 {
			continue
		}
		wasteFactor := 1 - line.WastePercentage/100
		if wasteFactor > 0 {
			total += ing.CostPerUnit * line.Quantity / wasteFactor
		}
	}

	for _, sub := range r.SubRecipes {
		if sub.DirectCost != nil {
			total += *sub.DirectCost * sub.Quantity
			continue
		}
		subRecipe, ok := b.recipesByID[sub.RecipeID]
		if !ok {
			continue
		}
		total += b.CostPerServing(subRecipe) * sub.Quantity
	}

	var perServing float64
	if r.Yield > 0 {
		perServing = total / r.Yield
	}
	b.costs[r.ID] = perServing
	return perServing
}

// PortionIngredients resolves the physical quantity of every canonical
// ingredient consumed by one serving of r, waste included. It mirrors
// CostPerServing: quantities for a full batch are accumulated first (direct
// lines plus recursively decomposed sub-recipes scaled by servings consumed),
// then divided by yield. The placeholder for cycles is an empty map.
//
// Unlike the cost side, a waste percentage of 100 or more leaves the raw
// quantity in place rather than zeroing the line.
func (b *Batch) PortionIngredients(r model.Recipe) map[string]float64 {
	if m, ok := b.portions[r.ID]; ok {
		return m
	}
	b.portions[r.ID] = map[string]float64{}

	forYield := make(map[string]float64)
	for _, line := range r.Ingredients {
		ing, ok := b.ingredientsByID[line.IngredientID]
		if !ok {
			continue
		}
		consumed := line.Quantity
		if wasteFactor := 1 - line.WastePercentage/100; wasteFactor > 0 {
			consumed = line.Quantity / wasteFactor
		}
		forYield[ing.Canonical()] += consumed
	}

	for _, sub := range r.SubRecipes {
		subRecipe, ok := b.recipesByID[sub.RecipeID]
		if !ok {
			continue
		}
		for name, perPortion := range b.PortionIngredients(subRecipe) {
			forYield[name] += perPortion * sub.Quantity
		}
	}

	perPortion := make(map[string]float64)
	if r.Yield > 0 {
		for name, qty := range forYield {
			perPortion[name] = qty / r.Yield
		}
	}
	b.portions[r.ID] = perPortion
	return perPortion
}

package model

// RecipeIngredient is one ingredient line of a recipe. It references a
// specific purchase record by id, and its quantity is per full batch.
type RecipeIngredient struct {
	IngredientID    string  `db:"ingredient_id" json:"ingredientId"`
	Quantity        float64 `db:"quantity" json:"quantity"`
	Unit            string  `db:"unit" json:"unit"`
	WastePercentage float64 `db:"waste_percentage" json:"wastePercentage,omitempty"`
}

// SubRecipeItem references another recipe. Quantity is the number of the
// sub-recipe's servings consumed per full batch of the parent. A non-nil
// DirectCost is a fixed per-serving cost that skips recursive resolution.
type SubRecipeItem struct {
	RecipeID   string   `db:"recipe_id" json:"recipeId"`
	Quantity   float64  `db:"quantity" json:"quantity"`
	DirectCost *float64 `db:"direct_cost" json:"directCost,omitempty"`
}

type Recipe struct {
	ID          string             `db:"id" json:"id"`
	Name        string             `db:"name" json:"name"`
	Category    string             `db:"category" json:"category"`
	Yield       float64            `db:"yield" json:"yield"`
	SalePrice   float64            `db:"sale_price" json:"salePrice"`
	Notes       string             `db:"notes" json:"notes,omitempty"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	SubRecipes  []SubRecipeItem    `json:"subRecipes"`
}

// RecipeHistoryEntry is a snapshot of a recipe taken at save time.
type RecipeHistoryEntry struct {
	ID        string `db:"id" json:"id"`
	RecipeID  string `db:"recipe_id" json:"recipeId"`
	Timestamp string `db:"timestamp" json:"timestamp"`
	Snapshot  string `db:"snapshot" json:"-"`
	Recipe    Recipe `json:"recipeData"`
}

package database

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/Martin4287/BalmoralCost/model"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../schema.sql")
	if err != nil {
		t.Fatalf("failed to read schema.sql: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return db
}

func inTx(t *testing.T, db *sqlx.DB, fn func(tx *sqlx.Tx) error) {
	t.Helper()
	tx, err := db.Beginx()
	if err != nil {
		t.Fatalf("failed to begin tx: %v", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		t.Fatalf("tx operation failed: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

func TestIngredientRoundTrip(t *testing.T) {
	db := openTestDB(t)

	ingredients := []model.Ingredient{
		{ID: "i1", Name: "Tomate perita", CanonicalName: "Tomate", Supplier: "Verdulería Sur",
			PurchaseDate: "2025-05-10", PurchaseQuantity: 10, Unit: "kg", CostPerUnit: 800},
		{ID: "i2", Name: "Tomate redondo", CanonicalName: "Tomate",
			PurchaseDate: "2025-05-12", PurchaseQuantity: 5, Unit: "kg", CostPerUnit: 900},
	}
	inTx(t, db, func(tx *sqlx.Tx) error {
		return ReplaceAllIngredientsInTx(tx, ingredients)
	})

	got, err := GetAllIngredients(db)
	if err != nil {
		t.Fatalf("GetAllIngredients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(got))
	}
	if got[0].ID != "i1" || got[0].Canonical() != "Tomate" {
		t.Errorf("unexpected first ingredient: %+v", got[0])
	}

	// A second replace must not duplicate rows.
	inTx(t, db, func(tx *sqlx.Tx) error {
		return ReplaceAllIngredientsInTx(tx, ingredients[:1])
	})
	got, err = GetAllIngredients(db)
	if err != nil {
		t.Fatalf("GetAllIngredients after replace: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 ingredient after replace, got %d", len(got))
	}
}

func TestRecipeRoundTrip(t *testing.T) {
	db := openTestDB(t)

	direct := 350.0
	recipes := []model.Recipe{
		{
			ID: "r1", Name: "Milanesa napolitana", Category: "Principales", Yield: 4, SalePrice: 9500,
			Ingredients: []model.RecipeIngredient{
				{IngredientID: "i1", Quantity: 1.2, Unit: "kg", WastePercentage: 10},
				{IngredientID: "i2", Quantity: 0.3, Unit: "kg"},
			},
			SubRecipes: []model.SubRecipeItem{
				{RecipeID: "r2", Quantity: 0.5},
				{RecipeID: "r3", Quantity: 1, DirectCost: &direct},
			},
		},
		{ID: "r2", Name: "Salsa de tomate", Category: "Bases", Yield: 10},
	}
	inTx(t, db, func(tx *sqlx.Tx) error {
		return ReplaceAllRecipesInTx(tx, recipes)
	})

	got, err := GetAllRecipes(db)
	if err != nil {
		t.Fatalf("GetAllRecipes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(got))
	}

	// Ordered by name: Milanesa before Salsa.
	mila := got[0]
	if mila.ID != "r1" {
		t.Fatalf("expected r1 first, got %s", mila.ID)
	}
	if len(mila.Ingredients) != 2 || len(mila.SubRecipes) != 2 {
		t.Fatalf("unexpected line counts: %d ingredients, %d sub-recipes", len(mila.Ingredients), len(mila.SubRecipes))
	}
	if mila.Ingredients[0].IngredientID != "i1" || mila.Ingredients[0].WastePercentage != 10 {
		t.Errorf("first ingredient line lost data: %+v", mila.Ingredients[0])
	}
	if mila.SubRecipes[0].DirectCost != nil {
		t.Errorf("expected nil direct cost on first sub-recipe line")
	}
	if mila.SubRecipes[1].DirectCost == nil || *mila.SubRecipes[1].DirectCost != 350 {
		t.Errorf("direct cost lost on second sub-recipe line: %+v", mila.SubRecipes[1])
	}
}

func TestRecipeHistorySnapshot(t *testing.T) {
	db := openTestDB(t)

	rec := model.Recipe{ID: "r1", Name: "Flan casero", Yield: 8, SalePrice: 3000,
		Ingredients: []model.RecipeIngredient{{IngredientID: "i9", Quantity: 1, Unit: "l"}}}
	inTx(t, db, func(tx *sqlx.Tx) error {
		if err := AppendRecipeHistoryInTx(tx, model.RecipeHistoryEntry{
			ID: "h1", RecipeID: "r1", Timestamp: "2025-05-01T10:00:00Z", Recipe: rec,
		}); err != nil {
			return err
		}
		rec.SalePrice = 3500
		return AppendRecipeHistoryInTx(tx, model.RecipeHistoryEntry{
			ID: "h2", RecipeID: "r1", Timestamp: "2025-06-01T10:00:00Z", Recipe: rec,
		})
	})

	entries, err := GetRecipeHistory(db, "r1")
	if err != nil {
		t.Fatalf("GetRecipeHistory: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].ID != "h2" || entries[0].Recipe.SalePrice != 3500 {
		t.Errorf("unexpected newest entry: %+v", entries[0])
	}
	if entries[1].Recipe.Ingredients[0].IngredientID != "i9" {
		t.Errorf("snapshot lost ingredient lines: %+v", entries[1].Recipe)
	}
}

func TestWithdrawalSaveAndDelete(t *testing.T) {
	db := openTestDB(t)

	wd := model.Withdrawal{
		ID: "w1", Date: "2025-05-20", Person: "Mariano", Observations: "evento privado", TotalCost: 4000,
		Items: []model.WithdrawalItem{
			{IngredientID: "i1", IngredientName: "Tomate", Quantity: 5, Unit: "kg", CostPerUnit: 800, TotalCost: 4000},
		},
	}
	inTx(t, db, func(tx *sqlx.Tx) error {
		return SaveWithdrawalInTx(tx, wd)
	})

	got, err := GetAllWithdrawals(db)
	if err != nil {
		t.Fatalf("GetAllWithdrawals: %v", err)
	}
	if len(got) != 1 || len(got[0].Items) != 1 {
		t.Fatalf("unexpected withdrawals: %+v", got)
	}
	if got[0].Items[0].TotalCost != 4000 {
		t.Errorf("item cost lost: %+v", got[0].Items[0])
	}

	inTx(t, db, func(tx *sqlx.Tx) error {
		return DeleteWithdrawalInTx(tx, "w1")
	})
	got, err = GetAllWithdrawals(db)
	if err != nil {
		t.Fatalf("GetAllWithdrawals after delete: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no withdrawals after delete, got %d", len(got))
	}

	var orphan int
	if err := db.Get(&orphan, `SELECT COUNT(*) FROM withdrawal_items`); err != nil {
		t.Fatalf("count withdrawal items: %v", err)
	}
	if orphan != 0 {
		t.Errorf("expected no orphan items, got %d", orphan)
	}
}

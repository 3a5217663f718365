package main

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/automation"
	"github.com/Martin4287/BalmoralCost/dashboard"
	"github.com/Martin4287/BalmoralCost/ingredient"
	"github.com/Martin4287/BalmoralCost/inventorycount"
	"github.com/Martin4287/BalmoralCost/lowstock"
	"github.com/Martin4287/BalmoralCost/recipe"
	"github.com/Martin4287/BalmoralCost/sale"
	"github.com/Martin4287/BalmoralCost/stock"
	"github.com/Martin4287/BalmoralCost/units"
	"github.com/Martin4287/BalmoralCost/withdrawal"
)

func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB) {

	mux.HandleFunc("/api/ingredients", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ingredient.ListIngredientsHandler(dbConn)(w, r)
		case http.MethodPost:
			ingredient.SaveIngredientsHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/ingredients/import", ingredient.ImportPurchasesCSVHandler(dbConn))

	mux.HandleFunc("/api/recipes", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			recipe.ListRecipesHandler(dbConn)(w, r)
		case http.MethodPost:
			recipe.SaveRecipesHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/recipes/history/", recipe.GetRecipeHistoryHandler(dbConn))
	mux.HandleFunc("/api/recipes/cost", recipe.GetRecipeCostHandler(dbConn))

	mux.HandleFunc("/api/sales", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sale.ListSalesHandler(dbConn)(w, r)
		case http.MethodPost:
			sale.SaveSalesHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/sales/import", sale.ImportSalesCSVHandler(dbConn))
	mux.HandleFunc("/api/internal_consumptions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sale.ListInternalConsumptionsHandler(dbConn)(w, r)
		case http.MethodPost:
			sale.SaveInternalConsumptionsHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/product_prices", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sale.ListProductPricesHandler(dbConn)(w, r)
		case http.MethodPost:
			sale.SaveProductPricesHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/withdrawals", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			withdrawal.ListWithdrawalsHandler(dbConn)(w, r)
		case http.MethodPost:
			withdrawal.SaveWithdrawalHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/withdrawals/delete/", withdrawal.DeleteWithdrawalHandler(dbConn))

	mux.HandleFunc("/api/stock", stock.GetStockHandler(dbConn))
	mux.HandleFunc("/api/stock/table/", stock.GetStockTableHandler(dbConn))
	mux.HandleFunc("/api/stock/export_csv", stock.ExportStockCSVHandler(dbConn))

	mux.HandleFunc("/api/inventory_counts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			inventorycount.ListInventoryCountsHandler(dbConn)(w, r)
		case http.MethodPost:
			inventorycount.SaveInventoryCountHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/api/inventory_counts/theoretical", inventorycount.GetTheoreticalStockHandler(dbConn))

	mux.HandleFunc("/api/low_stock/settings", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			lowstock.GetSettingsHandler(dbConn)(w, r)
		case http.MethodPost:
			lowstock.SaveSettingsHandler(dbConn)(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/dashboard", dashboard.GetDashboardHandler(dbConn))

	mux.HandleFunc("/api/suppliers/list", ListSuppliersHandler(dbConn))
	mux.HandleFunc("/api/suppliers/create", CreateSupplierHandler(dbConn))
	mux.HandleFunc("/api/suppliers/delete/", DeleteSupplierHandler(dbConn))

	mux.HandleFunc("/api/config", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			GetConfigHandler()(w, r)
		case http.MethodPost:
			SaveConfigHandler()(w, r)
		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/api/units", units.GetUnitsHandler())

	mux.HandleFunc("/api/automation/portal/download", automation.DownloadPortalSalesHandler(dbConn))
}

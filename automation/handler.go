package automation

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/Martin4287/BalmoralCost/config"
	"github.com/Martin4287/BalmoralCost/sale"
)

func writeJSONError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}

// DownloadPortalSalesHandler runs the portal automation for one day
// (?date=YYYY-MM-DD, empty means the portal default) and imports the
// downloaded CSV.
func DownloadPortalSalesHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			writeJSONError(w, "Failed to load configuration: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if cfg.PortalUserID == "" || cfg.PortalPassword == "" {
			writeJSONError(w, "Portal credentials are not configured. Set them in the settings screen.", http.StatusBadRequest)
			return
		}

		saveDir := cfg.SalesFolderPath
		if saveDir == "" {
			saveDir = os.TempDir()
			log.Printf("No sales folder configured, using temp dir: %s", saveDir)
		}

		log.Println("Starting POS portal automation...")
		filePath, err := DownloadSalesCSV(cfg.PortalUserID, cfg.PortalPassword, saveDir, r.URL.Query().Get("date"))
		if err != nil {
			log.Printf("Automation Error: %v", err)
			writeJSONError(w, "Portal download error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if filePath == "NO_DATA" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{
				"status":  "no_data",
				"message": "The portal reported no sales for that date.",
			})
			return
		}

		log.Printf("Importing downloaded file: %s", filePath)
		file, err := os.Open(filePath)
		if err != nil {
			writeJSONError(w, "Failed to open downloaded file: "+err.Error(), http.StatusInternalServerError)
			return
		}
		defer file.Close()

		salesCount, internalCount, err := sale.ImportSalesStream(db, file)
		if err != nil {
			writeJSONError(w, "Failed to import downloaded sales: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":               "success",
			"message":              fmt.Sprintf("Download and import complete: %d sales, %d internal consumptions", salesCount, internalCount),
			"filePath":             filePath,
			"sales":                salesCount,
			"internalConsumptions": internalCount,
		})
	}
}

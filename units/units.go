package units

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Units of measure as they appear on invoices and recipe cards. There is no
// conversion between them: a kg purchase consumed by a g recipe line is a
// data-entry defect the UI flags, never something this system corrects.
var All = []string{"g", "kg", "ml", "l", "unidad", "cda", "cdita", "taza", "pizca", "porción"}

func IsValid(unit string) bool {
	for _, u := range All {
		if u == unit {
			return true
		}
	}
	return false
}

// Normalize trims and lowercases a unit string from an import file. It does
// not convert between units; unknown spellings come back unchanged so the
// caller can decide what to do with them.
func Normalize(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	switch u {
	case "grs", "gr":
		return "g"
	case "lt", "lts":
		return "l"
	case "u", "un", "unid":
		return "unidad"
	}
	return u
}

// GetUnitsHandler returns the unit list for form dropdowns.
func GetUnitsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(All)
	}
}

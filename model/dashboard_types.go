package model

type TopSellingItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
}

type MostProfitableItem struct {
	Name   string  `json:"name"`
	Margin float64 `json:"margin"`
}

type SalesForceItem struct {
	Name  string  `json:"name"`
	Force float64 `json:"force"`
}

// Menu engineering quadrants, as the front of house names them.
const (
	QuadrantEstrella = "Estrella"
	QuadrantPuzzle   = "Puzzle"
	QuadrantCaballo  = "Caballo de Batalla"
	QuadrantPerro    = "Perro"
)

type MenuEngineeringItem struct {
	Name          string  `json:"name"`
	Profitability float64 `json:"profitability"`
	Popularity    float64 `json:"popularity"`
	Quadrant      string  `json:"quadrant"`
	Margin        float64 `json:"margin"`
}

type MenuEngineeringData struct {
	Items            []MenuEngineeringItem `json:"items"`
	AvgPopularity    float64               `json:"avgPopularity"`
	AvgProfitability float64               `json:"avgProfitability"`
}

type DashboardData struct {
	TopSelling                  []TopSellingItem     `json:"topSelling"`
	MostProfitable              []MostProfitableItem `json:"mostProfitable"`
	SalesForce                  []SalesForceItem     `json:"salesForce"`
	MenuEngineering             MenuEngineeringData  `json:"menuEngineering"`
	CubiertosSale               *ProductSale         `json:"cubiertosSale,omitempty"`
	InternalConsumptionsSummary []ProductSale        `json:"internalConsumptionsSummary"`
	LowStockItems               []LowStockItem       `json:"lowStockItems"`
}

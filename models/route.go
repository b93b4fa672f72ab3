package models

// Route is a voyage record from the route catalog. GHG intensity and fuel
// consumption feed the compliance balance of the ship sailing it.
type Route struct {
	ID              int64   `db:"id" json:"id"`
	RouteID         string  `db:"route_id" json:"routeId"`
	VesselType      string  `db:"vessel_type" json:"vesselType"`
	FuelType        string  `db:"fuel_type" json:"fuelType"`
	Year            int     `db:"year" json:"year"`
	GHGIntensity    float64 `db:"ghg_intensity" json:"ghgIntensity"`
	FuelConsumption float64 `db:"fuel_consumption" json:"fuelConsumption"`
	Distance        float64 `db:"distance" json:"distance"`
	TotalEmissions  float64 `db:"total_emissions" json:"totalEmissions"`
	IsBaseline      bool    `db:"is_baseline" json:"isBaseline"`
}

// RouteComparison compares a route's intensity against the baseline route
type RouteComparison struct {
	RouteID      string  `json:"routeId"`
	GHGIntensity float64 `json:"ghgIntensity"`
	PercentDiff  float64 `json:"percentDiff"`
	Compliant    bool    `json:"compliant"`
}

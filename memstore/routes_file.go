package memstore

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wanderergaurav/Varuna-marine/models"
)

// RouteCatalog is the YAML document seeding the in-memory route table.
//
//	routes:
//	  - route_id: R001
//	    vessel_type: Container
//	    ...
//	ship_routes:
//	  SHIP-7: R001
type RouteCatalog struct {
	Routes     []RouteSpec       `yaml:"routes"`
	ShipRoutes map[string]string `yaml:"ship_routes"`
}

// RouteSpec is one route row in the catalog file
type RouteSpec struct {
	RouteID         string  `yaml:"route_id"`
	VesselType      string  `yaml:"vessel_type"`
	FuelType        string  `yaml:"fuel_type"`
	Year            int     `yaml:"year"`
	GHGIntensity    float64 `yaml:"ghg_intensity"`
	FuelConsumption float64 `yaml:"fuel_consumption"`
	Distance        float64 `yaml:"distance"`
	TotalEmissions  float64 `yaml:"total_emissions"`
	IsBaseline      bool    `yaml:"is_baseline"`
}

// DefaultRouteCatalog is the sample fleet used when no catalog file is given
func DefaultRouteCatalog() *RouteCatalog {
	return &RouteCatalog{
		Routes: []RouteSpec{
			{RouteID: "R001", VesselType: "Container", FuelType: "HFO", Year: 2024, GHGIntensity: 91.0, FuelConsumption: 5000, Distance: 12000, TotalEmissions: 4500, IsBaseline: true},
			{RouteID: "R002", VesselType: "BulkCarrier", FuelType: "LNG", Year: 2024, GHGIntensity: 88.0, FuelConsumption: 4800, Distance: 11500, TotalEmissions: 4200},
			{RouteID: "R003", VesselType: "Tanker", FuelType: "MGO", Year: 2024, GHGIntensity: 93.5, FuelConsumption: 5100, Distance: 12500, TotalEmissions: 4700},
			{RouteID: "R004", VesselType: "RoRo", FuelType: "HFO", Year: 2025, GHGIntensity: 89.2, FuelConsumption: 4900, Distance: 11800, TotalEmissions: 4300},
			{RouteID: "R005", VesselType: "Container", FuelType: "LNG", Year: 2025, GHGIntensity: 90.5, FuelConsumption: 4950, Distance: 11900, TotalEmissions: 4400},
		},
	}
}

// LoadRouteCatalog reads a catalog file. An empty path yields the default catalog.
func LoadRouteCatalog(path string) (*RouteCatalog, error) {
	if path == "" {
		return DefaultRouteCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route catalog: %w", err)
	}

	catalog := &RouteCatalog{}
	if err := yaml.Unmarshal(data, catalog); err != nil {
		return nil, fmt.Errorf("parse route catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Validate checks the catalog for rows the ledger cannot use
func (c *RouteCatalog) Validate() error {
	seen := make(map[string]bool, len(c.Routes))
	for i, r := range c.Routes {
		if r.RouteID == "" {
			return fmt.Errorf("routes[%d].route_id is required", i)
		}
		if r.Year == 0 {
			return fmt.Errorf("routes[%d].year is required", i)
		}
		if r.FuelConsumption < 0 {
			return fmt.Errorf("routes[%d].fuel_consumption must not be negative", i)
		}
		key := fmt.Sprintf("%s/%d", r.RouteID, r.Year)
		if seen[key] {
			return fmt.Errorf("route %s is listed twice for %d", r.RouteID, r.Year)
		}
		seen[key] = true
	}
	return nil
}

// Models converts the catalog rows into routes with ids in file order
func (c *RouteCatalog) Models() []*models.Route {
	routes := make([]*models.Route, 0, len(c.Routes))
	for i, r := range c.Routes {
		routes = append(routes, &models.Route{
			ID:              int64(i + 1),
			RouteID:         r.RouteID,
			VesselType:      r.VesselType,
			FuelType:        r.FuelType,
			Year:            r.Year,
			GHGIntensity:    r.GHGIntensity,
			FuelConsumption: r.FuelConsumption,
			Distance:        r.Distance,
			TotalEmissions:  r.TotalEmissions,
			IsBaseline:      r.IsBaseline,
		})
	}
	return routes
}

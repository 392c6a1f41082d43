package admin

import (
	"context"

	"safarexpress/models"
	"safarexpress/utils"

	"go.uber.org/zap"
)

// Starter catalog for a fresh deployment.
var (
	seedRoutes = []models.RouteOption{
		{Label: "Fastest Route", ETAMinutes: 18, DistanceKm: 12, FlatRate: 220},
		{Label: "City Saver", ETAMinutes: 25, DistanceKm: 15, FlatRate: 180},
		{Label: "Scenic Drive", ETAMinutes: 30, DistanceKm: 18, FlatRate: 260},
	}
	seedCabs = []models.CabOption{
		{CabType: "Mini", CarModel: "Suzuki Swift", Multiplier: 1.0},
		{CabType: "Sedan", CarModel: "Honda City", Multiplier: 1.3},
		{CabType: "SUV", CarModel: "Toyota Innova", Multiplier: 1.6},
		{CabType: "Luxury", CarModel: "Mercedes E-Class", Multiplier: 2.2},
		{CabType: "Van", CarModel: "Kia Carnival", Multiplier: 1.8},
	}
)

// SeedCatalog inserts the starter routes and cabs when both collections are
// empty. It reports whether anything was written.
func (s *DefaultAdminService) SeedCatalog(ctx context.Context) (bool, error) {
	routes, err := s.Catalog.ListRoutes(ctx)
	if err != nil {
		return false, err
	}
	cabs, err := s.Catalog.ListCabs(ctx)
	if err != nil {
		return false, err
	}
	if len(routes) > 0 || len(cabs) > 0 {
		utils.GetLogger().Info("Catalog seed skipped, data already exists")
		return false, nil
	}

	for _, r := range seedRoutes {
		route := r
		if err := s.Catalog.CreateRoute(ctx, &route); err != nil {
			return false, err
		}
	}
	for _, c := range seedCabs {
		cab := c
		if err := s.Catalog.CreateCab(ctx, &cab); err != nil {
			return false, err
		}
	}
	utils.GetLogger().Info("Catalog seeded",
		zap.Int("routes", len(seedRoutes)), zap.Int("cabs", len(seedCabs)))
	return true, nil
}

package catalogRepo

import (
	"context"
	"time"

	"safarexpress/models"
)

// CatalogRepository serves the route and cab options offered by search.
type CatalogRepository interface {
	ListRoutes(ctx context.Context) ([]models.RouteOption, error)
	CreateRoute(ctx context.Context, route *models.RouteOption) error
	ListCabs(ctx context.Context) ([]models.CabOption, error)
	// ListCabsAvailableOn returns cabs whose availability window contains day.
	ListCabsAvailableOn(ctx context.Context, day time.Time) ([]models.CabOption, error)
	CreateCab(ctx context.Context, cab *models.CabOption) error
}

package admin

import (
	"context"
	"strings"
	"time"

	auditRepo "safarexpress/database/repository/audit"
	bookingRepo "safarexpress/database/repository/booking"
	catalogRepo "safarexpress/database/repository/catalog"
	"safarexpress/models"
	"safarexpress/utils"
)

var ErrInvalidWindow = utils.ValidationError([]utils.FieldError{
	{Path: "availableTo", Message: "must not be before availableFrom"},
})

// DefaultAdminService is the production implementation.
type DefaultAdminService struct {
	Audit    auditRepo.AuditRepository
	Catalog  catalogRepo.CatalogRepository
	Bookings bookingRepo.BookingRepository
	Metrics  *utils.Metrics
	Health   HealthReporter
	Now      func() time.Time
}

func NewAdminService(
	audit auditRepo.AuditRepository,
	catalog catalogRepo.CatalogRepository,
	bookings bookingRepo.BookingRepository,
	metrics *utils.Metrics,
	health HealthReporter,
) *DefaultAdminService {
	return &DefaultAdminService{
		Audit:    audit,
		Catalog:  catalog,
		Bookings: bookings,
		Metrics:  metrics,
		Health:   health,
		Now:      time.Now,
	}
}

func (s *DefaultAdminService) HealthSummary(ctx context.Context) (*HealthSummary, error) {
	count, err := s.Audit.Count(ctx)
	if err != nil {
		return nil, err
	}
	status := s.Health.Status()
	return &HealthSummary{
		Status:     "ok",
		DBReady:    status.Mongo,
		RedisReady: status.Redis,
		Metrics:    s.Metrics.Snapshot(),
		AuditCount: count,
	}, nil
}

// ClampPage normalises paging parameters.
func ClampPage(page, pageSize int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func (s *DefaultAdminService) ListAuditLogs(ctx context.Context, page, pageSize int64) (*AuditPage, error) {
	page, pageSize = ClampPage(page, pageSize)
	logs, err := s.Audit.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.Audit.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &AuditPage{Logs: logs, Page: page, PageSize: pageSize, Total: total}, nil
}

func (s *DefaultAdminService) ListRoutes(ctx context.Context) ([]models.RouteOption, error) {
	return s.Catalog.ListRoutes(ctx)
}

func (s *DefaultAdminService) CreateRoute(ctx context.Context, input models.RouteInput, actor models.Actor, requestID string) (*models.RouteOption, error) {
	from, to := strings.TrimSpace(input.FromHub), strings.TrimSpace(input.ToHub)
	route := &models.RouteOption{
		FromHub:  from,
		ToHub:    to,
		FlatRate: input.FlatRate,
		Label:    from + " → " + to,
	}
	if err := s.Catalog.CreateRoute(ctx, route); err != nil {
		return nil, err
	}
	err := s.audit(ctx, models.AuditRouteCreated, actor, "route", route.ID, requestID, map[string]any{
		"fromHub":  from,
		"toHub":    to,
		"flatRate": input.FlatRate,
	})
	if err != nil {
		return nil, err
	}
	return route, nil
}

func (s *DefaultAdminService) ListCabs(ctx context.Context) ([]models.CabOption, error) {
	return s.Catalog.ListCabs(ctx)
}

func (s *DefaultAdminService) CreateCab(ctx context.Context, input models.CabInput, actor models.Actor, requestID string) (*models.CabOption, error) {
	if input.AvailableFrom != nil && input.AvailableTo != nil && input.AvailableTo.Before(*input.AvailableFrom) {
		return nil, ErrInvalidWindow
	}
	cab := &models.CabOption{
		CabType:       strings.TrimSpace(input.CabType),
		CarModel:      strings.TrimSpace(input.CarModel),
		Multiplier:    input.Multiplier,
		AvailableFrom: input.AvailableFrom,
		AvailableTo:   input.AvailableTo,
	}
	if err := s.Catalog.CreateCab(ctx, cab); err != nil {
		return nil, err
	}
	err := s.audit(ctx, models.AuditCabCreated, actor, "cab", cab.ID, requestID, map[string]any{
		"cabType":       cab.CabType,
		"carModel":      cab.CarModel,
		"multiplier":    cab.Multiplier,
		"availableFrom": cab.AvailableFrom,
		"availableTo":   cab.AvailableTo,
	})
	if err != nil {
		return nil, err
	}
	return cab, nil
}

func (s *DefaultAdminService) BookingAlerts(ctx context.Context, since time.Time) (*BookingAlerts, error) {
	if since.IsZero() {
		since = s.Now().Add(-DefaultAlertWindow)
	}
	count, err := s.Bookings.CountCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	return &BookingAlerts{Since: since, Count: count}, nil
}

func (s *DefaultAdminService) audit(ctx context.Context, action string, actor models.Actor, targetType, targetID, requestID string, metadata map[string]any) error {
	return s.Audit.Create(ctx, &models.AuditLog{
		Action:    action,
		Actor:     models.AuditActor{UserID: actor.UserID, Role: actor.Role, Email: actor.Email},
		Target:    models.AuditTarget{Type: targetType, ID: targetID},
		Metadata:  metadata,
		RequestID: requestID,
		CreatedAt: s.Now(),
	})
}

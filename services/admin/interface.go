package admin

import (
	"context"
	"time"

	"safarexpress/models"
	"safarexpress/utils"
)

const (
	DefaultPageSize    = 20
	MaxPageSize        = 100
	// MaxPage keeps (page-1)*pageSize far from int64 overflow.
	MaxPage            = 1_000_000
	DefaultAlertWindow = 15 * time.Minute
)

// HealthSummary is the admin dashboard view of the process.
type HealthSummary struct {
	Status     string                `json:"status"`
	DBReady    bool                  `json:"dbReady"`
	RedisReady *bool                 `json:"redisReady,omitempty"`
	Metrics    utils.MetricsSnapshot `json:"metrics"`
	AuditCount int64                 `json:"auditCount"`
}

type AuditPage struct {
	Logs     []models.AuditLog `json:"logs"`
	Page     int64             `json:"-"`
	PageSize int64             `json:"-"`
	Total    int64             `json:"-"`
}

type BookingAlerts struct {
	Since time.Time `json:"since"`
	Count int64     `json:"count"`
}

type AdminService interface {
	HealthSummary(ctx context.Context) (*HealthSummary, error)
	ListAuditLogs(ctx context.Context, page, pageSize int64) (*AuditPage, error)
	ListRoutes(ctx context.Context) ([]models.RouteOption, error)
	CreateRoute(ctx context.Context, input models.RouteInput, actor models.Actor, requestID string) (*models.RouteOption, error)
	ListCabs(ctx context.Context) ([]models.CabOption, error)
	CreateCab(ctx context.Context, input models.CabInput, actor models.Actor, requestID string) (*models.CabOption, error)
	// BookingAlerts counts bookings created since the given time. A zero
	// since means the last 15 minutes.
	BookingAlerts(ctx context.Context, since time.Time) (*BookingAlerts, error)
}

// HealthReporter exposes the last dependency check.
type HealthReporter interface {
	Status() utils.HealthStatus
}

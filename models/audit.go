package models

import "time"

// Audit actions.
const (
	AuditBookingStatusUpdated = "BOOKING_STATUS_UPDATED"
	AuditRouteCreated         = "ROUTE_CREATED"
	AuditCabCreated           = "CAB_CREATED"
)

type AuditActor struct {
	UserID string `bson:"userId" json:"userId"`
	Role   string `bson:"role" json:"role"`
	Email  string `bson:"email" json:"email"`
}

type AuditTarget struct {
	Type string `bson:"type" json:"type"` // "booking", "route", "cab"
	ID   string `bson:"id" json:"id"`
}

// AuditLog records a privileged action. Entries are never updated.
type AuditLog struct {
	ID        string         `bson:"id" json:"id"`
	Action    string         `bson:"action" json:"action"`
	Actor     AuditActor     `bson:"actor" json:"actor"`
	Target    AuditTarget    `bson:"target" json:"target"`
	Metadata  map[string]any `bson:"metadata" json:"metadata"`
	RequestID string         `bson:"requestId" json:"requestId"`
	CreatedAt time.Time      `bson:"createdAt" json:"createdAt"`
}

package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	auditRepo "safarexpress/database/repository/audit"
	bookingRepo "safarexpress/database/repository/booking"
	catalogRepo "safarexpress/database/repository/catalog"
	idempotencyRepo "safarexpress/database/repository/idempotency"
	"safarexpress/models"
	"safarexpress/services/events"
	"safarexpress/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService owns the booking lifecycle.
type DefaultBookingService struct {
	Bookings    bookingRepo.BookingRepository
	Idempotency idempotencyRepo.IdempotencyRepository
	Audit       auditRepo.AuditRepository
	Catalog     catalogRepo.CatalogRepository
	Events      events.Publisher
	Now         func() time.Time
}

func NewBookingService(
	bookings bookingRepo.BookingRepository,
	idem idempotencyRepo.IdempotencyRepository,
	audit auditRepo.AuditRepository,
	catalog catalogRepo.CatalogRepository,
	publisher events.Publisher,
) *DefaultBookingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &DefaultBookingService{
		Bookings:    bookings,
		Idempotency: idem,
		Audit:       audit,
		Catalog:     catalog,
		Events:      publisher,
		Now:         time.Now,
	}
}

type storedResponse struct {
	Booking *models.Booking `json:"booking"`
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.BookingInput, actor models.Actor, requestID, idempotencyKey string) (*CreateResult, error) {
	if idempotencyKey != "" {
		replay, err := s.replay(ctx, idempotencyKey, actor.UserID)
		if err != nil || replay != nil {
			return replay, err
		}
	}

	pickupDate, err := utils.ParseDate(input.Schedule.PickupDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := s.Now()
	booking := &models.Booking{
		ID:       uuid.New().String(),
		UserID:   actor.UserID,
		TripType: input.TripType,
		Pickup:   models.Address{Address: strings.TrimSpace(input.Pickup.Address)},
		Dropoff:  models.Address{Address: strings.TrimSpace(input.Dropoff.Address)},
		Schedule: models.Schedule{
			PickupDate: pickupDate,
			PickupTime: input.Schedule.PickupTime,
		},
		Fare:      models.Fare{TotalAmount: CalculateFare(input.TripType)},
		Status:    models.StatusPending,
		Version:   1,
		CreatedAt: now,
	}
	if c := input.Contact; c != nil {
		booking.Contact = models.Contact{Name: c.Name, Email: c.Email, Phone: c.Phone}
	}
	if sel := input.Selection; sel != nil {
		booking.Selection = models.Selection{Route: sel.Route, CabType: sel.CabType, CarModel: sel.CarModel}
	}

	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if err := s.Bookings.AppendEvent(ctx, &models.BookingEvent{
		BookingID: booking.ID,
		EventType: models.EventCreated,
		Actor:     eventActor(actor),
		Payload:   map[string]any{"status": booking.Status, "tripType": booking.TripType},
		RequestID: requestID,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if idempotencyKey != "" {
		body, err := json.Marshal(storedResponse{Booking: booking})
		if err != nil {
			return nil, fmt.Errorf("failed to encode idempotent response: %w", err)
		}
		err = s.Idempotency.Record(ctx, idempotencyKey, actor.UserID, BookingsEndpoint, http.StatusCreated, body)
		if errors.Is(err, idempotencyRepo.ErrDuplicateKey) {
			// A concurrent request with the same key committed first; its
			// response is the one the client gets.
			utils.GetLogger().Warn("Idempotency key raced, replaying first response",
				zap.String("requestId", requestID),
				zap.String("orphanBookingId", booking.ID),
			)
			replay, rerr := s.replay(ctx, idempotencyKey, actor.UserID)
			if rerr != nil {
				return nil, rerr
			}
			if replay != nil {
				return replay, nil
			}
		}
		if err != nil {
			return nil, err
		}
	}

	s.publish(ctx, events.Event{
		Type:      events.BookingCreated,
		BookingID: booking.ID,
		UserID:    booking.UserID,
		TripType:  booking.TripType,
		Status:    booking.Status,
		RequestID: requestID,
	})
	return &CreateResult{Booking: booking}, nil
}

func (s *DefaultBookingService) replay(ctx context.Context, key, userID string) (*CreateResult, error) {
	prev, err := s.Idempotency.FindReplay(ctx, key, userID, BookingsEndpoint)
	if err != nil || prev == nil {
		return nil, err
	}
	var body storedResponse
	if err := json.Unmarshal(prev.ResponseBody, &body); err != nil {
		return nil, fmt.Errorf("failed to decode idempotent response: %w", err)
	}
	return &CreateResult{Booking: body.Booking, Replayed: true, ReplayStatus: prev.ResponseStatus}, nil
}

func (s *DefaultBookingService) SearchOptions(ctx context.Context, input models.BookingInput) (*SearchResult, error) {
	routes, err := s.Catalog.ListRoutes(ctx)
	if err != nil {
		return nil, err
	}

	var cabs []models.CabOption
	if day, derr := utils.ParseDate(input.Schedule.PickupDate); derr == nil {
		cabs, err = s.Catalog.ListCabsAvailableOn(ctx, day)
	} else {
		cabs, err = s.Catalog.ListCabs(ctx)
	}
	if err != nil {
		return nil, err
	}

	result := &SearchResult{
		Pickup:   input.Pickup.Address,
		Dropoff:  input.Dropoff.Address,
		TripType: input.TripType,
		Routes:   make([]RouteResult, 0, len(routes)),
		Cabs:     make([]CabResult, 0, len(cabs)),
	}
	for _, r := range routes {
		result.Routes = append(result.Routes, RouteResult{
			ID:         r.ID,
			Label:      r.Label,
			ETAMinutes: r.ETAMinutes,
			DistanceKm: r.DistanceKm,
			BaseFare:   r.FlatRate,
		})
	}
	for _, c := range cabs {
		result.Cabs = append(result.Cabs, CabResult{
			ID:            c.ID,
			CabType:       c.CabType,
			CarModel:      c.CarModel,
			Multiplier:    c.Multiplier,
			AvailableFrom: c.AvailableFrom,
			AvailableTo:   c.AvailableTo,
		})
	}
	return result, nil
}

func (s *DefaultBookingService) ListBookings(ctx context.Context, actor models.Actor) ([]models.Booking, error) {
	if actor.IsAdmin() {
		return s.Bookings.ListAll(ctx, ListLimit)
	}
	return s.Bookings.ListByUser(ctx, actor.UserID, ListLimit)
}

func (s *DefaultBookingService) GetBookingByID(ctx context.Context, id string, actor models.Actor) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && booking.UserID != actor.UserID {
		return nil, ErrForbidden
	}
	return booking, nil
}

func (s *DefaultBookingService) GetBookingEvents(ctx context.Context, id string, actor models.Actor) ([]models.BookingEvent, error) {
	if _, err := s.GetBookingByID(ctx, id, actor); err != nil {
		return nil, err
	}
	return s.Bookings.ListEvents(ctx, id)
}

func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, id, status string, actor models.Actor, requestID string) (*models.Booking, error) {
	current, err := s.Bookings.GetByID(ctx, id)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	from := current.Status
	if !CanTransition(from, status) {
		return nil, invalidTransition(from, status)
	}

	updated, err := s.Bookings.UpdateStatus(ctx, id, from, current.Version, status)
	if errors.Is(err, bookingRepo.ErrStale) {
		return nil, ErrConcurrentUpdate
	}
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.Bookings.AppendEvent(ctx, &models.BookingEvent{
		BookingID: id,
		EventType: models.EventStatusChanged,
		Actor:     eventActor(actor),
		Payload:   map[string]any{"from": from, "to": status},
		RequestID: requestID,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := s.Audit.Create(ctx, &models.AuditLog{
		Action:    models.AuditBookingStatusUpdated,
		Actor:     models.AuditActor{UserID: actor.UserID, Role: actor.Role, Email: actor.Email},
		Target:    models.AuditTarget{Type: "booking", ID: id},
		Metadata:  map[string]any{"from": from, "to": status},
		RequestID: requestID,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:      events.BookingStatusChanged,
		BookingID: id,
		UserID:    updated.UserID,
		TripType:  updated.TripType,
		Status:    updated.Status,
		From:      from,
		To:        status,
		RequestID: requestID,
	})
	return updated, nil
}

// publish never fails the caller.
func (s *DefaultBookingService) publish(ctx context.Context, evt events.Event) {
	evt.ID = uuid.New().String()
	evt.OccurredAt = s.Now()
	if err := s.Events.Publish(ctx, evt); err != nil {
		utils.GetLogger().Warn("Failed to publish booking event",
			zap.String("type", evt.Type),
			zap.String("bookingId", evt.BookingID),
			zap.Error(err),
		)
	}
}

func eventActor(actor models.Actor) models.EventActor {
	role := actor.Role
	if role == "" {
		role = models.RoleGuest
	}
	return models.EventActor{UserID: actor.UserID, Role: role}
}

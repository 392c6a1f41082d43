package booking

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"safarexpress/models"
	"safarexpress/services/events"
	"safarexpress/utils"
)

var (
	customer = models.Actor{UserID: "user-1", Role: models.RoleUser, Email: "c@example.test"}
	stranger = models.Actor{UserID: "user-2", Role: models.RoleUser, Email: "s@example.test"}
	admin    = models.Actor{UserID: "admin-1", Role: models.RoleAdmin, Email: "a@example.test"}
)

func sampleInput(tripType string) models.BookingInput {
	var in models.BookingInput
	in.TripType = tripType
	in.Pickup.Address = "  Westlands, Nairobi  "
	in.Dropoff.Address = "JKIA Terminal 1A"
	in.Schedule.PickupDate = "2026-11-02"
	in.Schedule.PickupTime = "09:30"
	return in
}

func create(t *testing.T, f *fixture, actor models.Actor, key string) *CreateResult {
	t.Helper()
	res, err := f.svc.CreateBooking(context.Background(), sampleInput(models.TripAirport), actor, "req-1", key)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return res
}

func TestCalculateFare(t *testing.T) {
	tests := map[string]float64{
		models.TripAirport:   300,
		models.TripOneWay:    200,
		models.TripRoundTrip: 200,
		models.TripHourly:    200,
	}
	for trip, want := range tests {
		if got := CalculateFare(trip); got != want {
			t.Errorf("CalculateFare(%s) = %v, want %v", trip, got, want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusConfirmed, models.StatusPending, false},
		{models.StatusConfirmed, models.StatusConfirmed, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
		{models.StatusCompleted, models.StatusCancelled, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture()
	res := create(t, f, customer, "")

	b := res.Booking
	if res.Replayed {
		t.Error("fresh booking marked as replay")
	}
	if b.Status != models.StatusPending || b.Version != 1 {
		t.Errorf("status/version = %s/%d, want PENDING/1", b.Status, b.Version)
	}
	if b.Fare.TotalAmount != 300 {
		t.Errorf("fare = %v, want 300", b.Fare.TotalAmount)
	}
	if b.Pickup.Address != "Westlands, Nairobi" {
		t.Errorf("pickup not trimmed: %q", b.Pickup.Address)
	}
	if b.UserID != customer.UserID {
		t.Errorf("userId = %q, want %q", b.UserID, customer.UserID)
	}
	if got := b.Schedule.PickupDate.Format("2006-01-02"); got != "2026-11-02" {
		t.Errorf("pickupDate = %s", got)
	}

	created := f.bookings.eventsOfType(models.EventCreated)
	if len(created) != 1 {
		t.Fatalf("CREATED events = %d, want 1", len(created))
	}
	if created[0].Payload["status"] != models.StatusPending || created[0].Payload["tripType"] != models.TripAirport {
		t.Errorf("unexpected CREATED payload: %v", created[0].Payload)
	}
	if created[0].Actor.UserID != customer.UserID || created[0].RequestID != "req-1" {
		t.Errorf("unexpected CREATED event: %+v", created[0])
	}
	if len(f.publisher.events) != 1 || f.publisher.events[0].Type != events.BookingCreated {
		t.Errorf("published events = %+v", f.publisher.events)
	}
}

func TestCreateBookingGuestActor(t *testing.T) {
	f := newFixture()
	res := create(t, f, models.GuestActor("g@example.test"), "")
	if res.Booking.UserID != "" {
		t.Errorf("guest booking has userId %q", res.Booking.UserID)
	}
	if ev := f.bookings.eventsOfType(models.EventCreated); ev[0].Actor.Role != models.RoleGuest {
		t.Errorf("actor role = %q, want guest", ev[0].Actor.Role)
	}
}

func TestCreateBookingIdempotentReplay(t *testing.T) {
	f := newFixture()
	first := create(t, f, customer, "key-123")
	second := create(t, f, customer, "key-123")

	if !second.Replayed || second.ReplayStatus != 201 {
		t.Fatalf("second call not a replay: %+v", second)
	}
	if second.Booking.ID != first.Booking.ID {
		t.Errorf("replayed booking %s, want %s", second.Booking.ID, first.Booking.ID)
	}
	if n := len(f.bookings.bookings); n != 1 {
		t.Errorf("stored bookings = %d, want 1", n)
	}
	if n := len(f.bookings.eventsOfType(models.EventCreated)); n != 1 {
		t.Errorf("CREATED events = %d, want 1", n)
	}
}

func TestCreateBookingKeyScopedPerUser(t *testing.T) {
	f := newFixture()
	a := create(t, f, customer, "shared-key")
	b := create(t, f, stranger, "shared-key")
	if b.Replayed || a.Booking.ID == b.Booking.ID {
		t.Error("idempotency key leaked across users")
	}
}

// racingIdempotency behaves as if another request recorded the key between
// this request's lookup and its own record.
type racingIdempotency struct {
	*memIdempotency
	winner *models.Booking
	once   sync.Once
}

func (r *racingIdempotency) Record(ctx context.Context, key, userID, endpoint string, status int, body []byte) error {
	r.once.Do(func() {
		winnerBody, _ := json.Marshal(storedResponse{Booking: r.winner})
		_ = r.memIdempotency.Record(ctx, key, userID, endpoint, 201, winnerBody)
	})
	return r.memIdempotency.Record(ctx, key, userID, endpoint, status, body)
}

func TestCreateBookingRecordRaceReplaysWinner(t *testing.T) {
	f := newFixture()
	winner := &models.Booking{ID: "winner-booking", Status: models.StatusPending, Version: 1}
	f.svc.Idempotency = &racingIdempotency{memIdempotency: f.idem, winner: winner}

	res := create(t, f, customer, "race-key")
	if !res.Replayed || res.Booking.ID != "winner-booking" {
		t.Errorf("expected replay of winner, got %+v", res)
	}
	if len(f.publisher.events) != 0 {
		t.Errorf("losing request published %d events", len(f.publisher.events))
	}
}

func TestCreateBookingConcurrentSameKey(t *testing.T) {
	f := newFixture()
	const n = 10
	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := f.svc.CreateBooking(context.Background(), sampleInput(models.TripOneWay), customer, "r", "same-key")
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			ids <- res.Booking.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		seen[id] = true
	}
	if len(seen) != 1 {
		t.Errorf("clients observed %d different bookings, want 1", len(seen))
	}
}

func TestCreateBookingPublishFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.publisher.err = errBrokerDown
	if _, err := f.svc.CreateBooking(context.Background(), sampleInput(models.TripOneWay), customer, "r", ""); err != nil {
		t.Fatalf("publish failure surfaced: %v", err)
	}
}

func TestCreateBookingRejectsBadDate(t *testing.T) {
	f := newFixture()
	in := sampleInput(models.TripOneWay)
	in.Schedule.PickupDate = "next tuesday"
	_, err := f.svc.CreateBooking(context.Background(), in, customer, "r", "")
	var apiErr *utils.APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "validation_error" {
		t.Errorf("err = %v, want validation_error", err)
	}
}

func TestGetBookingByIDAccess(t *testing.T) {
	f := newFixture()
	id := create(t, f, customer, "").Booking.ID
	ctx := context.Background()

	if _, err := f.svc.GetBookingByID(ctx, id, customer); err != nil {
		t.Errorf("owner: %v", err)
	}
	if _, err := f.svc.GetBookingByID(ctx, id, admin); err != nil {
		t.Errorf("admin: %v", err)
	}
	if _, err := f.svc.GetBookingByID(ctx, id, stranger); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger: err = %v, want ErrForbidden", err)
	}
	if _, err := f.svc.GetBookingByID(ctx, "does-not-exist", admin); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing: err = %v, want ErrNotFound", err)
	}
}

func TestListBookingsScoping(t *testing.T) {
	f := newFixture()
	create(t, f, customer, "")
	create(t, f, customer, "")
	create(t, f, stranger, "")
	ctx := context.Background()

	mine, _ := f.svc.ListBookings(ctx, customer)
	if len(mine) != 2 {
		t.Errorf("customer sees %d bookings, want 2", len(mine))
	}
	for _, b := range mine {
		if b.UserID != customer.UserID {
			t.Errorf("customer sees booking of %s", b.UserID)
		}
	}
	all, _ := f.svc.ListBookings(ctx, admin)
	if len(all) != 3 {
		t.Errorf("admin sees %d bookings, want 3", len(all))
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	f := newFixture()
	id := create(t, f, customer, "").Booking.ID

	updated, err := f.svc.UpdateBookingStatus(context.Background(), id, models.StatusConfirmed, admin, "req-9")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusConfirmed || updated.Version != 2 {
		t.Errorf("status/version = %s/%d, want CONFIRMED/2", updated.Status, updated.Version)
	}

	changed := f.bookings.eventsOfType(models.EventStatusChanged)
	if len(changed) != 1 || changed[0].Payload["from"] != models.StatusPending || changed[0].Payload["to"] != models.StatusConfirmed {
		t.Errorf("unexpected STATUS_CHANGED events: %+v", changed)
	}
	if len(f.audit.entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(f.audit.entries))
	}
	entry := f.audit.entries[0]
	if entry.Action != models.AuditBookingStatusUpdated || entry.Target.ID != id || entry.Actor.Email != admin.Email || entry.RequestID != "req-9" {
		t.Errorf("unexpected audit entry: %+v", entry)
	}
	last := f.publisher.events[len(f.publisher.events)-1]
	if last.Type != events.BookingStatusChanged || last.From != models.StatusPending || last.To != models.StatusConfirmed {
		t.Errorf("unexpected published event: %+v", last)
	}
}

func TestUpdateBookingStatusInvalidTransition(t *testing.T) {
	f := newFixture()
	id := create(t, f, customer, "").Booking.ID
	ctx := context.Background()

	if _, err := f.svc.UpdateBookingStatus(ctx, id, models.StatusCancelled, admin, "r"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	_, err := f.svc.UpdateBookingStatus(ctx, id, models.StatusConfirmed, admin, "r")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if !strings.Contains(err.Error(), "from CANCELLED to CONFIRMED") {
		t.Errorf("detail does not name the transition: %v", err)
	}
	if len(f.audit.entries) != 1 {
		t.Errorf("audit entries = %d, want 1", len(f.audit.entries))
	}
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.svc.UpdateBookingStatus(context.Background(), "missing-booking", models.StatusConfirmed, admin, "r")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateBookingStatusLostRaceWritesNothing(t *testing.T) {
	f := newFixture()
	id := create(t, f, customer, "").Booking.ID
	f.bookings.forceStale = true

	_, err := f.svc.UpdateBookingStatus(context.Background(), id, models.StatusConfirmed, admin, "r")
	if !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("err = %v, want ErrConcurrentUpdate", err)
	}
	if n := len(f.bookings.eventsOfType(models.EventStatusChanged)); n != 0 {
		t.Errorf("STATUS_CHANGED events = %d, want 0", n)
	}
	if len(f.audit.entries) != 0 {
		t.Errorf("audit entries = %d, want 0", len(f.audit.entries))
	}
}

func TestUpdateBookingStatusConcurrentSameTarget(t *testing.T) {
	f := newFixture()
	id := create(t, f, customer, "").Booking.ID

	const n = 6
	var wg sync.WaitGroup
	var mu sync.Mutex
	var ok int
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.UpdateBookingStatus(context.Background(), id, models.StatusConfirmed, admin, "r")
			switch {
			case err == nil:
				mu.Lock()
				ok++
				mu.Unlock()
			case errors.Is(err, ErrConcurrentUpdate), errors.Is(err, ErrInvalidTransition):
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if ok != 1 {
		t.Errorf("%d updates succeeded, want 1", ok)
	}
	if n := len(f.bookings.eventsOfType(models.EventStatusChanged)); n != 1 {
		t.Errorf("STATUS_CHANGED events = %d, want 1", n)
	}
	if len(f.audit.entries) != 1 {
		t.Errorf("audit entries = %d, want 1", len(f.audit.entries))
	}
}

func TestGetBookingEvents(t *testing.T) {
	f := newFixture()
	id := create(t, f, customer, "").Booking.ID
	if _, err := f.svc.UpdateBookingStatus(context.Background(), id, models.StatusConfirmed, admin, "r"); err != nil {
		t.Fatalf("update: %v", err)
	}

	trail, err := f.svc.GetBookingEvents(context.Background(), id, customer)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(trail) != 2 || trail[0].EventType != models.EventCreated || trail[1].EventType != models.EventStatusChanged {
		t.Errorf("unexpected trail: %+v", trail)
	}
	if _, err := f.svc.GetBookingEvents(context.Background(), id, stranger); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger: err = %v, want ErrForbidden", err)
	}
}

func TestSearchOptionsFiltersCabsByDate(t *testing.T) {
	f := newFixture()
	day := func(s string) *time.Time {
		d, _ := time.Parse("2006-01-02", s)
		return &d
	}
	f.catalog.routes = []models.RouteOption{{ID: "r1", Label: "CBD → JKIA", FlatRate: 1500}}
	f.catalog.cabs = []models.CabOption{
		{ID: "always", CabType: "SEDAN"},
		{ID: "november", CabType: "SUV", AvailableFrom: day("2026-11-01"), AvailableTo: day("2026-11-30")},
		{ID: "october", CabType: "VAN", AvailableTo: day("2026-10-31")},
		{ID: "edge", CabType: "MINI", AvailableFrom: day("2026-11-02")},
	}

	res, err := f.svc.SearchOptions(context.Background(), sampleInput(models.TripAirport))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	got := map[string]bool{}
	for _, c := range res.Cabs {
		got[c.ID] = true
	}
	if !got["always"] || !got["november"] || !got["edge"] || got["october"] {
		t.Errorf("unexpected cabs: %v", got)
	}
	if len(res.Routes) != 1 || res.Routes[0].BaseFare != 1500 || res.Routes[0].Label != "CBD → JKIA" {
		t.Errorf("unexpected routes: %+v", res.Routes)
	}
	if res.Pickup != "  Westlands, Nairobi  " || res.TripType != models.TripAirport {
		t.Errorf("search did not echo input: %+v", res)
	}

	in := sampleInput(models.TripAirport)
	in.Schedule.PickupDate = "whenever"
	res, _ = f.svc.SearchOptions(context.Background(), in)
	if len(res.Cabs) != 4 {
		t.Errorf("without a valid date got %d cabs, want 4", len(res.Cabs))
	}
}

func TestSearchOptionsEmptyIsSuccess(t *testing.T) {
	f := newFixture()
	res, err := f.svc.SearchOptions(context.Background(), sampleInput(models.TripOneWay))
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if res.Routes == nil || res.Cabs == nil || len(res.Routes) != 0 || len(res.Cabs) != 0 {
		t.Errorf("expected empty non-nil lists, got %+v", res)
	}
}

package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	bookingRepo "safarexpress/database/repository/booking"
	idempotencyRepo "safarexpress/database/repository/idempotency"
	"safarexpress/models"
	"safarexpress/services/events"
)

type memBookings struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	order    []string
	events   []models.BookingEvent
	// forceStale makes the next UpdateStatus lose its race.
	forceStale bool
}

func newMemBookings() *memBookings {
	return &memBookings{bookings: map[string]models.Booking{}}
}

func (m *memBookings) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = *b
	m.order = append(m.order, b.ID)
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

func (m *memBookings) list(match func(models.Booking) bool, limit int64) []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for i := len(m.order) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if b := m.bookings[m.order[i]]; match(b) {
			out = append(out, b)
		}
	}
	return out
}

func (m *memBookings) ListByUser(_ context.Context, userID string, limit int64) ([]models.Booking, error) {
	return m.list(func(b models.Booking) bool { return b.UserID == userID }, limit), nil
}

func (m *memBookings) ListAll(_ context.Context, limit int64) ([]models.Booking, error) {
	return m.list(func(models.Booking) bool { return true }, limit), nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id, from string, version int, to string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if m.forceStale || !ok || b.Status != from || b.Version != version {
		m.forceStale = false
		return nil, bookingRepo.ErrStale
	}
	b.Status = to
	b.Version++
	m.bookings[id] = b
	return &b, nil
}

func (m *memBookings) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.bookings {
		if !b.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *memBookings) AppendEvent(_ context.Context, e *models.BookingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

func (m *memBookings) ListEvents(_ context.Context, bookingID string) ([]models.BookingEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.BookingEvent{}
	for _, e := range m.events {
		if e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memBookings) eventsOfType(typ string) []models.BookingEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.BookingEvent
	for _, e := range m.events {
		if e.EventType == typ {
			out = append(out, e)
		}
	}
	return out
}

type memIdempotency struct {
	mu      sync.Mutex
	records map[string]models.IdempotencyKey
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{records: map[string]models.IdempotencyKey{}}
}

func idemKey(key, userID, endpoint string) string { return key + "|" + userID + "|" + endpoint }

func (m *memIdempotency) FindReplay(_ context.Context, key, userID, endpoint string) (*models.IdempotencyKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[idemKey(key, userID, endpoint)]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (m *memIdempotency) Record(_ context.Context, key, userID, endpoint string, status int, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := idemKey(key, userID, endpoint)
	if _, ok := m.records[k]; ok {
		return idempotencyRepo.ErrDuplicateKey
	}
	m.records[k] = models.IdempotencyKey{Key: key, UserID: userID, Endpoint: endpoint, ResponseStatus: status, ResponseBody: body}
	return nil
}

type memAudit struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (m *memAudit) Create(_ context.Context, e *models.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memAudit) List(_ context.Context, page, pageSize int64) ([]models.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditLog{}, m.entries...), nil
}

func (m *memAudit) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.entries)), nil
}

type memCatalog struct {
	routes []models.RouteOption
	cabs   []models.CabOption
}

func (m *memCatalog) ListRoutes(context.Context) ([]models.RouteOption, error) { return m.routes, nil }
func (m *memCatalog) CreateRoute(_ context.Context, r *models.RouteOption) error {
	m.routes = append([]models.RouteOption{*r}, m.routes...)
	return nil
}
func (m *memCatalog) ListCabs(context.Context) ([]models.CabOption, error) { return m.cabs, nil }
func (m *memCatalog) ListCabsAvailableOn(_ context.Context, day time.Time) ([]models.CabOption, error) {
	var out []models.CabOption
	for _, c := range m.cabs {
		if c.AvailableOn(day) {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *memCatalog) CreateCab(_ context.Context, c *models.CabOption) error {
	m.cabs = append([]models.CabOption{*c}, m.cabs...)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var errBrokerDown = errors.New("broker down")

type fixture struct {
	svc       *DefaultBookingService
	bookings  *memBookings
	idem      *memIdempotency
	audit     *memAudit
	catalog   *memCatalog
	publisher *recordingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  newMemBookings(),
		idem:      newMemIdempotency(),
		audit:     &memAudit{},
		catalog:   &memCatalog{},
		publisher: &recordingPublisher{},
	}
	f.svc = NewBookingService(f.bookings, f.idem, f.audit, f.catalog, f.publisher)
	return f
}

package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"safarexpress/handlers"
	"safarexpress/middleware"
	"safarexpress/services/token"
	"safarexpress/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type upReporter struct{}

func (upReporter) Status() utils.HealthStatus { return utils.HealthStatus{Mongo: true} }

func newBundle() *handlers.HandlerBundle {
	return &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(nil),
		Booking: handlers.NewBookingHandler(nil),
		Public:  handlers.NewPublicHandler(nil),
		Admin:   handlers.NewAdminHandler(nil),
		Health:  handlers.NewHealthHandler(upReporter{}),
		Tokens:  token.NewService("access-secret-for-tests", "refresh-secret-for-tests", 0, 0),
	}
}

func newRouter() *gin.Engine {
	return newRouterWith(newBundle())
}

func newRouterWith(hb *handlers.HandlerBundle) *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.RegisterValidators()
	r := gin.New()
	RegisterRoutes(r, hb, []string{"http://localhost:3000"})
	return r
}

func TestUnknownRouteEnvelope(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/nowhere", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Success bool           `json:"success"`
		Error   utils.APIError `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Success || body.Error.Code != "route_not_found" || body.Error.Detail != "Route GET /api/v1/nowhere not found" {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestHealthAliases(t *testing.T) {
	r := newRouter()
	for _, path := range []string{"/health", "/api/v1/health", "/health/live", "/health/ready"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s status = %d", path, w.Code)
		}
	}
}

func TestProtectedGroupsRequireToken(t *testing.T) {
	r := newRouter()
	for _, path := range []string{"/api/v1/bookings", "/api/v1/admin/routes"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s status = %d", path, w.Code)
		}
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("allow origin = %q (status %d)", got, w.Code)
	}
}

func TestRequestLimiterOnlyWrapsAuth(t *testing.T) {
	hb := newBundle()
	hb.RequestLimiter = middleware.RateLimitMiddleware(2)
	r := newRouterWith(hb)

	send := func(method, path, body string) int {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 5; i++ {
		if code := send(http.MethodGet, "/api/v1/bookings", ""); code != http.StatusUnauthorized {
			t.Errorf("bookings request %d: status %d", i+1, code)
		}
		if code := send(http.MethodPost, "/api/v1/public/search", "{}"); code != http.StatusBadRequest {
			t.Errorf("search request %d: status %d", i+1, code)
		}
		if code := send(http.MethodGet, "/health", ""); code != http.StatusOK {
			t.Errorf("health request %d: status %d", i+1, code)
		}
	}

	var codes []int
	for i := 0; i < 4; i++ {
		codes = append(codes, send(http.MethodPost, "/api/v1/auth/login", "{}"))
	}
	if codes[0] != http.StatusBadRequest || codes[3] != http.StatusTooManyRequests {
		t.Errorf("auth codes = %v, want 400 first and 429 last", codes)
	}
}

func TestGlobalMiddlewareCountsRecoveredPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := utils.NewMetrics()
	r := gin.New()
	UseGlobalMiddleware(r, m, zap.NewNop())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Header().Get(utils.RequestIDHeader) == "" || w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("headers missing on recovered response: %v", w.Header())
	}

	snap := m.Snapshot()
	if snap.ErrorsTotal != 1 || snap.RequestsByRoute["GET /boom"] != 1 {
		t.Errorf("snapshot = %+v", snap)
	}
}

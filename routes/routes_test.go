package routes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"oroserver/config"
	"oroserver/handlers"
	"oroserver/hubspot"
	"oroserver/middleware"
	"oroserver/models"
	"oroserver/routes"
	"oroserver/services/scheduling"
	"oroserver/utils"
)

// newTestServer wires the real service and handlers against a fake upstream
// and a throwaway static bundle, mirroring the production middleware chain.
func newTestServer(t *testing.T, upstream http.HandlerFunc) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.MaxBodyBytes = 1024
	config.AppConfig.MaxRequestsPerMin = 1000

	up := httptest.NewServer(upstream)
	t.Cleanup(up.Close)

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>entry</html>"), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(staticDir, "app.js"), []byte("console.log('hi')"), 0o644); err != nil {
		t.Fatalf("write asset: %v", err)
	}

	svc := &scheduling.DefaultSchedulingService{
		Upstream: hubspot.NewClient(up.URL, 5*time.Second),
		Slug:     "advisory-intro",
		Location: "meetings.hubspot.com",
	}

	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestIDMiddleware())
	routes.RegisterRoutes(router,
		handlers.NewSchedulingHandler(svc, utils.GetLogger()),
		handlers.NewStaticHandler(staticDir))

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func emptyBookInfo(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(`{"linkAvailability":{"linkAvailabilityByDuration":{}}}`))
}

func TestHealthRoute(t *testing.T) {
	ts := newTestServer(t, emptyBookInfo)
	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health status %d", res.StatusCode)
	}
}

func TestMonthAvailabilityEndToEnd(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"linkAvailability":{"linkAvailabilityByDuration":{
			"1800000":{"availabilities":[{"startMillisUtc":1767261600000,"endMillisUtc":1767263400000}]},
			"2700000":{"availabilities":[{"startMillisUtc":1767348000000,"endMillisUtc":1767350700000}]}
		}}}`))
	})

	res, err := http.Get(ts.URL + "/api/availability/month?month=2026-01&timezone=UTC")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var body models.MonthAvailability
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.DurationMs == nil || *body.DurationMs != 1800000 {
		t.Fatalf("expected shortest duration selected, got %v", body.DurationMs)
	}
	// 1767261600000 is 2026-01-01T10:00:00Z.
	if len(body.Days) != 1 || body.Days[0].Date != "2026-01-01" {
		t.Fatalf("unexpected days %+v", body.Days)
	}
}

func TestMonthAvailabilityInvalidMonth(t *testing.T) {
	upstreamCalled := false
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
		emptyBookInfo(w, r)
	})

	for _, month := range []string{"2025-13", "bad-format"} {
		res, err := http.Get(ts.URL + "/api/availability/month?month=" + month)
		if err != nil {
			t.Fatalf("availability: %v", err)
		}
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("month %q: expected 400, got %d", month, res.StatusCode)
		}
	}
	if upstreamCalled {
		t.Fatal("invalid month reached the upstream")
	}
}

func TestMonthAvailabilityUpstreamDown(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	res, err := http.Get(ts.URL + "/api/availability/month?month=2026-01")
	if err != nil {
		t.Fatalf("availability: %v", err)
	}
	if res.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", res.StatusCode)
	}
	var body utils.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body.Details, "503") {
		t.Fatalf("upstream status not surfaced: %+v", body)
	}
}

func TestBookingEndToEnd(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST upstream, got %s", r.Method)
		}
		_, _ = w.Write([]byte(`{"confirmed":true,"id":"bk_1"}`))
	})

	payload := `{"firstName":"Jo","lastName":"Doe","email":"jo@example.com","startTime":1767261600000,"duration":1800000}`
	res, err := http.Post(ts.URL+"/api/booking", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	raw := new(bytes.Buffer)
	_, _ = raw.ReadFrom(res.Body)
	if raw.String() != `{"confirmed":true,"id":"bk_1"}` {
		t.Fatalf("confirmation not opaque: %s", raw.String())
	}
}

func TestBookingValidationFailures(t *testing.T) {
	upstreamCalled := false
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	})

	cases := []string{
		`{"firstName":"","lastName":"Doe","email":"a@b.com","startTime":123,"duration":1800000}`,
		`{"firstName":"Jo","lastName":"Doe","email":"a@b.com","startTime":"abc","duration":1800000}`,
	}
	for _, payload := range cases {
		res, err := http.Post(ts.URL+"/api/booking", "application/json", strings.NewReader(payload))
		if err != nil {
			t.Fatalf("booking: %v", err)
		}
		if res.StatusCode != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, res.StatusCode)
		}
	}
	if upstreamCalled {
		t.Fatal("invalid booking reached the upstream")
	}
}

func TestBookingUpstreamStatusForwarded(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"slot taken"}`))
	})

	payload := `{"firstName":"Jo","lastName":"Doe","email":"jo@example.com","startTime":1767261600000,"duration":1800000}`
	res, err := http.Post(ts.URL+"/api/booking", "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("expected upstream 409 forwarded, got %d", res.StatusCode)
	}
	var body utils.ErrorResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body.Details, "slot taken") {
		t.Fatalf("upstream body not surfaced: %+v", body)
	}
}

func TestBookingBodyTooLarge(t *testing.T) {
	upstreamCalled := false
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		upstreamCalled = true
	})

	big := `{"notes":"` + strings.Repeat("x", 2048) + `"}`
	res, err := http.Post(ts.URL+"/api/booking", "application/json", strings.NewReader(big))
	if err != nil {
		t.Fatalf("booking: %v", err)
	}
	if res.StatusCode != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", res.StatusCode)
	}
	if upstreamCalled {
		t.Fatal("oversized body reached the upstream")
	}
}

func TestCORSReflectsOriginEvenOnErrors(t *testing.T) {
	ts := newTestServer(t, emptyBookInfo)

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/api/availability/month?month=bad-format", nil)
	req.Header.Set("Origin", "http://studio.example.com")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "http://studio.example.com" {
		t.Fatalf("origin not reflected on error path, got %q", got)
	}

	preflight, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/booking", nil)
	preflight.Header.Set("Origin", "http://studio.example.com")
	preflight.Header.Set("Access-Control-Request-Method", "POST")
	res, err = http.DefaultClient.Do(preflight)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", res.StatusCode)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	ts := newTestServer(t, emptyBookInfo)
	res, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if res.Header.Get("X-Request-ID") == "" {
		t.Fatal("request id missing from response")
	}
}

func TestStaticAndSPAFallback(t *testing.T) {
	ts := newTestServer(t, emptyBookInfo)

	res, err := http.Get(ts.URL + "/app.js")
	if err != nil {
		t.Fatalf("asset: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for asset, got %d", res.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/some/client/route", nil)
	req.Header.Set("Accept", "text/html")
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	raw := new(bytes.Buffer)
	_, _ = raw.ReadFrom(res.Body)
	if res.StatusCode != http.StatusOK || !strings.Contains(raw.String(), "entry") {
		t.Fatalf("SPA fallback failed: %d %s", res.StatusCode, raw.String())
	}

	req, _ = http.NewRequest(http.MethodGet, ts.URL+"/missing.json", nil)
	req.Header.Set("Accept", "application/json")
	res, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("miss: %v", err)
	}
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for non-HTML miss, got %d", res.StatusCode)
	}
}

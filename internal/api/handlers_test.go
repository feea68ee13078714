package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Newrona-pi/Twilio-mensetsu/internal/config"
	"github.com/Newrona-pi/Twilio-mensetsu/internal/storage/sqlite"
	"github.com/Newrona-pi/Twilio-mensetsu/pkg/logger"
)

func newTestRouter(t *testing.T) (*Router, *sqlite.AppointmentStorage) {
	t.Helper()

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api_test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	log := logger.Nop()
	appointments, err := sqlite.NewAppointmentStorage(db, log)
	if err != nil {
		t.Fatalf("failed to create appointment storage: %v", err)
	}
	callbacks, err := sqlite.NewCallbackStorage(db, log)
	if err != nil {
		t.Fatalf("failed to create callback storage: %v", err)
	}

	return NewRouter(config.Default(), appointments, callbacks, log), appointments
}

func TestVoiceEntryReturnsStreamTwiML(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/voice/entry", nil)
	req.Host = "bridge.example.com"
	rec := httptest.NewRecorder()
	router.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/xml" {
		t.Errorf("content type = %q, want text/xml", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<Connect>") {
		t.Errorf("TwiML missing <Connect>: %s", body)
	}
	if !strings.Contains(body, "wss://bridge.example.com/voice/stream") {
		t.Errorf("TwiML missing stream URL for request host: %s", body)
	}
	if !strings.Contains(body, "inbound_track") {
		t.Errorf("TwiML missing inbound track selection: %s", body)
	}
}

func TestGetAppointments(t *testing.T) {
	router, appointments := newTestRouter(t)

	if _, err := appointments.Append(&sqlite.AppointmentRecord{
		StreamSID: "MZ1",
		Date:      "2025-06-13",
		Time:      "13:00",
		Messages:  "折り返し希望",
	}); err != nil {
		t.Fatalf("failed to seed appointment: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()
	router.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Appointments []sqlite.AppointmentRecord `json:"appointments"`
		Count        int                        `json:"count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 1 || len(resp.Appointments) != 1 {
		t.Fatalf("count = %d with %d records, want 1", resp.Count, len(resp.Appointments))
	}
	if resp.Appointments[0].Date != "2025-06-13" {
		t.Errorf("appointment date = %q", resp.Appointments[0].Date)
	}
}

func TestCORSAllowsInspectionReads(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://ops.example.com")
	rec := httptest.NewRecorder()
	router.Routes().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example.com" {
		t.Errorf("Allow-Origin = %q, want the request origin", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Errorf("Allow-Credentials = %q, want unset", got)
	}

	preflight := httptest.NewRequest(http.MethodOptions, "/api/v1/health", nil)
	preflight.Header.Set("Origin", "https://ops.example.com")
	rec = httptest.NewRecorder()
	router.Routes().ServeHTTP(rec, preflight)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "GET") {
		t.Errorf("Allow-Methods = %q, want GET", got)
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	router, _ := newTestRouter(t)

	cfg := config.Default()
	cfg.Server.CORSAllowedOrigins = []string{"https://ops.example.com"}
	restricted := NewRouter(cfg, router.handler.appointments, router.handler.callbacks, logger.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec := httptest.NewRecorder()
	restricted.Routes().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Allow-Origin = %q for an unlisted origin, want unset", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d; an unlisted origin is still served, just without CORS headers", rec.Code)
	}
}

func TestGetHealth(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	router.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %v, want ok", resp["status"])
	}
}

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ehr/visitreview/internal/config"
	"github.com/ehr/visitreview/internal/domain/review"
	"github.com/ehr/visitreview/internal/fixtures"
	"github.com/ehr/visitreview/internal/platform/websocket"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:               "0",
		Env:                "test",
		LogLevel:           "debug",
		CORSOrigins:        []string{"http://localhost:5173"},
		FixtureSource:      config.FixtureSourceStatic,
		DBMaxConns:         1,
		SessionIdleTimeout: 30 * time.Minute,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
	}
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// ---------------------------------------------------------------------------
// Wiring
// ---------------------------------------------------------------------------

func TestNewApp_Health(t *testing.T) {
	a := newApp(testConfig(), zerolog.Nop(), fixtures.Static(), nil)

	rec := do(t, a.echo, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers")
	}

	if rec := do(t, a.echo, http.MethodGet, "/health/db", ""); rec.Code != http.StatusNotFound {
		t.Errorf("expected /health/db to be absent without a pool, got %d", rec.Code)
	}
}

func TestNewApp_RegistersDomainRoutes(t *testing.T) {
	a := newApp(testConfig(), zerolog.Nop(), fixtures.Static(), nil)

	for _, path := range []string{
		"/api/v1/patients",
		"/api/v1/patients/p1",
		"/api/v1/visits",
		"/api/v1/visits/v1/transcript",
		"/api/v1/orders",
		"/api/v1/insurance-notes",
		"/api/v1/portal/v1",
	} {
		if rec := do(t, a.echo, http.MethodGet, path, ""); rec.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestNewApp_ReviewEventsReachHub(t *testing.T) {
	a := newApp(testConfig(), zerolog.Nop(), fixtures.Static(), nil)

	rec := do(t, a.echo, http.MethodPost, "/api/v1/review-sessions", `{"visit_id":"v1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var opened struct {
		SessionID uuid.UUID `json:"session_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &opened); err != nil {
		t.Fatalf("decode: %v", err)
	}

	client := &websocket.Client{ID: "test", Topics: []string{sessionTopic(opened.SessionID)}, Send: make(chan []byte, 8)}
	a.hub.Register(client)
	defer a.hub.Unregister(client)

	rec = do(t, a.echo, http.MethodPost, "/api/v1/review-sessions/"+opened.SessionID.String()+"/sections/orders/confirm", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	select {
	case msg := <-client.Send:
		var evt websocket.Event
		if err := json.Unmarshal(msg, &evt); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if evt.Type != string(review.EventSectionConfirmed) {
			t.Errorf("expected section-confirmed, got %s", evt.Type)
		}
		if !bytes.Contains(evt.Data, []byte(`"section":"orders"`)) {
			t.Errorf("expected section in data, got %s", evt.Data)
		}
	default:
		t.Fatal("expected an event on the session topic")
	}
}

func TestNewApp_UnknownVisitIsNotFound(t *testing.T) {
	a := newApp(testConfig(), zerolog.Nop(), fixtures.Static(), nil)

	rec := do(t, a.echo, http.MethodPost, "/api/v1/review-sessions", `{"visit_id":"v999"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if a.sessions.Len() != 0 {
		t.Errorf("expected no session for an unknown visit, got %d", a.sessions.Len())
	}
}

func TestNewApp_RejectsInvalidOpenRequest(t *testing.T) {
	a := newApp(testConfig(), zerolog.Nop(), fixtures.Static(), nil)

	rec := do(t, a.echo, http.MethodPost, "/api/v1/review-sessions", `{"visit_id":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if a.sessions.Len() != 0 {
		t.Errorf("expected no sessions, got %d", a.sessions.Len())
	}
}

func TestNewLogger_Level(t *testing.T) {
	cfg := testConfig()
	cfg.LogLevel = "warn"
	if got := newLogger(cfg).GetLevel(); got != zerolog.WarnLevel {
		t.Errorf("expected warn level, got %s", got)
	}
	cfg.LogLevel = "loud"
	if got := newLogger(cfg).GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("expected info fallback, got %s", got)
	}
}

func TestLoadCatalog_Static(t *testing.T) {
	set, pool, err := loadCatalog(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pool != nil {
		t.Error("expected no pool for static fixtures")
	}
	if !reflect.DeepEqual(set, fixtures.Static()) {
		t.Error("expected the built-in fixtures")
	}
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

type capturePublisher struct {
	events []websocket.Event
}

func (p *capturePublisher) Publish(_ context.Context, e websocket.Event) error {
	p.events = append(p.events, e)
	return nil
}

func TestHubEmitters_PublishesToSessionTopic(t *testing.T) {
	pub := &capturePublisher{}
	id := uuid.MustParse("3f1c6a52-0000-4000-8000-000000000001")
	emit := hubEmitters(pub, zerolog.Nop())(id)

	at := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	emit.Emit(review.Event{Type: review.EventAllConfirmed, VisitID: "v1", At: at})

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	got := pub.events[0]
	if got.Topic != "review-session:3f1c6a52-0000-4000-8000-000000000001" {
		t.Errorf("unexpected topic %q", got.Topic)
	}
	if got.Type != "all-confirmed" || !got.Timestamp.Equal(at) {
		t.Errorf("unexpected event %+v", got)
	}
	var data review.Event
	if err := json.Unmarshal(got.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.VisitID != "v1" {
		t.Errorf("expected visit v1 in data, got %q", data.VisitID)
	}
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, websocket.Event) error {
	return errors.New("hub closed")
}

func TestHubEmitters_LogsPublishFailure(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.MustParse("3f1c6a52-0000-4000-8000-000000000002")
	emit := hubEmitters(failingPublisher{}, zerolog.New(&buf))(id)

	emit.Emit(review.Event{Type: review.EventSectionEdited, VisitID: "v1", Section: review.SectionOrders})

	out := buf.String()
	if !strings.Contains(out, `"message":"publish review event"`) || !strings.Contains(out, `"error":"hub closed"`) {
		t.Errorf("expected publish failure to be logged, got %s", out)
	}
	if !strings.Contains(out, `"topic":"review-session:3f1c6a52-0000-4000-8000-000000000002"`) {
		t.Errorf("expected topic in log, got %s", out)
	}
}

// ---------------------------------------------------------------------------
// Fixture commands
// ---------------------------------------------------------------------------

func TestDumpDocuments_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := dumpDocuments(&buf, fixtures.Static()); err != nil {
		t.Fatalf("dump: %v", err)
	}
	set, err := decodeDocuments(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(set, fixtures.Static()) {
		t.Error("decoded fixtures differ from the dumped ones")
	}
}

func TestReportProblems(t *testing.T) {
	var buf bytes.Buffer
	if err := reportProblems(&buf, fixtures.Static()); err != nil {
		t.Fatalf("expected built-in fixtures to pass, got %v", err)
	}
	if strings.TrimSpace(buf.String()) != "fixtures ok" {
		t.Errorf("unexpected output %q", buf.String())
	}

	broken := fixtures.Static()
	broken.VisitList[0].PatientID = "p9"
	buf.Reset()
	if err := reportProblems(&buf, broken); err == nil {
		t.Error("expected an error for broken fixtures")
	}
	if !strings.Contains(buf.String(), "p9") {
		t.Errorf("expected the dangling patient in output, got %q", buf.String())
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := rootCmd()
	want := map[string]bool{"serve": false, "migrate": false, "fixtures": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s subcommand", name)
		}
	}
}

func TestFixturesDumpCommand(t *testing.T) {
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"fixtures", "dump"})
	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	var docs []fixtures.Document
	if err := json.Unmarshal(out.Bytes(), &docs); err != nil {
		t.Fatalf("dump output is not a document list: %v", err)
	}
	if len(docs) == 0 || docs[0].Kind != fixtures.KindPatient {
		t.Errorf("expected patients first, got %+v", docs[:1])
	}
}

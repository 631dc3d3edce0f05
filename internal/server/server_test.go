package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/me/seekplan/internal/config"
	"github.com/me/seekplan/internal/metrics"
	"github.com/me/seekplan/internal/store"
	"github.com/me/seekplan/pkg/model"
)

const textbookBody = `{"policy":"%s","requests":[98,183,37,122,14,124,65,67],"head":53,"previous":52,"disk_size":200%s}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testServer() *Server {
	return New(config.DefaultServerConfig(), testLogger())
}

func testServerWithStore(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewSQLiteStore(":memory:", testLogger())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	if err := st.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(config.DefaultServerConfig(), testLogger(), WithStore(st))
}

// envelope is used to decode the standard response envelope.
type envelope struct {
	Status     string            `json:"status"`
	RequestID  string            `json:"request_id"`
	Timestamp  string            `json:"timestamp"`
	Data       json.RawMessage   `json:"data"`
	Pagination *model.Pagination `json:"pagination"`
	Error      *model.APIError   `json:"error"`
}

func do(t *testing.T, srv *Server, method, path, body string, wantStatus int) envelope {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != wantStatus {
		t.Fatalf("%s %s: status=%d, want %d, body=%s", method, path, w.Code, wantStatus, w.Body.String())
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("%s %s: invalid JSON: %v", method, path, err)
	}
	return env
}

func doGet(t *testing.T, srv *Server, path string) envelope {
	t.Helper()
	return do(t, srv, "GET", path, "", http.StatusOK)
}

func decodeRun(t *testing.T, env envelope) model.Run {
	t.Helper()
	var run model.Run
	if err := json.Unmarshal(env.Data, &run); err != nil {
		t.Fatalf("decode run: %v", err)
	}
	return run
}

func scheduleBody(policy, extra string) string {
	return strings.Replace(strings.Replace(textbookBody, "%s", policy, 1), "%s", extra, 1)
}

func TestDiscovery(t *testing.T) {
	srv := testServer()
	env := doGet(t, srv, "/api/v1/")
	if env.Status != "ok" {
		t.Errorf("status = %q, want ok", env.Status)
	}
	if env.RequestID == "" {
		t.Error("request_id is empty")
	}

	var data struct {
		Name      string `json:"name"`
		Endpoints []struct {
			Path string `json:"path"`
		} `json:"endpoints"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Name != "seekplan API" {
		t.Errorf("name = %q, want seekplan API", data.Name)
	}
	if len(data.Endpoints) != 4 {
		t.Errorf("endpoints count = %d, want 4 without a store", len(data.Endpoints))
	}

	env = doGet(t, testServerWithStore(t), "/api/v1/")
	json.Unmarshal(env.Data, &data)
	if len(data.Endpoints) != 8 {
		t.Errorf("endpoints count = %d, want 8 with a store", len(data.Endpoints))
	}
}

func TestHealth(t *testing.T) {
	srv := testServer()
	env := doGet(t, srv, "/api/v1/health")

	var data struct {
		Status    string `json:"status"`
		Version   string `json:"version"`
		GoVersion string `json:"go_version"`
		Store     string `json:"store"`
	}
	json.Unmarshal(env.Data, &data)
	if data.Status != "healthy" {
		t.Errorf("health status = %q, want healthy", data.Status)
	}
	if data.Version != "0.1.0" {
		t.Errorf("version = %q, want 0.1.0", data.Version)
	}
	if data.Store != "disabled" {
		t.Errorf("store = %q, want disabled", data.Store)
	}
}

func TestListPolicies(t *testing.T) {
	env := doGet(t, testServer(), "/api/v1/policies")
	var data []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	json.Unmarshal(env.Data, &data)
	if len(data) != len(model.Policies) {
		t.Fatalf("policies = %d, want %d", len(data), len(model.Policies))
	}
	for i, p := range model.Policies {
		if data[i].Name != p.String() {
			t.Errorf("policies[%d] = %q, want %q", i, data[i].Name, p)
		}
		if data[i].Description == "" {
			t.Errorf("policies[%d] has no description", i)
		}
	}
}

func TestSchedule(t *testing.T) {
	tests := []struct {
		policy    string
		extra     string
		movement  int
		direction model.Direction
	}{
		{"FCFS", "", 640, model.DirectionUp},
		{"sstf", "", 236, model.DirectionUp},
		{"SCAN", "", 331, model.DirectionUp},
		{"SCAN", `,"direction":"down"`, 236, model.DirectionDown},
		{"c-scan", "", 382, model.DirectionUp},
		{"LOOK", `,"direction":"down"`, 208, model.DirectionDown},
		{"C_LOOK", "", 322, model.DirectionUp},
	}
	srv := testServer()
	for _, tt := range tests {
		t.Run(tt.policy+tt.extra, func(t *testing.T) {
			env := do(t, srv, "POST", "/api/v1/schedule", scheduleBody(tt.policy, tt.extra), http.StatusOK)
			run := decodeRun(t, env)
			if !strings.HasPrefix(run.ID, "run_") {
				t.Errorf("id = %q, want run_ prefix", run.ID)
			}
			if run.Result.TotalMovement != tt.movement {
				t.Errorf("total_movement = %d, want %d", run.Result.TotalMovement, tt.movement)
			}
			if run.Direction != tt.direction {
				t.Errorf("direction = %q, want %q", run.Direction, tt.direction)
			}
			if run.Result.Sequence[0] != 53 {
				t.Errorf("sequence[0] = %d, want head 53", run.Result.Sequence[0])
			}
		})
	}
}

func TestSchedule_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code model.ErrorCode
	}{
		{"invalid json", "not json", model.ErrValidation},
		{"unknown policy", `{"policy":"ELEVATOR","requests":[1],"head":0,"previous":0,"disk_size":10}`, model.ErrUnknownPolicy},
		{"missing policy", `{"requests":[1],"head":0,"previous":0,"disk_size":10}`, model.ErrUnknownPolicy},
		{"request out of range", `{"policy":"FCFS","requests":[10],"head":0,"previous":0,"disk_size":10}`, model.ErrRange},
		{"head out of range", `{"policy":"FCFS","requests":[1],"head":-1,"previous":0,"disk_size":10}`, model.ErrRange},
		{"bad disk size", `{"policy":"FCFS","requests":[],"head":0,"previous":0,"disk_size":0}`, model.ErrRange},
		{"bad direction", `{"policy":"SCAN","requests":[1],"head":0,"previous":0,"disk_size":10,"direction":"sideways"}`, model.ErrInputFormat},
		{"persist without store", `{"policy":"FCFS","requests":[1],"head":0,"previous":0,"disk_size":10,"persist":true}`, model.ErrValidation},
	}
	srv := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := do(t, srv, "POST", "/api/v1/schedule", tt.body, http.StatusBadRequest)
			if env.Status != "error" {
				t.Errorf("status = %q, want error", env.Status)
			}
			if env.Error == nil || env.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", env.Error, tt.code)
			}
		})
	}
}

func TestSchedule_TooManyRequests(t *testing.T) {
	cfg := config.DefaultServerConfig()
	cfg.MaxRequests = 3
	srv := New(cfg, testLogger())
	body := `{"policy":"FCFS","requests":[1,2,3,4],"head":0,"previous":0,"disk_size":10}`
	env := do(t, srv, "POST", "/api/v1/schedule", body, http.StatusBadRequest)
	if env.Error == nil || len(env.Error.Details) != 1 || env.Error.Details[0].Field != "requests" {
		t.Errorf("error = %+v, want requests field detail", env.Error)
	}
}

func TestSchedule_EmptyRequests(t *testing.T) {
	body := `{"policy":"SSTF","requests":[],"head":4,"previous":4,"disk_size":10}`
	run := decodeRun(t, do(t, testServer(), "POST", "/api/v1/schedule", body, http.StatusOK))
	if run.Result.TotalMovement != 0 || len(run.Result.Sequence) != 1 {
		t.Errorf("result = %+v, want head only", run.Result)
	}
}

func TestCompare(t *testing.T) {
	env := do(t, testServer(), "POST", "/api/v1/compare", scheduleBody("", ""), http.StatusOK)
	var data struct {
		Direction   model.Direction    `json:"direction"`
		Comparisons []model.Comparison `json:"comparisons"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if data.Direction != model.DirectionUp {
		t.Errorf("direction = %q, want up", data.Direction)
	}
	want := []struct {
		policy   model.Policy
		movement int
	}{
		{model.PolicySSTF, 236},
		{model.PolicyLOOK, 299},
		{model.PolicyCLOOK, 322},
		{model.PolicySCAN, 331},
		{model.PolicyCSCAN, 382},
		{model.PolicyFCFS, 640},
	}
	if len(data.Comparisons) != len(want) {
		t.Fatalf("comparisons = %d, want %d", len(data.Comparisons), len(want))
	}
	for i, w := range want {
		c := data.Comparisons[i]
		if c.Rank != i+1 || c.Policy != w.policy || c.Result.TotalMovement != w.movement {
			t.Errorf("comparisons[%d] = {%d %s %d}, want {%d %s %d}",
				i, c.Rank, c.Policy, c.Result.TotalMovement, i+1, w.policy, w.movement)
		}
	}
}

func TestCompare_Invalid(t *testing.T) {
	body := `{"requests":[5],"head":0,"previous":0,"disk_size":5}`
	env := do(t, testServer(), "POST", "/api/v1/compare", body, http.StatusBadRequest)
	if env.Error == nil || env.Error.Code != model.ErrRange {
		t.Errorf("error = %+v, want RANGE_ERROR", env.Error)
	}
}

func TestRunsRequireStore(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/runs", nil)
	w := httptest.NewRecorder()
	testServer().ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET /runs without store: status=%d, want 404", w.Code)
	}
}

func TestPersistedRunLifecycle(t *testing.T) {
	srv := testServerWithStore(t)

	env := do(t, srv, "POST", "/api/v1/schedule", scheduleBody("SSTF", `,"persist":true,"label":"textbook"`), http.StatusCreated)
	created := decodeRun(t, env)
	if created.Label != "textbook" {
		t.Errorf("label = %q, want textbook", created.Label)
	}

	got := decodeRun(t, doGet(t, srv, "/api/v1/runs/"+created.ID))
	if got.ID != created.ID || got.Result.TotalMovement != 236 {
		t.Errorf("GET run = %+v, want id %s movement 236", got, created.ID)
	}

	do(t, srv, "POST", "/api/v1/schedule", scheduleBody("FCFS", `,"persist":true`), http.StatusCreated)
	do(t, srv, "POST", "/api/v1/schedule", scheduleBody("FCFS", ""), http.StatusOK)

	list := doGet(t, srv, "/api/v1/runs")
	if list.Pagination == nil || list.Pagination.Total != 2 {
		t.Fatalf("pagination = %+v, want total 2", list.Pagination)
	}
	var runs []model.Run
	json.Unmarshal(list.Data, &runs)
	if len(runs) != 2 || runs[0].Policy != model.PolicyFCFS {
		t.Errorf("runs = %+v, want newest FCFS first", runs)
	}

	filtered := doGet(t, srv, "/api/v1/runs?policy=sstf&limit=1")
	if filtered.Pagination.Total != 1 || filtered.Pagination.Limit != 1 {
		t.Errorf("filtered pagination = %+v, want total 1 limit 1", filtered.Pagination)
	}

	latest := decodeRun(t, doGet(t, srv, "/api/v1/policies/SSTF/latest"))
	if latest.ID != created.ID {
		t.Errorf("latest SSTF = %s, want %s", latest.ID, created.ID)
	}
	do(t, srv, "GET", "/api/v1/policies/LOOK/latest", "", http.StatusNotFound)

	do(t, srv, "DELETE", "/api/v1/runs/"+created.ID, "", http.StatusOK)
	env = do(t, srv, "GET", "/api/v1/runs/"+created.ID, "", http.StatusNotFound)
	if env.Error == nil || env.Error.Code != model.ErrNotFound {
		t.Errorf("error = %+v, want NOT_FOUND", env.Error)
	}
	do(t, srv, "DELETE", "/api/v1/runs/"+created.ID, "", http.StatusNotFound)
}

func TestListRuns_BadQuery(t *testing.T) {
	srv := testServerWithStore(t)
	do(t, srv, "GET", "/api/v1/runs?limit=abc", "", http.StatusBadRequest)
	env := do(t, srv, "GET", "/api/v1/runs?policy=ELEVATOR", "", http.StatusBadRequest)
	if env.Error == nil || env.Error.Code != model.ErrUnknownPolicy {
		t.Errorf("error = %+v, want UNKNOWN_POLICY", env.Error)
	}
}

func TestPlotRun(t *testing.T) {
	srv := testServerWithStore(t)
	run := decodeRun(t, do(t, srv, "POST", "/api/v1/schedule", scheduleBody("LOOK", `,"persist":true`), http.StatusCreated))

	req := httptest.NewRequest("GET", "/api/v1/runs/"+run.ID+"/plot?width=40", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("plot: status=%d, body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if !strings.Contains(w.Body.String(), "Total head movement: 299 cylinders over 8 seeks") {
		t.Errorf("plot missing footer:\n%s", w.Body.String())
	}

	do(t, srv, "GET", "/api/v1/runs/"+run.ID+"/plot?width=1", "", http.StatusBadRequest)
	do(t, srv, "GET", "/api/v1/runs/run_missing/plot", "", http.StatusNotFound)
}

func TestRateLimit(t *testing.T) {
	cfg := config.DefaultServerConfig()
	cfg.RateLimit = 0.001
	cfg.RateBurst = 1
	m := metrics.New()
	srv := New(cfg, testLogger(), WithMetrics(m))

	doGet(t, srv, "/api/v1/health")

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("Retry-After header missing")
	}

	// /metrics sits outside the limited API group.
	req = httptest.NewRequest("GET", "/metrics", nil)
	w = httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "seekplan_http_rate_limited_total 1") {
		t.Errorf("rate limited counter not exported:\n%s", w.Body.String())
	}
}

func TestMetricsRecordsRuns(t *testing.T) {
	m := metrics.New()
	srv := New(config.DefaultServerConfig(), testLogger(), WithMetrics(m))
	do(t, srv, "POST", "/api/v1/schedule", scheduleBody("SSTF", ""), http.StatusOK)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	body := w.Body.String()
	for _, want := range []string{
		`seekplan_runs_total{outcome="ok",policy="SSTF"} 1`,
		`route="/api/v1/schedule"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %s", want)
		}
	}
}

func TestResponseEnvelope_HasRequestID(t *testing.T) {
	srv := testServer()
	env := doGet(t, srv, "/api/v1/health")
	if !strings.HasPrefix(env.RequestID, "req_") {
		t.Errorf("request_id = %q, want req_ prefix", env.RequestID)
	}
	if env.Timestamp == "" {
		t.Error("timestamp is empty")
	}
}

func TestResponseEnvelope_XRequestIDHeader(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	xReqID := w.Header().Get("X-Request-ID")
	if !strings.HasPrefix(xReqID, "req_") {
		t.Errorf("X-Request-ID header = %q, want req_ prefix", xReqID)
	}
}

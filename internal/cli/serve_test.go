package cli

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/matzehuels/burst/pkg/host"
)

// startChartServer mounts a chart with items on a running window and serves
// it. The returned stop function tears everything down.
func startChartServer(t *testing.T, items []any) (*httptest.Server, func()) {
	t.Helper()

	cfg, err := (&chartFlags{}).resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	win := host.NewWindow(200, nil)
	ctx, cancel := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = win.Run(ctx)
	}()

	srv := newChartServer(win, discardLogger())
	if err := srv.mount(ctx, cfg, items); err != nil {
		cancel()
		<-loopDone
		t.Fatalf("mount: %v", err)
	}
	ts := httptest.NewServer(srv.routes())

	return ts, func() {
		ts.Close()
		srv.unmount(context.Background())
		cancel()
		<-loopDone
	}
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestServeChartSVG(t *testing.T) {
	defer goleak.VerifyNone(t)
	ts, stop := startChartServer(t, []any{"a", "b"})
	defer stop()

	resp, err := ts.Client().Get(ts.URL + "/chart.svg")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if got := strings.Count(string(body), "<circle"); got != 2 {
		t.Errorf("svg has %d circles, want 2", got)
	}
}

func TestServeData(t *testing.T) {
	defer goleak.VerifyNone(t)
	ts, stop := startChartServer(t, []any{"a", "b"})
	defer stop()

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/data", strings.NewReader(`["x", "y", "z"]`))
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	var rendered renderResponse
	decodeJSON(t, resp, &rendered)
	if resp.StatusCode != http.StatusOK || rendered.Nodes != 3 {
		t.Fatalf("PUT /data = %d %+v, want 200 with 3 nodes", resp.StatusCode, rendered)
	}

	resp, err = ts.Client().Get(ts.URL + "/data")
	if err != nil {
		t.Fatal(err)
	}
	var data []any
	decodeJSON(t, resp, &data)
	if len(data) != 3 || data[0] != "x" {
		t.Errorf("GET /data = %v, want [x y z]", data)
	}
}

func TestServeDataRejectsBadBody(t *testing.T) {
	defer goleak.VerifyNone(t)
	ts, stop := startChartServer(t, []any{"a"})
	defer stop()

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/data", strings.NewReader(`{"a": 1}`))
	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if body["error"] == "" {
		t.Error("error message missing")
	}
}

func TestServeResize(t *testing.T) {
	defer goleak.VerifyNone(t)
	ts, stop := startChartServer(t, []any{"a", "b", "c"})
	defer stop()

	resp, err := ts.Client().Post(ts.URL+"/resize?width=300", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	var resized resizeResponse
	decodeJSON(t, resp, &resized)
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", resp.StatusCode)
	}
	if resized.State != "pending" {
		t.Errorf("state = %q, want pending", resized.State)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := ts.Client().Get(ts.URL + "/healthz")
		if err != nil {
			t.Fatal(err)
		}
		var health healthResponse
		decodeJSON(t, resp, &health)
		if health.Resize == "idle" && health.Width == 300 {
			if health.Nodes != 3 || health.Listeners != 1 {
				t.Errorf("health = %+v, want 3 nodes and 1 listener", health)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("chart never re-rendered at width 300: %+v", health)
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestServeResizeRejectsWidth(t *testing.T) {
	defer goleak.VerifyNone(t)
	ts, stop := startChartServer(t, nil)
	defer stop()

	for _, q := range []string{"", "?width=wide", "?width=-1", "?width=NaN", "?width=Inf", "?width=%2BInf", "?width=-Inf", "?width=1e400"} {
		resp, err := ts.Client().Post(ts.URL+"/resize"+q, "", nil)
		if err != nil {
			t.Fatal(err)
		}
		var body map[string]string
		decodeJSON(t, resp, &body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("POST /resize%s = %d, want 400", q, resp.StatusCode)
		}
		if body["error"] == "" {
			t.Errorf("POST /resize%s: error message missing", q)
		}
	}

	// Rejected widths never reach the chart.
	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	var health healthResponse
	decodeJSON(t, resp, &health)
	if health.Width != 200 || health.Resize != "idle" {
		t.Errorf("health = %+v, want width 200 and idle", health)
	}
}

func TestWriteJSONEncodeFailure(t *testing.T) {
	srv := newChartServer(nil, discardLogger())
	rec := httptest.NewRecorder()
	srv.writeJSON(rec, http.StatusOK, map[string]float64{"width": math.NaN()})

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("body %q is not JSON: %v", rec.Body.String(), err)
	}
	if body["error"] == "" {
		t.Error("error message missing")
	}
}

func TestServeHealth(t *testing.T) {
	defer goleak.VerifyNone(t)
	ts, stop := startChartServer(t, []any{"a"})
	defer stop()

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	var health healthResponse
	decodeJSON(t, resp, &health)
	if health.Status != "ok" || health.Nodes != 1 || health.Width != 200 || health.Resize != "idle" {
		t.Errorf("health = %+v", health)
	}
	if health.Build.Version == "" {
		t.Error("build version missing")
	}
}

func TestServeUnavailableAfterLoopStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	win := host.NewWindow(200, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = win.Run(ctx)
	}()
	cancel()
	<-done

	srv := newChartServer(win, discardLogger())
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/chart.svg", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

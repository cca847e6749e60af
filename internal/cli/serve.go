package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/burst/pkg/buildinfo"
	"github.com/matzehuels/burst/pkg/burst"
	"github.com/matzehuels/burst/pkg/config"
	bursterrors "github.com/matzehuels/burst/pkg/errors"
	"github.com/matzehuels/burst/pkg/host"
	burstio "github.com/matzehuels/burst/pkg/io"
)

const (
	defaultAddr     = "localhost:8080"
	shutdownTimeout = 5 * time.Second
	maxBodyBytes    = 1 << 20
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	chart chartFlags
	addr  string
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a live chart over HTTP",
		Long: `Serve a live chart over HTTP.

The chart lives in an event loop like a browser page does. Endpoints:

  GET  /chart.svg           current chart
  GET  /data                current items (JSON)
  PUT  /data                replace the items (JSON array) and re-render
  POST /resize?width=W      resize the container; re-renders after 150ms of quiet
  GET  /healthz             build info and chart state`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDataFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args[0], &opts)
		},
	}

	opts.chart.bind(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}

// runServe runs the window loop and the HTTP server until ctx is cancelled,
// then shuts the server down, destroys the chart and stops the loop.
func (c *CLI) runServe(ctx context.Context, input string, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := opts.chart.resolve()
	if err != nil {
		return err
	}

	items, err := burstio.ImportData(input)
	if err != nil {
		return err
	}

	win := host.NewWindow(opts.chart.width, logger)
	srv := newChartServer(win, logger)

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := win.Run(loopCtx); !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if err := srv.mount(gctx, cfg, items); err != nil {
		stopLoop()
		_ = g.Wait()
		return err
	}

	httpSrv := &http.Server{
		Addr:              opts.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := httpSrv.Shutdown(shutdownCtx)
		srv.unmount(shutdownCtx)
		stopLoop()
		logger.Debug("server stopped")
		return err
	})

	printSuccess("Serving %d items", len(items))
	printLink("Open", "http://"+opts.addr+"/chart.svg")

	return g.Wait()
}

// chartServer exposes a chart living on a window loop over HTTP. The chart is
// only touched from the loop.
type chartServer struct {
	win    *host.Window
	chart  *burst.Chart
	logger *log.Logger
}

func newChartServer(win *host.Window, logger *log.Logger) *chartServer {
	return &chartServer{win: win, logger: logger}
}

// mount creates the chart on the loop and renders the initial items.
func (s *chartServer) mount(ctx context.Context, cfg *config.Config, items []any) error {
	var err error
	if doErr := s.win.Do(ctx, func() {
		var c *burst.Chart
		c, err = mountChart(s.win.Body, cfg, s.win, s.logger)
		if err != nil {
			return
		}
		c.Render(items)
		s.chart = c
	}); doErr != nil {
		return doErr
	}
	return err
}

// unmount destroys the chart, releasing its resize subscription.
func (s *chartServer) unmount(ctx context.Context) {
	_ = s.win.Do(ctx, func() {
		if s.chart != nil {
			s.chart.Destroy()
		}
	})
}

func (s *chartServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/chart.svg", s.handleSVG)
	r.Get("/data", s.handleGetData)
	r.Put("/data", s.handlePutData)
	r.Post("/resize", s.handleResize)
	return r
}

func (s *chartServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"bytes", ww.BytesWritten(), "took", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}

type healthResponse struct {
	Status    string         `json:"status"`
	Build     buildinfo.Info `json:"build"`
	Nodes     int            `json:"nodes"`
	Width     float64        `json:"width"`
	Resize    string         `json:"resize"`
	Listeners int            `json:"listeners"`
}

func (s *chartServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Build: buildinfo.Current()}
	if !s.onLoop(w, r, func() {
		resp.Nodes = len(s.chart.Nodes())
		resp.Width = s.chart.Layout().Width
		resp.Resize = s.chart.ResizeState().String()
		resp.Listeners = s.win.Listeners()
	}) {
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *chartServer) handleSVG(w http.ResponseWriter, r *http.Request) {
	var out []byte
	if !s.onLoop(w, r, func() { out = s.chart.Target().SVG() }) {
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(out)
}

func (s *chartServer) handleGetData(w http.ResponseWriter, r *http.Request) {
	var data []any
	if !s.onLoop(w, r, func() { data = s.chart.Data() }) {
		return
	}
	if data == nil {
		data = []any{}
	}
	s.writeJSON(w, http.StatusOK, data)
}

type renderResponse struct {
	Nodes int `json:"nodes"`
}

func (s *chartServer) handlePutData(w http.ResponseWriter, r *http.Request) {
	items, err := burstio.ReadData(http.MaxBytesReader(w, r.Body, maxBodyBytes), burstio.FormatJSON)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, bursterrors.UserMessage(err))
		return
	}
	var resp renderResponse
	if !s.onLoop(w, r, func() {
		s.chart.Render(items)
		resp.Nodes = len(s.chart.Nodes())
	}) {
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type resizeResponse struct {
	Width float64 `json:"width"`
	State string  `json:"state"`
}

func (s *chartServer) handleResize(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.ParseFloat(r.URL.Query().Get("width"), 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "width must be a number")
		return
	}
	if err := bursterrors.ValidateWidth(width); err != nil {
		s.writeError(w, http.StatusBadRequest, bursterrors.UserMessage(err))
		return
	}
	var resp resizeResponse
	if !s.onLoop(w, r, func() {
		s.win.Resize(width)
		resp = resizeResponse{Width: width, State: s.chart.ResizeState().String()}
	}) {
		return
	}
	s.writeJSON(w, http.StatusAccepted, resp)
}

// onLoop runs fn on the window loop. It writes an error response and returns
// false if the loop is gone or the request was cancelled.
func (s *chartServer) onLoop(w http.ResponseWriter, r *http.Request, fn func()) bool {
	if err := s.win.Do(r.Context(), fn); err != nil {
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
		return false
	}
	return true
}

// writeJSON encodes v before writing the header. A value that cannot be
// encoded is logged and answered with a 500.
func (s *chartServer) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "error", err, "status", status)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"cannot encode response"}` + "\n"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil {
		s.logger.Debug("write response", "error", err)
	}
}

func (s *chartServer) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

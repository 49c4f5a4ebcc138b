// Package server serves the trending dashboard and its JSON API.
package server

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/elonfeng/ytdash/internal/logging"
	"github.com/elonfeng/ytdash/pkg/dataset"
)

const shutdownTimeout = 10 * time.Second

// Options configures a Server.
type Options struct {
	Addr           string
	DefaultChannel string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	Logger         *slog.Logger
}

// Server renders views of one prepared table. The table is never modified,
// so handlers share it without locking.
type Server struct {
	table          *dataset.Table
	defaultChannel string
	minDate        civil.Date
	maxDate        civil.Date

	opts    Options
	log     *slog.Logger
	metrics *metrics
	router  chi.Router
}

// New creates a server over t. The default channel falls back to the
// table's first channel when t does not contain opts.DefaultChannel.
func New(t *dataset.Table, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8050"
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		table:          t,
		defaultChannel: opts.DefaultChannel,
		opts:           opts,
		log:            log.With(slog.String("component", "server")),
		metrics:        newMetrics(),
	}
	if !t.HasChannel(s.defaultChannel) {
		s.defaultChannel = ""
		if chs := t.Channels(); len(chs) > 0 {
			s.defaultChannel = chs[0].Name
		}
	}
	s.minDate, s.maxDate, _ = t.Bounds()
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.AccessLog(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleDashboard)
	r.Get("/overview", s.handleOverview)
	r.Get("/charts/{kind}", s.handleChart)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", s.metrics.handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/channels", s.handleChannels)
		r.Get("/bounds", s.handleBounds)
		r.Get("/view", s.handleView)
		r.Get("/view.xlsx", s.handleViewXLSX)
	})
	return r
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler {
	return s.router
}

// DefaultChannel returns the channel selected when a request names none.
func (s *Server) DefaultChannel() string {
	return s.defaultChannel
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Addr,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("ytdash server listening", "addr", s.opts.Addr, "rows", s.table.Len())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// view builds the filtered view for one consumer and records it.
func (s *Server) view(consumer string, q viewQuery) *dataset.Table {
	v := dataset.FilterView(s.table, q.Channel, q.Start, q.End)
	s.metrics.observeView(consumer, v.Len())
	return v
}

// writeBody sends a fully rendered body so render failures can still
// produce an error status.
func writeBody(w http.ResponseWriter, contentType string, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

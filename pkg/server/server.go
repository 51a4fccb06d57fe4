// Package server is a demo incidents API with the same wire contract as the
// real backend: GET /incidents?page=N returns a JSON array of at most
// PageSize incidents and the total count in X-Total-Count.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/clcollins/hero/pkg/incidents"
	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultPageSize = 5

	totalCountHeader = "X-Total-Count"
)

type Server struct {
	incidents []incidents.Incident
	pageSize  int
	latency   time.Duration
	router    *mux.Router
}

type Option func(*Server)

// WithLatency delays every response, useful to watch the loading states
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func New(list []incidents.Incident, opts ...Option) *Server {
	s := &Server{
		incidents: list,
		pageSize:  DefaultPageSize,
		router:    mux.NewRouter(),
	}
	for _, o := range opts {
		o(s)
	}

	s.router.HandleFunc("/incidents", s.listIncidents).Methods(http.MethodGet)
	s.router.HandleFunc("/incidents/{id}", s.getIncident).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) wait(ctx context.Context) {
	if s.latency <= 0 {
		return
	}
	select {
	case <-time.After(s.latency):
	case <-ctx.Done():
	}
}

func (s *Server) listIncidents(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			http.Error(w, fmt.Sprintf("invalid page %q", p), http.StatusBadRequest)
			return
		}
		page = n
	}

	s.wait(r.Context())

	start := len(s.incidents)
	if page-1 <= len(s.incidents)/s.pageSize {
		start = min((page-1)*s.pageSize, len(s.incidents))
	}
	end := min(start+s.pageSize, len(s.incidents))

	w.Header().Set(totalCountHeader, strconv.Itoa(len(s.incidents)))
	w.Header().Set("Access-Control-Expose-Headers", totalCountHeader)
	body := s.incidents[start:end]
	if body == nil {
		body = []incidents.Incident{}
	}
	writeJSON(w, http.StatusOK, body)
	log.Debug("server.listIncidents", "page", page, "count", end-start)
}

func (s *Server) getIncident(w http.ResponseWriter, r *http.Request) {
	id := incidents.ID(mux.Vars(r)["id"])
	for _, i := range s.incidents {
		if i.ID == id {
			writeJSON(w, http.StatusOK, i)
			return
		}
	}
	http.Error(w, "incident not found", http.StatusNotFound)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("server.writeJSON", "error", err)
	}
}

// Run serves on addr until ctx is done
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.serve(ctx, ln)
}

func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server.Run", "addr", ln.Addr().String(), "incidents", len(s.incidents), "bodysize", s.pageSize)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

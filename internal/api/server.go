// Package api serves layouts and buildings over HTTP.
//
// Routes:
//
//	GET  /healthz
//	POST /v1/layouts/{variant}     body: pipeline.Options
//	POST /v1/buildings             body: building.Spec (over defaults)
//	GET  /v1/buildings/{id}        planned building as JSON
//	GET  /v1/buildings/{id}.svg    elevation, ?side=north|east|south|west
//
// Every response carries an X-Request-ID header. Errors are JSON objects of
// the form {"error": {"code": "...", "message": "..."}}.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/skyline/pkg/pipeline"
)

// Defaults for [Options].
const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxPlans = 256
	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes = 1 << 20
)

// Options configures a [Server].
type Options struct {
	Runner   *pipeline.Runner
	Logger   *log.Logger
	Timeout  time.Duration
	MaxPlans int
}

// Server holds the handlers' shared state.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	timeout time.Duration
	plans   *planStore
}

// New creates a server. A nil runner gets an uncached one.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Runner == nil {
		opts.Runner = pipeline.NewRunner(nil, nil, opts.Logger)
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxPlans <= 0 {
		opts.MaxPlans = DefaultMaxPlans
	}
	return &Server{
		runner:  opts.Runner,
		logger:  opts.Logger,
		timeout: opts.Timeout,
		plans:   newPlanStore(opts.MaxPlans),
	}
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.observe)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layouts/{variant}", s.createLayout)
		r.Post("/buildings", s.createBuilding)
		r.Get("/buildings/{id}.svg", s.buildingSVG)
		r.Get("/buildings/{id}", s.getBuilding)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound("no route for %s %s", r.Method, r.URL.Path))
	})
	return r
}

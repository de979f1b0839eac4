package calculator

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/calcdesk/pkg/httpserver"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures what the calculator module mounts.
type RouterOptions struct {
	// Desk serves the calculator itself at the root.
	Desk Mountable
	// Checks back the readiness probe.
	Checks []httpserver.Check
	Logger *slog.Logger
}

// Router creates the module router: health probes plus the desk service.
//
//	desks, _ := calculator.NewRegistry(cfg.Calc, log)
//	svc := calculator.NewService(cfg.Calc, sessions, desks, nil, nil, log)
//
//	r := chi.NewRouter()
//	r.Mount("/", calculator.Router(calculator.RouterOptions{
//	    Desk:   svc,
//	    Checks: []httpserver.Check{{Name: "redis", Fn: redis.Healthcheck(client)}},
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", httpserver.LivenessHandler())
	r.Get("/readyz", httpserver.ReadinessHandler(opts.Logger, opts.Checks...))

	if opts.Desk != nil {
		r.Mount("/", opts.Desk.Handle())
	}
	return r
}

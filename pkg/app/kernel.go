package app

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/kidsisland/config"
	"github.com/shashiranjanraj/kidsisland/pkg/database"
	"github.com/shashiranjanraj/kidsisland/pkg/metrics"
	"github.com/shashiranjanraj/kidsisland/pkg/middleware"
	"github.com/shashiranjanraj/kidsisland/pkg/reqid"
	"github.com/shashiranjanraj/kidsisland/pkg/response"
	"github.com/shashiranjanraj/kidsisland/pkg/router"
)

// Handler builds the HTTP handler. Boot must have succeeded.
func (a *Application) Handler() (http.Handler, error) {
	if !a.booted {
		return nil, errors.New("app: Handler called before Boot")
	}

	r := router.New()

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics  outermost for total latency
	//  2. Recovery            panics become 500s
	//  3. Request ID          before anything logs
	//  4. Logger              request-scoped logger + access log
	//  5. CORS                every origin is allowed
	//  6. Rate limiter        reject abusers early
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	if a.limiter != nil {
		r.Use(middleware.RateLimit(a.limiter, config.TrustProxy()))
	}

	r.NotFound(response.NotFound)
	r.HandleFunc("/metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		if err := fn(r, a.store, a.gateway); err != nil {
			return nil, err
		}
	}

	return r.Handler(), nil
}

// RouteTable registers routes against a throwaway memory store, for
// route:list. Nothing is booted.
func (a *Application) RouteTable() ([]router.RouteInfo, error) {
	r := router.New()
	for _, fn := range a.routesFns {
		if err := fn(r, database.NewMemory(), nil); err != nil {
			return nil, err
		}
	}
	return r.Routes(), nil
}

// Package app assembles the storefront: it owns the store, payment gateway,
// rate limiter and log sink, and builds the HTTP handler from them.
//
//	a := app.New().Routes(routes.RegisterAPI)
//	if err := a.Serve(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Tests inject their own collaborators before booting:
//
//	a := app.New().
//	    WithStore(database.NewMemory()).
//	    WithGateway(fakeGateway{}).
//	    Routes(routes.RegisterAPI)
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/kidsisland/config"
	"github.com/shashiranjanraj/kidsisland/pkg/cache"
	"github.com/shashiranjanraj/kidsisland/pkg/database"
	"github.com/shashiranjanraj/kidsisland/pkg/logger"
	"github.com/shashiranjanraj/kidsisland/pkg/middleware"
	"github.com/shashiranjanraj/kidsisland/pkg/payment"
	"github.com/shashiranjanraj/kidsisland/pkg/router"
)

// RouteFunc mounts routes using the booted collaborators.
type RouteFunc func(r *router.Router, store *database.Store, gateway payment.Gateway) error

// Application is the central object of the storefront process.
type Application struct {
	routesFns []RouteFunc

	store    *database.Store
	ownStore bool
	gateway  payment.Gateway
	limiter  middleware.Limiter
	rdb      *redis.Client
	booted   bool
}

func New() *Application {
	return &Application{}
}

// Routes adds a route-registration callback. Callbacks run in order.
func (a *Application) Routes(fn RouteFunc) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// WithStore uses s instead of connecting from config. The caller keeps
// ownership and closes it.
func (a *Application) WithStore(s *database.Store) *Application {
	a.store = s
	return a
}

func (a *Application) WithGateway(g payment.Gateway) *Application {
	a.gateway = g
	return a
}

func (a *Application) WithLimiter(l middleware.Limiter) *Application {
	a.limiter = l
	return a
}

func (a *Application) Store() *database.Store { return a.store }

// Boot loads config and acquires every collaborator not injected already.
// A store that cannot be reached fails the boot. Anything acquired before
// the failure is released.
func (a *Application) Boot(ctx context.Context) (err error) {
	if a.booted {
		return nil
	}
	if err := config.Load(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	if coll := config.LogMongoCollection(); coll != "" && config.DatabaseDriver() == "mongo" {
		if err := logger.EnableMongoSink(config.MongoURI(), config.DatabaseName(), coll); err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		}
	}

	if a.store == nil {
		store, err := database.Connect(ctx)
		if err != nil {
			return err
		}
		a.store, a.ownStore = store, true
		logger.Info("document store connected", "driver", store.Driver(), "db", config.DatabaseName())
	}

	if a.gateway == nil {
		if config.StripeSecretKey() == "" {
			logger.Warn("STRIPE_SECRET_KEY is not set; payment intents will fail")
		}
		a.gateway = payment.NewStripeGateway(config.StripeSecretKey(), nil)
	}

	if a.limiter == nil {
		a.limiter = a.newLimiter(ctx)
	}

	a.booted = true
	return nil
}

// newLimiter prefers a shared Redis window and falls back to process memory.
// It returns nil when RATE_LIMIT is 0.
func (a *Application) newLimiter(ctx context.Context) middleware.Limiter {
	limit := config.RateLimit()
	if limit == 0 {
		return nil
	}

	rdb, err := cache.Connect(ctx)
	switch {
	case err != nil:
		logger.Warn("redis unavailable, rate limiting in memory", "error", err)
	case rdb != nil:
		a.rdb = rdb
		return middleware.NewRedisLimiter(rdb, limit, time.Minute)
	}
	return middleware.NewMemoryLimiter(limit, time.Minute)
}

// Close releases everything Boot acquired. Injected stores are left open.
func (a *Application) Close(ctx context.Context) error {
	var errs []error

	if a.ownStore && a.store != nil {
		errs = append(errs, a.store.Close(ctx))
		a.store, a.ownStore = nil, false
	}
	if a.rdb != nil {
		errs = append(errs, a.rdb.Close())
		a.rdb = nil
	}
	logger.Close()

	a.booted = false
	return errors.Join(errs...)
}

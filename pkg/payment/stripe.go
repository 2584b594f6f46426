package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/shashiranjanraj/kidsisland/pkg/errs"
	"github.com/shashiranjanraj/kidsisland/pkg/logger"
	"github.com/shashiranjanraj/kidsisland/pkg/metrics"
)

// StripeGateway creates card-only USD payment intents through Stripe.
type StripeGateway struct {
	api        *client.API
	configured bool
}

// NewStripeGateway builds a gateway for key. A nil backends uses Stripe's
// production API with request logs routed through pkg/logger.
func NewStripeGateway(key string, backends *stripe.Backends) *StripeGateway {
	if backends == nil {
		backends = stripe.NewBackendsWithConfig(&stripe.BackendConfig{
			LeveledLogger: stripeLogger{},
		})
	}
	return &StripeGateway{
		api:        client.New(key, backends),
		configured: key != "",
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 || ToMinorUnits(price) <= 0 {
		return "", fmt.Errorf("payment: price must be positive, got %v: %w", price, errs.ErrInvalidArgument)
	}
	if !g.configured {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		return "", fmt.Errorf("payment: STRIPE_SECRET_KEY is not set: %w", errs.ErrUpstream)
	}

	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(ToMinorUnits(price)),
		Currency:           stripe.String(Currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		return "", fmt.Errorf("payment: create intent: %v: %w", err, errs.ErrUpstream)
	}

	metrics.PaymentIntents.WithLabelValues("created").Inc()
	logger.WithCtx(ctx).Info("payment intent created", "intent", pi.ID, "amount", pi.Amount)
	return pi.ClientSecret, nil
}

// stripeLogger adapts stripe's leveled logger onto slog.
type stripeLogger struct{}

func (stripeLogger) Debugf(format string, v ...interface{}) {
	logger.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (stripeLogger) Infof(format string, v ...interface{}) {
	logger.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (stripeLogger) Warnf(format string, v ...interface{}) {
	logger.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}

func (stripeLogger) Errorf(format string, v ...interface{}) {
	logger.Error(fmt.Sprintf(format, v...), "component", "stripe")
}

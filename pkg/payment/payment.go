// Package payment creates payment intents for checkout.
package payment

import (
	"context"
	"math"
)

// Currency is the only currency the storefront charges in.
const Currency = "usd"

// Gateway creates a payment intent for a price in major units and returns
// the client secret the browser uses to confirm it.
type Gateway interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

// ToMinorUnits converts dollars to cents, rounding to the nearest cent.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

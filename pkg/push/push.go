// Package push delivers notifications to a device push token.
package push

import (
	"context"
	"errors"
)

var ErrDeliveryRejected = errors.New("push delivery rejected")

// Transport reports delivery success with a nil error. It never retries.
type Transport interface {
	Send(ctx context.Context, token, title, body string) error
}

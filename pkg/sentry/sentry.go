package sentry

import (
	"context"
	"time"

	sentrygo "github.com/getsentry/sentry-go"
)

var enabled bool

// Init configures the Sentry SDK. A missing DSN disables reporting; every
// capture call below becomes a no-op so callers never need to check.
func Init(dsn, environment string) error {
	if dsn == "" {
		return nil
	}

	err := sentrygo.Init(sentrygo.ClientOptions{
		Dsn:         dsn,
		Environment: environment,
	})
	if err != nil {
		return err
	}
	enabled = true
	return nil
}

// CaptureError reports an unexpected failure with the acting user attached
// when one is known.
func CaptureError(err error, userID string) {
	if !enabled || err == nil {
		return
	}

	sentrygo.WithScope(func(scope *sentrygo.Scope) {
		if userID != "" {
			scope.SetUser(sentrygo.User{ID: userID})
		}
		sentrygo.CaptureException(err)
	})
}

// CaptureMessage reports a non-error event.
func CaptureMessage(msg string) {
	if !enabled || msg == "" {
		return
	}
	sentrygo.CaptureMessage(msg)
}

// Flush drains pending events before shutdown.
func Flush(ctx context.Context) {
	if !enabled {
		return
	}

	deadline := 2 * time.Second
	if d, ok := ctx.Deadline(); ok {
		deadline = time.Until(d)
	}
	sentrygo.Flush(deadline)
}

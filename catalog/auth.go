package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

// ErrUnauthorized means the API rejected the bearer token.
var ErrUnauthorized = errors.New("token rejected")

const (
	verifyAttempts  = 3
	verifyBaseDelay = 500 * time.Millisecond
)

/*
VerifyToken asks the API whether the configured token is still valid.

Network errors and 5xx responses are retried with exponential backoff
and jitter; 401 and 403 are final and wrap ErrUnauthorized.
*/
func (c *Client) VerifyToken(ctx context.Context) error {
	var err error
	delay := verifyBaseDelay

	for attempt := 1; attempt <= verifyAttempts; attempt++ {
		if _, err = c.do(ctx, http.MethodGet, "/api/auth/verify", nil); err == nil {
			return nil
		}

		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			switch {
			case httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden:
				return fmt.Errorf("%w: status %d", ErrUnauthorized, httpErr.StatusCode)
			case httpErr.StatusCode < http.StatusInternalServerError:
				return err
			}
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if attempt == verifyAttempts {
			break
		}

		jitter := time.Duration(rand.Int64N(int64(delay)/2 + 1))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.after(delay + jitter):
		}
		delay *= 2
	}
	return fmt.Errorf("verify token: %w", err)
}

package middleware

import (
	"net/http"
	"time"
)

const timeoutBody = `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"request timed out"}}`

// Timeout bounds handler execution; the body matches the API error envelope.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		d = 30 * time.Second
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, timeoutBody)
	}
}

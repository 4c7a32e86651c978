package httpkit

import (
	"net/http"
	"time"

	"bizdash/internal/platform/net/middleware"
)

// StackOptions tunes CommonStack
type StackOptions struct {
	CORSOrigins []string
	Slow        time.Duration
	Timeout     time.Duration
}

// CommonStack returns the middleware applied to the versioned API router
func CommonStack(o StackOptions) []func(http.Handler) http.Handler {
	return append(middleware.Defaults(o.Timeout, o.Slow),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: o.CORSOrigins}),
		middleware.StripSlashes(),
	)
}

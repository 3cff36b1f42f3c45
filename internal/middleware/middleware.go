// Package middleware provides the echo middleware chain: request ids, request
// scoped loggers, New Relic tracing, rate limiting, request logging, CORS and
// the global error handler.
package middleware

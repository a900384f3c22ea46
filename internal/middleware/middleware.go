// Package middleware holds the echo middleware of the API: request ids,
// request-scoped loggers, New Relic tracing, bearer token authentication,
// rate limiting and the global error handler.
package middleware

// Package middleware holds the echo middleware chain: request ids, the
// request-scoped logger, request logging, tracing, metrics and the global
// error handler.
package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/placesapi/placesapi/internal/server"
)

// Middlewares is built once and handed to the router.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
}

// NewMiddlewares wires every middleware from the server. Tracing degrades
// to a pass-through when New Relic is not configured.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
		Metrics:         NewMetricsMiddleware(s),
	}
}

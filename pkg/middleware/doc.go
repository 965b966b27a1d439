// Package middleware provides the site's net/http observability middleware.
//
// This package includes:
//   - OpenTelemetry tracing, one server span per request
//   - Prometheus request metrics that also record live session activity
//   - Structured request logging with log/slog
//
// All three label requests by chi route pattern, so mount them with
// Router.Use inside a chi router:
//
//	metrics := middleware.NewMetrics(middleware.WithNamespace("kbc"))
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(), metrics.Handler, middleware.RequestLogger(logger))
//	r.Handle("/metrics", promhttp.Handler())
//
// # Prometheus Metrics
//
// Metrics implements live.Recorder, so the same value is passed to the live
// hub config to count sessions, reveals, counter frames and socket errors:
//   - kbc_http_requests_total{route,code}
//   - kbc_http_request_duration_seconds{route}
//   - kbc_live_sessions
//   - kbc_reveals_total{kind}
//   - kbc_counter_frames_total
//   - kbc_websocket_errors_total{type}
//
// # Context Propagation
//
// The OpenTelemetry middleware replaces the request context, so handlers
// and anything they call inherit the span:
//
//	span := trace.SpanFromContext(r.Context())
//	span.SetAttributes(attribute.Int("kbc.regions", n))
package middleware

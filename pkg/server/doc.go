// Package server serves the KBC Construction page.
//
// Routes:
//
//	GET /               server-rendered page, regions in their hidden state
//	GET /_live          WebSocket endpoint for live sessions (see package live)
//	GET /_kbc/live.js   browser client, ETag revalidated
//	GET /healthz        {"status":"ok","sessions":N}
//	GET /metrics        Prometheus exposition, when metrics are enabled
//	GET /images/*       files from the public directory
//	GET /videos/*       files from the public directory
//
// Every page request builds a fresh ui.Mount. Region ids are assigned in
// document order, so the ids in the served HTML match the specs the live hub
// hands to each session.
//
// Shutdown closes the live sessions before http.Server.Shutdown, since
// hijacked WebSocket connections are not tracked by the HTTP server.
package server

// Package server exposes dependency queries to the debugger panel over HTTP
// and socket.io.
//
// Routes:
//
//	GET  /health
//	GET  /metrics
//	GET  /v1/graph
//	GET  /v1/entities/:name/dependencies?mode=entity|raw
//	POST /v1/dependencies
//	     /socket.io/  (event "dependencies" -> "dependencies:result")
//
// Queries against the graph loaded at startup are cached in an LRU keyed by
// mode and target. Posted graphs are evaluated on the fly and never cached.
package server

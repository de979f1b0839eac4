// Package requestid attaches a correlation ID to every HTTP request and MCP
// tool call.
//
// Middleware reuses a client-supplied X-Request-ID when it is at most 128
// characters of [a-zA-Z0-9_-], otherwise generates a UUID. The ID is echoed
// in the response header and stored in the request context, where
// LoggerExtractor picks it up for every slog record:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware)
package requestid

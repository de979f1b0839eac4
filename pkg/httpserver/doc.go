// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until the context is cancelled, SIGINT/SIGTERM arrives or
// Shutdown is called. Request contexts derive from a base context that is
// cancelled at the start of shutdown, which ends open SSE streams promptly.
// Start and stop hooks let the binary log lifecycle events and release
// resources (desk registry, session store, Redis client).
//
//	srv := httpserver.NewFromConfig(cfg.HTTP,
//	    httpserver.WithLogger(log),
//	    httpserver.WithStopHook(func(*slog.Logger) { desks.Close() }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler back the /healthz and /readyz probes.
//
// Errors from Run are wrapped with ErrStart, errors from Shutdown with
// ErrShutdown.
package httpserver

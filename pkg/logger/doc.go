// Package logger builds *slog.Logger values for calcdesk binaries.
//
// New applies a set of Option functions, picks a text or JSON handler and
// wraps it with LogHandlerDecorator, which appends attributes pulled from the
// record's context (request and session identifiers) on every call:
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, cfg.Name),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	logger.SetAsDefault(log)
//
// attr.go holds constructors for the attribute keys used across the module
// (Error, RequestID, SessionID, Action, Phase, Component, Event). Error and
// Errors return an empty Attr for nil errors, so
//
//	log.Info("pressed", logger.Error(err))
//
// needs no nil check.
package logger

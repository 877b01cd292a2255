/*
Package observability provides lifecycle hooks for monitoring the gatefold engine.

Metrics turns lowering events into Prometheus series, LoggingHooks writes them to
a slog.Logger, and Chain combines several hook sets into one.
*/
package observability

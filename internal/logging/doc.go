// Package logging wraps log/slog with shortreel's structured logging
// conventions: standardized field keys, a human-oriented console handler,
// an optional JSON handler, and helpers for deriving loggers from context.
package logging

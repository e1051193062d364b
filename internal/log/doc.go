// Package log builds the slog loggers used by lineup.
//
// Loggers write text records at Warn level, or Debug when verbose, through
// a RedactingHandler. Per-site request headers configured for a wiki can
// carry credentials, and page addresses can embed user info, so the
// handler masks header-like attributes, credential-looking values and URL
// passwords before a record reaches its output.
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
//
// The interactive browser owns the terminal, so it logs to a file instead:
//
//	logger, closer, err := log.NewFileLogger(path, verbose)
package log

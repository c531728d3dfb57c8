// Package log provides the loggers used by smellscan, built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Configurable log levels with verbose mode support
//   - Source paths logged relative to the working directory
//   - Consistent log formatting across the application
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Debug("smells detected",
//	    "source", "/home/user/project/internal/app/app.go", // logged as "internal/app/app.go"
//	    "count", 3,
//	)
//
//	slog.SetDefault(logger)
package log

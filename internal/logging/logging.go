// SPDX-License-Identifier: EPL-2.0

// Package logging configures the process-wide slog logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var ErrUnknownLevel = errors.New("unexpected log level")

// ConfigureDefaultLogger installs a default slog logger at logLevel.
//
// Valid levels are "none", "error", "warn", "info" and "debug". With an
// empty logFile the logger writes text to stderr, which keeps stdout free
// for audio; otherwise it writes JSON to logFile, truncating it.
//
// The returned file, if any, is the one slog writes to and should be
// closed by the caller:
//
//	logFile, err := logging.ConfigureDefaultLogger("info", "", slog.HandlerOptions{})
//	if logFile != nil {
//		defer logFile.Close()
//	}
func ConfigureDefaultLogger(logLevel string, logFile string, loggerOptions slog.HandlerOptions) (*os.File, error) {
	switch logLevel {
	case "none":
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil, nil
	case "error":
		loggerOptions.Level = slog.LevelError
	case "warn":
		loggerOptions.Level = slog.LevelWarn
	case "info":
		loggerOptions.Level = slog.LevelInfo
	case "debug":
		loggerOptions.Level = slog.LevelDebug
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, logLevel)
	}

	var logFilePointer *os.File
	var slogHandler slog.Handler
	if logFile == "" {
		slogHandler = slog.NewTextHandler(os.Stderr, &loggerOptions)
	} else {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		logFilePointer = f
		slogHandler = slog.NewJSONHandler(f, &loggerOptions)
	}

	slog.SetDefault(slog.New(slogHandler))
	return logFilePointer, nil
}

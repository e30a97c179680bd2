package utils

import (
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
)

// SetupLogger installs a colored console handler and, when logFile is set, a
// plain text handler appending to that file. The returned func closes the file.
func SetupLogger(level, logFile string) (*slog.Logger, func(), error) {
	envLogLevel := strings.ToLower(level)
	var slogLevel slog.Level
	err := slogLevel.UnmarshalText([]byte(envLogLevel))
	if err != nil {
		log.Printf("encountered log level: '%s'. The package does not support custom log levels", envLogLevel)
		slogLevel = slog.LevelDebug
	}
	slog.SetLogLoggerLevel(slogLevel)

	replaceAttrs := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.SourceKey {
			if source, ok := a.Value.Any().(*slog.Source); ok {
				source.File = filepath.Base(source.File)
			}
		}
		return a
	}

	handlers := []slog.Handler{tint.NewHandler(os.Stdout, &tint.Options{
		AddSource:   true,
		Level:       slogLevel,
		ReplaceAttr: replaceAttrs,
	})}

	closeFile := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		closeFile = func() { _ = f.Close() }
		handlers = append(handlers, slog.NewTextHandler(f, &slog.HandlerOptions{
			AddSource:   true,
			Level:       slogLevel,
			ReplaceAttr: replaceAttrs,
		}))
	}

	logger := slog.New(slogmulti.Fanout(handlers...))
	slog.SetDefault(logger)
	logger.Debug("debug messages are enabled")

	return logger, closeFile, nil
}

package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/config"
)

// NewLogger builds a named hclog logger. The SOLIDITY_ANALYZER_LOG_LEVEL
// environment variable takes precedence over the configuration file.
func NewLogger(config *config.Config, name string) hclog.Logger {
	var logLevel hclog.Level

	if logLevelEnv := os.Getenv("SOLIDITY_ANALYZER_LOG_LEVEL"); logLevelEnv != "" {
		logLevel = getLogLevel(strings.ToUpper(logLevelEnv))
	} else if config != nil && config.Logger.Level != "" {
		logLevel = getLogLevel(strings.ToUpper(config.Logger.Level))
	} else {
		logLevel = hclog.Info
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		Output:      os.Stderr,
		Level:       logLevel,
	})

	return logger
}

// GetLoggerOutput exposes the logger as an io.Writer for subprocess-style
// progress streams, inferring levels from the written lines.
func GetLoggerOutput(logger hclog.Logger) io.Writer {
	return logger.StandardWriter(&hclog.StandardLoggerOptions{
		InferLevels: true,
		ForceLevel:  hclog.Debug,
	})
}

func getLogLevel(levelStr string) hclog.Level {
	switch levelStr {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "INFO":
		return hclog.Info
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}

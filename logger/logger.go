package logger

import (
	"os"
	"strings"

	"github.com/Scalingo/sclng-starred-repos/config"
	"github.com/sirupsen/logrus"
)

// Setup will configure logrus logger
// logs always go to stderr, stdout is reserved to the repositories summary
func Setup(cfg config.Config) {
	logrus.SetOutput(os.Stderr)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	if cfg.Logs.OutputLogsAsJson {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	logrus.SetLevel(StringToLogrusLogType(cfg.Logs.Level))
}

// StringToLogrusLogType will convert string to the right logrus level
func StringToLogrusLogType(logLevel string) logrus.Level {
	switch strings.ToLower(logLevel) {
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	// stderr also carries the single user facing error line of the cli,
	// unknown levels keep it free of error logs
	default:
		return logrus.WarnLevel
	}
}

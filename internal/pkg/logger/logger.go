package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

func NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(logrus.InfoLevel)

	return log
}

// SetLevel applies a textual level such as "debug" and keeps the current one
// when the value cannot be parsed.
func SetLevel(log *logrus.Logger, level string) {
	if level == "" {
		return
	}

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		log.Warnf("Unknown log level %q, keeping %s", level, log.GetLevel())
		return
	}

	log.SetLevel(parsed)
}

// Package observability provides the service logger and Prometheus metrics.
package observability

import (
	"github.com/sirupsen/logrus"
)

// NewLogger creates the JSON-formatted service logger. Unknown level strings
// fall back to info.
func NewLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	return log
}

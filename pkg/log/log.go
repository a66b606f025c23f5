// Package log builds the logrus entries used by the diagnostics sinks: verbose
// output in development, error-level only in production.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewEntry returns a logrus.Entry writing JSON to out. When debug is true (or the
// DEBUG env var is "TRUE"), the entry logs at the level named by LOG_LEVEL, or at
// debug level if that is unset or invalid; otherwise it stays at error level.
func NewEntry(out io.Writer, debug bool) *logrus.Entry {
	var l *logrus.Logger
	if debug || os.Getenv("DEBUG") == "TRUE" {
		l = newDevelopmentLogger(out)
	} else {
		l = newProductionLogger(out)
	}
	l.Formatter = &logrus.JSONFormatter{}
	return l.WithField("debug", debug)
}

func getLogLevel() logrus.Level {
	strLevel := os.Getenv("LOG_LEVEL")
	level, err := logrus.ParseLevel(strLevel)
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

func newDevelopmentLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(getLogLevel())
	l.SetOutput(out)
	return l
}

func newProductionLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	if out == nil {
		out = io.Discard
	}
	l.Out = out
	l.SetLevel(logrus.ErrorLevel)
	return l
}

// Package textual implements a human-readable cache.Diagnostics sink: one
// colorized line per event, plus an ASCII sparkline of invalidation activity
// across a run, built on top of logrus and fatih/color.
package textual

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jesseduffield/asciigraph"
	"github.com/sirupsen/logrus"

	"github.com/christophe-duc/dagcache/pkg/cache"
	"github.com/christophe-duc/dagcache/pkg/diagnostics/typefmt"
)

// Logger is a cache.Diagnostics implementation that writes one logrus entry per
// event and keeps a running count of invalidation-affected builders for Sparkline.
type Logger struct {
	cache.BaseDiagnostics

	entry      *logrus.Entry
	Abbreviate bool

	invalidationHistory []float64
}

// New wraps entry (typically from pkg/log.NewEntry) as a cache.Diagnostics sink.
func New(entry *logrus.Entry) *Logger {
	return &Logger{entry: entry}
}

// NewDiscarding returns a Logger that writes to io.Discard, useful for tests that
// want the Sparkline/history bookkeeping without producing log output.
func NewDiscarding() *Logger {
	l := logrus.New()
	l.Out = io.Discard
	return New(logrus.NewEntry(l))
}

func (l *Logger) typeName(v any) string { return typefmt.NameOf(v, l.Abbreviate) }

func (l *Logger) OnResolve(id cache.BuilderID, hit bool) {
	word := "miss"
	attr := color.FgYellow
	if hit {
		word = "hit"
		attr = color.FgCyan
	}
	l.entry.WithFields(logrus.Fields{"id": id, "hit": hit}).
		Debug(colorize(attr, fmt.Sprintf("resolve %s: %s", word, idString(id))))
}

func (l *Logger) OnBuild(id cache.BuilderID, err error) {
	if err != nil {
		l.entry.WithFields(logrus.Fields{"id": id, "error": err, "errorType": l.typeName(err)}).
			Error(colorize(color.FgRed, fmt.Sprintf("build failed: %s: %s: %v", idString(id), l.typeName(err), err)))
		return
	}
	l.entry.WithField("id", id).
		Info(colorize(color.FgGreen, fmt.Sprintf("build: %s", idString(id))))
}

func (l *Logger) OnInvalidate(root cache.BuilderID, affected []cache.BuilderID) {
	l.invalidationHistory = append(l.invalidationHistory, float64(len(affected)))
	l.entry.WithFields(logrus.Fields{"root": root, "affected": len(affected)}).
		Warn(colorize(color.FgYellow, fmt.Sprintf("invalidate: %s (%d affected)", idString(root), len(affected))))
}

func (l *Logger) OnClear(full bool) {
	kind := "artifacts"
	if full {
		kind = "all"
	}
	l.invalidationHistory = append(l.invalidationHistory, 0)
	l.entry.WithField("full", full).
		Warn(colorize(color.FgRed, fmt.Sprintf("clear: %s", kind)))
}

// Sparkline renders the history of invalidate/clear "affected count" events as an
// ASCII graph, for a quick human glance at how churny a run was.
func (l *Logger) Sparkline() string {
	if len(l.invalidationHistory) == 0 {
		return ""
	}
	return asciigraph.Plot(l.invalidationHistory, asciigraph.Height(6))
}

func idString(id cache.BuilderID) string {
	return fmt.Sprintf("0x%x", uintptr(id))
}

func colorize(attr color.Attribute, s string) string {
	return color.New(attr).Sprint(s)
}

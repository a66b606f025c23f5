package cacheconfig

import (
	"io"
	"os"

	"github.com/christophe-duc/dagcache/pkg/cache"
	"github.com/christophe-duc/dagcache/pkg/diagnostics/textual"
	"github.com/christophe-duc/dagcache/pkg/diagnostics/visgraph"
	"github.com/christophe-duc/dagcache/pkg/log"
)

// BuildDiagnostics constructs the cache.Diagnostics sink selected by cfg. The
// returned io.Closer (nil for the null sink) should be closed once the caller is
// done with the cache, flushing any buffered output to disk.
func BuildDiagnostics(cfg CacheBehaviorConfig) (cache.Diagnostics, io.Closer, error) {
	switch cfg.Diagnostics {
	case DiagnosticsTextual:
		out, closer, err := openOutput(cfg.TextualOutputPath)
		if err != nil {
			return nil, nil, err
		}
		entry := log.NewEntry(out, cfg.Debug)
		l := textual.New(entry)
		l.Abbreviate = cfg.Abbreviate
		return l, closer, nil

	case DiagnosticsVisgraph:
		e := visgraph.New()
		e.Abbreviate = cfg.Abbreviate
		if cfg.VisgraphOutputPath == "" {
			return e, nil, nil
		}
		return e, &visgraphFlusher{emitter: e, path: cfg.VisgraphOutputPath}, nil

	case DiagnosticsNull, "":
		return cache.BaseDiagnostics{}, nil, nil

	default:
		return nil, nil, cfg.Validate()
	}
}

func openOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" {
		return os.Stderr, nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

// visgraphFlusher writes the emitter's current DOT graph to path when closed, so
// a caller gets a snapshot of the final graph state without needing to poll
// Generation() themselves.
type visgraphFlusher struct {
	emitter *visgraph.Emitter
	path    string
}

func (v *visgraphFlusher) Close() error {
	return os.WriteFile(v.path, []byte(v.emitter.DOT()), 0o644)
}

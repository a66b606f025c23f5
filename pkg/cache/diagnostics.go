package cache

// Diagnostics is the cache's single observer hook. Implementations are notified
// of every resolve, build, invalidate and clear so a caller can build a logger, a
// dependency-graph visualizer, or a test probe without the cache itself knowing
// anything about any of those uses. A nil Diagnostics is never passed to an
// implementation's methods - New/NewWithDiagnostics substitute BaseDiagnostics
// when none is given.
type Diagnostics interface {
	// OnResolve fires every time a blueprint is resolved, whether or not it was
	// already memoized (hit reports which).
	OnResolve(id BuilderID, hit bool)

	// OnBuild fires twice per build attempt: once as it starts (err == nil, and
	// the builder is not yet known to have an artifact) and once as it finishes
	// (err holds the build's result, nil on success).
	OnBuild(id BuilderID, err error)

	// OnInvalidate fires once per invalidate/purge call, reporting the root id
	// and every builder (including root) reachable from it through reverse
	// dependency edges, i.e. every builder whose artifact, if it had one, was
	// dropped as a result.
	OnInvalidate(root BuilderID, affected []BuilderID)

	// OnClear fires once per clearArtifacts/clearAll call; full reports whether
	// builder registrations and dyn state were dropped too (clearAll) or only
	// artifacts (clearArtifacts).
	OnClear(full bool)
}

// BaseDiagnostics implements Diagnostics with no-op methods. Embed it in a custom
// Diagnostics implementation to only override the events you care about.
type BaseDiagnostics struct{}

func (BaseDiagnostics) OnResolve(BuilderID, bool)           {}
func (BaseDiagnostics) OnBuild(BuilderID, error)            {}
func (BaseDiagnostics) OnInvalidate(BuilderID, []BuilderID) {}
func (BaseDiagnostics) OnClear(bool)                        {}

var _ Diagnostics = BaseDiagnostics{}

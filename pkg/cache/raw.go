package cache

import "github.com/samber/lo"

// raw is the untyped engine behind Cache and Locked. It owns the core maps:
// memoized artifacts, per-builder dynamic state, and the forward/reverse
// dependency edges discovered while building. Every method here operates on
// BuilderID and any; cache.go's generic accessors are a thin typed layer on top.
type raw struct {
	artifacts map[BuilderID]any // *A, present only for builders with a memoized artifact
	dynStates map[BuilderID]any // *S, present once a builder has ever been touched
	builders  map[BuilderID]erasedBuilder

	// depsForward[x] is the set of builders x depended on during its last
	// successful-or-attempted build. depsReverse is the same relation inverted,
	// kept in lockstep so invalidate can walk "who depends on me" in O(1) per hop.
	depsForward map[BuilderID]map[BuilderID]struct{}
	depsReverse map[BuilderID]map[BuilderID]struct{}

	diag Diagnostics
}

func newRaw(diag Diagnostics) *raw {
	if diag == nil {
		diag = BaseDiagnostics{}
	}
	return &raw{
		artifacts:   make(map[BuilderID]any),
		dynStates:   make(map[BuilderID]any),
		builders:    make(map[BuilderID]erasedBuilder),
		depsForward: make(map[BuilderID]map[BuilderID]struct{}),
		depsReverse: make(map[BuilderID]map[BuilderID]struct{}),
		diag:        diag,
	}
}

// recordEdge marks that builder `from` resolved builder `to` during its current
// build. Called by resolveErased in resolver.go.
func (c *raw) recordEdge(from, to BuilderID) {
	if c.depsForward[from] == nil {
		c.depsForward[from] = make(map[BuilderID]struct{})
	}
	c.depsForward[from][to] = struct{}{}

	if c.depsReverse[to] == nil {
		c.depsReverse[to] = make(map[BuilderID]struct{})
	}
	c.depsReverse[to][from] = struct{}{}
}

// clearForwardEdgesOf drops every edge `from -> *` before a rebuild of `from`, so
// a build that stops depending on something doesn't leave a stale edge behind.
// Edges pointing *into* from (from's dependents) are untouched.
func (c *raw) clearForwardEdgesOf(from BuilderID) {
	for to := range c.depsForward[from] {
		delete(c.depsReverse[to], from)
		if len(c.depsReverse[to]) == 0 {
			delete(c.depsReverse, to)
		}
	}
	delete(c.depsForward, from)
}

// get returns the memoized artifact for id, building it via eb if absent. eb is
// always supplied by the caller (the Blueprint currently in hand) so that get
// never needs a builder to already be registered.
func (c *raw) get(id BuilderID, eb erasedBuilder) (any, error) {
	if a, ok := c.artifacts[id]; ok {
		c.diag.OnResolve(id, true)
		return a, nil
	}
	c.diag.OnResolve(id, false)
	return c.build(id, eb)
}

// lookup returns the memoized artifact for id without attempting a build.
func (c *raw) lookup(id BuilderID) (any, bool) {
	a, ok := c.artifacts[id]
	return a, ok
}

func (c *raw) build(id BuilderID, eb erasedBuilder) (any, error) {
	// The cache's own bookkeeping only ever holds a weak reference to a
	// builder; a strong Blueprint held by the caller is what keeps it alive.
	c.builders[id] = eb.downgrade()
	c.clearForwardEdgesOf(id)

	c.diag.OnBuild(id, nil)
	artifact, err := eb.build(c)
	if err != nil {
		c.diag.OnBuild(id, err)
		return nil, err
	}

	c.artifacts[id] = artifact
	c.diag.OnBuild(id, nil)
	return artifact, nil
}

// dynStatePtr returns the stable *S for id, calling eb.initDynState the first
// time id is seen. The returned pointer is cached forever (until purge/clearAll),
// satisfying the dyn-state pointer-stability invariant. A builder reached only
// through its dyn state (never built) is registered into c.builders here too,
// with a weak reference, so it becomes known to isKnown/numKnown exactly as if
// it had been built.
func (c *raw) dynStatePtr(id BuilderID, eb erasedBuilder) any {
	if s, ok := c.dynStates[id]; ok {
		return s
	}
	s := eb.initDynState()
	c.dynStates[id] = s
	if _, known := c.builders[id]; !known {
		c.builders[id] = eb.downgrade()
	}
	return s
}

// invalidate drops the memoized artifact for id and for every builder that
// transitively depends on id, since their cached output may have been built from
// id's now-discarded artifact. Dyn state, builder registration and dependency
// edges are left untouched - only artifacts become stale.
func (c *raw) invalidate(id BuilderID) {
	affected := c.reachableReverse(id)
	for _, x := range affected {
		delete(c.artifacts, x)
	}
	c.diag.OnInvalidate(id, affected)
}

// purge is like invalidate, but additionally forgets id's own dynamic state (id
// remains "known" - it stays in builders/edges - until gc removes it). Dependents
// still only lose their artifacts, matching invalidate.
func (c *raw) purge(id BuilderID) {
	affected := c.reachableReverse(id)
	for _, x := range affected {
		delete(c.artifacts, x)
	}
	delete(c.dynStates, id)
	c.diag.OnInvalidate(id, affected)
}

// reachableReverse returns id together with every builder reachable by following
// depsReverse edges (i.e. every direct or indirect dependent of id).
func (c *raw) reachableReverse(id BuilderID) []BuilderID {
	seen := map[BuilderID]struct{}{id: {}}
	queue := []BuilderID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for dependent := range c.depsReverse[cur] {
			if _, ok := seen[dependent]; ok {
				continue
			}
			seen[dependent] = struct{}{}
			queue = append(queue, dependent)
		}
	}
	return lo.Keys(seen)
}

// clearArtifacts drops every memoized artifact cache-wide, keeping dyn state,
// builder registrations and dependency edges intact.
func (c *raw) clearArtifacts() {
	c.artifacts = make(map[BuilderID]any)
	c.diag.OnClear(false)
}

// clearAll resets the cache entirely: artifacts, dyn state, builder registrations
// and dependency edges are all dropped. Every builder becomes unknown again.
func (c *raw) clearAll() {
	c.artifacts = make(map[BuilderID]any)
	c.dynStates = make(map[BuilderID]any)
	c.builders = make(map[BuilderID]erasedBuilder)
	c.depsForward = make(map[BuilderID]map[BuilderID]struct{})
	c.depsReverse = make(map[BuilderID]map[BuilderID]struct{})
	c.diag.OnClear(true)
}

// gc drops every builder whose weak reference can no longer be upgraded, unless
// a builder that depends on it still holds a memoized artifact at the start of
// this pass. A dropped builder loses its artifact, dyn state and every edge into
// or out of it, so no artifact's recorded dependency is left dangling.
func (c *raw) gc() int {
	var dead []BuilderID
	for id, eb := range c.builders {
		if eb.alive() {
			continue
		}
		blocked := false
		for dependent := range c.depsReverse[id] {
			if _, ok := c.artifacts[dependent]; ok {
				blocked = true
				break
			}
		}
		if !blocked {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		delete(c.builders, id)
		delete(c.artifacts, id)
		delete(c.dynStates, id)
		c.clearForwardEdgesOf(id)
		for dependent := range c.depsReverse[id] {
			delete(c.depsForward[dependent], id)
		}
		delete(c.depsReverse, id)
	}
	return len(dead)
}

func (c *raw) isKnown(id BuilderID) bool {
	_, ok := c.builders[id]
	return ok
}

func (c *raw) numKnown() int {
	return len(c.builders)
}

// Package visgraph implements a cache.Diagnostics sink that emits the current
// dependency graph as Graphviz DOT, bumping a generation counter every time the
// graph's shape or contents change (build, invalidate, clear).
package visgraph

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/christophe-duc/dagcache/pkg/cache"
)

// Emitter tracks the builder/edge set as events arrive and can render it as a DOT
// graph on demand. It has no dependency on *cache.Cache: it learns the nodes and
// their artifact state from the Diagnostics events it is sent, and the edges only
// from RecordEdge calls.
type Emitter struct {
	cache.BaseDiagnostics

	Abbreviate bool

	mu         sync.Mutex
	generation int
	nodes      map[cache.BuilderID]nodeInfo
	edges      map[[2]cache.BuilderID]struct{}
}

type nodeInfo struct {
	hasArtifact bool
}

// New returns an empty Emitter.
func New() *Emitter {
	return &Emitter{
		nodes: make(map[cache.BuilderID]nodeInfo),
		edges: make(map[[2]cache.BuilderID]struct{}),
	}
}

func (e *Emitter) OnResolve(id cache.BuilderID, hit bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nodes[id] = nodeInfo{hasArtifact: hit || e.nodes[id].hasArtifact}
}

func (e *Emitter) OnBuild(id cache.BuilderID, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.nodes[id] = nodeInfo{hasArtifact: err == nil}
	e.generation++
}

func (e *Emitter) OnInvalidate(root cache.BuilderID, affected []cache.BuilderID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, id := range affected {
		info := e.nodes[id]
		info.hasArtifact = false
		e.nodes[id] = info
	}
	e.generation++
}

func (e *Emitter) OnClear(full bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for id, info := range e.nodes {
		info.hasArtifact = false
		e.nodes[id] = info
	}
	if full {
		e.nodes = make(map[cache.BuilderID]nodeInfo)
		e.edges = make(map[[2]cache.BuilderID]struct{})
	}
	e.generation++
}

// RecordEdge lets a caller feed in the builder dependency graph directly, since
// the Diagnostics interface itself only reports individual build/invalidate
// events, not the graph's edge set. Call it from a custom Resolver wrapper, or
// after inspecting a build's dependencies out of band.
func (e *Emitter) RecordEdge(from, to cache.BuilderID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.edges[[2]cache.BuilderID{from, to}] = struct{}{}
}

// Generation returns the current generation counter: it increments on every
// build, invalidate and clear, so a caller can detect "has the graph changed
// since I last rendered it" with a plain integer comparison.
func (e *Emitter) Generation() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.generation
}

// DOT renders the current graph as a Graphviz DOT document.
func (e *Emitter) DOT() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "digraph cache_gen_%d {\n", e.generation)

	ids := make([]cache.BuilderID, 0, len(e.nodes))
	for id := range e.nodes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		info := e.nodes[id]
		shape := "ellipse"
		if info.hasArtifact {
			shape = "box"
		}
		fmt.Fprintf(&b, "  n%x [label=%q shape=%s];\n", uintptr(id), labelFor(id, e.Abbreviate), shape)
	}

	edgeKeys := make([][2]cache.BuilderID, 0, len(e.edges))
	for k := range e.edges {
		edgeKeys = append(edgeKeys, k)
	}
	sort.Slice(edgeKeys, func(i, j int) bool {
		if edgeKeys[i][0] != edgeKeys[j][0] {
			return edgeKeys[i][0] < edgeKeys[j][0]
		}
		return edgeKeys[i][1] < edgeKeys[j][1]
	})
	for _, k := range edgeKeys {
		fmt.Fprintf(&b, "  n%x -> n%x;\n", uintptr(k[0]), uintptr(k[1]))
	}

	b.WriteString("}\n")
	return b.String()
}

func labelFor(id cache.BuilderID, abbreviate bool) string {
	if abbreviate {
		return fmt.Sprintf("0x%x", uintptr(id)&0xffff)
	}
	return fmt.Sprintf("builder 0x%x", uintptr(id))
}

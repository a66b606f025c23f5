package cache

// Resolver is handed to a Builder's Build method. It is the only way a builder
// may reach its own dependencies (creating a tracked forward edge each time) or
// its own dynamic state.
type Resolver[S any] struct {
	raw    *raw
	selfID BuilderID
	dyn    *S
}

// State returns a pointer to this builder's dynamic state. The pointer is stable
// until Purge or ClearAll drops that state (spec invariant 6): the same pointer is
// returned across multiple Build calls and multiple State calls within a call.
func (r *Resolver[S]) State() *S { return r.dyn }

// Resolve resolves dep, returning a value copy of its artifact. Calling Resolve
// records a forward dependency edge from the builder currently being built to
// dep's builder.
func Resolve[S any, A2 any, S2 any](r *Resolver[S], dep Blueprint[A2, S2]) (A2, error) {
	v, err := resolveErased(r.raw, r.selfID, dep.id, dep.builder)
	if err != nil {
		var zero A2
		return zero, err
	}
	return *(v.(*A2)), nil
}

// ResolveRef is like Resolve but returns a pointer into the cache's stored
// artifact rather than a copy.
func ResolveRef[S any, A2 any, S2 any](r *Resolver[S], dep Blueprint[A2, S2]) (*A2, error) {
	v, err := resolveErased(r.raw, r.selfID, dep.id, dep.builder)
	if err != nil {
		return nil, err
	}
	return v.(*A2), nil
}

// ResolveCloned is like Resolve, but uses dep's Cloner[A2] implementation (if A2
// implements it) instead of a plain value copy.
func ResolveCloned[S any, A2 any, S2 any](r *Resolver[S], dep Blueprint[A2, S2]) (A2, error) {
	v, err := resolveErased(r.raw, r.selfID, dep.id, dep.builder)
	if err != nil {
		var zero A2
		return zero, err
	}
	ptr := v.(*A2)
	if c, ok := any(*ptr).(Cloner[A2]); ok {
		return c.CloneArtifact(), nil
	}
	return *ptr, nil
}

// resolveErased records the dependency edge and delegates to the raw engine. It
// is not generic: only Resolve/ResolveRef/ResolveCloned need type parameters, and
// keeping this helper untyped avoids instantiating it once per (A2, S2) pair.
func resolveErased(c *raw, selfID, depID BuilderID, eb erasedBuilder) (any, error) {
	c.recordEdge(selfID, depID)
	return c.get(depID, eb)
}

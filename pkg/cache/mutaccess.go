//go:build !cache_no_mutaccess

package cache

// GetMut, LookupMut and DynStateMut are the mutable-reference accessor forms:
// they hand back the same pointer GetRef/LookupRef/GetDynState would, after
// invalidating every memoized artifact that could have been built from the old
// value, since the caller is about to mutate it in place. GetMut and LookupMut
// invalidate every transitive dependent of bp but keep bp's own artifact, which
// is the value being mutated; DynStateMut invalidates exactly as
// Invalidate(c, bp) would, bp's own artifact included.
//
// Build with -tags cache_no_mutaccess to remove these three functions from the
// compiled binary entirely (see mutaccess_stub.go).

// GetMut resolves bp, building if necessary, invalidates bp's dependents, and
// returns a mutable pointer into the cache's stored artifact.
func GetMut[A any, S any](c *Cache, bp Blueprint[A, S]) (*A, error) {
	ref, err := GetRef(c, bp)
	if err != nil {
		return nil, err
	}
	c.raw.invalidate(bp.id)
	c.raw.artifacts[bp.id] = ref
	return ref, nil
}

// LookupMut is the non-building form of GetMut.
func LookupMut[A any, S any](c *Cache, bp Blueprint[A, S]) (*A, bool) {
	ref, ok := LookupRef(c, bp)
	if !ok {
		return nil, false
	}
	c.raw.invalidate(bp.id)
	c.raw.artifacts[bp.id] = ref
	return ref, true
}

// DynStateMut returns a mutable pointer to bp's builder's dynamic state, having
// first invalidated bp's builder.
func DynStateMut[A any, S any](c *Cache, bp Blueprint[A, S]) *S {
	s := GetDynState(c, bp)
	c.raw.invalidate(bp.id)
	return s
}

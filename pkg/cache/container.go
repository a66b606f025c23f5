package cache

import "weak"

// builderRef is the container abstraction over a builder's storage: it knows how
// to recover a usable *U (or report that the builder is gone) without the rest of
// the cache ever needing to know whether the reference is strong or weak.
type builderRef interface {
	// upgrade returns the live builder value (as *U, boxed in any) and true, or
	// (nil, false) if the builder is no longer reachable.
	upgrade() (any, bool)

	// downgrade returns the weak-reference equivalent of this ref: the same
	// builder, but no longer kept alive by this reference alone. Called whenever
	// a builder is stored into the cache's own bookkeeping (on every build, and
	// on first dyn-state access), so the cache itself never keeps a builder
	// alive on its own account - only
	// a reachable strong reference held elsewhere (typically the caller's own
	// Blueprint value) can do that.
	downgrade() builderRef
}

// strongRef holds an ordinary Go pointer. As long as a strongRef is reachable
// (e.g. because the Blueprint holding it is reachable), the builder it points to
// cannot be collected - this is the "strong builder container" instantiation of
// the container abstraction (spec C2). It stays generic over U so downgrade can
// build the matching weak.Pointer[U] without needing reflection.
type strongRef[U any] struct {
	ptr *U
}

func (r strongRef[U]) upgrade() (any, bool) {
	return r.ptr, true
}

func (r strongRef[U]) downgrade() builderRef {
	return weakRef[U]{ptr: weak.Make(r.ptr)}
}

// weakRef holds a weak.Pointer so the cache does not itself keep a builder alive;
// the caller is expected to hold the strong side elsewhere. This is the "weak
// builder container" instantiation of the container abstraction (spec C2),
// realized directly with the Go 1.24 weak package rather than a hand-rolled
// finalizer scheme.
type weakRef[U any] struct {
	ptr weak.Pointer[U]
}

func (r weakRef[U]) upgrade() (any, bool) {
	p := r.ptr.Value()
	if p == nil {
		return nil, false
	}
	return p, true
}

func (r weakRef[U]) downgrade() builderRef { return r }

// Shared is implemented by an artifact type that wants Get/Lookup's
// container-share accessor form to hand out a reference-counted handle rather
// than a plain pointer or a clone. Most artifacts don't need this; it exists for
// artifacts that wrap an expensive external resource (a file handle, a pooled
// connection) where the caller wants to participate in the artifact's lifetime.
type Shared[A any] interface {
	Acquire() A
}

// Cloner is implemented by an artifact type that wants the GetCloned/LookupCloned
// accessor form to do something other than a shallow Go value copy.
type Cloner[A any] interface {
	CloneArtifact() A
}

package cache

// Builder produces an artifact of type A, given a Resolver[S] through which it may
// resolve its own dependencies (other blueprints) and read its own dynamic state S.
// Implementations should be deterministic given their dependencies' artifacts and
// their own dyn state: the cache only re-invokes Build when it has reason to
// believe the result may differ (see invalidate/purge in raw.go).
type Builder[A any, S any] interface {
	// Build constructs the artifact. Any dependency resolved through resolver
	// during this call becomes a tracked forward edge from this builder.
	Build(resolver *Resolver[S]) (A, error)

	// InitDynState returns the initial value of this builder's dynamic state. It
	// is called the first time the cache needs that state, and again after Purge
	// or ClearAll has dropped it; the resulting value's address is held stable
	// until then.
	InitDynState() S
}

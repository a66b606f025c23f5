package cache

// erasedBuilder is the type-erased form every Blueprint[A, S] reduces to so that
// raw (the engine in raw.go) can store heterogeneous builders - a Blueprint[int,
// struct{}] next to a Blueprint[string, time.Time] - in one map, while the typed
// facade in cache.go keeps callers fully type-safe. adapter is the sole
// implementation; everything here is unexported.
//
// adapter only needs A and S, not the concrete builder pointer type: builderRef
// already erases that, and Build/InitDynState are reached through the Builder[A,S]
// interface regardless of which concrete type implements it.
type erasedBuilder interface {
	builderID() BuilderID
	build(c *raw) (any, error)
	initDynState() any
	alive() bool
	downgrade() erasedBuilder
}

type adapter[A any, S any] struct {
	id  BuilderID
	ref builderRef
}

func (a *adapter[A, S]) builderID() BuilderID { return a.id }

func (a *adapter[A, S]) build(c *raw) (any, error) {
	up, ok := a.ref.upgrade()
	if !ok {
		return nil, newCacheError(ErrBuilderDropped, "weak builder reference no longer resolvable")
	}
	builder, ok := up.(Builder[A, S])
	if !ok {
		panic("cache: builder no longer implements its declared interface")
	}

	dynPtr := c.dynStatePtr(a.id, a).(*S)
	resolver := &Resolver[S]{raw: c, selfID: a.id, dyn: dynPtr}

	return builder.Build(resolver)
}

func (a *adapter[A, S]) initDynState() any {
	up, ok := a.ref.upgrade()
	if !ok {
		// Dyn state may be requested independently of a build, e.g. via
		// DynState(); a dropped weak builder still gets a zero-value dyn state
		// bound to it rather than failing, since dyn state has no build-time
		// dependency of its own.
		var zero S
		return &zero
	}
	s := up.(Builder[A, S]).InitDynState()
	return &s
}

func (a *adapter[A, S]) alive() bool {
	_, ok := a.ref.upgrade()
	return ok
}

// downgrade returns a copy of this adapter holding a weak reference to the same
// builder. Called by raw whenever it stores a builder (on every build, and on
// first dyn-state access), so the cache's own copy never keeps a
// strongly-referenced builder alive on its own account.
func (a *adapter[A, S]) downgrade() erasedBuilder {
	return &adapter[A, S]{id: a.id, ref: a.ref.downgrade()}
}

var _ erasedBuilder = (*adapter[int, struct{}])(nil)

package cache

// BuilderID identifies a builder instance for the lifetime of the process. Two
// blueprints wrapping the same heap-allocated builder value have equal IDs; two
// blueprints wrapping distinct allocations never do, even if the allocations hold
// identical field values.
//
// BuilderID values are derived from a builder's pointer identity by
// requirePointerIdentity in blueprint.go.
type BuilderID uintptr

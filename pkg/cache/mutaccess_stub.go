//go:build cache_no_mutaccess

// Package cache: this build excludes GetMut, LookupMut and DynStateMut. Any code
// calling them fails to compile rather than silently falling back to a
// non-mutable accessor - see mutaccess.go for the normal build.
package cache

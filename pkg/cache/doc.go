// Package cache implements a DAG-aware artifact cache: it memoizes the output of
// user-defined builders, tracks which builder depends on which, and lets a caller
// invalidate, purge, or garbage collect that dependency graph without re-running
// dependents that don't actually need it.
package cache

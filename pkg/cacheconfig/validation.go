package cacheconfig

import "fmt"

// Validate checks that every enum-like field holds a value BuildDiagnostics
// actually knows how to wire up, failing loudly at load time rather than at
// first use.
func (c *CacheBehaviorConfig) Validate() error {
	switch c.Diagnostics {
	case "", DiagnosticsNull, DiagnosticsTextual, DiagnosticsVisgraph:
	default:
		return fmt.Errorf("unrecognized diagnostics kind %q: must be one of %q, %q, %q",
			c.Diagnostics, DiagnosticsNull, DiagnosticsTextual, DiagnosticsVisgraph)
	}
	return nil
}

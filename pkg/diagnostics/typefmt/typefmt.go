// Package typefmt renders Go type names for diagnostic output, with an optional
// abbreviated form that drops package-path prefixes so long import paths don't
// dominate a textual log line or a DOT graph label.
package typefmt

import (
	"fmt"
	"reflect"
	"strings"
)

func typeString(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return fmt.Sprintf("%T", v)
	}
	return t.String()
}

// Name returns T's type name (via a zero value of T), with import-path prefixes
// dropped when abbreviate is true:
// "cache.Blueprint[int,github.com/christophe-duc/dagcache/pkg/cache.BuilderID]" ->
// "cache.Blueprint[int, cache.BuilderID]". For an interface type T the zero
// value is nil and the result is "<nil>".
func Name[T any](abbreviate bool) string {
	var zero T
	return NameOf(zero, abbreviate)
}

// NameOf is Name without needing a type parameter at the call site, for callers
// that already have a value (or nil interface) in hand.
func NameOf(v any, abbreviate bool) string {
	full := typeString(v)
	if !abbreviate {
		return full
	}
	return abbreviate0(full)
}

func abbreviate0(full string) string {
	// Strip generic type arguments before abbreviating the outer name, then
	// reattach them, abbreviated in turn.
	if i := strings.IndexByte(full, '['); i >= 0 && strings.HasSuffix(full, "]") {
		outer := abbreviateSegment(full[:i])
		inner := full[i+1 : len(full)-1]
		parts := strings.Split(inner, ",")
		for i, p := range parts {
			parts[i] = abbreviate0(strings.TrimSpace(p))
		}
		return outer + "[" + strings.Join(parts, ", ") + "]"
	}
	return abbreviateSegment(full)
}

func abbreviateSegment(s string) string {
	s = strings.TrimPrefix(s, "*")
	star := ""
	if strings.HasPrefix(s, "*") {
		star = "*"
	}
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	return star + s
}

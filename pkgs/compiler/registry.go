package compiler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// NativeFunc is a registered extension function. It receives the call
// site's arguments reduced to plain literal values and returns a Butane
// expression fragment that replaces the call. The fragment is compiled
// like any other expression, so it may use refs-free Butane syntax and
// call declared functions.
type NativeFunc func(args ...interface{}) (string, error)

// Registry maps extension-function names to native implementations. A
// ruleset's own .functions declarations always shadow same-named
// registry entries. Registries are not safe for concurrent mutation;
// configure one before compiling with it.
type Registry struct {
	funcs map[string]NativeFunc
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]NativeFunc)}
}

// DefaultRegistry returns a registry pre-populated with the built-in
// helpers, currently oneOf.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("oneOf", oneOf)
	return r
}

// Register adds a native function, overwriting any previous registration
// under the same name.
func (r *Registry) Register(name string, fn NativeFunc) {
	r.funcs[name] = fn
}

// Lookup returns the native function registered under name.
func (r *Registry) Lookup(name string) (NativeFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// oneOf expands to an ||-joined chain of equality checks against the
// next snapshot: oneOf('a', 'b') becomes next === 'a' || next === 'b'.
// List arguments are flattened, so oneOf(['a', 'b']) is equivalent.
func oneOf(args ...interface{}) (string, error) {
	var values []interface{}
	for _, arg := range args {
		if list, ok := arg.([]interface{}); ok {
			values = append(values, list...)
			continue
		}
		values = append(values, arg)
	}

	if len(values) == 0 {
		return "", fmt.Errorf("oneOf requires at least one value")
	}

	parts := make([]string, len(values))
	for i, value := range values {
		lit, err := formatLiteral(value)
		if err != nil {
			return "", fmt.Errorf("oneOf: %w", err)
		}
		parts[i] = "next === " + lit
	}

	return strings.Join(parts, " || "), nil
}

// formatLiteral renders a plain Go value as Butane expression text.
func formatLiteral(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "null", nil
	case bool:
		return strconv.FormatBool(v), nil
	case string:
		return "'" + strings.NewReplacer("\\", "\\\\", "'", "\\'").Replace(v) + "'", nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported literal value %v (%T)", value, value)
	}
}

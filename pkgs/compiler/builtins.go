package compiler

// builtinMethods are the snapshot and string methods the target rule
// language interprets natively. Calls to them are never inlined; a
// method call outside this set is reported as an undefined function.
var builtinMethods = map[string]bool{
	// Snapshot methods
	"val":         true,
	"child":       true,
	"parent":      true,
	"hasChild":    true,
	"hasChildren": true,
	"exists":      true,
	"getPriority": true,
	"isNumber":    true,
	"isString":    true,
	"isBoolean":   true,

	// String methods
	"contains":    true,
	"beginsWith":  true,
	"endsWith":    true,
	"matches":     true,
	"replace":     true,
	"toUpperCase": true,
	"toLowerCase": true,
	"length":      true,
}

func builtinMethodNames() []string {
	names := make([]string, 0, len(builtinMethods))
	for name := range builtinMethods {
		names = append(names, name)
	}
	return names
}

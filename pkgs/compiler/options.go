package compiler

import (
	"fmt"
	"strings"

	"github.com/aputinski/butane/pkgs/ast"
	"github.com/aputinski/butane/pkgs/parser"
)

// RuleTree is a decoded ruleset document: string keys mapping to nested
// trees or leaf expression strings. Dot-keys are data fields (.read,
// .write, .validate) or special configuration keys; everything else is a
// path segment, including $wildcards.
type RuleTree = map[string]interface{}

// Special keys stripped from a node while resolving its option scope.
const (
	keyFunctions = ".functions"
	keyRefs      = ".refs"
	keyParent    = ".parent"
)

// RefDef is a named shorthand for a snapshot-traversal expression. Depth
// counts the parent-traversal steps accumulated since the scope that
// declared it: each level of nesting the ref is inherited through adds
// one .parent() step at the point of use.
type RefDef struct {
	Value string
	Depth int
}

// FunctionDef is a declared custom function: name, ordered parameter
// names, and the body expression to inline at call sites.
type FunctionDef struct {
	Name string
	Args []string
	Body string
}

// Options carries the declarations in scope for one node of the rule
// tree. Each recursion frame owns its Options exclusively; children get
// a derived copy, never a shared reference.
type Options struct {
	Functions map[string]FunctionDef
	Refs      map[string]RefDef
	Parent    RuleTree // the node one level up, scanned for wildcard children
}

// NewOptions returns an empty root scope.
func NewOptions() *Options {
	return &Options{
		Functions: make(map[string]FunctionDef),
		Refs:      make(map[string]RefDef),
	}
}

// resolveOptions derives the option scope for rules from its parent
// scope. Inherited refs gain one level of depth, wildcard children of
// the parent node inject implicit refs, and local .refs/.functions
// declarations override inherited ones. The special keys are stripped
// from rules in place.
func resolveOptions(rules RuleTree, parent *Options) (*Options, error) {
	opts := &Options{
		Functions: make(map[string]FunctionDef, len(parent.Functions)),
		Refs:      make(map[string]RefDef, len(parent.Refs)),
		Parent:    rules,
	}

	for name, def := range parent.Functions {
		opts.Functions[name] = def
	}

	// One more parent-traversal step per level of nesting since declaration
	for name, ref := range parent.Refs {
		opts.Refs[name] = RefDef{Value: ref.Value, Depth: ref.Depth + 1}
	}

	// Wildcard children of the parent node are implicitly ref-able by
	// name, resolving to the previous snapshot at their own level.
	if parent.Parent != nil {
		for key := range parent.Parent {
			if strings.HasPrefix(key, "$") {
				if _, declared := opts.Refs[key]; !declared {
					opts.Refs[key] = RefDef{Value: "prev", Depth: 0}
				}
			}
		}
	}

	if err := mergeLocalRefs(rules, opts); err != nil {
		return nil, err
	}
	if err := mergeLocalFunctions(rules, opts); err != nil {
		return nil, err
	}

	delete(rules, keyRefs)
	delete(rules, keyFunctions)
	delete(rules, keyParent)

	return opts, nil
}

// mergeLocalRefs expands the node's own .refs declarations over the
// inherited scope. A local declaration resets the ref's depth to zero.
func mergeLocalRefs(rules RuleTree, opts *Options) error {
	raw, ok := rules[keyRefs]
	if !ok {
		return nil
	}

	decls, ok := raw.(map[string]interface{})
	if !ok {
		return fmt.Errorf(".refs must be a mapping, got %T", raw)
	}

	for name, value := range decls {
		switch v := value.(type) {
		case string:
			opts.Refs[name] = RefDef{Value: v, Depth: 0}
		case map[string]interface{}:
			ref := RefDef{}
			if s, ok := v["value"].(string); ok {
				ref.Value = s
			} else {
				return fmt.Errorf("ref '%s' is missing a string value", name)
			}
			if raw, ok := v["depth"]; ok {
				d, ok := raw.(int)
				if !ok {
					return fmt.Errorf("ref '%s' depth must be an integer, got %T", name, raw)
				}
				ref.Depth = d
			}
			opts.Refs[name] = ref
		default:
			return fmt.Errorf("ref '%s' must be a string or a mapping, got %T", name, value)
		}
	}

	return nil
}

// mergeLocalFunctions expands the node's own .functions declarations.
// Each key is a declaration header of the form name(arg, ...) and each
// value the body expression.
func mergeLocalFunctions(rules RuleTree, opts *Options) error {
	raw, ok := rules[keyFunctions]
	if !ok {
		return nil
	}

	decls, ok := raw.(map[string]interface{})
	if !ok {
		return fmt.Errorf(".functions must be a mapping, got %T", raw)
	}

	for decl, value := range decls {
		body, ok := value.(string)
		if !ok {
			return &MalformedFunctionError{Declaration: decl, Reason: fmt.Sprintf("body must be a string, got %T", value)}
		}

		def, err := parseFunctionDecl(decl, body)
		if err != nil {
			return err
		}
		opts.Functions[def.Name] = def
	}

	return nil
}

// parseFunctionDecl parses a declaration header like complex(a, b, c)
// into a FunctionDef. The header must be a single call expression on a
// bare identifier with bare, unique identifier arguments.
func parseFunctionDecl(decl, body string) (FunctionDef, error) {
	expr, err := parser.Parse(decl)
	if err != nil {
		return FunctionDef{}, &MalformedFunctionError{Declaration: decl, Reason: "header does not parse as name(arg, ...)"}
	}

	call, ok := expr.(*ast.Call)
	if !ok {
		return FunctionDef{}, &MalformedFunctionError{Declaration: decl, Reason: "header must be a call expression"}
	}

	callee, ok := call.Callee.(*ast.Identifier)
	if !ok {
		return FunctionDef{}, &MalformedFunctionError{Declaration: decl, Reason: "function name must be a bare identifier"}
	}

	def := FunctionDef{Name: callee.Name, Body: body}
	seen := make(map[string]bool, len(call.Args))
	for _, arg := range call.Args {
		ident, ok := arg.(*ast.Identifier)
		if !ok {
			return FunctionDef{}, &MalformedFunctionError{Declaration: decl, Reason: fmt.Sprintf("argument '%s' is not a bare identifier", arg.String())}
		}
		if seen[ident.Name] {
			return FunctionDef{}, &MalformedFunctionError{Declaration: decl, Reason: fmt.Sprintf("duplicate argument '%s'", ident.Name)}
		}
		seen[ident.Name] = true
		def.Args = append(def.Args, ident.Name)
	}

	return def, nil
}

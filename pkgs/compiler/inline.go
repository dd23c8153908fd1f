package compiler

import (
	"fmt"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/aputinski/butane/pkgs/ast"
	"github.com/aputinski/butane/pkgs/parser"
)

// inlineFunctions rewrites every call to a declared or registered
// function into its expanded body. Declared functions shadow registered
// ones on name collision; built-in snapshot methods are left for the
// target language to interpret.
func (c *Compiler) inlineFunctions(text string, opts *Options) (string, error) {
	expr, err := parser.Parse(text)
	if err != nil {
		return "", err
	}

	in := &inliner{
		opts:     opts,
		registry: c.registry,
		active:   make(map[string]bool),
	}

	out, err := in.rewrite(expr)
	if err != nil {
		return "", err
	}

	return out.String(), nil
}

type inliner struct {
	opts     *Options
	registry *Registry
	active   map[string]bool // functions currently being expanded, for recursion detection
}

func (in *inliner) rewrite(expr ast.Expression) (ast.Expression, error) {
	switch n := expr.(type) {
	case *ast.Call:
		if callee, ok := n.Callee.(*ast.Identifier); ok {
			return in.rewriteCall(n, callee.Name)
		}
		return in.rewriteMethodCall(n)

	case *ast.Member:
		obj, err := in.rewrite(n.Object)
		if err != nil {
			return nil, err
		}
		n.Object = obj
		if n.Computed {
			index, err := in.rewrite(n.Index)
			if err != nil {
				return nil, err
			}
			n.Index = index
		}
		return n, nil

	case *ast.Binary:
		return n, in.rewritePair(&n.Left, &n.Right)

	case *ast.Logical:
		return n, in.rewritePair(&n.Left, &n.Right)

	case *ast.Unary:
		operand, err := in.rewrite(n.Operand)
		if err != nil {
			return nil, err
		}
		n.Operand = operand
		return n, nil

	case *ast.Conditional:
		if err := in.rewritePair(&n.Test, &n.Consequent); err != nil {
			return nil, err
		}
		alt, err := in.rewrite(n.Alternate)
		if err != nil {
			return nil, err
		}
		n.Alternate = alt
		return n, nil

	case *ast.ArrayLiteral:
		for i := range n.Elements {
			el, err := in.rewrite(n.Elements[i])
			if err != nil {
				return nil, err
			}
			n.Elements[i] = el
		}
		return n, nil

	default:
		return expr, nil
	}
}

func (in *inliner) rewritePair(left, right *ast.Expression) error {
	l, err := in.rewrite(*left)
	if err != nil {
		return err
	}
	*left = l

	r, err := in.rewrite(*right)
	if err != nil {
		return err
	}
	*right = r
	return nil
}

// rewriteCall expands a call whose callee is a bare identifier: a
// declared function, a registered native function, or an error.
func (in *inliner) rewriteCall(call *ast.Call, name string) (ast.Expression, error) {
	// Arguments resolve before substitution, so nested calls appearing
	// as arguments are already expanded expressions.
	args := make([]ast.Expression, len(call.Args))
	for i, arg := range call.Args {
		resolved, err := in.rewrite(arg)
		if err != nil {
			return nil, err
		}
		args[i] = resolved
	}

	if def, ok := in.opts.Functions[name]; ok {
		return in.expandDeclared(def, args)
	}

	if fn, ok := in.registry.Lookup(name); ok {
		return in.expandNative(name, fn, args)
	}

	return nil, in.undefined(name)
}

// expandDeclared inlines a declared function body, substituting call
// arguments for parameter identifiers by position. A call site that
// omits an argument leaves the parameter identifier unsubstituted.
func (in *inliner) expandDeclared(def FunctionDef, args []ast.Expression) (ast.Expression, error) {
	if in.active[def.Name] {
		return nil, &RecursiveFunctionError{Name: def.Name}
	}

	body, err := parser.Parse(def.Body)
	if err != nil {
		return nil, fmt.Errorf("function '%s': %w", def.Name, err)
	}

	// Inline calls inside the body first so functions can call other
	// functions; the active set catches definition cycles.
	in.active[def.Name] = true
	body, err = in.rewrite(body)
	delete(in.active, def.Name)
	if err != nil {
		return nil, err
	}

	params := make(map[string]ast.Expression, len(def.Args))
	for i, param := range def.Args {
		if i < len(args) {
			params[param] = args[i]
		}
	}

	return substitute(body, params), nil
}

// expandNative evaluates the call arguments to plain literal values,
// invokes the native callback, and splices in the parsed fragment.
func (in *inliner) expandNative(name string, fn NativeFunc, args []ast.Expression) (ast.Expression, error) {
	if in.active[name] {
		return nil, &RecursiveFunctionError{Name: name}
	}

	values := make([]interface{}, len(args))
	for i, arg := range args {
		value, err := literalValue(arg)
		if err != nil {
			return nil, fmt.Errorf("argument %d of '%s': %w", i+1, name, err)
		}
		values[i] = value
	}

	fragment, err := fn(values...)
	if err != nil {
		return nil, fmt.Errorf("native function '%s': %w", name, err)
	}

	expr, err := parser.Parse(fragment)
	if err != nil {
		return nil, fmt.Errorf("native function '%s' returned an invalid fragment: %w", name, err)
	}

	// The fragment may itself call declared or registered functions; the
	// active set catches fragments that expand back into this one.
	in.active[name] = true
	out, err := in.rewrite(expr)
	delete(in.active, name)
	return out, err
}

// rewriteMethodCall handles calls whose callee is a member access. The
// method is never inlined, but its name must be a known built-in.
func (in *inliner) rewriteMethodCall(call *ast.Call) (ast.Expression, error) {
	if member, ok := call.Callee.(*ast.Member); ok && !member.Computed {
		if !builtinMethods[member.Property] {
			return nil, in.undefinedMethod(member.Property)
		}
	}

	callee, err := in.rewrite(call.Callee)
	if err != nil {
		return nil, err
	}
	call.Callee = callee

	for i := range call.Args {
		arg, err := in.rewrite(call.Args[i])
		if err != nil {
			return nil, err
		}
		call.Args[i] = arg
	}

	return call, nil
}

func (in *inliner) undefined(name string) error {
	candidates := in.registry.Names()
	for declared := range in.opts.Functions {
		candidates = append(candidates, declared)
	}
	return &UndefinedFunctionError{Name: name, Suggestion: closestMatch(name, candidates)}
}

func (in *inliner) undefinedMethod(name string) error {
	return &UndefinedFunctionError{Name: name, Suggestion: closestMatch(name, builtinMethodNames())}
}

// closestMatch finds the closest candidate name using fuzzy matching,
// or "" when nothing is similar.
func closestMatch(target string, candidates []string) string {
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return ""
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance {
			best = rank
		}
	}
	return best.Target
}

// substitute replaces parameter identifiers in a function body with the
// corresponding call-site argument trees. Static property names are not
// identifier nodes, so x.next is never rewritten by a parameter named
// next. Grafted arguments are cloned so compiled outputs never share
// nodes.
func substitute(expr ast.Expression, params map[string]ast.Expression) ast.Expression {
	switch n := expr.(type) {
	case *ast.Identifier:
		if replacement, ok := params[n.Name]; ok {
			return ast.Clone(replacement)
		}
		return n
	case *ast.Member:
		n.Object = substitute(n.Object, params)
		if n.Computed {
			n.Index = substitute(n.Index, params)
		}
		return n
	case *ast.Call:
		n.Callee = substitute(n.Callee, params)
		for i := range n.Args {
			n.Args[i] = substitute(n.Args[i], params)
		}
		return n
	case *ast.Binary:
		n.Left = substitute(n.Left, params)
		n.Right = substitute(n.Right, params)
		return n
	case *ast.Logical:
		n.Left = substitute(n.Left, params)
		n.Right = substitute(n.Right, params)
		return n
	case *ast.Unary:
		n.Operand = substitute(n.Operand, params)
		return n
	case *ast.Conditional:
		n.Test = substitute(n.Test, params)
		n.Consequent = substitute(n.Consequent, params)
		n.Alternate = substitute(n.Alternate, params)
		return n
	case *ast.ArrayLiteral:
		for i := range n.Elements {
			n.Elements[i] = substitute(n.Elements[i], params)
		}
		return n
	default:
		return expr
	}
}

// literalValue reduces an argument expression to a plain Go value.
// Native functions receive evaluated literals, not arbitrary runtime
// expressions.
func literalValue(expr ast.Expression) (interface{}, error) {
	switch n := expr.(type) {
	case *ast.StringLiteral:
		return n.Value, nil
	case *ast.NumberLiteral:
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number literal '%s'", n.Value)
		}
		return f, nil
	case *ast.BooleanLiteral:
		return n.Value, nil
	case *ast.NullLiteral:
		return nil, nil
	case *ast.ArrayLiteral:
		values := make([]interface{}, len(n.Elements))
		for i, el := range n.Elements {
			value, err := literalValue(el)
			if err != nil {
				return nil, err
			}
			values[i] = value
		}
		return values, nil
	case *ast.Unary:
		if n.Op == "-" {
			if num, ok := n.Operand.(*ast.NumberLiteral); ok {
				f, err := strconv.ParseFloat(num.Value, 64)
				if err != nil {
					return nil, fmt.Errorf("invalid number literal '%s'", num.Value)
				}
				return -f, nil
			}
		}
		return nil, fmt.Errorf("expression '%s' is not a literal", expr.String())
	default:
		return nil, fmt.Errorf("expression '%s' is not a literal", expr.String())
	}
}

package compiler

import (
	"github.com/aputinski/butane/pkgs/ast"
	"github.com/aputinski/butane/pkgs/parser"
)

// ignoredRoots are identifiers whose member access is a native field
// lookup in the target language, not a child traversal.
var ignoredRoots = map[string]bool{
	"auth": true,
}

// desugarChild rewrites property and bracket access on snapshot chains
// into explicit child() lookups: next.foo.bar becomes
// next.child('foo').child('bar'), and next[$key] becomes
// next.child($key). Property access that is the callee of a call is a
// method name and stays as written.
func desugarChild(text string) (string, error) {
	expr, err := parser.Parse(text)
	if err != nil {
		return "", err
	}
	return childExpr(expr, false).String(), nil
}

func childExpr(expr ast.Expression, isCallee bool) ast.Expression {
	switch n := expr.(type) {
	case *ast.Member:
		root := ast.Root(n)
		ignored := root == nil || ignoredRoots[root.Name]

		object := childExpr(n.Object, false)

		if n.Computed {
			index := childExpr(n.Index, false)
			if ignored || isCallee {
				n.Object = object
				n.Index = index
				return n
			}
			return childCall(object, index)
		}

		n.Object = object
		if ignored || isCallee {
			// Method name, or a native field on an ignored root
			return n
		}
		return childCall(object, &ast.StringLiteral{Value: n.Property})

	case *ast.Call:
		n.Callee = childExpr(n.Callee, true)
		for i := range n.Args {
			n.Args[i] = childExpr(n.Args[i], false)
		}
		return n

	case *ast.Binary:
		n.Left = childExpr(n.Left, false)
		n.Right = childExpr(n.Right, false)
		return n

	case *ast.Logical:
		n.Left = childExpr(n.Left, false)
		n.Right = childExpr(n.Right, false)
		return n

	case *ast.Unary:
		n.Operand = childExpr(n.Operand, false)
		return n

	case *ast.Conditional:
		n.Test = childExpr(n.Test, false)
		n.Consequent = childExpr(n.Consequent, false)
		n.Alternate = childExpr(n.Alternate, false)
		return n

	case *ast.ArrayLiteral:
		for i := range n.Elements {
			n.Elements[i] = childExpr(n.Elements[i], false)
		}
		return n

	default:
		return expr
	}
}

func childCall(object, key ast.Expression) ast.Expression {
	return &ast.Call{
		Callee: &ast.Member{Object: object, Property: "child"},
		Args:   []ast.Expression{key},
	}
}

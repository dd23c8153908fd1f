package compiler

import (
	"github.com/aputinski/butane/pkgs/ast"
	"github.com/aputinski/butane/pkgs/parser"
)

// snapshotRoots are the reserved identifiers that resolve to snapshot
// handles. Expressions rooted at one of them yield a snapshot, not a
// value, until .val() is called.
var snapshotRoots = map[string]bool{
	"next": true,
	"prev": true,
	"root": true,
}

// coerceVal appends an explicit .val() call to every snapshot-rooted
// identifier or member chain that is used as a value. A chain that is
// the callee of a call is left alone: the method invoked on it decides
// whether it needs the snapshot or its value. The pass is idempotent;
// chains already ending in a call are never re-wrapped.
func coerceVal(text string) (string, error) {
	expr, err := parser.Parse(text)
	if err != nil {
		return "", err
	}
	return coerceExpr(expr, false).String(), nil
}

// coerceExpr walks the tree. isCallee marks a node that is invoked as a
// call target, which suppresses wrapping of the node itself (but not of
// expressions nested inside it).
func coerceExpr(expr ast.Expression, isCallee bool) ast.Expression {
	switch n := expr.(type) {
	case *ast.Identifier:
		if !isCallee && snapshotRoots[n.Name] {
			return wrapVal(n)
		}
		return n

	case *ast.Member:
		// Index expressions are full subexpressions: a bare snapshot
		// reference used as a child key needs its value even though the
		// surrounding chain needs the snapshot itself.
		if n.Computed {
			n.Index = coerceExpr(n.Index, false)
		}
		n.Object = coerceChainObject(n.Object)
		if !isCallee {
			if root := ast.Root(n); root != nil && snapshotRoots[root.Name] {
				return wrapVal(n)
			}
		}
		return n

	case *ast.Call:
		n.Callee = coerceExpr(n.Callee, true)
		for i := range n.Args {
			n.Args[i] = coerceExpr(n.Args[i], false)
		}
		return n

	case *ast.Binary:
		n.Left = coerceExpr(n.Left, false)
		n.Right = coerceExpr(n.Right, false)
		return n

	case *ast.Logical:
		n.Left = coerceExpr(n.Left, false)
		n.Right = coerceExpr(n.Right, false)
		return n

	case *ast.Unary:
		n.Operand = coerceExpr(n.Operand, false)
		return n

	case *ast.Conditional:
		n.Test = coerceExpr(n.Test, false)
		n.Consequent = coerceExpr(n.Consequent, false)
		n.Alternate = coerceExpr(n.Alternate, false)
		return n

	case *ast.ArrayLiteral:
		for i := range n.Elements {
			n.Elements[i] = coerceExpr(n.Elements[i], false)
		}
		return n

	default:
		return expr
	}
}

// coerceChainObject processes the interior of a member/call chain.
// Intermediate segments are never wrapped (the chain traverses
// snapshots), but computed indices and call arguments inside the chain
// are ordinary value positions.
func coerceChainObject(expr ast.Expression) ast.Expression {
	switch n := expr.(type) {
	case *ast.Identifier:
		return n
	case *ast.Member:
		if n.Computed {
			n.Index = coerceExpr(n.Index, false)
		}
		n.Object = coerceChainObject(n.Object)
		return n
	case *ast.Call:
		n.Callee = coerceChainObject(n.Callee)
		for i := range n.Args {
			n.Args[i] = coerceExpr(n.Args[i], false)
		}
		return n
	default:
		return coerceExpr(expr, false)
	}
}

func wrapVal(expr ast.Expression) ast.Expression {
	return &ast.Call{Callee: &ast.Member{Object: expr, Property: "val"}}
}

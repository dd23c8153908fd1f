package ast

// Walk traverses the expression tree depth-first and calls fn for each
// node. Returning false from fn stops descent into that node's children.
func Walk(node Expression, fn func(Expression) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Member:
		Walk(n.Object, fn)
		if n.Computed {
			Walk(n.Index, fn)
		}
	case *Call:
		Walk(n.Callee, fn)
		for _, arg := range n.Args {
			Walk(arg, fn)
		}
	case *Binary:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Logical:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Unary:
		Walk(n.Operand, fn)
	case *Conditional:
		Walk(n.Test, fn)
		Walk(n.Consequent, fn)
		Walk(n.Alternate, fn)
	case *ArrayLiteral:
		for _, el := range n.Elements {
			Walk(el, fn)
		}
	}
	// Identifier and literals are leaves
}

// Clone returns a structural deep copy of the expression. Passes that
// graft a subtree into another tree clone it first so compiled outputs
// never share mutable nodes.
func Clone(node Expression) Expression {
	switch n := node.(type) {
	case nil:
		return nil
	case *Identifier:
		return &Identifier{Name: n.Name}
	case *StringLiteral:
		return &StringLiteral{Value: n.Value}
	case *NumberLiteral:
		return &NumberLiteral{Value: n.Value}
	case *BooleanLiteral:
		return &BooleanLiteral{Value: n.Value}
	case *NullLiteral:
		return &NullLiteral{}
	case *ArrayLiteral:
		els := make([]Expression, len(n.Elements))
		for i, el := range n.Elements {
			els[i] = Clone(el)
		}
		return &ArrayLiteral{Elements: els}
	case *Member:
		m := &Member{Object: Clone(n.Object), Property: n.Property, Computed: n.Computed}
		if n.Computed {
			m.Index = Clone(n.Index)
		}
		return m
	case *Call:
		args := make([]Expression, len(n.Args))
		for i, arg := range n.Args {
			args[i] = Clone(arg)
		}
		return &Call{Callee: Clone(n.Callee), Args: args}
	case *Binary:
		return &Binary{Op: n.Op, Left: Clone(n.Left), Right: Clone(n.Right)}
	case *Logical:
		return &Logical{Op: n.Op, Left: Clone(n.Left), Right: Clone(n.Right)}
	case *Unary:
		return &Unary{Op: n.Op, Operand: Clone(n.Operand)}
	case *Conditional:
		return &Conditional{Test: Clone(n.Test), Consequent: Clone(n.Consequent), Alternate: Clone(n.Alternate)}
	default:
		return node
	}
}

// Root returns the identifier at the base of a member/call chain, or nil
// when the chain does not bottom out at an identifier. For
// next.child('a').val() the root is next.
func Root(node Expression) *Identifier {
	switch n := node.(type) {
	case *Identifier:
		return n
	case *Member:
		return Root(n.Object)
	case *Call:
		return Root(n.Callee)
	default:
		return nil
	}
}

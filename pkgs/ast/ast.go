package ast

import (
	"fmt"
	"strings"
)

// Expression represents any node in a Butane expression tree. String
// renders the canonical source form with minimal parenthesization.
type Expression interface {
	String() string
	IsExpression() bool
}

// Operator precedence levels, used by the printer to decide where
// parentheses are required. Higher binds tighter.
const (
	precConditional = iota + 1
	precOr
	precAnd
	precEquality
	precRelational
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
	precPrimary
)

var binaryPrecedence = map[string]int{
	"||":  precOr,
	"&&":  precAnd,
	"===": precEquality,
	"!==": precEquality,
	"==":  precEquality,
	"!=":  precEquality,
	"<":   precRelational,
	"<=":  precRelational,
	">":   precRelational,
	">=":  precRelational,
	"+":   precAdditive,
	"-":   precAdditive,
	"*":   precMultiplicative,
	"/":   precMultiplicative,
	"%":   precMultiplicative,
}

// precedence returns the printer precedence of an expression node.
func precedence(e Expression) int {
	switch n := e.(type) {
	case *Conditional:
		return precConditional
	case *Logical:
		return binaryPrecedence[n.Op]
	case *Binary:
		return binaryPrecedence[n.Op]
	case *Unary:
		return precUnary
	case *Member, *Call:
		return precPostfix
	default:
		return precPrimary
	}
}

// wrap renders a child expression, parenthesizing it when its precedence
// is below the required level.
func wrap(e Expression, min int) string {
	if precedence(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// Identifier is a bare name, including wildcard names like $game.
type Identifier struct {
	Name string
}

func (i *Identifier) String() string     { return i.Name }
func (i *Identifier) IsExpression() bool { return true }

// StringLiteral holds the decoded string value; String re-quotes it.
type StringLiteral struct {
	Value string
}

func (s *StringLiteral) String() string {
	r := strings.NewReplacer("\\", "\\\\", "'", "\\'", "\n", "\\n", "\t", "\\t")
	return "'" + r.Replace(s.Value) + "'"
}
func (s *StringLiteral) IsExpression() bool { return true }

// NumberLiteral keeps the raw source text so 1.50 is not reprinted as 1.5.
type NumberLiteral struct {
	Value string
}

func (n *NumberLiteral) String() string     { return n.Value }
func (n *NumberLiteral) IsExpression() bool { return true }

// BooleanLiteral represents true and false.
type BooleanLiteral struct {
	Value bool
}

func (b *BooleanLiteral) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}
func (b *BooleanLiteral) IsExpression() bool { return true }

// NullLiteral represents the null keyword.
type NullLiteral struct{}

func (n *NullLiteral) String() string     { return "null" }
func (n *NullLiteral) IsExpression() bool { return true }

// ArrayLiteral represents [a, b, c].
type ArrayLiteral struct {
	Elements []Expression
}

func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		parts[i] = el.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
func (a *ArrayLiteral) IsExpression() bool { return true }

// Member represents property access. Static access (a.b) stores the
// property name; computed access (a[b]) stores the index expression.
type Member struct {
	Object   Expression
	Property string     // static access only
	Computed bool
	Index    Expression // computed access only
}

func (m *Member) String() string {
	obj := wrap(m.Object, precPostfix)
	if m.Computed {
		return fmt.Sprintf("%s[%s]", obj, m.Index.String())
	}
	return fmt.Sprintf("%s.%s", obj, m.Property)
}
func (m *Member) IsExpression() bool { return true }

// Call represents a call expression. The callee is either a bare
// Identifier (user or registered function) or a Member (snapshot method).
type Call struct {
	Callee Expression
	Args   []Expression
}

func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, arg := range c.Args {
		parts[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", wrap(c.Callee, precPostfix), strings.Join(parts, ", "))
}
func (c *Call) IsExpression() bool { return true }

// Binary represents arithmetic, comparison, and equality operators.
type Binary struct {
	Op    string
	Left  Expression
	Right Expression
}

func (b *Binary) String() string {
	prec := binaryPrecedence[b.Op]
	// Left-associative: the right operand needs parens at equal precedence
	return fmt.Sprintf("%s %s %s", wrap(b.Left, prec), b.Op, wrap(b.Right, prec+1))
}
func (b *Binary) IsExpression() bool { return true }

// Logical represents && and ||. Kept distinct from Binary so passes can
// match on short-circuit structure.
type Logical struct {
	Op    string
	Left  Expression
	Right Expression
}

func (l *Logical) String() string {
	prec := binaryPrecedence[l.Op]
	right := l.Right
	// && and || are associative, so a same-operator right operand prints
	// without parens
	rightMin := prec + 1
	if lr, ok := right.(*Logical); ok && lr.Op == l.Op {
		rightMin = prec
	}
	return fmt.Sprintf("%s %s %s", wrap(l.Left, prec), l.Op, wrap(right, rightMin))
}
func (l *Logical) IsExpression() bool { return true }

// Unary represents ! and prefix -.
type Unary struct {
	Op      string
	Operand Expression
}

func (u *Unary) String() string {
	return u.Op + wrap(u.Operand, precUnary)
}
func (u *Unary) IsExpression() bool { return true }

// Conditional represents test ? consequent : alternate, right-associative.
type Conditional struct {
	Test       Expression
	Consequent Expression
	Alternate  Expression
}

func (c *Conditional) String() string {
	// A conditional used as its own test needs parens; the alternate arm
	// nests without them.
	return fmt.Sprintf("%s ? %s : %s",
		wrap(c.Test, precOr),
		wrap(c.Consequent, precConditional),
		c.Alternate.String())
}
func (c *Conditional) IsExpression() bool { return true }

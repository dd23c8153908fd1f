package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aputinski/butane/pkgs/ast"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ast.Expression
	}{
		{
			name:  "identifier",
			input: "next",
			want:  &ast.Identifier{Name: "next"},
		},
		{
			name:  "member chain",
			input: "next.users.name",
			want: &ast.Member{
				Object:   &ast.Member{Object: &ast.Identifier{Name: "next"}, Property: "users"},
				Property: "name",
			},
		},
		{
			name:  "computed access",
			input: "next[$game]",
			want: &ast.Member{
				Object:   &ast.Identifier{Name: "next"},
				Computed: true,
				Index:    &ast.Identifier{Name: "$game"},
			},
		},
		{
			name:  "call with arguments",
			input: "prev.hasChild('id', 2)",
			want: &ast.Call{
				Callee: &ast.Member{Object: &ast.Identifier{Name: "prev"}, Property: "hasChild"},
				Args: []ast.Expression{
					&ast.StringLiteral{Value: "id"},
					&ast.NumberLiteral{Value: "2"},
				},
			},
		},
		{
			name:  "precedence of and over or",
			input: "a || b && c",
			want: &ast.Logical{
				Op:   "||",
				Left: &ast.Identifier{Name: "a"},
				Right: &ast.Logical{
					Op:    "&&",
					Left:  &ast.Identifier{Name: "b"},
					Right: &ast.Identifier{Name: "c"},
				},
			},
		},
		{
			name:  "left associativity",
			input: "a - b - c",
			want: &ast.Binary{
				Op: "-",
				Left: &ast.Binary{
					Op:    "-",
					Left:  &ast.Identifier{Name: "a"},
					Right: &ast.Identifier{Name: "b"},
				},
				Right: &ast.Identifier{Name: "c"},
			},
		},
		{
			name:  "parenthesized grouping",
			input: "(a || b) && c",
			want: &ast.Logical{
				Op: "&&",
				Left: &ast.Logical{
					Op:    "||",
					Left:  &ast.Identifier{Name: "a"},
					Right: &ast.Identifier{Name: "b"},
				},
				Right: &ast.Identifier{Name: "c"},
			},
		},
		{
			name:  "strict equality with null",
			input: "auth !== null",
			want: &ast.Binary{
				Op:    "!==",
				Left:  &ast.Identifier{Name: "auth"},
				Right: &ast.NullLiteral{},
			},
		},
		{
			name:  "unary chains",
			input: "!!a",
			want: &ast.Unary{
				Op:      "!",
				Operand: &ast.Unary{Op: "!", Operand: &ast.Identifier{Name: "a"}},
			},
		},
		{
			name:  "negative number",
			input: "-1",
			want:  &ast.Unary{Op: "-", Operand: &ast.NumberLiteral{Value: "1"}},
		},
		{
			name:  "conditional is right associative",
			input: "a ? b : c ? d : e",
			want: &ast.Conditional{
				Test:       &ast.Identifier{Name: "a"},
				Consequent: &ast.Identifier{Name: "b"},
				Alternate: &ast.Conditional{
					Test:       &ast.Identifier{Name: "c"},
					Consequent: &ast.Identifier{Name: "d"},
					Alternate:  &ast.Identifier{Name: "e"},
				},
			},
		},
		{
			name:  "array literal",
			input: "[1, 'two', true]",
			want: &ast.ArrayLiteral{Elements: []ast.Expression{
				&ast.NumberLiteral{Value: "1"},
				&ast.StringLiteral{Value: "two"},
				&ast.BooleanLiteral{Value: true},
			}},
		},
		{
			name:  "empty array",
			input: "[]",
			want:  &ast.ArrayLiteral{},
		},
		{
			name:  "call on computed member",
			input: "next[key].val()",
			want: &ast.Call{
				Callee: &ast.Member{
					Object: &ast.Member{
						Object:   &ast.Identifier{Name: "next"},
						Computed: true,
						Index:    &ast.Identifier{Name: "key"},
					},
					Property: "val",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		column  int
		message string
	}{
		{
			name:    "dangling operator",
			input:   "next ===",
			column:  8,
			message: "unexpected end of expression",
		},
		{
			name:    "trailing token",
			input:   "a b",
			column:  2,
			message: "unexpected 'b' after expression",
		},
		{
			name:    "unclosed paren",
			input:   "(a",
			column:  2,
			message: "expected ')'",
		},
		{
			name:    "missing colon in conditional",
			input:   "a ? b",
			column:  5,
			message: "expected ':'",
		},
		{
			name:    "bad argument separator",
			input:   "f(a; b)",
			column:  3,
			message: "expected ',' or ')'",
		},
		{
			name:    "assignment is not an operator",
			input:   "a = b",
			column:  2,
			message: "unexpected '=' after expression",
		},
		{
			name:    "empty input",
			input:   "",
			column:  0,
			message: "unexpected end of expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want error", tt.input)
			}

			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) returned %T, want *ParseError", tt.input, err)
			}
			if perr.Column != tt.column {
				t.Errorf("column = %d, want %d", perr.Column, tt.column)
			}
			if !strings.Contains(perr.Message, tt.message) {
				t.Errorf("message = %q, want it to contain %q", perr.Message, tt.message)
			}
		})
	}
}

func TestParseError_Pointer(t *testing.T) {
	_, err := Parse("next ===")
	if err == nil {
		t.Fatal("expected an error")
	}

	msg := err.Error()
	lines := strings.Split(msg, "\n")
	if len(lines) != 3 {
		t.Fatalf("error message has %d lines, want 3:\n%s", len(lines), msg)
	}
	if lines[1] != "next ===" {
		t.Errorf("context line = %q, want the input", lines[1])
	}
	if lines[2] != "        ^" {
		t.Errorf("pointer line = %q, want caret at column 8", lines[2])
	}
}

func TestPrint_Canonical(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a||b&&c", "a || b && c"},
		{"( a + b ) * c", "(a + b) * c"},
		{`next.child("users")`, "next.child('users')"},
		{"((a))", "a"},
		{"a&&b&&c", "a && b && c"},
	}

	for _, tt := range tests {
		expr, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.input, err)
		}
		if got := Print(expr); got != tt.want {
			t.Errorf("Print(Parse(%q)) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

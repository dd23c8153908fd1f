package compiler

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceVal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare snapshot root",
			input: "next",
			want:  "next.val()",
		},
		{
			name:  "snapshot in a comparison",
			input: "next === 'a'",
			want:  "next.val() === 'a'",
		},
		{
			name:  "member chain",
			input: "next.name",
			want:  "next.name.val()",
		},
		{
			name:  "both sides of an operator",
			input: "next.name === prev.name",
			want:  "next.name.val() === prev.name.val()",
		},
		{
			name:  "method call is left alone",
			input: "next.hasChild('x')",
			want:  "next.hasChild('x')",
		},
		{
			name:  "explicit val is not re-wrapped",
			input: "next.val()",
			want:  "next.val()",
		},
		{
			name:  "method arguments are value positions",
			input: "root.hasChild(next)",
			want:  "root.hasChild(next.val())",
		},
		{
			name:  "computed index is a value position",
			input: "next[prev]",
			want:  "next[prev.val()].val()",
		},
		{
			name:  "non-snapshot roots are untouched",
			input: "auth.uid === next",
			want:  "auth.uid === next.val()",
		},
		{
			name:  "wildcard identifiers are untouched",
			input: "$game === next",
			want:  "$game === next.val()",
		},
		{
			name:  "conditional branches",
			input: "next ? prev : root",
			want:  "next.val() ? prev.val() : root.val()",
		},
		{
			name:  "unary operand",
			input: "!next",
			want:  "!next.val()",
		},
		{
			name:  "chain continuing after a call",
			input: "next.child('a').exists()",
			want:  "next.child('a').exists()",
		},
		{
			name:  "literals pass through",
			input: "1 + 2 === 3",
			want:  "1 + 2 === 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := coerceVal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceVal_ParseError(t *testing.T) {
	_, err := coerceVal("next ===")
	assert.Error(t, err)
}

// genCoercible generates expression strings over the snapshot roots,
// exercising the positions the coercion pass cares about.
func genCoercible(depth int) gopter.Gen {
	leaf := gen.OneConstOf("next", "prev", "root", "auth", "auth.uid", "$key", "'str'", "42", "true", "null")
	if depth == 0 {
		return leaf
	}

	sub := genCoercible(depth - 1)

	return gen.OneGenOf(
		leaf,
		gopter.CombineGens(sub, gen.OneConstOf("===", "!==", "&&", "||", "<", "+"), sub).
			Map(func(vs []interface{}) string {
				return fmt.Sprintf("(%s) %s (%s)", vs[0], vs[1], vs[2])
			}),
		gen.OneConstOf("next", "prev", "root").Map(func(s string) string { return s + ".name" }),
		gopter.CombineGens(gen.OneConstOf("next", "prev", "root"), sub).Map(func(vs []interface{}) string {
			return fmt.Sprintf("%s.hasChild(%s)", vs[0], vs[1])
		}),
		gopter.CombineGens(gen.OneConstOf("next", "prev"), sub).Map(func(vs []interface{}) string {
			return fmt.Sprintf("%s[%s]", vs[0], vs[1])
		}),
		sub.Map(func(s string) string { return "!(" + s + ")" }),
	)
}

// Coercion is idempotent: running the pass over its own output changes
// nothing.
func TestCoerceVal_Idempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("coerce(coerce(x)) == coerce(x)", prop.ForAll(
		func(src string) bool {
			once, err := coerceVal(src)
			if err != nil {
				return false
			}
			twice, err := coerceVal(once)
			if err != nil {
				return false
			}
			return once == twice
		},
		genCoercible(3),
	))

	properties.TestingRun(t)
}

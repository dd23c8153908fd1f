package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesugarChild(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "property access",
			input: "next.foo",
			want:  "next.child('foo')",
		},
		{
			name:  "nested property access",
			input: "next.foo.bar",
			want:  "next.child('foo').child('bar')",
		},
		{
			name:  "computed access",
			input: "next[$game]",
			want:  "next.child($game)",
		},
		{
			name:  "computed access with expression key",
			input: "root[auth.uid]",
			want:  "root.child(auth.uid)",
		},
		{
			name:  "method name survives",
			input: "next.foo.val()",
			want:  "next.child('foo').val()",
		},
		{
			name:  "chain continues after a call",
			input: "prev.child('a').b.exists()",
			want:  "prev.child('a').child('b').exists()",
		},
		{
			name:  "auth fields are native lookups",
			input: "auth.uid === auth.token.admin",
			want:  "auth.uid === auth.token.admin",
		},
		{
			name:  "both operands rewritten",
			input: "next.foo === prev.bar",
			want:  "next.child('foo') === prev.child('bar')",
		},
		{
			name:  "method arguments are rewritten",
			input: "prev.hasChild(next.foo)",
			want:  "prev.hasChild(next.child('foo'))",
		},
		{
			name:  "parent traversal stays a method",
			input: "prev.parent().owner",
			want:  "prev.parent().child('owner')",
		},
		{
			name:  "bare roots untouched",
			input: "next.val() === prev.val()",
			want:  "next.val() === prev.val()",
		},
		{
			name:  "wildcard identifier untouched",
			input: "$game === next.val()",
			want:  "$game === next.val()",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := desugarChild(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenameRoots(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "next and prev",
			input: "next.val() === prev.val()",
			want:  "newData.val() === data.val()",
		},
		{
			name:  "root keeps its name",
			input: "root.child('users').exists()",
			want:  "root.child('users').exists()",
		},
		{
			name:  "property named next is not renamed",
			input: "x.next === next.val()",
			want:  "x.next === newData.val()",
		},
		{
			name:  "string content is not renamed",
			input: "next.child('prev')",
			want:  "newData.child('prev')",
		},
		{
			name:  "other identifiers untouched",
			input: "auth.uid === $game",
			want:  "auth.uid === $game",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renameRoots(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

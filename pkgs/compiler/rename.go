package compiler

import (
	"github.com/aputinski/butane/pkgs/ast"
	"github.com/aputinski/butane/pkgs/parser"
)

// renamedRoots maps the reserved Butane root identifiers to their
// target-language snapshot names.
var renamedRoots = map[string]string{
	"next": "newData",
	"prev": "data",
	"root": "root",
}

// renameRoots rewrites the reserved root identifiers to their target
// names. Only identifier nodes are renamed; a property that happens to
// share a reserved name (x.next) is not an identifier node and stays
// untouched. Runs last so the earlier passes still see the source names.
func renameRoots(text string) (string, error) {
	expr, err := parser.Parse(text)
	if err != nil {
		return "", err
	}

	ast.Walk(expr, func(node ast.Expression) bool {
		if ident, ok := node.(*ast.Identifier); ok {
			if target, ok := renamedRoots[ident.Name]; ok {
				ident.Name = target
			}
		}
		return true
	})

	return expr.String(), nil
}

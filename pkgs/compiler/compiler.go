// Package compiler rewrites Butane ruleset trees into their
// target-language form. Every string leaf runs through a fixed pass
// order: reference expansion, function inlining, value coercion, child
// desugaring, and root renaming. The order is load-bearing: refs expand
// to plain expressions before bodies are inlined, coercion decides on
// the pre-desugared shape, and renaming runs last so earlier passes
// still recognize the source root names.
package compiler

import (
	"fmt"
	"strings"
)

// Compiler compiles rule trees using a fixed native-function registry.
// Independent compilations with different extension sets use separate
// Compiler values.
type Compiler struct {
	registry *Registry
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithRegistry replaces the default native-function registry.
func WithRegistry(r *Registry) Option {
	return func(c *Compiler) {
		c.registry = r
	}
}

// New creates a Compiler. Without options it uses DefaultRegistry.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.registry == nil {
		c.registry = DefaultRegistry()
	}
	return c
}

// Registry returns the compiler's native-function registry, so callers
// can register extensions before compiling.
func (c *Compiler) Registry() *Registry {
	return c.registry
}

// Compile rewrites the rule tree in place and returns it for chaining.
// Special keys (.refs, .functions) are stripped at every level; every
// string leaf is replaced by its compiled expression. Non-string,
// non-tree leaves pass through unmodified. Any failure aborts the whole
// compilation.
func (c *Compiler) Compile(rules RuleTree) (RuleTree, error) {
	if err := c.compileNode(rules, NewOptions(), nil); err != nil {
		return nil, err
	}
	return rules, nil
}

func (c *Compiler) compileNode(rules RuleTree, inherited *Options, path []string) error {
	opts, err := resolveOptions(rules, inherited)
	if err != nil {
		return errAt(path, err)
	}

	for key, value := range rules {
		switch v := value.(type) {
		case map[string]interface{}:
			if err := c.compileNode(v, opts, append(path, key)); err != nil {
				return err
			}
		case string:
			compiled, err := c.compileExpression(v, opts)
			if err != nil {
				return errAt(append(path, key), err)
			}
			rules[key] = compiled
		}
	}

	return nil
}

// compileExpression runs the pass pipeline over one expression string.
func (c *Compiler) compileExpression(text string, opts *Options) (string, error) {
	text = expandRefs(text, opts)

	text, err := c.inlineFunctions(text, opts)
	if err != nil {
		return "", err
	}

	text, err = coerceVal(text)
	if err != nil {
		return "", err
	}

	text, err = desugarChild(text)
	if err != nil {
		return "", err
	}

	return renameRoots(text)
}

func errAt(path []string, err error) error {
	if len(path) == 0 {
		return err
	}
	return fmt.Errorf("%s: %w", strings.Join(path, "/"), err)
}

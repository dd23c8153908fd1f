// Package document loads and stores ruleset documents. The compiler
// itself never touches the filesystem; this package decodes YAML text
// into plain rule trees, hands them to a Compiler, and writes the
// compiled tree back out as pretty-printed JSON.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/aputinski/butane/pkgs/compiler"
)

// Sentinel errors raised by the file-mode entry point before any
// compilation is attempted.
var (
	// ErrMissingInput indicates the input path does not exist.
	ErrMissingInput = errors.New("input file does not exist")

	// ErrMissingOutputDir indicates the output directory does not exist.
	ErrMissingOutputDir = errors.New("output directory does not exist")
)

// IsPathError reports whether err comes from the pre-compilation path
// checks rather than from compiling the ruleset itself.
func IsPathError(err error) bool {
	return errors.Is(err, ErrMissingInput) || errors.Is(err, ErrMissingOutputDir)
}

// Decode parses YAML ruleset text into a rule tree.
func Decode(data []byte) (compiler.RuleTree, error) {
	var tree compiler.RuleTree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decoding ruleset: %w", err)
	}
	return tree, nil
}

// Encode renders a rule tree as pretty-printed JSON with a trailing
// newline, ready to be written to a rules file.
func Encode(tree compiler.RuleTree) ([]byte, error) {
	data, err := json.MarshalIndent(tree, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding ruleset: %w", err)
	}
	return append(data, '\n'), nil
}

// CompileString decodes a YAML ruleset from src, compiles it, and
// returns the serialized JSON result. No file I/O is performed.
func CompileString(c *compiler.Compiler, src string) (string, error) {
	tree, err := Decode([]byte(src))
	if err != nil {
		return "", err
	}

	if _, err := c.Compile(tree); err != nil {
		return "", err
	}

	out, err := Encode(tree)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// CompileFile reads the ruleset at inputPath, compiles it, and writes
// the JSON result to outputPath. With an empty outputPath nothing is
// written and the compiled tree is only returned. Path problems are
// reported before compilation starts.
func CompileFile(c *compiler.Compiler, inputPath, outputPath string) (compiler.RuleTree, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMissingInput, inputPath)
	}

	if outputPath != "" {
		dir := filepath.Dir(outputPath)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %q", ErrMissingOutputDir, dir)
		}
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", inputPath, err)
	}

	tree, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if _, err := c.Compile(tree); err != nil {
		return nil, err
	}

	if outputPath == "" {
		return tree, nil
	}

	out, err := Encode(tree)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return nil, fmt.Errorf("writing %q: %w", outputPath, err)
	}

	return tree, nil
}

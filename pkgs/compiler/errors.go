package compiler

import (
	"errors"
	"fmt"
)

// Sentinel errors for category checks with errors.Is.
var (
	// ErrUndefinedFunction indicates a call to a function that is neither
	// declared in .functions nor registered as a native extension.
	ErrUndefinedFunction = errors.New("undefined function")

	// ErrMalformedFunction indicates a .functions key that does not parse
	// as name(arg, ...) with bare identifier arguments.
	ErrMalformedFunction = errors.New("malformed function declaration")

	// ErrRecursiveFunction indicates a function that directly or
	// indirectly calls itself.
	ErrRecursiveFunction = errors.New("recursive function definition")
)

// UndefinedFunctionError reports a call to an unknown function, with an
// optional closest-match suggestion.
type UndefinedFunctionError struct {
	Name       string
	Suggestion string
}

func (e *UndefinedFunctionError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("undefined function '%s' (did you mean '%s'?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("undefined function '%s'", e.Name)
}

func (e *UndefinedFunctionError) Unwrap() error { return ErrUndefinedFunction }

// MalformedFunctionError reports a .functions declaration key that could
// not be expanded into a FunctionDef.
type MalformedFunctionError struct {
	Declaration string
	Reason      string
}

func (e *MalformedFunctionError) Error() string {
	return fmt.Sprintf("invalid function declaration '%s': %s", e.Declaration, e.Reason)
}

func (e *MalformedFunctionError) Unwrap() error { return ErrMalformedFunction }

// RecursiveFunctionError reports a self- or mutually-recursive function
// detected during inlining.
type RecursiveFunctionError struct {
	Name string
}

func (e *RecursiveFunctionError) Error() string {
	return fmt.Sprintf("function '%s' is defined recursively", e.Name)
}

func (e *RecursiveFunctionError) Unwrap() error { return ErrRecursiveFunction }

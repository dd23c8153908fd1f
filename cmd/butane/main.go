package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aputinski/butane/pkgs/compiler"
	"github.com/aputinski/butane/pkgs/document"
)

func main() {
	var watch bool

	rootCmd := &cobra.Command{
		Use:   "butane <input> [<output>]",
		Short: "Compile Butane rulesets into Firebase security rules",
		Long: `Butane compiles a YAML ruleset written in the Butane expression
syntax into an equivalent JSON document of Firebase security-rule
expressions. Without an output path the compiled rules are printed to
standard output. Use - as the input path to read from standard input.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args, watch)
		},
	}

	rootCmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile whenever the input file changes")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, watch bool) error {
	input := args[0]
	output := ""
	if len(args) == 2 {
		output = args[1]
	}

	c := compiler.New()

	if input == "-" {
		if watch {
			return fmt.Errorf("--watch cannot be used with standard input")
		}
		return runStdin(c, output)
	}

	if watch {
		return runWatch(c, input, output)
	}

	tree, err := document.CompileFile(c, input, output)
	if err != nil {
		return err
	}
	if output == "" {
		return print(tree)
	}
	return nil
}

func runStdin(c *compiler.Compiler, output string) error {
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}

	compiled, err := document.CompileString(c, string(src))
	if err != nil {
		return err
	}

	if output == "" {
		fmt.Print(compiled)
		return nil
	}
	return os.WriteFile(output, []byte(compiled), 0o644)
}

func runWatch(c *compiler.Compiler, input, output string) error {
	// Compile once up front. Path problems abort; a broken ruleset is
	// reported and can be fixed under watch.
	tree, err := document.CompileFile(c, input, output)
	if err != nil && document.IsPathError(err) {
		return err
	}
	report(tree, err, input, output)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = document.Watch(ctx, c, input, output, func(tree compiler.RuleTree, err error) {
		report(tree, err, input, output)
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func report(tree compiler.RuleTree, err error, input, output string) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if output == "" {
		if err := print(tree); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "Compiled %s -> %s\n", input, output)
}

func print(tree compiler.RuleTree) error {
	out, err := document.Encode(tree)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}

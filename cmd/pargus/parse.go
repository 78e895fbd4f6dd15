package main

import (
	"fmt"
	"os"

	"github.com/pargus/pargus/driver/lexer"
	"github.com/pargus/pargus/driver/parser"
	"github.com/pargus/pargus/report"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source    *string
	onlyParse *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <compiled spec path>",
		Short:   "Parse a text stream",
		Example: `  cat src | pargus parse spec.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.onlyParse = cmd.Flags().Bool("only-parse", false, "when this option is enabled, the command reports success or failure but doesn't print the tree")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cspec, err := readCompiledSpec(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a compiled spec: %w", err)
	}

	src, err := openSource(*parseFlags.source)
	if err != nil {
		return fmt.Errorf("Cannot open the source file: %w", err)
	}
	defer src.Close()

	errState := report.NewErrorState()
	l, err := lexer.NewLexer(lexer.NewLexSpec(cspec.Lexical), errState, src)
	if err != nil {
		return err
	}
	toks, err := l.Run()
	if err != nil {
		return err
	}

	gram := parser.NewGrammar(cspec.Syntactic)
	tree, err := parser.NewParser(gram, errState, toks).Parse()
	if err != nil {
		return err
	}

	if !*parseFlags.onlyParse {
		parser.PrintTree(os.Stdout, tree, gram, l.Source())
	}

	return nil
}

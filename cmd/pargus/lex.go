package main

import (
	"fmt"
	"os"

	"github.com/pargus/pargus/driver/lexer"
	"github.com/pargus/pargus/report"
	"github.com/spf13/cobra"
)

var lexFlags = struct {
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "lex <compiled spec path>",
		Short:   "Tokenize a text stream",
		Example: `  cat src | pargus lex spec.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runLex,
	}
	lexFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	cspec, err := readCompiledSpec(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a compiled spec: %w", err)
	}

	src, err := openSource(*lexFlags.source)
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

	text := l.Source()
	for i := 0; i < toks.Len(); i++ {
		tok := toks.Get(i)
		name := cspec.Syntactic.Terminals[tok.TerminalID.Int()]
		fmt.Fprintf(os.Stdout, "%v:%v: %v %#v\n", tok.From, tok.To, name, string(text[tok.From:tok.To]))
	}

	return nil
}

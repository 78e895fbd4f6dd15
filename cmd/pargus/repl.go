package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pargus/pargus/driver/lexer"
	"github.com/pargus/pargus/driver/parser"
	"github.com/pargus/pargus/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "repl <compiled spec path>",
		Short:   "Parse input interactively, one line at a time",
		Example: `  pargus repl spec.json`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRepl,
	}
	rootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	cspec, err := readCompiledSpec(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a compiled spec: %w", err)
	}

	rl, err := readline.New("pargus> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println(fmt.Sprintf("spec %v loaded; quit with <ctrl>D", cspec.Name))

	gram := parser.NewGrammar(cspec.Syntactic)
	lspec := lexer.NewLexSpec(cspec.Lexical)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		errState := report.NewErrorState()
		l, err := lexer.NewLexer(lspec, errState, strings.NewReader(line))
		if err != nil {
			return err
		}
		toks, err := l.Run()
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		tree, err := parser.NewParser(gram, errState, toks).Parse()
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		parser.PrintTree(os.Stdout, tree, gram, l.Source())
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "describe <compiled spec path>",
		Short: "Print a summary of a compiled spec",
		Args:  cobra.ExactArgs(1),
		RunE:  runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	cspec, err := readCompiledSpec(args[0])
	if err != nil {
		return fmt.Errorf("Cannot read a compiled spec: %w", err)
	}

	fp, err := cspec.Fingerprint()
	if err != nil {
		return fmt.Errorf("Cannot fingerprint the compiled spec: %w", err)
	}

	w := os.Stdout
	fmt.Fprintf(w, "name:             %v\n", cspec.Name)
	fmt.Fprintf(w, "fingerprint:      %v\n", fp)
	fmt.Fprintf(w, "lexer states:     %v\n", cspec.Lexical.RowCount)
	fmt.Fprintf(w, "compression:      level %v\n", cspec.Lexical.CompressionLevel)
	fmt.Fprintf(w, "parser states:    %v\n", cspec.Syntactic.StateCount)
	fmt.Fprintf(w, "terminals:        %v\n", cspec.Syntactic.TerminalCount)
	fmt.Fprintf(w, "non-terminals:    %v\n", cspec.Syntactic.NonTerminalCount)
	fmt.Fprintf(w, "productions:      %v\n", len(cspec.Syntactic.LHSSymbols))

	return nil
}

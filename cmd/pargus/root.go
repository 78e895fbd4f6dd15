package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pargus/pargus/spec"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pargus",
	Short: "Run generated parsing tables over source text",
	Long: `pargus is the runtime for generated table-driven parsers. It consumes a
compiled spec (the transition/action/goto tables a generator emitted from a
grammar) and drives the lexer and the parser over source text.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

func readCompiledSpec(path string) (*spec.CompiledSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	cspec := &spec.CompiledSpec{}
	err = json.Unmarshal(data, cspec)
	if err != nil {
		return nil, err
	}
	err = cspec.Validate()
	if err != nil {
		return nil, fmt.Errorf("malformed compiled spec %v: %w", path, err)
	}
	return cspec, nil
}

func openSource(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

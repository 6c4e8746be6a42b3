// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/input"
	clailog "github.com/smetj/clai/internal/log"
	"github.com/smetj/clai/internal/llm"
	"github.com/smetj/clai/internal/pipeline"
	"github.com/smetj/clai/internal/prompts"
	"github.com/smetj/clai/internal/verdict"
)

// Environment variables that provide flag defaults.
const (
	envBackend  = "CLAI_BACKEND"
	envInstance = "CLAI_INSTANCE"
)

// Global flag values.
var (
	configPath string
	debug      bool
	quiet      bool
	noColor    bool
)

// Prompt flag values.
var (
	promptText string
	boolMode   bool
	backend    string
	instance   string
)

// envDefaults maps flag names to the environment variable consulted when the
// flag is not given on the command line.
var envDefaults = map[string]string{
	"config":   config.EnvConfigPath,
	"backend":  envBackend,
	"instance": envInstance,
}

// rootCmd sends a prompt to a backend instance.
var rootCmd = &cobra.Command{
	Use:   "clai",
	Short: "Send a prompt to an LLM backend from the command line",
	Long: `clai forwards a prompt, plus anything piped on standard input, to one of
several interchangeable LLM backends and prints the answer.

With --bool the answer is constrained to a JSON verdict {"answer": bool,
"reason": string} and the exit code reflects it:
  0  answer is true
  1  answer is false, or the request failed
  3  the backend returned a malformed verdict`,
	Example: `  clai --backend openai --instance default --prompt "say hello"
  git diff | clai --bool --prompt "does this diff touch the public API?"`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		clailog.Setup(cmd.ErrOrStderr(), debug, quiet)
		if noColor {
			color.NoColor = true
		}
		return applyEnvDefaults(cmd)
	},
	RunE: runPrompt,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output and print the assembled messages to stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.Flags().StringVarP(&promptText, "prompt", "p", "", "prompt to send (optional when input is piped)")
	rootCmd.Flags().BoolVar(&boolMode, "bool", false, "constrain the answer to a true/false verdict and exit accordingly")
	rootCmd.Flags().StringVarP(&backend, "backend", "b", "", "backend to use (default $"+envBackend+")")
	rootCmd.Flags().StringVarP(&instance, "instance", "i", "", "backend instance to use (default $"+envInstance+")")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(backendsCmd)
	rootCmd.AddCommand(mcpCmd)
}

// applyEnvDefaults fills flags that were not set on the command line from
// their environment variables.
func applyEnvDefaults(cmd *cobra.Command) error {
	for name, env := range envDefaults {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}
		if err := f.Value.Set(value); err != nil {
			return fmt.Errorf("invalid value %q in %s: %w", value, env, err)
		}
	}
	return nil
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	mode := prompts.ModePlain
	if boolMode {
		mode = prompts.ModeBool
	}

	opts := pipeline.Options{
		ConfigPath: configPath,
		Backend:    backend,
		Instance:   instance,
		Prompt:     promptText,
		Mode:       mode,
		Stdin:      stdinLines(cmd.InOrStdin()),
	}
	if debug {
		opts.Debug = cmd.ErrOrStderr()
	}

	res, err := pipeline.Run(cmd.Context(), opts)
	if err != nil {
		code := ExitFailure
		if errors.Is(err, verdict.ErrSchema) {
			code = ExitMalformed
		}
		return exitError(code, "Failed to execute command. Reason: %s", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), res.Text)
	if res.ExitCode != ExitOK {
		return exitError(res.ExitCode, "")
	}
	return nil
}

// stdinLines returns the piped input, or nil when r is an interactive
// terminal.
func stdinLines(r io.Reader) llm.LineSeq {
	if f, ok := r.(*os.File); ok && !input.Piped(f) {
		return nil
	}
	return input.Lines(r)
}

// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/llm"
)

const stubBackend = "cli-stub"

// newTestCmd redirects the root command's I/O to buffers. stdin is what the
// command sees as piped input.
func newTestCmd(stdin string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	return rootCmd, stdout, stderr
}

// resetFlags restores every flag to its default between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		})
	}
	for _, c := range []*cobra.Command{rootCmd, versionCmd, backendsCmd, mcpCmd, mcpServeCmd} {
		reset(c.Flags())
		reset(c.PersistentFlags())
	}
	for _, env := range envDefaults {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

// registerStub registers a backend whose provider answers with responses.
func registerStub(t *testing.T, responses ...llm.MockResponse) *llm.MockProvider {
	t.Helper()
	m := llm.NewMockProvider(stubBackend, responses...)
	llm.Register(stubBackend, func(config.Instance) (llm.Provider, error) { return m, nil })
	t.Cleanup(func() { llm.Unregister(stubBackend) })
	return m
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const stubConfig = `
backends:
  cli-stub:
    default:
      token: cli-stub-token
`

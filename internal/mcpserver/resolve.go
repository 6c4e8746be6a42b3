// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes clai's prompt operation as tools over stdio transport.
package mcpserver

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/smetj/clai/internal/config"
)

// ResolveConfigPath turns the config path given at startup into an absolute,
// symlink-resolved path to a regular file. A leading ~ is expanded. Tool calls
// run long after startup, so the path must not depend on the working
// directory.
func ResolveConfigPath(path string) (string, error) {
	if path == "" {
		return "", config.Errorf("no config file given (use --config or set %s)", config.EnvConfigPath)
	}

	expanded, err := config.ExpandHome(path)
	if err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q is not a regular file", path)
	}
	return absPath, nil
}

// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// New creates a new MCP server with clai's tools registered. configPath must
// already be resolved; every tool call reads it afresh.
func New(version, configPath string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "clai",
		Title:   "clai: prompt LLM backends from the command line",
		Version: version,
	}, nil)

	registerTools(server, newHandlers(configPath))
	return server
}

// Run resolves configPath, creates an MCP server and runs it on the given
// transport. It blocks until the client disconnects or the context is
// cancelled.
func Run(ctx context.Context, version, configPath string, transport mcp.Transport) error {
	resolved, err := ResolveConfigPath(configPath)
	if err != nil {
		return err
	}
	server := New(version, resolved)
	return server.Run(ctx, transport)
}

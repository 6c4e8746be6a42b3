// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

// Package redact strips credentials from strings before they appear on
// stderr, in logs or in MCP tool results.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variables commonly referenced from the
// config file as ${{NAME}}. Their values must never appear in output.
var sensitiveEnvVars = []string{
	"OPENAI_API_KEY",
	"AZURE_OPENAI_API_KEY",
	"MISTRAL_API_KEY",
	"ANTHROPIC_API_KEY",
}

// minSecretLen guards against redacting short values that would match
// ordinary text.
const minSecretLen = 4

var (
	mu        sync.Mutex
	envLoaded bool
	secrets   []string
)

func loadEnvLocked() {
	if envLoaded {
		return
	}
	envLoaded = true
	for _, envVar := range sensitiveEnvVars {
		addLocked(os.Getenv(envVar))
	}
}

func addLocked(secret string) {
	if len(secret) < minSecretLen {
		return
	}
	for _, s := range secrets {
		if s == secret {
			return
		}
	}
	secrets = append(secrets, secret)
}

// Add registers additional secret values, such as the resolved token of a
// config instance.
func Add(values ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, v := range values {
		addLocked(v)
	}
}

// ResetForTest forgets every registered secret so tests in other packages can
// verify redaction after setting env vars with t.Setenv.
func ResetForTest() {
	mu.Lock()
	defer mu.Unlock()
	envLoaded = false
	secrets = nil
}

// String replaces any occurrence of a known secret with "[REDACTED]".
// Environment values are read on first call.
func String(s string) string {
	mu.Lock()
	defer mu.Unlock()
	loadEnvLocked()
	for _, secret := range secrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}

// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

// Package backends implements the vendor adapters behind llm.Provider. Each
// adapter registers itself with the llm registry on import and decodes its
// own typed settings from a config instance.
package backends

import (
	"maps"
	"slices"
	"strings"

	"github.com/smetj/clai/internal/config"
	"github.com/smetj/clai/internal/prompts"
)

// requestIDHeader carries a per-request id so a failing call can be matched
// against the vendor's logs.
const requestIDHeader = "X-Client-Request-Id"

// Common holds the settings shared by every backend. Defaults are filled in
// before decoding so unset keys keep them.
type Common struct {
	Token       string  `yaml:"token"`
	Model       string  `yaml:"model"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	System      string  `yaml:"system"`
}

func defaultCommon() Common {
	return Common{System: prompts.DefaultSystem}
}

// check reports every missing setting of inst at once.
func (c Common) check(inst config.Instance, extra map[string]string) error {
	var problems []string
	if c.Token == "" {
		problems = append(problems, "token is required")
	}
	if c.Model == "" {
		problems = append(problems, "model is required")
	}
	if c.MaxTokens <= 0 {
		problems = append(problems, "max_tokens must be greater than 0")
	}
	for _, key := range slices.Sorted(maps.Keys(extra)) {
		if extra[key] == "" {
			problems = append(problems, key+" is required")
		}
	}
	if len(problems) > 0 {
		return config.Errorf("backend %q instance %q: %s", inst.Backend, inst.Name, strings.Join(problems, "; "))
	}
	return nil
}

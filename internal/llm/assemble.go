// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"fmt"
	"strings"

	"github.com/smetj/clai/internal/tokens"
)

// Assemble builds the ordered message list [system, user*, stdin?]. Every
// fragment is trimmed and counted against budget before it is appended. Stdin
// lines are joined without a separator into one final user message, omitted
// when no line was read. On any failure no messages are returned.
func Assemble(budget *tokens.Budget, system string, prompts []string, stdin LineSeq) ([]Message, error) {
	system = strings.TrimSpace(system)
	if err := budget.Add(system); err != nil {
		return nil, err
	}
	msgs := []Message{{Role: RoleSystem, Content: system}}

	for _, p := range prompts {
		p = strings.TrimSpace(p)
		if err := budget.Add(p); err != nil {
			return nil, err
		}
		msgs = append(msgs, Message{Role: RoleUser, Content: p})
	}

	if stdin == nil {
		return msgs, nil
	}

	var (
		joined strings.Builder
		read   bool
	)
	for line, err := range stdin {
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		line = strings.TrimSpace(line)
		if err := budget.Add(line); err != nil {
			return nil, err
		}
		joined.WriteString(line)
		read = true
	}
	if read {
		msgs = append(msgs, Message{Role: RoleUser, Content: joined.String()})
	}
	return msgs, nil
}

// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

// Package verdict defines the structured true/false answer returned in
// boolean mode, validates backend output against it, and maps it to an exit
// code.
package verdict

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Exit codes for boolean mode.
const (
	ExitTrue      = 0
	ExitFalse     = 1
	ExitMalformed = 3
)

// SchemaName is the name vendors see for the structured output format.
const SchemaName = "true_false"

// schemaJSON is the contract every boolean-mode answer must satisfy.
const schemaJSON = `{
  "type": "object",
  "properties": {
    "answer": {"type": "boolean"},
    "reason": {"type": "string"}
  },
  "required": ["answer", "reason"],
  "additionalProperties": false
}`

// Verdict is a validated boolean-mode answer.
type Verdict struct {
	Answer bool   `json:"answer"`
	Reason string `json:"reason"`
}

// ErrSchema is matched by every *SchemaError.
var ErrSchema = errors.New("structured output contract not honored")

// SchemaError reports that a backend response is not a valid Verdict.
type SchemaError struct {
	Detail string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid response format received, does the model support structured output? (%s)", e.Detail)
}

// Is makes errors.Is(err, ErrSchema) work.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// Schema returns a fresh copy of the JSON Schema as a generic map, ready to be
// embedded in vendor request parameters.
func Schema() map[string]any {
	var m map[string]any
	if err := json.Unmarshal([]byte(schemaJSON), &m); err != nil {
		panic(fmt.Sprintf("verdict: bad schema: %v", err))
	}
	return m
}

var (
	resolveOnce sync.Once
	resolved    *jsonschema.Resolved
)

func resolvedSchema() *jsonschema.Resolved {
	resolveOnce.Do(func() {
		var s jsonschema.Schema
		if err := json.Unmarshal([]byte(schemaJSON), &s); err != nil {
			panic(fmt.Sprintf("verdict: bad schema: %v", err))
		}
		r, err := s.Resolve(nil)
		if err != nil {
			panic(fmt.Sprintf("verdict: resolve schema: %v", err))
		}
		resolved = r
	})
	return resolved
}

// Validate parses text as JSON and checks it against the schema. Nothing is
// coerced: a string "true" is as invalid as a missing field.
func Validate(text string) (Verdict, error) {
	var instance any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &instance); err != nil {
		return Verdict{}, &SchemaError{Detail: fmt.Sprintf("not JSON: %v", err)}
	}

	if err := resolvedSchema().Validate(instance); err != nil {
		return Verdict{}, &SchemaError{Detail: err.Error()}
	}

	var v Verdict
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return Verdict{}, &SchemaError{Detail: err.Error()}
	}
	return v, nil
}

// ExitCode maps a verdict to the process exit status.
func ExitCode(v Verdict) int {
	if v.Answer {
		return ExitTrue
	}
	return ExitFalse
}

// JSON encodes v the way it is printed on stdout.
func (v Verdict) JSON() string {
	data, _ := json.Marshal(v)
	return string(data)
}

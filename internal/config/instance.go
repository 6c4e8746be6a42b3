// Copyright 2026 The Clai Authors
// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// envRef matches values of the exact form ${{NAME}}.
var envRef = regexp.MustCompile(`^\$\{\{(.*)\}\}$`)

// secretKeys are instance keys whose values must never reach output.
var secretKeys = map[string]bool{
	"token":   true,
	"api_key": true,
}

// Instance is one resolved backend profile. Values are read once per run and
// never mutated after resolution.
type Instance struct {
	Backend string
	Name    string
	values  map[string]any
}

// Instance resolves backends.<backend>.<name>, substituting environment
// variable references. Any missing piece is an *Error.
func (f *File) Instance(backend, name string) (Instance, error) {
	section, ok := f.Backends[backend]
	if !ok {
		return Instance{}, Errorf("there is no backend %q defined in the config", backend)
	}
	raw, ok := section[name]
	if !ok {
		return Instance{}, Errorf("backend %q has no instance configured named %q", backend, name)
	}

	values := make(map[string]any, len(raw))
	for key, value := range raw {
		s, isString := value.(string)
		if !isString {
			values[key] = value
			continue
		}
		m := envRef.FindStringSubmatch(s)
		if m == nil {
			values[key] = value
			continue
		}
		envName := strings.TrimSpace(m[1])
		envValue, set := os.LookupEnv(envName)
		if !set {
			return Instance{}, Errorf("backend %q instance %q refers to a non-existing environment variable named %q",
				backend, name, envName)
		}
		values[key] = envScalar(key, envValue)
	}

	return Instance{Backend: backend, Name: name, values: values}, nil
}

// envScalar types a substituted value the way YAML would have typed it had it
// been written in the file, so numeric settings decode into numeric fields.
// Secrets and anything that is not a number or boolean stay raw strings.
func envScalar(key, value string) any {
	if secretKeys[key] {
		return value
	}
	var v any
	if err := yaml.Unmarshal([]byte(value), &v); err != nil {
		return value
	}
	switch v.(type) {
	case int, int64, uint64, float64, bool:
		return v
	default:
		return value
	}
}

// Instances returns the sorted instance names configured for backend.
func (f *File) Instances(backend string) []string {
	names := make([]string, 0, len(f.Backends[backend]))
	for name := range f.Backends[backend] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewInstance builds an Instance from already-resolved values.
func NewInstance(backend, name string, values map[string]any) Instance {
	return Instance{Backend: backend, Name: name, values: values}
}

// Decode fills out, a pointer to a backend config struct with yaml tags, from
// the instance values. Fields already set on out act as defaults. Keys out
// does not declare are rejected.
func (i Instance) Decode(out any) error {
	if err := decodeStrict(i.values, out); err != nil {
		return Errorf("backend %q instance %q: %s", i.Backend, i.Name, cleanYAMLError(err))
	}
	return nil
}

// Secrets returns the credential values of the instance.
func (i Instance) Secrets() []string {
	var out []string
	for key, value := range i.values {
		if !secretKeys[key] {
			continue
		}
		if s, ok := value.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// String identifies the instance without exposing its values.
func (i Instance) String() string {
	return fmt.Sprintf("%s/%s", i.Backend, i.Name)
}

func cleanYAMLError(err error) string {
	return strings.TrimPrefix(err.Error(), "yaml: ")
}

// Package config handles clai's backend configuration file.
//
// The file maps backends.<backend>.<instance>.<key> to a value. An instance is
// a named credential/model profile; its keys are decoded into the backend's
// own typed config struct.
package config

import (
	"errors"
	"fmt"
)

// EnvConfigPath is the environment variable consulted when --config is not given.
const EnvConfigPath = "CLAI_CONFIG"

// File represents the contents of a clai config file.
type File struct {
	Backends map[string]map[string]map[string]any `yaml:"backends" toml:"backends"`
}

// ErrConfig is matched by every *Error.
var ErrConfig = errors.New("configuration error")

// Error reports a missing backend, instance, environment variable or an
// invalid instance value.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

// Is makes errors.Is(err, ErrConfig) work.
func (e *Error) Is(target error) bool { return target == ErrConfig }

// Errorf builds an *Error.
func Errorf(format string, args ...any) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}

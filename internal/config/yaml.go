package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads the config file at path. Files ending in .toml are decoded as
// TOML, everything else as YAML. A leading ~ expands to the home directory.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, Errorf("no config file given (use --config or set %s)", EnvConfigPath)
	}

	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded) //nolint:gosec // user-provided config path
	if err != nil {
		return nil, Errorf("reading config %s: %v", path, err)
	}

	var f File
	if strings.EqualFold(filepath.Ext(expanded), ".toml") {
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, Errorf("parsing config %s: %v", path, err)
		}
	} else {
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, Errorf("parsing config %s: %v", path, err)
		}
	}

	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ExpandHome replaces a leading ~ in path with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", Errorf("expanding %s: %v", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// decodeStrict re-encodes values as YAML and decodes them into out, rejecting
// keys out does not declare.
func decodeStrict(values map[string]any, out any) error {
	data, err := yaml.Marshal(values)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

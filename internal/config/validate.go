package config

import (
	"sort"
	"strings"
)

// Validate checks the overall shape of the file and returns all problems at
// once. Instance keys are checked later, when a backend decodes them.
func Validate(f *File) error {
	if len(f.Backends) == 0 {
		return Errorf("config validation failed:\n  backends: no backends defined")
	}

	var errs []string
	backends := make([]string, 0, len(f.Backends))
	for name := range f.Backends {
		backends = append(backends, name)
	}
	sort.Strings(backends)

	for _, backend := range backends {
		instances := f.Backends[backend]
		if len(instances) == 0 {
			errs = append(errs, "backends."+backend+": no instances defined")
			continue
		}
		for _, name := range f.Instances(backend) {
			if instances[name] == nil {
				errs = append(errs, "backends."+backend+"."+name+": instance has no settings")
			}
		}
	}

	if len(errs) > 0 {
		return Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

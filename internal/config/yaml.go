// Package config loads flag defaults for the CLI from YAML files.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are checked in order, the first match for a flag wins.
var DefaultPaths = []string{"./reactboot.yaml", "~/.reactboot.yaml"}

// YAML is a kong.ConfigurationLoader. Keys match flag names with dashes or
// underscores, and may be nested under the command name:
//
//	port: 8080
//	init:
//	  skip_install: true
func YAML(r io.Reader) (kong.Resolver, error) {
	values := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&values); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	var f kong.ResolverFunc = func(context *kong.Context, parent *kong.Path, flag *kong.Flag) (any, error) {
		keys := []string{flag.Name, strings.ReplaceAll(flag.Name, "-", "_")}

		if parent != nil && parent.Command != nil {
			section, ok := values[parent.Command.Name].(map[string]any)
			if ok {
				if v, ok := lookup(section, keys); ok {
					return toFlagValue(v), nil
				}
			}
		}

		if v, ok := lookup(values, keys); ok {
			return toFlagValue(v), nil
		}

		return nil, nil
	}

	return f, nil
}

func lookup(values map[string]any, keys []string) (any, bool) {
	for _, key := range keys {
		if v, ok := values[key]; ok {
			if _, isSection := v.(map[string]any); isSection {
				continue
			}
			return v, true
		}
	}
	return nil, false
}

// toFlagValue renders scalars as strings so kong's mappers parse them the
// same way as command line values. Lists become comma separated.
func toFlagValue(v any) any {
	switch t := v.(type) {
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, fmt.Sprint(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(t)
	}
}

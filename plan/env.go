package plan

import (
	"fmt"
	"os"
	"strings"

	"github.com/signadot/splice/debug"

	"github.com/goccy/go-yaml"
)

const (
	EnvEnv = "SPLICE_ENV"
)

// LoadEnv decodes the object in $SPLICE_ENV, if any.
func LoadEnv() (map[string]any, error) {
	envEnv := os.Getenv(EnvEnv)
	if envEnv == "" {
		return nil, nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(envEnv), &v); err != nil {
		return nil, fmt.Errorf("error decoding env $%s: %w", EnvEnv, err)
	}
	theEnvEnv, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("error decoding env $%s: wrong type %T", EnvEnv, v)
	}
	if debug.Plan() {
		debug.Logf("\nloaded env from env: %s\n", theEnvEnv)
	}
	return theEnvEnv, nil
}

// SetEnv sets a value from an argument of the form path=value, where path
// is dot separated and value is a YAML scalar or flow collection. An
// empty value is the empty string.
func SetEnv(env map[string]any, arg string) error {
	path, val, ok := strings.Cut(arg, "=")
	if !ok || path == "" {
		return fmt.Errorf("expected path=value, got %q", arg)
	}
	var v any = val
	if val != "" {
		if err := yaml.Unmarshal([]byte(val), &v); err != nil {
			v = val
		}
	}
	keys := strings.Split(path, ".")
	m := env
	for _, k := range keys[:len(keys)-1] {
		sub, ok := m[k].(map[string]any)
		if !ok {
			sub = map[string]any{}
			m[k] = sub
		}
		m = sub
	}
	m[keys[len(keys)-1]] = v
	return nil
}

// MergeEnv merges src into dst, recursing into nested objects. Values from
// src take precedence.
func MergeEnv(dst, src map[string]any) {
	for k, v := range src {
		sv, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		dv, ok := dst[k].(map[string]any)
		if !ok {
			dv = map[string]any{}
			dst[k] = dv
		}
		MergeEnv(dv, sv)
	}
}

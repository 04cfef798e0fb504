package plan

import (
	"fmt"
	"os"

	"github.com/signadot/splice/debug"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

func condEnv(env map[string]any, doc, path string) map[string]any {
	return map[string]any{
		"env":  env,
		"doc":  doc,
		"path": path,
	}
}

func condOpts() []expr.Option {
	return []expr.Option{
		expr.Env(condEnv(map[string]any{}, "", "")),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}

func compileCond(src string) (*vm.Program, error) {
	return expr.Compile(src, condOpts()...)
}

// Enabled evaluates the edit's if condition against the plan environment
// and the current document. An edit without a condition is always enabled,
// and a condition evaluating to nil is false.
func (s *EditSpec) Enabled(env map[string]any, doc, path string) (bool, error) {
	if s.cond == nil {
		return true, nil
	}
	out, err := expr.Run(s.cond, condEnv(env, doc, path))
	if err != nil {
		return false, fmt.Errorf("error evaluating if %q: %w", s.If, err)
	}
	if debug.Plan() {
		debug.Logf("if %q on %s: %v\n", s.If, path, out)
	}
	switch x := out.(type) {
	case nil:
		return false, nil
	case bool:
		return x, nil
	}
	return false, fmt.Errorf("if %q: expected bool, got %T", s.If, out)
}

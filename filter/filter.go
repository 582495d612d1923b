package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/tunarr-sync/plex"
)

// Filter is a compiled per-channel item filter expression.
type Filter struct {
	program *vm.Program
	expr    string
}

// helpers are the static functions available inside filter expressions.
// contains/startsWith/endsWith are expr operators and cannot be shadowed by
// env functions, so the case-insensitive variants get their own names.
var helpers = map[string]interface{}{
	"icontains": func(str, substr string) bool {
		return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
	},
	"hasPrefix": func(str, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
	},
	"hasSuffix": func(str, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
	},
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
}

// Compile compiles a filter expression. Expressions see the item fields
// Title, Year, Type and DurationMinutes plus the string helpers
// (icontains, hasPrefix, hasSuffix, lower, upper) and the expr builtins.
func Compile(expression string) (*Filter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, fmt.Errorf("empty filter expression")
	}

	env := make(map[string]interface{}, len(helpers)+4)
	for name, fn := range helpers {
		env[name] = fn
	}
	env["Title"] = ""
	env["Year"] = 0
	env["Type"] = ""
	env["DurationMinutes"] = 0

	program, err := expr.Compile(expression,
		expr.Env(env),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compile filter expression: %w", err)
	}

	return &Filter{
		program: program,
		expr:    expression,
	}, nil
}

// Match evaluates the filter against a single source item.
func (f *Filter) Match(item plex.Item) (bool, error) {
	env := make(map[string]interface{}, len(helpers)+4)
	for name, fn := range helpers {
		env[name] = fn
	}
	env["Title"] = item.Title
	env["Year"] = item.Year
	env["Type"] = item.Type
	env["DurationMinutes"] = int(item.Duration / 60000)

	result, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("failed to evaluate filter: %w", err)
	}

	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("filter expression did not return a boolean: %q", f.expr)
	}
	return matched, nil
}

// String returns the original expression.
func (f *Filter) String() string {
	return f.expr
}

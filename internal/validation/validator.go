package validation

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/fernwald/rtcgate/internal/core"
)

// ValidateRules checks channel access rules for completeness and compiles
// their expressions. The returned slice carries the compiled programs.
func ValidateRules(rules []core.Rule) ([]core.Rule, error) {
	seenNames := make(map[string]struct{})
	var validRules []core.Rule

	for i, rule := range rules {
		if rule.Name == "" {
			return nil, fmt.Errorf("rule #%d missing name", i)
		}
		if _, exists := seenNames[rule.Name]; exists {
			return nil, fmt.Errorf("rule name '%s' is not unique", rule.Name)
		}
		seenNames[rule.Name] = struct{}{}

		if rule.Expr == "" {
			return nil, fmt.Errorf("rule '%s' missing expr", rule.Name)
		}

		out, err := expr.Compile(rule.Expr, expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compiling expr for rule '%s': %w", rule.Name, err)
		}
		rule.CompiledExpr = out

		validRules = append(validRules, rule)
	}

	return validRules, nil
}

package policy

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/rs/zerolog/log"

	"github.com/fernwald/rtcgate/internal/core"
)

var ErrNoRuleMatch = fmt.Errorf("no matching rule found for this principal and channel")

// Engine holds the loaded channel access rules and evaluates them.
type Engine struct {
	rules []core.Rule
}

// New creates a new Engine with the given rules. Rules must already be
// validated and compiled (see validation.ValidateRules).
func New(rules []core.Rule) *Engine {
	return &Engine{
		rules: rules,
	}
}

// Evaluate returns the first rule allowing the request, or ErrNoRuleMatch.
// With no rules configured every authenticated request is allowed and the
// returned rule is nil.
func (e *Engine) Evaluate(principal *core.Principal, req core.ChannelRequest) (*core.Rule, error) {
	if len(e.rules) == 0 {
		return nil, nil
	}
	for _, rule := range e.rules {
		if matches(rule, principal, req) {
			r := rule
			return &r, nil
		}
	}
	return nil, ErrNoRuleMatch
}

func matches(rule core.Rule, principal *core.Principal, req core.ChannelRequest) bool {
	if rule.CompiledExpr == nil {
		return false
	}
	out, err := expr.Run(rule.CompiledExpr, map[string]any{
		"principal": principal,
		"channel":   req.Channel,
		"uid":       req.UID,
		"role":      string(req.Role),
	})
	if err != nil {
		log.Warn().Err(err).Msgf("error evaluating rule expression for rule '%s'", rule.Name)
		return false
	}
	b, ok := out.(bool)
	return ok && b
}

package core

import "github.com/expr-lang/expr/vm"

// Rule restricts which principals may obtain credentials for which
// channels. Rules are optional: a deployment without rules grants every
// authenticated caller access to every channel.
type Rule struct {
	// Name is a human-readable identifier for logs/debugging.
	Name string `yaml:"name" json:"name"`

	// Description explains the intent of the rule.
	Description string `yaml:"description" json:"description"`

	// Expr is a boolean expression evaluated against the request.
	// Available variables: principal, channel, uid, role.
	// Example: `principal.Attributes["role"] == "authenticated" && channel startsWith "support-"`
	Expr string `yaml:"expr" json:"expr"`

	// CompiledExpr holds the pre-compiled form of Expr for efficient evaluation.
	CompiledExpr *vm.Program `yaml:"-" json:"-"`
}

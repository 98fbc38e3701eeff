package recommendation

import "github.com/bobmcallan/folio/internal/models"

// Engine evaluates rules in declaration order.
type Engine struct {
	rules []Rule
}

// NewEngine creates an engine over rules.
func NewEngine(rules []Rule) *Engine {
	return &Engine{rules: rules}
}

// Rules returns the rule list in evaluation order.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Evaluate appends one recommendation per firing rule. Output order is rule
// order; priorities are never re-sorted.
func (e *Engine) Evaluate(c Context) []models.Recommendation {
	out := make([]models.Recommendation, 0, len(e.rules))
	for _, r := range e.rules {
		if r.When == nil || !r.When(c) {
			continue
		}
		out = append(out, r.Build(c))
	}
	return out
}

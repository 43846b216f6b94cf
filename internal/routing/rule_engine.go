package routing

import (
	"strconv"
	"strings"
)

// BasicRuleEngine implements the RuleEngine interface. It is stateless and
// safe for concurrent use.
type BasicRuleEngine struct{}

func NewBasicRuleEngine() *BasicRuleEngine {
	return &BasicRuleEngine{}
}

// EvaluateCriterion evaluates a single criterion against the call context.
// Unknown criterion types never match.
func (e *BasicRuleEngine) EvaluateCriterion(criterion *Criterion, ctx *CallContext) bool {
	switch criterion.Type {
	case CriterionDayOfWeek:
		// Set membership; duplicate entries in Days are harmless.
		for _, day := range criterion.Days {
			if day == ctx.DayOfWeek {
				return true
			}
		}
		return false

	case CriterionTimeOfDay:
		t := clockOrdinal(ctx.TimeOfDay)
		from := clockOrdinal(criterion.Window.From)
		to := clockOrdinal(criterion.Window.To)

		if from > to {
			// Overnight window, e.g. 17:00 to 09:00.
			return t >= from || t < to
		}
		return t >= from && t < to

	case CriterionCallerID:
		// An empty pattern fails closed: the rule author must supply one.
		if criterion.Pattern == "" {
			return false
		}
		return strings.HasPrefix(ctx.CallerID, criterion.Pattern)

	default:
		return false
	}
}

// EvaluateRule reports whether all criteria of the rule match the call.
// A rule with no criteria is a catch-all and matches every call.
func (e *BasicRuleEngine) EvaluateRule(rule *RoutingRule, ctx *CallContext) bool {
	for i := range rule.Criteria {
		if !e.EvaluateCriterion(&rule.Criteria[i], ctx) {
			return false
		}
	}
	return true
}

// FindMatch iterates the rules in list order (the repository keeps list order
// equal to ascending priority) and returns the first rule whose criteria all
// match, or nil when none do. First match wins: later rules are never
// consulted once an earlier rule matches, even when that rule is a Block.
func (e *BasicRuleEngine) FindMatch(rules []*RoutingRule, ctx *CallContext) *RoutingRule {
	for _, rule := range rules {
		if e.EvaluateRule(rule, ctx) {
			return rule
		}
	}
	return nil
}

// clockOrdinal converts a 24-hour "HH:MM" clock value to its HHMM ordinal
// ("09:30" -> 930). Window comparisons happen on this ordinal, not on
// minutes-of-day arithmetic; both sides of every comparison use the same
// encoding so the ordering is preserved.
func clockOrdinal(clock string) int {
	n, _ := strconv.Atoi(strings.Replace(clock, ":", "", 1))
	return n
}

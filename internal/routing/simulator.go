package routing

import "fmt"

// Simulator dry-runs the routing pipeline for a test call: rule matching,
// then weighted target selection within the matched group. It only reads the
// lists it is given and never mutates them.
type Simulator struct {
	engine   RuleEngine
	selector TargetSelector
}

func NewSimulator(engine RuleEngine, selector TargetSelector) *Simulator {
	return &Simulator{
		engine:   engine,
		selector: selector,
	}
}

// Simulate evaluates the call context against the rule list and assembles a
// SimulationResult. Every branch has a defined output; Simulate never fails.
func (s *Simulator) Simulate(ctx *CallContext, rules []*RoutingRule, groups []*TargetGroup, targets []Target) *SimulationResult {
	matched := s.engine.FindMatch(rules, ctx)
	if matched == nil {
		return &SimulationResult{
			Message: "No matching rule found for these criteria. The call would be rejected.",
		}
	}

	if matched.Action == ActionBlock {
		return &SimulationResult{
			MatchedRule: matched,
			Message:     fmt.Sprintf("Call matched Rule #%d. The call would be blocked.", matched.Priority),
		}
	}

	groupsByID := make(map[string]*TargetGroup, len(groups))
	for _, group := range groups {
		groupsByID[group.ID] = group
	}
	targetsByID := make(map[string]*Target, len(targets))
	for i := range targets {
		targetsByID[targets[i].ID] = &targets[i]
	}

	result := &SimulationResult{
		MatchedRule: matched,
		Message:     fmt.Sprintf("Call matched Rule #%d.", matched.Priority),
	}

	group, ok := groupsByID[matched.ActionValue]
	if !ok {
		// Stale group reference; report the partial result.
		return result
	}

	result.RoutedGroup = group
	result.RoutedTarget = s.selector.SelectTarget(group, targetsByID)

	if result.RoutedTarget != nil {
		result.Message = fmt.Sprintf("Call matched Rule #%d. Routed to group %q, target %q.",
			matched.Priority, group.Name, result.RoutedTarget.Name)
	} else {
		result.Message = fmt.Sprintf("Call matched Rule #%d. Routed to group %q.",
			matched.Priority, group.Name)
	}

	return result
}

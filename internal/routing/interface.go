// Package routing provides the call-routing engine for the AuraCall service:
// an ordered, priority-based rule list that decides whether an incoming call
// is blocked or routed to a weighted target group, plus the repository that
// owns the rule and group lists.
//
// The routing system consists of several key components:
//
// 1. RuleEngine: evaluates rule criteria against a call context
// 2. WeightedSelector: picks a target within a group by weighted random draw
// 3. Repository: owns the ordered rule list and the group list
// 4. Simulator: dry-runs the full pipeline for a test call
//
// Example usage:
//
//	repo := routing.NewRepository()
//	engine := routing.NewBasicRuleEngine()
//	selector := routing.NewWeightedSelector(nil)
//	sim := routing.NewSimulator(engine, selector)
//
//	rules, _ := repo.SaveRule(&routing.RoutingRule{
//		Priority: 1,
//		Criteria: []routing.Criterion{
//			{Type: routing.CriterionCallerID, Pattern: "(555)"},
//		},
//		Action: routing.ActionBlock,
//	})
//
//	result := sim.Simulate(&routing.CallContext{
//		TimeOfDay: "09:30",
//		DayOfWeek: "Monday",
//		CallerID:  "(555) 123-4567",
//	}, rules, repo.Groups(), targets)
package routing

// CallContext describes a single incoming (or simulated) call as seen by the
// rule engine. All fields are plain strings supplied by the caller layer;
// TimeOfDay is a 24-hour "HH:MM" clock value and DayOfWeek a full English
// weekday name ("Monday" .. "Sunday").
type CallContext struct {
	TimeOfDay string `json:"time_of_day"` // 24-hour clock, e.g. "09:30"
	DayOfWeek string `json:"day_of_week"` // full weekday name, e.g. "Monday"
	CallerID  string `json:"caller_id"`   // caller phone number as dialed
}

// CriterionType identifies which payload field of a Criterion is meaningful.
type CriterionType string

const (
	// CriterionDayOfWeek matches when the call's weekday is in the Days set
	CriterionDayOfWeek CriterionType = "DayOfWeek"

	// CriterionTimeOfDay matches when the call's clock time falls inside Window
	CriterionTimeOfDay CriterionType = "TimeOfDay"

	// CriterionCallerID matches when the caller ID starts with Pattern
	CriterionCallerID CriterionType = "CallerID"
)

// TimeWindow is a half-open [From, To) clock-time window. From may be later
// than To, in which case the window wraps past midnight (e.g. 17:00 to 09:00).
type TimeWindow struct {
	From string `json:"from"` // inclusive, "HH:MM"
	To   string `json:"to"`   // exclusive, "HH:MM"
}

// Criterion is a single testable condition attached to a routing rule.
//
// It is a tagged variant: Type selects which one of Days, Window, or Pattern
// carries the criterion's payload; the other fields are ignored. Multiple
// criteria on a rule combine with AND logic.
type Criterion struct {
	Type    CriterionType `json:"type"`
	Days    []string      `json:"days,omitempty"`    // CriterionDayOfWeek
	Window  TimeWindow    `json:"window"`            // CriterionTimeOfDay
	Pattern string        `json:"pattern,omitempty"` // CriterionCallerID
}

// RuleAction is what a matched rule does with the call.
type RuleAction string

const (
	// ActionRouteTo routes the call to the target group named by ActionValue
	ActionRouteTo RuleAction = "RouteTo"

	// ActionBlock rejects the call outright
	ActionBlock RuleAction = "Block"
)

// RoutingRule is an ordered, criteria-gated routing decision.
//
// Priority is a dense 1..N rank maintained by the Repository: 1 is evaluated
// first and the set never contains gaps or duplicates. A rule with no
// criteria matches every call.
type RoutingRule struct {
	ID          string      `json:"id"`
	Priority    int         `json:"priority"`
	Criteria    []Criterion `json:"criteria"`
	Action      RuleAction  `json:"action"`
	ActionValue string      `json:"action_value"` // target group id when Action is ActionRouteTo
}

// WeightedTarget is one member of a target group with its share of traffic,
// expressed as an integer percentage.
type WeightedTarget struct {
	TargetID string `json:"target_id"`
	Weight   int    `json:"weight"`
}

// TargetGroup is a weighted set of destination targets a rule can route to.
// The Repository enforces that member weights sum to exactly 100 at save time.
type TargetGroup struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Targets []WeightedTarget `json:"targets"`
}

// TargetStatus marks whether a target is accepting calls.
type TargetStatus string

const (
	TargetActive   TargetStatus = "Active"
	TargetInactive TargetStatus = "Inactive"
)

// Target is a single call destination. It is pure reference data for the
// routing engine: supplied read-only by the target management layer and never
// mutated here.
type Target struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Buyer       string       `json:"buyer"`
	Destination string       `json:"destination"` // destination phone number
	Status      TargetStatus `json:"status"`
}

// SimulationResult is the outcome of dry-running the rule set against a
// synthetic call. It is transient and never persisted.
//
// MatchedRule is nil when no rule matched (the call is rejected). RoutedGroup
// and RoutedTarget are nil for Block actions, for stale group references, and
// when a malformed group's weights fail to cover the random draw.
type SimulationResult struct {
	MatchedRule  *RoutingRule `json:"matched_rule"`
	RoutedGroup  *TargetGroup `json:"routed_group"`
	RoutedTarget *Target      `json:"routed_target"`
	Message      string       `json:"message"`
}

// RuleEngine evaluates routing criteria and rules against a call context.
//
// Implementations must be pure and total: evaluation never fails and never
// mutates the rule set or the context.
type RuleEngine interface {
	// EvaluateCriterion reports whether a single criterion matches the call
	EvaluateCriterion(criterion *Criterion, ctx *CallContext) bool

	// EvaluateRule reports whether every criterion of the rule matches the
	// call (vacuously true for an empty criteria list)
	EvaluateRule(rule *RoutingRule, ctx *CallContext) bool

	// FindMatch returns the first rule in list order whose criteria all
	// match, or nil when no rule matches
	FindMatch(rules []*RoutingRule, ctx *CallContext) *RoutingRule
}

// TargetSelector picks a concrete target out of a matched rule's group.
type TargetSelector interface {
	// SelectTarget performs one weighted random selection over the group's
	// members and resolves the winner against the target reference table.
	// Returns nil when the group's weights do not cover the draw.
	SelectTarget(group *TargetGroup, targetsByID map[string]*Target) *Target
}

// RandSource yields uniform random values in [0, 1). It exists so tests can
// substitute deterministic sequences for the weighted selector.
type RandSource interface {
	Float64() float64
}

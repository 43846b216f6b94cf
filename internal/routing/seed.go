package routing

// Default rule and group sets used to seed a fresh repository so a new
// install has a working routing configuration to explore.

func DefaultGroups() []*TargetGroup {
	return []*TargetGroup{
		{ID: "tg1", Name: "Weekday Sales", Targets: []WeightedTarget{
			{TargetID: "t1", Weight: 60},
			{TargetID: "t2", Weight: 40},
		}},
		{ID: "tg2", Name: "After-Hours", Targets: []WeightedTarget{
			{TargetID: "t3", Weight: 100},
		}},
		{ID: "tg3", Name: "West Coast Only", Targets: []WeightedTarget{
			{TargetID: "t2", Weight: 100},
		}},
	}
}

func DefaultRules() []*RoutingRule {
	return []*RoutingRule{
		{
			ID:       "r1",
			Priority: 1,
			Criteria: []Criterion{
				{Type: CriterionDayOfWeek, Days: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}},
				{Type: CriterionTimeOfDay, Window: TimeWindow{From: "09:00", To: "17:00"}},
			},
			Action:      ActionRouteTo,
			ActionValue: "tg1",
		},
		{
			ID:       "r2",
			Priority: 2,
			Criteria: []Criterion{
				{Type: CriterionCallerID, Pattern: "(555) 867-5309"},
			},
			Action: ActionBlock,
		},
		{
			ID:          "r3",
			Priority:    3,
			Criteria:    []Criterion{},
			Action:      ActionRouteTo,
			ActionValue: "tg2",
		},
	}
}

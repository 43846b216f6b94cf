package routing

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Repository exclusively owns the ordered routing rule list and the target
// group list. All mutation goes through its CRUD/reorder operations, which
// are serialized by a single mutex; readers always see a fully-renumbered
// list because every mutation builds a new slice and swaps it in.
type Repository struct {
	mu     sync.RWMutex
	rules  []*RoutingRule
	groups []*TargetGroup
}

func NewRepository() *Repository {
	return &Repository{}
}

// Load replaces both lists wholesale, renumbering the rules to match list
// order. Used to seed the repository at startup.
func (r *Repository) Load(rules []*RoutingRule, groups []*TargetGroup) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = renumber(rules)
	r.groups = append([]*TargetGroup(nil), groups...)
}

// Rules returns a snapshot of the rule list in evaluation order.
func (r *Repository) Rules() []*RoutingRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*RoutingRule(nil), r.rules...)
}

// Groups returns a snapshot of the group list.
func (r *Repository) Groups() []*TargetGroup {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*TargetGroup(nil), r.groups...)
}

// GetRule returns the rule with the given id.
func (r *Repository) GetRule(id string) (*RoutingRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rule := range r.rules {
		if rule.ID == id {
			return rule, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrRuleNotFound, id)
}

// GetGroup returns the group with the given id.
func (r *Repository) GetGroup(id string) (*TargetGroup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, group := range r.groups {
		if group.ID == id {
			return group, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
}

// SaveRule inserts or updates a rule and returns the updated list.
//
// A draft without an id is assigned a fresh one and inserted; a draft with an
// id replaces the existing entry. The requested priority is clamped into
// [1, count+1] and the rule is spliced in at that position, so requesting
// priority K inserts before the rule currently holding position K. Every
// rule's priority is then renumbered to its 1-based list position.
func (r *Repository) SaveRule(draft *RoutingRule) ([]*RoutingRule, error) {
	if err := validateRule(draft); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	working := make([]*RoutingRule, 0, len(r.rules)+1)
	for _, rule := range r.rules {
		if draft.ID != "" && rule.ID == draft.ID {
			continue
		}
		working = append(working, rule)
	}

	rule := *draft
	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	position := clamp(1, len(working)+1, rule.Priority)
	working = append(working, nil)
	copy(working[position:], working[position-1:])
	working[position-1] = &rule

	r.rules = renumber(working)
	return append([]*RoutingRule(nil), r.rules...), nil
}

// DeleteRule removes the rule with the given id, renumbers the remaining
// rules, and returns the updated list. Deleting an unknown id is a no-op.
func (r *Repository) DeleteRule(id string) []*RoutingRule {
	r.mu.Lock()
	defer r.mu.Unlock()

	working := make([]*RoutingRule, 0, len(r.rules))
	for _, rule := range r.rules {
		if rule.ID == id {
			continue
		}
		working = append(working, rule)
	}

	r.rules = renumber(working)
	return append([]*RoutingRule(nil), r.rules...)
}

// ReorderRule moves the dragged rule to the drop target's old list position
// (a list splice, matching drag-and-drop semantics) and renumbers. It is a
// no-op when the two ids are equal or either id is unknown.
func (r *Repository) ReorderRule(draggedID, dropID string) []*RoutingRule {
	r.mu.Lock()
	defer r.mu.Unlock()

	if draggedID != dropID {
		draggedIdx, dropIdx := -1, -1
		for i, rule := range r.rules {
			switch rule.ID {
			case draggedID:
				draggedIdx = i
			case dropID:
				dropIdx = i
			}
		}

		if draggedIdx >= 0 && dropIdx >= 0 {
			working := append([]*RoutingRule(nil), r.rules...)
			dragged := working[draggedIdx]
			working = append(working[:draggedIdx], working[draggedIdx+1:]...)

			working = append(working, nil)
			copy(working[dropIdx+1:], working[dropIdx:])
			working[dropIdx] = dragged

			r.rules = renumber(working)
		}
	}

	return append([]*RoutingRule(nil), r.rules...)
}

// SaveGroup inserts or updates a target group and returns the updated list.
// The save is rejected, leaving both lists untouched, unless the member
// weights sum to exactly 100.
func (r *Repository) SaveGroup(draft *TargetGroup) ([]*TargetGroup, error) {
	sum := 0
	for _, member := range draft.Targets {
		sum += member.Weight
	}
	if sum != 100 {
		return nil, fmt.Errorf("%w: got %d", ErrWeightSumInvalid, sum)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	group := *draft
	working := append([]*TargetGroup(nil), r.groups...)

	if group.ID == "" {
		group.ID = uuid.NewString()
		working = append(working, &group)
	} else {
		replaced := false
		for i, existing := range working {
			if existing.ID == group.ID {
				working[i] = &group
				replaced = true
				break
			}
		}
		if !replaced {
			working = append(working, &group)
		}
	}

	r.groups = working
	return append([]*TargetGroup(nil), r.groups...), nil
}

// DeleteGroup removes the group with the given id. The delete is refused,
// leaving both lists untouched, while any rule's action value still
// references the group.
func (r *Repository) DeleteGroup(id string) ([]*TargetGroup, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rule := range r.rules {
		if rule.ActionValue == id {
			return nil, fmt.Errorf("%w: rule #%d", ErrGroupReferenced, rule.Priority)
		}
	}

	working := make([]*TargetGroup, 0, len(r.groups))
	for _, group := range r.groups {
		if group.ID == id {
			continue
		}
		working = append(working, group)
	}

	r.groups = working
	return append([]*TargetGroup(nil), r.groups...), nil
}

func validateRule(draft *RoutingRule) error {
	switch draft.Action {
	case ActionRouteTo:
		if draft.ActionValue == "" {
			return fmt.Errorf("%w: RouteTo requires a target group", ErrInvalidRule)
		}
	case ActionBlock:
		// Block carries no action value.
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidRule, draft.Action)
	}
	return nil
}

// renumber builds a fresh rule list whose priorities are exactly the 1-based
// list positions. It copies each rule so lists handed out before the swap
// are never mutated.
func renumber(rules []*RoutingRule) []*RoutingRule {
	out := make([]*RoutingRule, len(rules))
	for i, rule := range rules {
		copied := *rule
		copied.Priority = i + 1
		out[i] = &copied
	}
	return out
}

func clamp(low, high, v int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

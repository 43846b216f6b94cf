package routing

import "errors"

var (
	// ErrWeightSumInvalid is returned when a group's target weights do not sum to 100
	ErrWeightSumInvalid = errors.New("target weights must sum to 100")

	// ErrGroupReferenced is returned when deleting a group still used by a routing rule
	ErrGroupReferenced = errors.New("target group is referenced by a routing rule")

	// ErrGroupNotFound is returned when a target group id does not resolve
	ErrGroupNotFound = errors.New("target group not found")

	// ErrRuleNotFound is returned when a routing rule id does not resolve
	ErrRuleNotFound = errors.New("routing rule not found")

	// ErrInvalidRule is returned when a rule draft fails validation
	ErrInvalidRule = errors.New("invalid routing rule")
)

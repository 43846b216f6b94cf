package routing

import (
	"math/rand"
	"time"
)

// WeightedSelector implements TargetSelector using a single uniform draw over
// [0, 100) and a cumulative-sum walk of the group's members in list order.
type WeightedSelector struct {
	rng RandSource
}

// NewWeightedSelector creates a selector backed by the given random source.
// Passing nil wires a time-seeded PRNG, which is the production default;
// tests inject deterministic sources instead.
func NewWeightedSelector(rng RandSource) *WeightedSelector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &WeightedSelector{rng: rng}
}

// SelectTarget picks one member of the group by weighted random selection and
// resolves it against the target reference table.
//
// The draw r is uniform in [0, 100); the first member whose cumulative weight
// exceeds r wins. When the group's weights sum below 100 the draw can fall
// past every member, and when the winning member references an unknown target
// the lookup misses; both cases return nil rather than failing. Saved groups
// are validated to sum to exactly 100, so a nil here means the group was
// produced before validation existed or edited out of band.
func (s *WeightedSelector) SelectTarget(group *TargetGroup, targetsByID map[string]*Target) *Target {
	if group == nil || len(group.Targets) == 0 {
		return nil
	}

	r := s.rng.Float64() * 100
	sum := 0
	for _, member := range group.Targets {
		sum += member.Weight
		if r < float64(sum) {
			return targetsByID[member.TargetID]
		}
	}

	return nil
}

package tariff

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// SelectEffective picks the plan in effect at `at` for a facility. Plans
// scoped to the facility win over global ones; within a scope the latest
// effective date wins and ties go to the highest id.
func SelectEffective(candidates []*Plan, facilityID *uuid.UUID, at time.Time) (*Plan, error) {
	if facilityID != nil {
		if p := latest(candidates, at, func(p *Plan) bool {
			return p.facilityID != nil && *p.facilityID == *facilityID
		}); p != nil {
			return p, nil
		}
	}
	if p := latest(candidates, at, (*Plan).IsGlobal); p != nil {
		return p, nil
	}
	return nil, ErrPlanNotFound
}

func latest(candidates []*Plan, at time.Time, inScope func(*Plan) bool) *Plan {
	var best *Plan
	for _, p := range candidates {
		if !inScope(p) || !p.IsEffectiveAt(at) {
			continue
		}
		if best == nil || newer(p, best) {
			best = p
		}
	}
	return best
}

func newer(a, b *Plan) bool {
	if !a.effectiveFrom.Equal(b.effectiveFrom) {
		return a.effectiveFrom.After(b.effectiveFrom)
	}
	return bytes.Compare(a.id[:], b.id[:]) > 0
}

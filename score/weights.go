package score

import (
	"fmt"
	"math"

	"github.com/foundrly/matchcore/core"
)

// Weights distributes the six sub-scores into the composite. Each table
// must sum to 1.0 so the composite stays in [0,100].
type Weights struct {
	Skills       float64
	Goals        float64
	Location     float64
	Network      float64
	Availability float64
	Experience   float64
}

// Validate checks that the weights are non-negative and sum to 1.0 within
// floating point tolerance.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"skills":       w.Skills,
		"goals":        w.Goals,
		"location":     w.Location,
		"network":      w.Network,
		"availability": w.Availability,
		"experience":   w.Experience,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalidWeights, name)
		}
	}
	sum := w.Skills + w.Goals + w.Location + w.Network + w.Availability + w.Experience
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("%w: sum is %v, want 1.0", ErrInvalidWeights, sum)
	}
	return nil
}

// WeightTable maps each collaboration type to its weight distribution.
type WeightTable map[core.CollaborationType]Weights

// Validate checks every entry and requires a row for every collaboration
// type so lookup never falls through.
func (t WeightTable) Validate() error {
	for _, kind := range []core.CollaborationType{
		core.CollaborationCoFounder,
		core.CollaborationMentor,
		core.CollaborationInvestor,
		core.CollaborationCollaborator,
		core.CollaborationOther,
	} {
		w, ok := t[kind]
		if !ok {
			return fmt.Errorf("%w: missing entry for %s", ErrInvalidWeights, kind)
		}
		if err := w.Validate(); err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}
	return nil
}

// DefaultWeights returns the stock weight table. Co-founder searches weight
// skills and goals highest; mentor searches shift toward availability and
// experience; investor searches toward goals and network. Tunable per
// deployment, but replacements must pass Validate.
func DefaultWeights() WeightTable {
	return WeightTable{
		core.CollaborationCoFounder: {
			Skills: 0.30, Goals: 0.25, Location: 0.10,
			Network: 0.10, Availability: 0.10, Experience: 0.15,
		},
		core.CollaborationMentor: {
			Skills: 0.25, Goals: 0.15, Location: 0.05,
			Network: 0.10, Availability: 0.25, Experience: 0.20,
		},
		core.CollaborationInvestor: {
			Skills: 0.15, Goals: 0.30, Location: 0.05,
			Network: 0.20, Availability: 0.10, Experience: 0.20,
		},
		core.CollaborationCollaborator: {
			Skills: 0.30, Goals: 0.20, Location: 0.15,
			Network: 0.10, Availability: 0.15, Experience: 0.10,
		},
		core.CollaborationOther: {
			Skills: 0.20, Goals: 0.20, Location: 0.15,
			Network: 0.15, Availability: 0.15, Experience: 0.15,
		},
	}
}

// Package score cross-checks the model's declared avalanche type against its
// own structured observations. The declared type is advisory; it is only
// accepted when the weighted characteristic evidence points the same way.
package score

import (
	"errors"
	"fmt"

	"avalanche-analyzer/internal/schema"
)

const (
	primaryWeight   = 3
	secondaryWeight = 1

	// minLead is the required gap between the best and second-best category
	// scores; anything closer means the evidence separates nothing.
	minLead = 3
	// minScore is the floor for the best score. A single primary indicator
	// (weight 3) is deliberately below it: one strong cue is not enough.
	minScore = 6
)

var (
	ErrAmbiguousEvidence          = errors.New("multiple types show similar characteristics")
	ErrInsufficientEvidence       = errors.New("insufficient characteristic evidence for classification")
	ErrInconsistentClassification = errors.New("inconsistent classification")
	ErrInvalidCategory            = errors.New("invalid avalanche type")
	ErrConfidenceOutOfRange       = errors.New("confidence level out of range")
)

// InconsistencyError reports a declared type that disagrees with the
// evidence-derived one. It matches ErrInconsistentClassification via errors.Is.
type InconsistencyError struct {
	Expected schema.AvalancheType
	Reported schema.AvalancheType
	Score    int
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("visual characteristics strongly indicate %s (score: %d) but classified as %s",
		e.Expected, e.Score, e.Reported)
}

func (e *InconsistencyError) Is(target error) bool {
	return target == ErrInconsistentClassification
}

// Vector holds the evidence score per candidate category. Recomputed fresh
// for every analysis, never stored.
type Vector struct {
	Powder    int
	LooseSnow int
	Slab      int
}

// Compute derives the per-category scores from the structured observations.
// Out-of-vocabulary string values simply match no rule.
func Compute(c schema.VisualCharacteristics) Vector {
	var v Vector
	snow := c.SnowTexture
	mv := c.Movement

	// Powder: airborne, low-density snow moving downhill.
	if c.PowderCloud {
		v.Powder += primaryWeight
	}
	if snow.Fluffy {
		v.Powder += primaryWeight
	}
	if mv.VerticalMovement {
		v.Powder += primaryWeight
	}
	if snow.Density == schema.DensityLow {
		v.Powder += secondaryWeight
	}
	if mv.Propagation == schema.PropagationChaotic {
		v.Powder += secondaryWeight
	}
	if c.Terrain.SteepSlope() {
		v.Powder += secondaryWeight
	}

	// Loose snow: point release fanning out downslope.
	if mv.StartingWidth == schema.WidthPoint {
		v.LooseSnow += primaryWeight
	}
	if mv.Propagation == schema.PropagationFan {
		v.LooseSnow += primaryWeight
	}
	if snow.Granular {
		v.LooseSnow += primaryWeight
	}
	if c.DebrisPattern == schema.DebrisFanShaped {
		v.LooseSnow += primaryWeight
	}
	if !c.FractureLine {
		v.LooseSnow += secondaryWeight
	}
	if snow.Density == schema.DensityLow {
		v.LooseSnow += secondaryWeight
	}
	if c.Terrain.SteepSlope() {
		v.LooseSnow += secondaryWeight
	}

	// Slab: cohesive plate releasing along a wide fracture.
	if c.FractureLine {
		v.Slab += primaryWeight
	}
	if snow.Blocky {
		v.Slab += primaryWeight
	}
	if mv.StartingWidth == schema.WidthWide {
		v.Slab += primaryWeight
	}
	if mv.Propagation == schema.PropagationLinear {
		v.Slab += primaryWeight
	}
	if snow.Density == schema.DensityHigh {
		v.Slab += secondaryWeight
	}
	if c.DebrisPattern == schema.DebrisLinear {
		v.Slab += secondaryWeight
	}
	if mv.LateralSpread {
		v.Slab += secondaryWeight
	}

	return v
}

// Best returns the top-scoring category and its score. Ties go to the earlier
// category in powder/loose-snow/slab order; a tied best is always rejected as
// ambiguous later, so the winner's identity never matters then.
func (v Vector) Best() (schema.AvalancheType, int) {
	best, score := schema.TypePowder, v.Powder
	if v.LooseSnow > score {
		best, score = schema.TypeLooseSnow, v.LooseSnow
	}
	if v.Slab > score {
		best, score = schema.TypeSlab, v.Slab
	}
	return best, score
}

// Second returns the higher of the two non-winning scores.
func (v Vector) Second(best schema.AvalancheType) int {
	switch best {
	case schema.TypeLooseSnow:
		return max(v.Powder, v.Slab)
	case schema.TypeSlab:
		return max(v.Powder, v.LooseSnow)
	default:
		return max(v.LooseSnow, v.Slab)
	}
}

// Validate accepts or rejects a parsed analysis. Pure function: no I/O, same
// input always yields the same verdict.
//
// When no avalanche is present there is no category to corroborate, so the
// evidence rules are skipped; the value-domain checks still apply.
func Validate(a *schema.AvalancheAnalysis) error {
	if a.AvalanchePresent {
		v := Compute(a.Characteristics)
		expected, highest := v.Best()
		second := v.Second(expected)

		if highest-second < minLead {
			return ErrAmbiguousEvidence
		}
		if highest < minScore {
			return ErrInsufficientEvidence
		}
		if a.AvalancheType != expected {
			return &InconsistencyError{
				Expected: expected,
				Reported: a.AvalancheType,
				Score:    highest,
			}
		}
	}

	if !a.AvalancheType.Known() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(a.AvalancheType))
	}
	if a.ConfidenceLevel < 0.0 || a.ConfidenceLevel > 100.0 {
		return fmt.Errorf("%w: %g", ErrConfidenceOutOfRange, a.ConfidenceLevel)
	}
	return nil
}

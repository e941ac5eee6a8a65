package score

import (
	"errors"
	"testing"

	"avalanche-analyzer/internal/schema"
)

// slabCharacteristics is the canonical strong-slab evidence set:
// fracture line (3) + blocky (3) + wide (3) + linear (3) + high density (1) = 13.
func slabCharacteristics() schema.VisualCharacteristics {
	return schema.VisualCharacteristics{
		FractureLine:  true,
		DebrisPattern: schema.DebrisNone,
		SnowTexture: schema.SnowTexture{
			Blocky:  true,
			Density: schema.DensityHigh,
		},
		Movement: schema.MovementPattern{
			StartingWidth: schema.WidthWide,
			Propagation:   schema.PropagationLinear,
		},
		Terrain: schema.TerrainFeatures{SurfaceRoughness: "smooth"},
	}
}

func analysis(typ schema.AvalancheType, confidence float32, c schema.VisualCharacteristics) *schema.AvalancheAnalysis {
	return &schema.AvalancheAnalysis{
		AvalanchePresent: true,
		AvalancheType:    typ,
		ConfidenceLevel:  confidence,
		Characteristics:  c,
	}
}

func TestComputeVectors(t *testing.T) {
	t.Parallel()

	steep := "steep (>45°)"

	testCases := []struct {
		name     string
		chars    schema.VisualCharacteristics
		expected Vector
	}{
		{
			name:     "strong slab",
			chars:    slabCharacteristics(),
			expected: Vector{Powder: 0, LooseSnow: 0, Slab: 13},
		},
		{
			name: "strong powder",
			chars: schema.VisualCharacteristics{
				PowderCloud:   true,
				DebrisPattern: schema.DebrisNone,
				SnowTexture:   schema.SnowTexture{Fluffy: true, Density: schema.DensityLow},
				Movement: schema.MovementPattern{
					StartingWidth:    schema.WidthUndefined,
					Propagation:      schema.PropagationChaotic,
					VerticalMovement: true,
				},
				Terrain: schema.TerrainFeatures{SlopeAngle: &steep},
			},
			// powder: 3+3+3 primary, +1 low density +1 chaotic +1 steep = 12
			// loose snow: no fracture (1) + low density (1) + steep (1) = 3
			expected: Vector{Powder: 12, LooseSnow: 3, Slab: 0},
		},
		{
			name: "strong loose snow",
			chars: schema.VisualCharacteristics{
				DebrisPattern: schema.DebrisFanShaped,
				SnowTexture:   schema.SnowTexture{Granular: true, Density: schema.DensityMedium},
				Movement: schema.MovementPattern{
					StartingWidth: schema.WidthPoint,
					Propagation:   schema.PropagationFan,
				},
			},
			// loose snow: 3+3+3+3 primary + 1 no fracture = 13
			expected: Vector{Powder: 0, LooseSnow: 13, Slab: 0},
		},
		{
			name: "out-of-vocabulary values match nothing",
			chars: schema.VisualCharacteristics{
				DebrisPattern: "swirl",
				SnowTexture:   schema.SnowTexture{Density: "extreme"},
				Movement: schema.MovementPattern{
					StartingWidth: "everywhere",
					Propagation:   "radial",
				},
			},
			// only the no-fracture-line secondary for loose snow applies
			expected: Vector{Powder: 0, LooseSnow: 1, Slab: 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Compute(tc.chars); got != tc.expected {
				t.Errorf("Compute() = %+v, expected %+v", got, tc.expected)
			}
		})
	}
}

// TestComputeDeterminism: same characteristics, same vector, every time.
func TestComputeDeterminism(t *testing.T) {
	t.Parallel()

	chars := slabCharacteristics()
	first := Compute(chars)
	for i := 0; i < 100; i++ {
		if got := Compute(chars); got != first {
			t.Fatalf("iteration %d: Compute() = %+v, expected %+v", i, got, first)
		}
	}

	a := analysis(schema.TypeSlab, 90, chars)
	if err := Validate(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate(a); err != nil {
		t.Fatalf("second validation disagreed: %v", err)
	}
}

func TestValidateSlabSignature(t *testing.T) {
	t.Parallel()

	if err := Validate(analysis(schema.TypeSlab, 90, slabCharacteristics())); err != nil {
		t.Errorf("strong slab evidence should be accepted, got %v", err)
	}
}

func TestValidateMismatch(t *testing.T) {
	t.Parallel()

	err := Validate(analysis(schema.TypePowder, 90, slabCharacteristics()))
	var inconsistent *InconsistencyError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("expected InconsistencyError, got %v", err)
	}
	if !errors.Is(err, ErrInconsistentClassification) {
		t.Error("expected errors.Is match on ErrInconsistentClassification")
	}
	if inconsistent.Expected != schema.TypeSlab {
		t.Errorf("expected category = %q, want slab", inconsistent.Expected)
	}
	if inconsistent.Reported != schema.TypePowder {
		t.Errorf("reported category = %q, want powder", inconsistent.Reported)
	}
	if inconsistent.Score != 13 {
		t.Errorf("score = %d, want 13", inconsistent.Score)
	}
}

// TestValidateBoundaries pins the inclusive thresholds: best ≥ 6 and
// margin ≥ 3 accept; best 5 and margin 2 reject.
func TestValidateBoundaries(t *testing.T) {
	t.Parallel()

	t.Run("best 6 margin 3 accepted", func(t *testing.T) {
		t.Parallel()
		// powder: cloud (3) + fluffy (3) = 6; slab: fracture line (3);
		// loose snow: 0 (fracture line present kills its secondary).
		chars := schema.VisualCharacteristics{
			PowderCloud:   true,
			FractureLine:  true,
			DebrisPattern: schema.DebrisNone,
			SnowTexture:   schema.SnowTexture{Fluffy: true, Density: schema.DensityMedium},
			Movement: schema.MovementPattern{
				StartingWidth: schema.WidthUndefined,
				Propagation:   schema.PropagationNone,
			},
		}
		if v := Compute(chars); v != (Vector{Powder: 6, LooseSnow: 0, Slab: 3}) {
			t.Fatalf("fixture drifted: %+v", v)
		}
		if err := Validate(analysis(schema.TypePowder, 70, chars)); err != nil {
			t.Errorf("expected acceptance at the inclusive thresholds, got %v", err)
		}
	})

	t.Run("best 5 rejected as insufficient", func(t *testing.T) {
		t.Parallel()
		// powder: cloud (3) + low density (1) + chaotic (1) = 5;
		// loose snow: no fracture (1) + low density (1) = 2; slab: 0.
		chars := schema.VisualCharacteristics{
			PowderCloud:   true,
			DebrisPattern: schema.DebrisNone,
			SnowTexture:   schema.SnowTexture{Density: schema.DensityLow},
			Movement: schema.MovementPattern{
				StartingWidth: schema.WidthUndefined,
				Propagation:   schema.PropagationChaotic,
			},
		}
		if v := Compute(chars); v != (Vector{Powder: 5, LooseSnow: 2, Slab: 0}) {
			t.Fatalf("fixture drifted: %+v", v)
		}
		err := Validate(analysis(schema.TypePowder, 70, chars))
		if !errors.Is(err, ErrInsufficientEvidence) {
			t.Errorf("expected ErrInsufficientEvidence, got %v", err)
		}
	})

	t.Run("margin 2 rejected as ambiguous", func(t *testing.T) {
		t.Parallel()
		// powder: cloud (3) + fluffy (3) = 6; slab: fracture (3) + high density (1) = 4.
		chars := schema.VisualCharacteristics{
			PowderCloud:   true,
			FractureLine:  true,
			DebrisPattern: schema.DebrisNone,
			SnowTexture:   schema.SnowTexture{Fluffy: true, Density: schema.DensityHigh},
			Movement: schema.MovementPattern{
				StartingWidth: schema.WidthUndefined,
				Propagation:   schema.PropagationNone,
			},
		}
		if v := Compute(chars); v != (Vector{Powder: 6, LooseSnow: 0, Slab: 4}) {
			t.Fatalf("fixture drifted: %+v", v)
		}
		err := Validate(analysis(schema.TypePowder, 70, chars))
		if !errors.Is(err, ErrAmbiguousEvidence) {
			t.Errorf("expected ErrAmbiguousEvidence, got %v", err)
		}
	})

	t.Run("three-way tie rejected as ambiguous", func(t *testing.T) {
		t.Parallel()
		chars := schema.VisualCharacteristics{
			FractureLine:  true, // slab 3, kills loose-snow secondary
			PowderCloud:   true, // powder 3
			DebrisPattern: schema.DebrisFanShaped, // loose snow 3
			SnowTexture:   schema.SnowTexture{Density: schema.DensityMedium},
			Movement: schema.MovementPattern{
				StartingWidth: schema.WidthUndefined,
				Propagation:   schema.PropagationNone,
			},
		}
		if v := Compute(chars); v != (Vector{Powder: 3, LooseSnow: 3, Slab: 3}) {
			t.Fatalf("fixture drifted: %+v", v)
		}
		err := Validate(analysis(schema.TypeSlab, 70, chars))
		if !errors.Is(err, ErrAmbiguousEvidence) {
			t.Errorf("expected ErrAmbiguousEvidence, got %v", err)
		}
	})
}

// TestValidateNoHazardShortCircuit: present == false skips the evidence rules
// entirely, even for internally inconsistent characteristics.
func TestValidateNoHazardShortCircuit(t *testing.T) {
	t.Parallel()

	// Contradictory evidence: powder cloud plus fracture line plus fan debris.
	chars := schema.VisualCharacteristics{
		PowderCloud:   true,
		FractureLine:  true,
		DebrisPattern: schema.DebrisFanShaped,
		SnowTexture:   schema.SnowTexture{Granular: true, Blocky: true, Fluffy: true, Density: schema.DensityLow},
		Movement: schema.MovementPattern{
			StartingWidth: schema.WidthPoint,
			Propagation:   schema.PropagationFan,
		},
	}
	a := &schema.AvalancheAnalysis{
		AvalanchePresent: false,
		AvalancheType:    schema.TypeNone,
		ConfidenceLevel:  55,
		Characteristics:  chars,
	}
	if err := Validate(a); err != nil {
		t.Errorf("no-hazard verdict should be accepted as-is, got %v", err)
	}
}

func TestValidateInvalidCategory(t *testing.T) {
	t.Parallel()

	a := &schema.AvalancheAnalysis{
		AvalanchePresent: false,
		AvalancheType:    "cornice-collapse",
		ConfidenceLevel:  55,
	}
	err := Validate(a)
	if !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}

// TestValidateConfidenceOutOfRange: the range check applies regardless of the
// other fields, and the bound is not clamped.
func TestValidateConfidenceOutOfRange(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		confidence float32
		wantErr    bool
	}{
		{"above range", 137.0, true},
		{"below range", -0.5, true},
		{"lower bound", 0.0, false},
		{"upper bound", 100.0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(analysis(schema.TypeSlab, tc.confidence, slabCharacteristics()))
			if tc.wantErr && !errors.Is(err, ErrConfidenceOutOfRange) {
				t.Errorf("expected ErrConfidenceOutOfRange, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

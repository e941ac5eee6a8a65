package telegram

import (
	"strings"
	"testing"

	"avalanche-analyzer/internal/schema"
)

func TestFormatAnalysisSlab(t *testing.T) {
	t.Parallel()

	slope := "moderate (30-45°)"
	a := &schema.AvalancheAnalysis{
		AvalanchePresent: true,
		AvalancheType:    schema.TypeSlab,
		ConfidenceLevel:  91,
		TerrainNotes:     []string{"crown fracture below the ridge", "smooth bed surface"},
		Characteristics: schema.VisualCharacteristics{
			FractureLine:  true,
			DebrisPattern: schema.DebrisLinear,
			SnowTexture: schema.SnowTexture{
				Blocky:  true,
				Density: schema.DensityHigh,
			},
			Movement: schema.MovementPattern{
				StartingWidth: schema.WidthWide,
				Propagation:   schema.PropagationLinear,
				LateralSpread: true,
			},
			Terrain: schema.TerrainFeatures{
				SlopeAngle:       &slope,
				SurfaceRoughness: "smooth",
			},
		},
	}

	got := FormatAnalysis(a)

	for _, want := range []string{
		"Slab Avalanche",
		"Confidence: 91%",
		"Snow: blocky (density: high)",
		"Movement: release wide, propagation linear, lateral spread",
		"Slope: moderate (30-45°)",
		"Surface: smooth",
		"Fracture line visible",
		"• crown fracture below the ridge",
		"• smooth bed surface",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("rendered message should not end with a newline")
	}
}

func TestFormatAnalysisNoHazard(t *testing.T) {
	t.Parallel()

	a := &schema.AvalancheAnalysis{
		AvalanchePresent: false,
		AvalancheType:    schema.TypeNone,
		ConfidenceLevel:  88,
		Characteristics: schema.VisualCharacteristics{
			DebrisPattern: schema.DebrisNone,
			SnowTexture:   schema.SnowTexture{Density: schema.DensityMedium},
			Movement: schema.MovementPattern{
				StartingWidth: schema.WidthUndefined,
				Propagation:   schema.PropagationNone,
			},
			Terrain: schema.TerrainFeatures{SurfaceRoughness: "rough"},
		},
	}

	got := FormatAnalysis(a)

	if !strings.Contains(got, "No Avalanche Risk") {
		t.Errorf("missing verdict in:\n%s", got)
	}
	if !strings.Contains(got, "Snow: — (density: medium)") {
		t.Errorf("missing texture placeholder in:\n%s", got)
	}
	if strings.Contains(got, "Slope:") {
		t.Error("slope line should be omitted when the angle is unknown")
	}
	if strings.Contains(got, "Observations:") {
		t.Error("observations block should be omitted when there are no notes")
	}
	if strings.Contains(got, "Fracture line") {
		t.Error("fracture line should be omitted when not visible")
	}
}

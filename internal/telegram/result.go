package telegram

import (
	"fmt"
	"strings"

	"avalanche-analyzer/internal/schema"
)

// FormatAnalysis renders an accepted analysis as a chat message.
func FormatAnalysis(a *schema.AvalancheAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🏔 %s\n", a.AvalancheType.DisplayName())
	fmt.Fprintf(&b, "Confidence: %.0f%%\n", a.ConfidenceLevel)

	c := a.Characteristics

	b.WriteString("\nSnow: ")
	var textures []string
	if c.SnowTexture.Granular {
		textures = append(textures, "granular")
	}
	if c.SnowTexture.Blocky {
		textures = append(textures, "blocky")
	}
	if c.SnowTexture.Fluffy {
		textures = append(textures, "fluffy")
	}
	if len(textures) == 0 {
		textures = append(textures, "—")
	}
	b.WriteString(strings.Join(textures, ", "))
	fmt.Fprintf(&b, " (density: %s)\n", c.SnowTexture.Density)

	fmt.Fprintf(&b, "Movement: release %s, propagation %s", c.Movement.StartingWidth, c.Movement.Propagation)
	if c.Movement.VerticalMovement {
		b.WriteString(", vertical")
	}
	if c.Movement.LateralSpread {
		b.WriteString(", lateral spread")
	}
	b.WriteByte('\n')

	if c.Terrain.SlopeAngle != nil {
		fmt.Fprintf(&b, "Slope: %s\n", *c.Terrain.SlopeAngle)
	}
	fmt.Fprintf(&b, "Surface: %s\n", c.Terrain.SurfaceRoughness)
	if c.FractureLine {
		b.WriteString("Fracture line visible\n")
	}

	if len(a.TerrainNotes) > 0 {
		b.WriteString("\nObservations:\n")
		for _, note := range a.TerrainNotes {
			fmt.Fprintf(&b, "• %s\n", note)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Package schema defines the wire types exchanged with the vision model.
package schema

// AvalancheType is the hazard category declared by the model. Unrecognized
// strings are kept as-is so callers can report what the model actually said.
type AvalancheType string

const (
	TypePowder    AvalancheType = "powder"
	TypeLooseSnow AvalancheType = "loose-snow"
	TypeSlab      AvalancheType = "slab"
	TypeNone      AvalancheType = "none"
)

// Known reports whether the type is one of the four canonical spellings.
func (t AvalancheType) Known() bool {
	switch t {
	case TypePowder, TypeLooseSnow, TypeSlab, TypeNone:
		return true
	}
	return false
}

// DisplayName returns the human-readable category name.
func (t AvalancheType) DisplayName() string {
	switch t {
	case TypePowder:
		return "Powder Avalanche"
	case TypeLooseSnow:
		return "Loose Snow Avalanche"
	case TypeSlab:
		return "Slab Avalanche"
	case TypeNone:
		return "No Avalanche Risk"
	default:
		return "Unknown Type"
	}
}

// Closed vocabularies used by the scoring rules. Values outside these sets are
// accepted on the wire and simply match no rule.
const (
	DensityLow    = "low"
	DensityMedium = "medium"
	DensityHigh   = "high"

	WidthPoint     = "point"
	WidthWide      = "wide"
	WidthUndefined = "undefined"

	PropagationFan     = "fan"
	PropagationLinear  = "linear"
	PropagationChaotic = "chaotic"
	PropagationNone    = "none"

	DebrisFanShaped = "fan-shaped"
	DebrisLinear    = "linear"
	DebrisScattered = "scattered"
	DebrisNone      = "none"

	// Slope angle strings carry a range suffix, e.g. "steep (>45°)".
	SlopeSteepPrefix = "steep"
)

type SnowTexture struct {
	Granular bool   `json:"granular"`
	Blocky   bool   `json:"blocky"`
	Fluffy   bool   `json:"fluffy"`
	Density  string `json:"density"` // "low"|"medium"|"high"
}

type MovementPattern struct {
	StartingWidth    string `json:"starting_width"` // "point"|"wide"|"undefined"
	Propagation      string `json:"propagation"`    // "fan"|"linear"|"chaotic"|"none"
	VerticalMovement bool   `json:"vertical_movement"`
	LateralSpread    bool   `json:"lateral_spread"`
}

type TerrainFeatures struct {
	SlopeAngle       *string `json:"slope_angle"` // "steep (>45°)"|"moderate (30-45°)"|"gentle (<30°)"|null
	SurfaceRoughness string  `json:"surface_roughness"`
	AnchoringPoints  bool    `json:"anchoring_points"`
	ConvexRollover   bool    `json:"convex_rollover"`
}

type VisualCharacteristics struct {
	PowderCloud   bool            `json:"powder_cloud"`
	FractureLine  bool            `json:"fracture_line"`
	FractureDepth *string         `json:"fracture_depth"` // "shallow"|"deep"|"variable"|null
	PointRelease  bool            `json:"point_release"`
	DebrisPattern string          `json:"debris_pattern"`
	SnowTexture   SnowTexture     `json:"snow_texture"`
	Movement      MovementPattern `json:"movement_pattern"`
	Terrain       TerrainFeatures `json:"terrain"`
}

// AvalancheAnalysis is the structured verdict returned by the vision model.
// Instances are built by the parser and never mutated afterwards.
type AvalancheAnalysis struct {
	AvalanchePresent bool                  `json:"avalanche_present"`
	AvalancheType    AvalancheType         `json:"avalanche_type"`
	ConfidenceLevel  float32               `json:"confidence_level"`
	TerrainNotes     []string              `json:"terrain_features"`
	Characteristics  VisualCharacteristics `json:"visual_characteristics"`
}

// SteepSlope reports whether the described slope angle is in the steep band.
func (t TerrainFeatures) SteepSlope() bool {
	if t.SlopeAngle == nil {
		return false
	}
	return len(*t.SlopeAngle) >= len(SlopeSteepPrefix) &&
		(*t.SlopeAngle)[:len(SlopeSteepPrefix)] == SlopeSteepPrefix
}

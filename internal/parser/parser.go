// Package parser decodes the model's reply into a schema.AvalancheAnalysis,
// failing fast on structural problems instead of propagating absent fields.
package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"avalanche-analyzer/internal/schema"
	"avalanche-analyzer/internal/util"
)

// ErrMalformedPayload means the reply could not be decoded as a JSON object.
var ErrMalformedPayload = errors.New("malformed payload")

// MissingFieldError names a required field absent from the reply. Field holds
// the wire path, e.g. "visual_characteristics.snow_texture.density".
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return "missing required field: " + e.Field
}

// Shadow types with pointer fields so absence is distinguishable from the
// zero value. Unknown extra fields are ignored by encoding/json.
type rawTexture struct {
	Granular *bool   `json:"granular"`
	Blocky   *bool   `json:"blocky"`
	Fluffy   *bool   `json:"fluffy"`
	Density  *string `json:"density"`
}

type rawMovement struct {
	StartingWidth    *string `json:"starting_width"`
	Propagation      *string `json:"propagation"`
	VerticalMovement *bool   `json:"vertical_movement"`
	LateralSpread    *bool   `json:"lateral_spread"`
}

type rawTerrain struct {
	SlopeAngle       *string `json:"slope_angle"`
	SurfaceRoughness *string `json:"surface_roughness"`
	AnchoringPoints  *bool   `json:"anchoring_points"`
	ConvexRollover   *bool   `json:"convex_rollover"`
}

type rawCharacteristics struct {
	PowderCloud   *bool        `json:"powder_cloud"`
	FractureLine  *bool        `json:"fracture_line"`
	FractureDepth *string      `json:"fracture_depth"`
	PointRelease  *bool        `json:"point_release"`
	DebrisPattern *string      `json:"debris_pattern"`
	SnowTexture   *rawTexture  `json:"snow_texture"`
	Movement      *rawMovement `json:"movement_pattern"`
	Terrain       *rawTerrain  `json:"terrain"`
}

type rawAnalysis struct {
	AvalanchePresent *bool               `json:"avalanche_present"`
	AvalancheType    *string             `json:"avalanche_type"`
	ConfidenceLevel  *float32            `json:"confidence_level"`
	TerrainNotes     []string            `json:"terrain_features"`
	Characteristics  *rawCharacteristics `json:"visual_characteristics"`
}

// ParseAnalysis decodes the raw reply text. Code fences are stripped first
// because models wrap JSON in markdown fences even when told not to.
func ParseAnalysis(content string) (*schema.AvalancheAnalysis, error) {
	cleaned := util.StripCodeFences(content)

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	if raw.AvalanchePresent == nil {
		return nil, &MissingFieldError{Field: "avalanche_present"}
	}
	if raw.AvalancheType == nil {
		return nil, &MissingFieldError{Field: "avalanche_type"}
	}
	if raw.ConfidenceLevel == nil {
		return nil, &MissingFieldError{Field: "confidence_level"}
	}
	if raw.Characteristics == nil {
		return nil, &MissingFieldError{Field: "visual_characteristics"}
	}

	chars, err := buildCharacteristics(raw.Characteristics)
	if err != nil {
		return nil, err
	}

	return &schema.AvalancheAnalysis{
		AvalanchePresent: *raw.AvalanchePresent,
		AvalancheType:    schema.AvalancheType(*raw.AvalancheType),
		ConfidenceLevel:  *raw.ConfidenceLevel,
		TerrainNotes:     raw.TerrainNotes,
		Characteristics:  *chars,
	}, nil
}

func buildCharacteristics(raw *rawCharacteristics) (*schema.VisualCharacteristics, error) {
	const prefix = "visual_characteristics."

	switch {
	case raw.PowderCloud == nil:
		return nil, &MissingFieldError{Field: prefix + "powder_cloud"}
	case raw.FractureLine == nil:
		return nil, &MissingFieldError{Field: prefix + "fracture_line"}
	case raw.PointRelease == nil:
		return nil, &MissingFieldError{Field: prefix + "point_release"}
	case raw.DebrisPattern == nil:
		return nil, &MissingFieldError{Field: prefix + "debris_pattern"}
	case raw.SnowTexture == nil:
		return nil, &MissingFieldError{Field: prefix + "snow_texture"}
	case raw.Movement == nil:
		return nil, &MissingFieldError{Field: prefix + "movement_pattern"}
	case raw.Terrain == nil:
		return nil, &MissingFieldError{Field: prefix + "terrain"}
	}

	st := raw.SnowTexture
	switch {
	case st.Granular == nil:
		return nil, &MissingFieldError{Field: prefix + "snow_texture.granular"}
	case st.Blocky == nil:
		return nil, &MissingFieldError{Field: prefix + "snow_texture.blocky"}
	case st.Fluffy == nil:
		return nil, &MissingFieldError{Field: prefix + "snow_texture.fluffy"}
	case st.Density == nil:
		return nil, &MissingFieldError{Field: prefix + "snow_texture.density"}
	}

	mv := raw.Movement
	switch {
	case mv.StartingWidth == nil:
		return nil, &MissingFieldError{Field: prefix + "movement_pattern.starting_width"}
	case mv.Propagation == nil:
		return nil, &MissingFieldError{Field: prefix + "movement_pattern.propagation"}
	case mv.VerticalMovement == nil:
		return nil, &MissingFieldError{Field: prefix + "movement_pattern.vertical_movement"}
	case mv.LateralSpread == nil:
		return nil, &MissingFieldError{Field: prefix + "movement_pattern.lateral_spread"}
	}

	tr := raw.Terrain
	switch {
	case tr.SurfaceRoughness == nil:
		return nil, &MissingFieldError{Field: prefix + "terrain.surface_roughness"}
	case tr.AnchoringPoints == nil:
		return nil, &MissingFieldError{Field: prefix + "terrain.anchoring_points"}
	case tr.ConvexRollover == nil:
		return nil, &MissingFieldError{Field: prefix + "terrain.convex_rollover"}
	}

	return &schema.VisualCharacteristics{
		PowderCloud:   *raw.PowderCloud,
		FractureLine:  *raw.FractureLine,
		FractureDepth: raw.FractureDepth,
		PointRelease:  *raw.PointRelease,
		DebrisPattern: *raw.DebrisPattern,
		SnowTexture: schema.SnowTexture{
			Granular: *st.Granular,
			Blocky:   *st.Blocky,
			Fluffy:   *st.Fluffy,
			Density:  *st.Density,
		},
		Movement: schema.MovementPattern{
			StartingWidth:    *mv.StartingWidth,
			Propagation:      *mv.Propagation,
			VerticalMovement: *mv.VerticalMovement,
			LateralSpread:    *mv.LateralSpread,
		},
		Terrain: schema.TerrainFeatures{
			SlopeAngle:       tr.SlopeAngle,
			SurfaceRoughness: *tr.SurfaceRoughness,
			AnchoringPoints:  *tr.AnchoringPoints,
			ConvexRollover:   *tr.ConvexRollover,
		},
	}, nil
}

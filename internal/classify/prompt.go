package classify

// MaxTokens caps the model reply; the rubric's JSON comfortably fits.
const MaxTokens = 600

// Rubric is the fixed instruction prompt sent with every image. The wording
// is versioned behavior: the parser and scorer depend on the JSON shape and
// vocabularies it defines, so edits here must be mirrored there.
const Rubric = `Analyze this mountain terrain for avalanche characteristics with extreme detail. Return a JSON object with this structure:
{
    "avalanche_present": boolean,
    "avalanche_type": "powder"|"loose-snow"|"slab"|"none",
    "confidence_level": 0.0-100.0,
    "terrain_features": string[],
    "visual_characteristics": {
        "powder_cloud": boolean,
        "fracture_line": boolean,
        "fracture_depth": "shallow"|"deep"|"variable"|null,
        "point_release": boolean,
        "debris_pattern": "fan-shaped"|"linear"|"scattered"|"none",
        "snow_texture": {
            "granular": boolean,
            "blocky": boolean,
            "fluffy": boolean,
            "density": "low"|"medium"|"high"
        },
        "movement_pattern": {
            "starting_width": "point"|"wide"|"undefined",
            "propagation": "fan"|"linear"|"chaotic"|"none",
            "vertical_movement": boolean,
            "lateral_spread": boolean
        },
        "terrain": {
            "slope_angle": "steep (>45°)"|"moderate (30-45°)"|"gentle (<30°)"|null,
            "surface_roughness": "smooth"|"rough"|"variable",
            "anchoring_points": boolean,
            "convex_rollover": boolean
        }
    }
}

DETAILED ANALYSIS GUIDELINES:

1. Snow Texture Analysis:
   - Granular: Individual snow particles visible? Common in loose snow
   - Blocky: Cohesive blocks or chunks? Typical of slab
   - Fluffy: Light, airy appearance? Common in powder
   - Density: Assess snow compactness

2. Movement Pattern Analysis:
   - Starting Width: Point source vs wide initial fracture
   - Propagation: How the avalanche spreads
   - Vertical Movement: Significant up/down motion
   - Lateral Spread: Sideways expansion

3. Terrain Analysis:
   - Slope Angle: Critical for type determination
   - Surface Roughness: Affects release pattern
   - Anchoring Points: Trees/rocks that affect flow
   - Convex Rollover: Terrain shape at release point

AVALANCHE TYPE CHARACTERISTICS:

LOOSE-SNOW Avalanche:
PRIMARY Indicators:
- Starting_width: "point"
- Propagation: "fan"
- Snow_texture: granular=true, blocky=false
- Debris_pattern: "fan-shaped"
SECONDARY Indicators:
- No distinct fracture line
- Low to medium density
- Often on steeper slopes
- Minimal lateral spread

SLAB Avalanche:
PRIMARY Indicators:
- Fracture_line: true
- Snow_texture: blocky=true
- Starting_width: "wide"
- Propagation: "linear"
SECONDARY Indicators:
- Medium to high density
- Linear debris pattern
- Moderate slope angles
- Significant lateral spread

POWDER Avalanche:
PRIMARY Indicators:
- Powder_cloud: true
- Snow_texture: fluffy=true
- Vertical_movement: true
SECONDARY Indicators:
- Low density
- Significant vertical displacement
- Often on steep terrain
- Chaotic propagation

Analyze ALL characteristics before classification. If mixed indicators present, weight PRIMARY indicators more heavily. A single PRIMARY indicator is not enough - require multiple matching characteristics for classification.`

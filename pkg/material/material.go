// Package material holds per-slot PBR settings for skeleton materials,
// the stock palette, and the procedural textures hosts can apply to them.
// Material ids are the uint8 tags carried by skeleton points.
package material

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TextureType selects the procedural texture applied to a material slot.
type TextureType uint8

const (
	TextureNone TextureType = iota
	TextureGrid
	TextureNoise
	TextureChecker
)

// TextureTypes lists every selectable texture type.
var TextureTypes = []TextureType{TextureNone, TextureGrid, TextureNoise, TextureChecker}

// String returns the lowercase texture name.
func (t TextureType) String() string {
	switch t {
	case TextureNone:
		return "none"
	case TextureGrid:
		return "grid"
	case TextureNoise:
		return "noise"
	case TextureChecker:
		return "checker"
	default:
		return "unknown"
	}
}

// ParseTextureType converts a texture name to its TextureType.
func ParseTextureType(s string) (TextureType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return TextureNone, nil
	case "grid":
		return TextureGrid, nil
	case "noise":
		return TextureNoise, nil
	case "checker":
		return TextureChecker, nil
	default:
		return TextureNone, fmt.Errorf("unknown texture type %q", s)
	}
}

// MarshalYAML encodes the texture type as its name.
func (t TextureType) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

// UnmarshalYAML decodes a texture type from its name.
func (t *TextureType) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTextureType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Settings is the editable PBR description of one material slot.
type Settings struct {
	BaseColor        [3]float32  `yaml:"base_color,flow"`
	EmissionColor    [3]float32  `yaml:"emission_color,flow"`
	EmissionStrength float32     `yaml:"emission_strength"`
	Roughness        float32     `yaml:"roughness"`
	Metallic         float32     `yaml:"metallic"`
	Texture          TextureType `yaml:"texture"`
	UVScale          float32     `yaml:"uv_scale"`
}

// Default returns the neutral material: white, matte, no emission.
func Default() Settings {
	return Settings{
		BaseColor:        [3]float32{1, 1, 1},
		EmissionColor:    [3]float32{0, 0, 0},
		EmissionStrength: 0,
		Roughness:        0.5,
		Metallic:         0,
		Texture:          TextureNone,
		UVScale:          1,
	}
}

// Equal reports whether two settings are identical. Hosts diff an edited
// library against the last-synced copy with it to rebuild only what changed.
func (s Settings) Equal(other Settings) bool {
	return s == other
}

// Library maps material ids to their settings.
type Library map[uint8]Settings

// Get returns the settings for id, falling back to Default for unknown ids.
func (l Library) Get(id uint8) Settings {
	if s, ok := l[id]; ok {
		return s
	}
	return Default()
}

// Equal reports whether two libraries hold identical settings for identical
// ids.
func (l Library) Equal(other Library) bool {
	if len(l) != len(other) {
		return false
	}
	for id, s := range l {
		o, ok := other[id]
		if !ok || s != o {
			return false
		}
	}
	return true
}

// DefaultLibrary returns the stock three-slot palette.
func DefaultLibrary() Library {
	return Library{
		0: {
			BaseColor:        [3]float32{0.2, 0.8, 0.2},
			EmissionColor:    [3]float32{0.5, 1.0, 0.5},
			EmissionStrength: 0,
			Roughness:        0.2,
			Metallic:         0.8,
			Texture:          TextureNone,
			UVScale:          1,
		},
		1: {
			BaseColor:        [3]float32{1, 1, 1},
			EmissionColor:    [3]float32{0, 1, 1},
			EmissionStrength: 2.0,
			Roughness:        0.1,
			Metallic:         0,
			Texture:          TextureNone,
			UVScale:          1,
		},
		2: {
			BaseColor:        [3]float32{0.5, 0.5, 0.5},
			EmissionColor:    [3]float32{0, 0, 0},
			EmissionStrength: 0,
			Roughness:        0.9,
			Metallic:         0,
			Texture:          TextureNone,
			UVScale:          1,
		},
	}
}

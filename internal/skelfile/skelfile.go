// Package skelfile reads and writes strand skeleton documents in YAML.
package skelfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/strandmesh/pkg/math"
	"github.com/Faultbox/strandmesh/pkg/skeleton"
)

// Skeleton document errors.
var (
	ErrNoStrands   = errors.New("skeleton document has no strands")
	ErrShortStrand = errors.New("strand needs at least 2 points")
	ErrBadRadius   = errors.New("point radius must be positive")
)

// pointDoc is the YAML shape of a single skeleton point. Optional fields
// are pointers so omitted values fall back to their defaults: identity
// orientation, opaque white color and uv scale 1.
type pointDoc struct {
	Position    [3]float32  `yaml:"position,flow"`
	Orientation *[4]float32 `yaml:"orientation,flow"` // x y z w
	Radius      float32     `yaml:"radius"`
	Color       *[4]float32 `yaml:"color,flow"` // RGBA
	Material    uint8       `yaml:"material"`
	UVScale     *float32    `yaml:"uv_scale"`
}

type strandDoc struct {
	Points []pointDoc `yaml:"points"`
}

type document struct {
	Strands []strandDoc `yaml:"strands"`
}

// Parse decodes a skeleton document from YAML bytes.
func Parse(data []byte) (*skeleton.Skeleton, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding skeleton document: %w", err)
	}

	if len(doc.Strands) == 0 {
		return nil, ErrNoStrands
	}

	skel := &skeleton.Skeleton{Strands: make([]skeleton.Strand, 0, len(doc.Strands))}
	for si, sd := range doc.Strands {
		if len(sd.Points) < 2 {
			return nil, fmt.Errorf("strand %d: %w", si, ErrShortStrand)
		}

		strand := skeleton.Strand{Points: make([]skeleton.Point, 0, len(sd.Points))}
		for pi, pd := range sd.Points {
			point, err := pd.toPoint()
			if err != nil {
				return nil, fmt.Errorf("strand %d point %d: %w", si, pi, err)
			}
			strand.Points = append(strand.Points, point)
		}
		skel.Strands = append(skel.Strands, strand)
	}

	return skel, nil
}

// ParseFile decodes a skeleton document from disk.
func ParseFile(path string) (*skeleton.Skeleton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading skeleton file: %w", err)
	}
	return Parse(data)
}

func (pd pointDoc) toPoint() (skeleton.Point, error) {
	if pd.Radius <= 0 {
		return skeleton.Point{}, ErrBadRadius
	}

	point := skeleton.Point{
		Position:    math.Vec3{X: pd.Position[0], Y: pd.Position[1], Z: pd.Position[2]},
		Orientation: math.QuatIdentity(),
		Radius:      pd.Radius,
		Color:       math.Vec4{1, 1, 1, 1},
		MaterialID:  pd.Material,
		UVScale:     1,
	}

	if pd.Orientation != nil {
		q := math.Quat{
			X: pd.Orientation[0],
			Y: pd.Orientation[1],
			Z: pd.Orientation[2],
			W: pd.Orientation[3],
		}
		point.Orientation = q.Normalize()
	}
	if pd.Color != nil {
		point.Color = math.Vec4(*pd.Color)
	}
	if pd.UVScale != nil {
		point.UVScale = *pd.UVScale
	}

	return point, nil
}

// Marshal encodes a skeleton into YAML document form. Parsing the result
// yields the same skeleton back.
func Marshal(skel *skeleton.Skeleton) ([]byte, error) {
	doc := document{Strands: make([]strandDoc, 0, len(skel.Strands))}
	for _, strand := range skel.Strands {
		sd := strandDoc{Points: make([]pointDoc, 0, len(strand.Points))}
		for _, p := range strand.Points {
			orientation := [4]float32{p.Orientation.X, p.Orientation.Y, p.Orientation.Z, p.Orientation.W}
			color := [4]float32(p.Color)
			uvScale := p.UVScale
			sd.Points = append(sd.Points, pointDoc{
				Position:    [3]float32{p.Position.X, p.Position.Y, p.Position.Z},
				Orientation: &orientation,
				Radius:      p.Radius,
				Color:       &color,
				Material:    p.MaterialID,
				UVScale:     &uvScale,
			})
		}
		doc.Strands = append(doc.Strands, sd)
	}
	return yaml.Marshal(doc)
}

// WriteFile encodes a skeleton and writes it to disk.
func WriteFile(path string, skel *skeleton.Skeleton) error {
	data, err := Marshal(skel)
	if err != nil {
		return fmt.Errorf("encoding skeleton document: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

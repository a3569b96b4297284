package export

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/chewxy/math32"

	"github.com/Faultbox/strandmesh/pkg/material"
	"github.com/Faultbox/strandmesh/pkg/math"
	"github.com/Faultbox/strandmesh/pkg/tubemesh"
)

// GLB container constants, per glTF 2.0.
const (
	glbMagic   = 0x46546C67 // "glTF"
	glbVersion = 2
	chunkJSON  = 0x4E4F534A // "JSON"
	chunkBIN   = 0x004E4942 // "BIN\0"

	componentFloat  = 5126
	componentUint32 = 5125

	targetArrayBuffer  = 34962
	targetElementArray = 34963
)

const (
	generatorName  = "strandmesh"
	sceneName      = "Strands"
	emptySceneName = "Empty"
)

// Scene description document. Field order is the emitted key order.
type gltfDocument struct {
	Asset       gltfAsset        `json:"asset"`
	Scene       int              `json:"scene"`
	Scenes      []gltfScene      `json:"scenes"`
	Nodes       []gltfNode       `json:"nodes,omitempty"`
	Meshes      []gltfMesh       `json:"meshes,omitempty"`
	Materials   []gltfMaterial   `json:"materials,omitempty"`
	Accessors   []gltfAccessor   `json:"accessors,omitempty"`
	BufferViews []gltfBufferView `json:"bufferViews,omitempty"`
	Buffers     []gltfBuffer     `json:"buffers,omitempty"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

type gltfScene struct {
	Name  string `json:"name"`
	Nodes []int  `json:"nodes,omitempty"`
}

type gltfNode struct {
	Name string `json:"name"`
	Mesh int    `json:"mesh"`
}

type gltfMesh struct {
	Name       string          `json:"name"`
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	Attributes gltfAttributes `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   int            `json:"material"`
}

type gltfAttributes struct {
	Position int  `json:"POSITION"`
	Normal   *int `json:"NORMAL,omitempty"`
	Color    *int `json:"COLOR_0,omitempty"`
}

type gltfMaterial struct {
	Name     string     `json:"name"`
	PBR      gltfPBR    `json:"pbrMetallicRoughness"`
	Emissive [3]float32 `json:"emissiveFactor"`
}

type gltfPBR struct {
	BaseColorFactor [4]float32 `json:"baseColorFactor"`
	MetallicFactor  float32    `json:"metallicFactor"`
	RoughnessFactor float32    `json:"roughnessFactor"`
}

type gltfAccessor struct {
	BufferView    int       `json:"bufferView"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

type gltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target"`
}

type gltfBuffer struct {
	ByteLength int `json:"byteLength"`
}

// EncodeGLB serializes the buckets into a GLB container. One mesh, node and
// material is emitted per non-empty bucket, in ascending material id order;
// settings come from the library with defaults for unknown ids. Empty input
// yields a minimal container holding only an empty scene.
func EncodeGLB(buckets map[uint8]*tubemesh.MeshBucket, materials material.Library) ([]byte, error) {
	var ids []uint8
	for _, id := range sortedIDs(buckets) {
		if !buckets[id].IsEmpty() {
			ids = append(ids, id)
		}
	}

	doc := gltfDocument{
		Asset: gltfAsset{Version: "2.0", Generator: generatorName},
		Scene: 0,
	}
	if len(ids) == 0 {
		doc.Scenes = []gltfScene{{Name: emptySceneName}}
		return packGLB(doc, nil)
	}

	var bin []byte
	sceneNodes := make([]int, 0, len(ids))

	for meshIdx, id := range ids {
		mesh := buckets[id]
		s := materials.Get(id)

		doc.Materials = append(doc.Materials, gltfMaterial{
			Name: fmt.Sprintf("Material_%d", id),
			PBR: gltfPBR{
				BaseColorFactor: [4]float32{s.BaseColor[0], s.BaseColor[1], s.BaseColor[2], 1},
				MetallicFactor:  s.Metallic,
				RoughnessFactor: s.Roughness,
			},
			Emissive: emissiveFactor(s),
		})

		attrs := gltfAttributes{}

		min, max, _ := mesh.Bounds()
		var view int
		bin, view = appendView(&doc, bin, appendVec3s(nil, mesh.Positions), targetArrayBuffer)
		attrs.Position = appendAccessor(&doc, gltfAccessor{
			BufferView:    view,
			ComponentType: componentFloat,
			Count:         mesh.VertexCount(),
			Type:          "VEC3",
			Min:           []float32{min.X, min.Y, min.Z},
			Max:           []float32{max.X, max.Y, max.Z},
		})

		if len(mesh.Normals) > 0 {
			bin, view = appendView(&doc, bin, appendVec3s(nil, mesh.Normals), targetArrayBuffer)
			attrs.Normal = intPtr(appendAccessor(&doc, gltfAccessor{
				BufferView:    view,
				ComponentType: componentFloat,
				Count:         len(mesh.Normals),
				Type:          "VEC3",
			}))
		}

		if len(mesh.Colors) > 0 {
			bin, view = appendView(&doc, bin, appendVec4s(nil, mesh.Colors), targetArrayBuffer)
			attrs.Color = intPtr(appendAccessor(&doc, gltfAccessor{
				BufferView:    view,
				ComponentType: componentFloat,
				Count:         len(mesh.Colors),
				Type:          "VEC4",
			}))
		}

		var indices *int
		if len(mesh.Indices) > 0 {
			bin, view = appendView(&doc, bin, appendUint32s(nil, mesh.Indices), targetElementArray)
			indices = intPtr(appendAccessor(&doc, gltfAccessor{
				BufferView:    view,
				ComponentType: componentUint32,
				Count:         len(mesh.Indices),
				Type:          "SCALAR",
			}))
		}

		doc.Meshes = append(doc.Meshes, gltfMesh{
			Name: fmt.Sprintf("mesh_mat%d", id),
			Primitives: []gltfPrimitive{{
				Attributes: attrs,
				Indices:    indices,
				Material:   meshIdx,
			}},
		})
		doc.Nodes = append(doc.Nodes, gltfNode{
			Name: fmt.Sprintf("node_mat%d", id),
			Mesh: meshIdx,
		})
		sceneNodes = append(sceneNodes, meshIdx)
	}

	doc.Scenes = []gltfScene{{Name: sceneName, Nodes: sceneNodes}}
	doc.Buffers = []gltfBuffer{{ByteLength: len(bin)}}
	return packGLB(doc, bin)
}

// WriteGLB encodes the buckets and writes the container to w.
func WriteGLB(w io.Writer, buckets map[uint8]*tubemesh.MeshBucket, materials material.Library) error {
	data, err := EncodeGLB(buckets, materials)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// emissiveFactor scales the emission color by its strength, clamped per
// channel to the [0,1] the format allows.
func emissiveFactor(s material.Settings) [3]float32 {
	var e [3]float32
	for i := range e {
		v := s.EmissionColor[i] * s.EmissionStrength
		if v > 1 {
			v = 1
		}
		e[i] = v
	}
	return e
}

// appendView appends data to the binary buffer and registers a buffer view
// covering it, returning the grown buffer and the view index. Attribute
// streams are all multiples of four bytes, so views stay 4-byte aligned.
func appendView(doc *gltfDocument, bin, data []byte, target int) ([]byte, int) {
	offset := len(bin)
	bin = append(bin, data...)
	doc.BufferViews = append(doc.BufferViews, gltfBufferView{
		Buffer:     0,
		ByteOffset: offset,
		ByteLength: len(data),
		Target:     target,
	})
	return bin, len(doc.BufferViews) - 1
}

func appendAccessor(doc *gltfDocument, a gltfAccessor) int {
	doc.Accessors = append(doc.Accessors, a)
	return len(doc.Accessors) - 1
}

func intPtr(v int) *int {
	return &v
}

func appendUint32(b []byte, v uint32) []byte {
	var s [4]byte
	binary.LittleEndian.PutUint32(s[:], v)
	return append(b, s[:]...)
}

func appendFloat32(b []byte, v float32) []byte {
	return appendUint32(b, math32.Float32bits(v))
}

func appendVec3s(b []byte, vs []math.Vec3) []byte {
	for _, v := range vs {
		b = appendFloat32(b, v.X)
		b = appendFloat32(b, v.Y)
		b = appendFloat32(b, v.Z)
	}
	return b
}

func appendVec4s(b []byte, vs []math.Vec4) []byte {
	for _, v := range vs {
		for _, c := range v {
			b = appendFloat32(b, c)
		}
	}
	return b
}

func appendUint32s(b []byte, vs []uint32) []byte {
	for _, v := range vs {
		b = appendUint32(b, v)
	}
	return b
}

// packGLB wraps the scene description and binary payload in the GLB
// container: a 12-byte header, the space-padded JSON chunk, and a
// zero-padded BIN chunk only when a payload exists.
func packGLB(doc gltfDocument, bin []byte) ([]byte, error) {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode scene description: %w", err)
	}

	jsonPadded := (len(jsonBytes) + 3) &^ 3
	binPadded := (len(bin) + 3) &^ 3
	total := 12 + 8 + jsonPadded
	if len(bin) > 0 {
		total += 8 + binPadded
	}

	out := make([]byte, 0, total)
	out = appendUint32(out, glbMagic)
	out = appendUint32(out, glbVersion)
	out = appendUint32(out, uint32(total))

	out = appendUint32(out, uint32(jsonPadded))
	out = appendUint32(out, chunkJSON)
	out = append(out, jsonBytes...)
	for i := len(jsonBytes); i < jsonPadded; i++ {
		out = append(out, ' ')
	}

	if len(bin) > 0 {
		out = appendUint32(out, uint32(binPadded))
		out = appendUint32(out, chunkBIN)
		out = append(out, bin...)
		for i := len(bin); i < binPadded; i++ {
			out = append(out, 0)
		}
	}
	return out, nil
}

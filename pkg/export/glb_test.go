package export

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/strandmesh/pkg/material"
	"github.com/Faultbox/strandmesh/pkg/math"
	"github.com/Faultbox/strandmesh/pkg/tubemesh"
)

// parseGLB splits a container into its decoded scene document and binary
// payload, verifying the header and chunk layout along the way.
func parseGLB(t *testing.T, data []byte) (gltfDocument, []byte) {
	t.Helper()

	if len(data) < 20 {
		t.Fatalf("container too short: %d bytes", len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != glbMagic {
		t.Fatalf("magic = %#x, want %#x", magic, glbMagic)
	}
	if version := binary.LittleEndian.Uint32(data[4:8]); version != glbVersion {
		t.Fatalf("version = %d, want %d", version, glbVersion)
	}
	if total := binary.LittleEndian.Uint32(data[8:12]); int(total) != len(data) {
		t.Fatalf("declared length %d, actual %d", total, len(data))
	}

	jsonLen := binary.LittleEndian.Uint32(data[12:16])
	if tag := binary.LittleEndian.Uint32(data[16:20]); tag != chunkJSON {
		t.Fatalf("first chunk tag = %#x, want JSON", tag)
	}
	if jsonLen%4 != 0 {
		t.Fatalf("JSON chunk length %d not 4-byte aligned", jsonLen)
	}
	jsonEnd := 20 + int(jsonLen)
	if jsonEnd > len(data) {
		t.Fatalf("JSON chunk overruns container")
	}

	var doc gltfDocument
	if err := json.Unmarshal(bytes.TrimRight(data[20:jsonEnd], " "), &doc); err != nil {
		t.Fatalf("scene description does not parse: %v", err)
	}

	if jsonEnd == len(data) {
		return doc, nil
	}

	binLen := binary.LittleEndian.Uint32(data[jsonEnd : jsonEnd+4])
	if tag := binary.LittleEndian.Uint32(data[jsonEnd+4 : jsonEnd+8]); tag != chunkBIN {
		t.Fatalf("second chunk tag = %#x, want BIN", tag)
	}
	if binLen%4 != 0 {
		t.Fatalf("BIN chunk length %d not 4-byte aligned", binLen)
	}
	binStart := jsonEnd + 8
	if binStart+int(binLen) != len(data) {
		t.Fatalf("BIN chunk length %d does not close the container", binLen)
	}
	return doc, data[binStart:]
}

func TestEncodeGLBSingleBucket(t *testing.T) {
	buckets := map[uint8]*tubemesh.MeshBucket{0: triBucket(math.Vec4{1, 0, 0, 1})}

	data, err := EncodeGLB(buckets, material.DefaultLibrary())
	if err != nil {
		t.Fatalf("EncodeGLB() error: %v", err)
	}
	doc, bin := parseGLB(t, data)

	if doc.Asset.Version != "2.0" {
		t.Errorf("asset version = %q, want \"2.0\"", doc.Asset.Version)
	}
	if doc.Scene != 0 || len(doc.Scenes) != 1 {
		t.Fatalf("scene layout wrong: scene=%d scenes=%d", doc.Scene, len(doc.Scenes))
	}
	if len(doc.Scenes[0].Nodes) != 1 || doc.Scenes[0].Nodes[0] != 0 {
		t.Errorf("scene nodes = %v, want [0]", doc.Scenes[0].Nodes)
	}

	if len(doc.Nodes) != 1 || doc.Nodes[0].Name != "node_mat0" || doc.Nodes[0].Mesh != 0 {
		t.Errorf("nodes = %+v, want one node_mat0 referencing mesh 0", doc.Nodes)
	}
	if len(doc.Meshes) != 1 || doc.Meshes[0].Name != "mesh_mat0" {
		t.Fatalf("meshes = %+v, want one mesh_mat0", doc.Meshes)
	}

	prim := doc.Meshes[0].Primitives[0]
	if prim.Attributes.Position != 0 {
		t.Errorf("POSITION accessor = %d, want 0", prim.Attributes.Position)
	}
	if prim.Attributes.Normal == nil || *prim.Attributes.Normal != 1 {
		t.Errorf("NORMAL accessor = %v, want 1", prim.Attributes.Normal)
	}
	if prim.Attributes.Color == nil || *prim.Attributes.Color != 2 {
		t.Errorf("COLOR_0 accessor = %v, want 2", prim.Attributes.Color)
	}
	if prim.Indices == nil || *prim.Indices != 3 {
		t.Errorf("indices accessor = %v, want 3", prim.Indices)
	}
	if prim.Material != 0 {
		t.Errorf("material = %d, want 0", prim.Material)
	}

	if len(doc.Accessors) != 4 {
		t.Fatalf("accessors = %d, want 4", len(doc.Accessors))
	}
	pos := doc.Accessors[0]
	if pos.ComponentType != componentFloat || pos.Type != "VEC3" || pos.Count != 3 {
		t.Errorf("position accessor = %+v", pos)
	}
	if len(pos.Min) != 3 || len(pos.Max) != 3 {
		t.Fatalf("position accessor missing bounds: %+v", pos)
	}
	if pos.Min[0] != 0 || pos.Max[0] != 1 || pos.Max[1] != 1 {
		t.Errorf("position bounds min=%v max=%v", pos.Min, pos.Max)
	}
	if doc.Accessors[2].Type != "VEC4" {
		t.Errorf("color accessor type = %q, want VEC4", doc.Accessors[2].Type)
	}
	idx := doc.Accessors[3]
	if idx.ComponentType != componentUint32 || idx.Type != "SCALAR" || idx.Count != 3 {
		t.Errorf("index accessor = %+v", idx)
	}

	if len(doc.BufferViews) != 4 {
		t.Fatalf("bufferViews = %d, want 4", len(doc.BufferViews))
	}
	for i, view := range doc.BufferViews {
		wantTarget := targetArrayBuffer
		if i == 3 {
			wantTarget = targetElementArray
		}
		if view.Target != wantTarget {
			t.Errorf("view %d target = %d, want %d", i, view.Target, wantTarget)
		}
		if view.ByteOffset%4 != 0 {
			t.Errorf("view %d offset %d not aligned", i, view.ByteOffset)
		}
	}

	// 3 positions + 3 normals + 3 colors + 3 indices.
	wantBin := 3*12 + 3*12 + 3*16 + 3*4
	if len(doc.Buffers) != 1 || doc.Buffers[0].ByteLength != wantBin {
		t.Errorf("buffers = %+v, want byteLength %d", doc.Buffers, wantBin)
	}
	if len(bin) != wantBin {
		t.Errorf("BIN payload = %d bytes, want %d", len(bin), wantBin)
	}

	// Second vertex starts at byte 12 and is (1,0,0).
	x := math32.Float32frombits(binary.LittleEndian.Uint32(bin[12:16]))
	if x != 1 {
		t.Errorf("second vertex X = %v, want 1", x)
	}
}

func TestEncodeGLBEmpty(t *testing.T) {
	data, err := EncodeGLB(nil, nil)
	if err != nil {
		t.Fatalf("EncodeGLB() error: %v", err)
	}
	doc, bin := parseGLB(t, data)

	if bin != nil {
		t.Errorf("empty container has a BIN chunk of %d bytes", len(bin))
	}
	if len(doc.Scenes) != 1 || doc.Scenes[0].Name != "Empty" {
		t.Errorf("scenes = %+v, want single Empty scene", doc.Scenes)
	}
	if len(doc.Scenes[0].Nodes) != 0 || len(doc.Meshes) != 0 || len(doc.Buffers) != 0 {
		t.Errorf("empty container carries content: %+v", doc)
	}

	// Buckets that exist but hold no geometry also produce the empty form.
	data2, err := EncodeGLB(map[uint8]*tubemesh.MeshBucket{4: {}}, nil)
	if err != nil {
		t.Fatalf("EncodeGLB() error: %v", err)
	}
	doc2, _ := parseGLB(t, data2)
	if len(doc2.Meshes) != 0 {
		t.Errorf("empty bucket produced %d meshes", len(doc2.Meshes))
	}
}

func TestEncodeGLBMaterials(t *testing.T) {
	buckets := map[uint8]*tubemesh.MeshBucket{1: triBucket(math.Vec4{1, 1, 1, 1})}
	lib := material.Library{1: {
		BaseColor:        [3]float32{0.2, 0.8, 0.2},
		EmissionColor:    [3]float32{0.5, 1, 0.25},
		EmissionStrength: 2,
		Roughness:        0.3,
		Metallic:         0.7,
		UVScale:          1,
	}}

	data, err := EncodeGLB(buckets, lib)
	if err != nil {
		t.Fatalf("EncodeGLB() error: %v", err)
	}
	doc, _ := parseGLB(t, data)

	if len(doc.Materials) != 1 {
		t.Fatalf("materials = %d, want 1", len(doc.Materials))
	}
	mat := doc.Materials[0]
	if mat.Name != "Material_1" {
		t.Errorf("material name = %q, want Material_1", mat.Name)
	}
	if mat.PBR.BaseColorFactor != [4]float32{0.2, 0.8, 0.2, 1} {
		t.Errorf("baseColorFactor = %v", mat.PBR.BaseColorFactor)
	}
	if mat.PBR.MetallicFactor != 0.7 || mat.PBR.RoughnessFactor != 0.3 {
		t.Errorf("metallic/roughness = %v/%v", mat.PBR.MetallicFactor, mat.PBR.RoughnessFactor)
	}
	// Emission doubled then clamped per channel.
	if mat.Emissive != [3]float32{1, 1, 0.5} {
		t.Errorf("emissiveFactor = %v, want [1 1 0.5]", mat.Emissive)
	}
}

func TestEncodeGLBUnknownMaterialUsesDefault(t *testing.T) {
	buckets := map[uint8]*tubemesh.MeshBucket{9: triBucket(math.Vec4{1, 1, 1, 1})}

	data, err := EncodeGLB(buckets, material.Library{})
	if err != nil {
		t.Fatalf("EncodeGLB() error: %v", err)
	}
	doc, _ := parseGLB(t, data)

	def := material.Default()
	mat := doc.Materials[0]
	if mat.PBR.BaseColorFactor != [4]float32{1, 1, 1, 1} {
		t.Errorf("baseColorFactor = %v, want opaque white", mat.PBR.BaseColorFactor)
	}
	if mat.PBR.RoughnessFactor != def.Roughness {
		t.Errorf("roughnessFactor = %v, want %v", mat.PBR.RoughnessFactor, def.Roughness)
	}
	if mat.Emissive != [3]float32{0, 0, 0} {
		t.Errorf("emissiveFactor = %v, want zero", mat.Emissive)
	}
}

func TestEncodeGLBMultipleBuckets(t *testing.T) {
	buckets := map[uint8]*tubemesh.MeshBucket{
		3: triBucket(math.Vec4{0, 0, 1, 1}),
		1: triBucket(math.Vec4{1, 0, 0, 1}),
	}

	data, err := EncodeGLB(buckets, material.DefaultLibrary())
	if err != nil {
		t.Fatalf("EncodeGLB() error: %v", err)
	}
	doc, bin := parseGLB(t, data)

	if len(doc.Meshes) != 2 || len(doc.Nodes) != 2 || len(doc.Materials) != 2 {
		t.Fatalf("meshes/nodes/materials = %d/%d/%d, want 2 each",
			len(doc.Meshes), len(doc.Nodes), len(doc.Materials))
	}
	// Ascending material id order.
	if doc.Meshes[0].Name != "mesh_mat1" || doc.Meshes[1].Name != "mesh_mat3" {
		t.Errorf("mesh order = %q, %q", doc.Meshes[0].Name, doc.Meshes[1].Name)
	}
	if doc.Meshes[1].Primitives[0].Material != 1 {
		t.Errorf("second mesh material = %d, want 1", doc.Meshes[1].Primitives[0].Material)
	}
	if len(doc.Scenes[0].Nodes) != 2 {
		t.Errorf("scene nodes = %v, want two", doc.Scenes[0].Nodes)
	}

	if len(doc.BufferViews) != 8 {
		t.Fatalf("bufferViews = %d, want 8", len(doc.BufferViews))
	}
	offset := 0
	for i, view := range doc.BufferViews {
		if view.ByteOffset != offset {
			t.Errorf("view %d offset = %d, want %d (views must pack contiguously)",
				i, view.ByteOffset, offset)
		}
		offset += view.ByteLength
	}
	if offset != len(bin) {
		t.Errorf("views cover %d bytes, payload is %d", offset, len(bin))
	}
}

func TestWriteGLBMatchesEncode(t *testing.T) {
	buckets := map[uint8]*tubemesh.MeshBucket{0: triBucket(math.Vec4{1, 1, 1, 1})}

	want, err := EncodeGLB(buckets, nil)
	if err != nil {
		t.Fatalf("EncodeGLB() error: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteGLB(&buf, buckets, nil); err != nil {
		t.Fatalf("WriteGLB() error: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Error("WriteGLB() output differs from EncodeGLB()")
	}
}

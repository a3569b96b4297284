package math

import "testing"

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 || m[12] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTranslateCompose(t *testing.T) {
	m := Translate(1, 0, 0).Mul(Translate(0, 2, 0))
	p := m.TransformVec3(Vec3{})

	want := Vec3{X: 1, Y: 2, Z: 0}
	if p != want {
		t.Errorf("composed translation moved origin to %v, want %v", p, want)
	}
}

func TestTransformVec3(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformVec3(Vec3{X: 1, Y: 2, Z: 3})

	want := Vec3{X: 11, Y: 22, Z: 33}
	if result != want {
		t.Errorf("TransformVec3: got %v, want %v", result, want)
	}
}

func TestTransformVec3Projective(t *testing.T) {
	// A matrix with w = 2 for every input point must divide through.
	m := Identity()
	m[15] = 2
	result := m.TransformVec3(Vec3{X: 4, Y: 6, Z: 8})

	want := Vec3{X: 2, Y: 3, Z: 4}
	if result != want {
		t.Errorf("TransformVec3 with w=2: got %v, want %v", result, want)
	}
}

func TestTransformDirection(t *testing.T) {
	m := Translate(10, 20, 30)
	result := m.TransformDirection(Vec3{X: 1, Y: 2, Z: 3})

	// Directions ignore translation entirely.
	want := Vec3{X: 1, Y: 2, Z: 3}
	if result != want {
		t.Errorf("TransformDirection: got %v, want %v", result, want)
	}
}

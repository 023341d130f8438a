// Package xform has the 4x4 affine transforms used to generate
// symmetry copies. Rows 0 to 2 hold the rotation and, in the last
// column, the translation. Row 3 is 0 0 0 1. A Matrix4 is a value.
// Composition returns a new value and leaves the operands alone.
package xform

// 11 Mar 2026

import (
	"github.com/andrew-torda/bioassembly/structure"
)

// Matrix4 is a 4x4 affine transform, row major.
type Matrix4 [4][4]float64

// Ident returns the identity transform.
func Ident() Matrix4 {
	var m Matrix4
	m[0][0], m[1][1], m[2][2], m[3][3] = 1, 1, 1, 1
	return m
}

// Translate returns a pure translation.
func Translate(x, y, z float64) Matrix4 {
	m := Ident()
	m[0][3], m[1][3], m[2][3] = x, y, z
	return m
}

// New builds a transform from nine rotation components, row by row,
// and three translation components.
func New(rot [9]float64, trans [3]float64) Matrix4 {
	var m Matrix4
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m[i][j] = rot[3*i+j]
		}
		m[i][3] = trans[i]
	}
	m[3][3] = 1
	return m
}

// Mul returns m * n. Applied to a point, n acts first, then m.
// The order is fixed by the file format's composed operators and must
// not be swapped.
func (m Matrix4) Mul(n Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * n[k][j]
			}
			r[i][j] = sum
		}
	}
	return r
}

// Apply transforms one coordinate, rotation then translation.
func (m Matrix4) Apply(p structure.Xyz) structure.Xyz {
	x, y, z := float64(p.X), float64(p.Y), float64(p.Z)
	return structure.Xyz{
		X: float32(m[0][0]*x + m[0][1]*y + m[0][2]*z + m[0][3]),
		Y: float32(m[1][0]*x + m[1][1]*y + m[1][2]*z + m[1][3]),
		Z: float32(m[2][0]*x + m[2][1]*y + m[2][2]*z + m[2][3]),
	}
}

// ApplySl transforms a whole coordinate slice in place. Callers apply
// it to clones, never to the source structure.
func (m Matrix4) ApplySl(sl structure.XyzSl) {
	for i := range sl {
		sl[i] = m.Apply(sl[i])
	}
}

// IsIdent says if a transform is the identity to within tol. Handy
// for deciding whether copy zero is just the asymmetric unit again.
func (m Matrix4) IsIdent(tol float64) bool {
	id := Ident()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d := m[i][j] - id[i][j]
			if d > tol || -d > tol {
				return false
			}
		}
	}
	return true
}

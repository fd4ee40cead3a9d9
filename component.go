// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gsl

import "github.com/gogpu/gsl/ir"

// Reading a component builds a Component node and folds it, so a constant
// vector yields the component's literal itself. Writing one rebuilds
// the whole aggregate (per spec.md §4.2: the vector's node is replaced by a
// fresh Construct whose other slots read the old aggregate's components),
// which is why Set* methods take a pointer receiver — they replace the
// wrapper's node field in place rather than returning a new value.

// X returns the first component.
func (v Vec2) X() F32 { return F32{n: fold(ir.Component(0, v.n))} }

// Y returns the second component.
func (v Vec2) Y() F32 { return F32{n: fold(ir.Component(1, v.n))} }

// SetX replaces the first component, rebuilding the vector.
func (v *Vec2) SetX(x F32) { v.n = fold(ir.Construct(ir.OpVec2, x.n, ir.Component(1, v.n))) }

// SetY replaces the second component, rebuilding the vector.
func (v *Vec2) SetY(y F32) { v.n = fold(ir.Construct(ir.OpVec2, ir.Component(0, v.n), y.n)) }

// X returns the first component.
func (v Vec3) X() F32 { return F32{n: fold(ir.Component(0, v.n))} }

// Y returns the second component.
func (v Vec3) Y() F32 { return F32{n: fold(ir.Component(1, v.n))} }

// Z returns the third component.
func (v Vec3) Z() F32 { return F32{n: fold(ir.Component(2, v.n))} }

// SetX replaces the first component, rebuilding the vector.
func (v *Vec3) SetX(x F32) {
	v.n = fold(ir.Construct(ir.OpVec3, x.n, ir.Component(1, v.n), ir.Component(2, v.n)))
}

// SetY replaces the second component, rebuilding the vector.
func (v *Vec3) SetY(y F32) {
	v.n = fold(ir.Construct(ir.OpVec3, ir.Component(0, v.n), y.n, ir.Component(2, v.n)))
}

// SetZ replaces the third component, rebuilding the vector.
func (v *Vec3) SetZ(z F32) {
	v.n = fold(ir.Construct(ir.OpVec3, ir.Component(0, v.n), ir.Component(1, v.n), z.n))
}

// X returns the first component.
func (v Vec4) X() F32 { return F32{n: fold(ir.Component(0, v.n))} }

// Y returns the second component.
func (v Vec4) Y() F32 { return F32{n: fold(ir.Component(1, v.n))} }

// Z returns the third component.
func (v Vec4) Z() F32 { return F32{n: fold(ir.Component(2, v.n))} }

// W returns the fourth component.
func (v Vec4) W() F32 { return F32{n: fold(ir.Component(3, v.n))} }

// SetX replaces the first component, rebuilding the vector.
func (v *Vec4) SetX(x F32) {
	v.n = fold(ir.Construct(ir.OpVec4, x.n, ir.Component(1, v.n), ir.Component(2, v.n), ir.Component(3, v.n)))
}

// SetY replaces the second component, rebuilding the vector.
func (v *Vec4) SetY(y F32) {
	v.n = fold(ir.Construct(ir.OpVec4, ir.Component(0, v.n), y.n, ir.Component(2, v.n), ir.Component(3, v.n)))
}

// SetZ replaces the third component, rebuilding the vector.
func (v *Vec4) SetZ(z F32) {
	v.n = fold(ir.Construct(ir.OpVec4, ir.Component(0, v.n), ir.Component(1, v.n), z.n, ir.Component(3, v.n)))
}

// SetW replaces the fourth component, rebuilding the vector.
func (v *Vec4) SetW(w F32) {
	v.n = fold(ir.Construct(ir.OpVec4, ir.Component(0, v.n), ir.Component(1, v.n), ir.Component(2, v.n), w.n))
}

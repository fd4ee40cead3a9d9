// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gsl

import "github.com/gogpu/gsl/ir"

// Value is any front-end wrapper type that carries an ir.Node: the argument
// type accepted by Builder.Output and the operand type every arithmetic
// method works in terms of.
type Value interface {
	node() *ir.Node
	elem() ir.Opcode
}

// fold runs n through the constant folder and panics with a *TranslateError
// if it encounters an unsupported constant form. Every constructor and
// operator on the wrapper types below routes through fold, mirroring
// spec.md §4.2's "folding is invoked on every node built by the front-end".
func fold(n *ir.Node) *ir.Node {
	folded, err := ir.Fold(n)
	if err != nil {
		panic(&TranslateError{Err: err})
	}
	return folded
}

// F32 is a scalar float wrapper.
type F32 struct{ n *ir.Node }

func (v F32) node() *ir.Node  { return v.n }
func (v F32) elem() ir.Opcode { return ir.OpFloat32 }

// F32Const builds a constant scalar.
func F32Const(x float32) F32 {
	return F32{n: fold(ir.Construct(ir.OpFloat32, ir.Float(x)))}
}

func (a F32) Add(b F32) F32 { return F32{n: fold(ir.Binary(ir.OpAdd, a.n, b.n))} }
func (a F32) Sub(b F32) F32 { return F32{n: fold(ir.Binary(ir.OpSub, a.n, b.n))} }
func (a F32) Mul(b F32) F32 { return F32{n: fold(ir.Binary(ir.OpMul, a.n, b.n))} }
func (a F32) Div(b F32) F32 { return F32{n: fold(ir.Binary(ir.OpDiv, a.n, b.n))} }

// Vec2 is a two-component float vector.
type Vec2 struct{ n *ir.Node }

func (v Vec2) node() *ir.Node  { return v.n }
func (v Vec2) elem() ir.Opcode { return ir.OpVec2 }

// Vec2Const builds a constant vector from constant components.
func Vec2Const(x, y float32) Vec2 {
	return Vec2{n: fold(ir.Construct(ir.OpVec2, ir.Float(x), ir.Float(y)))}
}

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{n: fold(ir.Binary(ir.OpAdd, a.n, b.n))} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{n: fold(ir.Binary(ir.OpSub, a.n, b.n))} }
func (a Vec2) Mul(b Vec2) Vec2 { return Vec2{n: fold(ir.Binary(ir.OpMul, a.n, b.n))} }
func (a Vec2) Div(b Vec2) Vec2 { return Vec2{n: fold(ir.Binary(ir.OpDiv, a.n, b.n))} }

// Vec3 is a three-component float vector.
type Vec3 struct{ n *ir.Node }

func (v Vec3) node() *ir.Node  { return v.n }
func (v Vec3) elem() ir.Opcode { return ir.OpVec3 }

// Vec3Const builds a constant vector from constant components.
func Vec3Const(x, y, z float32) Vec3 {
	return Vec3{n: fold(ir.Construct(ir.OpVec3, ir.Float(x), ir.Float(y), ir.Float(z)))}
}

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{n: fold(ir.Binary(ir.OpAdd, a.n, b.n))} }
func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{n: fold(ir.Binary(ir.OpSub, a.n, b.n))} }
func (a Vec3) Mul(b Vec3) Vec3 { return Vec3{n: fold(ir.Binary(ir.OpMul, a.n, b.n))} }
func (a Vec3) Div(b Vec3) Vec3 { return Vec3{n: fold(ir.Binary(ir.OpDiv, a.n, b.n))} }

// Vec4 is a four-component float vector.
type Vec4 struct{ n *ir.Node }

func (v Vec4) node() *ir.Node  { return v.n }
func (v Vec4) elem() ir.Opcode { return ir.OpVec4 }

// Vec4Const builds a constant vector from constant components.
func Vec4Const(x, y, z, w float32) Vec4 {
	return Vec4{n: fold(ir.Construct(ir.OpVec4, ir.Float(x), ir.Float(y), ir.Float(z), ir.Float(w)))}
}

// NewVec4FromVec3 builds a Vec4 from a Vec3 and a trailing scalar, the
// mixed constructor the original exposes as vec4(const vec3&, f32).
func NewVec4FromVec3(v Vec3, w F32) Vec4 {
	return Vec4{n: fold(ir.Construct(ir.OpVec4, v.n, w.n))}
}

// NewVec4FromVec2 builds a Vec4 from a Vec2 and two trailing scalars, the
// mixed constructor the original exposes as vec4(const vec2&, float, float).
func NewVec4FromVec2(v Vec2, z, w F32) Vec4 {
	return Vec4{n: fold(ir.Construct(ir.OpVec4, v.n, z.n, w.n))}
}

func (a Vec4) Add(b Vec4) Vec4 { return Vec4{n: fold(ir.Binary(ir.OpAdd, a.n, b.n))} }
func (a Vec4) Sub(b Vec4) Vec4 { return Vec4{n: fold(ir.Binary(ir.OpSub, a.n, b.n))} }
func (a Vec4) Mul(b Vec4) Vec4 { return Vec4{n: fold(ir.Binary(ir.OpMul, a.n, b.n))} }
func (a Vec4) Div(b Vec4) Vec4 { return Vec4{n: fold(ir.Binary(ir.OpDiv, a.n, b.n))} }

// Mat3 is a 3x3 float matrix, opaque beyond construction and arithmetic:
// there is no component-level access for matrices.
type Mat3 struct{ n *ir.Node }

func (v Mat3) node() *ir.Node  { return v.n }
func (v Mat3) elem() ir.Opcode { return ir.OpMat3 }

func (a Mat3) Add(b Mat3) Mat3 { return Mat3{n: fold(ir.Binary(ir.OpAdd, a.n, b.n))} }
func (a Mat3) Sub(b Mat3) Mat3 { return Mat3{n: fold(ir.Binary(ir.OpSub, a.n, b.n))} }
func (a Mat3) Mul(b Mat3) Mat3 { return Mat3{n: fold(ir.Binary(ir.OpMul, a.n, b.n))} }

// Mat4 is a 4x4 float matrix.
type Mat4 struct{ n *ir.Node }

func (v Mat4) node() *ir.Node  { return v.n }
func (v Mat4) elem() ir.Opcode { return ir.OpMat4 }

func (a Mat4) Add(b Mat4) Mat4 { return Mat4{n: fold(ir.Binary(ir.OpAdd, a.n, b.n))} }
func (a Mat4) Sub(b Mat4) Mat4 { return Mat4{n: fold(ir.Binary(ir.OpSub, a.n, b.n))} }

// Mul chains matrix multiplication (model/view/projection composition).
func (a Mat4) Mul(b Mat4) Mat4 { return Mat4{n: fold(ir.Binary(ir.OpMul, a.n, b.n))} }

// MulVec4 transforms v by the matrix, producing the original's canonical
// mat4 * vec4 use (clip-space position from a model-view-projection chain).
func (a Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{n: fold(ir.Binary(ir.OpMul, a.n, v.n))}
}

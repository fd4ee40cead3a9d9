// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gsl

import (
	"github.com/gogpu/gsl/glsl"
	"github.com/gogpu/gsl/ir"
)

// Stage selects which shader stage a ShaderFunc is being translated for. It
// governs exactly one rule: the vertex intrinsic (Builder.Position) is only
// legal when Stage is StageVertex.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageCompute:
		return "compute"
	default:
		return "unknown stage"
	}
}

// Builder is the Go-native stand-in for the original's reflectively
// default-constructed argument pack: every input, output, push-constant
// member and the vertex intrinsic are bound explicitly through its methods.
// A Builder is created fresh per Translate call and never shared, so
// translation stays a pure function of (shader procedure, stage).
type Builder struct {
	stage Stage

	outputs     []*ir.Node
	outputInfos []glsl.OutputInfo
	usedOutputs map[int]bool

	pcNextMember int
	pcOffset     uint32

	positionSet bool
	position    *ir.Node
}

func newBuilder(stage Stage) *Builder {
	return &Builder{stage: stage, usedOutputs: make(map[int]bool)}
}

// InputF32 declares a scalar input at binding.
func (b *Builder) InputF32(binding int) F32 {
	return F32{n: ir.LayoutInput(ir.OpFloat32, binding)}
}

// InputVec2 declares a two-component vector input at binding.
func (b *Builder) InputVec2(binding int) Vec2 {
	return Vec2{n: ir.LayoutInput(ir.OpVec2, binding)}
}

// InputVec3 declares a three-component vector input at binding.
func (b *Builder) InputVec3(binding int) Vec3 {
	return Vec3{n: ir.LayoutInput(ir.OpVec3, binding)}
}

// InputVec4 declares a four-component vector input at binding.
func (b *Builder) InputVec4(binding int) Vec4 {
	return Vec4{n: ir.LayoutInput(ir.OpVec4, binding)}
}

// Output declares v as the shader's output at binding. Declaring the same
// binding twice is fatal (spec.md §4.1).
func (b *Builder) Output(binding int, v Value) {
	if b.usedOutputs[binding] {
		panic(&TranslateError{Stage: b.stage, Binding: binding, Msg: "duplicate output binding"})
	}
	b.usedOutputs[binding] = true
	b.outputs = append(b.outputs, fold(ir.LayoutOutput(binding, v.node())))
	b.outputInfos = append(b.outputInfos, glsl.OutputInfo{Binding: binding, Elem: v.elem()})
}

// Position declares v as the vertex stage's clip-space position (gl_Position).
// Legal only in StageVertex, and only once per shader (spec.md §4.5).
func (b *Builder) Position(v Vec4) {
	if b.stage != StageVertex {
		panic(&TranslateError{Stage: b.stage, Msg: "vertex intrinsic used outside the vertex stage"})
	}
	if b.positionSet {
		panic(&TranslateError{Stage: b.stage, Msg: "vertex intrinsic declared more than once"})
	}
	b.positionSet = true
	b.position = fold(ir.GlPosition(v.node()))
}

// PushConstants returns the handle for declaring push-constant members. The
// handle shares the Builder's running member-index/byte-offset state, so
// calling PushConstants more than once still appends to the single logical
// block the original exposes per shader.
func (b *Builder) PushConstants() *PushConstantBlock {
	return &PushConstantBlock{b: b}
}

// PushConstantBlock declares typed members of a shader's single push-constant
// block, advancing a running byte offset per the GPU-layout size table
// (ir.GPULayoutSize) as each member is declared.
type PushConstantBlock struct{ b *Builder }

func (p *PushConstantBlock) member(elem ir.Opcode) *ir.Node {
	size, err := ir.GPULayoutSize(elem)
	if err != nil {
		panic(&TranslateError{Stage: p.b.stage, Opcode: elem, Err: err})
	}
	n := ir.PushConstants(elem, p.b.pcNextMember, p.b.pcOffset)
	p.b.pcNextMember++
	p.b.pcOffset += size
	return n
}

// F32 declares the next push-constant member as a scalar.
func (p *PushConstantBlock) F32() F32 { return F32{n: p.member(ir.OpFloat32)} }

// Vec2 declares the next push-constant member as a two-component vector.
func (p *PushConstantBlock) Vec2() Vec2 { return Vec2{n: p.member(ir.OpVec2)} }

// Vec3 declares the next push-constant member as a three-component vector.
func (p *PushConstantBlock) Vec3() Vec3 { return Vec3{n: p.member(ir.OpVec3)} }

// Vec4 declares the next push-constant member as a four-component vector.
func (p *PushConstantBlock) Vec4() Vec4 { return Vec4{n: p.member(ir.OpVec4)} }

// Mat3 declares the next push-constant member as a 3x3 matrix.
func (p *PushConstantBlock) Mat3() Mat3 { return Mat3{n: p.member(ir.OpMat3)} }

// Mat4 declares the next push-constant member as a 4x4 matrix.
func (p *PushConstantBlock) Mat4() Mat4 { return Mat4{n: p.member(ir.OpMat4)} }

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/gsl/ir"
)

// typeNames maps opcodes to their GLSL type spelling.
var typeNames = map[ir.Opcode]string{
	ir.OpInt32:   "int",
	ir.OpFloat32: "float",
	ir.OpVec2:    "vec2",
	ir.OpVec3:    "vec3",
	ir.OpVec4:    "vec4",
	ir.OpMat3:    "mat3",
	ir.OpMat4:    "mat4",
}

// typeString returns the GLSL spelling of elem, or an error if elem cannot
// be mapped to a GLSL type.
func typeString(elem ir.Opcode) (string, error) {
	name, ok := typeNames[elem]
	if !ok {
		return "", fmt.Errorf("glsl: unmappable type %s", elem)
	}
	return name, nil
}

// pushConstantSize returns the GPU-layout size of elem for push-constant
// packing, or an error if elem has no defined size. The table itself lives
// in ir.GPULayoutSize so the front-end (advancing a block's running offset)
// and this backend (computing padding between members) never disagree.
func pushConstantSize(elem ir.Opcode) (uint32, error) {
	return ir.GPULayoutSize(elem)
}

// componentSuffixes names the .x/.y/.z/.w accessors by index.
var componentSuffixes = [4]string{".x", ".y", ".z", ".w"}

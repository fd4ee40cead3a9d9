package ir

import "fmt"

// gpuLayoutSize is the GPU-layout size, in bytes, of types usable in a
// push-constant block. Vec3's 12-byte entry ignores std140/std430 alignment
// caveats, matching the original implementation's treatment (see spec's
// Open Questions).
var gpuLayoutSize = map[Opcode]uint32{
	OpFloat32: 4,
	OpVec2:    8,
	OpVec3:    12,
	OpVec4:    16,
	OpMat3:    48,
	OpMat4:    64,
}

// GPULayoutSize returns the push-constant packing size of elem, or an error
// if elem has no defined size. It is the single source of truth for the
// size table shared by the front-end (advancing a push-constant block's
// running offset as members are registered) and the glsl backend (computing
// padding between members).
func GPULayoutSize(elem Opcode) (uint32, error) {
	size, ok := gpuLayoutSize[elem]
	if !ok {
		return 0, fmt.Errorf("ir: %s has no defined push-constant layout size", elem)
	}
	return size, nil
}

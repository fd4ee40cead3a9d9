// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package glsl is the code generator: it visits a compressed ir.DAG, emits
// typed intermediate statements, collects input/output/push-constant usage,
// and assembles the final GLSL-450 shader source string.
//
// # Basic usage
//
//	source, err := glsl.Generate(dag, outputs)
//
// outputs supplies, for each used output binding, the element-type opcode
// the code generator cannot otherwise recover from the IR (LayoutOutput
// nodes only carry the binding, not the type — see ir.LayoutOutput).
//
// # Output shape
//
// The output is a "#version 450" header, ordered input/output/push-constant
// declarations, then "void main() { ... }". Identifier naming is fixed:
// temporaries _v<n>, inputs _lin<binding>, outputs _lout<binding>, the
// push-constant block instance _pc, its members m<index>, and padding
// members _off<offset>.
package glsl

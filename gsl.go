// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package gsl is the front-end and stage-dispatch entry point: operator-
// overload-equivalent wrapper types (F32, Vec2, Vec3, Vec4, Mat3, Mat4), a
// Builder that binds a shader procedure's inputs/outputs/push-constants, and
// Translate, which runs a procedure, compresses the resulting IR tree into a
// DAG, and lowers it to GLSL-450 source text.
package gsl

import (
	"fmt"

	"github.com/gogpu/gsl/glsl"
	"github.com/gogpu/gsl/ir"
)

// TranslateError is returned by Translate (and wraps any error surfaced
// during translation) when a shader procedure hits a fatal condition:
// a structural invariant violation, a duplicate binding, or an unsupported
// constant form reaching the folder. Stage, Opcode and Binding are optional
// context fields, populated where known at the point of failure.
type TranslateError struct {
	Stage   Stage
	Opcode  ir.Opcode
	Binding int
	Msg     string
	Err     error
}

func (e *TranslateError) Error() string {
	detail := e.Msg
	if detail == "" && e.Err != nil {
		detail = e.Err.Error()
	}
	return fmt.Sprintf("gsl: translation failed at stage %s: %s", e.Stage, detail)
}

func (e *TranslateError) Unwrap() error { return e.Err }

// ShaderFunc is a shader procedure: it receives a fresh Builder and declares
// its inputs, outputs, push-constants and (for a vertex shader) the clip-
// space position through the Builder's methods.
type ShaderFunc func(b *Builder)

// Translate runs fn for the given stage and lowers the result to GLSL-450
// source text. It recovers any *TranslateError panicked by fn or a Builder
// method and returns it as a plain error; any other panic propagates
// unchanged, since it signals a bug in this package rather than in fn.
func Translate(stage Stage, fn ShaderFunc) (src string, err error) {
	defer func() {
		if r := recover(); r != nil {
			te, ok := r.(*TranslateError)
			if !ok {
				panic(r)
			}
			te.Stage = stage
			src, err = "", te
		}
	}()

	b := newBuilder(stage)
	fn(b)

	var roots []*ir.Node
	if b.positionSet {
		roots = append(roots, b.position)
	}
	roots = append(roots, b.outputs...)

	dag := ir.Compress(ir.Root(roots...))
	out, err := glsl.Generate(dag, b.outputInfos)
	if err != nil {
		return "", &TranslateError{Stage: stage, Err: err}
	}
	return out, nil
}

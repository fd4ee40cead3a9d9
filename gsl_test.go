// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package gsl_test

import (
	"strings"
	"testing"

	"github.com/gogpu/gsl"
)

func TestTranslatePassThroughVertex(t *testing.T) {
	src, err := gsl.Translate(gsl.StageVertex, func(b *gsl.Builder) {
		pos := b.InputVec3(0)
		b.Position(gsl.NewVec4FromVec3(pos, gsl.F32Const(1)))
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.Contains(src, "#version 450") {
		t.Errorf("missing version header:\n%s", src)
	}
	if !strings.Contains(src, "layout (location = 0) in vec3 _lin0;") {
		t.Errorf("missing input declaration:\n%s", src)
	}
	if !strings.Contains(src, "gl_Position = ") {
		t.Errorf("missing gl_Position assignment:\n%s", src)
	}
}

func TestTranslateConstantFragment(t *testing.T) {
	src, err := gsl.Translate(gsl.StageFragment, func(b *gsl.Builder) {
		b.Output(0, gsl.Vec4Const(1, 0, 0, 1))
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.Contains(src, "layout (location = 0) out vec4 _lout0;") {
		t.Errorf("missing output declaration:\n%s", src)
	}
	if !strings.Contains(src, "_lout0 = ") {
		t.Errorf("missing output assignment:\n%s", src)
	}
}

func TestTranslateMVPPushConstantChain(t *testing.T) {
	src, err := gsl.Translate(gsl.StageVertex, func(b *gsl.Builder) {
		pos := b.InputVec3(0)
		pc := b.PushConstants()
		model, view, proj := pc.Mat4(), pc.Mat4(), pc.Mat4()
		clip := proj.Mul(view).Mul(model).MulVec4(gsl.NewVec4FromVec3(pos, gsl.F32Const(1)))
		b.Position(clip)
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if !strings.Contains(src, "layout (push_constant) uniform PushConstants {") {
		t.Errorf("missing push-constant block:\n%s", src)
	}
	if !strings.Contains(src, "mat4 m0;") || !strings.Contains(src, "mat4 m1;") || !strings.Contains(src, "mat4 m2;") {
		t.Errorf("missing push-constant members:\n%s", src)
	}
}

func TestTranslateComponentRebuild(t *testing.T) {
	src, err := gsl.Translate(gsl.StageFragment, func(b *gsl.Builder) {
		v := gsl.Vec4Const(1, 0, 1, 1)
		v.SetX(gsl.F32Const(0.5))
		b.Output(0, v)
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	// The rebuilt vector folds to a pure constant (0.5, 0, 1, 1): each
	// distinct literal becomes one float temp (the two 1.0 leaves share a
	// DAG id), a single vec4 construction reads them, and no Component
	// indexing is left.
	for _, want := range []string{
		"float _v0 = 0.5;",
		"float _v1 = 0.0;",
		"float _v2 = 1.0;",
		"vec4 _v3 = vec4(_v0, _v1, _v2, _v2);",
		"_lout0 = _v3;",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("expected %q in folded component rebuild output:\n%s", want, src)
		}
	}
	for _, suffix := range []string{".x", ".y", ".z", ".w"} {
		if strings.Contains(src, suffix) {
			t.Errorf("unexpected Component indexing %q left in output:\n%s", suffix, src)
		}
	}
}

func TestTranslateSharesDuplicateSubexpression(t *testing.T) {
	src, err := gsl.Translate(gsl.StageFragment, func(b *gsl.Builder) {
		a := b.InputVec4(0)
		n := b.InputVec4(1)
		sum := a.Add(n)
		b.Output(0, sum.Add(sum))
	})
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}
	if strings.Count(src, " + ") != 2 {
		t.Errorf("expected exactly 2 additions (shared subexpression computed once), got source:\n%s", src)
	}
}

func TestTranslateFatalOnSecondVertexIntrinsic(t *testing.T) {
	_, err := gsl.Translate(gsl.StageVertex, func(b *gsl.Builder) {
		pos := b.InputVec3(0)
		v := gsl.NewVec4FromVec3(pos, gsl.F32Const(1))
		b.Position(v)
		b.Position(v)
	})
	if err == nil {
		t.Fatalf("expected a fatal error for a second vertex intrinsic declaration")
	}
	var te *gsl.TranslateError
	if !asTranslateError(err, &te) {
		t.Fatalf("error = %v, want *gsl.TranslateError", err)
	}
}

func TestTranslateFatalOnDuplicateOutputBinding(t *testing.T) {
	_, err := gsl.Translate(gsl.StageFragment, func(b *gsl.Builder) {
		b.Output(0, gsl.Vec4Const(1, 1, 1, 1))
		b.Output(0, gsl.Vec4Const(0, 0, 0, 1))
	})
	if err == nil {
		t.Fatalf("expected a fatal error for a duplicate output binding")
	}
}

func asTranslateError(err error, target **gsl.TranslateError) bool {
	te, ok := err.(*gsl.TranslateError)
	if ok {
		*target = te
	}
	return ok
}

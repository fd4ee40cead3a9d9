package ir

import "testing"

func TestFoldNonConstantReturnsUnchanged(t *testing.T) {
	n := LayoutInput(OpFloat32, 0)
	got, err := Fold(n)
	if err != nil {
		t.Fatalf("Fold() error = %v", err)
	}
	if got != n {
		t.Errorf("Fold() of a non-constant node should return the same pointer")
	}
}

func TestFoldLiteralReturnsUnchanged(t *testing.T) {
	n := Float(3.5)
	got, err := Fold(n)
	if err != nil {
		t.Fatalf("Fold() error = %v", err)
	}
	if got != n {
		t.Errorf("Fold() of a literal should return the same pointer")
	}
}

func TestFoldScalarConstruct(t *testing.T) {
	n := Construct(OpFloat32, Float(2.5))
	got, err := Fold(n)
	if err != nil {
		t.Fatalf("Fold() error = %v", err)
	}
	v, ok := got.FloatValue()
	if !ok || v != 2.5 {
		t.Errorf("Fold(Construct(Float32, 2.5)) = %v, want literal 2.5", got)
	}
}

func TestFoldVectorConstructRecursesIntoArgs(t *testing.T) {
	inner := Construct(OpFloat32, Float(9))
	n := Construct(OpVec2, inner, Float(1))
	got, err := Fold(n)
	if err != nil {
		t.Fatalf("Fold() error = %v", err)
	}
	if !got.IsOpcode(OpConstruct) {
		t.Fatalf("Fold(vector Construct) opcode = %v, want Construct", got.Kind)
	}
	if v, _ := got.Children[2].FloatValue(); v != 9 {
		t.Errorf("first folded component = %v, want 9 (folded from nested scalar Construct)", got.Children[2])
	}
}

func TestFoldComponentOfConstantVec4(t *testing.T) {
	agg := Construct(OpVec4, Float(0.5), Float(0), Float(1), Float(1))
	for i, want := range []float32{0.5, 0, 1, 1} {
		got, err := Fold(Component(i, agg))
		if err != nil {
			t.Fatalf("Fold(Component(%d,...)) error = %v", i, err)
		}
		v, ok := got.FloatValue()
		if !ok || v != want {
			t.Errorf("Fold(Component(%d,...)) = %v, want %v", i, got, want)
		}
	}
}

func TestFoldComponentRebuildScenario(t *testing.T) {
	// Scenario 4 from spec: v = Vec4(1,0,1,1); v.x = 0.5
	// Pre-fold rebuild shape: Construct(Vec4, 4, 0.5, Component(1,old), Component(2,old), Component(3,old))
	old := Construct(OpVec4, Float(1), Float(0), Float(1), Float(1))
	rebuilt := Construct(OpVec4,
		Float(0.5),
		Component(1, old),
		Component(2, old),
		Component(3, old),
	)

	got, err := Fold(rebuilt)
	if err != nil {
		t.Fatalf("Fold() error = %v", err)
	}
	want := []float32{0.5, 0, 1, 1}
	for i, w := range want {
		v, ok := got.Children[2+i].FloatValue()
		if !ok || v != w {
			t.Errorf("component %d = %v, want %v", i, got.Children[2+i], w)
		}
	}
}

func TestFoldIdempotence(t *testing.T) {
	agg := Construct(OpVec3, Component(0, Construct(OpVec3, Float(1), Float(2), Float(3))), Float(9), Float(10))
	once, err := Fold(agg)
	if err != nil {
		t.Fatalf("first Fold() error = %v", err)
	}
	twice, err := Fold(once)
	if err != nil {
		t.Fatalf("second Fold() error = %v", err)
	}
	if !nodesEqual(once, twice) {
		t.Errorf("folding is not idempotent: once=%v twice=%v", once, twice)
	}
}

func TestFoldComponentOfNonVectorIsFatal(t *testing.T) {
	scalar := Construct(OpFloat32, Float(1))
	_, err := Fold(Component(0, scalar))
	if err == nil {
		t.Fatalf("expected error folding Component over a scalar-folding aggregate")
	}
}

func TestFoldComponentOfMatrixIsFatal(t *testing.T) {
	mat := Construct(OpMat4, Float(1))
	_, err := Fold(Component(0, mat))
	if err == nil {
		t.Fatalf("expected error: Mat4 has no vector arity for Component to index")
	}
}

// nodesEqual is a small structural-equality helper for test assertions only
// (production structural equality lives in the DAG compressor).
func nodesEqual(a, b *Node) bool {
	if len(a.Children) != len(b.Children) {
		return false
	}
	if payloadKey(a.Kind) != payloadKey(b.Kind) {
		return false
	}
	for i := range a.Children {
		if !nodesEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

package ir

import "testing"

func TestCompressSingleLeafRoot(t *testing.T) {
	g := Compress(Root(Float(1)))
	if len(g.Payload) != 2 {
		t.Fatalf("len(payload) = %d, want 2 (root + leaf)", len(g.Payload))
	}
	if _, ok := g.Payload[0].(Op); !ok {
		t.Fatalf("payload[0] = %v, want root Op(None)", g.Payload[0])
	}
}

// TestCompressSharesIdenticalSubexpression exercises spec scenario 5:
// a = f + g; b = (f + g) * h, where f, g, h are leaves.
func TestCompressSharesIdenticalSubexpression(t *testing.T) {
	f := LayoutInput(OpFloat32, 0)
	g := LayoutInput(OpFloat32, 1)
	h := LayoutInput(OpFloat32, 2)

	a := Binary(OpAdd, f, g)
	fg2 := Binary(OpAdd, LayoutInput(OpFloat32, 0), LayoutInput(OpFloat32, 1))
	b := Binary(OpMul, fg2, h)

	root := Root(
		LayoutOutput(0, a),
		LayoutOutput(1, b),
	)

	dag := Compress(root)

	addCount := 0
	for _, p := range dag.Payload {
		if op, ok := p.(Op); ok && Opcode(op) == OpAdd {
			addCount++
		}
	}
	if addCount != 1 {
		t.Fatalf("expected exactly one Add node after compression, found %d", addCount)
	}
	assertMaximal(t, dag)
	assertUnfoldsToOriginal(t, dag, root)
}

func TestCompressNoSharingLeavesDistinctSubtrees(t *testing.T) {
	f := LayoutInput(OpFloat32, 0)
	g := LayoutInput(OpFloat32, 1)
	root := Root(
		LayoutOutput(0, Binary(OpAdd, f, Float(1))),
		LayoutOutput(1, Binary(OpAdd, g, Float(2))),
	)
	dag := Compress(root)
	assertMaximal(t, dag)
	assertUnfoldsToOriginal(t, dag, root)
}

func TestCompressMaximalityOnDeeplyDuplicatedTree(t *testing.T) {
	leaf := func() *Node { return LayoutInput(OpFloat32, 0) }
	// Build a + a + a + a with four syntactically-identical leaves.
	sum := Binary(OpAdd, Binary(OpAdd, Binary(OpAdd, leaf(), leaf()), leaf()), leaf())
	root := Root(LayoutOutput(0, sum))

	dag := Compress(root)
	assertMaximal(t, dag)
	assertUnfoldsToOriginal(t, dag, root)

	leafCount := 0
	for _, p := range dag.Payload {
		if op, ok := p.(Op); ok && Opcode(op) == OpLayoutInput {
			leafCount++
		}
	}
	if leafCount != 1 {
		t.Errorf("expected all four identical LayoutInput leaves to collapse to 1, got %d", leafCount)
	}
}

func TestCompressRootAlwaysZero(t *testing.T) {
	root := Root(LayoutOutput(0, Float(1)), LayoutOutput(1, Float(1)))
	dag := Compress(root)
	if _, ok := dag.Payload[0].(Op); !ok {
		t.Fatalf("root id 0 payload = %v, want the None opcode", dag.Payload[0])
	}
}

// assertMaximal checks the compression-maximality invariant: no two distinct
// ids have structurally-equal subtrees.
func assertMaximal(t *testing.T, g *DAG) {
	t.Helper()
	keys := structuralKeys(g)
	seen := make(map[string]int, len(keys))
	for i, k := range keys {
		if prev, ok := seen[k]; ok {
			t.Errorf("ids %d and %d have structurally-equal subtrees after compression (key %q)", prev, i, k)
			continue
		}
		seen[k] = i
	}
}

// assertUnfoldsToOriginal checks compression soundness: expanding the DAG
// from its root produces a tree structurally equal to the input.
func assertUnfoldsToOriginal(t *testing.T, g *DAG, original *Node) {
	t.Helper()
	expanded := g.Expand(0)
	if !nodesEqual(expanded, original) {
		t.Errorf("Expand(0) does not match original tree")
	}
}

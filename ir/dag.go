package ir

import (
	"sort"
	"strconv"
	"strings"
)

// DAG is the compressed representation of an IR tree: two parallel
// sequences indexed by node id. Node 0 is always the root. After
// compression, no two ids refer to structurally identical subtrees.
type DAG struct {
	Payload []NodeKind
	Refs    [][]int
}

// Expand reconstructs the subtree rooted at id as a fresh *Node tree, for
// testing and debugging (compression-soundness checks substitute each ref
// with Expand(ref) and compare against the pre-compression tree).
func (d *DAG) Expand(id int) *Node {
	children := make([]*Node, len(d.Refs[id]))
	for i, ref := range d.Refs[id] {
		children[i] = d.Expand(ref)
	}
	return &Node{Kind: d.Payload[id], Children: children, Const: false}
}

// Compress transforms a (duplicated) tree into a labeled DAG by iteratively
// coalescing the largest structurally-identical subtree class, per spec:
// flatten depth-first, then repeatedly find the largest class of
// structurally-equal nodes, rewrite references to its smallest-id
// representative, and garbage-collect, until no duplicate subtrees remain.
func Compress(root *Node) *DAG {
	g := flatten(root)
	for {
		canonical, duplicates := largestDuplicateClass(g)
		if canonical < 0 {
			return g
		}
		for i := range g.Refs {
			for j, r := range g.Refs[i] {
				if duplicates[r] {
					g.Refs[i][j] = canonical
				}
			}
		}
		g = gc(g)
	}
}

// flatten walks the tree depth-first, allocating a new id per visited node
// (duplication preserved); the root always lands at id 0.
func flatten(root *Node) *DAG {
	g := &DAG{}
	var visit func(n *Node) int
	visit = func(n *Node) int {
		id := len(g.Payload)
		g.Payload = append(g.Payload, n.Kind)
		g.Refs = append(g.Refs, nil)
		refs := make([]int, len(n.Children))
		for i, c := range n.Children {
			refs[i] = visit(c)
		}
		g.Refs[id] = refs
		return id
	}
	visit(root)
	return g
}

// subtreeSizes computes each node's subtree-node-count, memoized bottom-up.
func subtreeSizes(g *DAG) []int {
	sizes := make([]int, len(g.Payload))
	computed := make([]bool, len(g.Payload))
	var size func(i int) int
	size = func(i int) int {
		if computed[i] {
			return sizes[i]
		}
		total := 1
		for _, r := range g.Refs[i] {
			total += size(r)
		}
		sizes[i] = total
		computed[i] = true
		return total
	}
	for i := range g.Payload {
		size(i)
	}
	return sizes
}

// structuralKeys computes a canonical string key per node id such that two
// ids have the same key iff their subtrees are structurally equal (equal
// payload, recursively equal child sequences). Same interning approach as a
// type registry deduplicating structurally-equal type declarations,
// generalized from a fixed small type lattice to this package's closed Node
// opcode set.
func structuralKeys(g *DAG) []string {
	keys := make([]string, len(g.Payload))
	computed := make([]bool, len(g.Payload))
	var key func(i int) string
	key = func(i int) string {
		if computed[i] {
			return keys[i]
		}
		var b strings.Builder
		b.WriteString(payloadKey(g.Payload[i]))
		b.WriteByte('(')
		for j, r := range g.Refs[i] {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteString(key(r))
		}
		b.WriteByte(')')
		keys[i] = b.String()
		computed[i] = true
		return keys[i]
	}
	for i := range g.Payload {
		key(i)
	}
	return keys
}

// payloadKey renders a Node's payload to a disjoint string key: the three
// NodeKind variants use distinct prefixes so an int literal can never key-
// collide with an opcode or a float literal.
func payloadKey(k NodeKind) string {
	switch v := k.(type) {
	case IntLit:
		return "i:" + strconv.FormatInt(int64(v), 10)
	case FloatLit:
		return "f:" + strconv.FormatFloat(float64(v), 'g', -1, 32)
	case Op:
		return "o:" + strconv.Itoa(int(v))
	default:
		return "?"
	}
}

// largestDuplicateClass finds the equivalence class (by structural key) with
// more than one member whose representative has the largest subtree size,
// tie-broken by the smallest representative id (stable selection). It
// returns the canonical id and the set of ids identified with it (excluding
// the canonical id itself), or (-1, nil) if every node is already unique.
func largestDuplicateClass(g *DAG) (int, map[int]bool) {
	keys := structuralKeys(g)
	sizes := subtreeSizes(g)

	groups := make(map[string][]int, len(keys))
	order := make([]string, 0, len(keys))
	for i, k := range keys {
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}
	sort.Strings(order) // deterministic scan order

	bestCanonical := -1
	bestSize := -1
	var bestIDs []int
	for _, k := range order {
		ids := groups[k]
		if len(ids) < 2 {
			continue
		}
		canonical := ids[0] // groups are built in ascending id order
		size := sizes[canonical]
		if size > bestSize || (size == bestSize && canonical < bestCanonical) {
			bestSize = size
			bestCanonical = canonical
			bestIDs = ids
		}
	}

	if bestCanonical < 0 {
		return -1, nil
	}

	duplicates := make(map[int]bool, len(bestIDs)-1)
	for _, id := range bestIDs {
		if id != bestCanonical {
			duplicates[id] = true
		}
	}
	return bestCanonical, duplicates
}

// gc rebuilds the DAG by a depth-first re-id from the root, keeping only
// reachable nodes.
func gc(g *DAG) *DAG {
	out := &DAG{}
	filled := make(map[int]int)
	var readdress func(old int) int
	readdress = func(old int) int {
		if id, ok := filled[old]; ok {
			return id
		}
		id := len(out.Payload)
		out.Payload = append(out.Payload, g.Payload[old])
		out.Refs = append(out.Refs, nil)
		filled[old] = id

		refs := make([]int, len(g.Refs[old]))
		for i, r := range g.Refs[old] {
			refs[i] = readdress(r)
		}
		out.Refs[id] = refs
		return id
	}
	readdress(0)
	return out
}

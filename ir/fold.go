package ir

import "fmt"

// Fold normalizes a constant-flagged node with respect to
// Component(Construct(...)) redexes, per spec:
//
//  1. If n is not flagged constant, return n unchanged.
//  2. Else, if n is an opcode node, dispatch by opcode:
//     - Construct of a scalar type: fold and return the first value child.
//     - Construct of a vector type with canonical arity: return a fresh
//       Construct whose value children have each been folded.
//     - Component(i, aggregate): fully fold the aggregate into a Construct
//       vector, then return the i-th scalar value from it.
//  3. Else (literal) return n.
//
// Fold is invoked on every node built by the front-end, so the IR handed to
// downstream stages is always normal. An unsupported constant form (for
// example a matrix-valued Construct fed to Component) is a fatal error: Fold
// returns a non-nil error and no silent fallback is attempted.
func Fold(n *Node) (*Node, error) {
	if !n.Const {
		return n, nil
	}

	op, ok := n.Opcode()
	if !ok {
		return n, nil
	}

	switch op {
	case OpConstruct:
		return foldConstruct(n.Children)
	case OpComponent:
		return foldComponent(n.Children)
	default:
		return n, nil
	}
}

// foldConstruct folds a Construct node's canonical children: element-type
// opcode, arg count, then that many value nodes.
func foldConstruct(children []*Node) (*Node, error) {
	elem, ok := children[0].Opcode()
	if !ok {
		return nil, fmt.Errorf("ir: Construct with non-opcode type tag")
	}

	if elem == OpFloat32 || elem == OpInt32 {
		return Fold(children[2])
	}

	if arity, isVector := elem.VectorArity(); isVector {
		count, ok := children[1].IntValue()
		if !ok || int(count) != arity {
			return nil, fmt.Errorf("ir: Construct(%s) expects %d args, node declares %v", elem, arity, children[1].Kind)
		}

		folded := make([]*Node, arity)
		for i := 0; i < arity; i++ {
			v, err := Fold(children[2+i])
			if err != nil {
				return nil, err
			}
			folded[i] = v
		}
		return Construct(elem, folded...), nil
	}

	return nil, fmt.Errorf("ir: cannot fold Construct of unsupported constant type %s", elem)
}

// foldComponent folds a Component(index, aggregate) node: the aggregate must
// fold down to a vector Construct, from which the index-th scalar value is
// extracted.
func foldComponent(children []*Node) (*Node, error) {
	index, ok := children[0].IntValue()
	if !ok {
		return nil, fmt.Errorf("ir: Component with non-integer index")
	}

	aggregate, err := Fold(children[1])
	if err != nil {
		return nil, err
	}

	if !aggregate.IsOpcode(OpConstruct) {
		return nil, fmt.Errorf("ir: Component(%d, ...) aggregate did not fold to a vector Construct (got %v)", index, aggregate.Kind)
	}

	elem, _ := aggregate.Children[0].Opcode()
	if _, isVector := elem.VectorArity(); !isVector {
		return nil, fmt.Errorf("ir: Component(%d, ...) aggregate folds to non-vector Construct of %s", index, elem)
	}

	if int(index) < 0 || int(2+index) >= len(aggregate.Children) {
		return nil, fmt.Errorf("ir: Component index %d out of range for %s", index, elem)
	}

	return Fold(aggregate.Children[2+index])
}

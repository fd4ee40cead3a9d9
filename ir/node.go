package ir

import "fmt"

// Opcode is the closed set of atoms a Node may carry.
type Opcode uint8

const (
	// OpNone is the sentinel/untyped root opcode: its children are the
	// unordered multiset of a shader's output nodes.
	OpNone Opcode = iota

	// Structural
	OpConstruct
	OpComponent

	// Primitive types
	OpInt32
	OpFloat32
	OpVec2
	OpVec3
	OpVec4
	OpMat3
	OpMat4

	// I/O markers
	OpLayoutInput
	OpLayoutOutput
	OpPushConstants

	// Arithmetic
	OpAdd
	OpSub
	OpMul
	OpDiv

	// Intrinsic sink
	OpGlPosition
)

var opcodeNames = [...]string{
	OpNone:          "None",
	OpConstruct:     "Construct",
	OpComponent:     "Component",
	OpInt32:         "Int32",
	OpFloat32:       "Float32",
	OpVec2:          "Vec2",
	OpVec3:          "Vec3",
	OpVec4:          "Vec4",
	OpMat3:          "Mat3",
	OpMat4:          "Mat4",
	OpLayoutInput:   "LayoutInput",
	OpLayoutOutput:  "LayoutOutput",
	OpPushConstants: "PushConstants",
	OpAdd:           "Add",
	OpSub:           "Sub",
	OpMul:           "Mul",
	OpDiv:           "Div",
	OpGlPosition:    "GlPosition",
}

// String implements fmt.Stringer.
func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// VectorArity returns the component count of a vector opcode, and false for
// anything else.
func (o Opcode) VectorArity() (int, bool) {
	switch o {
	case OpVec2:
		return 2, true
	case OpVec3:
		return 3, true
	case OpVec4:
		return 4, true
	}
	return 0, false
}

// IsArithmetic reports whether o is one of Add/Sub/Mul/Div.
func (o Opcode) IsArithmetic() bool {
	switch o {
	case OpAdd, OpSub, OpMul, OpDiv:
		return true
	}
	return false
}

// NodeKind is the payload a Node carries: exactly one of an integer literal,
// a float literal, or an Opcode. It mirrors the closed "tagged union" the
// original implementation models with a single three-member variant; Go
// expresses the same closed set as a marker interface over three concrete
// types so Fold and Compress can type-switch exhaustively.
type NodeKind interface {
	nodeKind()
}

// IntLit is an integer-literal atom (32-bit signed, per spec).
type IntLit int32

func (IntLit) nodeKind() {}

// FloatLit is a floating-literal atom (32-bit).
type FloatLit float32

func (FloatLit) nodeKind() {}

// Op wraps an Opcode atom.
type Op Opcode

func (Op) nodeKind() {}

// Node is a single IR atom: a payload plus an ordered list of children and a
// constant-expression flag. Nodes are immutable once handed to a downstream
// stage; the front-end may replace a wrapper's Node field wholesale (to
// model a component-assignment rebuild), but never mutates a Node in place.
type Node struct {
	Kind     NodeKind
	Children []*Node
	Const    bool
}

// Int builds a constant integer-literal leaf.
func Int(v int32) *Node {
	return &Node{Kind: IntLit(v), Const: true}
}

// Float builds a constant float-literal leaf.
func Float(v float32) *Node {
	return &Node{Kind: FloatLit(v), Const: true}
}

// Opcode returns the node's opcode and true, or (0, false) if the node does
// not carry an opcode.
func (n *Node) Opcode() (Opcode, bool) {
	if op, ok := n.Kind.(Op); ok {
		return Opcode(op), true
	}
	return 0, false
}

// IsOpcode reports whether n carries opcode op.
func (n *Node) IsOpcode(op Opcode) bool {
	got, ok := n.Opcode()
	return ok && got == op
}

// IntValue returns the node's integer literal and true, or (0, false).
func (n *Node) IntValue() (int32, bool) {
	if v, ok := n.Kind.(IntLit); ok {
		return int32(v), true
	}
	return 0, false
}

// FloatValue returns the node's float literal and true, or (0, false).
func (n *Node) FloatValue() (float32, bool) {
	if v, ok := n.Kind.(FloatLit); ok {
		return float32(v), true
	}
	return 0, false
}

// opNode builds a Node carrying opcode op, AND-ing the constant flag of the
// given children.
func opNode(op Opcode, children ...*Node) *Node {
	c := true
	for _, ch := range children {
		c = c && ch.Const
	}
	return &Node{Kind: Op(op), Children: children, Const: c}
}

// Construct builds a canonical Construct node: type opcode is implicit in
// the caller (elem), followed by the argument count and then that many value
// nodes, per the canonical child-shape table.
func Construct(elem Opcode, args ...*Node) *Node {
	children := make([]*Node, 0, len(args)+2)
	children = append(children, opNode(elem))
	children = append(children, Int(int32(len(args))))
	children = append(children, args...)
	return opNode(OpConstruct, children...)
}

// Component builds a canonical Component node: component index (0..3) then
// the aggregate.
func Component(index int, aggregate *Node) *Node {
	return opNode(OpComponent, Int(int32(index)), aggregate)
}

// Binary builds a canonical Add/Sub/Mul/Div node: left operand then right.
func Binary(op Opcode, left, right *Node) *Node {
	if !op.IsArithmetic() {
		panic(fmt.Sprintf("ir: Binary called with non-arithmetic opcode %s", op))
	}
	return opNode(op, left, right)
}

// LayoutInput builds a canonical LayoutInput node: element-type opcode then
// binding index. Always variable: the type/binding children are literals,
// but the value read from the binding is supplied by the host at draw time.
func LayoutInput(elem Opcode, binding int) *Node {
	n := opNode(OpLayoutInput, opNode(elem), Int(int32(binding)))
	n.Const = false
	return n
}

// LayoutOutput builds a canonical LayoutOutput node: binding index then
// value.
func LayoutOutput(binding int, value *Node) *Node {
	return opNode(OpLayoutOutput, Int(int32(binding)), value)
}

// PushConstants builds a canonical PushConstants node: element-type opcode,
// member index, byte offset. Always variable, for the same reason as
// LayoutInput: the member's value is host-supplied.
func PushConstants(elem Opcode, member int, byteOffset uint32) *Node {
	n := opNode(OpPushConstants, opNode(elem), Int(int32(member)), Int(int32(byteOffset)))
	n.Const = false
	return n
}

// GlPosition builds a canonical GlPosition node wrapping a Vec4-typed value.
func GlPosition(value *Node) *Node {
	return opNode(OpGlPosition, value)
}

// Root builds the "None"-typed root node over an unordered multiset of
// output nodes.
func Root(outputs ...*Node) *Node {
	return opNode(OpNone, outputs...)
}

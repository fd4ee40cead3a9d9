// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/gsl/ir"
)

const (
	layoutInputPrefix  = "_lin"
	layoutOutputPrefix = "_lout"
	tempPrefix         = "_v"
	pushConstantInst   = "_pc"
)

// OutputInfo is the caller-supplied metadata for a used output binding: the
// code generator reads the element type from here, because LayoutOutput
// nodes in the IR only carry the binding, never the type.
type OutputInfo struct {
	Binding int
	Elem    ir.Opcode
}

// statement is one emitted line: either a fresh-temporary declaration
// ("<type> <name> = <rhs>;") or an assignment to a builtin/output
// ("<name> = <rhs>;", no type prefix).
type statement struct {
	declares bool
	elem     ir.Opcode
	name     string
	rhs      string
}

func (s statement) String() string {
	if s.declares {
		return fmt.Sprintf("%s %s = %s;", typeNames[s.elem], s.name, s.rhs)
	}
	return fmt.Sprintf("%s = %s;", s.name, s.rhs)
}

// pcUsage records one push-constant member as reached during traversal.
type pcUsage struct {
	elem   ir.Opcode
	offset uint32
}

// writer carries all per-translation-call state: the DAG being visited, the
// fresh-temp counter, per-id memoization, and the sets of used
// inputs/outputs/push-constants. A writer is created fresh per Generate
// call and never reused, so translation stays a pure function of its inputs
// (no package-level counters or caches).
type writer struct {
	dag     *ir.DAG
	outputs map[int]ir.Opcode

	counter int
	memo    map[int]string
	typeOf  map[string]ir.Opcode

	statements []statement

	usedInputs  map[[2]int]bool // [elem, binding] -> seen
	usedOutputs map[int]bool
	pcMembers   map[int]pcUsage // member index -> usage
}

// Generate visits the compressed DAG and emits a complete GLSL-450 shader
// source string. outputs supplies the element type for every output binding
// the DAG's root reaches.
func Generate(dag *ir.DAG, outputs []OutputInfo) (string, error) {
	outByBinding := make(map[int]ir.Opcode, len(outputs))
	for _, o := range outputs {
		outByBinding[o.Binding] = o.Elem
	}

	w := &writer{
		dag:         dag,
		outputs:     outByBinding,
		memo:        make(map[int]string),
		typeOf:      make(map[string]ir.Opcode),
		usedInputs:  make(map[[2]int]bool),
		usedOutputs: make(map[int]bool),
		pcMembers:   make(map[int]pcUsage),
	}

	if _, err := w.translate(0); err != nil {
		return "", err
	}

	return w.assemble()
}

// translate lowers DAG id to a sequence of statements, memoized by id so
// each definition emits exactly once; it returns the identifier that names
// the id's current value.
func (w *writer) translate(id int) (string, error) {
	if name, ok := w.memo[id]; ok {
		return name, nil
	}

	payload := w.dag.Payload[id]
	refs := w.dag.Refs[id]

	switch v := payload.(type) {
	case ir.IntLit:
		name := w.fresh()
		w.emit(true, ir.OpInt32, name, strconv.FormatInt(int64(v), 10))
		w.memo[id] = name
		return name, nil
	case ir.FloatLit:
		name := w.fresh()
		w.emit(true, ir.OpFloat32, name, formatFloat(float32(v)))
		w.memo[id] = name
		return name, nil
	case ir.Op:
		name, err := w.translateOp(ir.Opcode(v), refs)
		if err != nil {
			return "", err
		}
		w.memo[id] = name
		return name, nil
	default:
		return "", fmt.Errorf("glsl: node %d carries unrecognized payload %T", id, payload)
	}
}

func (w *writer) translateOp(op ir.Opcode, refs []int) (string, error) {
	switch op {
	case ir.OpNone:
		return w.translateRoot(refs)
	case ir.OpConstruct:
		return w.translateConstruct(refs)
	case ir.OpComponent:
		return w.translateComponent(refs)
	case ir.OpLayoutInput:
		return w.translateLayoutInput(refs)
	case ir.OpLayoutOutput:
		return w.translateLayoutOutput(refs)
	case ir.OpPushConstants:
		return w.translatePushConstants(refs)
	case ir.OpGlPosition:
		return w.translateGlPosition(refs)
	case ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpDiv:
		return w.translateBinary(op, refs)
	default:
		return "", fmt.Errorf("glsl: unsupported opcode %s during emission", op)
	}
}

// binaryOperators maps an arithmetic opcode to its GLSL infix spelling.
var binaryOperators = map[ir.Opcode]string{
	ir.OpAdd: "+",
	ir.OpSub: "-",
	ir.OpMul: "*",
	ir.OpDiv: "/",
}

// translateBinary emits "<L> <op> <R>", typing the declared temporary as the
// right operand's type, per the result-type rule.
func (w *writer) translateBinary(op ir.Opcode, refs []int) (string, error) {
	left, err := w.translate(refs[0])
	if err != nil {
		return "", err
	}
	right, err := w.translate(refs[1])
	if err != nil {
		return "", err
	}

	sym, ok := binaryOperators[op]
	if !ok {
		return "", fmt.Errorf("glsl: %s is not a binary operator", op)
	}

	elem, ok := w.typeOf[right]
	if !ok {
		return "", fmt.Errorf("glsl: no recorded type for right operand %q of %s", right, op)
	}

	name := w.fresh()
	w.emit(true, elem, name, fmt.Sprintf("%s %s %s", left, sym, right))
	return name, nil
}

// translateRoot concatenates per-output lists in the encountered order; its
// own "value" has no meaning and is never referenced.
func (w *writer) translateRoot(refs []int) (string, error) {
	for _, r := range refs {
		if _, err := w.translate(r); err != nil {
			return "", err
		}
	}
	return "", nil
}

func (w *writer) translateConstruct(refs []int) (string, error) {
	elemOp, ok := w.dag.Payload[refs[0]].(ir.Op)
	if !ok {
		return "", fmt.Errorf("glsl: Construct type-tag child is not an opcode")
	}
	elem := ir.Opcode(elemOp)

	if elem == ir.OpFloat32 || elem == ir.OpInt32 {
		v, err := w.translate(refs[2])
		if err != nil {
			return "", err
		}
		name := w.fresh()
		w.emit(true, elem, name, v)
		return name, nil
	}

	if _, ok := elem.VectorArity(); !ok {
		return "", fmt.Errorf("glsl: unsupported Construct element type %s", elem)
	}

	typeName, err := typeString(elem)
	if err != nil {
		return "", err
	}

	count, ok := w.dag.Payload[refs[1]].(ir.IntLit)
	if !ok || int(count) != len(refs)-2 {
		return "", fmt.Errorf("glsl: Construct(%s) argument count does not match its value children", elem)
	}

	args := make([]string, count)
	for i := range args {
		v, err := w.translate(refs[2+i])
		if err != nil {
			return "", err
		}
		args[i] = v
	}

	name := w.fresh()
	w.emit(true, elem, name, fmt.Sprintf("%s(%s)", typeName, strings.Join(args, ", ")))
	return name, nil
}

func (w *writer) translateComponent(refs []int) (string, error) {
	index, ok := w.dag.Payload[refs[0]].(ir.IntLit)
	if !ok || index < 0 || int(index) > 3 {
		return "", fmt.Errorf("glsl: Component index out of range")
	}

	agg, err := w.translate(refs[1])
	if err != nil {
		return "", err
	}

	name := w.fresh()
	w.emit(true, ir.OpFloat32, name, agg+componentSuffixes[index])
	return name, nil
}

func (w *writer) translateLayoutInput(refs []int) (string, error) {
	elemOp, _ := w.dag.Payload[refs[0]].(ir.Op)
	elem := ir.Opcode(elemOp)
	binding, _ := w.dag.Payload[refs[1]].(ir.IntLit)

	w.usedInputs[[2]int{int(elemOp), int(binding)}] = true

	name := w.fresh()
	w.emit(true, elem, name, fmt.Sprintf("%s%d", layoutInputPrefix, binding))
	return name, nil
}

func (w *writer) translateLayoutOutput(refs []int) (string, error) {
	binding, _ := w.dag.Payload[refs[0]].(ir.IntLit)
	value, err := w.translate(refs[1])
	if err != nil {
		return "", err
	}

	w.usedOutputs[int(binding)] = true

	name := fmt.Sprintf("%s%d", layoutOutputPrefix, binding)
	w.emit(false, 0, name, value)
	return name, nil
}

func (w *writer) translatePushConstants(refs []int) (string, error) {
	elemOp, _ := w.dag.Payload[refs[0]].(ir.Op)
	elem := ir.Opcode(elemOp)
	member, _ := w.dag.Payload[refs[1]].(ir.IntLit)
	offset, _ := w.dag.Payload[refs[2]].(ir.IntLit)

	usage := pcUsage{elem: elem, offset: uint32(offset)}
	if existing, ok := w.pcMembers[int(member)]; ok && existing != usage {
		return "", fmt.Errorf("glsl: push-constant member %d used with conflicting type/offset (%s@%d vs %s@%d)",
			member, existing.elem, existing.offset, usage.elem, usage.offset)
	}
	w.pcMembers[int(member)] = usage

	name := w.fresh()
	w.emit(true, elem, name, fmt.Sprintf("%s.m%d", pushConstantInst, member))
	return name, nil
}

func (w *writer) translateGlPosition(refs []int) (string, error) {
	value, err := w.translate(refs[0])
	if err != nil {
		return "", err
	}
	w.emit(false, 0, "gl_Position", value)
	return "gl_Position", nil
}

// fresh allocates a new monotonic temporary name.
func (w *writer) fresh() string {
	name := fmt.Sprintf("%s%d", tempPrefix, w.counter)
	w.counter++
	return name
}

// emit appends a statement and, for typed declarations, records the
// identifier's type for later lookups (Component's scalar type, binary
// operators' result-type rule).
func (w *writer) emit(declares bool, elem ir.Opcode, name, rhs string) {
	w.statements = append(w.statements, statement{declares: declares, elem: elem, name: name, rhs: rhs})
	if declares {
		w.typeOf[name] = elem
	}
}

// assemble builds the final shader source: header, declarations, then the
// emitted statement body.
func (w *writer) assemble() (string, error) {
	var b strings.Builder
	b.WriteString("#version 450\n")

	if err := w.writeInputDecls(&b); err != nil {
		return "", err
	}
	if err := w.writeOutputDecls(&b); err != nil {
		return "", err
	}
	if err := w.writePushConstantBlock(&b); err != nil {
		return "", err
	}

	b.WriteString("void main() {\n")
	for _, s := range w.statements {
		b.WriteString("  ")
		b.WriteString(s.String())
		b.WriteByte('\n')
	}
	b.WriteString("}\n")

	return b.String(), nil
}

func (w *writer) writeInputDecls(b *strings.Builder) error {
	type binding struct {
		elem    ir.Opcode
		binding int
	}
	bindings := make([]binding, 0, len(w.usedInputs))
	for k := range w.usedInputs {
		bindings = append(bindings, binding{elem: ir.Opcode(k[0]), binding: k[1]})
	}
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].binding < bindings[j].binding })

	for _, bd := range bindings {
		name, err := typeString(bd.elem)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "layout (location = %d) in %s %s%d;\n", bd.binding, name, layoutInputPrefix, bd.binding)
	}
	return nil
}

func (w *writer) writeOutputDecls(b *strings.Builder) error {
	bindings := make([]int, 0, len(w.usedOutputs))
	for k := range w.usedOutputs {
		bindings = append(bindings, k)
	}
	sort.Ints(bindings)

	for _, binding := range bindings {
		elem, ok := w.outputs[binding]
		if !ok {
			return fmt.Errorf("glsl: output binding %d used in shader body but no metadata supplied", binding)
		}
		name, err := typeString(elem)
		if err != nil {
			return err
		}
		fmt.Fprintf(b, "layout (location = %d) out %s %s%d;\n", binding, name, layoutOutputPrefix, binding)
	}
	return nil
}

func (w *writer) writePushConstantBlock(b *strings.Builder) error {
	if len(w.pcMembers) == 0 {
		return nil
	}

	indices := make([]int, 0, len(w.pcMembers))
	for idx := range w.pcMembers {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool {
		return w.pcMembers[indices[i]].offset < w.pcMembers[indices[j]].offset
	})

	// Two members at the same byte offset must share a type.
	byOffset := make(map[uint32]ir.Opcode, len(indices))
	for _, idx := range indices {
		u := w.pcMembers[idx]
		if existing, ok := byOffset[u.offset]; ok && existing != u.elem {
			return fmt.Errorf("glsl: push-constant members at offset %d disagree on type (%s vs %s)", u.offset, existing, u.elem)
		}
		byOffset[u.offset] = u.elem
	}

	var body strings.Builder
	running := uint32(0)
	for _, idx := range indices {
		u := w.pcMembers[idx]
		if u.offset > running {
			gap := u.offset - running
			fmt.Fprintf(&body, "  float _off%d[%d];\n", running, gap/4)
		}
		typeName, err := typeString(u.elem)
		if err != nil {
			return err
		}
		fmt.Fprintf(&body, "  %s m%d;\n", typeName, idx)

		size, err := pushConstantSize(u.elem)
		if err != nil {
			return err
		}
		running = u.offset + size
	}

	b.WriteString("layout (push_constant) uniform PushConstants {\n")
	b.WriteString(body.String())
	b.WriteString(fmt.Sprintf("} %s;\n", pushConstantInst))
	return nil
}

// formatFloat renders a float32 the way GLSL expects: always with a
// fractional part so integral values ("1" vs "1.0") still parse as float.
func formatFloat(v float32) string {
	s := strconv.FormatFloat(float64(v), 'g', -1, 32)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

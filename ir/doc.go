// Package ir defines the intermediate representation for gsl shader bodies.
//
// The IR is a small closed sum type: a Node carries exactly one of an integer
// literal, a float literal, or an Opcode drawn from a fixed set, plus an
// ordered list of children and a constant-expression flag. There are no
// functions, no control flow, and no module-scope declarations beyond what a
// single shader stage's outputs need; the IR exists purely to be built by
// operator-overloaded front-end types, folded, compressed into a DAG, and
// lowered to GLSL text.
//
// # Pipeline
//
//	front-end calls → Node tree (folded inline) → Compress → DAG → GLSL source
//
// Node trees are built and folded eagerly: every node the front-end
// constructs is passed through Fold before being handed back to the caller,
// so the tree arriving at Compress is already normal with respect to
// Component(Construct(...)) redexes.
package ir

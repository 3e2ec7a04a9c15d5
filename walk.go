package envelope

// EdgeType labels how a child envelope relates to the parent it was
// reached from during a Walk.
type EdgeType int

const (
	EdgeNone EdgeType = iota
	EdgeSubject
	EdgeAssertion
	EdgePredicate
	EdgeObject
	EdgeWrapped
)

// Label returns a human-readable name for e, or ok=false for EdgeNone
// (the root has no incoming edge).
func (e EdgeType) Label() (string, bool) {
	switch e {
	case EdgeSubject:
		return "subject", true
	case EdgeAssertion:
		return "assertion", true
	case EdgePredicate:
		return "predicate", true
	case EdgeObject:
		return "object", true
	case EdgeWrapped:
		return "wrapped", true
	default:
		return "", false
	}
}

// Visitor is called once for every envelope a Walk visits, in
// pre-order. level counts levels of nesting from the root (0). edge
// describes how e was reached from its parent. parent carries
// whatever accumulator the caller's previous visit call returned (the
// zero value for the root); the return value becomes the parent
// passed to e's children.
type Visitor[P any] func(e *Envelope, level int, edge EdgeType, parent P) P

// Walk traverses e in pre-order, calling visit for every envelope
// reached. Both modes visit the same envelopes at the same levels: a
// Node before its subject and assertions, an Assertion envelope as a
// unit before its predicate/object, a Wrapped envelope before its
// inner envelope, each child one level deeper than its parent. If
// hideNodes is false (a "structure" view), each visit receives the
// edge that reached it; if true (a "tree" view), every visit receives
// EdgeNone.
func Walk[P any](e *Envelope, hideNodes bool, zero P, visit Visitor[P]) {
	if hideNodes {
		walkTree(e, 0, zero, visit)
	} else {
		walkStructure(e, 0, EdgeNone, zero, visit)
	}
}

func walkStructure[P any](e *Envelope, level int, edge EdgeType, parent P, visit Visitor[P]) {
	next := visit(e, level, edge, parent)

	switch e.kind {
	case KindNode:
		walkStructure(e.subject, level+1, EdgeSubject, next, visit)
		for _, a := range e.assertions {
			walkStructure(a, level+1, EdgeAssertion, next, visit)
		}
	case KindAssertion:
		walkStructure(e.assertion.predicate, level+1, EdgePredicate, next, visit)
		walkStructure(e.assertion.object, level+1, EdgeObject, next, visit)
	case KindWrapped:
		walkStructure(e.wrapped, level+1, EdgeWrapped, next, visit)
	}
}

func walkTree[P any](e *Envelope, level int, parent P, visit Visitor[P]) {
	if e.kind == KindNode {
		next := visit(e, level, EdgeNone, parent)
		walkTree(e.subject, level+1, next, visit)
		for _, a := range e.assertions {
			walkTree(a, level+1, next, visit)
		}
		return
	}

	next := visit(e, level, EdgeNone, parent)

	switch e.kind {
	case KindAssertion:
		walkTree(e.assertion.predicate, level+1, next, visit)
		walkTree(e.assertion.object, level+1, next, visit)
	case KindWrapped:
		walkTree(e.wrapped, level+1, next, visit)
	}
}

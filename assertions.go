package envelope

// AddAssertion attaches assertionEnv to subject, producing a Node. If
// subject is already a Node, the assertion is merged into its
// existing assertion set (with digest-based dedup); otherwise a fresh
// Node is created with subject as the new node's subject. If salted
// is true, a fresh random-salt assertion is attached alongside it, so
// the resulting node's digest differs from an unsalted attachment of
// the same content even when the attachment is repeated verbatim.
// When assertionEnv is already present by digest, subject is returned
// unchanged and no salt is added.
func AddAssertion(subject, assertionEnv *Envelope, salted bool) (*Envelope, error) {
	if !assertionEnv.IsSubjectAssertion() && !assertionEnv.IsSubjectObscured() {
		return nil, newErr(ErrInvalidFormat, "AddAssertion", nil)
	}

	e, added := attachAssertion(subject, assertionEnv)
	if !added {
		emitAssertionDeduped(assertionEnv.digest)
		return subject, nil
	}
	emitAssertionAdded(assertionEnv.digest)

	if salted {
		return addSalt(e)
	}
	return e, nil
}

// attachAssertion merges assertionEnv into subject's assertion set,
// returning the resulting node and whether the assertion was new
// (false if it was already present by digest).
func attachAssertion(subject, assertionEnv *Envelope) (*Envelope, bool) {
	if subject.kind == KindNode {
		for _, existing := range subject.assertions {
			if existing.digest.Equal(assertionEnv.digest) {
				return subject, false
			}
		}
		merged := append(append([]*Envelope{}, subject.assertions...), assertionEnv)
		return newNodeUnchecked(subject.subject, merged), true
	}
	return newNodeUnchecked(subject, []*Envelope{assertionEnv}), true
}

// AddAssertionPredObj is a convenience wrapper that builds an
// assertion from predicate and object and attaches it to subject.
func AddAssertionPredObj(subject *Envelope, predicate, object any) (*Envelope, error) {
	a, err := NewAssertionWithPredObj(predicate, object)
	if err != nil {
		return nil, err
	}
	return AddAssertion(subject, a, false)
}

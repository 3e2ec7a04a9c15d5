package envelope

import (
	"github.com/zoobzio/envelope/digest"
)

// Assertion pairs a predicate envelope with an object envelope,
// forming the unit of attachment a Node carries alongside its
// subject. Its digest is derived from its predicate and object
// digests, so two assertions with the same predicate and object
// always compare equal regardless of how they were constructed.
type Assertion struct {
	predicate *Envelope
	object    *Envelope
	digest    digest.Digest
}

// NewAssertion builds an Assertion from a predicate and object, each
// coerced to an Envelope via Enclose.
func NewAssertion(predicate, object any) (*Assertion, error) {
	p, err := Enclose(predicate)
	if err != nil {
		return nil, newErr(ErrInvalidFormat, "NewAssertion", err)
	}
	o, err := Enclose(object)
	if err != nil {
		return nil, newErr(ErrInvalidFormat, "NewAssertion", err)
	}
	return &Assertion{
		predicate: p,
		object:    o,
		digest:    digest.FromDigests([]digest.Digest{p.digest, o.digest}),
	}, nil
}

// NewAssertionWithPredObj is a convenience wrapper producing an
// Assertion-kind Envelope directly.
func NewAssertionWithPredObj(predicate, object any) (*Envelope, error) {
	a, err := NewAssertion(predicate, object)
	if err != nil {
		return nil, err
	}
	return NewAssertionEnvelope(a), nil
}

// Predicate returns the assertion's predicate envelope.
func (a *Assertion) Predicate() *Envelope { return a.predicate }

// Object returns the assertion's object envelope.
func (a *Assertion) Object() *Envelope { return a.object }

// Digest returns the assertion's digest.
func (a *Assertion) Digest() digest.Digest { return a.digest }

// Equal reports whether two assertions have the same digest.
func (a *Assertion) Equal(other *Assertion) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.digest.Equal(other.digest)
}

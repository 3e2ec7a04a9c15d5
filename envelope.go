// Package envelope implements Gordian Envelope, an immutable,
// digest-addressed container for structured data. An Envelope is one
// of a closed set of variants - a bare leaf value, a known value, a
// predicate/object assertion, a wrapped envelope, a subject with
// attached assertions, or an obscured (encrypted, compressed, or
// elided) form of any of those - and every variant carries a digest
// computed from its contents so that obscuring a subtree never
// changes what the envelope as a whole commits to.
package envelope

import (
	"bytes"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/zoobzio/envelope/compressed"
	"github.com/zoobzio/envelope/digest"
	"github.com/zoobzio/envelope/symmetrickey"
)

// Kind identifies which of the closed set of envelope variants a
// given Envelope holds.
type Kind int

const (
	KindLeaf Kind = iota
	KindKnownValue
	KindAssertion
	KindWrapped
	KindNode
	KindEncrypted
	KindCompressed
	KindElided
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindKnownValue:
		return "knownValue"
	case KindAssertion:
		return "assertion"
	case KindWrapped:
		return "wrapped"
	case KindNode:
		return "node"
	case KindEncrypted:
		return "encrypted"
	case KindCompressed:
		return "compressed"
	case KindElided:
		return "elided"
	default:
		return "unknown"
	}
}

// Envelope is an immutable, digest-addressed container for structured
// data. Every constructor in this package returns a fully formed
// Envelope whose digest is computed at construction time; there is no
// way to mutate one in place.
type Envelope struct {
	kind   Kind
	digest digest.Digest

	leafCBOR   cbor.RawMessage
	knownValue KnownValue
	assertion  *Assertion
	wrapped    *Envelope
	subject    *Envelope
	assertions []*Envelope
	encrypted  *symmetrickey.Message
	compressed *compressed.Compressed
}

// Leaf wraps an arbitrary CBOR-encodable value as a bare leaf
// envelope. Its digest is the digest of v's canonical CBOR image.
func Leaf(v any) (*Envelope, error) {
	data, err := encMode.Marshal(v)
	if err != nil {
		return nil, newErr(ErrCBOR, "Leaf", err)
	}
	e := &Envelope{
		kind:     KindLeaf,
		leafCBOR: data,
		digest:   digest.FromImage(data),
	}
	emitEncoded("Leaf", KindLeaf, len(data), nil)
	return e, nil
}

// NewKnownValue wraps a KnownValue as an envelope.
func NewKnownValue(k KnownValue) *Envelope {
	return &Envelope{
		kind:       KindKnownValue,
		knownValue: k,
		digest:     k.Digest(),
	}
}

// Wrap produces a new envelope that wraps inner, changing the digest
// without altering inner's own contents. The wrapped digest is the
// digest of inner's digest, so obscuring inner leaves it unchanged.
// Wrapping is the only way to give an envelope a fresh identity while
// keeping its original form fully recoverable.
func Wrap(inner *Envelope) (*Envelope, error) {
	e := &Envelope{
		kind:    KindWrapped,
		wrapped: inner,
		digest:  digest.FromDigests([]digest.Digest{inner.digest}),
	}
	return e, nil
}

// NewAssertionEnvelope wraps an Assertion as an envelope.
func NewAssertionEnvelope(a *Assertion) *Envelope {
	return &Envelope{
		kind:      KindAssertion,
		assertion: a,
		digest:    a.Digest(),
	}
}

// NewEncryptedEnvelope wraps an encrypted message as an envelope. The
// digest is taken from the message's recorded plaintext digest; the
// caller is responsible for having authenticated it.
func NewEncryptedEnvelope(msg *symmetrickey.Message) (*Envelope, error) {
	if !msg.HasDigest() {
		return nil, newErr(ErrMissingDigest, "NewEncryptedEnvelope", nil)
	}
	return &Envelope{
		kind:      KindEncrypted,
		encrypted: msg,
		digest:    *msg.Digest,
	}, nil
}

// NewCompressedEnvelope wraps a compressed payload as an envelope. The
// digest is taken from the payload's recorded uncompressed digest.
func NewCompressedEnvelope(c *compressed.Compressed) (*Envelope, error) {
	if !c.HasDigest() {
		return nil, newErr(ErrMissingDigest, "NewCompressedEnvelope", nil)
	}
	return &Envelope{
		kind:       KindCompressed,
		compressed: c,
		digest:     *c.Digest,
	}, nil
}

// NewElided builds a bare-digest placeholder for an elided subtree.
func NewElided(d digest.Digest) *Envelope {
	return &Envelope{kind: KindElided, digest: d}
}

// NewNode builds a subject-with-assertions envelope. Assertions are
// validated, deduplicated by digest, and sorted into canonical digest
// order; subject must not itself be an error placeholder.
func NewNode(subject *Envelope, assertions []*Envelope) (*Envelope, error) {
	for _, a := range assertions {
		if !a.IsSubjectAssertion() && !a.IsSubjectObscured() {
			return nil, newErr(ErrInvalidFormat, "NewNode", nil)
		}
	}
	e := newNodeUnchecked(subject, assertions)
	emitNodeCreated(e.digest, len(e.assertions))
	return e, nil
}

// newNodeUnchecked builds a node without validating assertion kinds,
// for internal callers that already know they hold valid assertions
// (e.g. the decoder, which reconstructs a tree it trusts).
func newNodeUnchecked(subject *Envelope, assertions []*Envelope) *Envelope {
	deduped := dedupeAssertions(assertions)
	sortAssertions(deduped)

	digests := make([]digest.Digest, 0, len(deduped)+1)
	digests = append(digests, subject.digest)
	for _, a := range deduped {
		digests = append(digests, a.digest)
	}

	return &Envelope{
		kind:       KindNode,
		subject:    subject,
		assertions: deduped,
		digest:     digest.FromDigests(digests),
	}
}

func dedupeAssertions(assertions []*Envelope) []*Envelope {
	seen := make(map[digest.Digest]bool, len(assertions))
	out := make([]*Envelope, 0, len(assertions))
	for _, a := range assertions {
		if seen[a.digest] {
			continue
		}
		seen[a.digest] = true
		out = append(out, a)
	}
	return out
}

func sortAssertions(assertions []*Envelope) {
	sort.Slice(assertions, func(i, j int) bool {
		return bytes.Compare(assertions[i].digest[:], assertions[j].digest[:]) < 0
	})
}

// Kind reports which variant e holds.
func (e *Envelope) Kind() Kind { return e.kind }

// Digest returns e's digest.
func (e *Envelope) Digest() digest.Digest { return e.digest }

func (e *Envelope) IsLeaf() bool       { return e.kind == KindLeaf }
func (e *Envelope) IsKnownValue() bool { return e.kind == KindKnownValue }
func (e *Envelope) IsAssertion() bool  { return e.kind == KindAssertion }
func (e *Envelope) IsWrapped() bool    { return e.kind == KindWrapped }
func (e *Envelope) IsNode() bool       { return e.kind == KindNode }
func (e *Envelope) IsEncrypted() bool  { return e.kind == KindEncrypted }
func (e *Envelope) IsCompressed() bool { return e.kind == KindCompressed }
func (e *Envelope) IsElided() bool     { return e.kind == KindElided }

// IsSubjectAssertion reports whether e can serve directly as an
// assertion attached to a node - i.e. it is itself an Assertion.
func (e *Envelope) IsSubjectAssertion() bool { return e.kind == KindAssertion }

// IsSubjectObscured reports whether e is an obscured form (encrypted,
// compressed, or elided) that could stand in for an assertion whose
// content has been hidden.
func (e *Envelope) IsSubjectObscured() bool {
	return e.kind == KindEncrypted || e.kind == KindCompressed || e.kind == KindElided
}

// Subject returns e's subject. For a Node this is the wrapped value
// the assertions describe; for any other kind, e is its own subject.
func (e *Envelope) Subject() *Envelope {
	if e.kind == KindNode {
		return e.subject
	}
	return e
}

// Assertions returns the assertions attached to e, or nil if e is not
// a Node.
func (e *Envelope) Assertions() []*Envelope {
	if e.kind != KindNode {
		return nil
	}
	return e.assertions
}

// ReplaceSubject returns a copy of e with its subject replaced by
// newSubject. e must be a Node.
func (e *Envelope) ReplaceSubject(newSubject *Envelope) *Envelope {
	return newNodeUnchecked(newSubject, e.assertions)
}

// Assertion returns e's Assertion. e must be of kind KindAssertion.
func (e *Envelope) Assertion() *Assertion {
	return e.assertion
}

// WrappedEnvelope returns the envelope e wraps. e must be of kind
// KindWrapped.
func (e *Envelope) WrappedEnvelope() *Envelope {
	return e.wrapped
}

// KnownValue returns e's known value. e must be of kind KindKnownValue.
func (e *Envelope) KnownValue() KnownValue {
	return e.knownValue
}

// LeafValue decodes e's leaf CBOR image into out. e must be of kind
// KindLeaf.
func (e *Envelope) LeafValue(out any) error {
	if err := cbor.Unmarshal(e.leafCBOR, out); err != nil {
		return newErr(ErrCBOR, "LeafValue", err)
	}
	return nil
}

// LeafCBOR returns e's raw leaf CBOR image. e must be of kind KindLeaf.
func (e *Envelope) LeafCBOR() cbor.RawMessage {
	return e.leafCBOR
}

// EncryptedMessage returns e's encrypted payload. e must be of kind
// KindEncrypted.
func (e *Envelope) EncryptedMessage() *symmetrickey.Message {
	return e.encrypted
}

// CompressedValue returns e's compressed payload. e must be of kind
// KindCompressed.
func (e *Envelope) CompressedValue() *compressed.Compressed {
	return e.compressed
}

// Equal reports whether e and other have the same digest - the
// canonical notion of equality for envelopes, since two envelopes
// with the same digest commit to the same content regardless of
// whether one has been obscured.
func (e *Envelope) Equal(other *Envelope) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.digest.Equal(other.digest)
}

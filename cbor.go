package envelope

import (
	"errors"

	"github.com/fxamacker/cbor/v2"

	"github.com/zoobzio/envelope/compressed"
	"github.com/zoobzio/envelope/digest"
	"github.com/zoobzio/envelope/symmetrickey"
	"github.com/zoobzio/envelope/tags"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic("envelope: canonical encoding options rejected: " + err.Error())
	}
	encMode = em

	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("envelope: default decoding options rejected: " + err.Error())
	}
	decMode = dm
}

// EncodeCBOR produces e's canonical wire encoding: its untagged form
// wrapped in the outer ENVELOPE tag.
func EncodeCBOR(e *Envelope) ([]byte, error) {
	content, err := untaggedCBOR(e)
	if err != nil {
		emitEncoded("EncodeCBOR", e.kind, 0, err)
		return nil, newErr(ErrCBOR, "EncodeCBOR", err)
	}
	out, err := marshalRawTag(tags.ENVELOPE, content)
	if err != nil {
		emitEncoded("EncodeCBOR", e.kind, 0, err)
		return nil, newErr(ErrCBOR, "EncodeCBOR", err)
	}
	emitEncoded("EncodeCBOR", e.kind, len(out), nil)
	return out, nil
}

// DecodeCBOR parses data as a canonical envelope wire encoding.
func DecodeCBOR(data []byte) (*Envelope, error) {
	var raw cbor.RawTag
	if err := decMode.Unmarshal(data, &raw); err != nil {
		emitDecoded(len(data), err)
		return nil, newErr(ErrCBOR, "DecodeCBOR", err)
	}
	if raw.Number != tags.ENVELOPE {
		err := newErr(ErrInvalidFormat, "DecodeCBOR", nil)
		emitDecoded(len(data), err)
		return nil, err
	}
	e, err := decodeUntagged(raw.Content)
	if err != nil {
		emitDecoded(len(data), err)
		var envErr *Error
		if errors.As(err, &envErr) {
			return nil, err
		}
		if errors.Is(err, ErrInvalidFormat) {
			return nil, newErr(ErrInvalidFormat, "DecodeCBOR", nil)
		}
		return nil, newErr(ErrCBOR, "DecodeCBOR", err)
	}
	emitDecoded(len(data), nil)
	return e, nil
}

// untaggedCBOR encodes e's content without the outer ENVELOPE tag,
// per variant. This is what gets ciphered by EncryptSubject; digests
// are not computed from it.
func untaggedCBOR(e *Envelope) (cbor.RawMessage, error) {
	switch e.kind {
	case KindLeaf:
		return marshalRawTag(tags.LEAF, e.leafCBOR)

	case KindWrapped:
		inner, err := untaggedCBOR(e.wrapped)
		if err != nil {
			return nil, err
		}
		return marshalRawTag(tags.WRAPPED_ENVELOPE, inner)

	case KindKnownValue:
		kv, err := encMode.Marshal(uint64(e.knownValue))
		if err != nil {
			return nil, err
		}
		return marshalRawTag(tags.KNOWN_VALUE, kv)

	case KindAssertion:
		predCBOR, err := EncodeCBOR(e.assertion.predicate)
		if err != nil {
			return nil, err
		}
		objCBOR, err := EncodeCBOR(e.assertion.object)
		if err != nil {
			return nil, err
		}
		arr, err := encMode.Marshal([]cbor.RawMessage{predCBOR, objCBOR})
		if err != nil {
			return nil, err
		}
		return marshalRawTag(tags.ASSERTION, arr)

	case KindEncrypted:
		body, err := encMode.Marshal(e.encrypted)
		if err != nil {
			return nil, err
		}
		return marshalRawTag(tags.ENCRYPTED, body)

	case KindCompressed:
		body, err := encMode.Marshal(e.compressed)
		if err != nil {
			return nil, err
		}
		return marshalRawTag(tags.COMPRESSED, body)

	case KindElided:
		d := e.digest
		body, err := encMode.Marshal(d[:])
		if err != nil {
			return nil, err
		}
		return marshalRawTag(tags.DIGEST, body)

	case KindNode:
		elems := make([]cbor.RawMessage, 0, len(e.assertions)+1)
		subjCBOR, err := EncodeCBOR(e.subject)
		if err != nil {
			return nil, err
		}
		elems = append(elems, subjCBOR)
		for _, a := range e.assertions {
			aCBOR, err := EncodeCBOR(a)
			if err != nil {
				return nil, err
			}
			elems = append(elems, aCBOR)
		}
		return encMode.Marshal(elems)

	default:
		return nil, newErr(ErrInvalidFormat, "untaggedCBOR", nil)
	}
}

// decodeUntagged reconstructs an Envelope from the untagged content
// produced by untaggedCBOR: either a tag wrapping variant-specific
// content, or a bare array for a Node.
func decodeUntagged(raw cbor.RawMessage) (*Envelope, error) {
	if len(raw) == 0 {
		return nil, ErrInvalidFormat
	}

	major := raw[0] >> 5
	switch major {
	case 6: // tag
		var t cbor.RawTag
		if err := decMode.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
		return decodeTagged(t)

	case 4: // array -> Node
		var elems []cbor.RawMessage
		if err := decMode.Unmarshal(raw, &elems); err != nil {
			return nil, err
		}
		if len(elems) < 2 {
			return nil, ErrInvalidFormat
		}
		subject, err := DecodeCBOR(elems[0])
		if err != nil {
			return nil, err
		}
		assertions := make([]*Envelope, 0, len(elems)-1)
		for _, raw := range elems[1:] {
			a, err := DecodeCBOR(raw)
			if err != nil {
				return nil, err
			}
			assertions = append(assertions, a)
		}
		return newNodeUnchecked(subject, assertions), nil

	default:
		return nil, ErrInvalidFormat
	}
}

func decodeTagged(t cbor.RawTag) (*Envelope, error) {
	switch t.Number {
	case tags.LEAF:
		return &Envelope{
			kind:     KindLeaf,
			leafCBOR: cbor.RawMessage(t.Content),
			digest:   digest.FromImage(t.Content),
		}, nil

	case tags.WRAPPED_ENVELOPE:
		inner, err := decodeUntagged(t.Content)
		if err != nil {
			return nil, err
		}
		return Wrap(inner)

	case tags.KNOWN_VALUE:
		var n uint64
		if err := decMode.Unmarshal(t.Content, &n); err != nil {
			return nil, err
		}
		return NewKnownValue(KnownValue(n)), nil

	case tags.ASSERTION:
		var elems []cbor.RawMessage
		if err := decMode.Unmarshal(t.Content, &elems); err != nil {
			return nil, err
		}
		if len(elems) != 2 {
			return nil, ErrInvalidFormat
		}
		pred, err := DecodeCBOR(elems[0])
		if err != nil {
			return nil, err
		}
		obj, err := DecodeCBOR(elems[1])
		if err != nil {
			return nil, err
		}
		a := &Assertion{
			predicate: pred,
			object:    obj,
			digest:    digest.FromDigests([]digest.Digest{pred.digest, obj.digest}),
		}
		return NewAssertionEnvelope(a), nil

	case tags.ENCRYPTED:
		var msg symmetrickey.Message
		if err := decMode.Unmarshal(t.Content, &msg); err != nil {
			return nil, err
		}
		return NewEncryptedEnvelope(&msg)

	case tags.COMPRESSED:
		var c compressed.Compressed
		if err := decMode.Unmarshal(t.Content, &c); err != nil {
			return nil, err
		}
		return NewCompressedEnvelope(&c)

	case tags.DIGEST:
		var b []byte
		if err := decMode.Unmarshal(t.Content, &b); err != nil {
			return nil, err
		}
		if len(b) != digest.Size {
			return nil, ErrInvalidFormat
		}
		var d digest.Digest
		copy(d[:], b)
		return NewElided(d), nil

	default:
		return nil, ErrInvalidFormat
	}
}

func marshalRawTag(number uint64, content cbor.RawMessage) (cbor.RawMessage, error) {
	return encMode.Marshal(cbor.RawTag{Number: number, Content: content})
}

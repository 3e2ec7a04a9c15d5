package envelope

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/zoobzio/envelope/compressed"
	"github.com/zoobzio/envelope/symmetrickey"
)

// Enclose coerces v into an Envelope. If v is already an Envelope, it
// is wrapped - the result is a new Wrapped envelope around v, with
// a fresh digest. This is the coercion assertion construction uses:
// an existing envelope used as a predicate or object becomes a
// sub-envelope of the assertion, not the assertion's own subject.
func Enclose(v any) (*Envelope, error) {
	if e, ok := v.(*Envelope); ok {
		return Wrap(e)
	}
	return encloseValue(v)
}

// IntoEnvelope coerces v into an Envelope. Unlike Enclose, an already-
// an-Envelope value passes through unchanged. This is the coercion
// used when accepting an envelope as a payload from another operation
// that doesn't care whether it was freshly built or passed in whole.
func IntoEnvelope(v any) (*Envelope, error) {
	if e, ok := v.(*Envelope); ok {
		return e, nil
	}
	return encloseValue(v)
}

// encloseValue handles every non-Envelope value both Enclose and
// IntoEnvelope accept.
func encloseValue(v any) (*Envelope, error) {
	switch x := v.(type) {
	case KnownValue:
		return NewKnownValue(x), nil
	case *Assertion:
		return NewAssertionEnvelope(x), nil
	case *symmetrickey.Message:
		return NewEncryptedEnvelope(x)
	case *compressed.Compressed:
		return NewCompressedEnvelope(x)
	case cbor.RawMessage:
		return Leaf(x)
	default:
		return Leaf(v)
	}
}

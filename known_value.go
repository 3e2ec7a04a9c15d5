package envelope

import (
	"github.com/zoobzio/envelope/digest"
)

// KnownValue is a compact, digest-stable stand-in for a well-known
// predicate or value, identified by a small integer rather than a
// full CBOR image. Two envelopes built from the same KnownValue always
// produce the same digest.
type KnownValue uint64

// Well-known values used internally by this package. Application code
// is free to define its own, starting above this range.
const (
	// KnownValueSalt marks a salt assertion added by AddAssertion with
	// salted set to true, to perturb an envelope's digest without changing its meaning.
	KnownValueSalt KnownValue = 8
)

// Digest returns the digest of k's canonical CBOR encoding.
func (k KnownValue) Digest() digest.Digest {
	data, err := encMode.Marshal(uint64(k))
	if err != nil {
		// uint64 always encodes; a failure here indicates a corrupt
		// process-wide encoder configuration.
		panic("envelope: known value encoding failed: " + err.Error())
	}
	return digest.FromImage(data)
}

// Name returns a human-readable name for k if one is registered in the
// format context, or ok=false otherwise.
func (k KnownValue) Name() (string, bool) {
	return GetFormatContext().NameForKnownValue(uint64(k))
}

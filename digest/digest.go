// Package digest implements the content-addressing primitive every
// envelope variant carries: a SHA-256 digest over either a leaf's raw
// CBOR image or a parent's children's digests.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Size is the length in bytes of a Digest.
const Size = 32

// Digest is a SHA-256 content hash.
type Digest [Size]byte

// FromImage returns the digest of a leaf's raw image bytes.
func FromImage(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// FromDigests returns the digest of a node from its children's
// digests, computed as SHA-256 of the children's digest bytes
// concatenated in the order given. Callers that need order
// independence (e.g. assertion sets) must sort before calling this.
func FromDigests(digests []Digest) Digest {
	h := sha256.New()
	for _, d := range digests {
		h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// Bytes returns the digest's raw bytes.
func (d Digest) Bytes() []byte {
	return d[:]
}

// String returns the digest as a lowercase hex string.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Equal reports whether two digests are identical.
func (d Digest) Equal(other Digest) bool {
	return d == other
}

// IsZero reports whether d is the zero digest.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// Provider is implemented by anything that carries a digest.
type Provider interface {
	Digest() Digest
}

// MarshalCBOR implements cbor.Marshaler, encoding the digest as a
// definite-length byte string.
func (d Digest) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(d[:])
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (d *Digest) UnmarshalCBOR(data []byte) error {
	var b []byte
	if err := cbor.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("digest: %w", err)
	}
	if len(b) != Size {
		return fmt.Errorf("digest: expected %d bytes, got %d", Size, len(b))
	}
	copy(d[:], b)
	return nil
}

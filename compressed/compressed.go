// Package compressed implements the zstd-backed obscuring transform
// envelopes use to shrink a subject's wire size without changing the
// digest it commits to: the digest of the uncompressed form travels
// alongside the compressed bytes so it can be re-verified after
// decompression.
package compressed

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/zoobzio/envelope/digest"
)

// ErrMissingDigest indicates a Compressed value has no recorded digest
// to verify against after decompression.
var ErrMissingDigest = errors.New("compressed: missing digest")

// Compressed is a zstd-compressed payload together with the digest and
// byte size of the uncompressed data it represents.
type Compressed struct {
	Data   []byte        `cbor:"1,keyasint"`
	Digest *digest.Digest `cbor:"2,keyasint,omitempty"`
	Size   uint64        `cbor:"3,keyasint"`
}

// HasDigest reports whether c carries the uncompressed data's digest.
func (c *Compressed) HasDigest() bool {
	return c.Digest != nil
}

// FromUncompressedData compresses data with zstd, recording d (if
// non-nil) as the digest of the uncompressed form.
func FromUncompressedData(data []byte, d *digest.Digest) (*Compressed, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("compressed: new writer: %w", err)
	}
	defer enc.Close()

	compressed := enc.EncodeAll(data, make([]byte, 0, len(data)))

	var digCopy *digest.Digest
	if d != nil {
		c := *d
		digCopy = &c
	}

	return &Compressed{
		Data:   compressed,
		Digest: digCopy,
		Size:   uint64(len(data)),
	}, nil
}

// Uncompress decompresses c back to its original bytes.
func (c *Compressed) Uncompress() ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("compressed: new reader: %w", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(c.Data, make([]byte, 0, c.Size))
	if err != nil {
		return nil, fmt.Errorf("compressed: decode: %w", err)
	}
	return out, nil
}

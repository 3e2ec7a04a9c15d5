package envelope

import (
	"time"

	"github.com/zoobzio/envelope/compressed"
)

// Compress replaces e with a zstd-compressed form that preserves e's
// digest. e must not already be encrypted or elided; an already
// compressed e is returned unchanged.
func Compress(e *Envelope) (*Envelope, error) {
	switch e.kind {
	case KindCompressed:
		return e, nil
	case KindEncrypted:
		return nil, newErr(ErrAlreadyEncrypted, "Compress", nil)
	case KindElided:
		return nil, newErr(ErrAlreadyElided, "Compress", nil)
	}

	start := time.Now()
	full, err := EncodeCBOR(e)
	if err != nil {
		return nil, newErr(ErrCBOR, "Compress", err)
	}

	d := e.digest
	c, err := compressed.FromUncompressedData(full, &d)
	if err != nil {
		emitCompressed(d, 0, time.Since(start), err)
		return nil, newErr(ErrCrypto, "Compress", err)
	}

	out, err := NewCompressedEnvelope(c)
	if err != nil {
		return nil, newErr(ErrInvalidFormat, "Compress", err)
	}
	emitCompressed(d, len(c.Data), time.Since(start), nil)
	return out, nil
}

// Uncompress recovers the original envelope from a compressed one and
// verifies that its digest matches what Compress recorded.
func Uncompress(e *Envelope) (*Envelope, error) {
	if e.kind != KindCompressed {
		return nil, newErr(ErrNotCompressed, "Uncompress", nil)
	}
	if !e.compressed.HasDigest() {
		return nil, newErr(ErrMissingDigest, "Uncompress", nil)
	}

	start := time.Now()
	data, err := e.compressed.Uncompress()
	if err != nil {
		emitUncompressed(e.digest, 0, time.Since(start), err)
		return nil, newErr(ErrCrypto, "Uncompress", err)
	}

	out, err := DecodeCBOR(data)
	if err != nil {
		return nil, newErr(ErrCBOR, "Uncompress", err)
	}
	if !out.digest.Equal(*e.compressed.Digest) {
		err := newErr(ErrInvalidDigest, "Uncompress", nil)
		emitUncompressed(e.digest, len(data), time.Since(start), err)
		return nil, err
	}

	emitUncompressed(e.digest, len(data), time.Since(start), nil)
	return out, nil
}

// CompressSubject compresses e's subject in place (for a Node) or e
// itself, preserving e's overall digest.
func CompressSubject(e *Envelope) (*Envelope, error) {
	if e.kind != KindNode {
		return Compress(e)
	}
	compressedSubject, err := Compress(e.subject)
	if err != nil {
		return nil, err
	}
	return e.ReplaceSubject(compressedSubject), nil
}

// UncompressSubject uncompresses e's subject in place (for a Node) or
// e itself.
func UncompressSubject(e *Envelope) (*Envelope, error) {
	if e.kind != KindNode {
		return Uncompress(e)
	}
	uncompressedSubject, err := Uncompress(e.subject)
	if err != nil {
		return nil, err
	}
	return e.ReplaceSubject(uncompressedSubject), nil
}

package envelope

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these.
var (
	// ErrInvalidFormat indicates malformed or unexpected envelope structure,
	// such as an assertion envelope whose subject isn't itself an Assertion.
	ErrInvalidFormat = errors.New("invalid envelope format")

	// ErrMissingDigest indicates an operation required a digest that
	// an encrypted or compressed payload did not carry.
	ErrMissingDigest = errors.New("missing digest")

	// ErrInvalidDigest indicates a recovered payload's digest did not
	// match the digest it was expected to preserve.
	ErrInvalidDigest = errors.New("invalid digest")

	// ErrAlreadyEncrypted indicates an obscuring operation was applied
	// to a subject that is already encrypted.
	ErrAlreadyEncrypted = errors.New("subject already encrypted")

	// ErrAlreadyElided indicates an obscuring operation was applied to
	// a subject that is already elided.
	ErrAlreadyElided = errors.New("subject already elided")

	// ErrAlreadyCompressed indicates a subject is already compressed.
	// Compress does not return it: an already-compressed envelope is
	// returned unchanged.
	ErrAlreadyCompressed = errors.New("subject already compressed")

	// ErrNotEncrypted indicates DecryptSubject was called on a
	// subject that is not encrypted.
	ErrNotEncrypted = errors.New("subject not encrypted")

	// ErrNotCompressed indicates Uncompress was called on a subject
	// that is not compressed.
	ErrNotCompressed = errors.New("subject not compressed")

	// ErrCrypto indicates an underlying encryption, decryption,
	// compression or decompression operation failed.
	ErrCrypto = errors.New("crypto operation failed")

	// ErrCBOR indicates an underlying CBOR encode or decode operation
	// failed.
	ErrCBOR = errors.New("cbor operation failed")
)

// Error wraps a sentinel error with the operation that produced it and,
// where applicable, the underlying collaborator error that caused it.
type Error struct {
	Err   error  // one of the sentinels above
	Op    string // operation name, e.g. "EncryptSubject"
	Cause error  // underlying error, if any
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Err.Error(), e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// newErr wraps a sentinel error with an operation name and optional cause.
func newErr(sentinel error, op string, cause error) error {
	return &Error{Err: sentinel, Op: op, Cause: cause}
}

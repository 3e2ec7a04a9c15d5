package envelope

import (
	"time"

	"github.com/zoobzio/envelope/symmetrickey"
)

// EncryptSubject replaces e's subject with an encrypted form that
// still carries e's original digest, so encrypting never changes what
// an envelope commits to. For a Node, only the subject is encrypted;
// the assertions stay in the clear. testNonce, if non-nil, fixes the
// GCM nonce instead of generating one randomly; production callers
// pass nil.
func EncryptSubject(e *Envelope, key symmetrickey.Key, testNonce []byte) (*Envelope, error) {
	if e.kind == KindNode {
		if e.subject.kind == KindEncrypted {
			return nil, newErr(ErrAlreadyEncrypted, "EncryptSubject", nil)
		}
		encryptedSubject, err := encryptLeafLike(e.subject, key, testNonce)
		if err != nil {
			return nil, err
		}
		out := e.ReplaceSubject(encryptedSubject)
		if !out.digest.Equal(e.digest) {
			panic("envelope: encrypting a node's subject changed the node's digest")
		}
		return out, nil
	}
	return encryptLeafLike(e, key, testNonce)
}

func encryptLeafLike(e *Envelope, key symmetrickey.Key, testNonce []byte) (*Envelope, error) {
	switch e.kind {
	case KindEncrypted:
		return nil, newErr(ErrAlreadyEncrypted, "EncryptSubject", nil)
	case KindElided:
		return nil, newErr(ErrAlreadyElided, "EncryptSubject", nil)
	}

	start := time.Now()
	plaintext, err := untaggedCBOR(e)
	if err != nil {
		return nil, newErr(ErrCBOR, "EncryptSubject", err)
	}

	msg, err := key.EncryptWithDigest(plaintext, e.digest, testNonce)
	if err != nil {
		emitEncrypted(e.digest, 0, time.Since(start), err)
		return nil, newErr(ErrCrypto, "EncryptSubject", err)
	}

	out, err := NewEncryptedEnvelope(msg)
	if err != nil {
		return nil, newErr(ErrInvalidFormat, "EncryptSubject", err)
	}
	emitEncrypted(e.digest, len(msg.Ciphertext), time.Since(start), nil)
	return out, nil
}

// DecryptSubject reverses EncryptSubject, recovering the original
// subject and verifying its digest matches what was recorded at
// encryption time.
func DecryptSubject(e *Envelope, key symmetrickey.Key) (*Envelope, error) {
	if e.kind == KindNode {
		if e.subject.kind != KindEncrypted {
			return nil, newErr(ErrNotEncrypted, "DecryptSubject", nil)
		}
		decryptedSubject, err := decryptLeafLike(e.subject, key)
		if err != nil {
			return nil, err
		}
		out := e.ReplaceSubject(decryptedSubject)
		if !out.digest.Equal(e.digest) {
			return nil, newErr(ErrInvalidDigest, "DecryptSubject", nil)
		}
		return out, nil
	}
	if e.kind != KindEncrypted {
		return nil, newErr(ErrNotEncrypted, "DecryptSubject", nil)
	}
	return decryptLeafLike(e, key)
}

func decryptLeafLike(e *Envelope, key symmetrickey.Key) (*Envelope, error) {
	if !e.encrypted.HasDigest() {
		return nil, newErr(ErrMissingDigest, "DecryptSubject", nil)
	}

	start := time.Now()
	plaintext, err := key.Decrypt(e.encrypted)
	if err != nil {
		emitDecrypted(e.digest, 0, time.Since(start), err)
		return nil, newErr(ErrCrypto, "DecryptSubject", err)
	}

	out, err := decodeUntagged(plaintext)
	if err != nil {
		return nil, newErr(ErrCBOR, "DecryptSubject", err)
	}
	if !out.digest.Equal(*e.encrypted.Digest) {
		err := newErr(ErrInvalidDigest, "DecryptSubject", nil)
		emitDecrypted(e.digest, len(plaintext), time.Since(start), err)
		return nil, err
	}

	emitDecrypted(e.digest, len(plaintext), time.Since(start), nil)
	return out, nil
}

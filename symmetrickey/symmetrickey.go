// Package symmetrickey implements the AES-256-GCM authenticated
// encryption envelopes use to obscure a subject while keeping its
// digest verifiable: the plaintext's digest is bound into the cipher
// as additional authenticated data, so a decrypting party can confirm
// it recovered the exact subject the digest committed to.
package symmetrickey

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/zoobzio/envelope/digest"
)

// KeySize is the length in bytes of an AES-256 key.
const KeySize = 32

var (
	// ErrInvalidKeySize indicates a key was not exactly KeySize bytes.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrCiphertextShort indicates a message's nonce is not the size the
	// cipher expects.
	ErrCiphertextShort = errors.New("ciphertext too short")

	// ErrDecryptionFailed indicates GCM authentication failed.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Key is an AES-256 symmetric key.
type Key [KeySize]byte

// NewKey generates a random AES-256 key.
func NewKey() (Key, error) {
	var k Key
	if _, err := io.ReadFull(rand.Reader, k[:]); err != nil {
		return Key{}, err
	}
	return k, nil
}

// KeyFromBytes builds a Key from raw bytes, which must be exactly
// KeySize long.
func KeyFromBytes(b []byte) (Key, error) {
	var k Key
	if len(b) != KeySize {
		return Key{}, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidKeySize, KeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// Message is an encrypted payload together with the nonce used to
// produce it and the digest of the plaintext it authenticates, all
// in one CBOR-serializable shape.
type Message struct {
	Ciphertext []byte        `cbor:"1,keyasint"`
	Nonce      []byte        `cbor:"2,keyasint"`
	Digest     *digest.Digest `cbor:"3,keyasint,omitempty"`
}

// HasDigest reports whether the message carries the plaintext's digest.
func (m *Message) HasDigest() bool {
	return m.Digest != nil
}

func (k Key) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(k[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptWithDigest encrypts plaintext under k, authenticating
// plaintextDigest as additional data and recording it on the result
// so a decrypting party can verify it. testNonce, if non-nil, is used
// verbatim instead of a random nonce; production callers pass nil.
func (k Key) EncryptWithDigest(plaintext []byte, plaintextDigest digest.Digest, testNonce []byte) (*Message, error) {
	gcm, err := k.gcm()
	if err != nil {
		return nil, err
	}

	nonce := testNonce
	if nonce == nil {
		nonce = make([]byte, gcm.NonceSize())
		if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
			return nil, err
		}
	}

	aad := plaintextDigest.Bytes()
	ciphertext := gcm.Seal(nil, nonce, plaintext, aad)

	d := plaintextDigest
	return &Message{
		Ciphertext: ciphertext,
		Nonce:      nonce,
		Digest:     &d,
	}, nil
}

// Decrypt recovers the plaintext from msg under k, verifying its
// digest as additional authenticated data.
func (k Key) Decrypt(msg *Message) ([]byte, error) {
	gcm, err := k.gcm()
	if err != nil {
		return nil, err
	}

	if len(msg.Nonce) != gcm.NonceSize() {
		return nil, ErrCiphertextShort
	}

	var aad []byte
	if msg.Digest != nil {
		aad = msg.Digest.Bytes()
	}

	plaintext, err := gcm.Open(nil, msg.Nonce, msg.Ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

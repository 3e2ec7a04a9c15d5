package envelope

import (
	"crypto/rand"
	"io"
)

// minSaltLength and maxSaltLength bound the random salt addSalt
// generates; a variable length keeps the salted digest from leaking
// even the salt's byte count as a fixed signal.
const (
	minSaltLength = 8
	maxSaltLength = 16
)

// addSalt attaches a freshly generated salt assertion to e as a
// sibling assertion, giving the result a fresh digest without
// changing its existing assertions or subject.
func addSalt(e *Envelope) (*Envelope, error) {
	lengthRange := maxSaltLength - minSaltLength + 1
	lengthByte := make([]byte, 1)
	if _, err := io.ReadFull(rand.Reader, lengthByte); err != nil {
		return nil, err
	}
	length := minSaltLength + int(lengthByte[0])%lengthRange

	salt := make([]byte, length)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}

	saltEnv, err := NewAssertionWithPredObj(KnownValueSalt, salt)
	if err != nil {
		return nil, err
	}

	merged, _ := attachAssertion(e, saltEnv)
	return merged, nil
}

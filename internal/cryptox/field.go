package cryptox

import "github.com/dmitrijs2005/musicjournal/internal/common"

// Envelope binds a key to the Encrypt/Decrypt pair. It holds no mutable state
// and is safe for concurrent use.
type Envelope struct {
	key []byte
}

// NewEnvelope validates key and returns an Envelope using a private copy of it.
func NewEnvelope(key []byte) (Envelope, error) {
	if _, err := newCipher(key); err != nil {
		return Envelope{}, err
	}
	k := make([]byte, len(key))
	copy(k, key)
	return Envelope{key: k}, nil
}

func (e Envelope) Seal(plaintext string) (string, error) {
	return Encrypt(plaintext, e.key)
}

func (e Envelope) Open(blob string) (string, error) {
	return Decrypt(blob, e.key)
}

// SealOptional seals a present value and passes an absent one through as nil.
func (e Envelope) SealOptional(plaintext *string) (*string, error) {
	if plaintext == nil {
		return nil, nil
	}
	blob, err := e.Seal(*plaintext)
	if err != nil {
		return nil, err
	}
	return &blob, nil
}

// OpenOptional is the inverse of SealOptional.
func (e Envelope) OpenOptional(blob *string) (*string, error) {
	if blob == nil {
		return nil, nil
	}
	plain, err := e.Open(*blob)
	if err != nil {
		return nil, err
	}
	return &plain, nil
}

// Wipe zeroes the bound key. The envelope must not be used afterwards.
func (e Envelope) Wipe() {
	common.WipeByteArray(e.key)
}

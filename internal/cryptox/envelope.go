// Package cryptox implements the field-level envelope used to keep journal
// content encrypted at rest.
//
// A sealed value is the text "<hex iv>:<hex ciphertext>" where the cipher is
// AES-256 in CBC mode with PKCS#7 padding and a fresh 16-byte IV is drawn for
// every call. The format is stable: any value written by an earlier release
// must decrypt with the same key.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the required key length in bytes (AES-256).
const KeySize = 32

const separator = ":"

// randRead is a seam for tests that need to observe or break IV generation.
var randRead = rand.Read

// ParseKey decodes a hex-encoded 32-byte key.
func ParseKey(s string) ([]byte, error) {
	key, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidKey, err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", common.ErrInvalidKey, KeySize, len(key))
	}
	return key, nil
}

// DeriveKey stretches a passphrase into a 32-byte key with argon2id.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, KeySize)
}

// Encrypt seals plaintext under key.
func Encrypt(plaintext string, key []byte) (string, error) {
	block, err := newCipher(key)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := randRead(iv); err != nil {
		return "", fmt.Errorf("iv generation: %w", err)
	}

	padded := pad([]byte(plaintext), aes.BlockSize)
	ct := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ct, padded)

	return hex.EncodeToString(iv) + separator + hex.EncodeToString(ct), nil
}

// Decrypt opens a value produced by Encrypt. Every failure, including a wrong
// key, is reported as an error wrapping common.ErrDecryption.
func Decrypt(blob string, key []byte) (string, error) {
	block, err := newCipher(key)
	if err != nil {
		return "", err
	}

	ivHex, ctHex, ok := strings.Cut(blob, separator)
	if !ok {
		return "", decryptErr("missing separator")
	}

	iv, err := hex.DecodeString(ivHex)
	if err != nil {
		return "", decryptErr("iv: " + err.Error())
	}
	if len(iv) != aes.BlockSize {
		return "", decryptErr(fmt.Sprintf("iv length %d", len(iv)))
	}

	ct, err := hex.DecodeString(ctHex)
	if err != nil {
		return "", decryptErr("ciphertext: " + err.Error())
	}
	if len(ct) == 0 || len(ct)%aes.BlockSize != 0 {
		return "", decryptErr(fmt.Sprintf("ciphertext length %d", len(ct)))
	}

	plain := make([]byte, len(ct))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ct)

	plain, err = unpad(plain, aes.BlockSize)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", decryptErr("plaintext is not valid UTF-8")
	}
	return string(plain), nil
}

func newCipher(key []byte) (cipher.Block, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", common.ErrInvalidKey, KeySize, len(key))
	}
	return aes.NewCipher(key)
}

func decryptErr(reason string) error {
	return fmt.Errorf("%w: %s", common.ErrDecryption, reason)
}

func pad(b []byte, size int) []byte {
	n := size - len(b)%size
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func unpad(b []byte, size int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > size || n > len(b) {
		return nil, decryptErr("bad padding")
	}
	for _, c := range b[len(b)-n:] {
		if int(c) != n {
			return nil, decryptErr("bad padding")
		}
	}
	return b[:len(b)-n], nil
}

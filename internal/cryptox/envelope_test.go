package cryptox

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func testKey(b byte) []byte {
	k := make([]byte, KeySize)
	for i := range k {
		k[i] = b + byte(i)
	}
	return k
}

func testEncryptDecrypt_RoundTrip(t *rapid.T) {
	key := rapid.SliceOfN(rapid.Byte(), KeySize, KeySize).Draw(t, "key")
	plain := rapid.String().Draw(t, "plain")

	blob, err := Encrypt(plain, key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	got, err := Decrypt(blob, key)
	if err != nil {
		t.Fatalf("decrypt: %v", err)
	}
	if got != plain {
		t.Fatalf("round trip mismatch: got %q want %q", got, plain)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	rapid.Check(t, testEncryptDecrypt_RoundTrip)
}

func testEncrypt_FreshIVEachCall(t *rapid.T) {
	plain := rapid.String().Draw(t, "plain")
	key := testKey(7)

	a, err := Encrypt(plain, key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	b, err := Encrypt(plain, key)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	if a == b {
		t.Fatalf("two encryptions of %q produced the same blob", plain)
	}
	ivA, _, _ := strings.Cut(a, ":")
	ivB, _, _ := strings.Cut(b, ":")
	if ivA == ivB {
		t.Fatalf("iv reused")
	}
}

func TestEncrypt_FreshIVEachCall(t *testing.T) {
	rapid.Check(t, testEncrypt_FreshIVEachCall)
}

func TestEncrypt_Format(t *testing.T) {
	blob, err := Encrypt("My favourite song", testKey(1))
	require.NoError(t, err)

	ivHex, ctHex, ok := strings.Cut(blob, ":")
	require.True(t, ok)
	assert.Len(t, ivHex, 32, "16-byte iv as hex")

	ct, err := hex.DecodeString(ctHex)
	require.NoError(t, err)
	assert.Equal(t, 32, len(ct), "17 bytes pad to two blocks")
	assert.Equal(t, strings.ToLower(blob), blob, "lowercase hex")
}

func TestEncrypt_EmptyString(t *testing.T) {
	key := testKey(3)
	blob, err := Encrypt("", key)
	require.NoError(t, err)

	_, ctHex, _ := strings.Cut(blob, ":")
	assert.Len(t, ctHex, 32, "empty input still yields one padded block")

	got, err := Decrypt(blob, key)
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestEncrypt_InvalidKey(t *testing.T) {
	_, err := Encrypt("x", []byte("short"))
	require.ErrorIs(t, err, common.ErrInvalidKey)

	_, err = Decrypt("00:00", make([]byte, 16))
	require.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestEncrypt_RandFailure(t *testing.T) {
	orig := randRead
	t.Cleanup(func() { randRead = orig })
	randRead = func(b []byte) (int, error) { return 0, errors.New("no entropy") }

	_, err := Encrypt("x", testKey(1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entropy")
}

func TestDecrypt_WrongKey(t *testing.T) {
	plain := strings.Repeat("a long journal entry about a song, ", 40)
	blob, err := Encrypt(plain, testKey(1))
	require.NoError(t, err)

	got, err := Decrypt(blob, testKey(100))
	require.ErrorIs(t, err, common.ErrDecryption)
	assert.Empty(t, got)
}

func TestDecrypt_Malformed(t *testing.T) {
	key := testKey(9)
	good, err := Encrypt("hello", key)
	require.NoError(t, err)
	iv, ct, _ := strings.Cut(good, ":")

	cases := map[string]string{
		"no separator":       iv + ct,
		"empty":              "",
		"bad iv hex":         "zz" + iv[2:] + ":" + ct,
		"short iv":           iv[:16] + ":" + ct,
		"bad ct hex":         iv + ":" + "xyz",
		"empty ct":           iv + ":",
		"ct not block sized": iv + ":" + ct[:30],
	}
	for name, blob := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decrypt(blob, key)
			require.ErrorIs(t, err, common.ErrDecryption)
		})
	}
}

func TestDecrypt_SplitsOnFirstSeparator(t *testing.T) {
	key := testKey(2)
	blob, err := Encrypt("a:b:c", key)
	require.NoError(t, err)

	got, err := Decrypt(blob, key)
	require.NoError(t, err)
	assert.Equal(t, "a:b:c", got)

	_, err = Decrypt(blob+":extra", key)
	require.ErrorIs(t, err, common.ErrDecryption)
}

func TestParseKey(t *testing.T) {
	k := testKey(0)
	got, err := ParseKey(hex.EncodeToString(k))
	require.NoError(t, err)
	assert.Equal(t, k, got)

	_, err = ParseKey("abcd")
	require.ErrorIs(t, err, common.ErrInvalidKey)

	_, err = ParseKey("not hex at all")
	require.ErrorIs(t, err, common.ErrInvalidKey)
}

func TestDeriveKey_Deterministic(t *testing.T) {
	a := DeriveKey([]byte("passphrase"), []byte("salt-salt-salt-1"))
	b := DeriveKey([]byte("passphrase"), []byte("salt-salt-salt-1"))
	c := DeriveKey([]byte("passphrase"), []byte("salt-salt-salt-2"))

	assert.Len(t, a, KeySize)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

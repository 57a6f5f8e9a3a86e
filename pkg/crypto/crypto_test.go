package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecrypt(t *testing.T) {
	sealed, err := Encrypt("+60 12-345 6789", "short-key")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "6789")

	plain, err := Decrypt(sealed, "short-key")
	require.NoError(t, err)
	assert.Equal(t, "+60 12-345 6789", plain)
}

func TestEncrypt_FreshNonce(t *testing.T) {
	a, err := Encrypt("same", "k")
	require.NoError(t, err)
	b, err := Encrypt("same", "k")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecrypt_WrongKey(t *testing.T) {
	sealed, err := Encrypt("secret", "key-one")
	require.NoError(t, err)

	_, err = Decrypt(sealed, "key-two")
	assert.ErrorIs(t, err, ErrCiphertext)
}

func TestDecrypt_Tampered(t *testing.T) {
	sealed, err := Encrypt("secret", "k")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw), "k")
	assert.ErrorIs(t, err, ErrCiphertext)

	_, err = Decrypt("not base64!", "k")
	assert.ErrorIs(t, err, ErrCiphertext)

	_, err = Decrypt(base64.StdEncoding.EncodeToString([]byte("abc")), "k")
	assert.ErrorIs(t, err, ErrCiphertext)
}

func TestDeriveKey_Length(t *testing.T) {
	assert.Len(t, DeriveKey(""), 32)
	assert.Len(t, DeriveKey("a much longer key than thirty two bytes in total"), 32)
}

package cryptobox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encryptParts(t *testing.T, plaintext []byte) (ciphertext, key, iv, tag []byte) {
	t.Helper()

	key = make([]byte, 32)
	iv = make([]byte, 12)
	_, err := rand.Read(key)
	require.NoError(t, err)
	_, err = rand.Read(iv)
	require.NoError(t, err)

	block, err := aes.NewCipher(key)
	require.NoError(t, err)
	gcm, err := cipher.NewGCM(block)
	require.NoError(t, err)

	sealed := gcm.Seal(nil, iv, plaintext, nil)
	split := len(sealed) - gcm.Overhead()
	return sealed[:split], key, iv, sealed[split:]
}

func TestDecryptRoundTrip(t *testing.T) {
	plaintext := []byte("traceback (most recent call last): ...")
	ciphertext, key, iv, tag := encryptParts(t, plaintext)

	got, err := Decrypt(ciphertext, key, iv, tag)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	ciphertext, key, iv, tag := encryptParts(t, []byte("clipboard text"))
	ciphertext[0] ^= 0xff

	_, err := Decrypt(ciphertext, key, iv, tag)
	assert.Error(t, err)
}

func TestDecryptWrongKey(t *testing.T) {
	ciphertext, _, iv, tag := encryptParts(t, []byte("clipboard text"))
	wrongKey := make([]byte, 32)

	_, err := Decrypt(ciphertext, wrongKey, iv, tag)
	assert.Error(t, err)
}

func TestDecryptBadKeyLength(t *testing.T) {
	_, err := Decrypt([]byte{1}, []byte{2, 3}, []byte{4}, []byte{5})
	assert.Error(t, err)
}

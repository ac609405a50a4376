// Package cryptobox decrypts the client's clipboard payloads.
//
// The client encrypts clipboard text with AES-256-GCM and sends the
// ciphertext, key, nonce, and authentication tag as separate fields; Open
// expects ciphertext||tag, so the pieces are rejoined here. Decryption
// failure is never fatal to heartbeat processing — callers drop the
// clipboard context and continue.
package cryptobox

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// Decrypt recovers clipboard plaintext from its AES-256-GCM parts.
func Decrypt(ciphertext, key, iv, tag []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("invalid clipboard key: %w", err)
	}

	gcm, err := cipher.NewGCMWithNonceSize(block, len(iv))
	if err != nil {
		return nil, fmt.Errorf("invalid clipboard nonce size: %w", err)
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := gcm.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("clipboard decryption failed: %w", err)
	}
	return plaintext, nil
}

// Package vault encrypts small secrets at rest, such as the AI provider
// API key stored in user preferences.
package vault

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const saltSize = 32

// Vault seals and opens secrets with a key derived from a passphrase.
type Vault struct {
	passphrase string
}

// New creates a vault bound to a passphrase. The passphrase is typically a
// device-local secret, not something the user types per call.
func New(passphrase string) *Vault {
	return &Vault{passphrase: passphrase}
}

// deriveKey runs Argon2id over the passphrase with the given salt.
func (v *Vault) deriveKey(salt []byte) []byte {
	return argon2.IDKey([]byte(v.passphrase), salt, 3, 64*1024, 4, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext and returns a self-contained base64 blob
// (salt || nonce || ciphertext).
func (v *Vault) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	aead, err := chacha20poly1305.NewX(v.deriveKey(salt))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := append(salt, aead.Seal(nonce, nonce, plaintext, nil)...)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Open decrypts a blob produced by Seal.
func (v *Vault) Open(sealed string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, fmt.Errorf("failed to decode sealed data: %w", err)
	}
	if len(raw) < saltSize {
		return nil, errors.New("invalid sealed data")
	}

	salt := raw[:saltSize]
	rest := raw[saltSize:]

	aead, err := chacha20poly1305.NewX(v.deriveKey(salt))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	if len(rest) < aead.NonceSize() {
		return nil, errors.New("invalid sealed data")
	}
	nonce := rest[:aead.NonceSize()]
	ciphertext := rest[aead.NonceSize():]

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong passphrase?): %w", err)
	}

	return plaintext, nil
}

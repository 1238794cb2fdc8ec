package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// SecretBox encrypts small secrets at rest (TOTP seeds) with AES-256-GCM.
// Output layout: [12-byte nonce][ciphertext][16-byte tag].
type SecretBox struct {
	aead cipher.AEAD
}

// NewSecretBox derives the AES-256 key from keyMaterial with SHA-256.
func NewSecretBox(keyMaterial []byte) (*SecretBox, error) {
	if len(keyMaterial) == 0 {
		return nil, errors.New("cryptox: empty master key")
	}
	key := sha256.Sum256(keyMaterial)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &SecretBox{aead: gcm}, nil
}

// LoadMasterKey reads key material from path. An empty path yields an
// ephemeral random key; secrets sealed with it do not survive a restart.
func LoadMasterKey(path string) (key []byte, ephemeral bool, err error) {
	if path == "" {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, false, fmt.Errorf("failed to generate ephemeral master key: %w", err)
		}
		return key, true, nil
	}

	key, err = os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read master key file: %w", err)
	}
	return key, false, nil
}

// EncryptSecret seals plaintext under a fresh random nonce.
func (b *SecretBox) EncryptSecret(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, b.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return b.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// DecryptSecret opens data produced by EncryptSecret.
func (b *SecretBox) DecryptSecret(data []byte) ([]byte, error) {
	n := b.aead.NonceSize()
	if len(data) < n {
		return nil, errors.New("ciphertext too short")
	}

	plaintext, err := b.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}

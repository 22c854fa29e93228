// Package crypto encrypts the secrets stored at rest: login passwords and
// serialized team server credentials.
//
// Encryption is deterministic: the GCM nonce is an HMAC of the plaintext, so equal
// plaintexts under one key produce equal ciphertexts. This lets logins be verified
// by comparing ciphertexts. It also reveals equality of stored values to anyone who
// can read the table, which is acceptable for this data.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

var (
	ErrEmptySecret       = errors.New("crypto: secret key is empty")
	ErrMalformedCipher   = errors.New("crypto: malformed ciphertext")
	ErrDecryptionFailure = errors.New("crypto: decryption failed")
)

const (
	keySize        = 32
	encryptionInfo = "team-work-tracker/encryption"
	nonceInfo      = "team-work-tracker/nonce"
)

// Cipher is a deterministic AES-256-GCM string cipher.
type Cipher struct {
	aead     cipher.AEAD
	nonceKey []byte
}

// NewCipher derives the encryption and nonce keys from secret with HKDF-SHA256.
func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	kdf := hkdf.New(sha256.New, []byte(secret), nil, []byte(encryptionInfo))
	encryptionKey := make([]byte, keySize)
	if _, err := io.ReadFull(kdf, encryptionKey); err != nil {
		return nil, fmt.Errorf("failed to derive encryption key: %w", err)
	}

	kdf = hkdf.New(sha256.New, []byte(secret), nil, []byte(nonceInfo))
	nonceKey := make([]byte, keySize)
	if _, err := io.ReadFull(kdf, nonceKey); err != nil {
		return nil, fmt.Errorf("failed to derive nonce key: %w", err)
	}

	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &Cipher{aead: aead, nonceKey: nonceKey}, nil
}

// Encrypt returns base64url(nonce || ciphertext || tag).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := c.nonce([]byte(plaintext))
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (c *Cipher) Decrypt(ciphertext string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedCipher, err)
	}

	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize+c.aead.Overhead() {
		return "", ErrMalformedCipher
	}

	nonce, sealed := data[:nonceSize], data[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrDecryptionFailure
	}

	// A valid tag with a nonce we would not have produced means the value was not ours.
	if !hmac.Equal(nonce, c.nonce(plaintext)) {
		return "", ErrDecryptionFailure
	}

	return string(plaintext), nil
}

func (c *Cipher) nonce(plaintext []byte) []byte {
	mac := hmac.New(sha256.New, c.nonceKey)
	mac.Write(plaintext)
	return mac.Sum(nil)[:c.aead.NonceSize()]
}

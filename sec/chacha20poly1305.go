package sec

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Read https://pkg.go.dev/golang.org/x/crypto/chacha20poly1305

type XChaCha20Poly1305Cipher struct {
	aead       cipher.AEAD
	encodeFunc func([]byte) string          // e.g. base64.RawURLEncoding.EncodeToString, hex.EncodeToString
	decodeFunc func(string) ([]byte, error) // e.g. base64.RawURLEncoding.DecodeString, hex.DecodeString
}

func NewXChaCha20Poly1305Cipher(
	key []byte,
	encodeFunc func([]byte) string,
	decodeFunc func(string) ([]byte, error),
) (*XChaCha20Poly1305Cipher, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	return &XChaCha20Poly1305Cipher{
		aead:       aead,
		encodeFunc: encodeFunc,
		decodeFunc: decodeFunc,
	}, nil
}

func NewXChaCha20Poly1305CipherBase64(key []byte) (*XChaCha20Poly1305Cipher, error) {
	return NewXChaCha20Poly1305Cipher(
		key,
		base64.RawURLEncoding.EncodeToString,
		base64.RawURLEncoding.DecodeString,
	)
}

// KeyFromConfig accepts a 32-char raw key or a base64 (std or url, padded or not) 32-byte key
func KeyFromConfig(s string) ([]byte, error) {
	if len(s) == chacha20poly1305.KeySize {
		return []byte(s), nil
	}
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		if b, err := enc.DecodeString(s); err == nil && len(b) == chacha20poly1305.KeySize {
			return b, nil
		}
	}
	return nil, fmt.Errorf("encryption key must be %d raw bytes or their base64", chacha20poly1305.KeySize)
}

// Seal encrypts with a fresh random nonce and returns nonce||ciphertext
func (c *XChaCha20Poly1305Cipher) Seal(plaintext []byte) ([]byte, error) {
	// leave capacity for the ciphertext
	nonce := make([]byte, c.aead.NonceSize(), c.aead.NonceSize()+len(plaintext)+c.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open reverses Seal and checks it wasn't tampered with
func (c *XChaCha20Poly1305Cipher) Open(data []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(data) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	nonce, ciphertext := data[:nonceSize], data[nonceSize:]
	return c.aead.Open(nil, nonce, ciphertext, nil)
}

func (c *XChaCha20Poly1305Cipher) EncryptEncode(plaintext []byte) (string, error) {
	sealed, err := c.Seal(plaintext)
	if err != nil {
		return "", err
	}
	return c.encodeFunc(sealed), nil
}

func (c *XChaCha20Poly1305Cipher) DecodeDecrypt(encodedCiphertext string) ([]byte, error) {
	data, err := c.decodeFunc(encodedCiphertext)
	if err != nil {
		return nil, err
	}
	return c.Open(data)
}

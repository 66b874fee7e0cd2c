// Package seal provides optional shared-key sealing of message text.
// Nodes that share a key file exchange sealed bodies over the mesh; nodes
// without the key see opaque base64 blobs, which is all the privacy this
// layer promises.
package seal

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
)

const sealedPrefix = "enc:"

// LoadOrCreateKey reads a 32-byte key from path, generating and writing a
// fresh one if the file does not exist yet.
func LoadOrCreateKey(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("key file %s: expected %d bytes, got %d", path, chacha20poly1305.KeySize, len(key))
		}
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create key dir: %w", err)
		}
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}

// Sealer seals and opens message text with XChaCha20-Poly1305.
type Sealer struct {
	aead cipher.AEAD
}

// New builds a Sealer from a 32-byte key.
func New(key []byte) (*Sealer, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// Seal encrypts text and returns a self-describing string form.
func (s *Sealer) Seal(text string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(text), nil)
	return sealedPrefix + base64.StdEncoding.EncodeToString(sealed), nil
}

// OpenInline finds a sealed segment inside a formatted line (e.g.
// "[12:03] [maya]: enc:...") and replaces it with its plaintext. Lines
// without a sealed segment, and segments the key cannot open, come back
// unchanged.
func (s *Sealer) OpenInline(line string) string {
	i := strings.Index(line, sealedPrefix)
	if i < 0 {
		return line
	}
	plain, err := s.Open(line[i:])
	if err != nil {
		return line
	}
	return line[:i] + plain
}

// Open decrypts a string produced by Seal. Plain text without the sealed
// prefix passes through unchanged, so mixed-key meshes stay readable.
func (s *Sealer) Open(text string) (string, error) {
	if len(text) < len(sealedPrefix) || text[:len(sealedPrefix)] != sealedPrefix {
		return text, nil
	}

	raw, err := base64.StdEncoding.DecodeString(text[len(sealedPrefix):])
	if err != nil {
		return "", fmt.Errorf("decode sealed text: %w", err)
	}
	if len(raw) < s.aead.NonceSize() {
		return "", errors.New("sealed text too short")
	}

	nonce, body := raw[:s.aead.NonceSize()], raw[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, body, nil)
	if err != nil {
		return "", fmt.Errorf("open sealed text: %w", err)
	}
	return string(plain), nil
}

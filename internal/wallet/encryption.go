package wallet

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// Sealed key layout:
// [salt(32)][memory(4)][iterations(4)][parallelism(1)][nonce(24)][ciphertext...]
const (
	SaltSize   = 32
	headerSize = SaltSize + 4 + 4 + 1
)

// ErrWrongPassword is returned when a sealed key fails authentication.
// A corrupted file and a wrong password are indistinguishable.
var ErrWrongPassword = errors.New("wrong password or corrupted wallet")

// EncryptionParams holds Argon2id parameters.
type EncryptionParams struct {
	Memory      uint32 // in KiB
	Iterations  uint32
	Parallelism uint8
}

// DefaultParams returns the Argon2id parameters used for new wallets.
func DefaultParams() EncryptionParams {
	return EncryptionParams{
		Memory:      64 * 1024, // 64 MB
		Iterations:  3,
		Parallelism: 4,
	}
}

func (p EncryptionParams) validate() error {
	if p.Memory == 0 || p.Iterations == 0 || p.Parallelism == 0 {
		return fmt.Errorf("invalid argon2 params: memory=%d iterations=%d parallelism=%d",
			p.Memory, p.Iterations, p.Parallelism)
	}
	return nil
}

func deriveKey(password, salt []byte, params EncryptionParams) []byte {
	return argon2.IDKey(password, salt, params.Iterations, params.Memory,
		params.Parallelism, chacha20poly1305.KeySize)
}

// Seal encrypts secret under password with Argon2id + XChaCha20-Poly1305.
// aad is authenticated but not encrypted; the same bytes must be given to Open.
func Seal(secret, password, aad []byte, params EncryptionParams) ([]byte, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}

	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	key := deriveKey(password, salt, params)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, headerSize+len(nonce)+len(secret)+aead.Overhead())
	out = append(out, salt...)
	out = binary.LittleEndian.AppendUint32(out, params.Memory)
	out = binary.LittleEndian.AppendUint32(out, params.Iterations)
	out = append(out, params.Parallelism)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, secret, aad), nil
}

// Open reverses Seal. It returns ErrWrongPassword when authentication fails.
func Open(sealed, password, aad []byte) ([]byte, error) {
	nonceSize := chacha20poly1305.NonceSizeX
	minSize := headerSize + nonceSize + chacha20poly1305.Overhead
	if len(sealed) < minSize {
		return nil, fmt.Errorf("sealed key too short: %d bytes, need at least %d", len(sealed), minSize)
	}

	params := EncryptionParams{
		Memory:      binary.LittleEndian.Uint32(sealed[SaltSize:]),
		Iterations:  binary.LittleEndian.Uint32(sealed[SaltSize+4:]),
		Parallelism: sealed[SaltSize+8],
	}
	if err := params.validate(); err != nil {
		return nil, err
	}
	salt := sealed[:SaltSize]
	nonce := sealed[headerSize : headerSize+nonceSize]

	key := deriveKey(password, salt, params)
	defer zero(key)

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	plaintext, err := aead.Open(nil, nonce, sealed[headerSize+nonceSize:], aad)
	if err != nil {
		return nil, ErrWrongPassword
	}
	return plaintext, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

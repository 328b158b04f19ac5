package types

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mr-tron/base58"
)

// KeyType identifies the signature scheme of a public key.
type KeyType uint8

// Valid reports whether t is a key type Helium addresses can carry.
func (t KeyType) Valid() bool {
	return t == KeyTypeECCCompact || t == KeyTypeEd25519
}

const (
	KeyTypeECCCompact KeyType = 0
	KeyTypeEd25519    KeyType = 1
)

// PublicKeySize is the length of a binary public key: one tag byte
// (network<<4 | key type) followed by 32 key bytes. Both key types use
// 32 bytes; ecc_compact stores the x coordinate of a P-256 point.
const PublicKeySize = 1 + ed25519.PublicKeySize

// b58Version is the base58check version byte used for account addresses.
const b58Version = 0x00

// ErrInvalidPublicKey is returned for keys that fail to parse.
var ErrInvalidPublicKey = errors.New("invalid public key")

// PublicKey is a Helium account address in its binary form.
type PublicKey [PublicKeySize]byte

// NewPublicKey wraps a raw ed25519 key for the given network.
func NewPublicKey(network Network, key ed25519.PublicKey) (PublicKey, error) {
	if !network.Valid() {
		return PublicKey{}, fmt.Errorf("%w: unknown network %d", ErrInvalidPublicKey, uint8(network))
	}
	if len(key) != ed25519.PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w: ed25519 key must be %d bytes, got %d",
			ErrInvalidPublicKey, ed25519.PublicKeySize, len(key))
	}
	var pk PublicKey
	pk[0] = byte(network)<<4 | byte(KeyTypeEd25519)
	copy(pk[1:], key)
	return pk, nil
}

// PublicKeyFromBytes validates and copies a binary public key.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	if len(b) != PublicKeySize {
		return PublicKey{}, fmt.Errorf("%w: must be %d bytes, got %d", ErrInvalidPublicKey, PublicKeySize, len(b))
	}
	var pk PublicKey
	copy(pk[:], b)
	if !pk.Network().Valid() {
		return PublicKey{}, fmt.Errorf("%w: unknown network %d", ErrInvalidPublicKey, b[0]>>4)
	}
	if !pk.KeyType().Valid() {
		return PublicKey{}, fmt.Errorf("%w: unsupported key type %d", ErrInvalidPublicKey, pk.KeyType())
	}
	return pk, nil
}

// ParsePublicKey decodes a base58check address string.
func ParsePublicKey(s string) (PublicKey, error) {
	if s == "" {
		return PublicKey{}, fmt.Errorf("%w: empty address", ErrInvalidPublicKey)
	}
	raw, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	// version(1) | key(33) | checksum(4)
	if len(raw) != 1+PublicKeySize+4 {
		return PublicKey{}, fmt.Errorf("%w: decoded length %d", ErrInvalidPublicKey, len(raw))
	}
	payload, sum := raw[:len(raw)-4], raw[len(raw)-4:]
	if want := checksum(payload); !bytes.Equal(sum, want[:]) {
		return PublicKey{}, fmt.Errorf("%w: checksum mismatch", ErrInvalidPublicKey)
	}
	if payload[0] != b58Version {
		return PublicKey{}, fmt.Errorf("%w: unexpected version byte %d", ErrInvalidPublicKey, payload[0])
	}
	return PublicKeyFromBytes(payload[1:])
}

// IsZero returns true if the key is unset.
func (pk PublicKey) IsZero() bool {
	return pk == PublicKey{}
}

// Network returns the network encoded in the key's tag byte.
func (pk PublicKey) Network() Network {
	return Network(pk[0] >> 4)
}

// KeyType returns the key type encoded in the key's tag byte.
func (pk PublicKey) KeyType() KeyType {
	return KeyType(pk[0] & 0x0f)
}

// Ed25519 returns the raw key bytes as an ed25519 key. Only meaningful
// when KeyType is KeyTypeEd25519.
func (pk PublicKey) Ed25519() ed25519.PublicKey {
	k := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(k, pk[1:])
	return k
}

// Bytes returns a copy of the binary key.
func (pk PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	copy(b, pk[:])
	return b
}

// String returns the base58check address.
func (pk PublicKey) String() string {
	payload := make([]byte, 0, 1+PublicKeySize+4)
	payload = append(payload, b58Version)
	payload = append(payload, pk[:]...)
	sum := checksum(payload)
	payload = append(payload, sum[:]...)
	return base58.Encode(payload)
}

// MarshalJSON encodes the key as its address string.
func (pk PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(pk.String())
}

// UnmarshalJSON decodes an address string.
func (pk *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePublicKey(s)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// Set implements pflag.Value so malformed addresses fail at flag parsing.
func (pk *PublicKey) Set(s string) error {
	parsed, err := ParsePublicKey(s)
	if err != nil {
		return err
	}
	*pk = parsed
	return nil
}

// Type implements pflag.Value.
func (pk *PublicKey) Type() string {
	return "pubkey"
}

// checksum is the first four bytes of SHA256(SHA256(payload)).
func checksum(payload []byte) [4]byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	var out [4]byte
	copy(out[:], second[:4])
	return out
}

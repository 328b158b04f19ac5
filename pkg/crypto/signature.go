package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"

	"github.com/Klingon-tech/helium-wallet/pkg/types"
)

// SignatureSize is the length of an ed25519 signature.
const SignatureSize = ed25519.SignatureSize

// SeedSize is the length of an ed25519 private key seed.
const SeedSize = ed25519.SeedSize

// Signer signs transaction payloads.
type Signer interface {
	// Sign produces a signature over the full message bytes.
	Sign(msg []byte) ([]byte, error)
	// PublicKey returns the signer's account address.
	PublicKey() types.PublicKey
}

// Keypair is an ed25519 signing key bound to a network.
type Keypair struct {
	priv   ed25519.PrivateKey
	public types.PublicKey
}

// GenerateKeypair creates a new random keypair for the network.
func GenerateKeypair(network types.Network) (*Keypair, error) {
	seed := make([]byte, SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("generate seed: %w", err)
	}
	kp, err := KeypairFromSeed(network, seed)
	zero(seed)
	return kp, err
}

// KeypairFromSeed derives a keypair from a 32-byte ed25519 seed.
func KeypairFromSeed(network types.Network, seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	pub, err := types.NewPublicKey(network, priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	return &Keypair{priv: priv, public: pub}, nil
}

// Sign signs msg with the private key.
func (k *Keypair) Sign(msg []byte) ([]byte, error) {
	if len(k.priv) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("keypair has no private key")
	}
	return ed25519.Sign(k.priv, msg), nil
}

// PublicKey returns the account address of the keypair.
func (k *Keypair) PublicKey() types.PublicKey {
	return k.public
}

// Seed returns a copy of the 32-byte seed.
func (k *Keypair) Seed() []byte {
	seed := make([]byte, SeedSize)
	copy(seed, k.priv.Seed())
	return seed
}

// Zero wipes the private key. The keypair cannot sign afterwards.
func (k *Keypair) Zero() {
	zero(k.priv)
	k.priv = nil
}

// Verify checks an ed25519 signature made by pub over msg.
// Returns false for non-ed25519 keys.
func Verify(pub types.PublicKey, msg, sig []byte) bool {
	if pub.KeyType() != types.KeyTypeEd25519 || len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(pub.Ed25519(), msg, sig)
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

package wallet

import (
	"fmt"
	"strings"

	"github.com/Klingon-tech/helium-wallet/pkg/crypto"
	"github.com/tyler-smith/go-bip39"
)

// MnemonicWords is the length of a wallet backup phrase.
const MnemonicWords = 24

// MnemonicFromSeed encodes a 32-byte ed25519 seed as a 24-word BIP-39
// phrase. The seed is the mnemonic's entropy, not a PBKDF2 derivation.
func MnemonicFromSeed(seed []byte) (string, error) {
	if len(seed) != crypto.SeedSize {
		return "", fmt.Errorf("seed must be %d bytes, got %d", crypto.SeedSize, len(seed))
	}
	mnemonic, err := bip39.NewMnemonic(seed)
	if err != nil {
		return "", fmt.Errorf("encode mnemonic: %w", err)
	}
	return mnemonic, nil
}

// SeedFromMnemonic recovers the ed25519 seed from a 24-word phrase.
func SeedFromMnemonic(mnemonic string) ([]byte, error) {
	mnemonic = strings.Join(strings.Fields(strings.ToLower(mnemonic)), " ")
	if n := len(strings.Fields(mnemonic)); n != MnemonicWords {
		return nil, fmt.Errorf("mnemonic must have %d words, got %d", MnemonicWords, n)
	}
	seed, err := bip39.EntropyFromMnemonic(mnemonic)
	if err != nil {
		return nil, fmt.Errorf("invalid mnemonic: %w", err)
	}
	return seed, nil
}

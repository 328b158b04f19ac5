// Package wallet manages the encrypted key file the CLI signs with.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Klingon-tech/helium-wallet/internal/log"
	"github.com/Klingon-tech/helium-wallet/pkg/crypto"
	"github.com/Klingon-tech/helium-wallet/pkg/types"
)

// DefaultFile is the wallet path used when none is given.
const DefaultFile = "wallet.key"

const fileVersion = 1

var (
	// ErrExists is returned when Create would overwrite a wallet.
	ErrExists = errors.New("wallet file already exists")

	// ErrShardedWallet is returned when more than one wallet file is given.
	ErrShardedWallet = errors.New("sharded wallets are not supported, pass a single wallet file")
)

// walletFile is the on-disk JSON format. Only the seed is encrypted;
// the public key is kept in the clear so the address is readable without
// a password, and is bound to the ciphertext as associated data.
type walletFile struct {
	Version      int             `json:"version"`
	CreatedAt    time.Time       `json:"created_at"`
	Network      types.Network   `json:"network"`
	PublicKey    types.PublicKey `json:"public_key"`
	EncryptedKey []byte          `json:"encrypted_key"`
}

// Wallet is a loaded, still encrypted wallet file.
type Wallet struct {
	path string
	file walletFile
}

// Create seals kp under password and writes it to path.
// An existing file is only replaced when force is set.
func Create(path string, kp *crypto.Keypair, password []byte, params EncryptionParams, force bool) (*Wallet, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrExists)
		}
	}
	if len(password) == 0 {
		return nil, errors.New("password must not be empty")
	}

	pub := kp.PublicKey()
	seed := kp.Seed()
	defer zero(seed)

	sealed, err := Seal(seed, password, pub.Bytes(), params)
	if err != nil {
		return nil, fmt.Errorf("encrypt key: %w", err)
	}

	w := &Wallet{
		path: path,
		file: walletFile{
			Version:      fileVersion,
			CreatedAt:    time.Now().UTC(),
			Network:      pub.Network(),
			PublicKey:    pub,
			EncryptedKey: sealed,
		},
	}
	if err := writeFile(path, &w.file); err != nil {
		return nil, err
	}
	log.Wallet.Debug().Str("path", path).Str("address", pub.String()).Msg("wallet created")
	return w, nil
}

// Load reads a wallet file without decrypting it.
func Load(path string) (*Wallet, error) {
	f, err := readFile(path)
	if err != nil {
		return nil, err
	}
	log.Wallet.Debug().Str("path", path).Str("address", f.PublicKey.String()).Msg("wallet loaded")
	return &Wallet{path: path, file: *f}, nil
}

// LoadFiles loads the wallet named by the --file arguments.
// Exactly one path is accepted.
func LoadFiles(paths []string) (*Wallet, error) {
	switch len(paths) {
	case 0:
		return nil, errors.New("no wallet file given")
	case 1:
		return Load(paths[0])
	default:
		return nil, fmt.Errorf("%d files given: %w", len(paths), ErrShardedWallet)
	}
}

// Path returns the file the wallet was read from.
func (w *Wallet) Path() string { return w.path }

// PublicKey returns the wallet address.
func (w *Wallet) PublicKey() types.PublicKey { return w.file.PublicKey }

// Network returns the network the wallet key belongs to.
func (w *Wallet) Network() types.Network { return w.file.Network }

// CreatedAt returns the time the wallet was written.
func (w *Wallet) CreatedAt() time.Time { return w.file.CreatedAt }

// Decrypt unseals the signing key. The caller should Zero the keypair once
// it has signed.
func (w *Wallet) Decrypt(password []byte) (*crypto.Keypair, error) {
	pub := w.file.PublicKey
	seed, err := Open(w.file.EncryptedKey, password, pub.Bytes())
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", w.path, err)
	}
	defer zero(seed)

	kp, err := crypto.KeypairFromSeed(w.file.Network, seed)
	if err != nil {
		return nil, fmt.Errorf("decrypt %s: %w", w.path, err)
	}
	if kp.PublicKey() != pub {
		kp.Zero()
		return nil, fmt.Errorf("decrypt %s: key does not match address %s", w.path, pub)
	}
	return kp, nil
}

func writeFile(path string, f *walletFile) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wallet: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}
	return nil
}

func readFile(path string) (*walletFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wallet: %w", err)
	}
	var f walletFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse wallet %s: %w", path, err)
	}
	if f.Version != fileVersion {
		return nil, fmt.Errorf("unsupported wallet version: %d", f.Version)
	}
	if f.PublicKey.IsZero() {
		return nil, fmt.Errorf("parse wallet %s: missing public key", path)
	}
	if f.PublicKey.KeyType() != types.KeyTypeEd25519 {
		return nil, fmt.Errorf("parse wallet %s: key type %d cannot sign, want ed25519", path, f.PublicKey.KeyType())
	}
	if f.PublicKey.Network() != f.Network {
		return nil, fmt.Errorf("parse wallet %s: public key is on %s, file says %s",
			path, f.PublicKey.Network(), f.Network)
	}
	return &f, nil
}

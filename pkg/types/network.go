// Package types defines the primitive values of the Helium wallet:
// networks, public keys, token amounts and memos.
package types

import (
	"fmt"
	"strings"
)

// Network identifies the Helium network a key belongs to.
type Network uint8

const (
	Mainnet Network = 0
	Testnet Network = 1
)

// String returns the lower-case network name.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return fmt.Sprintf("network(%d)", uint8(n))
	}
}

// Valid reports whether n is a known network.
func (n Network) Valid() bool {
	return n == Mainnet || n == Testnet
}

// ParseNetwork parses a network name ("mainnet" or "testnet").
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mainnet", "main", "":
		return Mainnet, nil
	case "testnet", "test":
		return Testnet, nil
	default:
		return 0, fmt.Errorf("unknown network %q", s)
	}
}

// MarshalText encodes the network by name.
func (n Network) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, fmt.Errorf("unknown network %d", uint8(n))
	}
	return []byte(n.String()), nil
}

// UnmarshalText decodes a network name.
func (n *Network) UnmarshalText(text []byte) error {
	parsed, err := ParseNetwork(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// Set implements pflag.Value.
func (n *Network) Set(s string) error {
	return n.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (n *Network) Type() string {
	return "network"
}

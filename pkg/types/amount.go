package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Decimals is the number of fractional digits of HNT and HST.
// The smallest unit of either token is called a bone.
const Decimals = 8

// BonesPerToken is 10^Decimals.
const BonesPerToken uint64 = 100_000_000

// ErrInvalidAmount is returned for amounts that fail to parse.
var ErrInvalidAmount = errors.New("invalid amount")

// HNT is an amount of the native token in bones.
type HNT uint64

// HST is an amount of security tokens in bones.
type HST uint64

// ParseHNT parses a decimal HNT amount such as "1.5" into bones.
func ParseHNT(s string) (HNT, error) {
	v, err := parseAmount(s)
	return HNT(v), err
}

// ParseHST parses a decimal HST amount into bones.
func ParseHST(s string) (HST, error) {
	v, err := parseAmount(s)
	return HST(v), err
}

// Bones returns the raw amount.
func (h HNT) Bones() uint64 { return uint64(h) }

// String formats the amount with all eight decimal places.
func (h HNT) String() string { return formatAmount(uint64(h)) }

// MarshalJSON encodes the amount as a JSON number with eight decimals.
func (h HNT) MarshalJSON() ([]byte, error) { return []byte(h.String()), nil }

// Set implements pflag.Value.
func (h *HNT) Set(s string) error {
	v, err := ParseHNT(s)
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// Type implements pflag.Value.
func (h *HNT) Type() string { return "hnt" }

// Bones returns the raw amount.
func (h HST) Bones() uint64 { return uint64(h) }

// String formats the amount with all eight decimal places.
func (h HST) String() string { return formatAmount(uint64(h)) }

// MarshalJSON encodes the amount as a JSON number with eight decimals.
func (h HST) MarshalJSON() ([]byte, error) { return []byte(h.String()), nil }

// formatAmount converts bones to a human-readable decimal string.
func formatAmount(bones uint64) string {
	whole := bones / BonesPerToken
	frac := bones % BonesPerToken
	return fmt.Sprintf("%d.%08d", whole, frac)
}

// parseAmount converts a decimal string to bones. Underscores may be used
// as digit separators ("1_000.5").
func parseAmount(s string) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	if s == "" {
		return 0, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: negative amount %q", ErrInvalidAmount, s)
	}

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && frac == "" {
		return 0, fmt.Errorf("%w: %q has no digits", ErrInvalidAmount, s)
	}
	if hasDot && frac == "" {
		return 0, fmt.Errorf("%w: %q has an empty fractional part", ErrInvalidAmount, s)
	}
	if len(frac) > Decimals {
		return 0, fmt.Errorf("%w: too many decimal places (max %d)", ErrInvalidAmount, Decimals)
	}
	digits := whole + frac + strings.Repeat("0", Decimals-len(frac))
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, s)
		}
	}

	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0, nil
	}
	v, err := uint256.FromDecimal(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: amount too large", ErrInvalidAmount)
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("%w: amount too large", ErrInvalidAmount)
	}
	return v.Uint64(), nil
}

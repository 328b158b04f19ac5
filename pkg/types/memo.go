package types

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// MemoSize is the maximum decoded size of a memo.
const MemoSize = 8

// ErrInvalidMemo is returned for memos that do not decode to at most 8 bytes.
var ErrInvalidMemo = errors.New("invalid memo")

// Memo is the opaque 64-bit value attached to a token burn.
// Its text form is the standard base64 encoding of the little-endian bytes.
type Memo uint64

// ParseMemo decodes a base64 memo. Inputs shorter than eight bytes are
// zero-padded; an empty string is the zero memo.
func ParseMemo(s string) (Memo, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidMemo, err)
	}
	if len(raw) > MemoSize {
		return 0, fmt.Errorf("%w: decodes to %d bytes, max %d", ErrInvalidMemo, len(raw), MemoSize)
	}
	var buf [MemoSize]byte
	copy(buf[:], raw)
	return Memo(binary.LittleEndian.Uint64(buf[:])), nil
}

// String returns the base64 form of the memo.
func (m Memo) String() string {
	var buf [MemoSize]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(m))
	return base64.StdEncoding.EncodeToString(buf[:])
}

// Set implements pflag.Value.
func (m *Memo) Set(s string) error {
	parsed, err := ParseMemo(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Type implements pflag.Value.
func (m *Memo) Type() string { return "base64" }

package savegame

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/zelda/internal/serialization"
)

// FormatVersion is the version of the file envelope, not of the payload.
const FormatVersion = 1

var magic = []byte("ZSAV")

const headerSize = 4 + 4 + blake2b.Size256

var (
	// ErrBadMagic is returned for data that is not a save file.
	ErrBadMagic = errors.New("not a save file")
	// ErrChecksum is returned when the payload digest does not match.
	ErrChecksum = errors.New("save file checksum mismatch")
)

// Encode wraps payload in the file envelope:
// magic "ZSAV", int32 format version, blake2b-256 of payload, payload.
func Encode(payload []byte) []byte {
	w := serialization.NewWriter(headerSize + len(payload))
	w.WriteBytes(magic)
	w.WriteInt(FormatVersion)
	sum := blake2b.Sum256(payload)
	w.WriteBytes(sum[:])
	w.WriteBytes(payload)
	return w.Bytes()
}

// Decode validates the envelope and returns the payload.
func Decode(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes, header needs %d", ErrBadMagic, len(data), headerSize)
	}
	r := serialization.NewReader(data)
	m, err := r.ReadBytes(len(magic))
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(m, magic) {
		return nil, fmt.Errorf("%w: magic %q", ErrBadMagic, m)
	}
	if _, err := r.ReadVersion(1, FormatVersion, "SaveFile"); err != nil {
		return nil, err
	}
	sum, err := r.ReadBytes(blake2b.Size256)
	if err != nil {
		return nil, err
	}
	payload, err := r.ReadBytes(r.Remaining())
	if err != nil {
		return nil, err
	}
	if got := blake2b.Sum256(payload); !bytes.Equal(got[:], sum) {
		return nil, ErrChecksum
	}
	return payload, nil
}

package session

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Handle is the opaque identity of a session. The zero Handle never names a
// live session; valid handles are minted only by NewHandle.
type Handle struct {
	id uuid.UUID
}

// NewHandle returns a fresh random handle.
func NewHandle() Handle {
	return Handle{id: uuid.New()}
}

// ParseHandle parses the canonical textual form produced by String.
func ParseHandle(s string) (Handle, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Handle{}, fmt.Errorf("parse handle: %w", err)
	}
	return Handle{id: id}, nil
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h.id == uuid.Nil
}

// Equal reports whether two handles name the same session.
func (h Handle) Equal(other Handle) bool {
	return h.id == other.id
}

func (h Handle) String() string {
	return h.id.String()
}

// MarshalCBOR encodes the handle as a 16-byte byte string.
func (h Handle) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(h.id[:])
}

// UnmarshalCBOR decodes a handle written by MarshalCBOR.
func (h *Handle) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := uuid.FromBytes(raw)
	if err != nil {
		return fmt.Errorf("decode handle: %w", err)
	}
	h.id = id
	return nil
}

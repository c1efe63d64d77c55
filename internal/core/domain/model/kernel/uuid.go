package kernel

import (
	"errors"
	"fmt"

	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
)

// canonicalUUIDLength is the length of the xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx form.
const canonicalUUIDLength = 36

var (
	// ErrUUIDIsNotConstructed is returned when validating a zero-value UUID.
	ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError("UUID must be created via NewUUID, UUIDFromString, or UUIDFromBytes")

	// ErrUUIDFormatIsInvalid is returned when a textual or binary identifier
	// cannot be parsed.
	ErrUUIDFormatIsInvalid = errors.New("invalid UUID format")
)

// UUID is an immutable identifier value object wrapping github.com/google/uuid.
// Two UUIDs are equal when their 128-bit values are equal, so UUID is usable
// as a map key.
//
// The zero value is invalid; build one with NewUUID, UUIDFromString or
// UUIDFromBytes.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{
		id: uuid.New(),
	}
}

// UUIDFromString parses the canonical hyphenated form
// "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx". Hex digits may be upper or lower
// case. Braced, URN and unhyphenated forms are rejected.
//
//	id, err := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")
//	if errors.Is(err, kernel.ErrUUIDFormatIsInvalid) {
//	    // bad request
//	}
func UUIDFromString(s string) (UUID, error) {
	if len(s) != canonicalUUIDLength {
		return UUID{}, fmt.Errorf("%w: %q must be %d characters", ErrUUIDFormatIsInvalid, s, canonicalUUIDLength)
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("%w: %w", ErrUUIDFormatIsInvalid, err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes builds a UUID from its 16-byte binary form, as stored by the
// database adapters. The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("%w: %w", ErrUUIDFormatIsInvalid, err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the lowercase canonical form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID for adapters that need the raw value.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

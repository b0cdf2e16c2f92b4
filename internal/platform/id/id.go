// Package id mints opaque identifiers for tool invocations.
//
// An id is a random (version 4) UUID written as 26 lowercase base32
// characters without padding, which keeps it URL-safe and shorter than the
// hyphenated form.
package id

import (
	"encoding/base32"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Length is the number of characters in every id.
const Length = 26

// ErrMalformed indicates a string that is not an id produced by NewID.
var ErrMalformed = errors.New("malformed id")

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a fresh invocation id.
func NewID() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return strings.ToLower(encoding.EncodeToString(u[:])), nil
}

// Parse recovers the UUID behind an id.
func Parse(s string) (uuid.UUID, error) {
	if len(s) != Length || strings.ToLower(s) != s {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	raw, err := encoding.DecodeString(strings.ToUpper(s))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	u, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return u, nil
}

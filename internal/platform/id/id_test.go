package id

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewIDFormat(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(id) != Length {
		t.Fatalf("expected %d-character id, got %d", Length, len(id))
	}
	for _, r := range id {
		if (r < 'a' || r > 'z') && (r < '2' || r > '7') {
			t.Fatalf("unexpected character %q in id", r)
		}
	}
}

func TestParseRecoversRandomUUID(t *testing.T) {
	id, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	u, err := Parse(id)
	if err != nil {
		t.Fatalf("parse %q: %v", id, err)
	}
	if u.Version() != 4 {
		t.Fatalf("expected version 4, got %d", u.Version())
	}
	if u.Variant() != uuid.RFC4122 {
		t.Fatalf("expected RFC 4122 variant, got %v", u.Variant())
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"short",
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"abcdefghijklmnopqrstuvwxy1",
		"abcdefghijklmnopqrstuvwxyz2",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if _, err := Parse(input); !errors.Is(err, ErrMalformed) {
				t.Fatalf("Parse(%q) error = %v, want %v", input, err, ErrMalformed)
			}
		})
	}
}

func TestNewIDIsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 64)
	for i := 0; i < 64; i++ {
		id, err := NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

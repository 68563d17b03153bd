package postgres

import (
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches pq unique violation code", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for 23505")
		}
	})

	t.Run("matches wrapped pq error", func(t *testing.T) {
		err := fmt.Errorf("insert user: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for wrapped 23505")
		}
	})

	t.Run("matches by message fallback", func(t *testing.T) {
		err := fakeErr(`pq: duplicate key value violates unique constraint "users_email_key"`)
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for duplicate key message")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := &pq.Error{Code: "23503"}
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})
}

func TestNullableString(t *testing.T) {
	if got := nullableString("  "); got != nil {
		t.Fatalf("expected nil for blank string, got %v", *got)
	}
	if got := nullableString("x"); got == nil || *got != "x" {
		t.Fatalf("unexpected nullable string: %v", got)
	}
	if got := stringFromNullable(nil); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }

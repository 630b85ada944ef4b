package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestTranslate(t *testing.T) {
	other := errors.New("boom")
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, ErrConflict},
		{"exclusion", &pgconn.PgError{Code: "23P01"}, ErrConflict},
		{"malformed uuid", &pgconn.PgError{Code: "22P02"}, ErrNotFound},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, nil},
		{"other", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate(tt.in)
			if tt.want == nil {
				if tt.in == nil && got != nil {
					t.Errorf("got %v, want nil", got)
				}
				if tt.in != nil && (errors.Is(got, ErrNotFound) || errors.Is(got, ErrConflict)) {
					t.Errorf("got %v, want passthrough", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

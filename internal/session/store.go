package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/telemedix/telemed-api/internal/model"
)

// ErrNotFound is returned when a token does not resolve to a session.
var ErrNotFound = errors.New("session not found")

// SubjectKind distinguishes the two authenticated subject types.
type SubjectKind string

const (
	SubjectPatient SubjectKind = "patient"
	SubjectAdmin   SubjectKind = "admin"
)

// Identity is the authenticated identity a session token resolves to.
// Role is set for admin subjects only and is advisory: the authorization
// gate re-fetches the role from storage on every request.
type Identity struct {
	SubjectID uuid.UUID       `json:"subject_id"`
	Kind      SubjectKind     `json:"kind"`
	Role      model.AdminRole `json:"role,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Store maps opaque session tokens to authenticated identities. It is the
// sole source of truth for "who is calling" and must be safe for concurrent
// use.
type Store interface {
	// Create issues a fresh token for the identity. Each login call issues
	// its own session; there is no single-session-per-user limit.
	Create(ctx context.Context, identity Identity) (string, error)

	// Resolve returns the identity for a token, or ErrNotFound.
	Resolve(ctx context.Context, token string) (*Identity, error)

	// Destroy invalidates a token. Destroying an absent token is not an
	// error; a destroyed token never resolves again.
	Destroy(ctx context.Context, token string) error

	Close() error
}

func newToken() string {
	return uuid.NewString()
}

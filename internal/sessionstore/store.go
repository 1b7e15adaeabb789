// Package sessionstore keeps in-flight quiz sessions between requests.
//
// Sessions are stored whole, as JSON documents, under their id. Completed
// sessions are also persisted as results by the store package; this package
// only holds working state and lets it expire.
package sessionstore

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/learntype/internal/session"
)

// ErrNotFound is returned when no session exists under the given id, or it
// has expired.
var ErrNotFound = errors.New("session not found")

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 24 * time.Hour

// Store saves and loads sessions by id.
type Store interface {
	// Save writes the session, replacing any earlier copy, and resets its
	// expiry.
	Save(ctx context.Context, s *session.Session) error

	// Load returns the session with the given id, or ErrNotFound.
	Load(ctx context.Context, id string) (*session.Session, error)

	// Delete removes the session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error
}

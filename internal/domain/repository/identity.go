package repository

import (
	"time"

	"github.com/google/uuid"
)

// SessionEventType enumerates identity session transitions.
type SessionEventType int

const (
	SessionSignedIn SessionEventType = iota
	SessionSignedOut
	SessionTokenRefreshed
)

func (t SessionEventType) String() string {
	names := [...]string{"signed-in", "signed-out", "token-refreshed"}
	if int(t) < 0 || int(t) >= len(names) {
		return "unknown"
	}
	return names[t]
}

// SessionEvent is emitted on the identity event channel whenever session
// presence changes. token-refreshed is a liveness signal only and must never
// trigger a data refresh.
type SessionEvent struct {
	Type   SessionEventType
	UserID uuid.UUID
	At     time.Time
}

// IdentityProvider reports session presence and publishes session transitions,
// decoupled from whatever transport produces them.
type IdentityProvider interface {
	IsAuthenticated() bool
	CurrentUserID() (uuid.UUID, bool)
	Events() <-chan SessionEvent
}

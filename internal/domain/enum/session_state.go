package enum

import "encoding/json"

// SessionState tracks how authoritative the in-memory dataset currently is:
// unauthenticated (empty defaults), cache-loaded (last-known snapshot) or
// fresh (remote truth fetched this session).
type SessionState int

const (
	SessionUnauthenticated SessionState = 0
	SessionCacheLoaded     SessionState = 1
	SessionFresh           SessionState = 2
)

func (s SessionState) String() string {
	names := [...]string{"unauthenticated", "cache-loaded", "fresh"}
	if int(s) < 0 || int(s) >= len(names) {
		return "unauthenticated"
	}
	return names[s]
}

func (s SessionState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

package entity

import (
	"database/sql/driver"
	"fmt"

	"github.com/google/uuid"
)

// EntityID identifies a dataset entity. An id is either pending (a locally
// generated placeholder for an optimistic create that has not been confirmed
// by the remote store) or confirmed (the authoritative remote id). The two
// value spaces never overlap: a confirmed id is never flagged pending, so a
// pending entry can always be told apart from authoritative data.
type EntityID struct {
	UUID    uuid.UUID `json:"uuid"`
	Pending bool      `json:"pending,omitempty"`
}

// NewPendingID generates a fresh temporary id for an optimistic create.
func NewPendingID() EntityID {
	return EntityID{UUID: uuid.New(), Pending: true}
}

// ConfirmedID wraps an authoritative remote id.
func ConfirmedID(id uuid.UUID) EntityID {
	return EntityID{UUID: id}
}

// Confirm swaps the placeholder for the authoritative remote id.
func (id EntityID) Confirm(remote uuid.UUID) EntityID {
	return EntityID{UUID: remote}
}

// Equal reports whether two ids refer to the same entry.
func (id EntityID) Equal(other EntityID) bool {
	return id.UUID == other.UUID
}

// IsZero reports whether the id is unset.
func (id EntityID) IsZero() bool {
	return id.UUID == uuid.Nil
}

func (id EntityID) String() string {
	if id.Pending {
		return id.UUID.String() + " (pending)"
	}
	return id.UUID.String()
}

// Value implements driver.Valuer. Only the bare UUID reaches the database;
// pending ids are replaced by the store before a row is ever written.
func (id EntityID) Value() (driver.Value, error) {
	return id.UUID.String(), nil
}

// Scan implements sql.Scanner. Ids read back from the database are always
// confirmed.
func (id *EntityID) Scan(value interface{}) error {
	if value == nil {
		*id = EntityID{}
		return nil
	}
	switch v := value.(type) {
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return err
		}
		*id = ConfirmedID(parsed)
	case []byte:
		parsed, err := uuid.Parse(string(v))
		if err != nil {
			return err
		}
		*id = ConfirmedID(parsed)
	default:
		return fmt.Errorf("unsupported id column type %T", value)
	}
	return nil
}

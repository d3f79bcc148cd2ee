package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityID_PendingAndConfirmedSpaces(t *testing.T) {
	pending := NewPendingID()
	assert.True(t, pending.Pending)
	assert.False(t, pending.IsZero())

	remote := uuid.New()
	confirmed := pending.Confirm(remote)
	assert.False(t, confirmed.Pending)
	assert.Equal(t, remote, confirmed.UUID)
}

func TestEntityID_EqualIgnoresPendingFlag(t *testing.T) {
	id := uuid.New()
	assert.True(t, EntityID{UUID: id, Pending: true}.Equal(ConfirmedID(id)))
	assert.False(t, ConfirmedID(id).Equal(ConfirmedID(uuid.New())))
}

func TestEntityID_ScanRoundTrip(t *testing.T) {
	id := ConfirmedID(uuid.New())
	value, err := id.Value()
	require.NoError(t, err)

	var scanned EntityID
	require.NoError(t, scanned.Scan(value))
	assert.True(t, scanned.Equal(id))
	assert.False(t, scanned.Pending)

	require.Error(t, scanned.Scan(123))
}

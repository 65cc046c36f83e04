package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabeelkm/scrawl/internal/domain"
)

func newTestRoom(t *testing.T) *domain.Room {
	t.Helper()

	room, err := domain.NewRoom("test", 4, 3, domain.NewPlayer("conn-1", "alice"))
	require.NoError(t, err)

	return room
}

func TestRoomRegistry_CreateAndLookup(t *testing.T) {
	reg := NewRoomRegistry(10, time.Minute)
	ctx := context.Background()

	room := newTestRoom(t)
	require.NoError(t, reg.Create(ctx, room))

	byID, err := reg.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Same(t, room, byID)

	byCode, err := reg.GetByCode(ctx, room.Code)
	require.NoError(t, err)
	assert.Same(t, room, byCode)
}

func TestRoomRegistry_DuplicateCreate(t *testing.T) {
	reg := NewRoomRegistry(10, time.Minute)
	ctx := context.Background()

	room := newTestRoom(t)
	require.NoError(t, reg.Create(ctx, room))
	assert.ErrorIs(t, reg.Create(ctx, room), domain.ErrRoomAlreadyExists)

	// A fresh room reusing a live join code is rejected too.
	other := newTestRoom(t)
	other.Code = room.Code
	assert.ErrorIs(t, reg.Create(ctx, other), domain.ErrRoomAlreadyExists)
}

func TestRoomRegistry_LookupMisses(t *testing.T) {
	reg := NewRoomRegistry(10, time.Minute)
	ctx := context.Background()

	_, err := reg.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = reg.GetByCode(ctx, "NOPE42")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = reg.GetByID(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRoomRegistry_DeleteIsIdempotent(t *testing.T) {
	reg := NewRoomRegistry(10, time.Minute)
	ctx := context.Background()

	room := newTestRoom(t)
	require.NoError(t, reg.Create(ctx, room))

	reg.Delete(ctx, room.ID)
	reg.Delete(ctx, room.ID)

	_, err := reg.GetByID(ctx, room.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	// The join code is free again once the room is gone.
	other := newTestRoom(t)
	other.Code = room.Code
	assert.NoError(t, reg.Create(ctx, other))
}

func TestRoomRegistry_LookupAfterDeleteLeavesNoTrace(t *testing.T) {
	reg := NewRoomRegistry(10, time.Minute)
	ctx := context.Background()

	room := newTestRoom(t)
	require.NoError(t, reg.Create(ctx, room))
	reg.Delete(ctx, room.ID)

	_, err := reg.GetByID(ctx, room.ID)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)
	_, err = reg.GetByCode(ctx, room.Code)
	require.ErrorIs(t, err, domain.ErrRoomNotFound)

	// A failed lookup must not re-create bookkeeping for the dead room.
	rr := reg.(*roomRegistry)
	_, tracked := rr.lastAccess[room.ID]
	assert.False(t, tracked)
	assert.Empty(t, rr.rooms)
	assert.Empty(t, rr.codeIndex)
}

func TestRoomRegistry_CapacityEvictsOldest(t *testing.T) {
	reg := NewRoomRegistry(2, time.Minute)
	ctx := context.Background()

	first := newTestRoom(t)
	second := newTestRoom(t)
	third := newTestRoom(t)

	require.NoError(t, reg.Create(ctx, first))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, reg.Create(ctx, second))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, reg.Create(ctx, third))

	_, err := reg.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = reg.GetByID(ctx, second.ID)
	assert.NoError(t, err)
	_, err = reg.GetByID(ctx, third.ID)
	assert.NoError(t, err)
}

func TestRoomRegistry_IdleEviction(t *testing.T) {
	reg := NewRoomRegistry(10, 20*time.Millisecond)
	ctx := context.Background()

	stale := newTestRoom(t)
	require.NoError(t, reg.Create(ctx, stale))

	time.Sleep(40 * time.Millisecond)

	// Creation sweeps idle rooms before inserting.
	fresh := newTestRoom(t)
	require.NoError(t, reg.Create(ctx, fresh))

	_, err := reg.GetByID(ctx, stale.ID)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	_, err = reg.GetByID(ctx, fresh.ID)
	assert.NoError(t, err)
}

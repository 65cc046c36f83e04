package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nabeelkm/scrawl/internal/domain"
)

// roomRegistry is the authoritative in-memory store of all live rooms.
// Join-code uniqueness holds among live rooms only; codes are recycled
// once a room dies.
type roomRegistry struct {
	rooms      map[string]*domain.Room // ID -> Room
	codeIndex  map[string]*domain.Room // Code -> Room
	lastAccess map[string]time.Time    // ID -> last access time
	capacity   uint
	idleExpiry time.Duration
	mu         *sync.RWMutex
}

func NewRoomRegistry(capacity uint, idleExpiry time.Duration) domain.RoomRegistry {
	if capacity == 0 {
		capacity = 100
	}
	if idleExpiry == 0 {
		idleExpiry = 30 * time.Minute
	}

	return &roomRegistry{
		rooms:      make(map[string]*domain.Room),
		codeIndex:  make(map[string]*domain.Room),
		lastAccess: make(map[string]time.Time),
		capacity:   capacity,
		idleExpiry: idleExpiry,
		mu:         &sync.RWMutex{},
	}
}

func (r *roomRegistry) touch(roomID string) {
	r.lastAccess[roomID] = time.Now()
}

// evictIdle drops rooms nobody has looked at in a while. This is the
// self-heal for rooms whose members all vanished without clean closes.
func (r *roomRegistry) evictIdle() {
	cutoff := time.Now().Add(-r.idleExpiry)
	for id, last := range r.lastAccess {
		if last.Before(cutoff) {
			if room, exists := r.rooms[id]; exists {
				delete(r.codeIndex, room.Code)
			}
			delete(r.rooms, id)
			delete(r.lastAccess, id)
		}
	}
}

// enforceCapacity makes room for one more entry by evicting the
// oldest-accessed rooms first.
func (r *roomRegistry) enforceCapacity() {
	if uint(len(r.rooms)) < r.capacity {
		return
	}

	type entry struct {
		id   string
		last time.Time
	}
	entries := make([]entry, 0, len(r.lastAccess))
	for id, t := range r.lastAccess {
		entries = append(entries, entry{id, t})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].last.Before(entries[j].last)
	})

	for _, e := range entries {
		if uint(len(r.rooms)) < r.capacity {
			break
		}
		if room, exists := r.rooms[e.id]; exists {
			delete(r.codeIndex, room.Code)
		}
		delete(r.rooms, e.id)
		delete(r.lastAccess, e.id)
	}
}

// Create adds a room if its ID and join code are unique and capacity allows.
func (r *roomRegistry) Create(ctx context.Context, room *domain.Room) error {
	if room == nil || room.ID == "" || room.Code == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictIdle()

	if _, exists := r.rooms[room.ID]; exists {
		return domain.ErrRoomAlreadyExists
	}
	if _, exists := r.codeIndex[room.Code]; exists {
		return domain.ErrRoomAlreadyExists
	}

	r.enforceCapacity()

	r.rooms[room.ID] = room
	r.codeIndex[room.Code] = room
	r.touch(room.ID)

	return nil
}

// GetByID returns a room and updates access time. Lookup and touch share
// one critical section so a concurrent Delete cannot resurrect the
// lastAccess entry of a dead room.
func (r *roomRegistry) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, exists := r.rooms[id]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}
	r.touch(id)

	return room, nil
}

// GetByCode returns a room by join code and updates access time.
func (r *roomRegistry) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	if code == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, exists := r.codeIndex[code]
	if !exists {
		return nil, domain.ErrRoomNotFound
	}
	r.touch(room.ID)

	return room, nil
}

// Delete removes a room by id. Idempotent: deleting a missing room is a no-op.
func (r *roomRegistry) Delete(ctx context.Context, id string) {
	if id == "" {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	room, exists := r.rooms[id]
	if !exists {
		return
	}

	delete(r.rooms, id)
	delete(r.codeIndex, room.Code)
	delete(r.lastAccess, id)
}

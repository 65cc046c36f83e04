package ws

import (
	"sync"
)

// RoomManager maps room ids to the connections currently inside them.
// It is pure fan-out plumbing; game state lives in domain.Room.
type RoomManager struct {
	rooms map[string]map[string]*Client // roomID -> clientID -> Client
	mu    sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{
		rooms: make(map[string]map[string]*Client),
	}
}

func (rm *RoomManager) AddClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	clients, ok := rm.rooms[cl.RoomID]
	if !ok {
		clients = make(map[string]*Client)
		rm.rooms[cl.RoomID] = clients
	}
	clients[cl.ID] = cl
}

// RemoveClient detaches a connection from its room's fan-out set. The
// room entry disappears with its last connection.
func (rm *RoomManager) RemoveClient(cl *Client) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if clients, ok := rm.rooms[cl.RoomID]; ok {
		if _, ok := clients[cl.ID]; ok {
			delete(clients, cl.ID)

			if len(clients) == 0 {
				delete(rm.rooms, cl.RoomID)
			}
		}
	}
}

// DropRoom forgets a room's fan-out set without touching the connections;
// the clients stay connected and may create or join another room.
func (rm *RoomManager) DropRoom(roomID string) []*Client {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	clients, ok := rm.rooms[roomID]
	if !ok {
		return nil
	}
	delete(rm.rooms, roomID)

	out := make([]*Client, 0, len(clients))
	for _, cl := range clients {
		out = append(out, cl)
	}
	return out
}

func (rm *RoomManager) Get(roomID, clientID string) *Client {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	return rm.rooms[roomID][clientID]
}

func (rm *RoomManager) Broadcast(roomID string, msg *Message) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for _, cl := range rm.rooms[roomID] {
		cl.Send(msg)
	}
}

// BroadcastExcept relays to everyone in the room but the sender. Drawing
// data takes this path so the artist does not echo their own strokes.
func (rm *RoomManager) BroadcastExcept(roomID, exceptID string, msg *Message) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	for id, cl := range rm.rooms[roomID] {
		if id == exceptID {
			continue
		}
		cl.Send(msg)
	}
}

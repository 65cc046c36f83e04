package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nabeelkm/scrawl/internal/domain"
	"go.uber.org/zap"
)

const createRoomAttempts = 5

// InboundEvent is one decoded client frame plus its origin connection.
type InboundEvent struct {
	Client *Client
	Type   string
	Data   json.RawMessage
}

// Core is the event router. A single goroutine (Run) consumes every
// register, unregister, inbound frame and round timeout, so game state is
// mutated strictly sequentially and the domain needs no locks.
type Core struct {
	roomMgr       *RoomManager
	registry      domain.RoomRegistry
	words         *domain.WordList
	roundDuration time.Duration
	logger        *zap.SugaredLogger

	register   chan *Client
	unregister chan *Client
	inbound    chan *InboundEvent
	timeouts   chan roundTimeout

	timers map[string]*roundTimer // roomID -> running round timer
}

func NewCore(registry domain.RoomRegistry, words *domain.WordList, roundDuration time.Duration, logger *zap.SugaredLogger) *Core {
	return &Core{
		roomMgr:       NewRoomManager(),
		registry:      registry,
		words:         words,
		roundDuration: roundDuration,
		logger:        logger,
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		inbound:       make(chan *InboundEvent, 256),
		timeouts:      make(chan roundTimeout, 16),
		timers:        make(map[string]*roundTimer),
	}
}

func (c *Core) Run() {
	for {
		select {
		case cl := <-c.register:
			c.logger.Infow("client connected", "client", cl.ID)

		case cl := <-c.unregister:
			c.handleDisconnect(cl)

		case ev := <-c.inbound:
			c.dispatch(ev)

		case to := <-c.timeouts:
			c.handleRoundTimeout(to)
		}
	}
}

func (c *Core) Register() chan<- *Client {
	return c.register
}

func (c *Core) Unregister() chan<- *Client {
	return c.unregister
}

func (c *Core) Inbound() chan<- *InboundEvent {
	return c.inbound
}

func (c *Core) dispatch(ev *InboundEvent) {
	// The read pump queues frames before it unregisters, so a frame can
	// arrive here after its client was already disconnected. Drop it.
	if ev.Client.isClosed() {
		return
	}

	switch ev.Type {
	case CreateRoom:
		c.handleCreateRoom(ev)
	case JoinRoom:
		c.handleJoinRoom(ev)
	case StartGame:
		c.handleStartGame(ev)
	case Draw:
		c.handleDraw(ev)
	case ClearCanvas:
		c.handleClearCanvas(ev)
	case MakeGuess:
		c.handleMakeGuess(ev)
	default:
		// unknown event types are ignored
	}
}

func (c *Core) handleCreateRoom(ev *InboundEvent) {
	var req CreateRoomRequest
	if err := json.Unmarshal(ev.Data, &req); err != nil {
		ev.Client.Send(NewError("InvalidPayload", "malformed createRoom payload"))
		return
	}
	if req.MaxPlayers < 2 || req.TotalRounds < 1 {
		ev.Client.Send(NewError("InvalidPayload", "maxPlayers must be >= 2 and totalRounds >= 1"))
		return
	}

	host := domain.NewPlayer(ev.Client.ID, req.PlayerName)

	// A fresh join code is rolled per attempt; collisions among live rooms
	// are possible, just unlikely given the code space.
	var room *domain.Room
	for i := 0; i < createRoomAttempts; i++ {
		candidate, err := domain.NewRoom(req.RoomName, req.MaxPlayers, req.TotalRounds, host)
		if err != nil {
			ev.Client.Send(NewError("InvalidPayload", err.Error()))
			return
		}
		if err := c.registry.Create(context.Background(), candidate); err != nil {
			if errors.Is(err, domain.ErrRoomAlreadyExists) {
				continue
			}
			ev.Client.Send(NewError("Internal", "could not create room"))
			return
		}
		room = candidate
		break
	}
	if room == nil {
		ev.Client.Send(NewError("Internal", "could not allocate a unique join code"))
		return
	}

	c.leaveRoom(ev.Client)
	ev.Client.RoomID = room.ID
	c.roomMgr.AddClient(ev.Client)

	ev.Client.Send(NewRoomCreated(room))
	c.logger.Infow("room created", "room", room.ID, "code", room.Code, "host", host.ID)
}

func (c *Core) handleJoinRoom(ev *InboundEvent) {
	var req JoinRoomRequest
	if err := json.Unmarshal(ev.Data, &req); err != nil {
		ev.Client.Send(NewError("InvalidPayload", "malformed joinRoom payload"))
		return
	}

	room, err := c.registry.GetByCode(context.Background(), req.RoomCode)
	if err != nil {
		ev.Client.Send(NewRoomNotFound())
		return
	}

	player := domain.NewPlayer(ev.Client.ID, req.PlayerName)
	if err := room.AddPlayer(player); err != nil {
		if errors.Is(err, domain.ErrRoomFull) {
			ev.Client.Send(NewRoomFull())
			return
		}
		ev.Client.Send(NewError("Internal", "could not join room"))
		return
	}

	c.leaveRoom(ev.Client)
	ev.Client.RoomID = room.ID
	c.roomMgr.AddClient(ev.Client)

	c.roomMgr.Broadcast(room.ID, NewRosterUpdated(room))
	ev.Client.Send(NewJoinedRoom(room, c.timeLeft(room.ID)))
	c.logger.Infow("player joined", "room", room.ID, "player", player.ID)
}

func (c *Core) handleStartGame(ev *InboundEvent) {
	var req StartGameRequest
	if err := json.Unmarshal(ev.Data, &req); err != nil {
		return
	}

	room, err := c.registry.GetByID(context.Background(), req.RoomID)
	if err != nil {
		ev.Client.Send(NewRoomNotFound())
		return
	}

	if err := room.Start(); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotEnoughPlayers):
			ev.Client.Send(NewError("InvalidPhase", "need at least 2 players to start"))
		case errors.Is(err, domain.ErrGameInProgress):
			// duplicate start, ignore
		}
		return
	}

	c.roomMgr.Broadcast(room.ID, NewGameStarted(room))
	c.startRound(room)
}

// startRound advances the rotation and fans out the round-start event.
// Only the artist's copy carries the word.
func (c *Core) startRound(room *domain.Room) {
	round, err := room.StartRound(c.words.Pick())
	if err != nil {
		c.logger.Errorw("start round", "room", room.ID, "err", err)
		return
	}

	seconds := int(c.roundDuration.Seconds())
	artistMsg := NewRoundStartedFor(round, seconds, true)
	othersMsg := NewRoundStartedFor(round, seconds, false)

	c.roomMgr.BroadcastExcept(room.ID, round.Artist.ID, othersMsg)
	c.sendTo(room.ID, round.Artist.ID, artistMsg)

	c.armRoundTimer(room.ID, round.Round)
	c.logger.Infow("round started", "room", room.ID, "round", round.Round, "artist", round.Artist.ID)
}

func (c *Core) handleDraw(ev *InboundEvent) {
	var req DrawRequest
	if err := json.Unmarshal(ev.Data, &req); err != nil {
		return
	}
	// Relayed verbatim; the server never interprets stroke data.
	c.roomMgr.BroadcastExcept(req.RoomID, ev.Client.ID, &Message{Type: DrawingData, Data: req.StrokeData})
}

func (c *Core) handleClearCanvas(ev *InboundEvent) {
	var req ClearCanvasRequest
	if err := json.Unmarshal(ev.Data, &req); err != nil {
		return
	}
	c.roomMgr.BroadcastExcept(req.RoomID, ev.Client.ID, &Message{Type: CanvasCleared})
}

func (c *Core) handleMakeGuess(ev *InboundEvent) {
	var req MakeGuessRequest
	if err := json.Unmarshal(ev.Data, &req); err != nil {
		return
	}

	room, err := c.registry.GetByID(context.Background(), req.RoomID)
	if err != nil {
		return
	}

	res, err := room.EvaluateGuess(ev.Client.ID, req.Guess)
	if err != nil {
		// Guessing out of phase or as the artist is a silent no-op.
		return
	}

	// The guess is always visible as chat, before any resolution event.
	c.roomMgr.Broadcast(room.ID, NewGuessMessage(res.Guesser.Name, req.Guess))

	if !res.Correct {
		return
	}

	c.roomMgr.Broadcast(room.ID, NewCorrectMessage(
		fmt.Sprintf("%s guessed correctly! The word was: %s", res.Guesser.Name, res.Word)))
	c.roomMgr.Broadcast(room.ID, NewCorrectGuess(room))

	c.endRound(room)
}

// endRound resolves the round and, on game over, publishes final standings
// and tears the room down.
func (c *Core) endRound(room *domain.Room) {
	c.disarmRoundTimer(room.ID)

	end := room.EndRound()
	c.roomMgr.Broadcast(room.ID, NewRoundEnded(room, end))

	if !end.GameOver {
		return
	}

	c.roomMgr.Broadcast(room.ID, NewGameOver(room))
	c.closeRoom(room.ID)
	c.logger.Infow("game over", "room", room.ID, "rounds", end.Round)
}

func (c *Core) handleDisconnect(cl *Client) {
	c.roomMgr.RemoveClient(cl)
	cl.closeMessages()
	c.repairDeparture(cl)
}

// leaveRoom detaches a still-connected client from its current room, so a
// player is never a member of two rooms at once. Called when a client in
// a room creates or joins another one.
func (c *Core) leaveRoom(cl *Client) {
	if cl.RoomID == "" {
		return
	}
	c.roomMgr.RemoveClient(cl)
	c.repairDeparture(cl)
}

// repairDeparture removes the client's player from its room and settles
// the room's fate: delete when emptied, abort when mid-game, otherwise
// re-broadcast the roster.
func (c *Core) repairDeparture(cl *Client) {
	roomID := cl.RoomID
	cl.RoomID = ""
	if roomID == "" {
		return
	}

	room, err := c.registry.GetByID(context.Background(), roomID)
	if err != nil {
		// Room already gone; nothing to repair.
		return
	}

	res, err := room.RemovePlayer(cl.ID)
	if err != nil {
		return
	}

	switch {
	case res.RoomEmpty:
		c.closeRoom(room.ID)
		c.logger.Infow("room emptied", "room", room.ID)

	case res.GameAborted:
		// A departure mid-game forfeits the whole session.
		c.roomMgr.Broadcast(room.ID, NewGameOver(room))
		c.closeRoom(room.ID)
		c.logger.Infow("game aborted by departure", "room", room.ID, "player", cl.ID)

	default:
		c.roomMgr.Broadcast(room.ID, NewRosterUpdated(room))
	}
}

func (c *Core) handleRoundTimeout(to roundTimeout) {
	room, err := c.registry.GetByID(context.Background(), to.roomID)
	if err != nil {
		return
	}
	// A stale timer from an already-resolved round must not end the next one.
	if !room.GameStarted || room.CurrentRound != to.round {
		return
	}

	c.roomMgr.Broadcast(room.ID, NewCorrectMessage(
		fmt.Sprintf("Time is up! The word was: %s", room.CurrentWord)))
	c.endRound(room)
	c.logger.Infow("round timed out", "room", room.ID, "round", to.round)
}

// closeRoom removes the room from the registry and detaches its
// connections; the sockets themselves stay open.
func (c *Core) closeRoom(roomID string) {
	c.disarmRoundTimer(roomID)
	c.registry.Delete(context.Background(), roomID)
	for _, cl := range c.roomMgr.DropRoom(roomID) {
		cl.RoomID = ""
	}
}

func (c *Core) sendTo(roomID, clientID string, msg *Message) {
	if cl := c.roomMgr.Get(roomID, clientID); cl != nil {
		cl.Send(msg)
	}
}

package domain

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	minPlayersToStart = 2
	joinCodeLength    = 6

	// No 0/O/1/I: codes are read aloud and typed by hand.
	joinCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var (
	charsetLen = big.NewInt(int64(len(joinCodeChars)))

	ErrRoomNotFound      = errors.New("room not found")
	ErrRoomAlreadyExists = errors.New("room already exists")
	ErrRoomFull          = errors.New("room is full")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrGameInProgress    = errors.New("game already in progress")
	ErrGameNotStarted    = errors.New("game not started")
	ErrNotEnoughPlayers  = errors.New("not enough players")
	ErrArtistCannotGuess = errors.New("the artist cannot guess")
	ErrInvalidInput      = errors.New("invalid input")
)

// Room holds the full state of one game session. All mutating methods are
// plain state transitions with no I/O; serialization is the caller's job
// (the ws core funnels every mutation through a single goroutine).
type Room struct {
	ID          string        `json:"id"`
	Code        string        `json:"code"`
	Name        string        `json:"name"`
	MaxPlayers  int           `json:"maxPlayers"`
	TotalRounds int           `json:"totalRounds"`
	Players     []*Player     `json:"players"`
	GameStarted bool          `json:"gameStarted"`
	CreatedAt   time.Time     `json:"createdAt"`

	// CurrentArtist indexes into Players; -1 before the first round.
	// Player order is join order and defines the turn rotation, so removal
	// must splice rather than swap-remove.
	CurrentRound  int    `json:"currentRound"`
	CurrentArtist int    `json:"currentArtist"`
	CurrentWord   string `json:"-"`
}

type RoomRegistry interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	GetByCode(ctx context.Context, code string) (*Room, error)
	Delete(ctx context.Context, id string)
}

// NewRoom allocates a room with a fresh id and join code, with host as the
// sole member. The room id is independent of the host's connection id so a
// reused connection id can never collide with a live room.
func NewRoom(name string, maxPlayers, totalRounds int, host *Player) (*Room, error) {
	if host == nil || maxPlayers < 1 || totalRounds < 1 {
		return nil, ErrInvalidInput
	}

	code, err := generateJoinCode()
	if err != nil {
		return nil, err
	}

	host.IsHost = true

	return &Room{
		ID:            uuid.NewString(),
		Code:          code,
		Name:          name,
		MaxPlayers:    maxPlayers,
		TotalRounds:   totalRounds,
		Players:       append(make([]*Player, 0, maxPlayers), host),
		CreatedAt:     time.Now(),
		CurrentArtist: -1,
	}, nil
}

// AddPlayer appends a player to the rotation. Joining an already-started
// game is allowed; the joiner simply waits out the active round.
func (r *Room) AddPlayer(p *Player) error {
	if p == nil {
		return ErrInvalidInput
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}
	r.Players = append(r.Players, p)
	return nil
}

func (r *Room) FindPlayer(playerID string) *Player {
	for _, p := range r.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// Start flips the room into active play. The first round is started
// separately so the caller can order its broadcasts.
func (r *Room) Start() error {
	if r.GameStarted {
		return ErrGameInProgress
	}
	if len(r.Players) < minPlayersToStart {
		return ErrNotEnoughPlayers
	}
	r.GameStarted = true
	return nil
}

// RoundStart describes a freshly started round.
type RoundStart struct {
	Round       int
	ArtistIndex int
	Artist      *Player
	Word        string
}

// StartRound advances the artist rotation, assigns the secret word and
// marks exactly the new artist as drawing. The modulo re-derives a valid
// index even if players left since the previous round.
func (r *Room) StartRound(word string) (RoundStart, error) {
	if !r.GameStarted || len(r.Players) == 0 {
		return RoundStart{}, ErrGameNotStarted
	}

	r.CurrentRound++
	r.CurrentArtist = (r.CurrentArtist + 1) % len(r.Players)
	r.CurrentWord = word

	for i, p := range r.Players {
		p.IsDrawing = i == r.CurrentArtist
	}

	return RoundStart{
		Round:       r.CurrentRound,
		ArtistIndex: r.CurrentArtist,
		Artist:      r.Players[r.CurrentArtist],
		Word:        word,
	}, nil
}

// GuessResult is the outcome of evaluating one guess.
type GuessResult struct {
	Correct bool
	Guesser *Player
	Artist  *Player
	Word    string
}

// EvaluateGuess scores a guess against the current word. A correct guess
// awards the guesser 10 points and the artist 5, exactly once per round
// because the caller resolves the round immediately afterwards.
func (r *Room) EvaluateGuess(playerID, text string) (GuessResult, error) {
	if !r.GameStarted {
		return GuessResult{}, ErrGameNotStarted
	}

	guesser := r.FindPlayer(playerID)
	if guesser == nil {
		return GuessResult{}, ErrPlayerNotFound
	}
	if guesser.IsDrawing {
		return GuessResult{}, ErrArtistCannotGuess
	}

	res := GuessResult{
		Guesser: guesser,
		Artist:  r.Players[r.CurrentArtist],
		Word:    r.CurrentWord,
	}

	if NormalizeGuess(text) == NormalizeGuess(r.CurrentWord) {
		res.Correct = true
		guesser.Score += 10
		res.Artist.Score += 5
	}

	return res, nil
}

// RoundEnd describes a resolved round.
type RoundEnd struct {
	Round      int
	NextArtist int
	GameOver   bool
}

// EndRound resolves the active round. The game is over once all rounds
// are played and the rotation has wrapped back to the first player, i.e.
// everyone had a turn in the final cycle.
func (r *Room) EndRound() RoundEnd {
	r.GameStarted = false
	r.CurrentWord = ""
	for _, p := range r.Players {
		p.IsDrawing = false
	}

	next := 0
	if len(r.Players) > 0 {
		next = (r.CurrentArtist + 1) % len(r.Players)
	}

	return RoundEnd{
		Round:      r.CurrentRound,
		NextArtist: next,
		GameOver:   r.CurrentRound >= r.TotalRounds && next == 0,
	}
}

// RemoveResult describes the room's fate after a departure.
type RemoveResult struct {
	Player      *Player
	RoomEmpty   bool
	GameAborted bool
}

// RemovePlayer splices a player out of the rotation, preserving join order.
// A departure during an active game aborts the room outright; there is no
// round salvage or artist re-election, and no host re-election in a
// waiting room.
func (r *Room) RemovePlayer(playerID string) (RemoveResult, error) {
	idx := -1
	for i, p := range r.Players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return RemoveResult{}, ErrPlayerNotFound
	}

	removed := r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	return RemoveResult{
		Player:      removed,
		RoomEmpty:   len(r.Players) == 0,
		GameAborted: len(r.Players) > 0 && r.GameStarted,
	}, nil
}

func generateJoinCode() (string, error) {
	var sb strings.Builder
	sb.Grow(joinCodeLength)

	for i := 0; i < joinCodeLength; i++ {
		n, err := rand.Int(rand.Reader, charsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(joinCodeChars[n.Int64()])
	}

	return sb.String(), nil
}

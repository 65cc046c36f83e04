package ws

import (
	"encoding/json"

	"github.com/nabeelkm/scrawl/internal/domain"
)

// Envelope is the inbound wire frame.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Message is the outbound wire frame.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Inbound request payloads
type CreateRoomRequest struct {
	PlayerName  string `json:"playerName"`
	RoomName    string `json:"roomName"`
	MaxPlayers  int    `json:"maxPlayers"`
	TotalRounds int    `json:"totalRounds"`
}

type JoinRoomRequest struct {
	RoomCode   string `json:"roomCode"`
	PlayerName string `json:"playerName"`
}

type StartGameRequest struct {
	RoomID string `json:"roomId"`
}

type DrawRequest struct {
	RoomID     string          `json:"roomId"`
	StrokeData json.RawMessage `json:"strokeData"`
}

type ClearCanvasRequest struct {
	RoomID string `json:"roomId"`
}

type MakeGuessRequest struct {
	RoomID string `json:"roomId"`
	Guess  string `json:"guess"`
}

// Outbound payload structs
type RoomCreatedPayload struct {
	RoomID   string           `json:"roomId"`
	RoomCode string           `json:"roomCode"`
	RoomName string           `json:"roomName"`
	Players  []*domain.Player `json:"players"`
}

type JoinedRoomPayload struct {
	RoomID      string           `json:"roomId"`
	RoomName    string           `json:"roomName"`
	RoomCode    string           `json:"roomCode"`
	MaxPlayers  int              `json:"maxPlayers"`
	TotalRounds int              `json:"totalRounds"`
	Players     []*domain.Player `json:"players"`

	// Round snapshot for mid-game joiners. The secret word is never
	// included here.
	GameStarted  bool `json:"gameStarted"`
	CurrentRound int  `json:"currentRound,omitempty"`
	ArtistIndex  int  `json:"artistIndex,omitempty"`
	TimeLeft     int  `json:"timeLeft,omitempty"`
}

type RosterPayload struct {
	Players []*domain.Player `json:"players"`
}

type GameStartedPayload struct {
	Players  []*domain.Player `json:"players"`
	RoomCode string           `json:"roomCode"`
}

type NewRoundPayload struct {
	Word         string `json:"word,omitempty"` // artist's copy only
	ArtistIndex  int    `json:"artistIndex"`
	TimeLeft     int    `json:"timeLeft"`
	CurrentRound int    `json:"currentRound"`
}

type ChatPayload struct {
	Text       string `json:"text"`
	Kind       string `json:"type"`
	PlayerName string `json:"playerName,omitempty"`
}

type ScoresPayload struct {
	Players []*domain.Player `json:"players"`
}

type RoundEndedPayload struct {
	Players         []*domain.Player `json:"players"`
	NextArtistIndex int              `json:"nextArtistIndex"`
	CurrentRound    int              `json:"currentRound"`
	GameOver        bool             `json:"gameOver"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func NewRoomCreated(room *domain.Room) *Message {
	return &Message{
		Type: RoomCreated,
		Data: RoomCreatedPayload{
			RoomID:   room.ID,
			RoomCode: room.Code,
			RoomName: room.Name,
			Players:  room.Players,
		},
	}
}

func NewJoinedRoom(room *domain.Room, timeLeft int) *Message {
	payload := JoinedRoomPayload{
		RoomID:      room.ID,
		RoomName:    room.Name,
		RoomCode:    room.Code,
		MaxPlayers:  room.MaxPlayers,
		TotalRounds: room.TotalRounds,
		Players:     room.Players,
		GameStarted: room.GameStarted,
	}
	if room.GameStarted {
		payload.CurrentRound = room.CurrentRound
		payload.ArtistIndex = room.CurrentArtist
		payload.TimeLeft = timeLeft
	}
	return &Message{Type: JoinedRoom, Data: payload}
}

func NewRosterUpdated(room *domain.Room) *Message {
	return &Message{Type: RosterUpdated, Data: RosterPayload{Players: room.Players}}
}

func NewGameStarted(room *domain.Room) *Message {
	return &Message{
		Type: GameStarted,
		Data: GameStartedPayload{Players: room.Players, RoomCode: room.Code},
	}
}

// NewRoundStartedFor builds the round-start notification; word is included
// only when forArtist is set.
func NewRoundStartedFor(round domain.RoundStart, timeLeft int, forArtist bool) *Message {
	payload := NewRoundPayload{
		ArtistIndex:  round.ArtistIndex,
		TimeLeft:     timeLeft,
		CurrentRound: round.Round,
	}
	if forArtist {
		payload.Word = round.Word
	}
	return &Message{Type: NewRoundStarted, Data: payload}
}

func NewGuessMessage(playerName, guess string) *Message {
	return &Message{
		Type: NewMessage,
		Data: ChatPayload{Text: guess, Kind: "guess", PlayerName: playerName},
	}
}

func NewCorrectMessage(text string) *Message {
	return &Message{
		Type: NewMessage,
		Data: ChatPayload{Text: text, Kind: "correct"},
	}
}

func NewCorrectGuess(room *domain.Room) *Message {
	return &Message{Type: CorrectGuess, Data: ScoresPayload{Players: room.Players}}
}

func NewRoundEnded(room *domain.Room, end domain.RoundEnd) *Message {
	return &Message{
		Type: RoundEnded,
		Data: RoundEndedPayload{
			Players:         room.Players,
			NextArtistIndex: end.NextArtist,
			CurrentRound:    end.Round,
			GameOver:        end.GameOver,
		},
	}
}

func NewGameOver(room *domain.Room) *Message {
	return &Message{Type: GameOver, Data: ScoresPayload{Players: room.Players}}
}

func NewRoomNotFound() *Message {
	return &Message{Type: RoomNotFound}
}

func NewRoomFull() *Message {
	return &Message{Type: RoomFull}
}

func NewError(code, message string) *Message {
	return &Message{Type: ErrorEvent, Data: ErrorPayload{Code: code, Message: message}}
}

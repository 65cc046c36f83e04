package ws

// Wire event names. Inbound events arrive as {"type": ..., "data": {...}}
// envelopes on the per-connection websocket; outbound events use the same
// envelope shape.
const (
	// inbound
	CreateRoom  = "createRoom"
	JoinRoom    = "joinRoom"
	StartGame   = "startGame"
	Draw        = "draw"
	ClearCanvas = "clearCanvas"
	MakeGuess   = "makeGuess"

	// outbound
	RoomCreated     = "roomCreated"
	JoinedRoom      = "joinedRoom"
	RoomNotFound    = "roomNotFound"
	RoomFull        = "roomFull"
	RosterUpdated   = "rosterUpdated"
	GameStarted     = "gameStarted"
	NewRoundStarted = "newRoundStarted"
	DrawingData     = "drawingData"
	CanvasCleared   = "canvasCleared"
	NewMessage      = "newMessage"
	CorrectGuess    = "correctGuess"
	RoundEnded      = "roundEnded"
	GameOver        = "gameOver"

	ErrorEvent = "error"
)

package rooms

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/nabeelkm/scrawl/internal/domain"
	"github.com/nabeelkm/scrawl/internal/infrastructure/json"
	"github.com/nabeelkm/scrawl/internal/infrastructure/ws"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrSize = 320 // mobile-friendly

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	core     *ws.Core
	registry domain.RoomRegistry
	logger   *zap.SugaredLogger
}

func NewHandler(core *ws.Core, registry domain.RoomRegistry, logger *zap.SugaredLogger) *Handler {
	return &Handler{
		core:     core,
		registry: registry,
		logger:   logger,
	}
}

// GameSocketHandler upgrades the connection and hands it to the event
// router. Every game interaction after this point happens over the socket.
func (h *Handler) GameSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warnw("websocket upgrade failed", "err", err)
		return
	}

	client := ws.NewClient(conn, uuid.NewString())
	h.core.Register() <- client

	go client.WriteMessage(h.logger)
	client.ReadMessage(h.core, h.logger)
}

// GetRoomHandler exposes a lobby summary for a join code, handy for a
// "does this code exist" check before opening the socket.
func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		json.WriteValidationError(w, errors.New("room code is missing"))
		return
	}

	room, err := h.registry.GetByCode(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteError(w, http.StatusNotFound, "Room not found")
		default:
			h.logger.Errorw("room lookup failed", "code", code, "err", err)
			json.WriteInternalError(w)
		}
		return
	}

	resp := roomResponse{
		ID:          room.ID,
		Code:        room.Code,
		Name:        room.Name,
		MaxPlayers:  room.MaxPlayers,
		TotalRounds: room.TotalRounds,
		PlayerCount: len(room.Players),
		GameStarted: room.GameStarted,
	}

	json.Write(w, http.StatusOK, resp)
}

// JoinCodeQRHandler renders a QR code pointing at the join link for a
// live room, for sharing across the table.
func (h *Handler) JoinCodeQRHandler(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		json.WriteValidationError(w, errors.New("room code is missing"))
		return
	}

	if _, err := h.registry.GetByCode(r.Context(), code); err != nil {
		json.WriteError(w, http.StatusNotFound, "Room not found")
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	joinURL := scheme + "://" + r.Host + "/?join=" + code

	png, err := qrcode.Encode(joinURL, qrcode.Medium, qrSize)
	if err != nil {
		h.logger.Errorw("qr encode failed", "code", code, "err", err)
		json.WriteInternalError(w)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

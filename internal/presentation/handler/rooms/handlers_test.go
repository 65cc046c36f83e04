package rooms

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nabeelkm/scrawl/internal/domain"
	"github.com/nabeelkm/scrawl/internal/infrastructure/repository"
	"github.com/nabeelkm/scrawl/internal/infrastructure/ws"
)

func newTestHandler(t *testing.T) (*Handler, *domain.Room) {
	t.Helper()

	logger := zap.NewNop().Sugar()
	registry := repository.NewRoomRegistry(10, time.Minute)
	core := ws.NewCore(registry, domain.NewWordList(nil), time.Minute, logger)

	room, err := domain.NewRoom("doodles", 4, 3, domain.NewPlayer("conn-1", "alice"))
	require.NoError(t, err)
	require.NoError(t, registry.Create(t.Context(), room))

	return NewHandler(core, registry, logger), room
}

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/api/rooms/{code}", h.GetRoomHandler)
	r.Get("/api/rooms/{code}/qr", h.JoinCodeQRHandler)
	return r
}

func TestGetRoomHandler(t *testing.T) {
	h, room := newTestHandler(t)
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+room.Code, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, rec.Body.String(), room.Code)
	assert.Contains(t, rec.Body.String(), `"playerCount":1`)
}

func TestGetRoomHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/ZZZZZZ", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJoinCodeQRHandler(t *testing.T) {
	h, room := newTestHandler(t)
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/"+room.Code+"/qr", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestJoinCodeQRHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)
	router := newTestRouter(h)

	req := httptest.NewRequest(http.MethodGet, "/api/rooms/ZZZZZZ/qr", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

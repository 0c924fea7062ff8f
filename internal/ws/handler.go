package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HerbHall/storefront/internal/event"
	"github.com/HerbHall/storefront/internal/theme"
)

// ThemeSource reports the active theme.
type ThemeSource interface {
	Active() (theme.ID, theme.Theme)
}

// Handler serves the live theme stream.
type Handler struct {
	hub         *Hub
	themes      ThemeSource
	logger      *zap.Logger
	unsubscribe func()
}

// NewHandler creates a handler and subscribes it to theme changes on bus.
func NewHandler(themes ThemeSource, bus *event.Bus, logger *zap.Logger) *Handler {
	h := &Handler{
		hub:    NewHub(logger),
		themes: themes,
		logger: logger,
	}
	if bus != nil {
		h.unsubscribe = bus.Subscribe(theme.TopicSelected, h.onThemeSelected)
	}
	return h
}

// RegisterRoutes registers the WebSocket route.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/ws/theme", h.handleThemeStream)
}

// Close stops listening for theme events.
func (h *Handler) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
}

// ClientCount returns the number of connected browsers.
func (h *Handler) ClientCount() int {
	return h.hub.ClientCount()
}

func (h *Handler) handleThemeStream(w http.ResponseWriter, r *http.Request) {
	// Long-lived stream; lift the server-wide write timeout.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Debug("clear write deadline", zap.Error(err))
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The stream carries only public theme data.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		id:     uuid.NewString(),
		send:   make(chan Message, sendBuffer),
		logger: h.logger,
	}

	h.hub.RegisterWith(client, func() Message {
		id, t := h.themes.Active()
		return themeMessage(MessageThemeCurrent, id, t.Name, theme.Variables(t), time.Now().UTC())
	})

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	client.readPump(ctx)

	h.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

func (h *Handler) onThemeSelected(_ context.Context, e event.Event) {
	sel, ok := e.Payload.(theme.SelectedEvent)
	if !ok {
		return
	}
	h.hub.Broadcast(themeMessage(MessageThemeSelected, sel.ID, sel.Name, sel.Variables, e.Timestamp))
}

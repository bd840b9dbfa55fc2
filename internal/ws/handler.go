package ws

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/event"
	"github.com/HerbHall/brandkit/internal/theme"
	"github.com/HerbHall/brandkit/internal/themestore"
)

// Handler streams theme changes to browsers over WebSocket. It is the
// server side of the runtime applier: every theme.applied event for a
// tenant reaches the tabs following that tenant.
type Handler struct {
	hub         *Hub
	themes      *themestore.Manager
	bus         *event.Bus
	logger      *zap.Logger
	unsubscribe []func()
}

// Compile-time check that Handler implements the server interface.
var _ interface {
	RegisterRoutes(mux *http.ServeMux)
} = (*Handler)(nil)

// NewHandler creates a WebSocket handler and subscribes to theme events.
func NewHandler(themes *themestore.Manager, bus *event.Bus, logger *zap.Logger) *Handler {
	h := &Handler{
		hub:    NewHub(logger),
		themes: themes,
		bus:    bus,
		logger: logger,
	}
	h.subscribeToEvents()
	return h
}

// RegisterRoutes registers WebSocket routes on the server mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/tenants/{tenant}/theme/ws", h.handleThemeStream)
}

// Hub exposes the connection hub.
func (h *Handler) Hub() *Hub { return h.hub }

// Close drops the bus subscriptions.
func (h *Handler) Close() {
	for _, unsub := range h.unsubscribe {
		unsub()
	}
	h.unsubscribe = nil
}

// handleThemeStream upgrades the connection, sends the tenant's current
// theme, then streams every later change.
func (h *Handler) handleThemeStream(w http.ResponseWriter, r *http.Request) {
	tenant := r.PathValue("tenant")
	store, err := h.themes.Store(r.Context(), tenant)
	switch {
	case errors.Is(err, themestore.ErrInvalidTenant):
		http.Error(w, "invalid tenant id", http.StatusBadRequest)
		return
	case errors.Is(err, themestore.ErrTenantLimit):
		http.Error(w, "tenant limit reached", http.StatusServiceUnavailable)
		return
	case err != nil:
		http.Error(w, "failed to load theme", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Theme variables are public presentation data.
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.logger.Error("websocket accept failed", zap.Error(err))
		return
	}

	client := &Client{
		conn:   conn,
		tenant: tenant,
		send:   make(chan Message, 16),
		logger: h.logger,
	}

	ctx := r.Context()
	done := make(chan struct{})
	go func() {
		client.writePump(ctx)
		close(done)
	}()

	// The current theme goes first in the queue, ahead of any change that
	// commits once the client is registered.
	store.Watch(func(snap themestore.Snapshot) {
		client.send <- Message{
			Type:      MessageThemeApplied,
			Tenant:    tenant,
			Timestamp: time.Now(),
			Data: ThemeAppliedData{
				PresetID: snap.Choice.PresetID,
				DarkMode: snap.Choice.DarkMode,
				Checksum: snap.Checksum,
				Block:    snap.Block,
			},
		}
		h.hub.Register(client)
	})

	// readPump blocks until client disconnects.
	client.readPump(ctx)

	h.hub.Unregister(client)
	conn.Close(websocket.StatusNormalClosure, "")
	<-done
}

func (h *Handler) subscribeToEvents() {
	if h.bus == nil {
		return
	}

	h.unsubscribe = append(h.unsubscribe,
		h.bus.Subscribe(event.TopicThemeApplied, func(_ context.Context, e event.Event) {
			u, ok := e.Payload.(themestore.Update)
			if !ok {
				return
			}
			h.hub.BroadcastTenant(u.Tenant, Message{
				Type:      MessageThemeApplied,
				Tenant:    u.Tenant,
				Timestamp: e.Timestamp,
				Data: ThemeAppliedData{
					PresetID: u.PresetID,
					DarkMode: u.DarkMode,
					Checksum: u.Checksum,
					Block:    u.Block,
				},
			})
		}),
		h.bus.Subscribe(event.TopicPresetRegistered, func(_ context.Context, e event.Event) {
			p, ok := e.Payload.(theme.PresetEntry)
			if !ok {
				return
			}
			h.hub.Broadcast(Message{
				Type:      MessagePresetRegistered,
				Timestamp: e.Timestamp,
				Data:      PresetRegisteredData{ID: p.ID, Name: p.Name, Version: p.Version},
			})
		}),
	)

	h.logger.Info("subscribed to theme events for WebSocket push")
}

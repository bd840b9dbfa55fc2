package themestore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/HerbHall/brandkit/internal/event"
	"github.com/HerbHall/brandkit/internal/theme"
)

// Update is what an Applier receives after every resolution.
type Update struct {
	Tenant    string       `json:"tenant" example:"acme"`
	PresetID  string       `json:"preset_id" example:"modern"`
	DarkMode  bool         `json:"dark_mode"`
	Checksum  string       `json:"checksum" example:"9f1c2b7de04a5c31"`
	Variables []theme.Pair `json:"variables"`
	Block     string       `json:"block"`
	Durable   bool         `json:"durable"`
}

// Applier pushes a serialized theme to wherever it is rendered.
type Applier interface {
	Apply(ctx context.Context, u Update) error
}

// ApplierFunc adapts a function to Applier.
type ApplierFunc func(ctx context.Context, u Update) error

// Apply calls f.
func (f ApplierFunc) Apply(ctx context.Context, u Update) error {
	return f(ctx, u)
}

// NopApplier discards updates. Managers start with it until WithApplier.
type NopApplier struct{}

// Apply does nothing.
func (NopApplier) Apply(context.Context, Update) error { return nil }

// BusApplier publishes updates on the event bus as TopicThemeApplied.
type BusApplier struct {
	bus event.Publisher
}

// NewBusApplier returns an Applier publishing on bus.
func NewBusApplier(bus event.Publisher) *BusApplier {
	return &BusApplier{bus: bus}
}

// Apply publishes u synchronously.
func (a *BusApplier) Apply(ctx context.Context, u Update) error {
	return a.bus.Publish(ctx, event.Event{
		ID:        uuid.New().String(),
		Topic:     event.TopicThemeApplied,
		Source:    "themestore",
		Tenant:    u.Tenant,
		Timestamp: time.Now().UTC(),
		Payload:   u,
	})
}

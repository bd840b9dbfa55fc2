package themestore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/event"
	"github.com/HerbHall/brandkit/internal/preference"
	"github.com/HerbHall/brandkit/internal/services"
	"github.com/HerbHall/brandkit/internal/theme"
)

var (
	// ErrInvalidTenant is returned for tenant ids outside [a-z0-9_-].
	ErrInvalidTenant = errors.New("invalid tenant id")
	// ErrTenantLimit is returned when a new tenant would exceed the cap.
	ErrTenantLimit = errors.New("tenant limit reached")
)

var tenantPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// ValidTenant reports whether id can name a tenant.
func ValidTenant(id string) bool {
	return tenantPattern.MatchString(id)
}

// Manager lazily creates and hydrates one Store per tenant, all sharing
// one resolver, settings repository and applier.
type Manager struct {
	resolver   *theme.Resolver
	repo       services.SettingsRepository
	archive    *preference.PresetArchive
	applier    Applier
	events     event.Publisher
	logger     *zap.Logger
	maxTenants int

	mu     sync.Mutex
	stores map[string]*Store
}

// Option configures a Manager.
type Option func(*Manager)

// WithMaxTenants caps the number of loaded tenants. Zero means no cap.
func WithMaxTenants(n int) Option {
	return func(m *Manager) { m.maxTenants = n }
}

// WithApplier sets the applier every store publishes through.
func WithApplier(a Applier) Option {
	return func(m *Manager) { m.applier = a }
}

// WithEvents publishes preset registrations on p.
func WithEvents(p event.Publisher) Option {
	return func(m *Manager) { m.events = p }
}

// NewManager returns a manager persisting through repo.
func NewManager(resolver *theme.Resolver, repo services.SettingsRepository, logger *zap.Logger, opts ...Option) *Manager {
	m := &Manager{
		resolver: resolver,
		repo:     repo,
		archive:  preference.NewPresetArchive(repo, logger.Named("presets")),
		applier:  NopApplier{},
		logger:   logger,
		stores:   make(map[string]*Store),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Resolver returns the shared resolver.
func (m *Manager) Resolver() *theme.Resolver { return m.resolver }

// LoadPresets re-registers archived tenant presets. Call once at startup
// before serving.
func (m *Manager) LoadPresets(ctx context.Context) (int, error) {
	return m.archive.LoadInto(ctx, m.resolver.Presets())
}

// Store returns the tenant's store, creating and hydrating it on first use.
// Hydration runs outside the manager lock: the new store is published
// already locked, so concurrent callers for the same tenant get it at once
// and block on its first read until the persisted choice is applied.
func (m *Manager) Store(ctx context.Context, tenant string) (*Store, error) {
	if !ValidTenant(tenant) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTenant, tenant)
	}

	m.mu.Lock()
	if s, ok := m.stores[tenant]; ok {
		m.mu.Unlock()
		return s, nil
	}
	if m.maxTenants > 0 && len(m.stores) >= m.maxTenants {
		m.mu.Unlock()
		return nil, fmt.Errorf("%w (%d)", ErrTenantLimit, m.maxTenants)
	}

	adapter := preference.NewAdapter(m.repo, tenant, m.logger.Named("preference"))
	s := New(tenant, m.resolver, adapter, m.applier, m.logger)
	s.mu.Lock()
	m.stores[tenant] = s
	activeTenants.Set(float64(len(m.stores)))
	m.mu.Unlock()

	s.hydrate(ctx)
	s.mu.Unlock()
	m.logger.Debug("tenant theme loaded", zap.String("tenant", tenant))
	return s, nil
}

// Tenants returns the loaded tenant ids in sorted order.
func (m *Manager) Tenants() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.stores))
	for id := range m.stores {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// RegisterPreset adds a tenant preset to the shared registry, archives it,
// and refreshes every loaded tenant that had already selected its id.
// Archive failures are logged; the preset stays registered for this run.
func (m *Manager) RegisterPreset(ctx context.Context, e theme.PresetEntry) (theme.PresetEntry, error) {
	e.BuiltIn = false
	if err := m.resolver.Presets().Register(e); err != nil {
		return theme.PresetEntry{}, err
	}
	stored, _ := m.resolver.Presets().Get(e.ID)

	if err := m.archive.Save(ctx, stored); err != nil {
		m.logger.Warn("preset registered but not archived",
			zap.String("preset", e.ID),
			zap.Error(err),
		)
	}

	m.mu.Lock()
	stores := make([]*Store, 0, len(m.stores))
	for _, s := range m.stores {
		stores = append(stores, s)
	}
	m.mu.Unlock()

	for _, s := range stores {
		if s.Choice().PresetID == e.ID {
			s.Refresh(ctx)
		}
	}
	if m.events != nil {
		_ = m.events.Publish(ctx, event.Event{
			ID:        uuid.New().String(),
			Topic:     event.TopicPresetRegistered,
			Source:    "themestore",
			Timestamp: time.Now().UTC(),
			Payload:   stored,
		})
	}
	m.logger.Info("preset registered",
		zap.String("preset", stored.ID),
		zap.String("version", stored.Version),
	)
	return stored, nil
}

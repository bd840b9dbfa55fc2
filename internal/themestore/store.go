// Package themestore owns each tenant's active theme. A Store ties the
// persisted choice to the resolution pipeline: every change re-resolves the
// full token set, serializes it, and hands it to an Applier.
package themestore

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/preference"
	"github.com/HerbHall/brandkit/internal/theme"
)

// Snapshot is a consistent view of one tenant's theme.
type Snapshot struct {
	Tenant    string            `json:"tenant" example:"acme"`
	Choice    preference.Choice `json:"choice"`
	Tokens    theme.TokenSet    `json:"tokens" swaggertype:"object"`
	Variables []theme.Pair      `json:"variables"`
	Block     string            `json:"-"`
	Checksum  string            `json:"checksum" example:"9f1c2b7de04a5c31"`
	Durable   bool              `json:"durable"`
}

// Store holds one tenant's choice and the token set derived from it.
// Mutations run resolve, serialize and apply under one mutex, so
// concurrent callers never observe a half-applied theme.
type Store struct {
	tenant   string
	resolver *theme.Resolver
	prefs    *preference.Adapter
	applier  Applier
	logger   *zap.Logger

	mu     sync.Mutex
	choice preference.Choice
	active theme.TokenSet
	pairs  []theme.Pair
	block  string
	sum    string
}

// New returns a store that has not been hydrated yet. Until Hydrate runs
// the active set is the default set.
func New(tenant string, resolver *theme.Resolver, prefs *preference.Adapter, applier Applier, logger *zap.Logger) *Store {
	if applier == nil {
		applier = NopApplier{}
	}
	s := &Store{
		tenant:   tenant,
		resolver: resolver,
		prefs:    prefs,
		applier:  applier,
		logger:   logger.With(zap.String("tenant", tenant)),
		choice:   preference.DefaultChoice(),
	}
	s.resolve()
	return s
}

// Tenant returns the tenant id.
func (s *Store) Tenant() string { return s.tenant }

// Hydrate loads the persisted choice and applies it.
func (s *Store) Hydrate(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrate(ctx)
}

// hydrate requires s.mu.
func (s *Store) hydrate(ctx context.Context) Snapshot {
	s.choice = s.prefs.Load(ctx)
	return s.commit(ctx)
}

// Refresh re-resolves the current choice, for example after the preset it
// names was registered.
func (s *Store) Refresh(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commit(ctx)
}

// Active returns the resolved token set. The value is read-only: accessors
// hand out copies.
func (s *Store) Active() theme.TokenSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Choice returns a copy of the current choice.
func (s *Store) Choice() preference.Choice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.choice.Clone()
}

// Variables returns the serialized pairs in schema order.
func (s *Store) Variables() []theme.Pair {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]theme.Pair(nil), s.pairs...)
}

// Block returns the :root variables block.
func (s *Store) Block() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.block
}

// Checksum returns the digest of Block.
func (s *Store) Checksum() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sum
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Watch calls fn with the current snapshot while holding the store lock.
// No update is applied between the snapshot and fn returning, so a
// subscriber registered inside fn sees every later change after it. fn must
// not call back into the store.
func (s *Store) Watch(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.snapshot())
}

// SelectPreset switches to presetID. Unknown ids are kept and resolve as
// the default preset.
func (s *Store) SelectPreset(ctx context.Context, presetID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choice = s.prefs.SetPreset(ctx, presetID)
	return s.commit(ctx)
}

// SetDarkMode sets the dark mode flag.
func (s *Store) SetDarkMode(ctx context.Context, dark bool) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choice = s.prefs.SetDarkMode(ctx, dark)
	return s.commit(ctx)
}

// ToggleDarkMode flips the dark mode flag.
func (s *Store) ToggleDarkMode(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choice = s.prefs.ToggleDarkMode(ctx)
	return s.commit(ctx)
}

// PatchOverrides deep-merges p into the custom overrides. A patch that
// violates the schema returns a *theme.SchemaError and changes nothing.
func (s *Store) PatchOverrides(ctx context.Context, p theme.Patch) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	choice, err := s.prefs.PatchCustomOverrides(ctx, p)
	if err != nil {
		return s.snapshot(), err
	}
	s.choice = choice
	return s.commit(ctx), nil
}

// Reset restores the created-default choice.
func (s *Store) Reset(ctx context.Context) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.choice = s.prefs.Reset(ctx)
	return s.commit(ctx)
}

// commit resolves the current choice and applies it. Callers hold s.mu.
func (s *Store) commit(ctx context.Context) Snapshot {
	if !s.resolver.KnownPreset(s.choice.PresetID) {
		unknownPresetTotal.Inc()
		s.logger.Warn("unknown theme preset, using default",
			zap.String("preset", s.choice.PresetID),
		)
	}
	s.resolve()

	snap := s.snapshot()
	u := Update{
		Tenant:    s.tenant,
		PresetID:  snap.Choice.PresetID,
		DarkMode:  snap.Choice.DarkMode,
		Checksum:  snap.Checksum,
		Variables: snap.Variables,
		Block:     snap.Block,
		Durable:   snap.Durable,
	}
	if err := s.applier.Apply(ctx, u); err != nil {
		applyFailuresTotal.Inc()
		s.logger.Warn("theme apply failed", zap.Error(err))
	}
	return snap
}

func (s *Store) resolve() {
	start := time.Now()
	s.active = s.resolver.Resolve(s.choice.PresetID, s.choice.CustomOverrides, s.choice.DarkMode)
	s.pairs = theme.Serialize(s.active)
	s.block = theme.VariablesBlock(s.pairs)
	s.sum = theme.Checksum(s.block)
	resolutionDuration.Observe(time.Since(start).Seconds())
	resolutionsTotal.WithLabelValues(strconv.FormatBool(s.choice.DarkMode)).Inc()
}

func (s *Store) snapshot() Snapshot {
	return Snapshot{
		Tenant:    s.tenant,
		Choice:    s.choice.Clone(),
		Tokens:    s.active,
		Variables: append([]theme.Pair(nil), s.pairs...),
		Block:     s.block,
		Checksum:  s.sum,
		Durable:   s.prefs.Durable(),
	}
}

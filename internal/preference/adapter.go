// Package preference persists each tenant's theme choice (preset id,
// custom overrides, dark mode flag) in the settings repository and survives
// storage outages by falling back to memory.
package preference

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/services"
	"github.com/HerbHall/brandkit/internal/theme"
)

// Record names. Each is stored under its own key so that one corrupt
// record never takes the others down with it.
const (
	RecordPreset    = "preset"
	RecordOverrides = "overrides"
	RecordDarkMode  = "dark_mode"
)

// Key returns the settings key holding record for tenant.
func Key(tenant, record string) string {
	return "theme:" + tenant + ":" + record
}

// Choice is what a tenant picked. The active token set is always derived
// from it and never stored.
type Choice struct {
	PresetID        string      `json:"preset_id" example:"modern"`
	CustomOverrides theme.Patch `json:"custom_overrides" swaggertype:"object"`
	DarkMode        bool        `json:"dark_mode"`
}

// DefaultChoice is the choice of a tenant that never saved anything.
func DefaultChoice() Choice {
	return Choice{PresetID: theme.DefaultPresetID, CustomOverrides: theme.Patch{}}
}

// Clone returns a deep copy.
func (c Choice) Clone() Choice {
	c.CustomOverrides = c.CustomOverrides.Clone()
	return c
}

// records lists the record names in write order.
var records = []string{RecordPreset, RecordOverrides, RecordDarkMode}

// Adapter reads and writes one tenant's Choice. Mutators run
// read-modify-write under a single mutex. A record whose write fails stays
// pending: the choice keeps serving from memory and the record is written
// again after the next successful write.
type Adapter struct {
	repo   services.SettingsRepository
	tenant string
	logger *zap.Logger

	mu      sync.Mutex
	current Choice
	pending map[string]bool
}

// NewAdapter returns an adapter for tenant. Call Load before reading the
// current choice; until then it is DefaultChoice.
func NewAdapter(repo services.SettingsRepository, tenant string, logger *zap.Logger) *Adapter {
	return &Adapter{
		repo:    repo,
		tenant:  tenant,
		logger:  logger.With(zap.String("tenant", tenant)),
		current: DefaultChoice(),
		pending: make(map[string]bool),
	}
}

// Durable reports whether storage holds the whole in-memory choice.
func (a *Adapter) Durable() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending) == 0
}

// Current returns a copy of the in-memory choice.
func (a *Adapter) Current() Choice {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current.Clone()
}

// Load hydrates the choice from storage. It never fails: missing records
// yield defaults and malformed records are discarded.
func (a *Adapter) Load(ctx context.Context) Choice {
	a.mu.Lock()
	defer a.mu.Unlock()

	c := DefaultChoice()
	if v, ok := a.read(ctx, RecordPreset); ok && v != "" {
		c.PresetID = v
	}
	if v, ok := a.read(ctx, RecordOverrides); ok {
		p, err := theme.ParsePatch([]byte(v))
		if err != nil {
			a.discard(ctx, RecordOverrides, err)
		} else {
			c.CustomOverrides = p
		}
	}
	if v, ok := a.read(ctx, RecordDarkMode); ok {
		dark, err := strconv.ParseBool(v)
		if err != nil {
			a.discard(ctx, RecordDarkMode, err)
		} else {
			c.DarkMode = dark
		}
	}

	a.current = c
	return c.Clone()
}

// Save replaces the whole choice.
func (a *Adapter) Save(ctx context.Context, c Choice) Choice {
	a.mu.Lock()
	defer a.mu.Unlock()

	if c.CustomOverrides == nil {
		c.CustomOverrides = theme.Patch{}
	}
	a.current = c.Clone()
	a.persistPreset(ctx)
	a.persistOverrides(ctx)
	a.persistDarkMode(ctx)
	return a.current.Clone()
}

// SetPreset records a new preset id. Overrides and dark mode are kept.
func (a *Adapter) SetPreset(ctx context.Context, id string) Choice {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current.PresetID = id
	a.persistPreset(ctx)
	return a.current.Clone()
}

// SetDarkMode records the dark mode flag.
func (a *Adapter) SetDarkMode(ctx context.Context, dark bool) Choice {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current.DarkMode = dark
	a.persistDarkMode(ctx)
	return a.current.Clone()
}

// ToggleDarkMode flips the dark mode flag.
func (a *Adapter) ToggleDarkMode(ctx context.Context) Choice {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current.DarkMode = !a.current.DarkMode
	a.persistDarkMode(ctx)
	return a.current.Clone()
}

// PatchCustomOverrides deep-merges p into the stored overrides. p is
// validated first; a *theme.SchemaError leaves the choice untouched.
func (a *Adapter) PatchCustomOverrides(ctx context.Context, p theme.Patch) (Choice, error) {
	valid, err := theme.ValidatePatch(p)
	if err != nil {
		return a.Current(), err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.current.CustomOverrides = theme.MergePatch(a.current.CustomOverrides, valid)
	a.persistOverrides(ctx)
	return a.current.Clone(), nil
}

// Reset restores DefaultChoice and removes the stored records.
func (a *Adapter) Reset(ctx context.Context) Choice {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.current = DefaultChoice()
	for _, record := range records {
		a.write(ctx, record, func() error { return a.repo.Delete(ctx, Key(a.tenant, record)) })
	}
	return a.current.Clone()
}

func (a *Adapter) read(ctx context.Context, record string) (string, bool) {
	s, err := a.repo.Get(ctx, Key(a.tenant, record))
	if errors.Is(err, services.ErrNotFound) {
		return "", false
	}
	if err != nil {
		a.logger.Warn("theme preference unreadable, using default",
			zap.String("record", record),
			zap.Error(err),
		)
		return "", false
	}
	return s.Value, true
}

func (a *Adapter) discard(ctx context.Context, record string, cause error) {
	malformedRecords.WithLabelValues(record).Inc()
	a.logger.Warn("discarding malformed theme preference",
		zap.String("record", record),
		zap.Error(cause),
	)
	a.write(ctx, record, func() error { return a.repo.Delete(ctx, Key(a.tenant, record)) })
}

func (a *Adapter) persistPreset(ctx context.Context) {
	a.set(ctx, RecordPreset)
}

func (a *Adapter) persistDarkMode(ctx context.Context) {
	a.set(ctx, RecordDarkMode)
}

func (a *Adapter) persistOverrides(ctx context.Context) {
	a.set(ctx, RecordOverrides)
}

// encode renders the current value of record for storage.
func (a *Adapter) encode(record string) (string, error) {
	switch record {
	case RecordPreset:
		return a.current.PresetID, nil
	case RecordDarkMode:
		return strconv.FormatBool(a.current.DarkMode), nil
	case RecordOverrides:
		data, err := json.Marshal(a.current.CustomOverrides)
		if err != nil {
			return "", fmt.Errorf("encode overrides: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown record %q", record)
	}
}

func (a *Adapter) set(ctx context.Context, record string) {
	a.write(ctx, record, func() error {
		value, err := a.encode(record)
		if err != nil {
			return err
		}
		return a.repo.Set(ctx, Key(a.tenant, record), value)
	})
}

// write runs op for record. On success the record is clean and any records
// left pending by earlier failures are written again.
func (a *Adapter) write(ctx context.Context, record string, op func() error) {
	if err := op(); err != nil {
		a.fail(record, err)
		return
	}
	delete(a.pending, record)
	a.flush(ctx)
}

// flush rewrites pending records from the in-memory choice. It stops at the
// first failure.
func (a *Adapter) flush(ctx context.Context) {
	if len(a.pending) == 0 {
		return
	}
	for _, record := range records {
		if !a.pending[record] {
			continue
		}
		value, err := a.encode(record)
		if err == nil {
			err = a.repo.Set(ctx, Key(a.tenant, record), value)
		}
		if err != nil {
			writeFailures.WithLabelValues(record).Inc()
			a.logger.Debug("pending theme preference still not persisted",
				zap.String("record", record),
				zap.Error(err),
			)
			return
		}
		delete(a.pending, record)
	}
	a.logger.Info("theme preference storage recovered")
}

func (a *Adapter) fail(record string, err error) {
	writeFailures.WithLabelValues(record).Inc()
	a.pending[record] = true
	a.logger.Warn("theme preference not persisted, continuing in memory",
		zap.String("record", record),
		zap.Error(err),
	)
}

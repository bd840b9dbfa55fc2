package preference

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/HerbHall/brandkit/internal/services"
	"github.com/HerbHall/brandkit/internal/theme"
)

const presetKeyPrefix = "preset:"

// PresetArchive stores tenant-registered presets so the append-only
// registry can be rebuilt after a restart. Built-in presets are never
// archived.
type PresetArchive struct {
	repo   services.SettingsRepository
	logger *zap.Logger
}

// NewPresetArchive returns an archive writing through repo.
func NewPresetArchive(repo services.SettingsRepository, logger *zap.Logger) *PresetArchive {
	return &PresetArchive{repo: repo, logger: logger}
}

// Save writes e under preset:<id>.
func (a *PresetArchive) Save(ctx context.Context, e theme.PresetEntry) error {
	e.BuiltIn = false
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode preset %s: %w", e.ID, err)
	}
	if err := a.repo.Set(ctx, presetKeyPrefix+e.ID, string(data)); err != nil {
		return fmt.Errorf("archive preset %s: %w", e.ID, err)
	}
	return nil
}

// LoadInto registers every archived preset in r and returns how many were
// added. Records that do not decode or validate are skipped with a warning,
// as are ids r already holds.
func (a *PresetArchive) LoadInto(ctx context.Context, r *theme.Registry) (int, error) {
	records, err := a.repo.List(ctx, presetKeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("list archived presets: %w", err)
	}

	loaded := 0
	for _, rec := range records {
		id := strings.TrimPrefix(rec.Key, presetKeyPrefix)
		var e theme.PresetEntry
		if err := json.Unmarshal([]byte(rec.Value), &e); err != nil {
			malformedRecords.WithLabelValues("preset").Inc()
			a.logger.Warn("skipping unreadable archived preset", zap.String("preset", id), zap.Error(err))
			continue
		}
		e.ID = id
		e.BuiltIn = false
		if err := r.Register(e); err != nil {
			a.logger.Warn("skipping archived preset", zap.String("preset", id), zap.Error(err))
			continue
		}
		loaded++
	}
	return loaded, nil
}

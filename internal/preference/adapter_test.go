package preference

import (
	"context"
	"errors"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/HerbHall/brandkit/internal/services"
	"github.com/HerbHall/brandkit/internal/testutil"
	"github.com/HerbHall/brandkit/internal/theme"
)

// flakyRepo wraps a repository and fails writes while broken is set.
type flakyRepo struct {
	services.SettingsRepository
	broken bool
	writes int
}

var errDiskFull = errors.New("disk full")

func (r *flakyRepo) Set(ctx context.Context, key, value string) error {
	r.writes++
	if r.broken {
		return errDiskFull
	}
	return r.SettingsRepository.Set(ctx, key, value)
}

func (r *flakyRepo) Delete(ctx context.Context, key string) error {
	r.writes++
	if r.broken {
		return errDiskFull
	}
	return r.SettingsRepository.Delete(ctx, key)
}

func TestLoad_ColdStartReturnsDefaults(t *testing.T) {
	a := NewAdapter(services.NewMemorySettingsRepository(), "acme", zaptest.NewLogger(t))

	got := a.Load(context.Background())
	assert.Equal(t, DefaultChoice(), got)
	assert.True(t, a.Durable())
}

func TestAdapter_ChoiceSurvivesReload(t *testing.T) {
	ctx := context.Background()
	repo, err := services.NewSQLiteSettingsRepository(ctx, testutil.NewStore(t))
	require.NoError(t, err)

	first := NewAdapter(repo, "acme", zaptest.NewLogger(t))
	first.Load(ctx)
	first.SetPreset(ctx, "modern")
	first.SetDarkMode(ctx, true)
	_, err = first.PatchCustomOverrides(ctx, testutil.ColorPatch("primary", "500", "#ff0000"))
	require.NoError(t, err)
	_, err = first.PatchCustomOverrides(ctx, theme.Patch{"zIndex": map[string]any{"modal": 2000}})
	require.NoError(t, err)

	second := NewAdapter(repo, "acme", zaptest.NewLogger(t))
	got := second.Load(ctx)
	assert.Equal(t, "modern", got.PresetID)
	assert.True(t, got.DarkMode)
	assert.Equal(t, theme.Patch{
		"colors": map[string]any{"primary": map[string]any{"500": "#ff0000"}},
		"zIndex": map[string]any{"modal": 2000},
	}, got.CustomOverrides)

	other := NewAdapter(repo, "globex", zaptest.NewLogger(t))
	assert.Equal(t, DefaultChoice(), other.Load(ctx), "tenants are isolated")
}

func TestAdapter_StoresThreeIndependentRecords(t *testing.T) {
	ctx := context.Background()
	repo := services.NewMemorySettingsRepository()
	a := NewAdapter(repo, "acme", zaptest.NewLogger(t))
	a.Save(ctx, Choice{PresetID: "minimal", CustomOverrides: theme.Patch{"spacing": map[string]any{"md": "1.1rem"}}, DarkMode: true})

	for record, want := range map[string]string{
		RecordPreset:    "minimal",
		RecordOverrides: `{"spacing":{"md":"1.1rem"}}`,
		RecordDarkMode:  "true",
	} {
		s, err := repo.Get(ctx, Key("acme", record))
		require.NoError(t, err, record)
		assert.Equal(t, want, s.Value, record)
	}
}

func TestLoad_MalformedOverridesDiscarded(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not json", value: "{colors: nope"},
		{name: "unknown key", value: `{"colors":{"brand":"#fff"}}`},
		{name: "wrong kind", value: `{"animations":{"enabled":"yes"}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := services.NewMemorySettingsRepository()
			require.NoError(t, repo.Set(ctx, Key("acme", RecordPreset), "corporate"))
			require.NoError(t, repo.Set(ctx, Key("acme", RecordOverrides), tt.value))

			core, logs := observer.New(zapcore.WarnLevel)
			before := promtest.ToFloat64(malformedRecords.WithLabelValues(RecordOverrides))

			got := NewAdapter(repo, "acme", zap.New(core)).Load(ctx)

			assert.Equal(t, "corporate", got.PresetID, "other records unaffected")
			assert.Equal(t, theme.Patch{}, got.CustomOverrides)
			assert.Equal(t, 1, logs.FilterMessage("discarding malformed theme preference").Len())
			assert.Equal(t, before+1, promtest.ToFloat64(malformedRecords.WithLabelValues(RecordOverrides)))

			_, err := repo.Get(ctx, Key("acme", RecordOverrides))
			assert.ErrorIs(t, err, services.ErrNotFound, "malformed record deleted")
		})
	}
}

func TestLoad_CorruptDarkFlagIsFalse(t *testing.T) {
	ctx := context.Background()
	repo := services.NewMemorySettingsRepository()
	require.NoError(t, repo.Set(ctx, Key("acme", RecordDarkMode), "sometimes"))

	got := NewAdapter(repo, "acme", zaptest.NewLogger(t)).Load(ctx)
	assert.False(t, got.DarkMode)
}

func TestAdapter_WriteFailureFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepo{SettingsRepository: services.NewMemorySettingsRepository(), broken: true}
	core, logs := observer.New(zapcore.WarnLevel)
	before := promtest.ToFloat64(writeFailures.WithLabelValues(RecordPreset))

	a := NewAdapter(repo, "acme", zap.New(core))
	a.Load(ctx)
	got := a.SetPreset(ctx, "creative")

	assert.Equal(t, "creative", got.PresetID, "in-memory choice stays correct")
	assert.False(t, a.Durable())
	assert.Equal(t, before+1, promtest.ToFloat64(writeFailures.WithLabelValues(RecordPreset)))
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "acme", logs.All()[0].ContextMap()["tenant"])

	got = a.SetDarkMode(ctx, true)
	assert.True(t, got.DarkMode)
	assert.Equal(t, "creative", a.Current().PresetID)
	assert.False(t, a.Durable())
}

func TestAdapter_PendingRecordsWrittenAfterRecovery(t *testing.T) {
	ctx := context.Background()
	repo := &flakyRepo{SettingsRepository: services.NewMemorySettingsRepository(), broken: true}
	a := NewAdapter(repo, "acme", zaptest.NewLogger(t))
	a.Load(ctx)

	a.SetPreset(ctx, "creative")
	_, err := a.PatchCustomOverrides(ctx, testutil.ColorPatch("primary", "500", "#aa0000"))
	require.NoError(t, err)
	require.False(t, a.Durable())

	repo.broken = false
	a.SetDarkMode(ctx, true)
	assert.True(t, a.Durable(), "one successful write clears the backlog")

	reloaded := NewAdapter(repo, "acme", zaptest.NewLogger(t)).Load(ctx)
	assert.Equal(t, "creative", reloaded.PresetID)
	assert.True(t, reloaded.DarkMode)
	assert.Equal(t, testutil.ColorPatch("primary", "500", "#aa0000"), reloaded.CustomOverrides)
}

func TestAdapter_PartialSaveCompletesOnNextWrite(t *testing.T) {
	ctx := context.Background()
	repo := &failKeyRepo{
		SettingsRepository: services.NewMemorySettingsRepository(),
		failKey:            Key("acme", RecordOverrides),
	}
	a := NewAdapter(repo, "acme", zaptest.NewLogger(t))

	a.Save(ctx, Choice{PresetID: "modern", CustomOverrides: testutil.ColorPatch("text", "link", "#0000ee"), DarkMode: true})
	assert.False(t, a.Durable())

	repo.failKey = ""
	a.SetPreset(ctx, "minimal")
	assert.True(t, a.Durable())

	reloaded := NewAdapter(repo, "acme", zaptest.NewLogger(t)).Load(ctx)
	assert.Equal(t, Choice{PresetID: "minimal", CustomOverrides: testutil.ColorPatch("text", "link", "#0000ee"), DarkMode: true}, reloaded)
}

// failKeyRepo fails writes to a single key.
type failKeyRepo struct {
	services.SettingsRepository
	failKey string
}

func (r *failKeyRepo) Set(ctx context.Context, key, value string) error {
	if key == r.failKey {
		return errDiskFull
	}
	return r.SettingsRepository.Set(ctx, key, value)
}

func TestPatchCustomOverrides_RejectsSchemaViolation(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(services.NewMemorySettingsRepository(), "acme", zaptest.NewLogger(t))
	_, err := a.PatchCustomOverrides(ctx, testutil.ColorPatch("primary", "500", "#123456"))
	require.NoError(t, err)

	got, err := a.PatchCustomOverrides(ctx, theme.Patch{"radius": "4px"})
	var se *theme.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "radius", se.Path)
	assert.Equal(t, testutil.ColorPatch("primary", "500", "#123456"), got.CustomOverrides)
}

func TestPatchCustomOverrides_DeepMerges(t *testing.T) {
	ctx := context.Background()
	a := NewAdapter(services.NewMemorySettingsRepository(), "acme", zaptest.NewLogger(t))

	_, err := a.PatchCustomOverrides(ctx, testutil.ColorPatch("primary", "500", "#aa0000"))
	require.NoError(t, err)
	got, err := a.PatchCustomOverrides(ctx, testutil.ColorPatch("primary", "600", "#bb0000"))
	require.NoError(t, err)

	assert.Equal(t, theme.Patch{"colors": map[string]any{"primary": map[string]any{
		"500": "#aa0000",
		"600": "#bb0000",
	}}}, got.CustomOverrides)
}

func TestAdapter_ToggleAndReset(t *testing.T) {
	ctx := context.Background()
	repo := services.NewMemorySettingsRepository()
	a := NewAdapter(repo, "acme", zaptest.NewLogger(t))

	assert.True(t, a.ToggleDarkMode(ctx).DarkMode)
	assert.False(t, a.ToggleDarkMode(ctx).DarkMode)

	a.SetPreset(ctx, "modern")
	got := a.Reset(ctx)
	assert.Equal(t, DefaultChoice(), got)

	all, err := repo.List(ctx, "theme:acme:")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Equal(t, DefaultChoice(), NewAdapter(repo, "acme", zaptest.NewLogger(t)).Load(ctx))
}

func TestChoice_CloneIsDeep(t *testing.T) {
	c := Choice{PresetID: "modern", CustomOverrides: testutil.ColorPatch("text", "link", "#010101")}
	cp := c.Clone()
	cp.CustomOverrides["colors"].(map[string]any)["text"].(map[string]any)["link"] = "#020202"

	assert.Equal(t, testutil.ColorPatch("text", "link", "#010101"), c.CustomOverrides)
}

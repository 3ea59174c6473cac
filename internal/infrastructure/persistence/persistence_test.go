package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/domain/entity"
	"github.com/torralabs/torra-onboarding/internal/domain/wizard"
)

func sampleSnapshot() *wizard.Snapshot {
	snap := wizard.DefaultSnapshot()
	snap.CurrentStep = 3
	snap.CompletedSteps = []int{1, 2}
	snap.FormData[entity.KeyPersonal] = entity.PersonalData{FullName: "João Silva", CPF: "529.982.247-25"}
	snap.FormData[entity.KeyTransport] = entity.TransportData{
		NeedsTransport: true,
		Lines:          []entity.TransportLineRecord{{ID: "l1", LineName: "8000-10", Company: "SPTrans", FareAmount: "5.00"}},
	}
	snap.Documents = []entity.DocumentRecord{
		{ID: "d1", StepID: 10, Name: "rg.pdf", Type: "rg", Status: entity.DocumentUploaded},
	}
	return snap
}

func assertSnapshotsEqual(t *testing.T, want, got *wizard.Snapshot) {
	t.Helper()
	assert.Equal(t, want.CurrentStep, got.CurrentStep)
	assert.Equal(t, want.CompletedSteps, got.CompletedSteps)
	assert.Equal(t, want.FormData, got.FormData)
	// Timestamps go through JSON, so compare documents field by field.
	require.Len(t, got.Documents, len(want.Documents))
	for i := range want.Documents {
		assert.Equal(t, want.Documents[i].ID, got.Documents[i].ID)
		assert.Equal(t, want.Documents[i].Status, got.Documents[i].Status)
		assert.Equal(t, want.Documents[i].Name, got.Documents[i].Name)
	}
}

func TestFileStore_MissingFile(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	snap, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, snap)
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	want := sampleSnapshot()
	require.NoError(t, store.Save(want))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assertSnapshotsEqual(t, want, got)
}

func TestFileStore_CorruptJSON(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey+".json"), []byte("{ invalid json }"), 0o644))

	_, ok, err := store.Load()
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestFileStore_MissingStateEnvelope(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey+".json"), []byte(`{"other":1}`), 0o644))

	_, ok, err := store.Load()
	assert.False(t, ok)
	assert.Error(t, err)
}

// Corrupt storage must yield the default wizard state, never a crash.
func TestFileStore_CorruptJSONRecoversToDefaults(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, StorageKey+".json"), []byte("{ invalid json }"), 0o644))

	w := wizard.New(store, zap.NewNop())
	assert.Equal(t, entity.Step(1), w.CurrentStep())
	assert.Empty(t, w.Snapshot().CompletedSteps)
}

func TestFileStore_OverwriteLastWriterWins(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)

	first := sampleSnapshot()
	require.NoError(t, store.Save(first))

	second := wizard.DefaultSnapshot()
	second.CurrentStep = 7
	require.NoError(t, store.Save(second))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 7, got.CurrentStep)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding.db")
	store, err := NewSQLiteStore(path, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "fresh database has no snapshot")

	want := sampleSnapshot()
	require.NoError(t, store.Save(want))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assertSnapshotsEqual(t, want, got)
}

func TestSQLiteStore_UpsertReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding.db")
	store, err := NewSQLiteStore(path, zap.NewNop())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(sampleSnapshot()))

	second := wizard.DefaultSnapshot()
	second.CurrentStep = 5
	require.NoError(t, store.Save(second))

	got, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 5, got.CurrentStep)
}

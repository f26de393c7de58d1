package storage_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/NeuralTrust/AppVerdict/pkg/domain/verdict"
	"github.com/NeuralTrust/AppVerdict/pkg/infra/storage"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore() storage.Store {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return storage.NewJSONStore(l)
}

func TestLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"appId": "com.example.bank", "title": "Bank", "price": 0,
		 "permissions": {"count": 1, "list": ["android.permission.READ_SMS"]}},
		{"appId": "com.example.game", "comments": [{"score": 5, "text": "fun"}]}
	]`), 0600))

	records, err := newStore().LoadRecords(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "com.example.bank", records[0].ID())
	assert.Equal(t, []string{"android.permission.READ_SMS"}, records[0].Permissions.List)
	require.Len(t, records[1].Reviews, 1)
	assert.Equal(t, "fun", records[1].Reviews[0].Text)
}

func TestLoadRecords_Missing(t *testing.T) {
	_, err := newStore().LoadRecords(filepath.Join(t.TempDir(), "nope.json"))
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoadRecords_NotAnArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"appId": "x"}`), 0600))

	_, err := newStore().LoadRecords(path)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)
}

func TestLoadLabels(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "labels.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"com.a": 1, "com.b": 0}`), 0600))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"com.a": 2}`), 0600))

	labels, err := newStore().LoadLabels(good)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"com.a": 1, "com.b": 0}, labels)

	_, err = newStore().LoadLabels(bad)
	assert.ErrorContains(t, err, "must be 0 or 1")
}

func TestSave_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "output", "analysis_results.json")
	reports := []verdict.Report{
		verdict.NewReport(verdict.Verdict{Type: verdict.Fraud, Reason: "Fake bank"}, "com.a", "A"),
	}

	require.NoError(t, newStore().Save(path, reports))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"fraud","reason":"Fake bank","app_id":"com.a","app_title":"A"}]`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestLoadReports_AfterSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analysis_results.json")
	reports := []verdict.Report{
		verdict.NewReport(verdict.Verdict{Type: verdict.Genuine, Reason: "Known publisher"}, "com.a", "A"),
		verdict.NewReport(verdict.FallbackVerdict(verdict.FallbackInvalidFormat), "com.b", "B"),
	}
	store := newStore()
	require.NoError(t, store.Save(path, reports))

	loaded, err := store.LoadReports(path)
	require.NoError(t, err)
	assert.Equal(t, reports, loaded)
}

func TestLoadReports_Errors(t *testing.T) {
	_, err := newStore().LoadReports(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, storage.ErrNotFound)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type":"fraud"}`), 0o600))
	_, err = newStore().LoadReports(path)
	assert.ErrorContains(t, err, "load reports")
}

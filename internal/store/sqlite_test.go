package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestKV(t *testing.T) *SQLiteKV {
	t.Helper()

	kv, err := NewSQLiteKV(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, kv.Close())
	})
	return kv
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestLoadAbsentKeyReturnsFalse(t *testing.T) {
	kv := newTestKV(t)

	var got sample
	assert.False(t, kv.Load("missing", &got))
	assert.Equal(t, sample{}, got)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := newTestKV(t)

	want := sample{Name: "ledger", Count: 42}
	require.NoError(t, kv.Save("sample", want))

	var got sample
	assert.True(t, kv.Load("sample", &got))
	assert.Equal(t, want, got)
}

func TestSaveOverwritesPreviousDocument(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Save("sample", sample{Name: "old", Count: 1}))
	require.NoError(t, kv.Save("sample", sample{Name: "new", Count: 2}))

	var got sample
	assert.True(t, kv.Load("sample", &got))
	assert.Equal(t, sample{Name: "new", Count: 2}, got)
}

func TestMalformedDocumentYieldsDefault(t *testing.T) {
	kv := newTestKV(t)

	// Bypass Save to plant a corrupt document.
	_, err := kv.db.Exec(
		"INSERT INTO records (key, value) VALUES (?, ?)",
		"sample", "{not valid json",
	)
	require.NoError(t, err)

	got := sample{Name: "untouched"}
	assert.False(t, kv.Load("sample", &got))
	assert.Equal(t, "untouched", got.Name)
}

func TestSaveAfterLoadIsByteStable(t *testing.T) {
	kv := newTestKV(t)

	require.NoError(t, kv.Save("sample", sample{Name: "stable", Count: 7}))
	before, found, err := kv.Raw("sample")
	require.NoError(t, err)
	require.True(t, found)

	var loaded sample
	require.True(t, kv.Load("sample", &loaded))
	require.NoError(t, kv.Save("sample", loaded))

	after, found, err := kv.Raw("sample")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, before, after)
}

func TestRawCopyRestoresEveryKey(t *testing.T) {
	src := newTestKV(t)
	dst := newTestKV(t)

	for i, key := range AllKeys() {
		require.NoError(t, src.Save(key, sample{Name: key, Count: i}))
	}

	// Copy raw documents across, the way backup export/import does.
	for _, key := range AllKeys() {
		raw, found, err := src.Raw(key)
		require.NoError(t, err)
		require.True(t, found, key)
		require.NoError(t, dst.PutRaw(key, raw))
	}

	for i, key := range AllKeys() {
		var got sample
		require.True(t, dst.Load(key, &got), key)
		assert.Equal(t, sample{Name: key, Count: i}, got)
	}
}

func TestPutRawRejectsInvalidJSON(t *testing.T) {
	kv := newTestKV(t)

	assert.Error(t, kv.PutRaw("sample", "{oops"))
	require.NoError(t, kv.PutRaw("sample", `{"name":"ok","count":3}`))

	var got sample
	assert.True(t, kv.Load("sample", &got))
	assert.Equal(t, sample{Name: "ok", Count: 3}, got)
}

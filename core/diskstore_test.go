package core

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caskdb/internal/record"
)

func openStore(t *testing.T, path string) *DiskStore {
	t.Helper()

	ds, err := Open(path, nil, nil)
	require.NoError(t, err)
	return ds
}

func TestSetThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	ds := openStore(t, path)
	defer ds.Close()

	require.NoError(t, ds.Set("a", "1"))

	got, err := ds.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "1", got)
}

func TestLastWriteWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	ds := openStore(t, path)
	defer ds.Close()

	require.NoError(t, ds.Set("a", "1"))

	sizeAfterFirst, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, ds.Set("a", "22"))

	got, err := ds.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "22", got)

	// The old record is dead space, never removed or rewritten: the file
	// grows by exactly the second record's encoded length.
	sizeAfterSecond, err := os.Stat(path)
	require.NoError(t, err)
	secondRecordSize := int64(record.HeaderSize + len("a") + len("22"))
	assert.Equal(t, sizeAfterFirst.Size()+secondRecordSize, sizeAfterSecond.Size())

	assert.Len(t, ds.keyDir, 1)
}

func TestGetUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	ds := openStore(t, path)
	defer ds.Close()

	got, err := ds.Get("missing")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	ds := openStore(t, path)
	require.NoError(t, ds.Set("x", "y"))
	require.NoError(t, ds.Close())

	ds = openStore(t, path)
	defer ds.Close()

	got, err := ds.Get("x")
	require.NoError(t, err)
	assert.Equal(t, "y", got)
}

func TestScanRebuildsManyKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")
	const n = 100

	ds := openStore(t, path)
	for i := 0; i < n; i++ {
		require.NoError(t, ds.Set(fmt.Sprintf("key-%03d", i), fmt.Sprintf("value-%03d", i)))
	}
	require.NoError(t, ds.Close())

	ds = openStore(t, path)
	defer ds.Close()

	assert.Len(t, ds.keyDir, n)

	for i := 0; i < n; i++ {
		got, err := ds.Get(fmt.Sprintf("key-%03d", i))
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("value-%03d", i), got)
	}
}

func TestWritesAppendAfterReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	ds := openStore(t, path)
	require.NoError(t, ds.Set("first", "1"))
	require.NoError(t, ds.Close())

	ds = openStore(t, path)
	defer ds.Close()

	require.NoError(t, ds.Set("second", "2"))

	for key, want := range map[string]string{"first": "1", "second": "2"} {
		got, err := ds.Get(key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestOpenRejectsTruncatedDatafile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	ds := openStore(t, path)
	require.NoError(t, ds.Set("a", "1"))
	require.NoError(t, ds.Set("b", "2"))
	require.NoError(t, ds.Close())

	// Chop one byte off the trailing record.
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, os.Truncate(path, info.Size()-1))

	_, err = Open(path, nil, nil)
	require.ErrorIs(t, err, ErrCorruptStore)
}

func TestOpenRejectsPartialHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	// Fewer bytes than a single header.
	require.NoError(t, os.WriteFile(path, []byte{0x01, 0x02, 0x03}, 0644))

	_, err := Open(path, nil, nil)
	require.ErrorIs(t, err, ErrCorruptStore)
}

func TestOpenRejectsOversizedClaim(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	// Valid-length header claiming a payload far beyond the file size.
	header := record.EncodeHeader(0, 1<<30, 1<<30)
	require.NoError(t, os.WriteFile(path, header, 0644))

	_, err := Open(path, nil, nil)
	require.ErrorIs(t, err, ErrCorruptStore)
}

func TestSecondOpenOnSamePathIsRefused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")

	ds := openStore(t, path)
	defer ds.Close()

	_, err := Open(path, nil, nil)
	assert.Error(t, err)
}

func TestMetrics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.db")
	registry := prometheus.NewRegistry()

	ds, err := Open(path, nil, registry)
	require.NoError(t, err)
	defer ds.Close()

	require.NoError(t, ds.Set("a", "1"))
	require.NoError(t, ds.Set("b", "2"))

	_, err = ds.Get("a")
	require.NoError(t, err)
	_, err = ds.Get("missing")
	require.NoError(t, err)

	assert.Equal(t, float64(2), testutil.ToFloat64(ds.metrics.sets))
	assert.Equal(t, float64(2), testutil.ToFloat64(ds.metrics.gets))
	assert.Equal(t, float64(2), testutil.ToFloat64(ds.metrics.keys))

	recordSize := float64(2 * (record.HeaderSize + 2))
	assert.Equal(t, recordSize, testutil.ToFloat64(ds.metrics.bytesAppended))
}

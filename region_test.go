package fvoxel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Pain67/fVoxel/internal/binio"
)

func newTestRegion(t *testing.T) *Region {
	t.Helper()
	dir := t.TempDir()
	io := binio.New(nil)
	return newRegion(0, 0, filepath.Join(dir, "header"), filepath.Join(dir, "data"), io, nil)
}

func TestRegion_LoadHeader_MissingFileIsEmpty(t *testing.T) {
	r := newTestRegion(t)
	require.NoError(t, r.LoadHeader())
	require.Equal(t, int64(0), r.EOFOffset)
	require.Empty(t, r.Entries)
}

func TestRegion_SaveNewEntry_AppendsAndPersists(t *testing.T) {
	r := newTestRegion(t)
	require.NoError(t, r.LoadHeader())

	idx, err := r.SaveNewEntry(0, 0, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	require.Equal(t, 0, idx)
	require.Equal(t, int64(8), r.EOFOffset)

	// Round-trip through a fresh Region bound to the same files.
	r2 := newRegion(0, 0, r.headerPath, r.dataPath, r.io, nil)
	require.NoError(t, r2.LoadHeader())
	require.Len(t, r2.Entries, 1)
	require.Equal(t, int32(0), r2.Entries[0].PosX)
	require.Equal(t, int64(8), r2.Entries[0].Size)

	payload, err := r2.LoadEntry(0)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, payload)
}

// TestRegion_GrowThenSave is scenario S4: overwriting a chunk's entry with
// a larger payload grows the data file by exactly the delta and updates
// only that entry's size, since it is the last/only entry.
func TestRegion_GrowThenSave(t *testing.T) {
	r := newTestRegion(t)
	require.NoError(t, r.LoadHeader())

	idx, err := r.SaveNewEntry(0, 0, []byte{1, 1, 1, 1, 1, 1, 1, 1})
	require.NoError(t, err)

	bigger := []byte{2, 2, 2, 2, 2, 2, 2, 2, 3, 3, 3, 3, 3, 3, 3, 3}
	require.NoError(t, r.OverwriteEntry(idx, bigger))

	require.Equal(t, int64(16), r.Entries[0].Size)
	require.Equal(t, int64(16), r.EOFOffset)

	payload, err := r.LoadEntry(0)
	require.NoError(t, err)
	require.Equal(t, bigger, payload)
}

// TestRegion_ShiftOnOverwrite is scenario S5: growing an earlier entry
// shifts every later entry's offset, and the later entry's payload still
// decodes correctly after the shift.
func TestRegion_ShiftOnOverwrite(t *testing.T) {
	r := newTestRegion(t)
	require.NoError(t, r.LoadHeader())

	payload0 := []byte{1, 1, 1, 1, 1, 1, 1, 1}
	payload1 := []byte{2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2}

	idx0, err := r.SaveNewEntry(0, 0, payload0)
	require.NoError(t, err)
	idx1, err := r.SaveNewEntry(1, 0, payload1)
	require.NoError(t, err)

	require.Equal(t, int64(0), r.Entries[idx0].Offset)
	require.Equal(t, int64(len(payload0)), r.Entries[idx1].Offset)

	grown := []byte{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}
	require.NoError(t, r.OverwriteEntry(idx0, grown))

	require.Equal(t, int64(len(grown)), r.Entries[idx1].Offset)

	fromDisk, err := r.LoadEntry(idx1)
	require.NoError(t, err)
	require.Equal(t, payload1, fromDisk)
}

func TestRegion_FindEntry(t *testing.T) {
	r := newTestRegion(t)
	require.NoError(t, r.LoadHeader())

	_, err := r.SaveNewEntry(3, 4, []byte{0, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)

	require.Equal(t, 0, r.FindEntry(3, 4))
	require.Equal(t, noEntry, r.FindEntry(9, 9))
}

func TestRegion_Stats(t *testing.T) {
	r := newTestRegion(t)
	require.NoError(t, r.LoadHeader())
	_, err := r.SaveNewEntry(0, 0, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)

	count, eof := r.Stats()
	require.Equal(t, 1, count)
	require.Equal(t, int64(8), eof)
}

package fvoxel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunk_IsEmpty(t *testing.T) {
	c := &Chunk{Voxels: []VoxelID{EmptyVoxel, EmptyVoxel, EmptyVoxel}}
	require.True(t, c.isEmpty())

	c.Voxels[1] = 0
	require.False(t, c.isEmpty())
}

func TestSpawnChunk_StartsEmpty(t *testing.T) {
	w, _ := testWorld(t, 4, 4, 4, 4, 4, 4, 4)
	slot, err := w.SpawnChunk(0, 0)
	require.NoError(t, err)

	chunk, err := w.GetChunkPtr(slot)
	require.NoError(t, err)
	require.True(t, chunk.isEmpty())
	require.False(t, chunk.Modified)
	require.Equal(t, noEntry, chunk.RegionEntryIndex)
}

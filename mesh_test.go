package fvoxel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func meshTestWorld(t *testing.T) *World {
	t.Helper()
	w, _ := testWorld(t, 4, 4, 4, 4, 4, 4, 4)
	w.UseDefaultVoxelMesh()
	w.SetVoxelList([]VoxelType{
		{UID: 0, Name: "stone", AtlasCell: [2]uint32{0, 0}},
		{UID: 1, Name: "dirt", AtlasCell: [2]uint32{1, 0}},
	})
	w.SetTextureSteps(0.5, 0.5)
	w.SetVoxelSize(1, 1, 1)
	return w
}

// TestGenerateChunkMesh_SingleVoxel is scenario S1: one voxel in an
// otherwise empty, freshly spawned chunk produces 36 vertices (6 faces x
// 6 verts), UVs within [0, 0.5]^2, and visible_voxels == 1.
func TestGenerateChunkMesh_SingleVoxel(t *testing.T) {
	w := meshTestWorld(t)

	slot, err := w.SpawnChunk(0, 0)
	require.NoError(t, err)
	require.NoError(t, w.SetVoxel(0, 0, 0, 0))

	var mesh Mesh
	require.NoError(t, w.GenerateChunkMesh(slot, &mesh))

	require.Len(t, mesh.Vertices, 36)
	require.Len(t, mesh.Normals, 36)
	require.Len(t, mesh.UVs, 36)

	for _, uv := range mesh.UVs {
		require.GreaterOrEqual(t, uv[0], float32(0))
		require.LessOrEqual(t, uv[0], float32(0.5))
		require.GreaterOrEqual(t, uv[1], float32(0))
		require.LessOrEqual(t, uv[1], float32(0.5))
	}

	chunk, _ := w.GetChunkPtr(slot)
	require.Equal(t, 1, chunk.VisibleVoxels)
}

// TestGenerateChunkMesh_InteriorCulling is scenario S2: an 8-voxel
// 2x2x2 solid cluster exposes 4 outer faces per cube-face direction,
// 6 directions x 4 voxel-faces x 6 verts = 144 vertices, and never the
// vertex count of all 48 faces (8 voxels x 6 faces) uncovered.
func TestGenerateChunkMesh_InteriorCulling(t *testing.T) {
	w := meshTestWorld(t)

	slot, err := w.SpawnChunk(0, 0)
	require.NoError(t, err)

	for x := int32(0); x < 2; x++ {
		for y := int32(0); y < 2; y++ {
			for z := int32(0); z < 2; z++ {
				require.NoError(t, w.SetVoxel(x, y, z, 0))
			}
		}
	}

	var mesh Mesh
	require.NoError(t, w.GenerateChunkMesh(slot, &mesh))

	require.Len(t, mesh.Vertices, 144)
	require.Less(t, len(mesh.Vertices), 48*6)
}

func TestGenerateChunkMesh_NoTemplateInstalled(t *testing.T) {
	w, _ := testWorld(t, 4, 4, 4, 4, 4, 4, 4)
	slot, err := w.SpawnChunk(0, 0)
	require.NoError(t, err)

	var mesh Mesh
	err = w.GenerateChunkMesh(slot, &mesh)
	require.ErrorIs(t, err, ErrNoVoxelMesh)
}

func TestMesh_Append(t *testing.T) {
	a := DefaultCubeMesh()
	var combined Mesh
	combined.Append(a[faceZNeg])
	combined.Append(a[faceZPos])
	require.Len(t, combined.Vertices, 12)
}

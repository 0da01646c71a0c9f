package fvoxel

// Chunk is one fixed CX*CY*CZ block of voxel ids, addressed in the world
// by chunk coordinates (PosX, PosZ). The Y axis is never chunked.
type Chunk struct {
	PosX, PosZ int32

	Voxels []VoxelID

	Exists    bool
	Modified  bool
	Allocated bool

	// RegionEntryIndex is the index of this chunk's entry in its owning
	// region's entry list, or noEntry if the chunk has never been saved.
	RegionEntryIndex int

	// VisibleVoxels is the diagnostic counter of voxels that contributed
	// at least one face to the most recent mesh generation.
	VisibleVoxels int
}

// isEmpty reports whether every voxel in the chunk is the empty sentinel —
// the state a freshly spawned, never-saved chunk starts in.
func (c *Chunk) isEmpty() bool {
	for _, v := range c.Voxels {
		if v != EmptyVoxel {
			return false
		}
	}
	return true
}

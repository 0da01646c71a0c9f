package fvoxel

import "math"

// VoxelID identifies the contents of one cell in the grid. EmptyVoxel is
// the sentinel meaning "no voxel present"; any other value indexes the
// world's voxel-type table.
type VoxelID uint32

// EmptyVoxel is the voxel id UINT32_MAX: air.
const EmptyVoxel VoxelID = math.MaxUint32

// VoxelType is one entry of the user-supplied voxel-type table. A VoxelID
// other than EmptyVoxel is an index into this table; the table itself is
// configuration, never persisted.
type VoxelType struct {
	UID       VoxelID
	Name      string
	AtlasCell [2]uint32
	Flags     byte
}

// LocalPos is the decomposition of a global voxel coordinate into an owning
// chunk position and a position local to that chunk. The Y axis is never
// chunked: ChunkY does not exist and LocalY equals the global Y.
type LocalPos struct {
	ChunkX int32
	ChunkZ int32
	LocalX int32
	LocalY int32
	LocalZ int32
}

// floorDiv is true mathematical floor division, rounding toward negative
// infinity for negative inputs — including exact multiples of divisor,
// where a naive "decrement when negative" correction is wrong.
func floorDiv(a, b int32) int32 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// GetVoxelLocalPos resolves a global voxel coordinate to its owning chunk
// and local-within-chunk position, using true floor division so negative
// coordinates resolve correctly even on chunk-size multiples.
func (w *World) GetVoxelLocalPos(gx, gy, gz int32) LocalPos {
	cx := floorDiv(gx, w.chunkSizeX)
	cz := floorDiv(gz, w.chunkSizeZ)
	return LocalPos{
		ChunkX: cx,
		ChunkZ: cz,
		LocalX: gx - cx*w.chunkSizeX,
		LocalY: gy,
		LocalZ: gz - cz*w.chunkSizeZ,
	}
}

// GetVoxelGlobalPos is the inverse of GetVoxelLocalPos: it reconstructs the
// global voxel coordinate a LocalPos was derived from.
func (w *World) GetVoxelGlobalPos(p LocalPos) (gx, gy, gz int32) {
	gx = p.ChunkX*w.chunkSizeX + p.LocalX
	gy = p.LocalY
	gz = p.ChunkZ*w.chunkSizeZ + p.LocalZ
	return gx, gy, gz
}

// GetVoxelIndex converts a local-within-chunk position to the flat index
// into a chunk's voxel array: index = y*(CZ*CX) + z*CX + x. It reports
// ok=false, mirroring the source's F_UINT_MAX sentinel, when any
// coordinate falls outside [0, chunk size) on its axis.
func (w *World) GetVoxelIndex(localX, localY, localZ int32) (idx int, ok bool) {
	if localX < 0 || localX >= w.chunkSizeX ||
		localY < 0 || localY >= w.chunkSizeY ||
		localZ < 0 || localZ >= w.chunkSizeZ {
		return 0, false
	}
	return int(localY)*int(w.chunkSizeZ*w.chunkSizeX) + int(localZ)*int(w.chunkSizeX) + int(localX), true
}

// GetVoxelIndexGlobal resolves a global coordinate directly to the voxel id
// currently stored there, or EmptyVoxel if the owning chunk is not spawned
// or the coordinate is otherwise unavailable. This mirrors get_voxel_index
// returning the empty sentinel rather than an error for out-of-bounds or
// unloaded lookups.
func (w *World) GetVoxelIndexGlobal(gx, gy, gz int32) VoxelID {
	id, ok := w.GetVoxel(gx, gy, gz)
	if !ok {
		return EmptyVoxel
	}
	return id
}

// SetVoxel writes a single voxel at a global coordinate. It fails if the
// owning chunk is not currently spawned — it never implicitly spawns a
// chunk. On success it marks the owning chunk modified, since this path
// mutates through the library's own API rather than a borrowed pointer.
func (w *World) SetVoxel(gx, gy, gz int32, id VoxelID) error {
	if !w.initialized {
		return ErrNotInitialized
	}
	p := w.GetVoxelLocalPos(gx, gy, gz)
	slot, ok := w.findSlot(p.ChunkX, p.ChunkZ)
	if !ok {
		return ErrChunkNotLoaded
	}
	chunk := &w.slots[slot]
	idx, ok := w.GetVoxelIndex(p.LocalX, p.LocalY, p.LocalZ)
	if !ok {
		return ErrOutOfBounds
	}
	chunk.Voxels[idx] = id
	chunk.Modified = true
	return nil
}

// GetVoxel reads a single voxel at a global coordinate. It returns
// (EmptyVoxel, false) when the owning chunk is not currently spawned.
func (w *World) GetVoxel(gx, gy, gz int32) (VoxelID, bool) {
	if !w.initialized {
		return EmptyVoxel, false
	}
	p := w.GetVoxelLocalPos(gx, gy, gz)
	slot, ok := w.findSlot(p.ChunkX, p.ChunkZ)
	if !ok {
		return EmptyVoxel, false
	}
	idx, ok := w.GetVoxelIndex(p.LocalX, p.LocalY, p.LocalZ)
	if !ok {
		return EmptyVoxel, false
	}
	return w.slots[slot].Voxels[idx], true
}

// ClearVoxel sets a single voxel at a global coordinate back to EmptyVoxel.
func (w *World) ClearVoxel(gx, gy, gz int32) error {
	return w.SetVoxel(gx, gy, gz, EmptyVoxel)
}

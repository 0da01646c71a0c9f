package fvoxel

import "errors"

var (
	// ErrAlreadyInitialized is returned by CreateWorld/LoadWorld when the
	// World has already been initialized.
	ErrAlreadyInitialized = errors.New("fvoxel: world already initialized")

	// ErrNotInitialized is returned by any operation that requires an
	// initialized world (CreateWorld/LoadWorld not yet called or failed).
	ErrNotInitialized = errors.New("fvoxel: world not initialized")

	// ErrAlreadySpawned is returned by SpawnChunk when a chunk already
	// occupies the requested position.
	ErrAlreadySpawned = errors.New("fvoxel: chunk already spawned")

	// ErrPoolFull is returned by SpawnChunk when the fixed-capacity chunk
	// slot pool has no free slot left.
	ErrPoolFull = errors.New("fvoxel: chunk pool is full")

	// ErrChunkNotLoaded is returned when an operation addresses a chunk
	// position that has no spawned chunk.
	ErrChunkNotLoaded = errors.New("fvoxel: chunk not loaded")

	// ErrOutOfBounds is returned by SetVoxel when the local position within
	// the owning chunk falls outside the chunk size (e.g. a Y coordinate
	// below 0 or at/above the chunk height).
	ErrOutOfBounds = errors.New("fvoxel: position out of bounds")

	// ErrInvalidSize is returned by structural setters (SetChunkVoxelSize,
	// SetRegionSize, SetWorldSize, SetLayoutNames) called after the world
	// has already been initialized, or with a non-positive dimension.
	ErrInvalidSize = errors.New("fvoxel: invalid or frozen size parameter")

	// ErrRegionCorrupt is returned when a region header or data file fails
	// its structural checks on load (bad entry count, truncated payload).
	ErrRegionCorrupt = errors.New("fvoxel: region file is corrupt")

	// ErrEntryNotFound is returned by Region.LoadEntry/OverwriteEntry when
	// the requested entry index is outside the entry list. (FindEntry
	// reports a missing position with the noEntry index, not an error.)
	ErrEntryNotFound = errors.New("fvoxel: region entry not found")

	// ErrWorldNotExist is returned by LoadWorld when the target path has
	// no world-properties file.
	ErrWorldNotExist = errors.New("fvoxel: world does not exist at path")

	// ErrNoVoxelMesh is returned by GenerateChunkMesh when no per-voxel
	// mesh template has been installed via SetVoxelMesh/UseDefaultVoxelMesh.
	ErrNoVoxelMesh = errors.New("fvoxel: no voxel mesh template installed")
)

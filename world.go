package fvoxel

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Pain67/fVoxel/internal/binio"
	"github.com/Pain67/fVoxel/internal/metrics"
)

type chunkKey struct{ X, Z int32 }
type regionKey struct{ X, Z int32 }

// World is a fixed pool of WX*WZ chunk slots plus a growable set of loaded
// regions. Structural sizes are frozen once CreateWorld or LoadWorld
// succeeds; voxel size, texture steps, the voxel-type table, and the mesh
// templates may change at any time.
type World struct {
	initialized bool
	savePath    string

	chunkSizeX, chunkSizeY, chunkSizeZ int32
	regionSizeX, regionSizeZ           int32
	worldSizeX, worldSizeZ             int32

	voxelSizeX, voxelSizeY, voxelSizeZ float32
	textureStepX, textureStepZ         float32

	voxelTypes   []VoxelType
	voxelMesh    [7]Mesh
	voxelMeshSet bool

	worldFrag, regionsFrag                         string
	worldFileFrag, regionHeaderFrag, regionDataFrag string

	slots     []Chunk
	slotIndex map[chunkKey]int

	regions    map[regionKey]*Region
	regionKeys []regionKey

	io      *binio.IO
	logSink *LogSink
	logger  Logger
	metrics *metrics.Metrics
}

// NewWorld constructs an uninitialized World with default layout name
// fragments and a LogSink that, until a callback is installed, writes
// messages at INFO and above to stderr. Call CreateWorld or LoadWorld
// before any other operation.
func NewWorld() *World {
	w := &World{
		worldFrag:        "World",
		regionsFrag:      "Regions",
		worldFileFrag:    "fVoxel",
		regionHeaderFrag: "RegionHeader",
		regionDataFrag:   "RegionData",
		voxelSizeX:       1, voxelSizeY: 1, voxelSizeZ: 1,
		textureStepX: 1, textureStepZ: 1,
		logSink: NewLogSink(),
	}
	w.logger = w.logSink.For("World")
	w.io = binio.New(w.logger)
	return w
}

// SetLogCallback installs fn as the world's log sink callback. A nil fn
// restores the default stderr writer.
func (w *World) SetLogCallback(fn LogCallback) {
	w.logSink.SetCallback(fn)
}

// SetMinimumLogLevel sets the minimum severity forwarded to the log
// callback (or stderr, with no callback installed).
func (w *World) SetMinimumLogLevel(level Severity) {
	w.logSink.SetMinLevel(level)
}

// SetMetricsRegisterer installs a Prometheus registerer; metrics are
// registered once and thereafter updated by every lifecycle operation. A
// nil argument (the default) leaves metrics disabled.
func (w *World) SetMetricsRegisterer(reg prometheus.Registerer) {
	if reg == nil {
		w.metrics = nil
		return
	}
	w.metrics = metrics.New(reg)
}

// IsInitialized reports whether CreateWorld or LoadWorld has succeeded.
func (w *World) IsInitialized() bool { return w.initialized }

// GetChunkSize returns the frozen per-chunk voxel dimensions.
func (w *World) GetChunkSize() (cx, cy, cz int32) {
	return w.chunkSizeX, w.chunkSizeY, w.chunkSizeZ
}

// GetVoxelSize returns the current per-voxel edge lengths.
func (w *World) GetVoxelSize() (vx, vy, vz float32) {
	return w.voxelSizeX, w.voxelSizeY, w.voxelSizeZ
}

// regionCoord resolves a chunk coordinate to its owning region coordinate
// using true floor division.
func (w *World) regionCoord(cx, cz int32) (rx, rz int32) {
	return floorDiv(cx, w.regionSizeX), floorDiv(cz, w.regionSizeZ)
}

func (w *World) regionPaths(rx, rz int32) (header, data string) {
	regionsDir := filepath.Join(w.savePath, w.worldFrag, w.regionsFrag)
	return regionPaths(regionsDir, w.regionHeaderFrag, w.regionDataFrag, rx, rz)
}

// getOrCreateRegion returns the Region owning chunk (cx,cz), instantiating
// and loading it from disk on first reference.
func (w *World) getOrCreateRegion(cx, cz int32) (*Region, error) {
	rx, rz := w.regionCoord(cx, cz)
	key := regionKey{rx, rz}
	if r, ok := w.regions[key]; ok {
		return r, nil
	}

	headerPath, dataPath := w.regionPaths(rx, rz)
	r := newRegion(rx, rz, headerPath, dataPath, w.io, w.logSink.For(fmt.Sprintf("Region(%d,%d)", rx, rz)))
	if err := r.LoadHeader(); err != nil {
		return nil, err
	}

	if w.regions == nil {
		w.regions = make(map[regionKey]*Region)
	}
	w.regions[key] = r
	w.regionKeys = append(w.regionKeys, key)
	w.metrics.RegionLoaded()
	w.metrics.SetLoadedRegions(len(w.regions))
	return r, nil
}

// findSlot returns the slot index currently holding (cx,cz) with
// exists=true, if any.
func (w *World) findSlot(cx, cz int32) (int, bool) {
	idx, ok := w.slotIndex[chunkKey{cx, cz}]
	if !ok {
		return 0, false
	}
	return idx, true
}

// SpawnChunk brings chunk (cx,cz) into the slot pool: it fails if the
// chunk is already spawned or no slot is free, otherwise resolves its
// region, allocates the voxel buffer on first use, loads any saved payload,
// and marks the slot exists=true.
func (w *World) SpawnChunk(cx, cz int32) (int, error) {
	if !w.initialized {
		return 0, ErrNotInitialized
	}
	if _, ok := w.findSlot(cx, cz); ok {
		return 0, ErrAlreadySpawned
	}

	free := -1
	for i := range w.slots {
		if !w.slots[i].Exists {
			free = i
			break
		}
	}
	if free == -1 {
		return 0, ErrPoolFull
	}

	region, err := w.getOrCreateRegion(cx, cz)
	if err != nil {
		return 0, err
	}

	chunk := &w.slots[free]
	chunk.PosX, chunk.PosZ = cx, cz

	entryIdx := region.FindEntry(cx, cz)
	chunk.RegionEntryIndex = entryIdx

	if !chunk.Allocated {
		n := int(w.chunkSizeX) * int(w.chunkSizeY) * int(w.chunkSizeZ)
		chunk.Voxels = make([]VoxelID, n)
		for i := range chunk.Voxels {
			chunk.Voxels[i] = EmptyVoxel
		}
		chunk.Allocated = true
	}

	if entryIdx != noEntry {
		payload, err := region.LoadEntry(entryIdx)
		if err != nil {
			return 0, err
		}
		n := int(w.chunkSizeX) * int(w.chunkSizeY) * int(w.chunkSizeZ)
		voxels, err := DecodeRLE(payload, n, w.logger)
		if err != nil {
			return 0, err
		}
		chunk.Voxels = voxels
	}

	chunk.Modified = false
	chunk.Exists = true

	if w.slotIndex == nil {
		w.slotIndex = make(map[chunkKey]int)
	}
	w.slotIndex[chunkKey{cx, cz}] = free

	w.metrics.ChunkSpawned(entryIdx != noEntry)
	w.metrics.SetLoadedChunks(len(w.slotIndex))

	return free, nil
}

// SaveChunk writes the chunk at slot to disk if it has been modified since
// the last save; it is a no-op success if not.
func (w *World) SaveChunk(slot int) error {
	if !w.initialized {
		return ErrNotInitialized
	}
	if slot < 0 || slot >= len(w.slots) || !w.slots[slot].Exists {
		return ErrChunkNotLoaded
	}

	chunk := &w.slots[slot]
	if !chunk.Modified {
		return nil
	}

	start := nowOrZero()

	region, err := w.getOrCreateRegion(chunk.PosX, chunk.PosZ)
	if err != nil {
		w.metrics.SaveError("get_region")
		return err
	}

	payload := EncodeRLE(chunk.Voxels)

	if chunk.RegionEntryIndex == noEntry {
		idx, err := region.SaveNewEntry(chunk.PosX, chunk.PosZ, payload)
		if err != nil {
			w.metrics.SaveError("save_new_entry")
			return err
		}
		chunk.RegionEntryIndex = idx
	} else {
		if err := region.OverwriteEntry(chunk.RegionEntryIndex, payload); err != nil {
			w.metrics.SaveError("overwrite_entry")
			return err
		}
	}

	chunk.Modified = false
	w.metrics.ChunkSaved()
	w.metrics.ObserveSaveDuration(sinceOrZero(start))
	return nil
}

// UnloadChunk optionally saves the chunk at slot, then marks it
// exists=false. The voxel buffer is retained for reuse on a later spawn.
func (w *World) UnloadChunk(slot int, saveFirst bool) error {
	if !w.initialized {
		return ErrNotInitialized
	}
	if slot < 0 || slot >= len(w.slots) || !w.slots[slot].Exists {
		return ErrChunkNotLoaded
	}

	if saveFirst {
		if err := w.SaveChunk(slot); err != nil {
			return err
		}
	}

	chunk := &w.slots[slot]
	delete(w.slotIndex, chunkKey{chunk.PosX, chunk.PosZ})
	chunk.Exists = false

	w.metrics.ChunkUnloaded()
	w.metrics.SetLoadedChunks(len(w.slotIndex))
	return nil
}

// GetChunkPtr returns a borrowed pointer to the chunk at slot, valid until
// the slot is unloaded or the world is unloaded. Callers that mutate
// Voxels directly must set Modified themselves.
func (w *World) GetChunkPtr(slot int) (*Chunk, error) {
	if !w.initialized {
		return nil, ErrNotInitialized
	}
	if slot < 0 || slot >= len(w.slots) {
		return nil, ErrChunkNotLoaded
	}
	return &w.slots[slot], nil
}

// SaveWorld saves every currently spawned, modified chunk. It stops and
// returns the first error encountered.
func (w *World) SaveWorld() error {
	if !w.initialized {
		return ErrNotInitialized
	}
	for i := range w.slots {
		if w.slots[i].Exists && w.slots[i].Modified {
			if err := w.SaveChunk(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// UnloadWorld frees every slot's voxel buffer, clears all chunk and region
// state, and transitions the world back to uninitialized.
func (w *World) UnloadWorld() {
	w.slots = nil
	w.slotIndex = nil
	w.regions = nil
	w.regionKeys = nil
	w.initialized = false
	w.metrics.SetLoadedChunks(0)
	w.metrics.SetLoadedRegions(0)
}

// nowOrZero and sinceOrZero exist so the save and mesh-generation duration
// metrics have a single call site to adjust if wall-clock timing is ever disabled in a
// deterministic test build.
func nowOrZero() time.Time { return time.Now() }
func sinceOrZero(start time.Time) float64 {
	return time.Since(start).Seconds()
}

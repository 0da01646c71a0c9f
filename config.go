package fvoxel

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const worldPropertiesWordCount = 7

// SetChunkVoxelSize sets the per-chunk voxel dimensions. It fails once the
// world has been initialized, or if any component is not strictly
// positive.
func (w *World) SetChunkVoxelSize(x, y, z int32) error {
	if w.initialized {
		return ErrInvalidSize
	}
	if x <= 0 || y <= 0 || z <= 0 {
		return ErrInvalidSize
	}
	w.chunkSizeX, w.chunkSizeY, w.chunkSizeZ = x, y, z
	return nil
}

// SetRegionSize sets the chunks-per-region grid dimensions. Frozen after
// initialization, same as SetChunkVoxelSize.
func (w *World) SetRegionSize(x, z int32) error {
	if w.initialized {
		return ErrInvalidSize
	}
	if x <= 0 || z <= 0 {
		return ErrInvalidSize
	}
	w.regionSizeX, w.regionSizeZ = x, z
	return nil
}

// SetWorldSize sets the fixed chunk-slot-pool dimensions (WX, WZ). Frozen
// after initialization.
func (w *World) SetWorldSize(x, z int32) error {
	if w.initialized {
		return ErrInvalidSize
	}
	if x <= 0 || z <= 0 {
		return ErrInvalidSize
	}
	w.worldSizeX, w.worldSizeZ = x, z
	return nil
}

// SetLayoutNames sets the folder/file name fragments persisted in the
// world-properties file. Frozen after initialization, like the structural
// size setters.
func (w *World) SetLayoutNames(worldFrag, regionsFrag, worldFileFrag, regionHeaderFrag, regionDataFrag string) error {
	if w.initialized {
		return ErrInvalidSize
	}
	for _, frag := range []string{worldFrag, regionsFrag, worldFileFrag, regionHeaderFrag, regionDataFrag} {
		if frag == "" || strings.Contains(frag, "#") {
			return ErrInvalidSize
		}
	}
	w.worldFrag, w.regionsFrag = worldFrag, regionsFrag
	w.worldFileFrag, w.regionHeaderFrag, w.regionDataFrag = worldFileFrag, regionHeaderFrag, regionDataFrag
	return nil
}

// SetVoxelSize sets the per-voxel edge lengths used by the mesh generator.
// Always permitted.
func (w *World) SetVoxelSize(x, y, z float32) {
	w.voxelSizeX, w.voxelSizeY, w.voxelSizeZ = x, y, z
}

// SetTextureSteps sets the atlas cell step used for UV remapping. Always
// permitted.
func (w *World) SetTextureSteps(sx, sz float32) {
	w.textureStepX, w.textureStepZ = sx, sz
}

// SetVoxelList installs the voxel-type table. Always permitted; the table
// is pure configuration and is never persisted.
func (w *World) SetVoxelList(list []VoxelType) {
	w.voxelTypes = list
}

// SetVoxelMesh installs the seven per-direction mesh templates. Always
// permitted.
func (w *World) SetVoxelMesh(templates [7]Mesh) {
	w.voxelMesh = templates
	w.voxelMeshSet = true
}

// UseDefaultVoxelMesh installs the built-in default cube template.
func (w *World) UseDefaultVoxelMesh() {
	w.voxelMesh = DefaultCubeMesh()
	w.voxelMeshSet = true
}

func (w *World) worldFilePath(savePath string) string {
	return filepath.Join(savePath, w.worldFrag, w.worldFileFrag)
}

// IsWorldExist reports whether a world-properties file exists under path.
func (w *World) IsWorldExist(path string) bool {
	return w.io.FileExists(w.worldFilePath(path))
}

// CreateWorld initializes a brand-new world at path: fails if already
// initialized or if a world-properties file already exists there.
// Otherwise creates the directory skeleton, writes the properties file,
// allocates the slot pool, and transitions to initialized.
//
// force mirrors the original `IN_isForceCreate` parameter of
// fVoxelWorld::CreateWorld (fVoxel.cpp:776): it is accepted for signature
// parity with the public API table but, as in the original, is never
// read — the original never branches on it either, so there is no
// working "force past an existing world" behavior to preserve. See
// DESIGN.md for the rationale.
func (w *World) CreateWorld(path string, force bool) error {
	_ = force
	if w.initialized {
		return ErrAlreadyInitialized
	}
	if w.IsWorldExist(path) {
		return ErrAlreadyInitialized
	}
	if w.chunkSizeX <= 0 || w.chunkSizeY <= 0 || w.chunkSizeZ <= 0 ||
		w.regionSizeX <= 0 || w.regionSizeZ <= 0 ||
		w.worldSizeX <= 0 || w.worldSizeZ <= 0 {
		return ErrInvalidSize
	}

	regionsDir := filepath.Join(path, w.worldFrag, w.regionsFrag)
	if err := os.MkdirAll(regionsDir, 0o755); err != nil {
		w.logger.Errorf("create_world %s: %v", path, err)
		return fmt.Errorf("fvoxel: create_world %s: %w", path, err)
	}

	w.savePath = path
	if err := w.writeWorldProperties(); err != nil {
		return err
	}

	w.initSlotPool()
	w.initialized = true
	w.logger.Infof("created world at %s (chunk=%dx%dx%d region=%dx%d world=%dx%d)",
		path, w.chunkSizeX, w.chunkSizeY, w.chunkSizeZ, w.regionSizeX, w.regionSizeZ, w.worldSizeX, w.worldSizeZ)
	return nil
}

// LoadWorld initializes a World from an existing world-properties file.
// filePath must point at that file directly (the location CreateWorld
// would have written). The save path is derived as the properties file's
// grandparent directory.
func (w *World) LoadWorld(filePath string) error {
	if w.initialized {
		return ErrAlreadyInitialized
	}
	if !w.io.FileExists(filePath) {
		return ErrWorldNotExist
	}

	if err := w.readWorldProperties(filePath); err != nil {
		return err
	}

	// <savePath>/<worldFrag>/<worldFileFrag> is the canonical location;
	// derive savePath as the parent of worldFrag's directory.
	w.savePath = filepath.Dir(filepath.Dir(filePath))

	if w.worldFilePath(w.savePath) != filePath {
		w.logger.Warnf("load_world: %s does not match canonical layout under %s", filePath, w.savePath)
	}

	w.initSlotPool()
	w.initialized = true
	w.logger.Infof("loaded world from %s", filePath)
	return nil
}

func (w *World) initSlotPool() {
	w.slots = make([]Chunk, w.worldSizeX*w.worldSizeZ)
	w.slotIndex = make(map[chunkKey]int)
	w.regions = make(map[regionKey]*Region)
}

// writeWorldProperties serializes the 7 structural size words plus the
// NUL-terminated '#'-joined layout fragment string.
func (w *World) writeWorldProperties() error {
	buf := make([]byte, worldPropertiesWordCount*4)
	words := []int32{w.chunkSizeX, w.chunkSizeY, w.chunkSizeZ, w.regionSizeX, w.regionSizeZ, w.worldSizeX, w.worldSizeZ}
	for i, v := range words {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}

	fragments := strings.Join([]string{w.worldFrag, w.regionsFrag, w.worldFileFrag, w.regionHeaderFrag, w.regionDataFrag}, "#")
	buf = append(buf, []byte(fragments)...)
	buf = append(buf, 0)

	return w.io.WriteAll(w.worldFilePath(w.savePath), buf)
}

// readWorldProperties parses a world-properties file and applies its
// structural sizes and layout fragments to w.
func (w *World) readWorldProperties(filePath string) error {
	raw, err := w.io.ReadAll(filePath)
	if err != nil {
		return err
	}
	if len(raw) < worldPropertiesWordCount*4+1 {
		w.logger.Errorf("load_world: properties file %s too short (%d bytes)", filePath, len(raw))
		return ErrRegionCorrupt
	}

	words := make([]int32, worldPropertiesWordCount)
	for i := range words {
		words[i] = int32(binary.LittleEndian.Uint32(raw[i*4 : i*4+4]))
	}
	w.chunkSizeX, w.chunkSizeY, w.chunkSizeZ = words[0], words[1], words[2]
	w.regionSizeX, w.regionSizeZ = words[3], words[4]
	w.worldSizeX, w.worldSizeZ = words[5], words[6]

	rest := raw[worldPropertiesWordCount*4:]
	nul := bytes.IndexByte(rest, 0)
	if nul < 0 {
		nul = len(rest)
	}
	fragments := strings.Split(string(rest[:nul]), "#")
	if len(fragments) != 5 {
		w.logger.Errorf("load_world: properties file %s has malformed layout fragment string", filePath)
		return ErrRegionCorrupt
	}
	w.worldFrag, w.regionsFrag, w.worldFileFrag, w.regionHeaderFrag, w.regionDataFrag =
		fragments[0], fragments[1], fragments[2], fragments[3], fragments[4]

	return nil
}

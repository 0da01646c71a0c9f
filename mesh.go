package fvoxel

import "github.com/go-gl/mathgl/mgl32"

// Mesh is a triangle-soup accumulator: three parallel slices, appended to
// in lockstep, mirroring the original fProcMesh's Vertecies/Normals/UVs
// arrays.
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2
}

// Append concatenates other onto m, the Go equivalent of fProcMesh's
// operator+=.
func (m *Mesh) Append(other Mesh) {
	m.Vertices = append(m.Vertices, other.Vertices...)
	m.Normals = append(m.Normals, other.Normals...)
	m.UVs = append(m.UVs, other.UVs...)
}

// faceDirection names the seven template slots a voxel mesh template
// supplies, matching the order in the external interface table.
type faceDirection int

const (
	faceZNeg faceDirection = iota // front
	faceZPos                      // back
	faceXPos                      // left
	faceXNeg                      // right
	faceYPos                      // top
	faceYNeg                      // bottom
	faceAlways
	faceCount
)

// DefaultCubeMesh builds the canonical seven-slot template: six cube faces
// (two CCW triangles each) with outward unit normals and a [0,1]^2 UV
// mapping per face, and an empty "always visible" slot.
func DefaultCubeMesh() [7]Mesh {
	var tmpl [7]Mesh

	// Standard cube corners, unit cube anchored at the origin so that a
	// voxel at local position (0,0,0) occupies [0,1]^3 once the per-voxel
	// offset is added.
	const (
		x0, x1 = float32(0), float32(1)
		y0, y1 = float32(0), float32(1)
		z0, z1 = float32(0), float32(1)
	)

	uv00 := mgl32.Vec2{0, 0}
	uv10 := mgl32.Vec2{1, 0}
	uv11 := mgl32.Vec2{1, 1}
	uv01 := mgl32.Vec2{0, 1}

	quad := func(slot faceDirection, normal mgl32.Vec3, a, b, c, d mgl32.Vec3) {
		tmpl[slot].Vertices = append(tmpl[slot].Vertices, a, b, c, a, c, d)
		for i := 0; i < 6; i++ {
			tmpl[slot].Normals = append(tmpl[slot].Normals, normal)
		}
		tmpl[slot].UVs = append(tmpl[slot].UVs, uv00, uv10, uv11, uv00, uv11, uv01)
	}

	// Z- (front), normal (0,0,-1)
	quad(faceZNeg, mgl32.Vec3{0, 0, -1},
		mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x1, y1, z0}, mgl32.Vec3{x0, y1, z0})
	// Z+ (back), normal (0,0,1)
	quad(faceZPos, mgl32.Vec3{0, 0, 1},
		mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x0, y0, z1}, mgl32.Vec3{x0, y1, z1}, mgl32.Vec3{x1, y1, z1})
	// X+ (left), normal (1,0,0)
	quad(faceXPos, mgl32.Vec3{1, 0, 0},
		mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x1, y1, z0})
	// X- (right), normal (-1,0,0)
	quad(faceXNeg, mgl32.Vec3{-1, 0, 0},
		mgl32.Vec3{x0, y0, z1}, mgl32.Vec3{x0, y0, z0}, mgl32.Vec3{x0, y1, z0}, mgl32.Vec3{x0, y1, z1})
	// Y+ (top), normal (0,1,0)
	quad(faceYPos, mgl32.Vec3{0, 1, 0},
		mgl32.Vec3{x0, y1, z0}, mgl32.Vec3{x1, y1, z0}, mgl32.Vec3{x1, y1, z1}, mgl32.Vec3{x0, y1, z1})
	// Y- (bottom), normal (0,-1,0)
	quad(faceYNeg, mgl32.Vec3{0, -1, 0},
		mgl32.Vec3{x0, y0, z1}, mgl32.Vec3{x1, y0, z1}, mgl32.Vec3{x1, y0, z0}, mgl32.Vec3{x0, y0, z0})

	// slot 6 (always) intentionally left empty; callers populate it if
	// they need an unconditional decal-style face.
	return tmpl
}

// neighborEmpty resolves whether the voxel at local (lx,ly,lz) relative to
// chunk (cx,cz) is empty, crossing chunk boundaries through the world
// index when the offset local coordinate falls outside [0, size). A
// neighbor chunk that is not currently spawned is treated as empty.
func (w *World) neighborEmpty(cx, cz, lx, ly, lz int32) bool {
	if lx >= 0 && lx < w.chunkSizeX && lz >= 0 && lz < w.chunkSizeZ {
		slot, ok := w.findSlot(cx, cz)
		if !ok {
			return true
		}
		idx, ok := w.GetVoxelIndex(lx, ly, lz)
		if !ok {
			return true
		}
		return w.slots[slot].Voxels[idx] == EmptyVoxel
	}

	gx, gy, gz := w.GetVoxelGlobalPos(LocalPos{ChunkX: cx, ChunkZ: cz, LocalX: lx, LocalY: ly, LocalZ: lz})
	id := w.GetVoxelIndexGlobal(gx, gy, gz)
	return id == EmptyVoxel
}

// GenerateChunkMesh appends triangle data for every non-empty voxel in the
// chunk at slot to out, culling faces whose neighbor is non-empty. It
// updates the chunk's VisibleVoxels diagnostic counter and returns an
// error if no voxel mesh template is installed.
func (w *World) GenerateChunkMesh(slot int, out *Mesh) error {
	if !w.initialized {
		return ErrNotInitialized
	}
	if slot < 0 || slot >= len(w.slots) || !w.slots[slot].Exists {
		return ErrChunkNotLoaded
	}
	if !w.voxelMeshSet {
		return ErrNoVoxelMesh
	}

	start := nowOrZero()
	chunk := &w.slots[slot]
	visible := 0

	for ly := int32(0); ly < w.chunkSizeY; ly++ {
		for lz := int32(0); lz < w.chunkSizeZ; lz++ {
			for lx := int32(0); lx < w.chunkSizeX; lx++ {
				idx, ok := w.GetVoxelIndex(lx, ly, lz)
				if !ok {
					continue
				}
				id := chunk.Voxels[idx]
				if id == EmptyVoxel {
					continue
				}

				contributed := false

				if w.neighborEmpty(chunk.PosX, chunk.PosZ, lx, ly, lz-1) {
					w.emitFace(out, id, faceZNeg, lx, ly, lz)
					contributed = true
				}
				if w.neighborEmpty(chunk.PosX, chunk.PosZ, lx, ly, lz+1) {
					w.emitFace(out, id, faceZPos, lx, ly, lz)
					contributed = true
				}
				if w.neighborEmpty(chunk.PosX, chunk.PosZ, lx+1, ly, lz) {
					w.emitFace(out, id, faceXPos, lx, ly, lz)
					contributed = true
				}
				if w.neighborEmpty(chunk.PosX, chunk.PosZ, lx-1, ly, lz) {
					w.emitFace(out, id, faceXNeg, lx, ly, lz)
					contributed = true
				}
				if ly == w.chunkSizeY-1 || w.neighborEmpty(chunk.PosX, chunk.PosZ, lx, ly+1, lz) {
					w.emitFace(out, id, faceYPos, lx, ly, lz)
					contributed = true
				}
				if ly == 0 || w.neighborEmpty(chunk.PosX, chunk.PosZ, lx, ly-1, lz) {
					w.emitFace(out, id, faceYNeg, lx, ly, lz)
					contributed = true
				}
				if len(w.voxelMesh[faceAlways].Vertices) > 0 {
					w.emitFace(out, id, faceAlways, lx, ly, lz)
					contributed = true
				}

				if contributed {
					visible++
				}
			}
		}
	}

	chunk.VisibleVoxels = visible
	w.metrics.ObserveMeshGenDuration(sinceOrZero(start))
	return nil
}

// emitFace transforms the template for slot by the voxel's world-space
// offset and atlas UV remapping, appending the result to out.
func (w *World) emitFace(out *Mesh, id VoxelID, slot faceDirection, lx, ly, lz int32) {
	tmpl := w.voxelMesh[slot]
	if len(tmpl.Vertices) == 0 {
		return
	}

	offset := mgl32.Vec3{float32(lx) * w.voxelSizeX, float32(ly) * w.voxelSizeY, float32(lz) * w.voxelSizeZ}
	cell := w.atlasCellFor(id)
	uvOffset := mgl32.Vec2{float32(cell[0]) * w.textureStepX, float32(cell[1]) * w.textureStepZ}

	for i := range tmpl.Vertices {
		out.Vertices = append(out.Vertices, tmpl.Vertices[i].Add(offset))
		out.Normals = append(out.Normals, tmpl.Normals[i])
		uv := mgl32.Vec2{tmpl.UVs[i][0] * w.textureStepX, tmpl.UVs[i][1] * w.textureStepZ}
		out.UVs = append(out.UVs, uv.Add(uvOffset))
	}
}

// atlasCellFor looks up the atlas cell for a voxel id, used as an index
// into the voxel-type table, defaulting to (0,0) if the id has no
// corresponding entry.
func (w *World) atlasCellFor(id VoxelID) [2]uint32 {
	if uint64(id) < uint64(len(w.voxelTypes)) {
		return w.voxelTypes[id].AtlasCell
	}
	return [2]uint32{0, 0}
}

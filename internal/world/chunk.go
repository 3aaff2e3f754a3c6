package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Chunk edge length in cells
	ChunkSize   = 16
	ChunkVolume = ChunkSize * ChunkSize * ChunkSize
)

// ChunkCoord addresses a chunk in chunk units.
type ChunkCoord struct {
	X, Y, Z int
}

// Neighbor returns the coordinate of the chunk across the given face.
func (c ChunkCoord) Neighbor(f BlockFace) ChunkCoord {
	dx, dy, dz := f.Offset()
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// Chunk is a dense ChunkSize^3 block of voxels.
type Chunk struct {
	Coord ChunkCoord
	cells [ChunkVolume]Voxel
	dirty bool
}

// Neighbors holds the chunks adjacent to one chunk, indexed by BlockFace.
// Entries are borrowed from a ChunkStore for the duration of a remesh; a nil
// entry means no data is loaded on that side.
type Neighbors [NumFaces]*Chunk

// NewChunk creates an all-air chunk at the specified chunk coordinates
func NewChunk(x, y, z int) *Chunk {
	return &Chunk{
		Coord: ChunkCoord{X: x, Y: y, Z: z},
		dirty: true,
	}
}

// Index converts local coordinates to the flat cell index.
func Index(x, y, z int) int {
	return x*ChunkSize*ChunkSize + y*ChunkSize + z
}

// InBounds reports whether local coordinates address a cell of a chunk.
func InBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize && z >= 0 && z < ChunkSize
}

// At returns the voxel at local coordinates. Out-of-range reads return air.
func (c *Chunk) At(x, y, z int) Voxel {
	if !InBounds(x, y, z) {
		return Voxel{}
	}
	return c.cells[Index(x, y, z)]
}

// Cell returns the voxel at a flat index without bounds translation.
func (c *Chunk) Cell(i int) Voxel {
	return c.cells[i]
}

// GetBlock returns the block type at the specified local coordinates
func (c *Chunk) GetBlock(x, y, z int) BlockType {
	return c.At(x, y, z).Type
}

// Set stores a voxel at local coordinates. Out-of-range writes are ignored.
func (c *Chunk) Set(x, y, z int, v Voxel) {
	if !InBounds(x, y, z) {
		return
	}
	i := Index(x, y, z)
	if c.cells[i] != v {
		c.cells[i] = v
		c.dirty = true
	}
}

// SetBlock sets a visible voxel of the given type at local coordinates
func (c *Chunk) SetBlock(x, y, z int, t BlockType) {
	c.Set(x, y, z, Voxel{Type: t})
}

// Fill sets every cell to v.
func (c *Chunk) Fill(v Voxel) {
	for i := range c.cells {
		c.cells[i] = v
	}
	c.dirty = true
}

// Origin returns the world-space position of the chunk's (0,0,0) cell.
func (c *Chunk) Origin(cubeSize float32) mgl32.Vec3 {
	span := float32(ChunkSize) * cubeSize
	return mgl32.Vec3{
		float32(c.Coord.X) * span,
		float32(c.Coord.Y) * span,
		float32(c.Coord.Z) * span,
	}
}

// SolidCount returns the number of non-air cells.
func (c *Chunk) SolidCount() int {
	n := 0
	for _, v := range c.cells {
		if v.IsSolid() {
			n++
		}
	}
	return n
}

// IsDirty returns whether the chunk has been modified since last mesh
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// SetClean marks the chunk as clean (not modified)
func (c *Chunk) SetClean() {
	c.dirty = false
}

// MarkDirty forces a remesh, e.g. after a neighbour border changed.
func (c *Chunk) MarkDirty() {
	c.dirty = true
}

package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/profiling"
	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

// MaxRawVertices is the raw vertex count of a chunk with every face of every
// cell exposed.
const MaxRawVertices = world.ChunkVolume * world.NumFaces * VerticesPerFace

// RawStream is the non-indexed output of a batch: three parallel attribute
// channels, VerticesPerFace entries per emitted face.
type RawStream struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
}

// Len returns the number of raw vertices.
func (s RawStream) Len() int {
	return len(s.Positions)
}

// Faces returns the number of emitted faces.
func (s RawStream) Faces() int {
	return len(s.Positions) / VerticesPerFace
}

// Batcher turns a chunk's voxel grid into a raw vertex stream. A Batcher
// owns its buffers and is not safe for concurrent use; give each meshing
// goroutine its own.
type Batcher struct {
	uv       *registry.UVTable
	half     float32
	cubeSize float32

	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	uvs       []mgl32.Vec2
}

// NewBatcher creates a batcher emitting cubes of the given edge length,
// textured from uv. Buffers are sized once for the worst case so the hot
// loop never reallocates.
func NewBatcher(uv *registry.UVTable, cubeSize float32) *Batcher {
	return &Batcher{
		uv:        uv,
		half:      cubeSize / 2,
		cubeSize:  cubeSize,
		positions: make([]mgl32.Vec3, MaxRawVertices),
		normals:   make([]mgl32.Vec3, MaxRawVertices),
		uvs:       make([]mgl32.Vec2, MaxRawVertices),
	}
}

// Batch emits every exposed face of the chunk's opaque full-height cells.
// Positions are chunk-local. nb supplies the adjacent chunks used to cull
// faces on the chunk border; a nil entry leaves that border exposed.
//
// The returned slices alias the Batcher's buffers and stay valid until the
// next call to Batch.
func (b *Batcher) Batch(c *world.Chunk, nb world.Neighbors) RawStream {
	defer profiling.Track("meshing.Batch")()
	if c == nil {
		return RawStream{}
	}

	n := 0
	step := b.uv.Step()
	for x := 0; x < world.ChunkSize; x++ {
		for y := 0; y < world.ChunkSize; y++ {
			for z := 0; z < world.ChunkSize; z++ {
				cell := c.Cell(world.Index(x, y, z))
				if !cell.IsVisible() || !cell.IsSolid() || cell.IsTransparent() || cell.IsPartialHeight() {
					continue
				}

				offset := mgl32.Vec3{
					float32(x) * b.cubeSize,
					float32(y) * b.cubeSize,
					float32(z) * b.cubeSize,
				}
				bucket := cell.Type.Bucket()

				for f := range world.BlockFace(world.NumFaces) {
					if !faceExposed(c, nb, x, y, z, f) {
						continue
					}

					origin := b.uv.Origin(bucket, f)
					normal := faceNormals[f]
					tmpl := &faceTemplates[f]
					for i := range VerticesPerFace {
						b.positions[n] = tmpl[i].Mul(b.half).Add(offset)
						b.normals[n] = normal
						b.uvs[n] = origin.Add(faceUVCorners[i].Mul(step))
						n++
					}
				}
			}
		}
	}

	return RawStream{
		Positions: b.positions[:n:n],
		Normals:   b.normals[:n:n],
		UVs:       b.uvs[:n:n],
	}
}

// faceExposed applies the intra-chunk and cross-chunk culling tests to one
// face of the cell at (x, y, z).
func faceExposed(c *world.Chunk, nb world.Neighbors, x, y, z int, f world.BlockFace) bool {
	s := faceSteps[f]
	nx, ny, nz := x+s[0], y+s[1], z+s[2]
	if world.InBounds(nx, ny, nz) {
		return !c.Cell(world.Index(nx, ny, nz)).Occludes()
	}

	other := nb[f]
	if other == nil {
		return true
	}
	// Mirror onto the facing border of the neighbour chunk.
	mx, my, mz := wrap(nx), wrap(ny), wrap(nz)
	return !boundaryOccluders[f](other.Cell(world.Index(mx, my, mz)))
}

func wrap(v int) int {
	switch {
	case v < 0:
		return v + world.ChunkSize
	case v >= world.ChunkSize:
		return v - world.ChunkSize
	default:
		return v
	}
}

package meshing

import (
	"fmt"
	"log"
	"time"

	"voxmesh/internal/config"
	"voxmesh/internal/profiling"
	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

// Mesher runs the full remesh of one chunk: batch, index, hand off. It owns
// one Batcher and one Indexer; use one Mesher per goroutine.
type Mesher struct {
	batcher  *Batcher
	indexer  *Indexer
	cubeSize float32
}

// NewMesher creates a mesher for cubes of the given edge length.
func NewMesher(uv *registry.UVTable, cubeSize float32) *Mesher {
	return &Mesher{
		batcher:  NewBatcher(uv, cubeSize),
		indexer:  NewIndexer(),
		cubeSize: cubeSize,
	}
}

// Build meshes a chunk against its neighbours. The returned mesh owns its
// memory; nothing in it aliases the mesher's buffers. A chunk with no
// exposed face yields an empty, non-nil mesh.
func (m *Mesher) Build(c *world.Chunk, nb world.Neighbors) (*Mesh, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil chunk", ErrInvalidInput)
	}
	start := time.Now()

	raw := m.batcher.Batch(c, nb)
	mesh, err := m.indexer.Index(raw.Positions, raw.Normals, raw.UVs)
	if err != nil {
		return nil, fmt.Errorf("chunk %v: %w", c.Coord, err)
	}
	m.finish(c, mesh, raw.Len(), start)
	return mesh, nil
}

// BuildFlat meshes a chunk without normals, for unlit and debug rendering.
func (m *Mesher) BuildFlat(c *world.Chunk, nb world.Neighbors) (*Mesh, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil chunk", ErrInvalidInput)
	}
	start := time.Now()

	raw := m.batcher.Batch(c, nb)
	mesh, err := m.indexer.IndexWithoutNormals(raw.Positions, raw.UVs)
	if err != nil {
		return nil, fmt.Errorf("chunk %v: %w", c.Coord, err)
	}
	m.finish(c, mesh, raw.Len(), start)
	return mesh, nil
}

func (m *Mesher) finish(c *world.Chunk, mesh *Mesh, rawCount int, start time.Time) {
	mesh.Coord = c.Coord
	mesh.Origin = c.Origin(m.cubeSize)

	profiling.Count("meshing.chunks", 1)
	profiling.Count("meshing.raw_vertices", rawCount)
	profiling.Count("meshing.indexed_vertices", mesh.VertexCount())

	if config.GetLogMeshTimings() {
		log.Printf("chunk %v meshed in %v: %d raw vertices, %d indexed, %d triangles",
			c.Coord, time.Since(start), rawCount, mesh.VertexCount(), mesh.TriangleCount())
	}
}

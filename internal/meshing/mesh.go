package meshing

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/world"
)

// Mesh is an indexed triangle mesh ready for upload: Indices reference the
// parallel Positions/Normals/UVs arrays, three per triangle.
type Mesh struct {
	Coord world.ChunkCoord
	// Origin is the chunk's world-space offset; positions are relative to it.
	Origin mgl32.Vec3

	Indices   []uint16
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3 // nil for meshes indexed without normals
	UVs       []mgl32.Vec2
}

// VertexCount returns the number of distinct vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions)
}

// TriangleCount returns the number of triangles drawn by the index list.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// IsEmpty reports whether there is nothing to draw.
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Indices) == 0
}

// SizeBytes returns the GPU buffer footprint of the mesh.
func (m *Mesh) SizeBytes() int {
	if m == nil {
		return 0
	}
	return len(m.Indices)*int(unsafe.Sizeof(uint16(0))) +
		(len(m.Positions)+len(m.Normals))*int(unsafe.Sizeof(mgl32.Vec3{})) +
		len(m.UVs)*int(unsafe.Sizeof(mgl32.Vec2{}))
}

// Expand re-expands the mesh into a non-indexed stream, the inverse of
// indexing. Normals stay nil when the mesh has none.
func (m *Mesh) Expand() RawStream {
	if m == nil {
		return RawStream{}
	}
	s := RawStream{
		Positions: make([]mgl32.Vec3, len(m.Indices)),
		UVs:       make([]mgl32.Vec2, len(m.Indices)),
	}
	if m.Normals != nil {
		s.Normals = make([]mgl32.Vec3, len(m.Indices))
	}
	for i, idx := range m.Indices {
		s.Positions[i] = m.Positions[idx]
		s.UVs[i] = m.UVs[idx]
		if m.Normals != nil {
			s.Normals[i] = m.Normals[idx]
		}
	}
	return s
}

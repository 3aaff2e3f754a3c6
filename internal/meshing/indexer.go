package meshing

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/profiling"
)

// MaxIndexedVertices is the number of distinct vertices a 16-bit index can address.
const MaxIndexedVertices = math.MaxUint16 + 1

// ErrInvalidInput reports a violated caller contract. No partial output is
// produced when it is returned.
var ErrInvalidInput = errors.New("invalid meshing input")

// packedVertex is the deduplication identity of a vertex: the raw IEEE-754
// bits of every attribute. Comparing bits rather than float values keeps
// +0/-0 apart and makes NaN payloads comparable.
type packedVertex struct {
	position [3]uint32
	normal   [3]uint32
	uv       [2]uint32
}

// packedVertexUV is the key of the normal-less path.
type packedVertexUV struct {
	position [3]uint32
	uv       [2]uint32
}

func bits3(v mgl32.Vec3) [3]uint32 {
	return [3]uint32{math.Float32bits(v[0]), math.Float32bits(v[1]), math.Float32bits(v[2])}
}

func bits2(v mgl32.Vec2) [2]uint32 {
	return [2]uint32{math.Float32bits(v[0]), math.Float32bits(v[1])}
}

// Indexer merges bit-identical vertices of a raw stream into an indexed
// mesh. Its lookup maps are kept between runs to avoid regrowing them; an
// Indexer is not safe for concurrent use.
type Indexer struct {
	seen   map[packedVertex]uint16
	seenUV map[packedVertexUV]uint16
}

// NewIndexer creates an Indexer.
func NewIndexer() *Indexer {
	return &Indexer{
		seen:   make(map[packedVertex]uint16),
		seenUV: make(map[packedVertexUV]uint16),
	}
}

// Index deduplicates a stream carrying positions, normals and uvs. Output
// vertices appear in order of first occurrence and indices[i] addresses the
// vertex equal to input i.
func (ix *Indexer) Index(positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) (*Mesh, error) {
	defer profiling.Track("meshing.Index")()
	if len(normals) != len(positions) || len(uvs) != len(positions) {
		return nil, fmt.Errorf("%w: %d positions, %d normals, %d uvs",
			ErrInvalidInput, len(positions), len(normals), len(uvs))
	}
	defer clear(ix.seen)

	m := &Mesh{Indices: make([]uint16, len(positions))}
	for i := range positions {
		key := packedVertex{
			position: bits3(positions[i]),
			normal:   bits3(normals[i]),
			uv:       bits2(uvs[i]),
		}
		if idx, ok := ix.seen[key]; ok {
			m.Indices[i] = idx
			continue
		}
		if len(m.Positions) == MaxIndexedVertices {
			return nil, fmt.Errorf("%w: more than %d distinct vertices", ErrInvalidInput, MaxIndexedVertices)
		}
		idx := uint16(len(m.Positions))
		ix.seen[key] = idx
		m.Indices[i] = idx
		m.Positions = append(m.Positions, positions[i])
		m.Normals = append(m.Normals, normals[i])
		m.UVs = append(m.UVs, uvs[i])
	}
	return m, nil
}

// IndexWithoutNormals deduplicates a stream of positions and uvs only. The
// returned mesh has nil Normals.
func (ix *Indexer) IndexWithoutNormals(positions []mgl32.Vec3, uvs []mgl32.Vec2) (*Mesh, error) {
	defer profiling.Track("meshing.IndexWithoutNormals")()
	if len(uvs) != len(positions) {
		return nil, fmt.Errorf("%w: %d positions, %d uvs", ErrInvalidInput, len(positions), len(uvs))
	}
	defer clear(ix.seenUV)

	m := &Mesh{Indices: make([]uint16, len(positions))}
	for i := range positions {
		key := packedVertexUV{position: bits3(positions[i]), uv: bits2(uvs[i])}
		if idx, ok := ix.seenUV[key]; ok {
			m.Indices[i] = idx
			continue
		}
		if len(m.Positions) == MaxIndexedVertices {
			return nil, fmt.Errorf("%w: more than %d distinct vertices", ErrInvalidInput, MaxIndexedVertices)
		}
		idx := uint16(len(m.Positions))
		ix.seenUV[key] = idx
		m.Indices[i] = idx
		m.Positions = append(m.Positions, positions[i])
		m.UVs = append(m.UVs, uvs[i])
	}
	return m, nil
}

// Index deduplicates a position/normal/uv stream with a one-off Indexer.
func Index(positions, normals []mgl32.Vec3, uvs []mgl32.Vec2) (*Mesh, error) {
	return NewIndexer().Index(positions, normals, uvs)
}

// IndexWithoutNormals deduplicates a position/uv stream with a one-off Indexer.
func IndexWithoutNormals(positions []mgl32.Vec3, uvs []mgl32.Vec2) (*Mesh, error) {
	return NewIndexer().IndexWithoutNormals(positions, uvs)
}

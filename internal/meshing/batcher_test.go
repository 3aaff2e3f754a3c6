package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

func newTestBatcher() *Batcher {
	return NewBatcher(registry.Default().UV, 1)
}

func TestSingleCubeEmitsSixFaces(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(3, 4, 5, world.BlockTypeStone)

	raw := newTestBatcher().Batch(c, world.Neighbors{})
	if raw.Len() != 36 {
		t.Fatalf("single cube: got %d raw vertices, want 36", raw.Len())
	}
	if len(raw.Normals) != raw.Len() || len(raw.UVs) != raw.Len() {
		t.Fatalf("channel lengths differ: %d positions, %d normals, %d uvs",
			raw.Len(), len(raw.Normals), len(raw.UVs))
	}

	center := mgl32.Vec3{3, 4, 5}
	for i, p := range raw.Positions {
		d := p.Sub(center)
		for axis := 0; axis < 3; axis++ {
			if d[axis] != 0.5 && d[axis] != -0.5 {
				t.Fatalf("vertex %d at %v is not a corner of the cell", i, p)
			}
		}
	}
}

func TestAdjacentCubesShareNoFace(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeGrass)
	c.SetBlock(1, 0, 0, world.BlockTypeGrass)

	raw := newTestBatcher().Batch(c, world.Neighbors{})
	if raw.Faces() != 10 {
		t.Fatalf("two touching cubes: got %d faces, want 10", raw.Faces())
	}
}

func TestSeparatedCubesKeepAllFaces(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeGrass)
	c.SetBlock(2, 0, 0, world.BlockTypeGrass)

	raw := newTestBatcher().Batch(c, world.Neighbors{})
	if raw.Faces() != 12 {
		t.Fatalf("two separated cubes: got %d faces, want 12", raw.Faces())
	}
}

func TestNonOpaqueCellsEmitNothing(t *testing.T) {
	cases := map[string]world.Voxel{
		"air":    {},
		"slab":   {Type: world.BlockTypeStoneSlab},
		"water":  {Type: world.BlockTypeWater},
		"glass":  {Type: world.BlockTypeGlass},
		"hidden": {Type: world.BlockTypeStone, Hidden: true},
	}
	b := newTestBatcher()
	for name, v := range cases {
		c := world.NewChunk(0, 0, 0)
		c.Set(8, 8, 8, v)
		if raw := b.Batch(c, world.Neighbors{}); raw.Len() != 0 {
			t.Errorf("%s: got %d raw vertices, want 0", name, raw.Len())
		}
	}
}

func TestNonOccludingNeighborsKeepFace(t *testing.T) {
	cases := map[string]world.Voxel{
		"slab":   {Type: world.BlockTypeDirtSlab},
		"water":  {Type: world.BlockTypeWater},
		"glass":  {Type: world.BlockTypeGlass},
	}
	b := newTestBatcher()
	for name, v := range cases {
		c := world.NewChunk(0, 0, 0)
		c.SetBlock(8, 8, 8, world.BlockTypeStone)
		c.Set(8, 9, 8, v)
		if raw := b.Batch(c, world.Neighbors{}); raw.Faces() != 6 {
			t.Errorf("%s above: got %d faces, want 6", name, raw.Faces())
		}
	}
}

func TestHiddenNeighborOccludes(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(8, 8, 8, world.BlockTypeStone)
	c.Set(9, 8, 8, world.Voxel{Type: world.BlockTypeStone, Hidden: true})

	b := newTestBatcher()
	raw := b.Batch(c, world.Neighbors{})
	if raw.Faces() != 5 {
		t.Fatalf("hidden neighbour: got %d faces, want 5", raw.Faces())
	}
	for _, n := range faceNormalsOf(raw) {
		if n == world.FaceEast.Normal() {
			t.Fatalf("face against hidden neighbour still emitted")
		}
	}

	// Across a chunk border as well.
	c = world.NewChunk(0, 0, 0)
	c.SetBlock(world.ChunkSize-1, 8, 8, world.BlockTypeStone)
	other := world.NewChunk(1, 0, 0)
	other.Set(0, 8, 8, world.Voxel{Type: world.BlockTypeStone, Hidden: true})
	var nb world.Neighbors
	nb[world.FaceEast] = other
	if raw := b.Batch(c, nb); raw.Faces() != 5 {
		t.Fatalf("hidden neighbour across border: got %d faces, want 5", raw.Faces())
	}
}

func TestEmptyChunk(t *testing.T) {
	raw := newTestBatcher().Batch(world.NewChunk(0, 0, 0), world.Neighbors{})
	if raw.Len() != 0 || raw.Faces() != 0 {
		t.Fatalf("empty chunk: got %d raw vertices, want 0", raw.Len())
	}
	if raw := newTestBatcher().Batch(nil, world.Neighbors{}); raw.Len() != 0 {
		t.Fatalf("nil chunk: got %d raw vertices, want 0", raw.Len())
	}
}

func TestBoundaryFaceWithoutNeighborIsExposed(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(world.ChunkSize-1, 0, 0, world.BlockTypeStone)

	raw := newTestBatcher().Batch(c, world.Neighbors{})
	if raw.Faces() != 6 {
		t.Fatalf("border cube without neighbours: got %d faces, want 6", raw.Faces())
	}
}

func TestCrossChunkCulling(t *testing.T) {
	last := world.ChunkSize - 1
	for f := range world.BlockFace(world.NumFaces) {
		dx, dy, dz := f.Offset()
		// Cell on the border facing f, and its mirror in the neighbour.
		pick := func(d int) (int, int) {
			switch d {
			case 1:
				return last, 0
			case -1:
				return 0, last
			default:
				return 4, 4
			}
		}
		x, mx := pick(dx)
		y, my := pick(dy)
		z, mz := pick(dz)

		c := world.NewChunk(0, 0, 0)
		c.SetBlock(x, y, z, world.BlockTypeStone)

		other := world.NewChunk(f.Offset())
		other.SetBlock(mx, my, mz, world.BlockTypeStone)
		var nb world.Neighbors
		nb[f] = other

		b := newTestBatcher()
		if raw := b.Batch(c, nb); raw.Faces() != 5 {
			t.Errorf("%v: opaque neighbour cell: got %d faces, want 5", f, raw.Faces())
		}
		for _, n := range faceNormalsOf(b.Batch(c, nb)) {
			if n == f.Normal() {
				t.Errorf("%v: culled face still emitted", f)
			}
		}

		other.SetBlock(mx, my, mz, world.BlockTypeGlass)
		if raw := b.Batch(c, nb); raw.Faces() != 6 {
			t.Errorf("%v: glass neighbour cell: got %d faces, want 6", f, raw.Faces())
		}

		other.SetBlock(mx, my, mz, world.BlockTypeStoneSlab)
		if raw := b.Batch(c, nb); raw.Faces() != 6 {
			t.Errorf("%v: slab neighbour cell: got %d faces, want 6", f, raw.Faces())
		}

		// Only the mirrored cell matters.
		other.SetBlock(mx, my, mz, world.BlockTypeAir)
		other.SetBlock(4, 4, 4, world.BlockTypeStone)
		if raw := b.Batch(c, nb); raw.Faces() != 6 {
			t.Errorf("%v: unrelated neighbour cell: got %d faces, want 6", f, raw.Faces())
		}
	}
}

// faceNormalsOf returns one normal per emitted face.
func faceNormalsOf(raw RawStream) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, raw.Faces())
	for i := 0; i < raw.Len(); i += VerticesPerFace {
		out = append(out, raw.Normals[i])
	}
	return out
}

func TestTrianglesFaceOutward(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(1, 1, 1, world.BlockTypeSnow)

	raw := newTestBatcher().Batch(c, world.Neighbors{})
	for i := 0; i < raw.Len(); i += 3 {
		p0, p1, p2 := raw.Positions[i], raw.Positions[i+1], raw.Positions[i+2]
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		if n.Dot(raw.Normals[i]) <= 0 {
			t.Fatalf("triangle %d winds against its normal %v", i/3, raw.Normals[i])
		}
		if raw.Normals[i] != raw.Normals[i+1] || raw.Normals[i] != raw.Normals[i+2] {
			t.Fatalf("triangle %d has mixed normals", i/3)
		}
	}
}

func TestFaceUVsSpanOneTile(t *testing.T) {
	reg := registry.Default()
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(0, 0, 0, world.BlockTypeGrass)

	raw := NewBatcher(reg.UV, 1).Batch(c, world.Neighbors{})
	step := reg.UV.Step()
	for i := 0; i < raw.Len(); i += VerticesPerFace {
		var face world.BlockFace = -1
		for f := range world.BlockFace(world.NumFaces) {
			if f.Normal() == raw.Normals[i] {
				face = f
			}
		}
		if face < 0 {
			t.Fatalf("unknown normal %v", raw.Normals[i])
		}
		origin := reg.UV.Origin(world.BlockTypeGrass.Bucket(), face)
		for k := range VerticesPerFace {
			want := origin.Add(faceUVCorners[k].Mul(step))
			if !raw.UVs[i+k].ApproxEqual(want) {
				t.Fatalf("%v vertex %d: got uv %v, want %v", face, k, raw.UVs[i+k], want)
			}
		}
	}
}

func TestCubeSizeScalesPositions(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	c.SetBlock(1, 0, 0, world.BlockTypeStone)

	raw := NewBatcher(registry.Default().UV, 2).Batch(c, world.Neighbors{})
	for i, p := range raw.Positions {
		if p[0] != 1 && p[0] != 3 {
			t.Fatalf("vertex %d: got x %v, want 1 or 3", i, p[0])
		}
	}
}

func TestSolidBlockCounts(t *testing.T) {
	c := world.NewChunk(0, 0, 0)
	for x := range 2 {
		for y := range 2 {
			for z := range 2 {
				c.SetBlock(x, y, z, world.BlockTypeStone)
			}
		}
	}

	raw := newTestBatcher().Batch(c, world.Neighbors{})
	if raw.Faces() != 24 {
		t.Fatalf("2x2x2 block: got %d faces, want 24", raw.Faces())
	}
	if raw.Len() != 144 {
		t.Fatalf("2x2x2 block: got %d raw vertices, want 144", raw.Len())
	}

	mesh, err := Index(raw.Positions, raw.Normals, raw.UVs)
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	if mesh.VertexCount() != 96 {
		t.Fatalf("2x2x2 block: got %d indexed vertices, want 96", mesh.VertexCount())
	}
}

func TestFlatFloorCullsAgainstNeighbors(t *testing.T) {
	store := world.NewChunkStore()
	gen := world.NewFlatGenerator(5)
	for x := -1; x <= 1; x++ {
		for z := -1; z <= 1; z++ {
			gen.PopulateChunk(store.GetChunk(world.ChunkCoord{X: x, Z: z}, true))
		}
	}

	b := newTestBatcher()
	center := world.ChunkCoord{}
	raw := b.Batch(store.GetChunk(center, false), store.Neighbors(center))
	// Top and bottom layers only; sides are hidden by the loaded neighbours.
	want := 2 * world.ChunkSize * world.ChunkSize
	if raw.Faces() != want {
		t.Fatalf("centre chunk: got %d faces, want %d", raw.Faces(), want)
	}

	edge := world.ChunkCoord{X: 1}
	raw = b.Batch(store.GetChunk(edge, false), store.Neighbors(edge))
	// No chunk east of it: every floor cell on that border adds a face.
	want += world.ChunkSize * 6
	if raw.Faces() != want {
		t.Fatalf("edge chunk: got %d faces, want %d", raw.Faces(), want)
	}
}

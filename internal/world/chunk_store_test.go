package world

import "testing"

func TestStoreWorldCoordinates(t *testing.T) {
	cs := NewChunkStore()
	cs.SetBlock(-1, 17, 5, BlockTypeStone)

	ch := cs.GetChunk(ChunkCoord{X: -1, Y: 1, Z: 0}, false)
	if ch == nil {
		t.Fatal("chunk (-1,1,0) not created")
	}
	if got := ch.GetBlock(ChunkSize-1, 1, 5); got != BlockTypeStone {
		t.Fatalf("local block: got %v, want stone", got)
	}
	if got := cs.Get(-1, 17, 5); got.Type != BlockTypeStone {
		t.Fatalf("world block: got %v, want stone", got.Type)
	}
	if got := cs.Get(1000, 0, 0); got.IsSolid() {
		t.Fatalf("missing chunk read: got %+v", got)
	}
}

func TestStoreNeighbors(t *testing.T) {
	cs := NewChunkStore()
	center := ChunkCoord{}
	cs.GetChunk(center, true)
	east := cs.GetChunk(center.Neighbor(FaceEast), true)
	top := cs.GetChunk(center.Neighbor(FaceTop), true)

	nb := cs.Neighbors(center)
	if nb[FaceEast] != east || nb[FaceTop] != top {
		t.Fatal("neighbors not resolved by coordinate")
	}
	for _, f := range []BlockFace{FaceWest, FaceBottom, FaceNorth, FaceSouth} {
		if nb[f] != nil {
			t.Fatalf("face %v: expected no neighbor", f)
		}
	}
}

func TestStoreBorderEditMarksNeighborDirty(t *testing.T) {
	cs := NewChunkStore()
	west := cs.GetChunk(ChunkCoord{X: -1}, true)
	north := cs.GetChunk(ChunkCoord{Z: 1}, true)
	west.SetClean()
	north.SetClean()

	cs.SetBlock(0, 5, 5, BlockTypeDirt)
	if !west.IsDirty() {
		t.Fatal("west neighbor not dirty after border edit")
	}
	if north.IsDirty() {
		t.Fatal("north neighbor dirty after non-border edit")
	}

	cs.SetBlock(3, 5, ChunkSize-1, BlockTypeDirt)
	if !north.IsDirty() {
		t.Fatal("north neighbor not dirty after border edit")
	}
}

func TestStoreAddAndEvict(t *testing.T) {
	cs := NewChunkStore()
	if !cs.AddChunk(NewChunk(0, 0, 0)) {
		t.Fatal("first add rejected")
	}
	if cs.AddChunk(NewChunk(0, 0, 0)) {
		t.Fatal("duplicate add accepted")
	}
	near := cs.GetChunk(ChunkCoord{X: 4}, true)
	cs.AddChunk(NewChunk(5, 0, 0))
	near.SetClean()

	if n := cs.EvictFarChunks(0, 0, 4); n != 1 {
		t.Fatalf("evicted: got %d, want 1", n)
	}
	if cs.HasChunk(ChunkCoord{X: 5}) {
		t.Fatal("far chunk still present")
	}
	if !near.IsDirty() {
		t.Fatal("neighbor of evicted chunk not dirty")
	}
	if cs.Len() != 2 {
		t.Fatalf("len: got %d, want 2", cs.Len())
	}
}

func TestFloorDivMod(t *testing.T) {
	cases := []struct{ a, q, m int }{
		{0, 0, 0}, {15, 0, 15}, {16, 1, 0}, {-1, -1, 15}, {-16, -1, 0}, {-17, -2, 15},
	}
	for _, tc := range cases {
		if q := floorDiv(tc.a, ChunkSize); q != tc.q {
			t.Errorf("floorDiv(%d): got %d, want %d", tc.a, q, tc.q)
		}
		if m := mod(tc.a, ChunkSize); m != tc.m {
			t.Errorf("mod(%d): got %d, want %d", tc.a, m, tc.m)
		}
	}
}

package world

import "testing"

func TestStreamAroundSync(t *testing.T) {
	store := NewChunkStore()
	s := NewStreamer(store, NewFlatGenerator(20), 1)
	defer s.Close()

	s.StreamAroundSync(0, 0, 1)
	// Height 20 reaches into chunk Y=1.
	if store.Len() != 18 {
		t.Fatalf("got %d chunks, want 18", store.Len())
	}
	if !store.HasChunk(ChunkCoord{X: -1, Y: 1, Z: 1}) || store.HasChunk(ChunkCoord{Y: 2}) {
		t.Fatalf("wrong chunks generated")
	}
	if b := store.Get(5, 20, 5).Type; b != BlockTypeGrass {
		t.Fatalf("surface block: got %v, want grass", b)
	}
}

func TestStreamAroundReachesSeaLevel(t *testing.T) {
	store := NewChunkStore()
	gen := NewGenerator(GeneratorOptions{Seed: 1, BaseHeight: 8, SeaLevel: 20})
	s := NewStreamer(store, gen, 1)
	defer s.Close()

	// Surface at 8 sits in chunk Y=0, the water above it reaches chunk Y=1.
	s.StreamAroundSync(0, 0, 0)
	if store.Len() != 2 {
		t.Fatalf("got %d chunks, want 2", store.Len())
	}
	if b := store.Get(5, 18, 5).Type; b != BlockTypeWater {
		t.Fatalf("block at y=18: got %v, want water", b)
	}
	if b := store.Get(5, 20, 5).Type; b != BlockTypeAir {
		t.Fatalf("block at y=20: got %v, want air", b)
	}
}

func TestStreamAroundAsync(t *testing.T) {
	store := NewChunkStore()
	s := NewStreamer(store, NewFlatGenerator(5), 4)
	defer s.Close()

	queued := s.StreamAround(2, -3, 2)
	if queued != 25 {
		t.Fatalf("queued %d chunks, want 25", queued)
	}
	// Already queued or present chunks are not queued twice.
	s.Wait()
	if again := s.StreamAround(2, -3, 2); again != 0 {
		t.Fatalf("requeued %d chunks", again)
	}
	if store.Len() != 25 || s.Pending() != 0 {
		t.Fatalf("got %d chunks and %d pending, want 25 and 0", store.Len(), s.Pending())
	}
	if !store.HasChunk(ChunkCoord{X: 4, Z: -5}) {
		t.Fatalf("corner column missing")
	}
}

func TestStreamerEvict(t *testing.T) {
	store := NewChunkStore()
	s := NewStreamer(store, NewFlatGenerator(5), 1)
	defer s.Close()

	s.StreamAroundSync(0, 0, 2)
	if s.CachedColumns() != 25 {
		t.Fatalf("got %d cached columns, want 25", s.CachedColumns())
	}
	removed := s.EvictFarChunks(0, 0, 1)
	// Radius 1 keeps the centre and its four edge neighbours.
	if removed != 20 || store.Len() != 5 {
		t.Fatalf("removed %d, kept %d; want 20 and 5", removed, store.Len())
	}
	if s.CachedColumns() != 5 {
		t.Fatalf("got %d cached columns after evict, want 5", s.CachedColumns())
	}
}

func TestStreamerClose(t *testing.T) {
	s := NewStreamer(NewChunkStore(), NewFlatGenerator(5), 2)
	s.Close()
	s.Close()
	if n := s.StreamAround(0, 0, 1); n != 0 {
		t.Fatalf("queued %d chunks after close", n)
	}
	s.Wait()
}

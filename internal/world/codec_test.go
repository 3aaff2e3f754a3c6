package world

import (
	"errors"
	"testing"
)

func TestCodecRoundTrip(t *testing.T) {
	c := NewChunk(3, -1, 7)
	NewFlatGenerator(9).PopulateChunk(c)
	c.SetBlock(4, 12, 4, BlockTypeGlass)
	c.Set(5, 12, 5, Voxel{Type: BlockTypeStoneSlab, Hidden: true})

	data, err := EncodeChunk(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeChunk(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Coord != c.Coord {
		t.Fatalf("coord: got %v, want %v", got.Coord, c.Coord)
	}
	for i := 0; i < ChunkVolume; i++ {
		if got.Cell(i) != c.Cell(i) {
			t.Fatalf("cell %d: got %+v, want %+v", i, got.Cell(i), c.Cell(i))
		}
	}
	if !got.IsDirty() {
		t.Fatal("decoded chunk should need meshing")
	}
}

func TestCodecCompressesUniformChunk(t *testing.T) {
	c := NewChunk(0, 0, 0)
	c.Fill(Voxel{Type: BlockTypeStone})
	data, err := EncodeChunk(c)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(data) > 64 {
		t.Fatalf("uniform chunk encoded to %d bytes", len(data))
	}
}

func TestCodecRejectsCorruptData(t *testing.T) {
	if _, err := DecodeChunk([]byte("not a chunk")); !errors.Is(err, ErrCorruptChunk) {
		t.Fatalf("garbage: got %v, want ErrCorruptChunk", err)
	}

	// Valid zstd frame around a truncated payload.
	short := zstdEncoder.EncodeAll([]byte{'V', 'X', 'C', codecVersion, 0, 0, 0, 10, byte(BlockTypeDirt), 0}, nil)
	if _, err := DecodeChunk(short); !errors.Is(err, ErrCorruptChunk) {
		t.Fatalf("short runs: got %v, want ErrCorruptChunk", err)
	}
}

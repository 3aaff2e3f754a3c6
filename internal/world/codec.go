package world

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Chunk snapshot format, before compression:
//
//	"VXC" | version | varint X | varint Y | varint Z | runs...
//
// Each run is uvarint length, type byte, flags byte, covering cells in flat
// index order. Runs must add up to ChunkVolume.
const (
	codecMagic   = "VXC"
	codecVersion = 1

	flagHidden = 1 << 0
)

// ErrCorruptChunk is returned when a snapshot cannot be decoded.
var ErrCorruptChunk = errors.New("corrupt chunk snapshot")

var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// EncodeChunk serializes and compresses a chunk.
func EncodeChunk(c *Chunk) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("encode chunk: nil chunk")
	}
	buf := make([]byte, 0, 256)
	buf = append(buf, codecMagic...)
	buf = append(buf, codecVersion)
	buf = binary.AppendVarint(buf, int64(c.Coord.X))
	buf = binary.AppendVarint(buf, int64(c.Coord.Y))
	buf = binary.AppendVarint(buf, int64(c.Coord.Z))

	run := 0
	cur := c.cells[0]
	for i := 0; i < ChunkVolume; i++ {
		v := c.cells[i]
		if v == cur {
			run++
			continue
		}
		buf = appendRun(buf, run, cur)
		cur = v
		run = 1
	}
	buf = appendRun(buf, run, cur)

	return zstdEncoder.EncodeAll(buf, nil), nil
}

func appendRun(buf []byte, n int, v Voxel) []byte {
	var flags byte
	if v.Hidden {
		flags |= flagHidden
	}
	buf = binary.AppendUvarint(buf, uint64(n))
	return append(buf, byte(v.Type), flags)
}

// DecodeChunk reverses EncodeChunk. The returned chunk is marked dirty.
func DecodeChunk(data []byte) (*Chunk, error) {
	raw, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptChunk, err)
	}
	if len(raw) < len(codecMagic)+1 || !bytes.Equal(raw[:len(codecMagic)], []byte(codecMagic)) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorruptChunk)
	}
	if v := raw[len(codecMagic)]; v != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptChunk, v)
	}
	r := bytes.NewReader(raw[len(codecMagic)+1:])

	var coord [3]int64
	for i := range coord {
		if coord[i], err = binary.ReadVarint(r); err != nil {
			return nil, fmt.Errorf("%w: coord: %v", ErrCorruptChunk, err)
		}
	}
	c := NewChunk(int(coord[0]), int(coord[1]), int(coord[2]))

	i := 0
	for i < ChunkVolume {
		n, err := binary.ReadUvarint(r)
		if err != nil {
			return nil, fmt.Errorf("%w: run length at cell %d: %v", ErrCorruptChunk, i, err)
		}
		t, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: run type at cell %d: %v", ErrCorruptChunk, i, err)
		}
		flags, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: run flags at cell %d: %v", ErrCorruptChunk, i, err)
		}
		if n == 0 || n > uint64(ChunkVolume-i) {
			return nil, fmt.Errorf("%w: run of %d cells at cell %d", ErrCorruptChunk, n, i)
		}
		v := Voxel{Type: BlockType(t), Hidden: flags&flagHidden != 0}
		for end := i + int(n); i < end; i++ {
			c.cells[i] = v
		}
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptChunk, r.Len())
	}
	return c, nil
}

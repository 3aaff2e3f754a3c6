package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"voxmesh/internal/world"
)

const chunkFileExt = ".vxc"

// streamRegion generates every column within r chunks of the origin on
// background workers and waits for it to land in the store.
func streamRegion(store *world.ChunkStore, gen world.TerrainGenerator, r, workers int) {
	s := world.NewStreamer(store, gen, workers)
	defer s.Close()
	for s.StreamAround(0, 0, r) > 0 {
		s.Wait()
	}
}

func chunkFileName(c world.ChunkCoord) string {
	return fmt.Sprintf("%d_%d_%d%s", c.X, c.Y, c.Z, chunkFileExt)
}

// saveRegion writes every chunk of the store to dir and returns the bytes written.
func saveRegion(store *world.ChunkStore, dir string) (int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, err
	}
	total := 0
	for _, cc := range store.GetAllChunks() {
		data, err := world.EncodeChunk(cc.Chunk)
		if err != nil {
			return total, fmt.Errorf("encode %v: %w", cc.Coord, err)
		}
		if err := os.WriteFile(filepath.Join(dir, chunkFileName(cc.Coord)), data, 0o644); err != nil {
			return total, err
		}
		total += len(data)
	}
	return total, nil
}

// loadRegion decodes every chunk file in dir into the store.
func loadRegion(store *world.ChunkStore, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), chunkFileExt) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return n, err
		}
		c, err := world.DecodeChunk(data)
		if err != nil {
			return n, fmt.Errorf("%s: %w", path, err)
		}
		if store.AddChunk(c) {
			n++
		}
	}
	return n, nil
}

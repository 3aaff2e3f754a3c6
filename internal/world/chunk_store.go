package world

import (
	"sync"

	"voxmesh/internal/profiling"
)

// ChunkStore owns chunk lifetime and resolves neighbour relations by coordinate.
type ChunkStore struct {
	// Map of chunks indexed by their coordinates
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// ChunkWithCoord pairs a chunk with its key.
type ChunkWithCoord struct {
	Chunk *Chunk
	Coord ChunkCoord
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// GetChunk returns the chunk at the specified chunk coordinates.
// If the chunk doesn't exist and create is true, an all-air chunk is created.
func (cs *ChunkStore) GetChunk(coord ChunkCoord, create bool) *Chunk {
	cs.mu.RLock()
	chunk, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	if !exists && create {
		cs.mu.Lock()
		// Double-check locking: another goroutine might have created it while we were waiting for the lock
		if existing, ok := cs.chunks[coord]; ok {
			cs.mu.Unlock()
			return existing
		}

		chunk = NewChunk(coord.X, coord.Y, coord.Z)
		cs.chunks[coord] = chunk
		cs.modCount++
		cs.mu.Unlock()
	}
	return chunk
}

// GetChunkFromBlockCoords returns the chunk containing the block at the specified world coordinates.
func (cs *ChunkStore) GetChunkFromBlockCoords(x, y, z int, create bool) *Chunk {
	return cs.GetChunk(ChunkCoord{
		X: floorDiv(x, ChunkSize),
		Y: floorDiv(y, ChunkSize),
		Z: floorDiv(z, ChunkSize),
	}, create)
}

// Get returns the voxel at the specified world coordinates.
func (cs *ChunkStore) Get(x, y, z int) Voxel {
	chunk := cs.GetChunkFromBlockCoords(x, y, z, false)
	if chunk == nil {
		return Voxel{}
	}
	return chunk.At(mod(x, ChunkSize), mod(y, ChunkSize), mod(z, ChunkSize))
}

// Set stores a voxel at the specified world coordinates, creating the chunk
// if needed. Neighbour chunks sharing the touched border are marked dirty
// since their boundary faces may change.
func (cs *ChunkStore) Set(x, y, z int, v Voxel) {
	chunk := cs.GetChunkFromBlockCoords(x, y, z, true)

	localX := mod(x, ChunkSize)
	localY := mod(y, ChunkSize)
	localZ := mod(z, ChunkSize)

	chunk.Set(localX, localY, localZ, v)

	if localX == 0 {
		cs.markDirty(chunk.Coord.Neighbor(FaceWest))
	} else if localX == ChunkSize-1 {
		cs.markDirty(chunk.Coord.Neighbor(FaceEast))
	}
	if localY == 0 {
		cs.markDirty(chunk.Coord.Neighbor(FaceBottom))
	} else if localY == ChunkSize-1 {
		cs.markDirty(chunk.Coord.Neighbor(FaceTop))
	}
	if localZ == 0 {
		cs.markDirty(chunk.Coord.Neighbor(FaceSouth))
	} else if localZ == ChunkSize-1 {
		cs.markDirty(chunk.Coord.Neighbor(FaceNorth))
	}
}

// SetBlock stores a visible voxel of type t at world coordinates.
func (cs *ChunkStore) SetBlock(x, y, z int, t BlockType) {
	cs.Set(x, y, z, Voxel{Type: t})
}

func (cs *ChunkStore) markDirty(coord ChunkCoord) {
	if nb := cs.GetChunk(coord, false); nb != nil {
		nb.MarkDirty()
	}
}

// Neighbors resolves the six chunks adjacent to coord. Missing chunks are nil.
func (cs *ChunkStore) Neighbors(coord ChunkCoord) Neighbors {
	var nb Neighbors
	cs.mu.RLock()
	for f := range BlockFace(NumFaces) {
		nb[f] = cs.chunks[coord.Neighbor(f)]
	}
	cs.mu.RUnlock()
	return nb
}

// GetAllChunks returns a slice of all chunks in the store with their coordinates.
func (cs *ChunkStore) GetAllChunks() []ChunkWithCoord {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	chunks := make([]ChunkWithCoord, 0, len(cs.chunks))
	for coord, chunk := range cs.chunks {
		chunks = append(chunks, ChunkWithCoord{Chunk: chunk, Coord: coord})
	}
	return chunks
}

// DirtyChunks returns the chunks that need a remesh.
func (cs *ChunkStore) DirtyChunks() []ChunkWithCoord {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	var dirty []ChunkWithCoord
	for coord, chunk := range cs.chunks {
		if chunk.IsDirty() {
			dirty = append(dirty, ChunkWithCoord{Chunk: chunk, Coord: coord})
		}
	}
	return dirty
}

// Len returns the number of loaded chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// EvictFarChunks removes chunks outside the given XZ radius (in chunks) from the store.
// Chunks next to an evicted one are marked dirty: their boundary faces are
// exposed again. Returns number of removed chunks.
func (cs *ChunkStore) EvictFarChunks(cx, cz, radius int) int {
	defer profiling.Track("world.EvictFarChunks")()
	removed := 0
	cs.mu.Lock()
	for coord := range cs.chunks {
		dx := coord.X - cx
		dz := coord.Z - cz
		if dx*dx+dz*dz > radius*radius {
			delete(cs.chunks, coord)
			cs.modCount++
			for f := range BlockFace(NumFaces) {
				if nb := cs.chunks[coord.Neighbor(f)]; nb != nil {
					nb.MarkDirty()
				}
			}
			removed++
		}
	}
	cs.mu.Unlock()
	return removed
}

// HasChunk checks if a chunk exists without creating it.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// AddChunk adds a pre-generated chunk to the store. Existing chunks are kept.
// Loaded neighbours are marked dirty so their shared borders get re-culled.
func (cs *ChunkStore) AddChunk(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.chunks[chunk.Coord]; ok {
		return false
	}
	cs.chunks[chunk.Coord] = chunk
	cs.modCount++
	for f := range BlockFace(NumFaces) {
		if nb := cs.chunks[chunk.Coord.Neighbor(f)]; nb != nil {
			nb.MarkDirty()
		}
	}
	return true
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

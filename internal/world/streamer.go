package world

import (
	"context"
	"sync"

	"voxmesh/internal/profiling"
)

// Streamer generates missing chunks around a centre column on a pool of
// background goroutines and installs them into a ChunkStore. Columns are
// filled from y=0 up to the chunk holding the column's highest surface or
// water block.
type Streamer struct {
	jobs       chan ChunkCoord
	pending    map[ChunkCoord]struct{}
	pendingMu  sync.Mutex
	maxPending int

	maxJobsPerCall int

	// Highest chunk Y per column (chunkX, chunkZ)
	heightCache   map[[2]int]int
	heightCacheMu sync.RWMutex

	store *ChunkStore
	gen   TerrainGenerator

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	inflight sync.WaitGroup
	once     sync.Once
}

// NewStreamer starts workers goroutines generating into store.
func NewStreamer(store *ChunkStore, gen TerrainGenerator, workers int) *Streamer {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Streamer{
		jobs:           make(chan ChunkCoord, 4096),
		pending:        make(map[ChunkCoord]struct{}),
		maxJobsPerCall: 2048,
		maxPending:     16384,
		heightCache:    make(map[[2]int]int),
		store:          store,
		gen:            gen,
		ctx:            ctx,
		cancel:         cancel,
	}

	for range max(workers, 1) {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Close stops the workers. Queued chunks that were not generated yet are
// dropped.
func (s *Streamer) Close() {
	s.once.Do(func() {
		s.cancel()
		s.wg.Wait()
		for {
			select {
			case coord := <-s.jobs:
				s.finish(coord)
			default:
				return
			}
		}
	})
}

func (s *Streamer) worker() {
	defer s.wg.Done()
	for {
		select {
		case coord := <-s.jobs:
			s.generate(coord)
			s.finish(coord)
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Streamer) finish(coord ChunkCoord) {
	s.pendingMu.Lock()
	delete(s.pending, coord)
	s.pendingMu.Unlock()
	s.inflight.Done()
}

// generate builds and installs a chunk if missing.
func (s *Streamer) generate(coord ChunkCoord) {
	if s.store.HasChunk(coord) {
		return
	}
	chunk := NewChunk(coord.X, coord.Y, coord.Z)
	s.gen.PopulateChunk(chunk)
	s.store.AddChunk(chunk)
}

// Wait blocks until every queued chunk is installed or dropped.
func (s *Streamer) Wait() {
	s.inflight.Wait()
}

// Pending returns the number of chunks queued or being generated.
func (s *Streamer) Pending() int {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	return len(s.pending)
}

// StreamAroundSync generates every missing chunk within radius columns of
// (cx, cz) on the calling goroutine.
func (s *Streamer) StreamAroundSync(cx, cz, radius int) {
	defer profiling.Track("world.StreamAroundSync")()
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			top := s.columnTop(cx+dx, cz+dz)
			for cy := 0; cy <= top; cy++ {
				s.generate(ChunkCoord{X: cx + dx, Y: cy, Z: cz + dz})
			}
		}
	}
}

// StreamAround queues missing chunks ring by ring, nearest first, without
// blocking. Returns the number of chunks queued.
func (s *Streamer) StreamAround(cx, cz, radius int) int {
	defer profiling.Track("world.StreamAround")()
	jobsPushed := 0

	for r := 0; r <= radius; r++ {
		if jobsPushed >= s.maxJobsPerCall {
			break
		}

		if r == 0 {
			jobsPushed += s.enqueueColumn(cx, cz)
			continue
		}

		x0, x1 := cx-r, cx+r
		z0, z1 := cz-r, cz+r

		for xk := x0; xk <= x1; xk++ {
			jobsPushed += s.enqueueColumn(xk, z0)
			if jobsPushed >= s.maxJobsPerCall {
				return jobsPushed
			}
		}
		for zk := z0 + 1; zk <= z1-1; zk++ {
			jobsPushed += s.enqueueColumn(x1, zk)
			if jobsPushed >= s.maxJobsPerCall {
				return jobsPushed
			}
		}
		for xk := x1; xk >= x0; xk-- {
			jobsPushed += s.enqueueColumn(xk, z1)
			if jobsPushed >= s.maxJobsPerCall {
				return jobsPushed
			}
		}
		for zk := z1 - 1; zk >= z0+1; zk-- {
			jobsPushed += s.enqueueColumn(x0, zk)
			if jobsPushed >= s.maxJobsPerCall {
				return jobsPushed
			}
		}
	}
	return jobsPushed
}

// columnTop returns the chunk Y holding the highest block of a column,
// surface or water, caching the result.
func (s *Streamer) columnTop(chunkX, chunkZ int) int {
	key := [2]int{chunkX, chunkZ}
	s.heightCacheMu.RLock()
	top, ok := s.heightCache[key]
	s.heightCacheMu.RUnlock()
	if ok {
		return top
	}

	h := 0
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			h = max(h, s.gen.HeightAt(chunkX*ChunkSize+lx, chunkZ*ChunkSize+lz))
		}
	}
	if sl, ok := s.gen.(SeaLeveler); ok {
		h = max(h, sl.SeaLevel())
	}
	top = floorDiv(h, ChunkSize)

	s.heightCacheMu.Lock()
	s.heightCache[key] = top
	s.heightCacheMu.Unlock()
	return top
}

// enqueueColumn queues all needed Y-chunks of a column.
func (s *Streamer) enqueueColumn(chunkX, chunkZ int) int {
	s.pendingMu.Lock()
	full := s.maxPending > 0 && len(s.pending) >= s.maxPending
	s.pendingMu.Unlock()
	if full {
		return 0
	}

	enq := 0
	top := s.columnTop(chunkX, chunkZ)
	for cy := 0; cy <= top; cy++ {
		if s.request(ChunkCoord{X: chunkX, Y: cy, Z: chunkZ}) {
			enq++
		}
	}
	return enq
}

// request queues one chunk, respecting the pending cap. Returns true if queued.
func (s *Streamer) request(coord ChunkCoord) bool {
	if s.ctx.Err() != nil || s.store.HasChunk(coord) {
		return false
	}

	s.pendingMu.Lock()
	if _, ok := s.pending[coord]; ok {
		s.pendingMu.Unlock()
		return false
	}
	if s.maxPending > 0 && len(s.pending) >= s.maxPending {
		s.pendingMu.Unlock()
		return false
	}
	s.pending[coord] = struct{}{}
	s.inflight.Add(1)
	s.pendingMu.Unlock()

	select {
	case s.jobs <- coord:
		return true
	default:
		// queue full: rollback
		s.finish(coord)
		return false
	}
}

// EvictFarChunks removes chunks outside radius columns of (cx, cz) and
// forgets their cached column heights.
func (s *Streamer) EvictFarChunks(cx, cz, radius int) int {
	removed := s.store.EvictFarChunks(cx, cz, radius)

	s.heightCacheMu.Lock()
	for key := range s.heightCache {
		dx := key[0] - cx
		dz := key[1] - cz
		if dx*dx+dz*dz > radius*radius {
			delete(s.heightCache, key)
		}
	}
	s.heightCacheMu.Unlock()

	return removed
}

// CachedColumns returns the number of columns with a cached height.
func (s *Streamer) CachedColumns() int {
	s.heightCacheMu.RLock()
	defer s.heightCacheMu.RUnlock()
	return len(s.heightCache)
}

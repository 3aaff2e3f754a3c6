package meshing

import (
	"context"
	"errors"
	"log"
	"sync"

	"voxmesh/internal/world"
)

// Scheduler submits dirty chunks of a ChunkStore to a WorkerPool and keeps
// the latest mesh of each chunk. Enqueue, ProcessResults, Wait and Prune are
// meant to be called from one goroutine (the render thread in a game loop);
// Mesh may be called from any goroutine.
type Scheduler struct {
	pool    *WorkerPool
	store   *world.ChunkStore
	results chan MeshResult

	// Pending mesh jobs - tracks which chunks have jobs in progress
	pending map[world.ChunkCoord]struct{}

	mu     sync.RWMutex
	meshes map[world.ChunkCoord]*Mesh
	errs   []error
}

// NewScheduler creates a scheduler feeding pool from store.
func NewScheduler(pool *WorkerPool, store *world.ChunkStore, resultBuffer int) *Scheduler {
	return &Scheduler{
		pool:    pool,
		store:   store,
		results: make(chan MeshResult, resultBuffer),
		pending: make(map[world.ChunkCoord]struct{}),
		meshes:  make(map[world.ChunkCoord]*Mesh),
	}
}

// Enqueue submits every dirty chunk that has no job in flight, without
// blocking. Chunks that do not fit in the queue stay dirty for the next call.
// Returns the number of submitted jobs.
func (s *Scheduler) Enqueue() int {
	submitted := 0
	for _, cc := range s.store.DirtyChunks() {
		if _, busy := s.pending[cc.Coord]; busy {
			continue
		}
		job := MeshJob{
			Chunk:      cc.Chunk,
			Neighbors:  s.store.Neighbors(cc.Coord),
			Coord:      cc.Coord,
			ResultChan: s.results,
		}
		if !s.pool.SubmitJob(job) {
			break
		}
		s.pending[cc.Coord] = struct{}{}
		// Mark chunk as clean to prevent duplicate submissions
		cc.Chunk.SetClean()
		submitted++
	}
	return submitted
}

// ProcessResults applies every completed result without blocking and returns
// how many were applied.
func (s *Scheduler) ProcessResults() int {
	n := 0
	for {
		select {
		case result := <-s.results:
			s.apply(result)
			n++
		default:
			return n
		}
	}
}

func (s *Scheduler) apply(result MeshResult) {
	delete(s.pending, result.Coord)

	s.mu.Lock()
	defer s.mu.Unlock()
	if result.Error != nil {
		log.Printf("mesh %v failed: %v", result.Coord, result.Error)
		s.errs = append(s.errs, result.Error)
		return
	}
	s.meshes[result.Coord] = result.Mesh
}

// Pending returns the number of jobs in flight.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// Wait enqueues and applies results until no chunk is dirty or pending, or
// ctx ends. It returns the errors of failed jobs, joined.
func (s *Scheduler) Wait(ctx context.Context) error {
	for {
		s.Enqueue()
		if len(s.pending) == 0 {
			break
		}
		select {
		case result := <-s.results:
			s.apply(result)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return errors.Join(s.errs...)
}

// Mesh returns the latest mesh of a chunk, or nil if none was built yet.
func (s *Scheduler) Mesh(coord world.ChunkCoord) *Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.meshes[coord]
}

// Meshes returns a copy of the mesh table.
func (s *Scheduler) Meshes() map[world.ChunkCoord]*Mesh {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[world.ChunkCoord]*Mesh, len(s.meshes))
	for k, v := range s.meshes {
		out[k] = v
	}
	return out
}

// Prune drops meshes of chunks no longer present in the store.
// Returns number of meshes freed.
func (s *Scheduler) Prune() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	freed := 0
	for coord := range s.meshes {
		if !s.store.HasChunk(coord) {
			delete(s.meshes, coord)
			freed++
		}
	}
	return freed
}

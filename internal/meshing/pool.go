package meshing

import (
	"context"
	"sync"

	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

// MeshJob represents a meshing job request
type MeshJob struct {
	Chunk *world.Chunk
	// Neighbors must not be written to while the job is queued or running.
	Neighbors world.Neighbors
	Coord     world.ChunkCoord
	// Result channel - will be sent the result when done
	ResultChan chan<- MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord world.ChunkCoord
	Mesh  *Mesh
	Error error
}

// WorkerPool manages goroutines for mesh generation. Every worker owns a
// private Mesher, so concurrent remeshes never share transient buffers.
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once

	// mu guards closed; submitters hold it for reading while sending.
	mu     sync.RWMutex
	closed bool
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int, uv *registry.UVTable, cubeSize float32) *WorkerPool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	// Start worker goroutines
	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i, NewMesher(uv, cubeSize))
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full or the pool is shut down
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false // Queue is full
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued.
// Returns false if the pool is or gets shut down first.
func (p *WorkerPool) SubmitJobBlocking(job MeshJob) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed || p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	case <-p.ctx.Done():
		return false
	}
}

// worker is the worker goroutine that processes mesh jobs
func (p *WorkerPool) worker(_ int, mesher *Mesher) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			mesh, err := mesher.Build(job.Chunk, job.Neighbors)

			result := MeshResult{
				Coord: job.Coord,
				Mesh:  mesh,
				Error: err,
			}

			// Send result back
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

// Shutdown stops the workers. Jobs still queued are dropped; a remesh in
// progress runs to completion first. Once Shutdown returns, every submit
// returns false.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		// Cancel first so blocked submitters release the read lock.
		p.cancel()
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
		p.wg.Wait()
		for {
			select {
			case <-p.jobQueue:
			default:
				return
			}
		}
	})
}

// GetQueueLength returns the current number of jobs in the queue
func (p *WorkerPool) GetQueueLength() int {
	return len(p.jobQueue)
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

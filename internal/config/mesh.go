package config

import (
	"runtime"
	"sync"
)

// MeshSettings holds meshing configuration
type MeshSettings struct {
	mu             sync.RWMutex
	workers        int
	queueSize      int
	cubeSize       float32
	logMeshTimings bool
}

var globalMeshSettings = &MeshSettings{
	workers:   max(runtime.NumCPU(), 1),
	queueSize: 256,
	cubeSize:  1.0,
}

// GetMeshWorkers returns the number of meshing goroutines
func GetMeshWorkers() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.workers
}

// SetMeshWorkers sets the number of meshing goroutines
func SetMeshWorkers(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()

	// Clamp to reasonable values
	if n < 1 {
		n = 1
	}
	if n > 64 {
		n = 64
	}

	globalMeshSettings.workers = n
}

// GetMeshQueueSize returns the capacity of the mesh job queue
func GetMeshQueueSize() int {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.queueSize
}

// SetMeshQueueSize sets the capacity of the mesh job queue
func SetMeshQueueSize(n int) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()

	if n < 16 {
		n = 16
	}
	if n > 4096 {
		n = 4096
	}

	globalMeshSettings.queueSize = n
}

// GetCubeSize returns the edge length of one voxel in world units
func GetCubeSize() float32 {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.cubeSize
}

// SetCubeSize sets the voxel edge length. Non-positive sizes are ignored.
func SetCubeSize(size float32) {
	if size <= 0 {
		return
	}
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.cubeSize = size
}

// GetLogMeshTimings returns whether per-chunk mesh timings are logged
func GetLogMeshTimings() bool {
	globalMeshSettings.mu.RLock()
	defer globalMeshSettings.mu.RUnlock()
	return globalMeshSettings.logMeshTimings
}

// SetLogMeshTimings enables per-chunk mesh timing logs
func SetLogMeshTimings(enabled bool) {
	globalMeshSettings.mu.Lock()
	defer globalMeshSettings.mu.Unlock()
	globalMeshSettings.logMeshTimings = enabled
}

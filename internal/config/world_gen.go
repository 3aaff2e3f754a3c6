package config

import "sync"

// WorldGenSettings holds world generation configuration
type WorldGenSettings struct {
	mu         sync.RWMutex
	seed       int64
	seaLevel   int
	baseHeight int
	amplitude  float64
}

var globalWorldGenSettings = &WorldGenSettings{
	seed:       1,
	seaLevel:   20,
	baseHeight: 24,
	amplitude:  16,
}

// GetSeed returns the terrain seed
func GetSeed() int64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seed
}

// SetSeed sets the terrain seed
func SetSeed(seed int64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seed = seed
}

// GetSeaLevel returns the configured sea level
func GetSeaLevel() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.seaLevel
}

// SetSeaLevel sets the sea level
func SetSeaLevel(level int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.seaLevel = level
}

// GetBaseHeight returns the mean terrain height
func GetBaseHeight() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.baseHeight
}

// SetBaseHeight sets the mean terrain height
func SetBaseHeight(h int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	if h < 1 {
		h = 1
	}
	globalWorldGenSettings.baseHeight = h
}

// GetAmplitude returns the terrain height variation
func GetAmplitude() float64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.amplitude
}

// SetAmplitude sets the terrain height variation
func SetAmplitude(a float64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	if a < 0 {
		a = 0
	}
	globalWorldGenSettings.amplitude = a
}

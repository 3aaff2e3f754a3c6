package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File mirrors the YAML config file. Pointer fields left out of the file
// keep their current setting.
type File struct {
	Mesh struct {
		Workers    *int     `yaml:"workers"`
		QueueSize  *int     `yaml:"queue_size"`
		CubeSize   *float32 `yaml:"cube_size"`
		LogTimings *bool    `yaml:"log_timings"`
	} `yaml:"mesh"`
	WorldGen struct {
		Seed       *int64   `yaml:"seed"`
		SeaLevel   *int     `yaml:"sea_level"`
		BaseHeight *int     `yaml:"base_height"`
		Amplitude  *float64 `yaml:"amplitude"`
	} `yaml:"world_gen"`
}

// Load reads a YAML config file.
func Load(path string) (File, error) {
	var f File
	raw, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return f, fmt.Errorf("%s: %w", path, err)
	}
	if f.Mesh.CubeSize != nil && *f.Mesh.CubeSize <= 0 {
		return f, fmt.Errorf("%s: mesh.cube_size must be positive, got %v", path, *f.Mesh.CubeSize)
	}
	return f, nil
}

// Apply pushes every value present in f through the setters.
func Apply(f File) {
	if f.Mesh.Workers != nil {
		SetMeshWorkers(*f.Mesh.Workers)
	}
	if f.Mesh.QueueSize != nil {
		SetMeshQueueSize(*f.Mesh.QueueSize)
	}
	if f.Mesh.CubeSize != nil {
		SetCubeSize(*f.Mesh.CubeSize)
	}
	if f.Mesh.LogTimings != nil {
		SetLogMeshTimings(*f.Mesh.LogTimings)
	}
	if f.WorldGen.Seed != nil {
		SetSeed(*f.WorldGen.Seed)
	}
	if f.WorldGen.SeaLevel != nil {
		SetSeaLevel(*f.WorldGen.SeaLevel)
	}
	if f.WorldGen.BaseHeight != nil {
		SetBaseHeight(*f.WorldGen.BaseHeight)
	}
	if f.WorldGen.Amplitude != nil {
		SetAmplitude(*f.WorldGen.Amplitude)
	}
}

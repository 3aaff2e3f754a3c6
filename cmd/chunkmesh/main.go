// Command chunkmesh generates or loads a region of chunks, meshes it through
// the worker pool and reports vertex and buffer statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xlab/closer"

	"voxmesh/internal/config"
	"voxmesh/internal/meshing"
	"voxmesh/internal/profiling"
	"voxmesh/internal/registry"
	"voxmesh/internal/world"
)

var (
	configPath  = flag.String("config", "", "YAML config file")
	radius      = flag.Int("radius", 2, "region radius in chunks around the origin")
	seed        = flag.Int64("seed", 0, "terrain seed (0 keeps the configured seed)")
	flatHeight  = flag.Int("flat", 0, "generate a flat floor of this height instead of terrain")
	catalogPath = flag.String("catalog", "", "block catalog YAML (default: embedded)")
	atlasPath   = flag.String("atlas", "", "atlas image used to derive the tile step")
	tileSize    = flag.Int("tile", 16, "atlas tile size in pixels")
	saveDir     = flag.String("save", "", "write encoded chunks to this directory")
	loadDir     = flag.String("load", "", "read encoded chunks from this directory instead of generating")
	verbose     = flag.Bool("v", false, "log per-chunk mesh timings")
)

func main() {
	flag.Parse()
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if err := run(); err != nil {
		log.Printf("chunkmesh: %v", err)
		closer.Exit(1)
	}
	closer.Close()
}

func run() error {
	if *configPath != "" {
		f, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		config.Apply(f)
	}
	if *seed != 0 {
		config.SetSeed(*seed)
	}
	if *verbose {
		config.SetLogMeshTimings(true)
	}

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	uv := reg.UV
	if *atlasPath != "" {
		step, err := atlasStep(*atlasPath, *tileSize)
		if err != nil {
			return err
		}
		uv = uv.WithStep(step)
	}

	store := world.NewChunkStore()
	start := time.Now()
	if *loadDir != "" {
		n, err := loadRegion(store, *loadDir)
		if err != nil {
			return err
		}
		log.Printf("loaded %d chunks from %s in %v", n, *loadDir, time.Since(start))
	} else {
		streamRegion(store, newGenerator(), *radius, config.GetMeshWorkers())
		log.Printf("generated %d chunks in %v", store.Len(), time.Since(start))
	}

	pool := meshing.NewWorkerPool(config.GetMeshWorkers(), config.GetMeshQueueSize(), uv, config.GetCubeSize())
	closer.Bind(pool.Shutdown)

	sched := meshing.NewScheduler(pool, store, config.GetMeshQueueSize())
	start = time.Now()
	if err := sched.Wait(context.Background()); err != nil {
		return fmt.Errorf("meshing: %w", err)
	}
	elapsed := time.Since(start)

	printStats(sched.Meshes(), elapsed, pool.Workers())

	if *saveDir != "" {
		written, err := saveRegion(store, *saveDir)
		if err != nil {
			return err
		}
		fmt.Printf("saved %d chunks to %s (%s)\n", store.Len(), *saveDir, humanize.Bytes(uint64(written)))
	}
	return nil
}

func loadRegistry() (*registry.Registry, error) {
	if *catalogPath == "" {
		return registry.Default(), nil
	}
	return registry.Load(*catalogPath)
}

func atlasStep(path string, tile int) (float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	step, err := registry.StepFromAtlas(f, tile)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return step, nil
}

func newGenerator() world.TerrainGenerator {
	if *flatHeight > 0 {
		return world.NewFlatGenerator(*flatHeight)
	}
	opts := world.DefaultGeneratorOptions(config.GetSeed())
	opts.SeaLevel = config.GetSeaLevel()
	opts.BaseHeight = config.GetBaseHeight()
	opts.Amplitude = config.GetAmplitude()
	return world.NewGenerator(opts)
}

func printStats(meshes map[world.ChunkCoord]*meshing.Mesh, elapsed time.Duration, workers int) {
	var triangles, bytes, empty int
	for _, m := range meshes {
		if m.IsEmpty() {
			empty++
			continue
		}
		triangles += m.TriangleCount()
		bytes += m.SizeBytes()
	}
	counters := profiling.Counters()
	raw := counters["meshing.raw_vertices"]
	indexed := counters["meshing.indexed_vertices"]

	fmt.Printf("meshed %d chunks (%d empty) in %v with %d workers\n", len(meshes), empty, elapsed, workers)
	fmt.Printf("  raw vertices:     %s\n", humanize.Comma(raw))
	fmt.Printf("  indexed vertices: %s", humanize.Comma(indexed))
	if raw > 0 {
		fmt.Printf(" (%.1f%%)", 100*float64(indexed)/float64(raw))
	}
	fmt.Println()
	fmt.Printf("  triangles:        %s\n", humanize.Comma(int64(triangles)))
	fmt.Printf("  buffer size:      %s\n", humanize.Bytes(uint64(bytes)))
	fmt.Printf("  slowest stages:   %s\n", profiling.TopN(4))
}

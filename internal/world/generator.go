package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// TerrainGenerator fills freshly created chunks.
type TerrainGenerator interface {
	HeightAt(worldX, worldZ int) int
	PopulateChunk(c *Chunk)
}

// SeaLeveler is implemented by generators that fill columns with water up
// to a fixed level. Blocks below SeaLevel may be set above the surface.
type SeaLeveler interface {
	SeaLevel() int
}

// GeneratorOptions tunes the heightmap generator.
type GeneratorOptions struct {
	Seed       int64
	BaseHeight int
	Amplitude  float64
	SeaLevel   int
	// SnowLine is the height from which surface blocks turn to snow. Zero disables snow.
	SnowLine int
}

// DefaultGeneratorOptions returns settings producing rolling hills a few chunks tall.
func DefaultGeneratorOptions(seed int64) GeneratorOptions {
	return GeneratorOptions{
		Seed:       seed,
		BaseHeight: 24,
		Amplitude:  16,
		SeaLevel:   20,
		SnowLine:   36,
	}
}

// Generator builds column stacks from a perlin heightmap: stone, then dirt,
// then a grass cap, with water filling columns below sea level.
type Generator struct {
	opts  GeneratorOptions
	noise *perlin.Perlin
	scale float64
}

// NewGenerator creates a heightmap generator.
func NewGenerator(opts GeneratorOptions) *Generator {
	return &Generator{
		opts:  opts,
		noise: perlin.NewPerlin(2, 2, 3, opts.Seed),
		scale: 1.0 / 48.0,
	}
}

// HeightAt computes world surface height (block Y) at world X,Z.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	n := g.noise.Noise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	height := float64(g.opts.BaseHeight) + n*g.opts.Amplitude
	if height < 1 {
		height = 1
	}
	return int(math.Floor(height))
}

// SeaLevel returns the height water fills up to (exclusive).
func (g *Generator) SeaLevel() int {
	return g.opts.SeaLevel
}

// PopulateChunk fills a chunk using the heightmap.
func (g *Generator) PopulateChunk(c *Chunk) {
	baseX := c.Coord.X * ChunkSize
	baseY := c.Coord.Y * ChunkSize
	baseZ := c.Coord.Z * ChunkSize
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			height := g.HeightAt(baseX+lx, baseZ+lz)
			g.buildStack(c, lx, lz, baseY, height)
		}
	}
}

func (g *Generator) buildStack(c *Chunk, lx, lz, baseY, height int) {
	for ly := range ChunkSize {
		wy := baseY + ly
		var t BlockType
		switch {
		case wy < height-4:
			t = BlockTypeStone
		case wy < height-1:
			t = BlockTypeDirt
		case wy == height-1:
			t = g.surfaceAt(height)
		case wy < g.opts.SeaLevel:
			t = BlockTypeWater
		default:
			t = BlockTypeAir
		}
		if t != BlockTypeAir {
			c.SetBlock(lx, ly, lz, t)
		}
	}
}

func (g *Generator) surfaceAt(height int) BlockType {
	switch {
	case height <= g.opts.SeaLevel:
		return BlockTypeSand
	case g.opts.SnowLine > 0 && height >= g.opts.SnowLine:
		return BlockTypeSnow
	default:
		return BlockTypeGrass
	}
}

// FlatGenerator produces a level stone/dirt/grass floor of fixed height.
type FlatGenerator struct {
	height int
}

func NewFlatGenerator(height int) *FlatGenerator {
	return &FlatGenerator{height: height}
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return g.height
}

func (g *FlatGenerator) PopulateChunk(c *Chunk) {
	baseY := c.Coord.Y * ChunkSize
	for lx := range ChunkSize {
		for lz := range ChunkSize {
			for ly := range ChunkSize {
				wy := baseY + ly
				switch {
				case wy < g.height-3:
					c.SetBlock(lx, ly, lz, BlockTypeStone)
				case wy < g.height:
					c.SetBlock(lx, ly, lz, BlockTypeDirt)
				case wy == g.height:
					c.SetBlock(lx, ly, lz, BlockTypeGrass)
				}
			}
		}
	}
}

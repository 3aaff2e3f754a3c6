package registry

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/go-gl/mathgl/mgl32"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"voxmesh/internal/world"
)

// UVTable maps (texture bucket, face) to the atlas origin of the tile, in
// UV units. Buckets without a registered block map to the origin tile.
type UVTable struct {
	tiles   [][world.NumFaces]Tile
	origins [][world.NumFaces]mgl32.Vec2
	step    float32
}

func newUVTable(defs []*BlockDefinition, step float32) *UVTable {
	n := 0
	for _, d := range defs {
		n = max(n, d.ID.Bucket()+1)
	}
	t := &UVTable{tiles: make([][world.NumFaces]Tile, n)}
	for _, d := range defs {
		t.tiles[d.ID.Bucket()] = d.Tiles
	}
	t.scale(step)
	return t
}

func (t *UVTable) scale(step float32) {
	t.step = step
	t.origins = make([][world.NumFaces]mgl32.Vec2, len(t.tiles))
	for b, faces := range t.tiles {
		for f, tile := range faces {
			t.origins[b][f] = mgl32.Vec2{float32(tile[0]) * step, float32(tile[1]) * step}
		}
	}
}

// Origin returns the UV origin of the tile used by a bucket's face.
func (t *UVTable) Origin(bucket int, face world.BlockFace) mgl32.Vec2 {
	if bucket < 0 || bucket >= len(t.origins) {
		return mgl32.Vec2{}
	}
	return t.origins[bucket][face]
}

// Step returns the UV extent of one tile.
func (t *UVTable) Step() float32 {
	return t.step
}

// Buckets returns the number of texture buckets covered by the table.
func (t *UVTable) Buckets() int {
	return len(t.origins)
}

// WithStep returns a copy of the table scaled to a different tile step.
func (t *UVTable) WithStep(step float32) *UVTable {
	c := &UVTable{tiles: t.tiles}
	c.scale(step)
	return c
}

// StepFromAtlas derives the tile step from an atlas image header. The atlas
// must be square and a whole number of tiles wide.
func StepFromAtlas(r io.Reader, tileSize int) (float32, error) {
	if tileSize <= 0 {
		return 0, fmt.Errorf("tile size must be positive, got %d", tileSize)
	}
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return 0, fmt.Errorf("failed to read atlas header: %w", err)
	}
	if cfg.Width != cfg.Height {
		return 0, fmt.Errorf("%s atlas is %dx%d, want a square image", format, cfg.Width, cfg.Height)
	}
	if cfg.Width%tileSize != 0 {
		return 0, fmt.Errorf("%s atlas width %d is not a multiple of tile size %d", format, cfg.Width, tileSize)
	}
	return float32(tileSize) / float32(cfg.Width), nil
}

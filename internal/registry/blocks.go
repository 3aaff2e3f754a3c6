package registry

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"voxmesh/internal/world"
)

//go:embed blocks.yaml
var defaultCatalog []byte

// Tile is a [column, row] cell of the texture atlas.
type Tile [2]int

// BlockDefinition describes how one block type is textured.
type BlockDefinition struct {
	ID    world.BlockType
	Name  string
	Tiles [world.NumFaces]Tile
}

// Registry is a parsed block catalog.
type Registry struct {
	Blocks map[world.BlockType]*BlockDefinition
	Names  map[string]world.BlockType
	UV     *UVTable
}

type blockEntry struct {
	Name   string `yaml:"name"`
	ID     int    `yaml:"id"`
	Tile   *Tile  `yaml:"tile"`
	Top    *Tile  `yaml:"top"`
	Bottom *Tile  `yaml:"bottom"`
	Side   *Tile  `yaml:"side"`
}

type catalogFile struct {
	TilesPerRow int          `yaml:"tiles_per_row"`
	Blocks      []blockEntry `yaml:"blocks"`
}

// Default returns the registry built from the embedded catalog.
func Default() *Registry {
	r, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded blocks.yaml: %v", err))
	}
	return r
}

// Load reads a catalog from disk.
func Load(path string) (*Registry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	r, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse builds a registry from catalog YAML.
func Parse(data []byte) (*Registry, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("blocks.yaml: %w", err)
	}
	if cf.TilesPerRow <= 0 {
		return nil, fmt.Errorf("tiles_per_row must be positive, got %d", cf.TilesPerRow)
	}

	r := &Registry{
		Blocks: make(map[world.BlockType]*BlockDefinition, len(cf.Blocks)),
		Names:  make(map[string]world.BlockType, len(cf.Blocks)),
	}
	for _, e := range cf.Blocks {
		def, err := e.definition(cf.TilesPerRow)
		if err != nil {
			return nil, err
		}
		if _, dup := r.Blocks[def.ID]; dup {
			return nil, fmt.Errorf("block %q: id %d registered twice", e.Name, e.ID)
		}
		if _, dup := r.Names[def.Name]; dup {
			return nil, fmt.Errorf("block name %q registered twice", def.Name)
		}
		r.Blocks[def.ID] = def
		r.Names[def.Name] = def.ID
	}
	r.UV = newUVTable(r.sorted(), 1/float32(cf.TilesPerRow))
	return r, nil
}

func (e blockEntry) definition(tilesPerRow int) (*BlockDefinition, error) {
	if e.Name == "" {
		return nil, fmt.Errorf("block id %d: missing name", e.ID)
	}
	if e.ID <= 0 || e.ID > 255 || e.ID%2 != 0 {
		return nil, fmt.Errorf("block %q: id %d must be an even value in 2..254", e.Name, e.ID)
	}
	def := &BlockDefinition{ID: world.BlockType(e.ID), Name: e.Name}

	set := func(t *Tile, faces ...world.BlockFace) {
		if t == nil {
			return
		}
		for _, f := range faces {
			def.Tiles[f] = *t
		}
	}
	if e.Tile == nil && (e.Top == nil || e.Bottom == nil || e.Side == nil) {
		return nil, fmt.Errorf("block %q: needs tile or all of top, bottom and side", e.Name)
	}
	set(e.Tile, world.FaceWest, world.FaceTop, world.FaceEast, world.FaceBottom, world.FaceNorth, world.FaceSouth)
	set(e.Side, world.FaceWest, world.FaceEast, world.FaceNorth, world.FaceSouth)
	set(e.Top, world.FaceTop)
	set(e.Bottom, world.FaceBottom)

	for f, t := range def.Tiles {
		if t[0] < 0 || t[0] >= tilesPerRow || t[1] < 0 || t[1] >= tilesPerRow {
			return nil, fmt.Errorf("block %q: %v tile %v outside %dx%d atlas",
				e.Name, world.BlockFace(f), t, tilesPerRow, tilesPerRow)
		}
	}
	return def, nil
}

func (r *Registry) sorted() []*BlockDefinition {
	defs := make([]*BlockDefinition, 0, len(r.Blocks))
	for _, d := range r.Blocks {
		defs = append(defs, d)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	return defs
}

// Lookup returns the definition of a block type or of the full block a slab
// belongs to.
func (r *Registry) Lookup(t world.BlockType) (*BlockDefinition, bool) {
	def, ok := r.Blocks[t&^1]
	return def, ok
}

package world

import (
	"github.com/go-gl/mathgl/mgl32"
)

// BlockType identifies what a voxel is made of. The low bit marks the
// partial-height (slab) variant of a block, so t>>1 is the texture bucket
// shared by a full block and its slab.
type BlockType uint8

const (
	BlockTypeAir       BlockType = 0
	BlockTypeDirt      BlockType = 2
	BlockTypeDirtSlab  BlockType = 3
	BlockTypeGrass     BlockType = 4
	BlockTypeGrassSlab BlockType = 5
	BlockTypeStone     BlockType = 6
	BlockTypeStoneSlab BlockType = 7
	BlockTypeSand      BlockType = 8
	BlockTypeSandSlab  BlockType = 9
	BlockTypeWater     BlockType = 10
	BlockTypeGlass     BlockType = 12
	BlockTypeSnow      BlockType = 14
)

// Bucket returns the texture bucket of the type.
func (t BlockType) Bucket() int {
	return int(t >> 1)
}

// IsPartialHeight reports whether the type is a non-full-cube variant.
func (t BlockType) IsPartialHeight() bool {
	return t&1 == 1
}

// IsTransparent reports whether faces behind this type stay visible.
func (t BlockType) IsTransparent() bool {
	switch t {
	case BlockTypeWater, BlockTypeGlass:
		return true
	default:
		return false
	}
}

// Slab returns the partial-height variant of a full block type.
func (t BlockType) Slab() BlockType {
	if t == BlockTypeAir {
		return t
	}
	return t | 1
}

// BlockFace identifies a face of a block. The numbering is part of the
// mesh layout: face tables in the mesher and the UV catalog are indexed by it.
type BlockFace int

const (
	FaceWest   BlockFace = iota // -X
	FaceTop                     // +Y
	FaceEast                    // +X
	FaceBottom                  // -Y
	FaceNorth                   // +Z
	FaceSouth                   // -Z

	NumFaces = 6
)

var faceOffsets = [NumFaces][3]int{
	FaceWest:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceEast:   {1, 0, 0},
	FaceBottom: {0, -1, 0},
	FaceNorth:  {0, 0, 1},
	FaceSouth:  {0, 0, -1},
}

var faceNames = [NumFaces]string{"west", "top", "east", "bottom", "north", "south"}

// Offset returns the unit step from a cell to the cell behind this face.
func (f BlockFace) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// Normal returns the outward unit normal of the face.
func (f BlockFace) Normal() mgl32.Vec3 {
	o := faceOffsets[f]
	return mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
}

// Opposite returns the face pointing the other way.
func (f BlockFace) Opposite() BlockFace {
	switch f {
	case FaceWest:
		return FaceEast
	case FaceEast:
		return FaceWest
	case FaceTop:
		return FaceBottom
	case FaceBottom:
		return FaceTop
	case FaceNorth:
		return FaceSouth
	default:
		return FaceNorth
	}
}

func (f BlockFace) String() string {
	if f < 0 || f >= NumFaces {
		return "invalid"
	}
	return faceNames[f]
}

// ParseBlockFace maps a face name as written in catalogs to a BlockFace.
func ParseBlockFace(name string) (BlockFace, bool) {
	for i, n := range faceNames {
		if n == name {
			return BlockFace(i), true
		}
	}
	return 0, false
}

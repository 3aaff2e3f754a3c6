package world

// Voxel is a single grid cell.
type Voxel struct {
	Type BlockType
	// Hidden voxels keep their type and still occlude neighbours, but emit
	// no faces of their own.
	Hidden bool
}

// IsSolid reports whether the cell holds anything but air.
func (v Voxel) IsSolid() bool {
	return v.Type != BlockTypeAir
}

// IsVisible reports whether the cell emits faces.
func (v Voxel) IsVisible() bool {
	return !v.Hidden
}

// IsTransparent reports whether faces behind the cell stay visible.
func (v Voxel) IsTransparent() bool {
	return v.Type.IsTransparent()
}

// IsPartialHeight reports whether the cell is shorter than a full cube.
func (v Voxel) IsPartialHeight() bool {
	return v.Type.IsPartialHeight()
}

// Occludes reports whether the cell fully covers the face of an adjacent
// cell: solid, opaque and full height. Visibility plays no part.
func (v Voxel) Occludes() bool {
	return v.Type != BlockTypeAir && !v.Type.IsTransparent() && !v.Type.IsPartialHeight()
}

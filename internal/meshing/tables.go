package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"voxmesh/internal/world"
)

// VerticesPerFace is the number of raw vertices emitted per visible face
// (two triangles, no sharing).
const VerticesPerFace = 6

// faceTemplates holds the unit-cube corners (±1) of each face's two triangles,
// indexed by world.BlockFace. Corners c0..c3 run counter-clockwise seen from
// outside the cube and are emitted as c0,c1,c2 then c0,c2,c3, so triangles
// are front-facing under the default CCW convention.
var faceTemplates = [world.NumFaces][VerticesPerFace]mgl32.Vec3{
	world.FaceWest: {
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1},
		{-1, -1, -1}, {-1, 1, 1}, {-1, 1, -1},
	},
	world.FaceTop: {
		{-1, 1, 1}, {1, 1, 1}, {1, 1, -1},
		{-1, 1, 1}, {1, 1, -1}, {-1, 1, -1},
	},
	world.FaceEast: {
		{1, -1, 1}, {1, -1, -1}, {1, 1, -1},
		{1, -1, 1}, {1, 1, -1}, {1, 1, 1},
	},
	world.FaceBottom: {
		{-1, -1, -1}, {1, -1, -1}, {1, -1, 1},
		{-1, -1, -1}, {1, -1, 1}, {-1, -1, 1},
	},
	world.FaceNorth: {
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1},
		{-1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	},
	world.FaceSouth: {
		{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1},
		{1, -1, -1}, {-1, 1, -1}, {1, 1, -1},
	},
}

// faceUVCorners is the tile corner of each template vertex, in tile units:
// c0=(0,0) c1=(1,0) c2=(1,1) c3=(0,1). Shared by all faces.
var faceUVCorners = [VerticesPerFace]mgl32.Vec2{
	{0, 0}, {1, 0}, {1, 1},
	{0, 0}, {1, 1}, {0, 1},
}

var faceNormals = [world.NumFaces]mgl32.Vec3{
	world.FaceWest:   {-1, 0, 0},
	world.FaceTop:    {0, 1, 0},
	world.FaceEast:   {1, 0, 0},
	world.FaceBottom: {0, -1, 0},
	world.FaceNorth:  {0, 0, 1},
	world.FaceSouth:  {0, 0, -1},
}

// boundaryOccluders decides, per face, whether the mirrored cell of the
// neighbour chunk hides a boundary face. Each direction is kept as its own
// entry so a direction can diverge without touching the others; today all
// six use the same rule as intra-chunk culling.
var boundaryOccluders = [world.NumFaces]func(neighbor world.Voxel) bool{
	world.FaceWest:   world.Voxel.Occludes,
	world.FaceTop:    world.Voxel.Occludes,
	world.FaceEast:   world.Voxel.Occludes,
	world.FaceBottom: world.Voxel.Occludes,
	world.FaceNorth:  world.Voxel.Occludes,
	world.FaceSouth:  world.Voxel.Occludes,
}

// faceSteps are the local cell offsets behind each face.
var faceSteps = func() (s [world.NumFaces][3]int) {
	for f := range world.BlockFace(world.NumFaces) {
		s[f][0], s[f][1], s[f][2] = f.Offset()
	}
	return s
}()

package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 matrix in column-major order, typically used to
// represent object transformations.
type Mat4 struct {
	Data [16]float32
}

// Extents3D represents the extents of a 3d object.
type Extents3D struct {
	Min Vec3
	Max Vec3
}

// Rect2i is an integer rectangle, used for viewports, scissor regions
// and window client areas.
type Rect2i struct {
	X, Y          int32
	Width, Height int32
}

// Color4f is an RGBA color with float components.
type Color4f struct {
	R, G, B, A float32
}

// Package geom provides the 2D rotation and bounding-box helpers used to
// anchor rotated sprites.
//
// Angles are in degrees and rotate counter-clockwise in image space. Image
// space has +Y pointing up, so callers flip the sign of Y when moving between
// image and screen coordinates.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Vec is a 2D vector.
type Vec = r2.Vec

// Rect is an integer axis-aligned rectangle in world pixels.
type Rect struct {
	X, Y int
	W, H int
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rotate rotates p about the origin by deg degrees.
func Rotate(p Vec, deg float64) Vec {
	return r2.Rotate(p, Radians(deg), Vec{})
}

// RotatedBoundingBox rotates the corners of a w×h rectangle whose top-left
// corner sits at the origin (corners (0,0), (w,0), (w,-h), (0,-h)) and returns
// the component-wise minimum and maximum.
func RotatedBoundingBox(w, h, deg float64) (lo, hi Vec) {
	rot := r2.NewRotation(Radians(deg), Vec{})
	corners := [4]Vec{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: -h}, {X: 0, Y: -h}}

	lo = rot.Rotate(corners[0])
	hi = lo
	for _, c := range corners[1:] {
		p := rot.Rotate(c)
		lo.X = math.Min(lo.X, p.X)
		lo.Y = math.Min(lo.Y, p.Y)
		hi.X = math.Max(hi.X, p.X)
		hi.Y = math.Max(hi.Y, p.Y)
	}
	return lo, hi
}

// RotatedSize returns the size of the axis-aligned box enclosing a w×h
// rectangle rotated by deg degrees.
func RotatedSize(w, h, deg float64) Vec {
	lo, hi := RotatedBoundingBox(w, h, deg)
	return r2.Sub(hi, lo)
}

// RotatedOrigin returns the top-left anchor of a w×h sprite rotated by deg
// degrees about its center, for a sprite whose unrotated rect corner is at
// (x, y).
//
// The pivot correction term accounts for rotating about the image center
// rather than the origin; its sign conventions mix image space (min.X, max.Y)
// and screen space and must stay as written.
func RotatedOrigin(x, y, w, h, deg float64) Vec {
	lo, hi := RotatedBoundingBox(w, h, deg)

	pivot := Vec{X: w / 2, Y: -h / 2}
	move := r2.Sub(Rotate(pivot, deg), pivot)

	return Vec{
		X: x - w/2 + lo.X - move.X,
		Y: y - h/2 - hi.Y + move.Y,
	}
}

// Overlaps reports whether two rects overlap. Rects that only share an edge
// do not overlap, and empty rects never overlap anything.
func Overlaps(a, b Rect) bool {
	if a.W <= 0 || a.H <= 0 || b.W <= 0 || b.H <= 0 {
		return false
	}
	return a.X < b.X+b.W && b.X < a.X+a.W &&
		a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

// Truncate converts a float position to integer pixels, dropping the
// fractional part toward zero.
func Truncate(p Vec) (x, y int) {
	return int(p.X), int(p.Y)
}

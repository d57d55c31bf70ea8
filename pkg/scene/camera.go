package scene

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// parallelEps guards the ray–plane division: rays with |dir.Z| below this
// are treated as parallel to the drag plane and produce no intersection.
const parallelEps = 1e-9

// cellAspect compensates for terminal cells being roughly twice as tall as
// they are wide, so circles in world space stay circular on screen.
const cellAspect = 2.0

// Camera is a perspective camera orbiting the origin. Yaw and Pitch are the
// spherical orbit angles in radians; Distance is the orbit radius. Orbit is
// keyboard/wheel driven and force-disabled while a drag is active (the
// Locked flag, owned by the interaction controller's drag callbacks).
type Camera struct {
	Yaw      float64
	Pitch    float64
	Distance float64
	FOV      float64 // vertical field of view, radians

	Width  int // viewport width in cells
	Height int // viewport height in cells

	Locked bool // true while a drag suspends orbit controls
}

// NewCamera returns a camera at a readable default orbit.
func NewCamera() *Camera {
	return &Camera{
		Yaw:      0,
		Pitch:    0.45,
		Distance: 30,
		FOV:      math.Pi / 3,
	}
}

// SetViewport updates the screen size the camera projects into.
func (c *Camera) SetViewport(width, height int) {
	c.Width = width
	c.Height = height
}

// Orbit adjusts the orbit angles. No-op while Locked. Pitch is clamped just
// short of the poles to keep the view basis well-defined.
func (c *Camera) Orbit(dyaw, dpitch float64) {
	if c.Locked {
		return
	}
	c.Yaw += dyaw
	c.Pitch += dpitch
	const lim = math.Pi/2 - 0.05
	if c.Pitch > lim {
		c.Pitch = lim
	}
	if c.Pitch < -lim {
		c.Pitch = -lim
	}
}

// Zoom scales the orbit distance. No-op while Locked.
func (c *Camera) Zoom(factor float64) {
	if c.Locked {
		return
	}
	c.Distance *= factor
	if c.Distance < 5 {
		c.Distance = 5
	}
	if c.Distance > 120 {
		c.Distance = 120
	}
}

// Position returns the camera's world position on its orbit sphere.
func (c *Camera) Position() r3.Vec {
	cp := math.Cos(c.Pitch)
	return r3.Vec{
		X: c.Distance * cp * math.Sin(c.Yaw),
		Y: c.Distance * math.Sin(c.Pitch),
		Z: c.Distance * cp * math.Cos(c.Yaw),
	}
}

// basis returns the right/up/forward view vectors. Forward points from the
// camera toward the origin.
func (c *Camera) basis() (right, up, forward r3.Vec) {
	pos := c.Position()
	forward = r3.Unit(r3.Scale(-1, pos))
	worldUp := r3.Vec{Y: 1}
	right = r3.Unit(r3.Cross(forward, worldUp))
	up = r3.Cross(right, forward)
	return right, up, forward
}

// focal returns the projection focal length in cells.
func (c *Camera) focal() float64 {
	return float64(c.Height) / 2 / math.Tan(c.FOV/2)
}

// Project maps a world point to screen cell coordinates plus its view depth.
// ok is false for points at or behind the camera plane.
func (c *Camera) Project(w r3.Vec) (sx, sy, depth float64, ok bool) {
	right, up, forward := c.basis()
	v := r3.Sub(w, c.Position())
	z := r3.Dot(v, forward)
	if z < 0.1 {
		return 0, 0, 0, false
	}
	f := c.focal()
	x := r3.Dot(v, right) * f / z
	y := r3.Dot(v, up) * f / z
	sx = float64(c.Width)/2 + x*cellAspect
	sy = float64(c.Height)/2 - y
	return sx, sy, z, true
}

// ScreenToWorldOnPlane unprojects a screen cell coordinate onto the Z=0
// world plane by intersecting the camera ray with it. ok is false when the
// ray is parallel to the plane; the caller skips that frame's update.
func (c *Camera) ScreenToWorldOnPlane(sx, sy float64) (r3.Vec, bool) {
	right, up, forward := c.basis()
	f := c.focal()
	dir := r3.Add(
		r3.Scale(f, forward),
		r3.Add(
			r3.Scale((sx-float64(c.Width)/2)/cellAspect, right),
			r3.Scale(float64(c.Height)/2-sy, up),
		),
	)
	dir = r3.Unit(dir)
	if math.Abs(dir.Z) < parallelEps {
		return r3.Vec{}, false
	}
	origin := c.Position()
	t := -origin.Z / dir.Z
	if t < 0 {
		return r3.Vec{}, false
	}
	hit := r3.Add(origin, r3.Scale(t, dir))
	hit.Z = 0 // kill float residue; drags stay in the plane
	return hit, true
}

// HitTest returns the id of the front-most node whose projected center lies
// within radius cells of the pointer, or "" when nothing is hit.
func (c *Camera) HitTest(store *PositionStore, sx, sy, radius float64) string {
	best := ""
	bestDepth := math.Inf(1)
	store.Each(func(id string, w r3.Vec) {
		px, py, depth, ok := c.Project(w)
		if !ok {
			return
		}
		dx := px - sx
		dy := py - sy
		if math.Hypot(dx, dy) > radius {
			return
		}
		if depth < bestDepth {
			bestDepth = depth
			best = id
		}
	})
	return best
}

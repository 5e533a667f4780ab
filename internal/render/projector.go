// Package render turns a match snapshot into flat 2D primitives. It knows
// nothing about the window library; front ends only stroke lines and fill
// circles.
package render

import (
	"math"

	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

const (
	// DefaultFOV is the vertical field of view in degrees.
	DefaultFOV = 60.0
	nearPlane  = 0.05
)

// Projector maps world points onto a width×height screen for one camera.
type Projector struct {
	view   geom.Mat4
	focal  float64 // pixels per unit at depth 1
	cx, cy float64
}

// NewProjector builds a perspective projection looking from cam.Position
// toward cam.LookAt with +Y up.
func NewProjector(cam game.Camera, width, height int, fovY float64) Projector {
	target := cam.LookAt
	if geom.Distance3D(cam.Position, target) < 1e-9 {
		target = cam.Position.Add(geom.UnitZ)
	}
	return Projector{
		view:  geom.LookAt(cam.Position, target, geom.UnitY),
		focal: float64(height) * 0.5 / math.Tan(geom.Rad(fovY)*0.5),
		cx:    float64(width) * 0.5,
		cy:    float64(height) * 0.5,
	}
}

// ToView returns pt in camera space; visible points have negative Z.
func (p Projector) ToView(pt geom.Vec3) geom.Vec3 {
	return p.view.MulPoint(pt)
}

func (p Projector) screen(v geom.Vec3) (x, y float64) {
	d := -v.Z
	return p.cx + v.X/d*p.focal, p.cy - v.Y/d*p.focal
}

// Project returns the screen position and depth of pt. ok is false for
// points behind the near plane.
func (p Projector) Project(pt geom.Vec3) (x, y, depth float64, ok bool) {
	v := p.ToView(pt)
	if -v.Z < nearPlane {
		return 0, 0, 0, false
	}
	x, y = p.screen(v)
	return x, y, -v.Z, true
}

// Segment projects the line a–b, clipping it against the near plane. depth
// is the distance of the segment midpoint.
func (p Projector) Segment(a, b geom.Vec3) (x0, y0, x1, y1, depth float64, ok bool) {
	va, vb := p.ToView(a), p.ToView(b)
	da, db := -va.Z, -vb.Z
	if da < nearPlane && db < nearPlane {
		return 0, 0, 0, 0, 0, false
	}
	if da < nearPlane {
		va = geom.LerpVec(va, vb, (nearPlane-da)/(db-da))
	} else if db < nearPlane {
		vb = geom.LerpVec(vb, va, (nearPlane-db)/(da-db))
	}
	x0, y0 = p.screen(va)
	x1, y1 = p.screen(vb)
	return x0, y0, x1, y1, -(va.Z + vb.Z) * 0.5, true
}

// Radius converts a world-space radius at the given depth to pixels.
func (p Projector) Radius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r * p.focal / depth
}

package render

import (
	"image/color"
	"math"
	"sort"

	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// PrimitiveKind tags a Primitive.
type PrimitiveKind uint8

const (
	PrimLine PrimitiveKind = iota
	PrimDot
)

// Primitive is one screen-space shape. Lines use all four coordinates,
// dots use X0, Y0 and Radius.
type Primitive struct {
	Kind           PrimitiveKind
	X0, Y0, X1, Y1 float32
	Radius         float32
	Depth          float64
	Colour         color.RGBA
	Node           string
}

// Frame is everything a front end draws for one snapshot.
type Frame struct {
	Primitives []Primitive // far to near
}

// lighting reduces the scene lights to an ambient term and a single
// direction toward the directional light.
type lighting struct {
	ambient     float64
	directional float64
	dir         geom.Vec3
}

func newLighting(lights []game.Light) lighting {
	var l lighting
	for _, lt := range lights {
		switch lt.Kind {
		case game.LightAmbient:
			l.ambient += lt.Intensity
		case game.LightDirectional:
			l.directional += lt.Intensity
			l.dir = lt.Position.Normalize()
		}
	}
	if len(lights) == 0 {
		l.ambient = 1
	}
	return l
}

// brightness lights a surface whose outward direction is n.
func (l lighting) brightness(n geom.Vec3) float64 {
	d := n.Normalize().Dot(l.dir)
	return l.ambient*0.6 + l.directional*math.Max(d, 0)*0.8 + 0.2
}

// Collect projects every visible model in ctx.Scene.
func Collect(ctx game.MatchContext, width, height int) Frame {
	proj := NewProjector(ctx.Camera, width, height, DefaultFOV)
	light := newLighting(ctx.Lights)

	var prims []Primitive
	game.Walk(ctx.Scene, func(n *game.Node, world geom.Mat4) {
		if n.Kind != game.NodeModel {
			return
		}
		mesh, ok := MeshFor(n.Model.Geometry.Name)
		if !ok {
			return
		}
		base := Colour(n.Model.Texture.Name)
		centre := world.MulPoint(geom.Zero)

		if mesh.Radius > 0 {
			x, y, depth, ok := proj.Project(centre)
			if !ok {
				return
			}
			scale := world.MulPoint(geom.UnitX).Sub(centre).Len()
			r := proj.Radius(mesh.Radius*scale, depth)
			c := base
			if n.Model.Lighting {
				c = Shade(base, light.brightness(geom.UnitY))
			}
			prims = append(prims, Primitive{
				Kind: PrimDot, X0: float32(x), Y0: float32(y),
				Radius: float32(math.Max(r, 1)), Depth: depth, Colour: c, Node: n.Name,
			})
			return
		}

		pts := make([]geom.Vec3, len(mesh.Points))
		for i, p := range mesh.Points {
			pts[i] = world.MulPoint(p)
		}
		for _, e := range mesh.Edges {
			a, b := pts[e[0]], pts[e[1]]
			x0, y0, x1, y1, depth, ok := proj.Segment(a, b)
			if !ok {
				continue
			}
			c := base
			if n.Model.Lighting {
				mid := a.Add(b).Scale(0.5)
				c = Shade(base, light.brightness(mid.Sub(centre)))
			}
			prims = append(prims, Primitive{
				Kind: PrimLine, X0: float32(x0), Y0: float32(y0), X1: float32(x1), Y1: float32(y1),
				Depth: depth, Colour: c, Node: n.Name,
			})
		}
	})

	sort.SliceStable(prims, func(i, j int) bool { return prims[i].Depth > prims[j].Depth })
	return Frame{Primitives: prims}
}

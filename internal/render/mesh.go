package render

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Gorillas-3D/internal/game"
	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// Mesh is the wireframe stand-in for a geometry asset. A mesh with Radius
// set draws as a filled dot instead of edges.
type Mesh struct {
	Points []geom.Vec3
	Edges  [][2]int
	Radius float64
}

func box(lo, hi geom.Vec3) Mesh {
	pts := make([]geom.Vec3, 0, 8)
	for i := 0; i < 8; i++ {
		p := lo
		if i&1 != 0 {
			p.X = hi.X
		}
		if i&2 != 0 {
			p.Y = hi.Y
		}
		if i&4 != 0 {
			p.Z = hi.Z
		}
		pts = append(pts, p)
	}
	var edges [][2]int
	for i := 0; i < 8; i++ {
		for _, bit := range []int{1, 2, 4} {
			if i&bit == 0 {
				edges = append(edges, [2]int{i, i | bit})
			}
		}
	}
	return Mesh{Points: pts, Edges: edges}
}

func merge(ms ...Mesh) Mesh {
	var out Mesh
	for _, m := range ms {
		base := len(out.Points)
		out.Points = append(out.Points, m.Points...)
		for _, e := range m.Edges {
			out.Edges = append(out.Edges, [2]int{e[0] + base, e[1] + base})
		}
	}
	return out
}

var meshes = map[string]Mesh{
	game.GeomBuilding: box(geom.V(-0.5, -0.5, -0.5), geom.V(0.5, 0.5, 0.5)),
	game.GeomQuad: {
		Points: []geom.Vec3{{X: -0.5, Z: -0.5}, {X: 0.5, Z: -0.5}, {X: 0.5, Z: 0.5}, {X: -0.5, Z: 0.5}},
		Edges:  [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	},
	game.GeomGorilla: merge(
		box(geom.V(-0.25, 0, -0.15), geom.V(0.25, 0.45, 0.15)),    // body
		box(geom.V(-0.12, 0.45, -0.12), geom.V(0.12, 0.65, 0.12)), // head
		box(geom.V(-0.4, 0.1, -0.08), geom.V(-0.25, 0.45, 0.08)),  // left arm
		box(geom.V(0.25, 0.1, -0.08), geom.V(0.4, 0.45, 0.08)),    // right arm
	),
	game.GeomBanana:   {Radius: 0.5},
	game.GeomParticle: {Radius: 0.1},
}

// MeshFor returns the wireframe for a geometry name. The skybox and unknown
// geometry have none.
func MeshFor(name string) (Mesh, bool) {
	m, ok := meshes[name]
	return m, ok
}

var skinColours = []color.RGBA{
	{R: 0xa8, G: 0x3a, B: 0x32, A: 0xff},
	{R: 0x3a, G: 0x6e, B: 0xa8, A: 0xff},
	{R: 0x8c, G: 0x8c, B: 0x8c, A: 0xff},
	{R: 0x5e, G: 0xa8, B: 0x6a, A: 0xff},
	{R: 0xc9, G: 0xa2, B: 0x3f, A: 0xff},
	{R: 0x7a, G: 0x4f, B: 0xa8, A: 0xff},
}

var textureColours = map[string]color.RGBA{
	game.TexGroundEmpty:     {R: 0x3c, G: 0x46, B: 0x3c, A: 0xff},
	game.TexGroundCorner:    {R: 0x55, G: 0x55, B: 0x5a, A: 0xff},
	game.TexGroundJunction:  {R: 0x55, G: 0x55, B: 0x5a, A: 0xff},
	game.TexGroundJunctionT: {R: 0x55, G: 0x55, B: 0x5a, A: 0xff},
	game.TexGroundStreet:    {R: 0x55, G: 0x55, B: 0x5a, A: 0xff},
	game.TexGorilla:         {R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff},
	game.TexYellow:          {R: 0xff, G: 0xe0, B: 0x30, A: 0xff},
	game.TexRed:             {R: 0xe8, G: 0x30, B: 0x20, A: 0xff},
}

// Colour returns the flat colour standing in for a texture.
func Colour(texture string) color.RGBA {
	if c, ok := textureColours[texture]; ok {
		return c
	}
	var skin int
	if _, err := fmt.Sscanf(texture, "Building%d.png", &skin); err == nil && skin >= 0 {
		return skinColours[skin%len(skinColours)]
	}
	return color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}
}

// Shade scales c by brightness in [0,1], keeping alpha.
func Shade(c color.RGBA, brightness float64) color.RGBA {
	b := geom.Clamp01(brightness)
	return color.RGBA{
		R: uint8(float64(c.R) * b),
		G: uint8(float64(c.G) * b),
		B: uint8(float64(c.B) * b),
		A: c.A,
	}
}

package game

import (
	"math"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// Particle is one fragment of an explosion.
type Particle struct {
	Direction geom.Vec3
	Speed     float64
	Scale     float64
	Node      *Node
}

// Explosion is the particle burst shown at the impact point. The particle
// nodes are created once and reused by every burst.
type Explosion struct {
	Node      *Node
	Particles []Particle
	Ground    bool
}

// newExplosion builds the particle nodes, alternating the two textures.
func newExplosion(count int, geometry, texA, texB AssetHandle) *Explosion {
	e := &Explosion{Node: NewGroup("Explosion")}
	e.Node.Visible = false
	e.Particles = make([]Particle, count)
	for i := range e.Particles {
		tex := texA
		if i%2 != 0 {
			tex = texB
		}
		n := NewModel("Particle", Model{Geometry: geometry, Texture: tex, Lighting: true})
		e.Particles[i].Node = n
		e.Node.AddChild(n)
	}
	return e
}

// Start scatters the particles from origin. A ground burst sprays upward
// in a cone; anything else sprays in every direction.
func (e *Explosion) Start(rng RNG, origin geom.Vec3, ground bool, tn ExplosionTuning) {
	minPitch, maxPitch := 0.0, 360.0
	if ground {
		minPitch, maxPitch = -45, 45
	}
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Direction = geom.RotateVector(geom.UnitY,
			randFloat(rng, minPitch, maxPitch),
			randFloat(rng, 0, 360),
			0)
		p.Speed = randFloat(rng, tn.MinSpeed, tn.MaxSpeed)
		p.Scale = randFloat(rng, tn.MinScale, tn.MaxScale)
		p.Node.Transform.Translation = geom.Zero
		p.Node.Transform.Scale = geom.One.Scale(p.Scale)
	}
	e.Ground = ground
	e.Node.Transform.Translation = origin
	e.Node.Visible = true
}

// Update moves the particles to animation time u in [0,1]. The burst is
// hidden once u reaches 1.
func (e *Explosion) Update(u float64) {
	if u >= 1 {
		e.Node.Visible = false
		return
	}
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Node.Transform.Translation = p.Direction.Scale(p.Speed * u)
		s := math.Max(p.Scale*(1-u), 0.05)
		p.Node.Transform.Scale = geom.Vec3{X: s, Y: s, Z: s}
	}
}

package game

import (
	"fmt"
	"image/color"

	"github.com/Garsondee/Gorillas-3D/internal/geom"
)

// assetSet holds every handle the scene needs, resolved once by Load.
type assetSet struct {
	building, quad, gorilla, banana, particle, cubemap AssetHandle

	groundEmpty, groundCorner, groundStreet AssetHandle
	groundJunction, groundJunctionT         AssetHandle
	gorillaSkin, yellow, red, skyboxTex     AssetHandle
	buildingSkins                           []AssetHandle
}

// assetLoader keeps the first lookup error so a batch of lookups can be
// checked once at the end.
type assetLoader struct {
	cat AssetCatalog
	err error
}

func (l *assetLoader) geometry(name string) AssetHandle {
	if l.err != nil {
		return AssetHandle{}
	}
	h, err := l.cat.Geometry(name)
	l.err = err
	return h
}

func (l *assetLoader) texture(name string) AssetHandle {
	if l.err != nil {
		return AssetHandle{}
	}
	h, err := l.cat.Texture(name)
	l.err = err
	return h
}

// Load resolves all content and builds the persistent part of the scene:
// skybox, gorillas, banana and the explosion. It is a no-op once it has
// succeeded.
func (g *Game) Load() error {
	if g.loaded {
		return nil
	}
	l := &assetLoader{cat: g.assets}
	a := assetSet{
		building:        l.geometry(GeomBuilding),
		quad:            l.geometry(GeomQuad),
		gorilla:         l.geometry(GeomGorilla),
		banana:          l.geometry(GeomBanana),
		particle:        l.geometry(GeomParticle),
		cubemap:         l.geometry(GeomSkybox),
		groundEmpty:     l.texture(TexGroundEmpty),
		groundCorner:    l.texture(TexGroundCorner),
		groundStreet:    l.texture(TexGroundStreet),
		groundJunction:  l.texture(TexGroundJunction),
		groundJunctionT: l.texture(TexGroundJunctionT),
		gorillaSkin:     l.texture(TexGorilla),
		yellow:          l.texture(TexYellow),
		red:             l.texture(TexRed),
		skyboxTex:       l.texture(TexSkybox),
	}
	for i := 0; i < max(g.tuning.Level.Skins, 1); i++ {
		a.buildingSkins = append(a.buildingSkins, l.texture(BuildingTexture(i)))
	}
	if l.err != nil {
		return fmt.Errorf("load assets: %w", l.err)
	}
	g.world = a

	g.root = NewGroup("Scene")
	g.root.Visible = false

	g.skybox = NewModel("Skybox", Model{Geometry: a.cubemap, Texture: a.skyboxTex})
	g.skybox.Transform.Scale = geom.One.Scale(512)
	g.skybox.Transform.Rotation = geom.Vec3{Y: 120}
	g.root.AddChild(g.skybox)

	g.groundMap = NewGroup("Ground")
	g.cityMap = NewGroup("Map")
	g.gorillas = NewGroup("Players")
	g.root.AddChild(g.groundMap)
	g.root.AddChild(g.cityMap)
	g.root.AddChild(g.gorillas)

	for _, p := range g.players {
		p.Node = NewModel("Gorilla"+p.Label(), Model{Geometry: a.gorilla, Texture: a.gorillaSkin, Lighting: true})
		g.gorillas.AddChild(p.Node)
	}

	g.banana = NewModel("Banana", Model{Geometry: a.banana, Texture: a.yellow, Lighting: true})
	g.banana.Transform.Scale = geom.One.Scale(0.2)
	g.banana.Visible = false
	g.root.AddChild(g.banana)

	g.explosion = newExplosion(g.tuning.Explosion.Particles, a.particle, a.yellow, a.red)
	g.root.AddChild(g.explosion.Node)

	g.loaded = true
	g.logger.Debug().Int("skins", len(a.buildingSkins)).Msg("assets loaded")
	return nil
}

// buildLevelNodes creates the ground and building nodes of the current
// level. Floors start hidden; the reveal shows them.
func (g *Game) buildLevelNodes() {
	l, a := g.level, g.world

	base := NewModel("GroundBase", Model{Geometry: a.quad, Texture: a.groundEmpty, Lighting: true})
	base.Transform.Translation = geom.Vec3{Y: -0.1}
	base.Transform.Scale = geom.Vec3{X: float64(l.SizeX + 4), Y: 1, Z: float64(l.SizeZ + 4)}
	g.groundMap.AddChild(base)

	for _, gt := range l.Ground {
		tex, ok := a.groundTexture(gt.Info)
		if !ok {
			continue
		}
		n := NewModel("Street", Model{Geometry: a.quad, Texture: tex, Lighting: true})
		n.Transform.Translation = l.Boundary.Add(geom.Vec3{X: float64(gt.X) + 0.5, Z: float64(gt.Z) + 0.5})
		n.Transform.Rotation = geom.Vec3{Y: float64(gt.Info.Angle)}
		g.groundMap.AddChild(n)
	}

	for _, b := range l.Buildings() {
		b.Node = NewGroup(fmt.Sprintf("Building%d_%d", b.Lot.X, b.Lot.Z))
		b.Node.Transform.Translation = l.Boundary.Add(geom.Vec3{
			X: float64(b.Lot.X) + 0.5,
			Y: 0.5,
			Z: float64(b.Lot.Z) + 0.5,
		})
		skin := a.buildingSkins[b.Skin%len(a.buildingSkins)]
		for i := range b.Floors {
			n := NewModel("Floor", Model{Geometry: a.building, Texture: skin, Lighting: true})
			n.Transform.Translation = geom.Vec3{Y: float64(i)}
			n.Visible = false
			b.Floors[i].Node = n
			b.Node.AddChild(n)
		}
		g.cityMap.AddChild(b.Node)
	}
}

func (a assetSet) groundTexture(info TileInfo) (AssetHandle, bool) {
	switch info.Kind {
	case TileCorner:
		return a.groundCorner, true
	case TileStreet:
		return a.groundStreet, true
	case TileJunction:
		if info.TJunction {
			return a.groundJunctionT, true
		}
		return a.groundJunction, true
	default:
		return AssetHandle{}, false
	}
}

// LightKind tags a Light.
type LightKind uint8

const (
	LightAmbient LightKind = iota
	LightDirectional
)

// Light is a scene light. Position is only meaningful for directional
// lights, which shine from Position toward the origin.
type Light struct {
	Kind      LightKind
	Intensity float64
	Colour    color.RGBA
	Position  geom.Vec3
}

func defaultLights() []Light {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	return []Light{
		{Kind: LightAmbient, Intensity: 0.6, Colour: white},
		{Kind: LightDirectional, Intensity: 0.6, Colour: white, Position: geom.Vec3{X: 100, Y: 100}},
	}
}

// MatchContext is the read-only snapshot a renderer needs for one frame.
type MatchContext struct {
	Camera  Camera
	Lights  []Light
	Scene   *Node
	Level   *Level
	Players [2]*Player
	Active  int // index of the player whose turn it is
	Wind    Wind
	Phase   Phase
	Elapsed float64
}

// Context snapshots the current frame.
func (g *Game) Context() MatchContext {
	return MatchContext{
		Camera:  *g.activeCam,
		Lights:  g.lights,
		Scene:   g.root,
		Level:   g.level,
		Players: g.players,
		Active:  g.active.Index,
		Wind:    g.wind,
		Phase:   g.phase,
		Elapsed: g.Elapsed(),
	}
}

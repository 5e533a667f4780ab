package game

import (
	"errors"
	"fmt"
)

// ErrAssetNotFound is returned for a name the catalog does not know.
var ErrAssetNotFound = errors.New("asset not found")

// AssetHandle is an opaque reference to loaded content.
type AssetHandle struct {
	Name string
	ID   int
}

// AssetCatalog resolves content by name. Renderers decide what a handle
// looks like on screen.
type AssetCatalog interface {
	Geometry(name string) (AssetHandle, error)
	Texture(name string) (AssetHandle, error)
}

// Geometry names.
const (
	GeomBuilding = "Building.obj"
	GeomQuad     = "Quad.obj"
	GeomGorilla  = "Gorilla.obj"
	GeomBanana   = "Banana.obj"
	GeomParticle = "Particle.obj"
	GeomSkybox   = "Cubemap.obj"
)

// Texture names.
const (
	TexGroundEmpty     = "GroundEmpty.png"
	TexGroundCorner    = "GroundCorner.png"
	TexGroundJunction  = "GroundJunction.png"
	TexGroundJunctionT = "GroundJunctionT.png"
	TexGroundStreet    = "GroundStreet.png"
	TexGorilla         = "Gorilla.png"
	TexYellow          = "ColourYellow.png"
	TexRed             = "ColourRed.png"
	TexSkybox          = "Skybox.png"
)

// BuildingTexture names the texture of building skin i.
func BuildingTexture(skin int) string {
	return fmt.Sprintf("Building%d.png", skin)
}

// MemoryCatalog is an in-process catalog of known names.
type MemoryCatalog struct {
	geometries map[string]AssetHandle
	textures   map[string]AssetHandle
	nextID     int
}

// NewMemoryCatalog returns a catalog preloaded with every name the game
// uses for the given number of building skins.
func NewMemoryCatalog(skins int) *MemoryCatalog {
	c := &MemoryCatalog{
		geometries: make(map[string]AssetHandle),
		textures:   make(map[string]AssetHandle),
	}
	for _, g := range []string{GeomBuilding, GeomQuad, GeomGorilla, GeomBanana, GeomParticle, GeomSkybox} {
		c.AddGeometry(g)
	}
	for _, t := range []string{TexGroundEmpty, TexGroundCorner, TexGroundJunction, TexGroundJunctionT,
		TexGroundStreet, TexGorilla, TexYellow, TexRed, TexSkybox} {
		c.AddTexture(t)
	}
	for i := 0; i < skins; i++ {
		c.AddTexture(BuildingTexture(i))
	}
	return c
}

func (c *MemoryCatalog) AddGeometry(name string) AssetHandle {
	h := AssetHandle{Name: name, ID: c.nextID}
	c.nextID++
	c.geometries[name] = h
	return h
}

func (c *MemoryCatalog) AddTexture(name string) AssetHandle {
	h := AssetHandle{Name: name, ID: c.nextID}
	c.nextID++
	c.textures[name] = h
	return h
}

func (c *MemoryCatalog) Geometry(name string) (AssetHandle, error) {
	h, ok := c.geometries[name]
	if !ok {
		return AssetHandle{}, fmt.Errorf("geometry %q: %w", name, ErrAssetNotFound)
	}
	return h, nil
}

func (c *MemoryCatalog) Texture(name string) (AssetHandle, error) {
	h, ok := c.textures[name]
	if !ok {
		return AssetHandle{}, fmt.Errorf("texture %q: %w", name, ErrAssetNotFound)
	}
	return h, nil
}

package game

import "github.com/Garsondee/Gorillas-3D/internal/geom"

// NodeKind tags the payload a Node carries.
type NodeKind uint8

const (
	NodeGroup NodeKind = iota // Pure transform, children only
	NodeModel                 // Drawable geometry with a texture
)

// Model is the payload of a NodeModel.
type Model struct {
	Geometry AssetHandle
	Texture  AssetHandle
	Lighting bool
}

// Transform is translation, Euler rotation (degrees) and scale. The world
// matrix is T·R·S.
type Transform struct {
	Translation geom.Vec3
	Rotation    geom.Vec3
	Scale       geom.Vec3
}

// Matrix returns the local transform matrix.
func (t Transform) Matrix() geom.Mat4 {
	return geom.Translation(t.Translation).
		Mul(geom.Rotation(t.Rotation)).
		Mul(geom.Scaling(t.Scale))
}

// Node is an element of the scene tree. Children keep insertion order,
// which is also draw order.
type Node struct {
	Name      string
	Kind      NodeKind
	Transform Transform
	Visible   bool
	Model     Model

	children []*Node
}

// NewGroup creates a visible group node with identity transform.
func NewGroup(name string) *Node {
	return &Node{
		Name:      name,
		Kind:      NodeGroup,
		Visible:   true,
		Transform: Transform{Scale: geom.One},
	}
}

// NewModel creates a visible model node with identity transform.
func NewModel(name string, m Model) *Node {
	n := NewGroup(name)
	n.Kind = NodeModel
	n.Model = m
	return n
}

func (n *Node) AddChild(c *Node) {
	n.children = append(n.children, c)
}

// RemoveChild detaches c. It reports whether c was a child of n.
func (n *Node) RemoveChild(c *Node) bool {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return true
		}
	}
	return false
}

func (n *Node) RemoveAllChildren() {
	n.children = nil
}

func (n *Node) Children() []*Node {
	return n.children
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Walk visits every visible node depth first, parents before children,
// passing the accumulated world matrix. Hidden nodes prune their subtree.
func Walk(root *Node, fn func(n *Node, world geom.Mat4)) {
	if root == nil {
		return
	}
	walk(root, geom.Identity(), fn)
}

func walk(n *Node, parent geom.Mat4, fn func(*Node, geom.Mat4)) {
	if !n.Visible {
		return
	}
	world := parent.Mul(n.Transform.Matrix())
	fn(n, world)
	for _, c := range n.children {
		walk(c, world, fn)
	}
}

package scene

import (
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
)

// Node is an element of the scene graph: a named transform with an optional
// mesh and any number of children. A node has at most one parent.
type Node struct {
	Name      string
	Transform math.Transform
	Mesh      *metadata.Mesh
	Visible   bool

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: math.NewTransform(),
		Visible:   true,
	}
}

// NewMeshNode creates a leaf node drawing geometry with material.
func NewMeshNode(name string, geometry *metadata.Geometry, material *metadata.Material) *Node {
	n := NewNode(name)
	n.Mesh = metadata.NewMesh(geometry, material)
	return n
}

// Add attaches child to n, detaching it from any previous parent.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was found.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return true
		}
	}
	return false
}

// Clear detaches every child of n.
func (n *Node) Clear() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

// World returns the node's transform composed with all of its ancestors.
func (n *Node) World() math.Mat4 {
	local := n.Transform.Local()
	if n.parent == nil {
		return local
	}
	return local.Mul(n.parent.World())
}

// Traverse visits n and its descendants depth-first, passing each node's
// world matrix. Returning false from fn skips that node's children.
func (n *Node) Traverse(fn func(node *Node, world math.Mat4) bool) {
	var parentWorld math.Mat4
	if n.parent != nil {
		parentWorld = n.parent.World()
	} else {
		parentWorld = math.NewMat4Identity()
	}
	n.traverse(parentWorld, fn)
}

func (n *Node) traverse(parentWorld math.Mat4, fn func(*Node, math.Mat4) bool) {
	world := n.Transform.Local().Mul(parentWorld)
	if !fn(n, world) {
		return
	}
	for _, c := range n.children {
		c.traverse(world, fn)
	}
}

// Find returns the first descendant (or n itself) with the given name.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Traverse(func(node *Node, _ math.Mat4) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

// Meshes returns every mesh in the subtree, in traversal order.
func (n *Node) Meshes() []*metadata.Mesh {
	var meshes []*metadata.Mesh
	n.Traverse(func(node *Node, _ math.Mat4) bool {
		if node.Mesh != nil {
			meshes = append(meshes, node.Mesh)
		}
		return true
	})
	return meshes
}

// BoundingBox returns the world-space box enclosing every mesh in the
// subtree. It is empty when the subtree has no geometry.
func (n *Node) BoundingBox() math.Extents3D {
	box := math.NewExtentsEmpty()
	n.Traverse(func(node *Node, world math.Mat4) bool {
		if node.Mesh != nil && node.Mesh.Geometry != nil {
			box = box.Union(node.Mesh.Geometry.Extents.Transform(world))
		}
		return true
	})
	return box
}

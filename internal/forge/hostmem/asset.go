package hostmem

import (
	"blueprintforge/internal/forge"
	"blueprintforge/internal/plan"
)

// Asset is an in-memory object under construction. It always carries one
// default root scene node; plan components attach under it.
type Asset struct {
	id        string
	name      string
	class     string
	root      *Node
	nodes     []*Node
	finalized bool
}

func (a *Asset) Identifier() string { return a.id }

// DisplayName is the final (possibly uniquified) asset name.
func (a *Asset) DisplayName() string { return a.name }

// ClassPath is the parent class the asset was created from.
func (a *Asset) ClassPath() string { return a.class }

// Finalized reports whether Finalize ran on this asset.
func (a *Asset) Finalized() bool { return a.finalized }

func (a *Asset) DefaultRoot() forge.Node { return a.root }

// Root returns the default root as its concrete type, for inspection.
func (a *Asset) Root() *Node { return a.root }

// Nodes lists every node including the default root, in creation order.
func (a *Asset) Nodes() []*Node { return a.nodes }

func (a *Asset) newNode(kind plan.ComponentKind, name string) *Node {
	n := &Node{name: name, kind: kind}
	a.nodes = append(a.nodes, n)
	return n
}

func (a *Asset) CreateNode(kind plan.ComponentKind, name string) (forge.Node, error) {
	return a.newNode(kind, name), nil
}

func (a *Asset) Attach(child, parent forge.Node) {
	c, ok := child.(*Node)
	if !ok {
		return
	}
	p, ok := parent.(*Node)
	if !ok {
		return
	}
	if c.parent == p {
		return
	}
	if c.parent != nil {
		c.parent.removeChild(c)
	}
	c.parent = p
	p.children = append(p.children, c)
}

// Node is an in-memory component template. Transform and kind-specific
// fields track whether they were explicitly set, so tests can distinguish a
// default from an applied value.
type Node struct {
	name     string
	kind     plan.ComponentKind
	parent   *Node
	children []*Node

	location *plan.Vec3
	rotation *plan.Vec3
	scale    *plan.Vec3

	mesh              forge.MeshRef
	capsuleRadius     float64
	capsuleHalfHeight float64
	capsuleSet        bool
	boxExtent         *plan.Vec3
	sphereRadius      float64
	sphereSet         bool
}

func (n *Node) Name() string             { return n.name }
func (n *Node) Kind() plan.ComponentKind { return n.kind }

// Parent returns the node this one is attached to, or nil for roots and
// unattached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children lists attached child nodes in attach order.
func (n *Node) Children() []*Node { return n.children }

func (n *Node) removeChild(c *Node) {
	for i, ch := range n.children {
		if ch == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

func (n *Node) SetRelativeLocation(v plan.Vec3) { n.location = &v }
func (n *Node) SetRelativeRotation(v plan.Vec3) { n.rotation = &v }
func (n *Node) SetRelativeScale(v plan.Vec3)    { n.scale = &v }

// RelativeLocation reports the applied location, if any.
func (n *Node) RelativeLocation() (plan.Vec3, bool) {
	if n.location == nil {
		return plan.Vec3{}, false
	}
	return *n.location, true
}

// RelativeRotation reports the applied rotation, if any.
func (n *Node) RelativeRotation() (plan.Vec3, bool) {
	if n.rotation == nil {
		return plan.Vec3{}, false
	}
	return *n.rotation, true
}

// RelativeScale reports the applied scale, if any.
func (n *Node) RelativeScale() (plan.Vec3, bool) {
	if n.scale == nil {
		return plan.Vec3{}, false
	}
	return *n.scale, true
}

func (n *Node) SetMesh(m forge.MeshRef) { n.mesh = m }

// MeshPath is the path of the applied mesh, or "".
func (n *Node) MeshPath() string {
	if n.mesh == nil {
		return ""
	}
	return n.mesh.Path()
}

func (n *Node) SetCapsuleSize(radius, halfHeight float64) {
	n.capsuleRadius = radius
	n.capsuleHalfHeight = halfHeight
	n.capsuleSet = true
}

// CapsuleSize reports the applied capsule dimensions, if any.
func (n *Node) CapsuleSize() (radius, halfHeight float64, ok bool) {
	return n.capsuleRadius, n.capsuleHalfHeight, n.capsuleSet
}

func (n *Node) SetBoxExtent(v plan.Vec3) { n.boxExtent = &v }

// BoxExtent reports the applied box extent, if any.
func (n *Node) BoxExtent() (plan.Vec3, bool) {
	if n.boxExtent == nil {
		return plan.Vec3{}, false
	}
	return *n.boxExtent, true
}

func (n *Node) SetSphereRadius(radius float64) {
	n.sphereRadius = radius
	n.sphereSet = true
}

// SphereRadius reports the applied sphere radius, if any.
func (n *Node) SphereRadius() (float64, bool) {
	return n.sphereRadius, n.sphereSet
}

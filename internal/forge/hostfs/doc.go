package hostfs

import (
	"blueprintforge/internal/forge/hostmem"
	"blueprintforge/internal/plan"
)

// AssetDocument is the persisted form of one generated asset.
type AssetDocument struct {
	Identifier string         `json:"identifier"`
	Name       string         `json:"name"`
	Class      string         `json:"class"`
	Nodes      []NodeDocument `json:"nodes"`
}

// NodeDocument is one component template. Parent is empty for the default
// root and for nodes that were never attached.
type NodeDocument struct {
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Parent string `json:"parent,omitempty"`

	RelativeLocation *plan.Vec3 `json:"relative_location,omitempty"`
	RelativeRotation *plan.Vec3 `json:"relative_rotation,omitempty"`
	RelativeScale    *plan.Vec3 `json:"relative_scale,omitempty"`

	Mesh string `json:"mesh,omitempty"`

	CapsuleRadius     *float64   `json:"capsule_radius,omitempty"`
	CapsuleHalfHeight *float64   `json:"capsule_half_height,omitempty"`
	BoxExtent         *plan.Vec3 `json:"box_extent,omitempty"`
	SphereRadius      *float64   `json:"sphere_radius,omitempty"`
}

func snapshot(a *hostmem.Asset) AssetDocument {
	doc := AssetDocument{
		Identifier: a.Identifier(),
		Name:       a.DisplayName(),
		Class:      a.ClassPath(),
	}
	for _, n := range a.Nodes() {
		doc.Nodes = append(doc.Nodes, snapshotNode(n))
	}
	return doc
}

func snapshotNode(n *hostmem.Node) NodeDocument {
	nd := NodeDocument{
		Name: n.Name(),
		Kind: string(n.Kind()),
		Mesh: n.MeshPath(),
	}
	if p := n.Parent(); p != nil {
		nd.Parent = p.Name()
	}
	if v, ok := n.RelativeLocation(); ok {
		nd.RelativeLocation = &v
	}
	if v, ok := n.RelativeRotation(); ok {
		nd.RelativeRotation = &v
	}
	if v, ok := n.RelativeScale(); ok {
		nd.RelativeScale = &v
	}
	if r, hh, ok := n.CapsuleSize(); ok {
		nd.CapsuleRadius = &r
		nd.CapsuleHalfHeight = &hh
	}
	if v, ok := n.BoxExtent(); ok {
		nd.BoxExtent = &v
	}
	if r, ok := n.SphereRadius(); ok {
		nd.SphereRadius = &r
	}
	return nd
}

package plan

import "strings"

// ComponentKind is one of the closed set of component types a plan may
// declare.
type ComponentKind string

const (
	KindScene        ComponentKind = "SceneComponent"
	KindStaticMesh   ComponentKind = "StaticMeshComponent"
	KindSkeletalMesh ComponentKind = "SkeletalMeshComponent"
	KindCapsule      ComponentKind = "CapsuleComponent"
	KindBox          ComponentKind = "BoxComponent"
	KindSphere       ComponentKind = "SphereComponent"
)

var kinds = []ComponentKind{
	KindScene,
	KindStaticMesh,
	KindSkeletalMesh,
	KindCapsule,
	KindBox,
	KindSphere,
}

// ParseComponentKind resolves a type tag (case-insensitive) to a kind.
func ParseComponentKind(tag string) (ComponentKind, bool) {
	for _, k := range kinds {
		if strings.EqualFold(tag, string(k)) {
			return k, true
		}
	}
	return "", false
}

// Spatial reports whether nodes of this kind carry a 3D transform. Every
// recognized kind is a scene component, so today this is true for all of
// them; unknown kinds are not spatial.
func (k ComponentKind) Spatial() bool {
	_, ok := ParseComponentKind(string(k))
	return ok
}

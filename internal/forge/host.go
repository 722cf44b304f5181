package forge

import "blueprintforge/internal/plan"

// ClassRef identifies a parent class resolved by the host object model.
type ClassRef interface {
	Path() string
}

// MeshRef identifies a mesh resource resolved by the host.
type MeshRef interface {
	Path() string
}

// Node is one component template inside an asset's construction graph. The
// builder only calls the setter matching the node's kind; hosts may ignore
// setters that do not apply.
type Node interface {
	Name() string
	Kind() plan.ComponentKind

	SetRelativeLocation(plan.Vec3)
	SetRelativeRotation(plan.Vec3)
	SetRelativeScale(plan.Vec3)

	SetMesh(MeshRef)
	SetCapsuleSize(radius, halfHeight float64)
	SetBoxExtent(plan.Vec3)
	SetSphereRadius(radius float64)
}

// Asset is one object under construction. Every asset starts with exactly
// one default root node; nodes created later are unattached until Attach.
type Asset interface {
	// Identifier is the canonical location path, e.g. /Game/AIForge/BP_Tree.
	Identifier() string
	DefaultRoot() Node
	CreateNode(kind plan.ComponentKind, name string) (Node, error)
	Attach(child, parent Node)
}

// ObjectGraphHost is the narrow capability interface the builder mutates the
// host object model through. Implementations own the asset index and its
// backing storage; the builder never touches a concrete engine type.
//
// Host mutation is a single-writer resource: callers must not run two
// builders concurrently against overlapping target locations.
type ObjectGraphHost interface {
	// CreateUniqueLocation resolves folder/name into a location that does
	// not collide with an existing asset, returning the location and the
	// possibly-suffixed final name.
	CreateUniqueLocation(folder, name string) (location, finalName string)
	// IsValidLocation reports whether location is a well-formed long path.
	IsValidLocation(location string) bool

	// ResolveClass looks up a class by reference path.
	ResolveClass(path string) (ClassRef, bool)
	// ActorClass is the generic base type used when resolution fails.
	ActorClass() ClassRef

	CreateBaseObject(class ClassRef, location, name string) (Asset, error)
	LoadMesh(path string) (MeshRef, bool)

	// Finalize compiles/structurally marks the asset.
	Finalize(a Asset) error
	// RegisterAsset adds the asset to the host's discovery index.
	RegisterAsset(a Asset)
	// MarkDirty flags the asset's container as needing a save.
	MarkDirty(a Asset)
}

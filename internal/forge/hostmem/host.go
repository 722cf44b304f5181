// Package hostmem is an in-memory ObjectGraphHost: class and mesh registries
// seeded with the engine defaults, plus an asset index. It backs tests, dry
// runs, and the resolution layer of the disk-backed host.
package hostmem

import (
	"fmt"
	"strings"
	"sync"

	"blueprintforge/internal/forge"
	"blueprintforge/internal/plan"
)

type classRef string

func (c classRef) Path() string { return string(c) }

type meshRef string

func (m meshRef) Path() string { return string(m) }

// ActorClassPath is the generic base type every unresolvable parent class
// falls back to.
const ActorClassPath = "/Script/Engine.Actor"

var defaultClasses = []string{
	ActorClassPath,
	"/Script/Engine.Pawn",
	"/Script/Engine.Character",
	"/Script/Engine.StaticMeshActor",
}

var defaultMeshes = []string{
	"/Engine/BasicShapes/Cube.Cube",
	"/Engine/BasicShapes/Sphere.Sphere",
	"/Engine/BasicShapes/Cylinder.Cylinder",
	"/Engine/BasicShapes/Cone.Cone",
	"/Engine/BasicShapes/Plane.Plane",
	"/Engine/EngineMeshes/SkeletalCube.SkeletalCube",
}

// Host implements forge.ObjectGraphHost in memory. The mutex guards the
// asset index so that concurrent misuse degrades to serialized writes
// instead of a corrupted index; the intended model is still a single writer.
type Host struct {
	mu      sync.Mutex
	classes map[string]struct{}
	meshes  map[string]struct{}
	assets  map[string]*Asset
	order   []string
	dirty   map[string]struct{}
}

func New() *Host {
	h := &Host{
		classes: make(map[string]struct{}),
		meshes:  make(map[string]struct{}),
		assets:  make(map[string]*Asset),
		dirty:   make(map[string]struct{}),
	}
	for _, c := range defaultClasses {
		h.classes[c] = struct{}{}
	}
	for _, m := range defaultMeshes {
		h.meshes[m] = struct{}{}
	}
	return h
}

// RegisterClass adds a resolvable class path.
func (h *Host) RegisterClass(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.classes[strings.TrimSpace(path)] = struct{}{}
}

// RegisterMesh adds a loadable mesh path.
func (h *Host) RegisterMesh(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.meshes[strings.TrimSpace(path)] = struct{}{}
}

func (h *Host) CreateUniqueLocation(folder, name string) (string, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	base := strings.TrimSuffix(folder, "/") + "/" + name
	if _, taken := h.assets[base]; !taken {
		return base, name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if _, taken := h.assets[candidate]; !taken {
			return candidate, fmt.Sprintf("%s_%d", name, i)
		}
	}
}

// IsValidLocation accepts rooted paths with non-empty, identifier-safe
// segments.
func (h *Host) IsValidLocation(location string) bool {
	if !strings.HasPrefix(location, "/") {
		return false
	}
	segments := strings.Split(location[1:], "/")
	for _, seg := range segments {
		if seg == "" {
			return false
		}
		for i := 0; i < len(seg); i++ {
			c := seg[i]
			ok := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-'
			if !ok {
				return false
			}
		}
	}
	return true
}

func (h *Host) ResolveClass(path string) (forge.ClassRef, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := strings.TrimSpace(path)
	if _, ok := h.classes[p]; ok {
		return classRef(p), true
	}
	return nil, false
}

func (h *Host) ActorClass() forge.ClassRef { return classRef(ActorClassPath) }

func (h *Host) CreateBaseObject(class forge.ClassRef, location, name string) (forge.Asset, error) {
	if class == nil {
		class = h.ActorClass()
	}
	a := &Asset{
		id:    location,
		name:  name,
		class: class.Path(),
	}
	a.root = a.newNode(plan.KindScene, "DefaultSceneRoot")
	return a, nil
}

func (h *Host) LoadMesh(path string) (forge.MeshRef, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := strings.TrimSpace(path)
	if _, ok := h.meshes[p]; ok {
		return meshRef(p), true
	}
	return nil, false
}

func (h *Host) Finalize(a forge.Asset) error {
	asset, ok := a.(*Asset)
	if !ok {
		return fmt.Errorf("hostmem: foreign asset %T", a)
	}
	asset.finalized = true
	return nil
}

func (h *Host) RegisterAsset(a forge.Asset) {
	asset, ok := a.(*Asset)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.assets[asset.id]; !exists {
		h.order = append(h.order, asset.id)
	}
	h.assets[asset.id] = asset
}

func (h *Host) MarkDirty(a forge.Asset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dirty[a.Identifier()] = struct{}{}
}

// Asset returns a registered asset by identifier.
func (h *Host) Asset(id string) (*Asset, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	a, ok := h.assets[id]
	return a, ok
}

// AssetIDs lists registered identifiers in registration order.
func (h *Host) AssetIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// IsDirty reports whether the asset's container was marked dirty.
func (h *Host) IsDirty(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.dirty[id]
	return ok
}

package forge

import (
	"errors"
	"strings"

	"blueprintforge/internal/plan"
)

// ErrNoAssetsCreated is the aggregate failure returned when the whole batch
// yields nothing.
var ErrNoAssetsCreated = errors.New("no assets were created, check the response schema (expected assets[].type == BlueprintActor)")

// Options tunes the builder. Zero values fall back to the canonical
// defaults.
type Options struct {
	// DefaultFolder receives assets whose folder is absent or outside the
	// /Game root.
	DefaultFolder string
	// AllowShapeFallback substitutes FallbackMeshPath when a static mesh
	// reference is empty or unresolvable.
	AllowShapeFallback bool
	// FallbackMeshPath is the placeholder shape, by default the engine
	// basic cube.
	FallbackMeshPath string
}

const (
	defaultFolder       = "/Game/AIForge"
	defaultFallbackMesh = "/Engine/BasicShapes/Cube.Cube"

	capsuleRadiusDefault     = 34.0
	capsuleHalfHeightDefault = 88.0
	sphereRadiusDefault      = 50.0
)

var boxExtentDefault = plan.Vec3{50, 50, 50}

// AssetOutcome is the per-asset result: either a created identifier or the
// reason the spec was skipped. One asset's failure never aborts the batch.
type AssetOutcome struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// Result lists the created identifiers plus the per-asset outcomes.
type Result struct {
	Created []string       `json:"created"`
	Assets  []AssetOutcome `json:"assets"`
}

// Generator deterministically materializes a plan into host objects. It is
// synchronous and must not be invoked concurrently for overlapping target
// locations (see ObjectGraphHost).
type Generator struct {
	host ObjectGraphHost
	opts Options
}

func NewGenerator(host ObjectGraphHost, opts Options) *Generator {
	if strings.TrimSpace(opts.DefaultFolder) == "" {
		opts.DefaultFolder = defaultFolder
	}
	if strings.TrimSpace(opts.FallbackMeshPath) == "" {
		opts.FallbackMeshPath = defaultFallbackMesh
	}
	return &Generator{host: host, opts: opts}
}

// Generate parses planText and builds every asset it describes. The overall
// result is ok iff at least one asset was created; per-asset skip reasons are
// carried in Result.Assets either way.
func (g *Generator) Generate(planText string) (Result, error) {
	p, err := plan.Decode(planText)
	if err != nil {
		return Result{}, err
	}

	var res Result
	for _, spec := range p.Assets {
		outcome := g.buildAsset(spec)
		res.Assets = append(res.Assets, outcome)
		if !outcome.Skipped {
			res.Created = append(res.Created, outcome.Identifier)
		}
	}
	if len(res.Created) == 0 {
		return res, ErrNoAssetsCreated
	}
	return res, nil
}

func skip(name, reason string) AssetOutcome {
	return AssetOutcome{Name: name, Skipped: true, Reason: reason}
}

func (g *Generator) buildAsset(spec plan.AssetSpec) AssetOutcome {
	// Unknown asset types are forward-compatible: skip, not error.
	if !strings.EqualFold(spec.Type, "BlueprintActor") {
		return skip(spec.Name, "unsupported asset type "+strings.TrimSpace(spec.Type))
	}
	if spec.Name == "" {
		return skip(spec.Name, "empty asset name")
	}

	folder := NormalizeFolder(spec.Folder, g.opts.DefaultFolder)
	safeName := SanitizeObjectName(spec.Name)

	location, finalName := g.host.CreateUniqueLocation(folder, safeName)
	if !g.host.IsValidLocation(location) {
		location = g.opts.DefaultFolder + "/" + finalName
	}

	class, ok := ClassRef(nil), false
	if spec.ParentClass != "" {
		class, ok = g.host.ResolveClass(spec.ParentClass)
	}
	if !ok {
		class = g.host.ActorClass()
	}

	asset, err := g.host.CreateBaseObject(class, location, finalName)
	if err != nil {
		return skip(spec.Name, "base object creation failed: "+err.Error())
	}

	g.buildComponents(asset, spec.Components)

	if err := g.host.Finalize(asset); err != nil {
		return skip(spec.Name, "finalize failed: "+err.Error())
	}
	g.host.RegisterAsset(asset)
	g.host.MarkDirty(asset)

	return AssetOutcome{Name: spec.Name, Identifier: asset.Identifier()}
}

// buildComponents runs the two construction passes. Pass 1 creates nodes and
// registers them by plan name (later duplicates overwrite earlier entries);
// pass 2 attaches and configures them, so attach_to may reference a name
// declared in either direction.
func (g *Generator) buildComponents(asset Asset, comps []plan.ComponentSpec) {
	root := asset.DefaultRoot()

	nodes := make(map[string]Node)
	if root != nil {
		nodes["Root"] = root
		nodes[root.Name()] = root
	}

	// Pass 1: creation.
	for _, c := range comps {
		if c.Name == "" || c.Type == "" {
			continue
		}
		// A declared "Root" SceneComponent with no attach_to aliases the
		// default root instead of duplicating it.
		if root != nil &&
			strings.EqualFold(c.Type, string(plan.KindScene)) &&
			strings.EqualFold(c.Name, "Root") &&
			c.AttachTo == "" {
			nodes[c.Name] = root
			continue
		}
		kind, ok := plan.ParseComponentKind(c.Type)
		if !ok {
			continue
		}
		node, err := asset.CreateNode(kind, SanitizeObjectName(c.Name))
		if err != nil {
			continue
		}
		// Parenting is deferred to pass 2.
		nodes[c.Name] = node
	}

	// Pass 2: wiring and configuration.
	for _, c := range comps {
		if c.Name == "" {
			continue
		}
		node, ok := nodes[c.Name]
		if !ok {
			continue
		}

		parent := root
		if c.AttachTo != "" {
			if p, ok := nodes[c.AttachTo]; ok {
				parent = p
			}
		}
		if parent != nil && parent != node {
			asset.Attach(node, parent)
		}

		if node.Kind().Spatial() {
			if c.RelativeLocation != nil {
				node.SetRelativeLocation(*c.RelativeLocation)
			}
			if c.RelativeRotation != nil {
				node.SetRelativeRotation(*c.RelativeRotation)
			}
			if c.RelativeScale != nil {
				node.SetRelativeScale(*c.RelativeScale)
			}
		}

		switch node.Kind() {
		case plan.KindStaticMesh:
			if mesh, ok := g.loadMeshOrFallback(c.StaticMesh); ok {
				node.SetMesh(mesh)
			}
		case plan.KindSkeletalMesh:
			// No placeholder shapes for skeletal meshes; an unresolvable
			// reference just leaves the node empty.
			if path := strings.TrimSpace(c.SkeletalMesh); path != "" {
				if mesh, ok := g.host.LoadMesh(path); ok {
					node.SetMesh(mesh)
				}
			}
		case plan.KindCapsule:
			radius, halfHeight := capsuleRadiusDefault, capsuleHalfHeightDefault
			if c.CapsuleRadius != nil {
				radius = *c.CapsuleRadius
			}
			if c.CapsuleHalfHeight != nil {
				halfHeight = *c.CapsuleHalfHeight
			}
			node.SetCapsuleSize(radius, halfHeight)
		case plan.KindBox:
			extent := boxExtentDefault
			if c.BoxExtent != nil {
				extent = *c.BoxExtent
			}
			node.SetBoxExtent(extent)
		case plan.KindSphere:
			radius := sphereRadiusDefault
			if c.SphereRadius != nil {
				radius = *c.SphereRadius
			}
			node.SetSphereRadius(radius)
		}
	}
}

func (g *Generator) loadMeshOrFallback(path string) (MeshRef, bool) {
	if p := strings.TrimSpace(path); p != "" {
		if mesh, ok := g.host.LoadMesh(p); ok {
			return mesh, true
		}
	}
	if g.opts.AllowShapeFallback {
		return g.host.LoadMesh(g.opts.FallbackMeshPath)
	}
	return nil, false
}

package plan

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidJSON is returned when the plan text is not a JSON object.
	ErrInvalidJSON = errors.New("invalid JSON (expected object)")
	// ErrMissingAssets is returned when the top-level object has no
	// 'assets' array.
	ErrMissingAssets = errors.New("JSON missing 'assets' array")
)

// Vec3 is an x/y/z triple. Rotations reuse it as pitch/yaw/roll.
type Vec3 [3]float64

// Plan is the parsed top-level generation payload.
type Plan struct {
	Assets []AssetSpec
}

// AssetSpec describes one object to create.
type AssetSpec struct {
	Type        string
	Name        string
	Folder      string
	ParentClass string
	Components  []ComponentSpec
	Tags        []string
}

// ComponentSpec describes one sub-component of an asset. Optional numeric
// fields are pointers so that an absent field is distinguishable from zero.
type ComponentSpec struct {
	Name     string
	Type     string
	AttachTo string // "" means attach to the asset's default root

	RelativeLocation *Vec3
	RelativeRotation *Vec3
	RelativeScale    *Vec3

	StaticMesh   string
	SkeletalMesh string

	CapsuleRadius     *float64
	CapsuleHalfHeight *float64
	BoxExtent         *Vec3
	SphereRadius      *float64
}

// Decode parses plan JSON text. Fields with unexpected types are treated as
// absent rather than rejected, so a partially malformed plan still yields
// every well-formed entry. Only two conditions are hard errors: text that is
// not a JSON object, and a missing (or non-array) assets field.
func Decode(text string) (Plan, error) {
	var root map[string]any
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		return Plan{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if root == nil {
		return Plan{}, ErrInvalidJSON
	}
	rawAssets, ok := root["assets"].([]any)
	if !ok {
		return Plan{}, ErrMissingAssets
	}
	p := Plan{Assets: make([]AssetSpec, 0, len(rawAssets))}
	for _, v := range rawAssets {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		p.Assets = append(p.Assets, decodeAsset(obj))
	}
	return p, nil
}

func decodeAsset(obj map[string]any) AssetSpec {
	spec := AssetSpec{
		Type:        stringField(obj, "type"),
		Name:        stringField(obj, "name"),
		Folder:      stringField(obj, "folder"),
		ParentClass: stringField(obj, "parent_class"),
		Tags:        stringsField(obj, "tags"),
	}
	comps, ok := obj["components"].([]any)
	if !ok {
		return spec
	}
	for _, cv := range comps {
		cobj, ok := cv.(map[string]any)
		if !ok {
			continue
		}
		spec.Components = append(spec.Components, decodeComponent(cobj))
	}
	return spec
}

func decodeComponent(obj map[string]any) ComponentSpec {
	return ComponentSpec{
		Name:              stringField(obj, "name"),
		Type:              stringField(obj, "type"),
		AttachTo:          stringField(obj, "attach_to"), // JSON null reads as absent
		RelativeLocation:  vec3Field(obj, "relative_location"),
		RelativeRotation:  vec3Field(obj, "relative_rotation"),
		RelativeScale:     vec3Field(obj, "relative_scale"),
		StaticMesh:        stringField(obj, "static_mesh"),
		SkeletalMesh:      stringField(obj, "skeletal_mesh"),
		CapsuleRadius:     numberField(obj, "capsule_radius"),
		CapsuleHalfHeight: numberField(obj, "capsule_half_height"),
		BoxExtent:         vec3Field(obj, "box_extent"),
		SphereRadius:      numberField(obj, "sphere_radius"),
	}
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func stringsField(obj map[string]any, key string) []string {
	arr, ok := obj[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range arr {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func numberField(obj map[string]any, key string) *float64 {
	n, ok := obj[key].(float64)
	if !ok {
		return nil
	}
	return &n
}

// vec3Field reads a numeric array of at least three elements. Anything else,
// including arrays with non-numeric entries, counts as absent.
func vec3Field(obj map[string]any, key string) *Vec3 {
	arr, ok := obj[key].([]any)
	if !ok || len(arr) < 3 {
		return nil
	}
	var v Vec3
	for i := 0; i < 3; i++ {
		n, ok := arr[i].(float64)
		if !ok {
			return nil
		}
		v[i] = n
	}
	return &v
}

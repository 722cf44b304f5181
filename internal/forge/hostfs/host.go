// Package hostfs is a disk-backed ObjectGraphHost. Class and mesh resolution
// come from the embedded in-memory host; finalized assets are persisted as
// JSON documents under an output directory with a discovery index file, so
// generated objects survive the process and earlier runs still occupy their
// locations.
package hostfs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"blueprintforge/internal/forge"
	"blueprintforge/internal/forge/hostmem"
	"blueprintforge/internal/util/jsonutil"
)

const (
	indexFile    = "index.json"
	assetsSubdir = "assets"
	docCacheSize = 256
)

type indexEntry struct {
	Identifier string `json:"identifier"`
	File       string `json:"file"`
}

// Host persists what the embedded memory host builds.
type Host struct {
	*hostmem.Host

	dir string

	mu       sync.Mutex
	index    map[string]string // identifier -> doc file name
	order    []string
	docCache *lru.Cache[string, []byte]
}

// New opens (or creates) the output directory and loads its discovery
// index.
func New(dir string) (*Host, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("hostfs: empty output dir")
	}
	if err := os.MkdirAll(filepath.Join(dir, assetsSubdir), 0o755); err != nil {
		return nil, err
	}
	cache, err := lru.New[string, []byte](docCacheSize)
	if err != nil {
		return nil, err
	}
	h := &Host{
		Host:     hostmem.New(),
		dir:      dir,
		index:    make(map[string]string),
		docCache: cache,
	}
	if err := h.loadIndex(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Host) loadIndex() error {
	raw, err := os.ReadFile(filepath.Join(h.dir, indexFile))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	var entries []indexEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("hostfs: corrupt %s: %w", indexFile, err)
	}
	for _, e := range entries {
		if _, seen := h.index[e.Identifier]; !seen {
			h.order = append(h.order, e.Identifier)
		}
		h.index[e.Identifier] = e.File
	}
	return nil
}

// CreateUniqueLocation also treats locations from earlier runs (present in
// the on-disk index) as taken.
func (h *Host) CreateUniqueLocation(folder, name string) (string, string) {
	base := strings.TrimSuffix(folder, "/") + "/" + name
	if !h.taken(base) {
		return base, name
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s_%d", base, i)
		if !h.taken(candidate) {
			return candidate, fmt.Sprintf("%s_%d", name, i)
		}
	}
}

func (h *Host) taken(location string) bool {
	if _, ok := h.Asset(location); ok {
		return true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.index[location]
	return ok
}

// Finalize marks the asset complete and writes its document.
func (h *Host) Finalize(a forge.Asset) error {
	if err := h.Host.Finalize(a); err != nil {
		return err
	}
	asset, ok := a.(*hostmem.Asset)
	if !ok {
		return fmt.Errorf("hostfs: foreign asset %T", a)
	}
	doc := snapshot(asset)
	raw, err := jsonutil.MarshalNoEscapeIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	file := docFileName(asset.Identifier())
	if err := writeAtomic(filepath.Join(h.dir, assetsSubdir, file), raw); err != nil {
		return err
	}
	h.docCache.Add(asset.Identifier(), raw)
	return nil
}

// RegisterAsset adds the asset to both the in-memory and the on-disk
// discovery index.
func (h *Host) RegisterAsset(a forge.Asset) {
	h.Host.RegisterAsset(a)
	id := a.Identifier()

	h.mu.Lock()
	if _, seen := h.index[id]; !seen {
		h.order = append(h.order, id)
	}
	h.index[id] = docFileName(id)
	entries := make([]indexEntry, 0, len(h.order))
	for _, eid := range h.order {
		entries = append(entries, indexEntry{Identifier: eid, File: h.index[eid]})
	}
	h.mu.Unlock()

	raw, err := jsonutil.MarshalNoEscapeIndent(entries, "", "  ")
	if err != nil {
		return
	}
	// Index write failures are non-fatal; the doc itself is already on
	// disk and the next successful register rewrites the index.
	_ = writeAtomic(filepath.Join(h.dir, indexFile), raw)
}

// AssetIDs lists every known identifier, including ones loaded from earlier
// runs.
func (h *Host) AssetIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// AssetDoc returns the persisted JSON document for an identifier, serving
// repeated reads from the LRU cache.
func (h *Host) AssetDoc(id string) ([]byte, error) {
	if raw, ok := h.docCache.Get(id); ok {
		return raw, nil
	}
	h.mu.Lock()
	file, ok := h.index[id]
	h.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("hostfs: unknown asset %q", id)
	}
	raw, err := os.ReadFile(filepath.Join(h.dir, assetsSubdir, file))
	if err != nil {
		return nil, err
	}
	h.docCache.Add(id, raw)
	return raw, nil
}

func docFileName(id string) string {
	return forge.SanitizeObjectName(strings.TrimPrefix(id, "/")) + ".json"
}

func writeAtomic(path string, raw []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(raw, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

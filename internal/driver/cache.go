package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"strl/internal/ast"
)

// Schema version for the cached payload; bump when the format changes.
const cacheSchemaVersion uint16 = 1

// Digest keys cache entries by the SHA-256 of the pattern source.
type Digest = [32]byte

// DiskCache stores compiled artifacts keyed by source digest so unchanged
// patterns skip recompilation across batch runs. Safe for concurrent use. A
// nil *DiskCache is a valid no-op cache.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the on-disk shape of a cached artifact.
type cachePayload struct {
	Schema   uint16
	Version  string
	Pattern  string
	Flags    string // canonical flag letters
	Features []string
}

// OpenDiskCache initializes the cache under the XDG cache directory.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes the cache at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "artifacts", hex.EncodeToString(key[:])+".mp")
}

// Store writes an artifact under the source digest. Failures are swallowed:
// the cache is an optimization, never a correctness dependency.
func (c *DiskCache) Store(key Digest, art *Artifact) {
	if c == nil || art == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return
	}
	defer os.Remove(f.Name())

	payload := cachePayload{
		Schema:   cacheSchemaVersion,
		Version:  art.Version,
		Pattern:  art.Pattern,
		Flags:    art.Flags.Letters(),
		Features: art.Features,
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return
	}
	if err := f.Close(); err != nil {
		return
	}
	// Atomic replace keeps concurrent readers off half-written entries.
	_ = os.Rename(f.Name(), p)
}

// Lookup fetches a cached artifact by source digest.
func (c *DiskCache) Lookup(key Digest) (*Artifact, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion || payload.Version != ArtifactVersion {
		return nil, false
	}

	features := payload.Features
	if features == nil {
		features = []string{}
	}
	return &Artifact{
		Version:  payload.Version,
		Pattern:  payload.Pattern,
		Flags:    ast.FromLetters(payload.Flags),
		Features: features,
	}, true
}

// DropAll discards every cached artifact, for use after schema changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

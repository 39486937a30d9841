// Package project locates and reads the patterns.toml manifest that roots a
// pattern collection for batch compilation.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "patterns.toml"

// Manifest is the parsed patterns.toml.
type Manifest struct {
	Project ProjectSection `toml:"project"`
	Compile CompileSection `toml:"compile"`

	// Dir is the directory containing the manifest, set on load.
	Dir string `toml:"-"`
}

// ProjectSection names the pattern collection.
type ProjectSection struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// CompileSection tunes batch compilation.
type CompileSection struct {
	// Include lists pattern directories relative to the manifest. Empty
	// means the manifest's own directory.
	Include []string `toml:"include"`
	Jobs    int      `toml:"jobs"`
	Cache   bool     `toml:"cache"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if !isValidProjectName(m.Project.Name) {
		return nil, fmt.Errorf("%s: invalid project name %q", path, m.Project.Name)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	m.Dir = filepath.Dir(abs)
	return &m, nil
}

// IncludeDirs resolves the include list against the manifest directory.
func (m *Manifest) IncludeDirs() []string {
	if len(m.Compile.Include) == 0 {
		return []string{m.Dir}
	}
	dirs := make([]string, len(m.Compile.Include))
	for i, inc := range m.Compile.Include {
		dirs[i] = filepath.Join(m.Dir, inc)
	}
	return dirs
}

// FindManifest walks up from startDir to locate patterns.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, statErr := os.Stat(candidate); statErr == nil {
			return candidate, true, nil
		} else if !os.IsNotExist(statErr) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, statErr)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing patterns.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// isValidProjectName accepts identifier-shaped names with '-' allowed after
// the first rune.
func isValidProjectName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

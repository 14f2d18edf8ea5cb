// Package patternfile loads YAML pattern sets for compilation into hscan
// databases.
package patternfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/PhucNguyen204/hscan"
)

// File is the on-disk YAML pattern set.
type File struct {
	Version  int     `yaml:"version"`
	Patterns []Entry `yaml:"patterns"`
}

// Entry is one pattern record. Flags uses ParseCompileFlag notation, e.g.
// "iL" for caseless with start-of-match reporting.
type Entry struct {
	ID         uint32 `yaml:"id"`
	Expression string `yaml:"expression"`
	Flags      string `yaml:"flags"`
}

func isYAML(p string) bool {
	l := strings.ToLower(p)
	return strings.HasSuffix(l, ".yml") || strings.HasSuffix(l, ".yaml")
}

// Load parses a YAML pattern set.
func Load(b []byte) ([]*hscan.Pattern, error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse pattern set: %w", err)
	}
	if len(f.Patterns) == 0 {
		return nil, hscan.ErrNoPatterns
	}

	out := make([]*hscan.Pattern, 0, len(f.Patterns))
	for i, e := range f.Patterns {
		if e.Expression == "" {
			return nil, fmt.Errorf("pattern %d: empty expression", i)
		}
		flags, err := hscan.ParseCompileFlag(e.Flags)
		if err != nil {
			return nil, fmt.Errorf("pattern %d: %w", i, err)
		}
		p := hscan.NewPattern(e.Expression, flags)
		p.ID = e.ID
		out = append(out, p)
	}
	return out, nil
}

// LoadFile reads and parses one YAML pattern set.
func LoadFile(path string) ([]*hscan.Pattern, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(b)
}

// LoadDir loads every YAML pattern set under root recursively, in walk
// order.
func LoadDir(root string) ([]*hscan.Pattern, error) {
	var out []*hscan.Pattern
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isYAML(p) {
			return nil
		}
		pats, err := LoadFile(p)
		if err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
		out = append(out, pats...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, hscan.ErrNoPatterns
	}
	return out, nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

// Source is where a config value was last set.
type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

func nodeSource(file string, n *yaml.Node) Source {
	return Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column}
}

type LoadResult struct {
	Config  *Config
	Sources map[string]Source // dotted key -> last writer
	Files   []string          // loaded files, includes before includers
}

func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "displaykit", "config.yaml"), nil
}

// Load reads the configuration from the standard location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources is Load plus per-key sources for `config explain`.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields the
// defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	l := &loader{
		seen:    make(map[string]bool),
		sources: make(map[string]Source),
	}

	var raw RawConfig
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if raw, err = l.load(path); err != nil {
			return nil, err
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	cfg := BuildEffectiveConfig(raw, l.sources["fixture"].File)
	if err := cfg.Validate(); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			if src, ok := l.sources[verr.Path]; ok {
				verr.Source = src
			}
		}
		return nil, err
	}

	return &LoadResult{Config: cfg, Sources: l.sources, Files: l.files}, nil
}

// loader walks a config file and its includes depth first. Includes are
// applied before the file that names them, so the includer wins.
type loader struct {
	seen    map[string]bool
	stack   []string
	files   []string
	sources map[string]Source
}

func (l *loader) load(path string) (RawConfig, error) {
	file := canonicalPath(path)
	if slices.Contains(l.stack, file) {
		chain := append(slices.Clone(l.stack), file)
		return RawConfig{}, fmt.Errorf("include cycle detected: %s", strings.Join(chain, " -> "))
	}
	if l.seen[file] {
		return RawConfig{}, nil
	}
	l.seen[file] = true

	data, err := os.ReadFile(file)
	if err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to read: %w", file, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, fmt.Errorf("%s: failed to parse yaml: %w", file, err)
	}
	var own RawConfig
	if err := decodeStrictYAML(data, &own); err != nil {
		return RawConfig{}, fmt.Errorf("%s: %w", file, err)
	}
	root := rootMapping(&doc)

	l.stack = append(l.stack, file)
	var merged RawConfig
	for _, ref := range includeRefs(root, file) {
		paths, err := expandInclude(file, ref.value)
		if err != nil {
			return RawConfig{}, fmt.Errorf("%s:%d:%d: include %q: %w", ref.src.File, ref.src.Line, ref.src.Column, ref.value, err)
		}
		for _, p := range paths {
			inc, err := l.load(p)
			if err != nil {
				return RawConfig{}, err
			}
			merged = merged.merge(inc)
		}
	}
	l.stack = l.stack[:len(l.stack)-1]

	recordSources(root, file, "", l.sources)
	l.files = append(l.files, file)
	return merged.merge(own), nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// canonicalPath returns the absolute, symlink-free form of path, or the
// absolute form when symlinks can't be resolved.
func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

// expandInclude resolves an include entry to files. A directory expands to
// its *.yaml and *.yml files in name order.
func expandInclude(baseFile, include string) ([]string, error) {
	path, err := resolvePathRelativeToFile(baseFile, include)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".yaml", ".yml":
			if !ent.IsDir() {
				files = append(files, filepath.Join(path, ent.Name()))
			}
		}
	}
	return files, nil
}

// resolvePathRelativeToFile expands a leading ~ and anchors relative paths
// at baseFile's directory.
func resolvePathRelativeToFile(baseFile, p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("path is empty")
	}
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	if filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Join(filepath.Dir(baseFile), p), nil
}

func rootMapping(doc *yaml.Node) *yaml.Node {
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// recordSources stores the position of every key under node, keyed by its
// dotted path. Sequences are recorded as a whole.
func recordSources(node *yaml.Node, file, prefix string, out map[string]Source) {
	if node == nil || node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		path := key.Value
		if prefix != "" {
			path = prefix + "." + path
		}
		out[path] = nodeSource(file, val)
		recordSources(val, file, path, out)
	}
}

type includeRef struct {
	value string
	src   Source
}

func includeRefs(root *yaml.Node, file string) []includeRef {
	if root == nil {
		return nil
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		if root.Content[i].Value != "include" {
			continue
		}
		val := root.Content[i+1]
		items := []*yaml.Node{val}
		if val.Kind == yaml.SequenceNode {
			items = val.Content
		}
		var refs []includeRef
		for _, item := range items {
			if item.Kind == yaml.ScalarNode {
				refs = append(refs, includeRef{value: item.Value, src: nodeSource(file, item)})
			}
		}
		return refs
	}
	return nil
}

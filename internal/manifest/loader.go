package manifest

import (
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses a YAML manifest from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	mf, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	mf.Source = path

	return mf, nil
}

// Parse parses YAML data into a File.
func Parse(data []byte) (*File, error) {
	var mf File

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	applyDefaults(&mf)

	return &mf, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(mf *File) {
	if mf.Version == "" {
		mf.Version = "1"
	}

	for i := range mf.Types {
		t := &mf.Types[i]
		if t.Kind == "" {
			t.Kind = "class"
		}

		for j := range t.Members {
			m := &t.Members[j]
			if m.Kind == "" {
				m.Kind = "property"
			}

			if m.Access == "" {
				m.Access = "public"
			}
		}
	}
}

// Marshal serializes a File to YAML.
func Marshal(mf *File) ([]byte, error) {
	return yaml.Marshal(mf)
}

// Expand resolves doublestar patterns ("manifests/**/*.yaml") into a sorted,
// de-duplicated list of paths. A pattern without glob characters must name an
// existing file.
func Expand(patterns []string) ([]string, error) {
	var paths []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid manifest pattern %q: %w", pattern, err)
		}

		if len(matches) == 0 {
			return nil, fmt.Errorf("manifest pattern %q matched no files", pattern)
		}

		paths = append(paths, matches...)
	}

	slices.Sort(paths)

	return slices.Compact(paths), nil
}

// LoadAll expands the patterns and loads every matched manifest.
func LoadAll(patterns []string) ([]*File, error) {
	paths, err := Expand(patterns)
	if err != nil {
		return nil, err
	}

	files := make([]*File, 0, len(paths))

	for _, p := range paths {
		mf, err := LoadFile(p)
		if err != nil {
			return nil, err
		}

		files = append(files, mf)
	}

	return files, nil
}

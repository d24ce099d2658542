// Package loader implements config.Loader over every supported input format:
// HCL application definitions and JSON or YAML inverse dependency maps.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/depscope/internal/config"
	"github.com/specialistvlad/depscope/internal/ctxlog"
	"github.com/specialistvlad/depscope/internal/depmap"
	"github.com/specialistvlad/depscope/internal/fsutil"
	"github.com/specialistvlad/depscope/internal/hcl"
)

// Extensions lists the file extensions the loader picks up.
var Extensions = []string{".hcl", ".json", ".yaml", ".yml"}

// Loader reads and merges application files of any supported format.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// New creates a new multi-format loader.
func New() *Loader {
	return &Loader{}
}

// Load discovers every supported file under paths and merges them, in
// discovery order, into one model. Missing paths are skipped and an empty
// result is valid.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, Extensions...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered input files.", "count", len(files))

	model := config.NewModel()
	for _, file := range files {
		part, err := l.LoadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		model.Merge(part)
	}

	logger.Debug("Loading complete.", "files", len(files), "keys", model.Inverse.Len(), "entities", len(model.Entities))
	return model, nil
}

// LoadFile reads a single file, choosing the decoder by extension.
func (l *Loader) LoadFile(ctx context.Context, path string) (*config.Model, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decode(ctx, path, src)
}

// Decode parses src according to the extension of name.
func Decode(ctx context.Context, name string, src []byte) (*config.Model, error) {
	ctxlog.FromContext(ctx).Debug("Decoding input file.", "file", name, "bytes", len(src))

	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".hcl":
		return hcl.Parse(ctx, name, src)
	case ".json":
		m, err := depmap.ParseJSON(src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode JSON file %s: %w", name, err)
		}
		return &config.Model{Inverse: m}, nil
	case ".yaml", ".yml":
		m, err := depmap.ParseYAML(src)
		if err != nil {
			return nil, fmt.Errorf("failed to decode YAML file %s: %w", name, err)
		}
		return &config.Model{Inverse: m}, nil
	default:
		return nil, fmt.Errorf("unsupported file type %q for %s", ext, name)
	}
}

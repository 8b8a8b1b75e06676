// Package config provides the chip.yaml project loader.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the project file looked up when no explicit path
// is given.
const DefaultFilename = "chip.yaml"

// DefaultLibrary is assigned to sources that do not name one.
const DefaultLibrary = "work"

var _ ports.ProjectLoader = (*Loader)(nil)

// Loader implements ports.ProjectLoader using a YAML project file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads a project file and returns the project it describes.
// Relative source paths and the working directory are resolved against
// the directory containing the project file.
func (l *Loader) Load(path string) (*domain.Project, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read project file")
	}

	var chipfile ChipFile
	if err := yaml.Unmarshal(data, &chipfile); err != nil {
		return nil, zerr.Wrap(err, "failed to parse project file")
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve project directory")
	}

	project := &domain.Project{
		Name:    chipfile.Name,
		Dir:     dir,
		WorkDir: resolvePath(dir, chipfile.WorkDir),
		Tools:   make(map[string]domain.ToolSpec),
	}
	if chipfile.Name == "" {
		project.Name = filepath.Base(dir)
	}
	if chipfile.WorkDir == "" {
		project.WorkDir = filepath.Join(dir, "build")
	}

	seen := make(map[string]struct{})
	for _, src := range chipfile.Sources {
		if src.Path == "" {
			return nil, zerr.New("source entry without a path")
		}

		resolved := resolvePath(dir, src.Path)
		if _, dup := seen[resolved]; dup {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateSource, "project sources must be unique"), "path", resolved)
		}
		seen[resolved] = struct{}{}

		library := strings.ToLower(src.Library)
		if library == "" {
			library = DefaultLibrary
		}

		synthesise := true
		if src.Synthesise != nil {
			synthesise = *src.Synthesise
		}

		project.Files = append(project.Files, domain.SourceSpec{
			Path:       resolved,
			Library:    library,
			Synthesise: synthesise,
			Args:       src.Args,
		})
	}

	for name, dto := range chipfile.Tools {
		if dto.Executable == "" {
			return nil, zerr.With(zerr.New("tool without an executable"), "tool", name)
		}
		project.Tools[strings.ToLower(name)] = domain.ToolSpec{
			Executable:    dto.Executable,
			Compile:       dto.Compile,
			CreateLibrary: dto.CreateLibrary,
		}
	}

	if l.logger != nil {
		l.logger.Info(fmt.Sprintf("loaded project %s with %d source files", project.Name, len(project.Files)))
	}
	return project, nil
}

func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}

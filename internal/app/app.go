// Package app implements the application layer for chip.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.trai.ch/chip/internal/adapters/dot"
	"go.trai.ch/chip/internal/adapters/watcher"
	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports"
	"go.trai.ch/chip/internal/engine/orchestrator"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader       ports.ProjectLoader
	extractor    ports.UnitExtractor
	store        ports.CacheStore
	toolchains   ports.ToolchainFactory
	orchestrator *orchestrator.Orchestrator
	watcher      ports.Watcher
	logger       ports.Logger

	configPath string
}

// New creates a new App instance.
func New(
	loader ports.ProjectLoader,
	extractor ports.UnitExtractor,
	store ports.CacheStore,
	toolchains ports.ToolchainFactory,
	orch *orchestrator.Orchestrator,
	watch ports.Watcher,
	logger ports.Logger,
) *App {
	return &App{
		loader:       loader,
		extractor:    extractor,
		store:        store,
		toolchains:   toolchains,
		orchestrator: orch,
		watcher:      watch,
		logger:       logger,
		configPath:   "chip.yaml",
	}
}

// SetConfigPath overrides the project file location.
func (a *App) SetConfigPath(path string) {
	if path != "" {
		a.configPath = path
	}
}

// analysis bundles the outcome of parsing a whole project.
type analysis struct {
	project *domain.Project
	files   []*domain.SourceFile
	graph   *domain.DependencyGraph
}

// analyze loads the project, parses every source file and builds the
// dependency graph. Unresolved component references are reported as
// warnings; unresolved entity and package references become stub nodes
// inside the graph.
func (a *App) analyze() (*analysis, error) {
	project, err := a.loader.Load(a.configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load project")
	}

	files := make([]*domain.SourceFile, 0, len(project.Files))
	for _, spec := range project.Files {
		file, err := a.extractor.Parse(spec)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	graph, unbound := domain.BuildGraph(files)
	for _, ref := range unbound {
		a.logger.Warn(fmt.Sprintf("component %s is not defined by any project file", ref.Unit))
	}

	index := domain.NewSymbolIndex(files)
	for _, unit := range index.Ambiguous() {
		a.logger.Warn(fmt.Sprintf("%s is defined by more than one file", unit))
	}

	return &analysis{project: project, files: files, graph: graph}, nil
}

// Order returns every project file in dependency-first compile order.
func (a *App) Order(_ context.Context) ([]*domain.SourceFile, error) {
	an, err := a.analyze()
	if err != nil {
		return nil, err
	}
	return an.graph.TopologicalOrder()
}

// Impact returns, in safe rebuild order, the files affected by edits to
// the given paths. Paths may be absolute or relative to the project
// directory.
func (a *App) Impact(_ context.Context, paths []string) ([]*domain.SourceFile, error) {
	an, err := a.analyze()
	if err != nil {
		return nil, err
	}
	modified, err := an.resolvePaths(paths)
	if err != nil {
		return nil, err
	}
	return an.graph.Callchain(modified)
}

// ExportGraph writes the dependency graph in DOT format. The files named
// in highlight are visually marked.
func (a *App) ExportGraph(_ context.Context, w io.Writer, highlight []string) error {
	an, err := a.analyze()
	if err != nil {
		return err
	}

	marked := make(map[string]bool, len(highlight))
	if len(highlight) > 0 {
		files, err := an.resolvePaths(highlight)
		if err != nil {
			return err
		}
		for _, f := range files {
			marked[f.GraphLabel()] = true
		}
	}
	return dot.Export(w, an.graph, dot.Options{Highlight: marked})
}

// Compile analyses the project and compiles it with the named tool,
// skipping files the cache proves unchanged.
func (a *App) Compile(ctx context.Context, tool string, force bool) (*orchestrator.Result, error) {
	an, err := a.analyze()
	if err != nil {
		return nil, err
	}
	return a.compileFiles(ctx, an, an.files, tool, force)
}

// Watch compiles the project and then recompiles the impacted subset on
// every source change until the context is cancelled.
func (a *App) Watch(ctx context.Context, tool string) error {
	an, err := a.analyze()
	if err != nil {
		return err
	}
	if _, err := a.compileFiles(ctx, an, an.files, tool, false); err != nil {
		a.logger.Error(err)
	}

	rebuilds := make(chan []string)
	debounce := watcher.NewDebouncer(watcher.DefaultDebounceWindow, func(paths []string) {
		select {
		case rebuilds <- paths:
		case <-ctx.Done():
		}
	})

	if err := a.watcher.Start(ctx, an.project.Dir); err != nil {
		return zerr.Wrap(err, "failed to start file watcher")
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Error(err)
		}
	}()

	go func() {
		for event := range a.watcher.Events() {
			if isSourceFile(event.Path) {
				debounce.Add(event.Path)
			}
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s for changes", an.project.Dir))
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-rebuilds:
			if err := a.rebuild(ctx, tool, paths); err != nil {
				a.logger.Error(err)
			}
		}
	}
}

// rebuild re-analyses the project and compiles the files impacted by the
// changed paths. Changed files outside the project are ignored.
func (a *App) rebuild(ctx context.Context, tool string, paths []string) error {
	an, err := a.analyze()
	if err != nil {
		return err
	}

	byPath := an.filesByPath()
	var modified []*domain.SourceFile
	for _, path := range paths {
		if file, ok := byPath[path]; ok {
			modified = append(modified, file)
		}
	}
	if len(modified) == 0 {
		return nil
	}

	chain, err := an.graph.Callchain(modified)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("change impacts %d file(s)", len(chain)))
	_, err = a.compileFiles(ctx, an, chain, tool, false)
	return err
}

// Clean discards the build cache.
func (a *App) Clean(_ context.Context) error {
	if err := a.store.Clear(); err != nil {
		return err
	}
	a.logger.Info("build cache cleared")
	return nil
}

// compileFiles hands the subset to the orchestrator in project-declared
// order. The declared order is the compile order; the graph order only
// serves the order and impact queries.
func (a *App) compileFiles(ctx context.Context, an *analysis, subset []*domain.SourceFile, tool string, force bool) (*orchestrator.Result, error) {
	toolchain, err := a.toolchains.ForTool(an.project, tool)
	if err != nil {
		return nil, err
	}

	ordered := orderSubset(an.files, subset)

	result, err := a.orchestrator.Compile(ctx, toolchain, ordered, an.project.WorkDir, orchestrator.Options{Force: force})
	if err != nil {
		return nil, zerr.Wrap(err, "build execution failed")
	}
	a.logger.Info(fmt.Sprintf("compiled %d file(s), skipped %d", result.Compiled, result.Skipped))
	return result, nil
}

func (an *analysis) filesByPath() map[string]*domain.SourceFile {
	byPath := make(map[string]*domain.SourceFile, len(an.files))
	for _, f := range an.files {
		byPath[f.Path] = f
	}
	return byPath
}

// resolvePaths maps user-supplied paths onto project files.
func (an *analysis) resolvePaths(paths []string) ([]*domain.SourceFile, error) {
	byPath := an.filesByPath()
	files := make([]*domain.SourceFile, 0, len(paths))
	for _, path := range paths {
		resolved := path
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(an.project.Dir, resolved)
		}
		file, ok := byPath[filepath.Clean(resolved)]
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrUnknownFile, "cannot resolve against the project"), "path", path)
		}
		files = append(files, file)
	}
	return files, nil
}

// orderSubset filters the full compile order down to the given subset.
func orderSubset(order, subset []*domain.SourceFile) []*domain.SourceFile {
	wanted := make(map[*domain.SourceFile]struct{}, len(subset))
	for _, f := range subset {
		wanted[f] = struct{}{}
	}
	ordered := make([]*domain.SourceFile, 0, len(subset))
	for _, f := range order {
		if _, ok := wanted[f]; ok {
			ordered = append(ordered, f)
		}
	}
	return ordered
}

func isSourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vhd", ".vhdl":
		return true
	}
	return false
}

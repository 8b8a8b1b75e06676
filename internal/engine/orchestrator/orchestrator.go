// Package orchestrator drives incremental compilation of an ordered file
// list through an external tool.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options controls a compilation run.
type Options struct {
	// Force compiles every file regardless of cache state.
	Force bool
}

// Result summarises a compilation run.
type Result struct {
	// Compiled is the number of files handed to the tool.
	Compiled int
	// Skipped is the number of files satisfied by the cache.
	Skipped int
}

// Orchestrator decides per file whether the tool must run, keeps the
// cache in sync with what the tool saw, and ensures target libraries
// exist before any file is compiled into them.
type Orchestrator struct {
	store     ports.CacheStore
	telemetry ports.Telemetry
	logger    ports.Logger
}

// New creates a new Orchestrator.
func New(store ports.CacheStore, telemetry ports.Telemetry, logger ports.Logger) *Orchestrator {
	return &Orchestrator{
		store:     store,
		telemetry: telemetry,
		logger:    logger,
	}
}

// Compile runs the tool over the files in the given order. The caller is
// responsible for ordering; files are processed exactly as passed.
//
// A file is compiled when the run is forced, when its content changed
// since the tool last saw it, or when its target library was created
// during this run. In the last case the library's previous contents are
// gone, so cache records for it no longer hold.
//
// A missing source file aborts the run. A tool failure aborts the run
// after dropping the file's cache record, so the file is retried next
// run. The cache is persisted however the run ends, keeping the records
// of files already processed before an abort.
func (o *Orchestrator) Compile(ctx context.Context, tool ports.Toolchain, files []*domain.SourceFile, workdir string, opts Options) (result *Result, err error) {
	result = &Result{}
	createdLibraries := make(map[string]bool)

	defer func() {
		if saveErr := o.store.Save(); saveErr != nil {
			o.logger.Error(saveErr)
			if err == nil {
				result = nil
				err = zerr.Wrap(saveErr, "failed to persist build cache")
			}
		}
	}()

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, zerr.Wrap(err, "compilation interrupted")
		}

		if _, err := os.Stat(file.Path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, zerr.With(zerr.Wrap(domain.ErrMissingSource, "compilation aborted"), "path", file.Path)
			}
			return nil, zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", file.Path)
		}

		library := file.Library.String()
		fresh, err := o.ensureLibrary(ctx, tool, library, workdir, createdLibraries)
		if err != nil {
			return nil, err
		}

		if !opts.Force && !fresh && !o.store.Changed(tool.Name(), file.Path) {
			result.Skipped++
			_, vertex := o.telemetry.Record(ctx, "compile "+file.Path)
			vertex.Cached()
			vertex.Complete(nil)
			continue
		}

		if err := o.compileFile(ctx, tool, file, workdir); err != nil {
			return nil, err
		}
		result.Compiled++
	}

	if result.Skipped > 0 {
		o.logger.Info(fmt.Sprintf("skipped %d file(s) already up to date", result.Skipped))
	}
	return result, nil
}

// ensureLibrary makes the target library exist, creating it at most once
// per run. It reports whether the library was created during this run,
// which invalidates all cache records targeting it.
//
// A library counts as existing only when the cache records it and it is
// physically present. A record without the physical library means it was
// deleted since the last run; a physical library without a record has
// unknown contents. Both are recreated.
func (o *Orchestrator) ensureLibrary(ctx context.Context, tool ports.Toolchain, library, workdir string, created map[string]bool) (bool, error) {
	if created[library] {
		return true, nil
	}
	if o.store.HasLibrary(tool.Name(), library) && tool.LibraryExists(library, workdir) {
		return false, nil
	}

	if err := tool.CreateLibrary(ctx, library, workdir); err != nil {
		return false, zerr.With(zerr.Wrap(err, "failed to create library"), "library", library)
	}
	o.store.AddLibrary(tool.Name(), library)
	created[library] = true
	o.logger.Info(fmt.Sprintf("created library %s", library))
	return true, nil
}

// compileFile records the file's current content hash and invokes the
// tool. The record is taken before the invocation so the cache reflects
// exactly what the tool saw; a failing invocation rolls the record back
// before the error is reported.
func (o *Orchestrator) compileFile(ctx context.Context, tool ports.Toolchain, file *domain.SourceFile, workdir string) error {
	vctx, vertex := o.telemetry.Record(ctx, "compile "+file.Path)

	if err := o.store.AddFile(tool.Name(), file.Path, time.Now()); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "failed to record source file"), "path", file.Path)
		vertex.Complete(wrapped)
		return wrapped
	}

	if err := tool.Compile(vctx, file, workdir); err != nil {
		o.store.RemoveFile(tool.Name(), file.Path)
		wrapped := zerr.With(zerr.Wrap(err, "compilation failed"), "path", file.Path)
		vertex.Complete(wrapped)
		return wrapped
	}

	vertex.Complete(nil)
	return nil
}

package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chip/internal/adapters/telemetry"
	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports/mocks"
	"go.trai.ch/chip/internal/engine/orchestrator"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	tool    *mocks.MockToolchain
	store   *mocks.MockCacheStore
	orch    *orchestrator.Orchestrator
	workdir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	tool := mocks.NewMockToolchain(ctrl)
	tool.EXPECT().Name().Return("ghdl").AnyTimes()

	store := mocks.NewMockCacheStore(ctrl)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	return &fixture{
		tool:    tool,
		store:   store,
		orch:    orchestrator.New(store, telemetry.NewNoOp(), log),
		workdir: t.TempDir(),
	}
}

func (f *fixture) sourceFile(t *testing.T, name, library string) *domain.SourceFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("entity e is end;"), 0o644))
	return &domain.SourceFile{Path: path, Library: domain.NewInternedString(library)}
}

func TestCompileFirstRun(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "work")
	b := f.sourceFile(t, "b.vhd", "work")

	f.store.EXPECT().HasLibrary("ghdl", "work").Return(false)
	f.tool.EXPECT().CreateLibrary(gomock.Any(), "work", f.workdir).Return(nil)
	f.store.EXPECT().AddLibrary("ghdl", "work")

	// A library created during the run invalidates every file targeting
	// it, so the cache is never even consulted.
	f.store.EXPECT().AddFile("ghdl", a.Path, gomock.Any()).Return(nil)
	f.store.EXPECT().AddFile("ghdl", b.Path, gomock.Any()).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), a, f.workdir).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), b, f.workdir).Return(nil)
	f.store.EXPECT().Save().Return(nil)

	result, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{a, b}, f.workdir, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Compiled)
	assert.Equal(t, 0, result.Skipped)
}

func TestCompileSkipsUnchanged(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "work")

	f.store.EXPECT().HasLibrary("ghdl", "work").Return(true)
	f.tool.EXPECT().LibraryExists("work", f.workdir).Return(true)
	f.store.EXPECT().Changed("ghdl", a.Path).Return(false)
	f.store.EXPECT().Save().Return(nil)

	result, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{a}, f.workdir, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Compiled)
	assert.Equal(t, 1, result.Skipped)
}

func TestCompileForce(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "work")

	f.store.EXPECT().HasLibrary("ghdl", "work").Return(true)
	f.tool.EXPECT().LibraryExists("work", f.workdir).Return(true)
	f.store.EXPECT().AddFile("ghdl", a.Path, gomock.Any()).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), a, f.workdir).Return(nil)
	f.store.EXPECT().Save().Return(nil)

	result, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{a}, f.workdir, orchestrator.Options{Force: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Compiled)
}

func TestCompileChangedFile(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "work")

	f.store.EXPECT().HasLibrary("ghdl", "work").Return(true)
	f.tool.EXPECT().LibraryExists("work", f.workdir).Return(true)
	f.store.EXPECT().Changed("ghdl", a.Path).Return(true)
	f.store.EXPECT().AddFile("ghdl", a.Path, gomock.Any()).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), a, f.workdir).Return(nil)
	f.store.EXPECT().Save().Return(nil)

	result, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{a}, f.workdir, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Compiled)
}

func TestCompileRecreatesDeletedLibrary(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "work")

	// The cache remembers the library but it is gone from disk, so it is
	// recreated and the unchanged file recompiled into it.
	f.store.EXPECT().HasLibrary("ghdl", "work").Return(true)
	f.tool.EXPECT().LibraryExists("work", f.workdir).Return(false)
	f.tool.EXPECT().CreateLibrary(gomock.Any(), "work", f.workdir).Return(nil)
	f.store.EXPECT().AddLibrary("ghdl", "work")
	f.store.EXPECT().AddFile("ghdl", a.Path, gomock.Any()).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), a, f.workdir).Return(nil)
	f.store.EXPECT().Save().Return(nil)

	result, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{a}, f.workdir, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Compiled)
	assert.Equal(t, 0, result.Skipped)
}

func TestCompileCreatesEachLibraryOnce(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "lib_comp")
	b := f.sourceFile(t, "b.vhd", "lib_comp")
	c := f.sourceFile(t, "c.vhd", "work")

	f.store.EXPECT().HasLibrary("ghdl", "lib_comp").Return(false)
	f.tool.EXPECT().CreateLibrary(gomock.Any(), "lib_comp", f.workdir).Return(nil)
	f.store.EXPECT().AddLibrary("ghdl", "lib_comp")

	f.store.EXPECT().HasLibrary("ghdl", "work").Return(true)
	f.tool.EXPECT().LibraryExists("work", f.workdir).Return(true)
	f.store.EXPECT().Changed("ghdl", c.Path).Return(false)

	f.store.EXPECT().AddFile("ghdl", a.Path, gomock.Any()).Return(nil)
	f.store.EXPECT().AddFile("ghdl", b.Path, gomock.Any()).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), a, f.workdir).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), b, f.workdir).Return(nil)
	f.store.EXPECT().Save().Return(nil)

	result, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{a, b, c}, f.workdir, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Compiled)
	assert.Equal(t, 1, result.Skipped)
}

func TestCompileToolFailureDropsRecord(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "work")
	toolErr := errors.New("syntax error near 'begin'")

	f.store.EXPECT().HasLibrary("ghdl", "work").Return(true)
	f.tool.EXPECT().LibraryExists("work", f.workdir).Return(true)
	f.store.EXPECT().Changed("ghdl", a.Path).Return(true)
	f.store.EXPECT().AddFile("ghdl", a.Path, gomock.Any()).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), a, f.workdir).Return(toolErr)

	// The failed file's record is dropped and the cache persisted, so
	// the next run retries it.
	f.store.EXPECT().RemoveFile("ghdl", a.Path)
	f.store.EXPECT().Save().Return(nil)

	_, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{a}, f.workdir, orchestrator.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, toolErr))
}

func TestCompileMissingSource(t *testing.T) {
	f := newFixture(t)
	missing := &domain.SourceFile{
		Path:    filepath.Join(t.TempDir(), "missing.vhd"),
		Library: domain.NewInternedString("work"),
	}

	f.store.EXPECT().Save().Return(nil)

	_, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{missing}, f.workdir, orchestrator.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingSource))
}

func TestCompileAbortPersistsEarlierRecords(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "work")
	missing := &domain.SourceFile{
		Path:    filepath.Join(t.TempDir(), "missing.vhd"),
		Library: domain.NewInternedString("work"),
	}

	f.store.EXPECT().HasLibrary("ghdl", "work").Return(true)
	f.tool.EXPECT().LibraryExists("work", f.workdir).Return(true)
	f.store.EXPECT().Changed("ghdl", a.Path).Return(true)
	f.store.EXPECT().AddFile("ghdl", a.Path, gomock.Any()).Return(nil)
	f.tool.EXPECT().Compile(gomock.Any(), a, f.workdir).Return(nil)

	// The abort still persists the cache, so a.vhd's fresh record is not
	// lost and the next run does not recompile it.
	f.store.EXPECT().Save().Return(nil)

	_, err := f.orch.Compile(context.Background(), f.tool, []*domain.SourceFile{a, missing}, f.workdir, orchestrator.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMissingSource))
}

func TestCompileCancelledContext(t *testing.T) {
	f := newFixture(t)
	a := f.sourceFile(t, "a.vhd", "work")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f.store.EXPECT().Save().Return(nil)

	_, err := f.orch.Compile(ctx, f.tool, []*domain.SourceFile{a}, f.workdir, orchestrator.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestCompileEmptyFileList(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().Save().Return(nil)

	result, err := f.orch.Compile(context.Background(), f.tool, nil, f.workdir, orchestrator.Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Compiled)
	assert.Equal(t, 0, result.Skipped)
}

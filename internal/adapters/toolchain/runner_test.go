package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chip/internal/adapters/logger"
	"go.trai.ch/chip/internal/core/domain"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("tests require a POSIX shell")
	}
}

func TestCompileExpandsTemplate(t *testing.T) {
	requirePosixShell(t)
	workdir := t.TempDir()

	runner := NewRunner("ghdl", domain.ToolSpec{
		Executable: "sh",
		Compile:    []string{"-c", "printf '%s %s %s' {file} {library} {workdir} > result.txt"},
	}, logger.New())

	file := &domain.SourceFile{
		Path:    "/src/counter.vhd",
		Library: domain.NewInternedString("lib_comp"),
	}
	require.NoError(t, runner.Compile(context.Background(), file, workdir))

	data, err := os.ReadFile(filepath.Join(workdir, "result.txt"))
	require.NoError(t, err)
	assert.Equal(t, "/src/counter.vhd lib_comp "+workdir, string(data))
}

func TestCompileAppendsPerFileArgs(t *testing.T) {
	requirePosixShell(t)

	runner := NewRunner("ghdl", domain.ToolSpec{
		Executable: "sh",
		Compile:    []string{"-c", `test "$1" = "--std=08"`, "chip"},
	}, logger.New())

	file := &domain.SourceFile{
		Path:    "/src/counter.vhd",
		Library: domain.NewInternedString("work"),
		Args:    map[string]string{"ghdl": "--std=08"},
	}
	assert.NoError(t, runner.Compile(context.Background(), file, t.TempDir()))
}

func TestCompileFailure(t *testing.T) {
	requirePosixShell(t)

	runner := NewRunner("ghdl", domain.ToolSpec{
		Executable: "sh",
		Compile:    []string{"-c", "echo broken >&2; exit 3"},
	}, logger.New())

	file := &domain.SourceFile{
		Path:    "/src/counter.vhd",
		Library: domain.NewInternedString("work"),
	}
	err := runner.Compile(context.Background(), file, t.TempDir())
	require.Error(t, err)
	assert.ErrorContains(t, err, "tool invocation failed")
}

func TestCompileMissingExecutable(t *testing.T) {
	runner := NewRunner("ghdl", domain.ToolSpec{
		Executable: "definitely-not-a-real-compiler",
		Compile:    []string{"{file}"},
	}, logger.New())

	file := &domain.SourceFile{
		Path:    "/src/counter.vhd",
		Library: domain.NewInternedString("work"),
	}
	assert.Error(t, runner.Compile(context.Background(), file, t.TempDir()))
}

func TestCreateLibraryDefault(t *testing.T) {
	workdir := t.TempDir()
	runner := NewRunner("ghdl", domain.ToolSpec{Executable: "ghdl"}, logger.New())

	assert.False(t, runner.LibraryExists("lib_comp", workdir))
	require.NoError(t, runner.CreateLibrary(context.Background(), "Lib_Comp", workdir))
	assert.True(t, runner.LibraryExists("lib_comp", workdir))
	assert.True(t, runner.LibraryExists("LIB_COMP", workdir))
}

func TestCreateLibraryTemplate(t *testing.T) {
	requirePosixShell(t)
	workdir := t.TempDir()

	runner := NewRunner("modelsim", domain.ToolSpec{
		Executable:    "mkdir",
		CreateLibrary: []string{"-p", "{workdir}/{library}"},
	}, logger.New())

	require.NoError(t, runner.CreateLibrary(context.Background(), "lib_mem", workdir))
	assert.True(t, runner.LibraryExists("lib_mem", workdir))
}

func TestNewFromProject(t *testing.T) {
	project := &domain.Project{
		Tools: map[string]domain.ToolSpec{
			"ghdl": {Executable: "ghdl", Compile: []string{"-a", "{file}"}},
		},
	}

	runner, err := NewFromProject(project, "GHDL", logger.New())
	require.NoError(t, err)
	assert.Equal(t, "ghdl", runner.Name())

	_, err = NewFromProject(project, "modelsim", logger.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnknownTool))
}

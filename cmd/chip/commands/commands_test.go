package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/chip/cmd/chip/commands"
	"go.trai.ch/chip/internal/adapters/cache"
	"go.trai.ch/chip/internal/adapters/config"
	"go.trai.ch/chip/internal/adapters/fs"
	"go.trai.ch/chip/internal/adapters/logger"
	"go.trai.ch/chip/internal/adapters/telemetry"
	"go.trai.ch/chip/internal/adapters/toolchain"
	"go.trai.ch/chip/internal/adapters/vhdl"
	"go.trai.ch/chip/internal/adapters/watcher"
	"go.trai.ch/chip/internal/app"
	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/engine/orchestrator"
)

const projectYAML = `
name: demo
workdir: build
sources:
  - path: util_pkg.vhd
  - path: counter.vhd
  - path: top.vhd
tools:
  ghdl:
    executable: sh
    compile: ["-c", "echo {library} {file} >> compiled.log"]
`

const utilPkgVHDL = `
package util_pkg is
  constant width : natural := 8;
end package util_pkg;
`

const counterVHDL = `
library ieee;
use work.util_pkg.all;

entity counter is
  port (clk : in std_logic);
end entity counter;

architecture rtl of counter is
begin
end architecture;
`

const topVHDL = `
entity top is
end entity top;

architecture rtl of top is
  component counter is
    port (clk : in std_logic);
  end component;
begin
  u_counter : counter port map (clk => clk);
end architecture;
`

// newProject lays out a small three file project on disk and returns the
// project file path.
func newProject(t *testing.T) string {
	return newProjectWithYAML(t, projectYAML)
}

func newProjectWithYAML(t *testing.T, yaml string) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"chip.yaml":    yaml,
		"util_pkg.vhd": utilPkgVHDL,
		"counter.vhd":  counterVHDL,
		"top.vhd":      topVHDL,
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return filepath.Join(dir, "chip.yaml")
}

func newCLI(t *testing.T, configPath string) (*commands.CLI, *bytes.Buffer) {
	t.Helper()

	dir := filepath.Dir(configPath)
	log := logger.New()
	store := cache.NewStore(filepath.Join(dir, ".chip", "cache.json"), fs.NewHasher(), log)
	watch, err := watcher.NewWatcher()
	require.NoError(t, err)

	a := app.New(
		config.NewLoader(log),
		vhdl.NewExtractor(),
		store,
		toolchain.NewFactory(log),
		orchestrator.New(store, telemetry.NewNoOp(), log),
		watch,
		log,
	)

	cli := commands.New(a)
	out := &bytes.Buffer{}
	cli.SetOutput(out)
	return cli, out
}

func execute(t *testing.T, cli *commands.CLI, args ...string) error {
	t.Helper()
	cli.SetArgs(args)
	return cli.Execute(context.Background())
}

func TestOrderCommand(t *testing.T) {
	configPath := newProject(t)
	cli, out := newCLI(t, configPath)

	require.NoError(t, execute(t, cli, "-c", configPath, "order"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	// The package is used by counter, and top instantiates counter, so
	// the compile order is fixed.
	assert.Contains(t, lines[0], "util_pkg.vhd")
	assert.Contains(t, lines[1], "counter.vhd")
	assert.Contains(t, lines[2], "top.vhd")
}

func TestImpactCommand(t *testing.T) {
	configPath := newProject(t)
	cli, out := newCLI(t, configPath)

	require.NoError(t, execute(t, cli, "-c", configPath, "impact", "util_pkg.vhd"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "util_pkg.vhd")
	assert.Contains(t, lines[1], "counter.vhd")
	assert.Contains(t, lines[2], "top.vhd")
}

func TestImpactCommandLeafFile(t *testing.T) {
	configPath := newProject(t)
	cli, out := newCLI(t, configPath)

	require.NoError(t, execute(t, cli, "-c", configPath, "impact", "top.vhd"))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "top.vhd")
}

func TestImpactCommandUnknownFile(t *testing.T) {
	configPath := newProject(t)
	cli, _ := newCLI(t, configPath)

	err := execute(t, cli, "-c", configPath, "impact", "missing.vhd")
	assert.ErrorIs(t, err, domain.ErrUnknownFile)
}

func TestGraphCommand(t *testing.T) {
	configPath := newProject(t)
	cli, out := newCLI(t, configPath)

	require.NoError(t, execute(t, cli, "-c", configPath, "graph"))

	dotOutput := out.String()
	assert.Contains(t, dotOutput, "digraph dependencies {")
	assert.Contains(t, dotOutput, `"counter" -> "util_pkg";`)
	assert.Contains(t, dotOutput, `"top" -> "counter";`)
}

func TestCompileCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test requires a POSIX shell")
	}
	configPath := newProject(t)
	dir := filepath.Dir(configPath)
	cli, _ := newCLI(t, configPath)

	require.NoError(t, execute(t, cli, "-c", configPath, "compile", "--tool", "ghdl"))

	data, err := os.ReadFile(filepath.Join(dir, "build", "compiled.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "util_pkg.vhd")
	assert.Contains(t, lines[1], "counter.vhd")
	assert.Contains(t, lines[2], "top.vhd")

	// A second run is fully satisfied by the cache.
	cli2, _ := newCLI(t, configPath)
	require.NoError(t, execute(t, cli2, "-c", configPath, "compile", "--tool", "ghdl"))

	data, err = os.ReadFile(filepath.Join(dir, "build", "compiled.log"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3)

	// Forcing ignores the cache.
	cli3, _ := newCLI(t, configPath)
	require.NoError(t, execute(t, cli3, "-c", configPath, "compile", "--tool", "ghdl", "--force"))

	data, err = os.ReadFile(filepath.Join(dir, "build", "compiled.log"))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 6)
}

func TestCompileCommandDeclaredOrder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test requires a POSIX shell")
	}
	reversedYAML := `
name: demo
workdir: build
sources:
  - path: top.vhd
  - path: counter.vhd
  - path: util_pkg.vhd
tools:
  ghdl:
    executable: sh
    compile: ["-c", "echo {library} {file} >> compiled.log"]
`
	configPath := newProjectWithYAML(t, reversedYAML)
	dir := filepath.Dir(configPath)
	cli, _ := newCLI(t, configPath)

	require.NoError(t, execute(t, cli, "-c", configPath, "compile", "--tool", "ghdl"))

	// Compilation follows the declared source order, not the graph
	// order. Ordering sources correctly is the project author's job.
	data, err := os.ReadFile(filepath.Join(dir, "build", "compiled.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "top.vhd")
	assert.Contains(t, lines[1], "counter.vhd")
	assert.Contains(t, lines[2], "util_pkg.vhd")
}

func TestCompileCommandUnknownTool(t *testing.T) {
	configPath := newProject(t)
	cli, _ := newCLI(t, configPath)

	err := execute(t, cli, "-c", configPath, "compile", "--tool", "quartus")
	assert.ErrorIs(t, err, domain.ErrUnknownTool)
}

func TestCleanCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test requires a POSIX shell")
	}
	configPath := newProject(t)
	dir := filepath.Dir(configPath)
	cli, _ := newCLI(t, configPath)

	require.NoError(t, execute(t, cli, "-c", configPath, "compile", "--tool", "ghdl"))
	require.FileExists(t, filepath.Join(dir, ".chip", "cache.json"))

	require.NoError(t, execute(t, cli, "-c", configPath, "clean"))
	assert.NoFileExists(t, filepath.Join(dir, ".chip", "cache.json"))
}

func TestVersionCommand(t *testing.T) {
	configPath := newProject(t)
	cli, out := newCLI(t, configPath)

	require.NoError(t, execute(t, cli, "version"))
	assert.Equal(t, "dev", strings.TrimSpace(out.String()))
}

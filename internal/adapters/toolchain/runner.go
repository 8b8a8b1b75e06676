// Package toolchain runs external HDL compilers through the command
// templates declared in the project file.
package toolchain

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/chip/internal/core/domain"
	"go.trai.ch/chip/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Toolchain = (*Runner)(nil)

// Runner implements ports.Toolchain using os/exec. Command argument
// templates may contain the {file}, {library} and {workdir} placeholders,
// which are expanded per invocation.
type Runner struct {
	name   string
	spec   domain.ToolSpec
	logger ports.Logger
}

// NewRunner creates a runner for a single tool.
func NewRunner(name string, spec domain.ToolSpec, logger ports.Logger) *Runner {
	return &Runner{
		name:   strings.ToLower(name),
		spec:   spec,
		logger: logger,
	}
}

// NewFromProject creates a runner for the named tool of the project.
func NewFromProject(project *domain.Project, tool string, logger ports.Logger) (*Runner, error) {
	name := strings.ToLower(tool)
	spec, ok := project.Tools[name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrUnknownTool, "not declared in the project file"), "tool", tool)
	}
	return NewRunner(name, spec, logger), nil
}

// Name returns the tool name as declared in the project file.
func (r *Runner) Name() string {
	return r.name
}

// Compile analyses a single source file into its library. Per-file
// arguments configured for this tool are appended to the expanded
// command template.
func (r *Runner) Compile(ctx context.Context, file *domain.SourceFile, workdir string) error {
	args := expand(r.spec.Compile, map[string]string{
		"file":    file.Path,
		"library": file.Library.String(),
		"workdir": workdir,
	})
	if extra := file.Args[r.name]; extra != "" {
		args = append(args, strings.Fields(extra)...)
	}
	return r.run(ctx, args, workdir)
}

// CreateLibrary prepares a library inside the working directory. Tools
// without a create_library template get a plain directory, which is all
// that directory-mapped tools need.
func (r *Runner) CreateLibrary(ctx context.Context, name, workdir string) error {
	if len(r.spec.CreateLibrary) == 0 {
		if err := os.MkdirAll(libraryPath(name, workdir), 0o750); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to create library directory"), "library", name)
		}
		return nil
	}

	args := expand(r.spec.CreateLibrary, map[string]string{
		"library": strings.ToLower(name),
		"workdir": workdir,
	})
	return r.run(ctx, args, workdir)
}

// LibraryExists reports whether the library is present in the working
// directory. Libraries are mapped onto directories.
func (r *Runner) LibraryExists(name, workdir string) bool {
	info, err := os.Stat(libraryPath(name, workdir))
	return err == nil && info.IsDir()
}

// run executes the tool with the given arguments, streaming its output
// line by line into the telemetry vertex when one is attached to the
// context, and into the logger otherwise.
func (r *Runner) run(ctx context.Context, args []string, workdir string) error {
	if err := os.MkdirAll(workdir, 0o750); err != nil {
		return zerr.Wrap(err, "failed to create working directory")
	}

	cmd := exec.CommandContext(ctx, r.spec.Executable, args...) //nolint:gosec // command comes from project config
	cmd.Dir = workdir

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open stdout pipe")
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return zerr.Wrap(err, "failed to open stderr pipe")
	}

	if err := cmd.Start(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to start tool"), "tool", r.name)
	}

	outW, errW := r.outputs(ctx)
	var group errgroup.Group
	group.Go(func() error { return pumpLines(stdout, outW) })
	group.Go(func() error { return pumpLines(stderr, errW) })
	pumpErr := group.Wait()

	if err := cmd.Wait(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(zerr.Wrap(err, "tool invocation failed"), "tool", r.name), "exit_code", exitCode)
	}
	return pumpErr
}

// outputs picks the destination for tool output lines.
func (r *Runner) outputs(ctx context.Context) (io.Writer, io.Writer) {
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		return vertex.Stdout(), vertex.Stderr()
	}
	return &logWriter{logger: r.logger}, &logWriter{logger: r.logger, warn: true}
}

func pumpLines(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if _, err := w.Write(append(scanner.Bytes(), '\n')); err != nil {
			return zerr.Wrap(err, "failed to forward tool output")
		}
	}
	if err := scanner.Err(); err != nil {
		return zerr.Wrap(err, "failed to read tool output")
	}
	return nil
}

// logWriter forwards whole lines to the logger.
type logWriter struct {
	logger ports.Logger
	warn   bool
}

func (w *logWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSuffix(string(p), "\n"), "\n") {
		if w.warn {
			w.logger.Warn(line)
		} else {
			w.logger.Info(line)
		}
	}
	return len(p), nil
}

func expand(template []string, vars map[string]string) []string {
	args := make([]string, 0, len(template))
	for _, arg := range template {
		for key, value := range vars {
			arg = strings.ReplaceAll(arg, "{"+key+"}", value)
		}
		args = append(args, arg)
	}
	return args
}

func libraryPath(name, workdir string) string {
	return filepath.Join(workdir, strings.ToLower(name))
}

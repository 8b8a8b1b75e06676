package ports

import (
	"context"

	"go.trai.ch/chip/internal/core/domain"
)

// Toolchain is the external compile capability supplied by a vendor tool
// adapter. Compile and CreateLibrary block until the external executable
// exits; a non-zero exit is reported as an error carrying the exit code
// and captured output in its metadata.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Name identifies the tool; it keys the tool's build cache record.
	Name() string

	// Compile compiles one source file into its library.
	Compile(ctx context.Context, file *domain.SourceFile, workdir string) error

	// CreateLibrary creates a compilation library in the working
	// directory.
	CreateLibrary(ctx context.Context, name, workdir string) error

	// LibraryExists reports whether the library physically exists in the
	// working directory. The check is tool specific (a directory for
	// some tools, a marker file for others).
	LibraryExists(name, workdir string) bool
}

// ToolchainFactory builds a Toolchain for a tool declared in the project
// file. Asking for an undeclared tool fails with domain.ErrUnknownTool.
type ToolchainFactory interface {
	ForTool(project *domain.Project, tool string) (Toolchain, error)
}

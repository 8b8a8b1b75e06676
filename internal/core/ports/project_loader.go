package ports

import "go.trai.ch/chip/internal/core/domain"

// ProjectLoader defines the interface for loading the project
// description: the ordered source list with library assignments and the
// tool definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=project_loader.go -destination=mocks/mock_project_loader.go -package=mocks
type ProjectLoader interface {
	// Load reads the project file at the given path.
	Load(path string) (*domain.Project, error)
}

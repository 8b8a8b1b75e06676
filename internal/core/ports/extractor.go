package ports

import "go.trai.ch/chip/internal/core/domain"

// UnitExtractor resolves the design units a source file declares and
// references. Implementations are best-effort lexical passes: constructs
// they do not recognize simply yield no items, never an error. Errors are
// reserved for I/O failures.
//
//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type UnitExtractor interface {
	// Parse reads the source named by spec and returns its extracted
	// structure.
	Parse(spec domain.SourceSpec) (*domain.SourceFile, error)
}

package domain

import "go.trai.ch/zerr"

var (
	// ErrCycleDetected is returned when the dependency graph contains a
	// cycle and no compile order exists.
	ErrCycleDetected = zerr.New("cyclic dependency detected")

	// ErrMissingSource is returned when a project source file does not
	// exist on disk at build time.
	ErrMissingSource = zerr.New("source file not found")

	// ErrUnknownTool is returned when a build names a tool the project
	// does not define.
	ErrUnknownTool = zerr.New("unknown tool")

	// ErrDuplicateSource is returned when a project declares the same
	// source path twice.
	ErrDuplicateSource = zerr.New("source file already declared")

	// ErrUnknownFile is returned when a change-impact query names a file
	// that is not part of the project.
	ErrUnknownFile = zerr.New("file not in project")
)

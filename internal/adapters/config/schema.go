package config

// ChipFile represents the structure of the chip.yaml project file.
type ChipFile struct {
	Name    string             `yaml:"name"`
	WorkDir string             `yaml:"workdir"`
	Sources []SourceDTO        `yaml:"sources"`
	Tools   map[string]ToolDTO `yaml:"tools"`
}

// SourceDTO represents a source file entry in the project file.
type SourceDTO struct {
	Path       string            `yaml:"path"`
	Library    string            `yaml:"library"`
	Synthesise *bool             `yaml:"synthesise"`
	Args       map[string]string `yaml:"args"`
}

// ToolDTO represents a tool definition in the project file. Command
// arguments may contain the {file}, {library} and {workdir} placeholders.
type ToolDTO struct {
	Executable    string   `yaml:"executable"`
	Compile       []string `yaml:"compile"`
	CreateLibrary []string `yaml:"create_library"`
}

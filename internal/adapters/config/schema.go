package config

// File represents the structure of the .poetrysort.yaml configuration file.
type File struct {
	Version string     `yaml:"version"`
	Marker  string     `yaml:"marker"`
	Tables  []TableDTO `yaml:"tables"`
}

// TableDTO represents a table selection in the configuration.
type TableDTO struct {
	Path string `yaml:"path"`
	Pin  string `yaml:"pin"`
}

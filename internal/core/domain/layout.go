package domain

const (
	// ManifestFileName is the name of the manifest searched for when no path is given.
	ManifestFileName = "pyproject.toml"

	// ConfigFileName is the name of the optional tool configuration file.
	ConfigFileName = ".poetrysort.yaml"

	// FilePerm is the permission used when a manifest has to be created (rw-r--r--).
	FilePerm = 0o644
)

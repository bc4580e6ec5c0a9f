package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestNotFound is returned when no manifest exists at the requested path.
	ErrManifestNotFound = zerr.New("manifest not found")

	// ErrManifestReadFailed is returned when the manifest exists but cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read manifest")

	// ErrManifestParseFailed is returned when the manifest is not valid TOML.
	ErrManifestParseFailed = zerr.New("failed to parse manifest")

	// ErrManifestLayout is returned when a line of a valid manifest cannot be classified.
	ErrManifestLayout = zerr.New("unrecognized manifest layout")

	// ErrInlineTable is returned when a configured table is defined with an inline
	// table or dotted keys instead of its own section.
	ErrInlineTable = zerr.New("dependency table is not a standalone section")

	// ErrManifestWriteFailed is returned when the rewritten manifest cannot be persisted.
	ErrManifestWriteFailed = zerr.New("failed to write manifest")

	// ErrManifestModified is returned when the manifest changed on disk while it was being normalized.
	ErrManifestModified = zerr.New("manifest was modified during normalization")

	// ErrRoundTripMismatch is returned when the rendered manifest does not decode to the original data.
	ErrRoundTripMismatch = zerr.New("rendered manifest differs from the original data")

	// ErrManifestReordered signals that at least one dependency table was reordered.
	// It is not a tool failure: the CLI maps it to the "changed" exit status.
	ErrManifestReordered = zerr.New("dependency tables were not sorted")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidTableSpec is returned when a configured table has no path.
	ErrInvalidTableSpec = zerr.New("invalid table specification, path must not be empty")

	// ErrUnsupportedConfigVersion is returned when the config file declares a schema version this build does not know.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrInvalidMarker is returned when the configured marker is not a TOML comment.
	ErrInvalidMarker = zerr.New("invalid marker, expected a line starting with '#'")
)

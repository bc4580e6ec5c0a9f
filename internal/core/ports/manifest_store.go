package ports

// ManifestStore defines the interface for reading and persisting manifests.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_store.go -destination=mocks/mock_manifest_store.go -package=mocks
type ManifestStore interface {
	// Locate returns the path of the nearest manifest in dir or its parents.
	Locate(dir string) (string, error)

	// Read returns the full content of the manifest at path.
	Read(path string) ([]byte, error)

	// Write replaces the content of the manifest at path.
	// Implementations refuse to overwrite a file that changed since it was read.
	Write(path string, data []byte) error
}

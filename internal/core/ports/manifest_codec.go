package ports

import "go.trai.ch/poetrysort/internal/core/domain"

// ManifestCodec defines the interface for turning manifest bytes into the line model.
//
//go:generate go run go.uber.org/mock/mockgen -source=manifest_codec.go -destination=mocks/mock_manifest_codec.go -package=mocks
type ManifestCodec interface {
	// Decode validates data and splits it into sections and entries.
	Decode(data []byte) (*domain.Manifest, error)

	// Verify checks that rendered decodes to exactly the same data as original.
	Verify(original, rendered []byte) error
}

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/poetrysort/internal/adapters/config"
	_ "go.trai.ch/poetrysort/internal/adapters/fs"
	_ "go.trai.ch/poetrysort/internal/adapters/logger"
	_ "go.trai.ch/poetrysort/internal/adapters/manifest"
	// Register app nodes.
	_ "go.trai.ch/poetrysort/internal/app"
)

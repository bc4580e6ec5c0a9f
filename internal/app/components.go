package app

import "go.trai.ch/poetrysort/internal/core/ports"

// Components holds the wired application and the logger the CLI reports
// errors through.
type Components struct {
	App    *App
	Logger ports.Logger
}

// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/pkgcore/internal/adapters/cache"
	_ "go.trai.ch/pkgcore/internal/adapters/config"
	_ "go.trai.ch/pkgcore/internal/adapters/logger"
	_ "go.trai.ch/pkgcore/internal/adapters/registry"
	_ "go.trai.ch/pkgcore/internal/adapters/security"
	_ "go.trai.ch/pkgcore/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/pkgcore/internal/app"
	_ "go.trai.ch/pkgcore/internal/engine/fetcher"
	_ "go.trai.ch/pkgcore/internal/engine/resolver"
)

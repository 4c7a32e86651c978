// Package module defines the contract shared by API modules
package module

import (
	phttp "bizdash/internal/platform/net/http"
)

// Module mounts its routes and publishes a port set other modules may consume
// it lives apart from modkit so a module can import it without a cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

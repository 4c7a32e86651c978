package modkit

import (
	"bizdash/internal/modkit/httpkit"
	"bizdash/internal/modkit/module"
)

// Module is the surface every API module exposes to the composition root
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules expose New(deps Deps, opts ...Option) Module matching this shape
type Builder func(Deps, ...Option) Module

// MountAll mounts every module on r and registers its ports by name
func MountAll(r httpkit.Router, mods ...Module) {
	for _, m := range mods {
		if m == nil {
			continue
		}
		module.Register(m.Name(), m.Ports())
		m.MountRoutes(r)
	}
}

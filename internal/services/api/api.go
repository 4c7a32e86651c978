// Package api provides the HTTP API for the application
package api

// builds the swag document read by swaggerkit under -tags swag
//go:generate swag init --v3.1 --instanceName api -d ../../.. -g cmd/bizdash-api/main.go -o docs --parseInternal

import (
	"time"

	"bizdash/internal/core/period"
	"bizdash/internal/platform/config"
	"bizdash/internal/platform/logger"
	phttp "bizdash/internal/platform/net/http"
	"bizdash/internal/platform/store"
	ptime "bizdash/internal/platform/time"

	"bizdash/internal/modkit"
	"bizdash/internal/modkit/httpkit"
	"bizdash/internal/modkit/module"
	"bizdash/internal/modkit/swaggerkit"

	dashmod "bizdash/internal/services/api/dashboard/module"
	metamod "bizdash/internal/services/api/meta/module"
	periodsmod "bizdash/internal/services/api/periods/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// CORSOrigins defaults to any origin when empty
	CORSOrigins []string
	Slow        time.Duration
	Timeout     time.Duration

	Resolver period.Resolver
	// Clock defaults to the wall clock in the resolver location
	Clock ptime.Clock
}

// Modules builds the API modules over shared deps
func Modules(opt Options) []module.Module {
	deps := modkit.Deps{
		Cfg:      opt.Config,
		Clock:    opt.Clock,
		Resolver: opt.Resolver,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	return []module.Module{
		metamod.New(deps),
		periodsmod.New(deps),
		dashmod.New(deps),
	}
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	mods := Modules(opt)

	stack := httpkit.CommonStack(httpkit.StackOptions{
		CORSOrigins: opt.CORSOrigins,
		Slow:        opt.Slow,
		Timeout:     opt.Timeout,
	})
	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		modkit.MountAll(api, mods...)
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}

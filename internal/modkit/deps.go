// Package modkit provides module wiring and core deps
package modkit

import (
	"bizdash/internal/core/period"
	"bizdash/internal/modkit/repokit"
	"bizdash/internal/platform/config"
	"bizdash/internal/platform/logger"
	"bizdash/internal/platform/store"
	ptime "bizdash/internal/platform/time"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// PG is nil when postgres is disabled
	PG repokit.TxRunner
	// CH is nil when clickhouse is disabled
	CH store.Clickhouse

	Clock    ptime.Clock
	Resolver period.Resolver
}

// ClockOrSystem returns Clock, or the wall clock in the resolver location when unset
func (d Deps) ClockOrSystem() ptime.Clock {
	if d.Clock != nil {
		return d.Clock
	}
	return ptime.System(d.Resolver.Location())
}

// DefaultPeriod reads BIZ_DEFAULT_PERIOD; CUSTOM is rejected since it needs bounds
func (d Deps) DefaultPeriod() period.Identifier {
	ids := period.Identifiers()
	allowed := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != period.Custom {
			allowed = append(allowed, string(id))
		}
	}
	return period.Identifier(d.Cfg.Prefix("BIZ_").MayEnum("DEFAULT_PERIOD", string(period.Default()), allowed...))
}

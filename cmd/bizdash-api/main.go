// @title         bizdash API
// @version       0.1.0
// @description   Period resolution and dashboard comparison endpoints

package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"bizdash/internal/core/period"
	"bizdash/internal/platform/config"
	"bizdash/internal/platform/logger"
	phttp "bizdash/internal/platform/net/http"
	"bizdash/internal/platform/net/middleware"
	"bizdash/internal/platform/store"

	"bizdash/internal/services/api"

	"github.com/go-chi/chi/v5"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (BIZDASH_API_*)
	root := config.New()
	apiCfg := root.Prefix("BIZDASH_API_")
	bizCfg := root.Prefix("BIZ_")

	pgCfg := root.Prefix("SERVICE_PGSQL_")      // pgCfg lives under SERVICE_PGSQL_*
	chCfg := root.Prefix("SERVICE_CLICKHOUSE_") // chCfg lives under SERVICE_CLICKHOUSE_*
	// bring up logging early
	l := logger.Get()

	pgOn := pgCfg.MayBool("ENABLED", true)
	chOn := chCfg.MayBool("ENABLED", false)
	cfg := store.Config{AppName: "bizdash-api"}
	if pgOn {
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		}
	}
	if chOn {
		cfg.CH = store.CHConfig{Enabled: true, URL: chCfg.MustString("DBURL")}
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// clickhouse opens lazily; ping every backend so a bad DSN fails at boot
	gctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	err = st.Guard(gctx)
	cancel()
	if err != nil {
		l.Panic().Err(err).Msg("store guard failed")
	}

	loc := bizCfg.MayLocation("TIMEZONE", "Asia/Manila")
	resolver := period.NewResolver(loc, period.WithSelfCheck(bizCfg.MayBool("PERIOD_SELFCHECK", false)))
	l.Info().Str("timezone", loc.String()).Bool("pg", pgOn).Bool("ch", chOn).Msg("bizdash api starting")

	// http server (reads BIZDASH_API_PORT); /health answers before routing
	srv := phttp.NewServer(apiCfg, func(m *chi.Mux) { m.Use(middleware.Heartbeat("/health")) })

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
			Slow:           time.Duration(apiCfg.MayInt("SLOW_MS", 0)) * time.Millisecond,
			Timeout:        apiCfg.MayDuration("TIMEOUT", 0),
			Resolver:       resolver,
		},
	)

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}

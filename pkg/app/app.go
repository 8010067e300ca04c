// Package app builds the service's components from its configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/spencer-p/goldenhour/pkg/cache"
	"github.com/spencer-p/goldenhour/pkg/config"
	"github.com/spencer-p/goldenhour/pkg/data"
	"github.com/spencer-p/goldenhour/pkg/ephemeris"
	"github.com/spencer-p/goldenhour/pkg/history"
	"github.com/spencer-p/goldenhour/pkg/log"
	"github.com/spencer-p/goldenhour/pkg/openmeteo"
	"github.com/spencer-p/goldenhour/pkg/postal"
	"github.com/spencer-p/goldenhour/pkg/resolve"
	"github.com/spencer-p/goldenhour/pkg/sunset"
	"github.com/spencer-p/goldenhour/pkg/tzlookup"
)

// App holds the wired components.
type App struct {
	Resolver *resolve.Resolver
	Engine   *sunset.Engine
	Forecast *openmeteo.Client
	// History is nil without a database.
	History history.Store

	cache cache.Cache
	db    *gorm.DB
}

// New wires the components described by env. Redis and Postgres are only
// contacted when configured.
func New(ctx context.Context, env config.Config) (*App, error) {
	p, ok := ephemeris.New(env.Ephemeris)
	if !ok {
		return nil, fmt.Errorf("unknown ephemeris %q", env.Ephemeris)
	}

	a := &App{Engine: sunset.NewEngine(p)}

	if env.RedisAddr != "" {
		rc := cache.NewRedis(env.RedisAddr, env.CacheTTL)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			log.Warnf("Redis at %s unreachable, caching in memory: %v", env.RedisAddr, err)
			a.cache = cache.NewTimed(env.CacheTTL)
		} else {
			a.cache = rc
		}
	} else {
		a.cache = cache.NewTimed(env.CacheTTL)
	}

	a.Forecast = openmeteo.NewClient(a.cache)
	a.Forecast.GeocodingURL = env.GeocodingURL
	a.Forecast.ForecastURL = env.ForecastURL
	a.Forecast.Language = env.Language

	codes := postal.NewClient(env.PostalCountry, a.cache)
	codes.BaseURL = env.PostalURL

	var zones resolve.ZoneInferrer = a.Forecast
	if env.TZSource == "tzf" {
		f, err := tzlookup.NewFinder()
		if err != nil {
			return nil, err
		}
		zones = f
	}

	a.Resolver = resolve.New(a.Forecast, codes, zones)
	a.Resolver.DefaultCountry = env.DefaultCountry

	dsn := env.DatabaseURL
	if dsn == "" {
		dsn = data.DSNFromEnv()
	}
	if dsn != "" {
		db, err := data.Open(dsn)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.History = history.NewDBStore(db)
	}

	return a, nil
}

// Close releases the cache and database connections.
func (a *App) Close() {
	if rc, ok := a.cache.(*cache.Redis); ok {
		if err := rc.Close(); err != nil {
			log.Warnf("Failed to close redis: %v", err)
		}
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			sqlDB.Close()
		}
	}
}

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/moodjournal/internal/client/apiclient"
	"github.com/dmitrijs2005/moodjournal/internal/client/cli"
	"github.com/dmitrijs2005/moodjournal/internal/client/config"
	"github.com/dmitrijs2005/moodjournal/internal/client/migrations"
	"github.com/dmitrijs2005/moodjournal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moodjournal/internal/client/router"
	"github.com/dmitrijs2005/moodjournal/internal/client/services"
	"github.com/dmitrijs2005/moodjournal/internal/client/session"
	"github.com/dmitrijs2005/moodjournal/internal/client/tokenstore"
	"github.com/dmitrijs2005/moodjournal/internal/dbx"
	"github.com/dmitrijs2005/moodjournal/internal/filex"
	"github.com/dmitrijs2005/moodjournal/internal/logging"
)

const redisKeyPrefix = "moodjournal:"

// wire builds the application graph. cleanup releases the token backend.
func wire(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*cli.App, func(), error) {
	backend, cleanup, err := tokenBackend(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	store := tokenstore.New(ctx, backend, log)

	api, err := apiclient.New(apiclient.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.RequestTimeout}, store, log)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	mgr := session.NewManager(services.NewAuthAPI(api), store, log)
	api.OnUnauthorized(mgr)
	mgr.Restore(ctx)

	app := cli.NewApp(cli.Deps{
		Sessions:            mgr,
		Router:              router.New(mgr, mgr.ForcedLogouts(), log),
		Entries:             services.NewEntryService(api),
		Agent:               services.NewAgentService(api),
		Analytics:           services.NewAnalyticsService(api),
		Pinger:              api,
		Logger:              log,
		OnlineCheckInterval: cfg.OnlineCheckInterval,
		In:                  in,
		Out:                 out,
	})
	return app, cleanup, nil
}

// tokenBackend opens the durable storage selected by cfg. A state store
// that cannot be opened degrades to a memory-only session.
func tokenBackend(ctx context.Context, cfg *config.Config, log logging.Logger) (tokenstore.Backend, func(), error) {
	scope, err := tokenstore.Scope(cfg.APIBaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("token scope: %w", err)
	}
	noop := func() {}

	switch cfg.TokenBackend {
	case config.BackendSQLite:
		path, err := filex.EnsureParentDir(cfg.StatePath)
		if err != nil {
			log.Warn(ctx, "state directory unavailable, session will not be remembered", "path", cfg.StatePath, "error", err)
			return nil, noop, nil
		}
		db, err := dbx.OpenSQLite(ctx, path, migrations.Migrations)
		if err != nil {
			log.Warn(ctx, "state database unavailable, session will not be remembered", "path", cfg.StatePath, "error", err)
			return nil, noop, nil
		}
		repo := metadata.NewSQLiteRepository(db, scope)
		return tokenstore.NewMetadataBackend(repo), func() { _ = db.Close() }, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		return tokenstore.NewRedisBackend(client, redisKeyPrefix, scope), func() { _ = client.Close() }, nil

	default:
		return nil, noop, nil
	}
}

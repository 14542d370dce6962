package cmd

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/papapumpkin/starfield/internal/client"
	"github.com/papapumpkin/starfield/internal/config"
	"github.com/papapumpkin/starfield/internal/galaxy"
	"github.com/papapumpkin/starfield/internal/palette"
	"github.com/papapumpkin/starfield/internal/scene"
	"github.com/papapumpkin/starfield/internal/session"
	"github.com/papapumpkin/starfield/internal/sqlstore"
	"github.com/papapumpkin/starfield/internal/store"
)

// localUserID owns the galaxy when no API is configured.
const localUserID = "local"

// backend is the galaxy source a command works against: the local SQLite
// database or a remote starfield API.
type backend struct {
	Galaxy  store.Backend
	User    string
	Explore interface {
		Related(ctx context.Context, ideaID string) ([]galaxy.Related, error)
		Discover(ctx context.Context) ([]galaxy.Related, error)
	}
	Profile func(ctx context.Context, userID string) (galaxy.Profile, error)
	Close   func() error
}

// openBackend selects the backend named by cfg.
func openBackend(ctx context.Context, cfg config.Config, log *zap.Logger) (*backend, error) {
	if cfg.Remote() {
		return openRemote(cfg, log)
	}
	return openLocal(ctx, cfg)
}

func openLocal(ctx context.Context, cfg config.Config) (*backend, error) {
	db, err := sqlstore.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureUser(ctx, localUserID, localUserID); err != nil {
		db.Close()
		return nil, err
	}
	us := db.ForUser(localUserID)
	return &backend{
		Galaxy:  us,
		User:    localUserID,
		Explore: us,
		Profile: db.PublicProfile,
		Close:   db.Close,
	}, nil
}

func openRemote(cfg config.Config, log *zap.Logger) (*backend, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("api_url is set but no token is configured (STARFIELD_TOKEN)")
	}
	sess, err := session.FromToken(cfg.Token)
	if err != nil {
		return nil, err
	}
	b := cfg.Client.Breaker
	c, err := client.New(cfg.APIURL, cfg.Token,
		client.WithTimeout(cfg.Client.Timeout),
		client.WithBreaker(client.Breaker{
			MaxRequests:  b.MaxRequests,
			Interval:     b.Interval,
			Timeout:      b.Timeout,
			FailureRatio: b.FailureRatio,
			MinRequests:  b.MinRequests,
		}),
		client.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	return &backend{
		Galaxy:  c,
		User:    sess.UserID,
		Explore: c,
		Profile: c.PublicProfile,
		Close:   func() error { return nil },
	}, nil
}

// loadConfig reads the configuration, failing with a readable message.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openGalaxy opens the backend and loads the caller's galaxy through the
// store, so every CLI mutation gets the same checks as the interactive view.
func openGalaxy(ctx context.Context, cfg config.Config) (*store.Galaxy, *backend, error) {
	b, err := openBackend(ctx, cfg, zap.NewNop())
	if err != nil {
		return nil, nil, err
	}
	placer := scene.New(cfg.Scene, palette.Default()).Placer()
	g := store.New(b.Galaxy, store.WithPlacer(placer))
	if _, err := g.Run(ctx, g.Load()); err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("failed to load galaxy: %w", err)
	}
	g.Drain()
	return g, b, nil
}

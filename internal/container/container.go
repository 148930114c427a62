package container

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"polaris/components/internal/component"
	"polaris/components/internal/config"
	"polaris/components/internal/domain"
	"polaris/components/internal/events"
	"polaris/components/internal/icon"
	"polaris/components/internal/page"
	"polaris/components/internal/queue"
	"polaris/components/internal/repository"
	"polaris/components/internal/routing"
	"polaris/components/internal/server"
	"polaris/components/internal/service"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Routes     *routing.Registry
	Resolver   *routing.Resolver
	Icons      icon.Provider
	Pages      *page.Catalog
	Renderer   *component.Renderer
	Bus        *events.Bus
	Stream     *queue.RedisStream
	Repository repository.RouteRepository

	Service *service.Service
	Server  *server.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
		Bus:    events.NewBus(64),
	}

	if err := container.connect(ctx); err != nil {
		container.Close()
		return nil, err
	}

	// Initialize routes
	defs, err := container.routeDefinitions(ctx, cfg)
	if err != nil {
		container.Close()
		return nil, err
	}
	table, err := routing.NewTable(defs)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("invalid route configuration: %w", err)
	}
	container.Routes = routing.NewRegistry(table)
	container.Resolver = routing.NewResolver(container.Routes)
	log.Infof("🧭 Loaded %d routes from %s", len(defs), cfg.Routes.Source)

	// Initialize icons
	container.Icons, err = container.iconProvider(ctx, cfg.Icons)
	if err != nil {
		container.Close()
		return nil, err
	}

	container.Pages, err = page.LoadDir(cfg.Pages.Dir)
	if err != nil {
		container.Close()
		return nil, err
	}

	container.Renderer, err = component.NewRenderer(container.Resolver, container.Icons,
		component.WithStrictBreadcrumbs(cfg.Render.StrictBreadcrumbs),
		component.WithBreadcrumbIcon(cfg.Render.BreadcrumbIcon),
	)
	if err != nil {
		container.Close()
		return nil, err
	}

	var emitter events.Emitter = container.Bus
	if container.Stream != nil {
		emitter = events.Multi(container.Bus, container.Stream)
	}

	container.Service = service.NewService(container.Pages, container.Renderer, container.Resolver, emitter)
	container.Server = server.New(container.Service, cfg.Server)

	return container, nil
}

// connect opens the database and redis connections the configuration asks for.
func (c *Container) connect(ctx context.Context) error {
	if c.Config.Routes.Source == "database" {
		db, err := pgxpool.New(ctx, c.Config.Database.DSN())
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.db = db
		c.Repository = repository.NewRouteRepository(db)
		log.Info("✅ Connected to Postgres successfully")
	}

	if c.Config.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Addr(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.Database,
		})
		c.redis = rdb

		// Test connection
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("failed to connect to Redis: %w", err)
		}
		log.Info("✅ Connected to Redis successfully")

		c.Stream = queue.NewRedisStream(rdb, c.Config.Redis)
	}

	return nil
}

func (c *Container) routeDefinitions(ctx context.Context, cfg *config.Config) ([]domain.RouteDefinition, error) {
	if cfg.Routes.Source != "database" {
		return cfg.Routes.Definitions, nil
	}
	if c.Repository == nil {
		return nil, fmt.Errorf("routes.source is database but no database is connected")
	}
	return c.Repository.ListRoutes(ctx)
}

func (c *Container) iconProvider(ctx context.Context, cfg config.IconsConfig) (icon.Provider, error) {
	var provider icon.Provider
	switch cfg.Source {
	case "remote":
		mirrors := icon.NewMirrorSupplier(ctx, cfg.Mirrors, "/"+cfg.Set+"/placeholder.svg")
		provider = icon.NewRemote(cfg, mirrors)
	default:
		static, err := icon.NewStatic(cfg.Set)
		if err != nil {
			return nil, fmt.Errorf("failed to load static icons: %w", err)
		}
		provider = static
	}

	if c.redis != nil {
		provider = icon.NewCached(provider, c.redis, cfg.Set, time.Duration(cfg.CacheTTL)*time.Second)
	}
	return provider, nil
}

// ReloadRoutes rebuilds the route table from cfg and swaps it in. Renders in
// flight keep the table they started with.
func (c *Container) ReloadRoutes(ctx context.Context, cfg *config.Config) error {
	defs, err := c.routeDefinitions(ctx, cfg)
	if err != nil {
		return err
	}
	table, err := routing.NewTable(defs)
	if err != nil {
		return fmt.Errorf("invalid route configuration: %w", err)
	}
	c.Routes.Swap(table)
	log.Infof("🔄 Reloaded %d routes", len(defs))
	return nil
}

// WatchConfig reloads routes whenever the config file at path changes.
func (c *Container) WatchConfig(path string) error {
	_, err := config.Watch(path, func(cfg *config.Config, err error) {
		if err != nil {
			log.Warnf("⚠️ Ignoring invalid config change: %v", err)
			return
		}
		if err := c.ReloadRoutes(context.Background(), cfg); err != nil {
			log.Warnf("⚠️ Keeping previous routes: %v", err)
		}
	})
	return err
}

// prefetchIcons lists every icon the loaded pages can render.
func (c *Container) prefetchIcons() []string {
	names := append([]string{c.Config.Render.BreadcrumbIcon}, c.Pages.Icons()...)
	names = append(names, c.Config.Icons.Prefetch...)
	names = slices.DeleteFunc(names, func(name string) bool { return name == "" })
	slices.Sort(names)
	return slices.Compact(names)
}

// Run serves HTTP until ctx is done
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	// Warm icon caches; a failure only means a slower first render
	g.Go(func() error {
		if err := icon.Prefetch(ctx, c.Icons, c.prefetchIcons(), 4); err != nil {
			log.Warnf("⚠️ Icon prefetch incomplete: %v", err)
		}
		return nil
	})

	// Log activations published on the in-process bus
	g.Go(func() error {
		ch, cancel := c.Bus.Subscribe()
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-ch:
				if !ok {
					return nil
				}
				log.WithFields(log.Fields{
					"event": event.ID,
					"page":  event.Page,
					"key":   event.Key,
				}).Debug("action event")
			}
		}
	})

	g.Go(func() error {
		return c.Server.Run(ctx)
	})

	return g.Wait()
}

// Consume processes events from the redis stream until ctx is done
func (c *Container) Consume(ctx context.Context, consumer string, handle queue.Handler) error {
	if c.Stream == nil {
		return fmt.Errorf("redis is not enabled")
	}
	return c.Stream.Consume(ctx, consumer, handle)
}

// SyncRoutes validates the configured route definitions and upserts them
// into the routes table.
func SyncRoutes(ctx context.Context, cfg *config.Config) error {
	if _, err := routing.NewTable(cfg.Routes.Definitions); err != nil {
		return fmt.Errorf("invalid route configuration: %w", err)
	}

	db, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	return syncRoutes(ctx, repository.NewRouteRepository(db), cfg.Routes.Definitions)
}

func syncRoutes(ctx context.Context, repo repository.RouteRepository, defs []domain.RouteDefinition) error {
	for _, def := range defs {
		if err := repo.SaveRoute(ctx, def); err != nil {
			return err
		}
	}
	log.Infof("✅ Synced %d routes to the database", len(defs))
	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.Bus.Close()
	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		c.redis.Close()
	}

	log.Info("Container shut down successfully")
	return nil
}

// RouteTable builds a route table straight from the configured source
// without initializing the rest of the container.
func RouteTable(ctx context.Context, cfg *config.Config) (*routing.Table, error) {
	defs := cfg.Routes.Definitions
	if cfg.Routes.Source == "database" {
		db, err := pgxpool.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		defer db.Close()

		defs, err = repository.NewRouteRepository(db).ListRoutes(ctx)
		if err != nil {
			return nil, err
		}
	}

	table, err := routing.NewTable(defs)
	if err != nil {
		return nil, fmt.Errorf("invalid route configuration: %w", err)
	}
	return table, nil
}

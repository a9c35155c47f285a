package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/solatis/menukeeper/internal/cache"
	"github.com/solatis/menukeeper/internal/core/api"
	"github.com/solatis/menukeeper/internal/core/auth"
	"github.com/solatis/menukeeper/internal/core/config"
	"github.com/solatis/menukeeper/internal/core/db"
	"github.com/solatis/menukeeper/internal/core/server"
	"github.com/solatis/menukeeper/internal/menu"
	"github.com/solatis/menukeeper/internal/menudef"
	"github.com/solatis/menukeeper/internal/registry"
	"github.com/solatis/menukeeper/internal/resolve"
	"github.com/solatis/menukeeper/internal/types"
)

const Version = "0.1.0"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP menu service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "HTTP server host")
	serveCmd.Flags().Int("port", 8080, "HTTP server port")
	serveCmd.Flags().String("menu", "", "menu definition file (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Best-effort .env for local development; environment wins
	_ = godotenv.Load()

	log, err := newLogger()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("host") {
		host, _ := cmd.Flags().GetString("host")
		cfg.Host = host
	}
	if cmd.Flags().Changed("port") {
		port, _ := cmd.Flags().GetInt("port")
		cfg.Port = port
	}
	if cmd.Flags().Changed("menu") {
		menuPath, _ := cmd.Flags().GetString("menu")
		cfg.MenuPath = menuPath
	}

	// Database is optional: only the shared cache backend, badge queries
	// and admin endpoints need it.
	var database *sqlx.DB
	var queries *db.Queries
	if dbURL != "" {
		database, err = db.Open(dbURL)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		var migrationID string
		checkQuery := `SELECT migration_id FROM migrations WHERE migration_id = '001_initial_schema.sql'`
		err = database.Get(&migrationID, database.Rebind(checkQuery))
		if err != nil {
			if err == sql.ErrNoRows {
				return fmt.Errorf("migration 001_initial_schema not applied - run 'menukeeper migrate' first")
			}
			return fmt.Errorf("failed to check migrations: %w", err)
		}

		queries, err = db.LoadQueries(database)
		if err != nil {
			return fmt.Errorf("failed to load queries: %w", err)
		}
	}

	var store cache.Store
	switch cfg.CacheBackend {
	case config.CacheBackendDatabase:
		if queries == nil {
			return fmt.Errorf("cache_backend database requires --db-url")
		}
		store = cache.NewSQL(queries)
	default:
		store = cache.NewMemory()
	}

	var badgeSource menudef.BadgeSource
	if cfg.BadgeQueriesPath != "" {
		if database == nil {
			return fmt.Errorf("badge_queries_path requires --db-url")
		}
		badgeQueries, err := db.LoadBadgeQueries(database, cfg.BadgeQueriesPath)
		if err != nil {
			return err
		}
		badgeSource = badgeQueries
		log.WithField("queries", badgeQueries.Names()).Info("loaded badge queries")
	}

	file, err := menudef.Load(cfg.MenuPath)
	if err != nil {
		return err
	}
	nodes, userItems, err := menudef.Build(file, badgeSource)
	if err != nil {
		return fmt.Errorf("invalid menu definition: %w", err)
	}

	reg := registry.New()
	reg.RegisterMenu(func(*types.Request) []menu.Node { return nodes })
	if len(userItems) > 0 {
		reg.RegisterUserMenu(func(_ *types.Request, m *menu.Menu) {
			for _, it := range userItems {
				_ = m.Append(it)
			}
		})
	}

	resolver := resolve.New(store, cfg.CacheNamespace)

	// Fail startup on a tree the resolver would reject on every request
	if err := resolver.Validate(nodes); err != nil {
		return fmt.Errorf("invalid menu definition: %w", err)
	}

	secrets, err := config.HMACSecrets()
	if err != nil {
		return fmt.Errorf("failed to load HMAC secrets: %w", err)
	}
	var authenticator *auth.Authenticator
	if len(secrets) > 0 && queries != nil {
		authenticator = auth.NewAuthenticator(secrets, queries)
	}

	actorSecret, err := config.JWTSecret()
	if err != nil {
		return err
	}
	if actorSecret == nil {
		log.Warn("MK_JWT_SECRET not set, actor extraction disabled")
	}

	service, err := api.NewService(reg, resolver, log)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	httpServer, err := server.NewHTTPServer(cfg, service, authenticator, actorSecret, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"version": Version,
		"host":    cfg.Host,
		"port":    cfg.Port,
		"cache":   cfg.CacheBackend,
	}).Info("starting MenuKeeper")

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		log.Info("shutting down gracefully")
		return httpServer.Shutdown(ctx)
	}
}

package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/boostbay/boostbay-golang/internal/auth"
	"github.com/boostbay/boostbay-golang/internal/cart"
	"github.com/boostbay/boostbay-golang/internal/catalog"
	"github.com/boostbay/boostbay-golang/internal/config"
	"github.com/boostbay/boostbay-golang/internal/database"
	"github.com/boostbay/boostbay-golang/internal/handlers"
	"github.com/boostbay/boostbay-golang/internal/orders"
	"github.com/boostbay/boostbay-golang/internal/routes"
)

func main() {
	app := &cli.App{
		Name:  "boostbay",
		Usage: "social media marketing storefront API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending schema migrations and exit",
				Action: runMigrations,
			},
			{
				Name:   "seed",
				Usage:  "seed the package catalog if it is empty",
				Action: seedCatalog,
			},
			{
				Name:   "reseed",
				Usage:  "wipe the package catalog and reinstall the defaults",
				Action: reseedCatalog,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}

// bootstrap loads configuration, sets up logging and opens the database pool.
func bootstrap() (*config.Config, *logrus.Logger, error) {
	// A missing .env is fine; real deployments configure the environment
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Env == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return cfg, log, nil
}

func serve(c *cli.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	log.WithField("database", cfg.DB.Name).Info("database connection established")

	if err := database.Migrate(db, cfg.DB.Name); err != nil {
		return err
	}

	catalogSvc := catalog.NewService(catalog.NewSQLRepository(db), log.WithField("component", "catalog"))
	if err := catalogSvc.EnsureSeeded(context.Background()); err != nil {
		// An unseeded catalog still serves the built-in defaults.
		log.WithError(err).Warn("catalog seeding failed")
	}

	ordersSvc := orders.NewService(orders.NewSQLRepository(db), log.WithField("component", "orders"))

	h := &handlers.Handlers{
		DB:      db,
		Tokens:  auth.NewManager(cfg.JWTSecret),
		Cart:    cart.NewStore(),
		Orders:  ordersSvc,
		Catalog: catalogSvc,
		Log:     log,
	}

	router := routes.SetupRouter(h, cfg.CORSOrigin)

	log.WithField("port", cfg.Port).Info("starting API server")
	return router.Run(":" + cfg.Port)
}

func runMigrations(c *cli.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DB.Name); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func seedCatalog(c *cli.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := catalog.NewService(catalog.NewSQLRepository(db), log.WithField("component", "catalog"))
	return svc.EnsureSeeded(context.Background())
}

func reseedCatalog(c *cli.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := catalog.NewService(catalog.NewSQLRepository(db), log.WithField("component", "catalog"))
	count, err := svc.ForceReseed(context.Background())
	if err != nil {
		return err
	}
	log.WithField("packages", count).Info("catalog reseeded")
	return nil
}

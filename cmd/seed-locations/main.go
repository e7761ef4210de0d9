package main

import (
	"fmt"
	"os"

	"horse_portal_backend/internal/contentstore"
	"horse_portal_backend/internal/locations"
	"horse_portal_backend/platform/config"
	"horse_portal_backend/platform/db"
	"horse_portal_backend/platform/logger"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "seed-locations",
		Usage: "Load countries, governorates and cities from a YAML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Value:   "locations.yaml",
				Usage:   "YAML seed file",
				EnvVars: []string{"LOCATIONS_FILE"},
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Parse the file and report its size without writing",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "seed-locations:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Env)

	f, err := os.Open(c.String("file"))
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	file, err := locations.ParseSeed(f)
	if err != nil {
		return err
	}
	if c.Bool("dry-run") {
		log.Info("seed file parsed", "countries", len(file.Countries))
		return nil
	}

	ctx := c.Context
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool); err != nil {
		return err
	}

	store, err := contentstore.NewPostgresStore(pool)
	if err != nil {
		return err
	}

	res, err := locations.Seed(ctx, store, file)
	if err != nil {
		return fmt.Errorf("seed locations (created %d countries, %d governorates, %d cities): %w",
			res.Countries, res.Governorates, res.Cities, err)
	}
	log.Info("locations seeded", "countries", res.Countries, "governorates", res.Governorates, "cities", res.Cities)
	return nil
}

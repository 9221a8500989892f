package main

import (
	"bienvenue/internal/db"
	"bienvenue/internal/seed"
	"bienvenue/internal/store"
	"context"
	"fmt"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with the city and school directory",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Print seeded directory rows",
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		directoryRepo := store.NewDirectoryRepository(pool)

		logrus.Info("Seeding city and school directory...")
		if err := seed.SeedDirectory(ctx, directoryRepo); err != nil {
			return fmt.Errorf("failed to seed directory: %w", err)
		}

		if c.Bool("verbose") {
			cities, err := directoryRepo.Cities(ctx)
			if err != nil {
				return fmt.Errorf("failed to read back cities: %w", err)
			}
			pp.Println(cities)
		}

		logrus.Info("Directory seeded successfully")

		return nil
	},
}

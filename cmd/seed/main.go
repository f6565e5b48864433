// Command seed installs the default regions and police stations and,
// when SEED_ADMIN_EMAIL is set, the first superAdmin account.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/Soham-Kakkar/tenant-verification-system/internal/app"
	"github.com/Soham-Kakkar/tenant-verification-system/internal/config"
)

func main() {
	configPath := flag.String("config", "config/config.yml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := app.NewLogger(cfg)

	ctx := context.Background()
	c, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("container: %v", err)
	}
	defer c.Close()

	admin := app.AdminSeed{
		Name:     envOr("SEED_ADMIN_NAME", "Super Admin"),
		Email:    os.Getenv("SEED_ADMIN_EMAIL"),
		Password: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
	if err := app.Seed(ctx, c.DirectoryRepo, c.AuthSvc, admin, logger); err != nil {
		log.Fatalf("seed: %v", err)
	}
	logger.Info("seed complete")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package main

import (
	"flag"
	"log"

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
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}

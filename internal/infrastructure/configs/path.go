package configs

import (
	"flag"
	"log"
	"os"

	"github.com/nabeelkm/scrawl/internal/infrastructure/env"
)

func DetermineConfigPath() string {
	var configPath string

	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	if configPath == "" {
		configPath = env.GetString("SCRAWL_CONFIG", "")
	}

	if configPath == "" {
		candidates := []string{
			"./config.yaml",
			"./config.yml",
			"../../config.yaml", // keep for local dev
			"/etc/scrawl/config.yaml",
			"/app/config.yaml", // common in Docker
		}

		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}

	if configPath == "" {
		// Defaults cover everything, so a missing file is not fatal.
		log.Println("no config file found, using defaults (set --config or SCRAWL_CONFIG)")
	}

	return configPath
}

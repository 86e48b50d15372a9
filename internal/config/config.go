package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Pretty         bool
	LookupTimezone bool
	Kind           string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	kind := os.Getenv("MEDIAMETA_KIND")
	switch kind {
	case "", "photo", "video":
	default:
		return nil, fmt.Errorf("MEDIAMETA_KIND must be photo or video, got %q", kind)
	}

	return &Config{
		Pretty:         os.Getenv("MEDIAMETA_PRETTY") != "0",
		LookupTimezone: os.Getenv("MEDIAMETA_TZ_LOOKUP") != "0",
		Kind:           kind,
	}, nil
}

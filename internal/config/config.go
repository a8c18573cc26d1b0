package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the stock tracker service.
type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
	Quote  QuoteConfig  `mapstructure:"quote"`
	Static StaticConfig `mapstructure:"static"`
}

type AppConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"` // e.g., "local", "prod"
}

type MongoConfig struct {
	URI        string `mapstructure:"uri"`
	Database   string `mapstructure:"database"`
	Collection string `mapstructure:"collection"`
}

type QuoteConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type StaticConfig struct {
	Dir string `mapstructure:"dir"`
}

// Load reads configuration from a .env file, environment variables, and defaults.
func Load() (*Config, error) {
	v := viper.New()

	// Load .env into the process environment first so viper sees the values
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	v.SetDefault("app.port", "5000")
	v.SetDefault("app.env", "local")

	v.SetDefault("mongo.uri", "mongodb://localhost:27017")
	v.SetDefault("mongo.database", "stocktracker")
	v.SetDefault("mongo.collection", "stocks")

	v.SetDefault("quote.url", "https://finnhub.io/api/v1/quote")
	v.SetDefault("quote.api_key", "")

	v.SetDefault("static.dir", "web/dist")

	// Map dot-notation keys to env vars (e.g. "mongo.uri" -> MONGO_URI)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnv(v, "app.port", "app.env")
	bindEnv(v, "mongo.uri", "mongo.database", "mongo.collection")
	bindEnv(v, "quote.url", "quote.api_key")
	bindEnv(v, "static.dir")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("mongo uri cannot be empty")
	}

	return &cfg, nil
}

// bindEnv binds multiple keys at once.
func bindEnv(v *viper.Viper, keys ...string) {
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			log.Printf("Could not bind env var for key %s: %v", key, err)
		}
	}
}

package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisExpiryQueue int    `mapstructure:"REDIS_EXPIRY_QUEUE_DB"`

	// Match scoring weights. They must sum to 1.0; they directly move the
	// tier boundaries, so every deployment documents its own values.
	WeightPrice          float64 `mapstructure:"MATCH_WEIGHT_PRICE"`
	WeightRating         float64 `mapstructure:"MATCH_WEIGHT_RATING"`
	WeightOnTime         float64 `mapstructure:"MATCH_WEIGHT_ONTIME"`
	WeightVerification   float64 `mapstructure:"MATCH_WEIGHT_VERIFICATION"`
	WeightResponsiveness float64 `mapstructure:"MATCH_WEIGHT_RESPONSIVENESS"`
	WeightTier           float64 `mapstructure:"MATCH_WEIGHT_TIER"`

	// Ranking cache TTL in seconds. Zero disables the cache.
	RankCacheTTL int `mapstructure:"RANK_CACHE_TTL_SECONDS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_EXPIRY_QUEUE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "cargomatch")
	viper.SetDefault("MATCH_WEIGHT_PRICE", 0.15)
	viper.SetDefault("MATCH_WEIGHT_RATING", 0.30)
	viper.SetDefault("MATCH_WEIGHT_ONTIME", 0.25)
	viper.SetDefault("MATCH_WEIGHT_VERIFICATION", 0.12)
	viper.SetDefault("MATCH_WEIGHT_RESPONSIVENESS", 0.10)
	viper.SetDefault("MATCH_WEIGHT_TIER", 0.08)
	viper.SetDefault("RANK_CACHE_TTL_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Slot sweep granularity in minutes. Single-service bookings use the finer
	// step; combo (multi-service) bookings use the coarser one.
	SlotStepSingle int `mapstructure:"SLOT_STEP_SINGLE"`
	SlotStepCombo  int `mapstructure:"SLOT_STEP_COMBO"`

	// TTL in seconds for cached availability results.
	SlotCacheTTL int `mapstructure:"SLOT_CACHE_TTL"`

	// Loyalty tier thresholds, in completed appointments.
	LoyaltyTiers []int `mapstructure:"LOYALTY_TIERS"`

	// How many hours before an appointment the reminder sweep fires.
	ReminderAheadHours int `mapstructure:"REMINDER_AHEAD_HOURS"`

	// Firebase service account for the FCM messaging client.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
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
	viper.SetDefault("REDIS_REMINDER_QUEUE_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("SLOT_STEP_SINGLE", 5)
	viper.SetDefault("SLOT_STEP_COMBO", 30)
	viper.SetDefault("SLOT_CACHE_TTL", 60)
	viper.SetDefault("LOYALTY_TIERS", []int{5, 10, 25})
	viper.SetDefault("REMINDER_AHEAD_HOURS", 24)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")

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

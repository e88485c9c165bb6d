package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Auth         AuthConfig
	Matching     MatchingConfig
	Logging      LoggingConfig
	GeminiAPIKey string
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	// ServiceSecret signs the HS256 tokens the main API presents on every
	// request. This service has no end-user sessions of its own.
	ServiceSecret string
}

// MatchingConfig carries the tunables of the matching algorithm. Components
// receive it at construction; there is no package-level state.
type MatchingConfig struct {
	MaxDailyProfiles       int
	MinDailyProfiles       int
	CompatibilityThreshold float64
	PersonalityQuestions   int
	CandidateLimit         int
	ChoiceWindowDays       int
	SelectionWindowDays    int
	CacheTTL               time.Duration
	StandardDailyChoices   int
	PremiumDailyChoices    int
	AdHocMaxResults        int
}

type LoggingConfig struct {
	Level string
}

// Load loads configuration from environment variables or .env file
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// Try to read from .env file, but don't fail if it doesn't exist
	_ = viper.ReadInConfig()

	setDefaults()

	config := &Config{
		Server: ServerConfig{
			Host:         viper.GetString("SERVER_HOST"),
			Port:         viper.GetInt("SERVER_PORT"),
			Env:          viper.GetString("ENV"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetInt("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			ServiceSecret: viper.GetString("SERVICE_TOKEN_SECRET"),
		},
		Matching: MatchingConfig{
			MaxDailyProfiles:       viper.GetInt("MAX_DAILY_PROFILES"),
			MinDailyProfiles:       viper.GetInt("MIN_DAILY_PROFILES"),
			CompatibilityThreshold: viper.GetFloat64("COMPATIBILITY_THRESHOLD"),
			PersonalityQuestions:   viper.GetInt("PERSONALITY_QUESTIONS_COUNT"),
			CandidateLimit:         viper.GetInt("CANDIDATE_LIMIT"),
			ChoiceWindowDays:       viper.GetInt("CHOICE_WINDOW_DAYS"),
			SelectionWindowDays:    viper.GetInt("SELECTION_WINDOW_DAYS"),
			CacheTTL:               viper.GetDuration("COMPATIBILITY_CACHE_TTL"),
			StandardDailyChoices:   viper.GetInt("STANDARD_DAILY_CHOICES"),
			PremiumDailyChoices:    viper.GetInt("PREMIUM_DAILY_CHOICES"),
			AdHocMaxResults:        viper.GetInt("ADHOC_MAX_RESULTS"),
		},
		Logging: LoggingConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
	}

	// Validate critical configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults() {
	viper.SetDefault("MAX_DAILY_PROFILES", 5)
	viper.SetDefault("MIN_DAILY_PROFILES", 3)
	viper.SetDefault("COMPATIBILITY_THRESHOLD", 0.6)
	viper.SetDefault("PERSONALITY_QUESTIONS_COUNT", 10)
	viper.SetDefault("CANDIDATE_LIMIT", 50)
	viper.SetDefault("CHOICE_WINDOW_DAYS", 30)
	viper.SetDefault("SELECTION_WINDOW_DAYS", 7)
	viper.SetDefault("COMPATIBILITY_CACHE_TTL", 24*time.Hour)
	viper.SetDefault("STANDARD_DAILY_CHOICES", 1)
	viper.SetDefault("PREMIUM_DAILY_CHOICES", 3)
	viper.SetDefault("ADHOC_MAX_RESULTS", 10)
	viper.SetDefault("LOG_LEVEL", "info")
}

// Validate validates critical configuration values
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Auth.ServiceSecret == "" {
		return fmt.Errorf("service token secret is required")
	}
	if len(c.Auth.ServiceSecret) < 32 {
		return fmt.Errorf("service token secret must be at least 32 characters")
	}
	if c.Matching.MinDailyProfiles > c.Matching.MaxDailyProfiles {
		return fmt.Errorf("MIN_DAILY_PROFILES cannot exceed MAX_DAILY_PROFILES")
	}
	if c.Matching.PersonalityQuestions <= 0 {
		return fmt.Errorf("PERSONALITY_QUESTIONS_COUNT must be positive")
	}
	return nil
}

// GetDSN returns PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// GetAddr returns Redis address
func (c *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"coachseat/internal/coach"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Coach shape and seed reservations
	Coach CoachConfig

	// Redis configuration
	Redis RedisConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Reservation events
	Kafka KafkaConfig

	// Logging
	LogLevel string
}

// CoachConfig holds the raw coach settings
type CoachConfig struct {
	Name               string
	TotalRows          int
	SeatsPerRow        int
	LastRowSeats       int
	MaxSeatsPerRequest int
	SeedSeats          string // comma separated row:col pairs, 0-indexed
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled                 bool          `json:"enabled"`
	WindowDuration          time.Duration `json:"window_duration"`
	DefaultRequests         int           `json:"default_requests"`
	PublicRequests          int           `json:"public_requests"`
	BookingRequests         int           `json:"booking_requests"`
	BookingCriticalRequests int           `json:"booking_critical_requests"`
	HealthRequests          int           `json:"health_requests"`
	WhitelistedIPs          []string      `json:"whitelisted_ips"`
}

// KafkaConfig holds the reservation event producer configuration
type KafkaConfig struct {
	Enabled          bool
	Brokers          []string
	ReservationTopic string
	RetryMax         int
	Timeout          time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		Coach: CoachConfig{
			Name:               getEnv("COACH_NAME", "coach-1"),
			TotalRows:          getIntEnv("COACH_TOTAL_ROWS", 12),
			SeatsPerRow:        getIntEnv("COACH_SEATS_PER_ROW", 7),
			LastRowSeats:       getIntEnv("COACH_LAST_ROW_SEATS", 3),
			MaxSeatsPerRequest: getIntEnv("COACH_MAX_SEATS_PER_REQUEST", coach.DefaultMaxSeatsPerRequest),
			SeedSeats:          getEnv("COACH_SEED_SEATS", "2:3,2:4,5:1,8:5,8:6"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:                 getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:          getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:         getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:          getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 100),
			BookingRequests:         getIntEnv("RATE_LIMIT_BOOKING_REQUESTS", 20),
			BookingCriticalRequests: getIntEnv("RATE_LIMIT_BOOKING_CRITICAL_REQUESTS", 10),
			HealthRequests:          getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:          getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		Kafka: KafkaConfig{
			Enabled:          getBoolEnv("KAFKA_ENABLED", false),
			Brokers:          getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			ReservationTopic: getEnv("KAFKA_RESERVATION_TOPIC", "coach-reservations"),
			RetryMax:         getIntEnv("KAFKA_RETRY_MAX", 3),
			Timeout:          getDurationEnv("KAFKA_TIMEOUT", 10*time.Second),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// CoachLayout converts the coach settings into a validated layout config
func (c *Config) CoachLayout() (coach.LayoutConfig, error) {
	seeds, err := parseSeedSeats(c.Coach.SeedSeats)
	if err != nil {
		return coach.LayoutConfig{}, err
	}

	layout := coach.LayoutConfig{
		Name:         c.Coach.Name,
		TotalRows:    c.Coach.TotalRows,
		SeatsPerRow:  c.Coach.SeatsPerRow,
		LastRowSeats: c.Coach.LastRowSeats,
		Seeds:        seeds,
	}
	if err := layout.Validate(); err != nil {
		return coach.LayoutConfig{}, err
	}
	return layout, nil
}

// parseSeedSeats reads "row:col,row:col" into positions. An empty string means no seeds.
func parseSeedSeats(value string) ([]coach.Position, error) {
	var seeds []coach.Position
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		rowStr, colStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("%w: seed %q must be row:col", coach.ErrInvalidLayout, part)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowStr))
		if err != nil {
			return nil, fmt.Errorf("%w: seed %q has a bad row: %v", coach.ErrInvalidLayout, part, err)
		}
		col, err := strconv.Atoi(strings.TrimSpace(colStr))
		if err != nil {
			return nil, fmt.Errorf("%w: seed %q has a bad column: %v", coach.ErrInvalidLayout, part, err)
		}
		seeds = append(seeds, coach.Position{Row: row, Column: col})
	}
	return seeds, nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}

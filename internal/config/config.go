package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/jstramigioli/riviera-app/internal/calendar"
	"github.com/jstramigioli/riviera-app/internal/logger"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	LogLevel  string
	LogFormat string
	LogFile   string

	Environment string

	Timezone string
	Location *time.Location

	HotelID  string
	SeedDemo bool

	StayFrom     string
	StayTo       string
	StayService  string
	StayRoomType string
	StayGuests   int

	ShutdownTimeout time.Duration
}

// Load reads the configuration from the environment, falling back to defaults for unset variables.
// Variables from the env file fill in only what the process environment leaves unset.
func Load() (*Config, error) {
	if err := loadEnvFile(getEnvStr(EnvEnvFile, DefaultEnvFile)); err != nil {
		return nil, err
	}

	cfg := &Config{
		LogLevel:  getEnvStr(EnvLogLevel, DefaultLogLevel),
		LogFormat: getEnvStr(EnvLogFormat, DefaultLogFormat),
		LogFile:   getEnvStr(EnvLogFile, ""),

		Environment: getEnvStr(EnvEnvironment, DefaultEnvironment),

		Timezone: getEnvStr(EnvTimezone, DefaultTimezone),

		HotelID:  getEnvStr(EnvHotelID, DefaultHotelID),
		SeedDemo: getEnvBool(EnvSeedDemo, DefaultSeedDemo),

		StayFrom:     getEnvStr(EnvStayFrom, DefaultStayFrom),
		StayTo:       getEnvStr(EnvStayTo, DefaultStayTo),
		StayService:  getEnvStr(EnvStayService, DefaultStayService),
		StayRoomType: getEnvStr(EnvStayRoomType, DefaultStayRoomType),
		StayGuests:   getEnvNum(EnvStayGuests, DefaultStayGuests),

		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field and reports all problems at once. It resolves Location from Timezone.
func (cfg *Config) Validate() error {
	var problems []string

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("LogLevel must be one of debug, info, warn, error, got: %s", cfg.LogLevel))
	}

	if cfg.LogFormat != logger.FormatJSON && cfg.LogFormat != logger.FormatText {
		problems = append(problems, fmt.Sprintf("LogFormat must be json or text, got: %s", cfg.LogFormat))
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		problems = append(problems, fmt.Sprintf("Timezone must be an IANA zone name, got: %s", cfg.Timezone))
	} else {
		cfg.Location = loc
	}

	if cfg.Environment == "" {
		problems = append(problems, "Environment cannot be empty")
	}

	if cfg.HotelID == "" {
		problems = append(problems, "HotelID cannot be empty")
	}

	if _, err := calendar.Parse(cfg.StayFrom, cfg.StayTo); err != nil {
		problems = append(problems, fmt.Sprintf("StayFrom/StayTo must form a valid stay: %v", err))
	}

	if cfg.StayService == "" {
		problems = append(problems, "StayService cannot be empty")
	}

	if cfg.StayRoomType == "" {
		problems = append(problems, "StayRoomType cannot be empty")
	}

	if cfg.StayGuests <= 0 {
		problems = append(problems, fmt.Sprintf("StayGuests must be positive, got: %d", cfg.StayGuests))
	}

	if cfg.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(problems, "\n  "))
	}

	return nil
}

func (cfg *Config) LogConfiguration(l *logger.Logger) {
	l.LogInfo("Configuration loaded: hotel=%v timezone=%v seed_demo=%v stay=[%v, %v) service=%v room_type=%v guests=%v",
		cfg.HotelID, cfg.Timezone, cfg.SeedDemo, cfg.StayFrom, cfg.StayTo, cfg.StayService, cfg.StayRoomType, cfg.StayGuests)
}

// loadEnvFile applies path when it exists; a missing file is not an error.
func loadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	return nil
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}

	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}

	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}

	return fallback
}

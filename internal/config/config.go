// Package config reads runtime settings from the environment, after loading
// an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/sakif/health-planner/internal/auth"
)

// Defaults used when the variable is unset or empty.
const (
	DefaultPort           = 8080
	DefaultDBPath         = "data/planner.db"
	DefaultFoodsPath      = "data/foods.csv"
	DefaultExercisesPath  = "data/exercises.csv"
	DefaultPasswordScheme = auth.SchemeSHA256
)

// Config holds every setting the server and CLI read at startup.
type Config struct {
	Port           int
	DBPath         string
	JWTSecret      string
	FoodsPath      string
	ExercisesPath  string
	PasswordScheme string
	LogLevel       slog.Level
	// RandomSeed fixes the recommendation rng. 0 means seed from the clock.
	RandomSeed uint64
}

// Load reads the files (default ".env") into the process environment, then
// builds a Config from it. Missing files are fine; variables already set in
// the environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: loading %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv. Values that do not parse are errors
// rather than silently replaced by defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:           DefaultPort,
		DBPath:         valueOr(getenv("DB_PATH"), DefaultDBPath),
		JWTSecret:      getenv("JWT_SECRET"),
		FoodsPath:      valueOr(getenv("FOODS_PATH"), DefaultFoodsPath),
		ExercisesPath:  valueOr(getenv("EXERCISES_PATH"), DefaultExercisesPath),
		PasswordScheme: strings.ToLower(valueOr(getenv("PASSWORD_SCHEME"), DefaultPasswordScheme)),
		LogLevel:       slog.LevelInfo,
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("config: invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("config: invalid LOG_LEVEL %q", v)
		}
	}

	if v := getenv("RANDOM_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid RANDOM_SEED %q", v)
		}
		cfg.RandomSeed = seed
	}

	if _, err := auth.NewHasher(cfg.PasswordScheme); err != nil {
		return Config{}, fmt.Errorf("config: PASSWORD_SCHEME: %w", err)
	}

	return cfg, nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func valueOr(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

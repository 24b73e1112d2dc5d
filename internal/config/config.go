package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort        = "8080"
	defaultTimezone    = "UTC"
	defaultSCurveYears = 1
)

type Config struct {
	ProjectID   string
	LogLevel    string
	Port        string
	Timezone    string
	SCurveYears int
}

// New reads the environment, loading a .env file first when one exists.
// Variables already set in the environment win over the file.
func New() *Config {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() *Config {
	return &Config{
		ProjectID:   os.Getenv("PROJECTID"),
		LogLevel:    os.Getenv("LOGLEVEL"),
		Port:        getEnv("PORT", defaultPort),
		Timezone:    getEnv("TIMEZONE", defaultTimezone),
		SCurveYears: getEnvInt("SCURVEYEARS", defaultSCurveYears),
	}
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var problems []error
	if c.ProjectID == "" {
		problems = append(problems, errors.New("PROJECTID is required"))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err))
	}
	if c.SCurveYears < 1 || c.SCurveYears > 50 {
		problems = append(problems, fmt.Errorf("SCURVEYEARS must be between 1 and 50, got %d", c.SCurveYears))
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Errorf("PORT %q is not a number", c.Port))
	}
	return errors.Join(problems...)
}

// Location resolves Timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns -1 for values that do not parse so Validate rejects them.
func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

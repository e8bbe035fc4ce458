// Package config loads company and application settings from the
// environment, with an optional .env file for local development.
package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds company identity and proposal defaults used by exports and
// letter proposals.
type Config struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string

	// ProposalValidityDays is how long a letter proposal quotes prices for.
	ProposalValidityDays int

	// MaxUploadBytes caps customer document uploads.
	MaxUploadBytes int64
}

// Load reads the optional .env file and builds the config from environment
// variables. Missing values fall back to usable defaults so a bare checkout
// still runs.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: could not load .env: %v", err)
	}

	return &Config{
		CompanyName:          getEnv("COMPANY_NAME", "Apex Electrical Testing"),
		CompanyAddress:       getEnv("COMPANY_ADDRESS", "1200 Industrial Pkwy, Suite 40"),
		CompanyPhone:         getEnv("COMPANY_PHONE", "(555) 014-2200"),
		CompanyEmail:         getEnv("COMPANY_EMAIL", "quotes@example.com"),
		ProposalValidityDays: 30,
		MaxUploadBytes:       25 << 20,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// config keys, each also read from the upper-cased environment variable
const (
	keyEmail        = "razorpay_email"
	keyPassword     = "razorpay_password"
	keyCI           = "ci"
	keyHeadless     = "headless"
	keyArtifactsDir = "checkin_artifacts_dir"
	keyChromePath   = "checkin_chrome_path"
)

var errMissingCredentials = errors.New("RAZORPAY_EMAIL and RAZORPAY_PASSWORD must be set")

type config struct {
	Credentials  credentials
	Headless     bool
	ArtifactsDir string
	ChromePath   string
}

// newViper returns a viper reading the environment first and the dotenv
// file at envFile second. A missing envFile is not an error.
func newViper(envFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(keyCI, "false")
	v.SetDefault(keyArtifactsDir, ".")
	v.AutomaticEnv()

	if envFile == "" {
		return v, nil
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			slog.Info("Running without .env (using environment variables)", "path", envFile)
			return v, nil
		}
		return nil, fmt.Errorf("error reading %s: %w", envFile, err)
	}
	slog.Info("Loaded .env file", "path", v.ConfigFileUsed())
	return v, nil
}

// loadConfig resolves the run configuration. Missing credentials are
// reported with errMissingCredentials.
func loadConfig(v *viper.Viper) (config, error) {
	cfg := config{
		Credentials: credentials{
			Email:    strings.TrimSpace(v.GetString(keyEmail)),
			Password: v.GetString(keyPassword),
		},
		Headless:     v.GetBool(keyHeadless) || strings.EqualFold(strings.TrimSpace(v.GetString(keyCI)), "true"),
		ArtifactsDir: v.GetString(keyArtifactsDir),
		ChromePath:   v.GetString(keyChromePath),
	}
	if cfg.Credentials.Email == "" || cfg.Credentials.Password == "" {
		return cfg, errMissingCredentials
	}
	return cfg, nil
}

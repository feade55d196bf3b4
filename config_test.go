package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable the config reads. Viper ignores empty
// environment values, so blank behaves like unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"RAZORPAY_EMAIL", "RAZORPAY_PASSWORD", "CI", "HEADLESS", "CHECKIN_ARTIFACTS_DIR", "CHECKIN_CHROME_PATH"} {
		t.Setenv(k, "")
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	return p
}

func TestLoadConfig(t *testing.T) {
	t.Run("FromEnvironment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RAZORPAY_EMAIL", "jane@example.com")
		t.Setenv("RAZORPAY_PASSWORD", "s3cret")

		v, err := newViper("")
		require.NoError(t, err)
		cfg, err := loadConfig(v)
		require.NoError(t, err)

		assert.Equal(t, credentials{Email: "jane@example.com", Password: "s3cret"}, cfg.Credentials)
		assert.False(t, cfg.Headless)
		assert.Equal(t, ".", cfg.ArtifactsDir)
		assert.Empty(t, cfg.ChromePath)
	})

	t.Run("CISelectsHeadless", func(t *testing.T) {
		for _, value := range []string{"true", "TRUE", "True"} {
			clearEnv(t)
			t.Setenv("RAZORPAY_EMAIL", "jane@example.com")
			t.Setenv("RAZORPAY_PASSWORD", "s3cret")
			t.Setenv("CI", value)

			v, err := newViper("")
			require.NoError(t, err)
			cfg, err := loadConfig(v)
			require.NoError(t, err)
			assert.True(t, cfg.Headless, "CI=%s", value)
		}
	})

	t.Run("CIOtherValuesStayVisible", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RAZORPAY_EMAIL", "jane@example.com")
		t.Setenv("RAZORPAY_PASSWORD", "s3cret")
		t.Setenv("CI", "1")

		v, err := newViper("")
		require.NoError(t, err)
		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.False(t, cfg.Headless)
	})

	t.Run("HeadlessFromEnvironment", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RAZORPAY_EMAIL", "jane@example.com")
		t.Setenv("RAZORPAY_PASSWORD", "s3cret")
		t.Setenv("HEADLESS", "true")

		v, err := newViper("")
		require.NoError(t, err)
		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.True(t, cfg.Headless)
	})

	t.Run("HeadlessFromDotenvFile", func(t *testing.T) {
		clearEnv(t)
		envFile := writeEnvFile(t, "RAZORPAY_EMAIL=file@example.com\nRAZORPAY_PASSWORD=from-file\nHEADLESS=true\n")

		v, err := newViper(envFile)
		require.NoError(t, err)
		cfg, err := loadConfig(v)
		require.NoError(t, err)
		assert.True(t, cfg.Headless)
	})

	t.Run("FromDotenvFile", func(t *testing.T) {
		clearEnv(t)
		envFile := writeEnvFile(t, "RAZORPAY_EMAIL=file@example.com\nRAZORPAY_PASSWORD=from-file\nCHECKIN_ARTIFACTS_DIR=shots\n")

		v, err := newViper(envFile)
		require.NoError(t, err)
		cfg, err := loadConfig(v)
		require.NoError(t, err)

		assert.Equal(t, "file@example.com", cfg.Credentials.Email)
		assert.Equal(t, "from-file", cfg.Credentials.Password)
		assert.Equal(t, "shots", cfg.ArtifactsDir)
	})

	t.Run("EnvironmentWinsOverDotenv", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RAZORPAY_EMAIL", "env@example.com")
		envFile := writeEnvFile(t, "RAZORPAY_EMAIL=file@example.com\nRAZORPAY_PASSWORD=from-file\n")

		v, err := newViper(envFile)
		require.NoError(t, err)
		cfg, err := loadConfig(v)
		require.NoError(t, err)

		assert.Equal(t, "env@example.com", cfg.Credentials.Email)
		assert.Equal(t, "from-file", cfg.Credentials.Password)
	})

	t.Run("MissingDotenvIsIgnored", func(t *testing.T) {
		clearEnv(t)
		v, err := newViper(filepath.Join(t.TempDir(), "missing.env"))
		require.NoError(t, err)
		assert.NotNil(t, v)
	})

	t.Run("MissingCredentials", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RAZORPAY_EMAIL", "jane@example.com")

		v, err := newViper("")
		require.NoError(t, err)
		_, err = loadConfig(v)
		assert.ErrorIs(t, err, errMissingCredentials)
	})

	t.Run("BlankEmailIsMissing", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("RAZORPAY_EMAIL", "   ")
		t.Setenv("RAZORPAY_PASSWORD", "s3cret")

		v, err := newViper("")
		require.NoError(t, err)
		_, err = loadConfig(v)
		assert.ErrorIs(t, err, errMissingCredentials)
	})
}

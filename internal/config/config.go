// Package config loads the service configuration from the environment.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

const (
	databaseURLEnvKey         = "DATABASE_URL"
	mongoURIEnvKey            = "MONGO_URI"
	portEnvKey                = "PORT"
	publicDirEnvKey           = "PUBLIC_DIR"
	viewsDirEnvKey            = "VIEWS_DIR"
	logLevelEnvKey            = "LOG_LEVEL"
	requestTimeoutEnvKey      = "REQUEST_TIMEOUT"
	shutdownTimeoutEnvKey     = "SHUTDOWN_TIMEOUT"
	firebaseCredentialsEnvKey = "FIREBASE_CREDENTIALS_BASE64"
)

// App is the service configuration.
type App struct {
	DatabaseURL     string
	Port            string
	PublicDir       string
	ViewsDir        string
	LogLevel        zapcore.Level
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	// FirestoreCredentials is the decoded service account JSON, if provided.
	FirestoreCredentials []byte
}

// Load reads an optional .env file and then the environment. Every invalid
// variable is reported in the returned error.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return App{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from the process environment only.
func FromEnv() (App, error) {
	var problems []string

	cfg := App{
		DatabaseURL: firstEnv("memory://", databaseURLEnvKey, mongoURIEnvKey),
		Port:        env(portEnvKey, "3000"),
		PublicDir:   env(publicDirEnvKey, "public"),
		ViewsDir:    env(viewsDirEnvKey, "views"),
	}

	level, err := zapcore.ParseLevel(env(logLevelEnvKey, "info"))
	if err != nil {
		problems = append(problems, fmt.Sprintf("invalid %s: %v", logLevelEnvKey, err))
	}
	cfg.LogLevel = level

	cfg.RequestTimeout = durationEnv(requestTimeoutEnvKey, 15*time.Second, &problems)
	cfg.ShutdownTimeout = durationEnv(shutdownTimeoutEnvKey, 10*time.Second, &problems)

	if encoded := os.Getenv(firebaseCredentialsEnvKey); encoded != "" {
		creds, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			problems = append(problems, fmt.Sprintf("invalid %s: %v", firebaseCredentialsEnvKey, err))
		}
		cfg.FirestoreCredentials = creds
	}

	if len(problems) > 0 {
		return App{}, fmt.Errorf("configuration errors:\n- %s", strings.Join(problems, "\n- "))
	}
	return cfg, nil
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(fallback string, keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration, problems *[]string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*problems = append(*problems, fmt.Sprintf("invalid %s: expected positive duration, got %q", key, v))
		return fallback
	}
	return d
}

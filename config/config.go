package config

import (
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Environment  string
	DemoMode     bool
	JWTSecret    string
}

// New sets up all config related services
func New() *Config {
	environment := os.Getenv("ENVIRONMENT")

	logger, err := setLogger(environment)
	if err == nil {
		_ = zap.ReplaceGlobals(logger)
	}

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: os.Getenv("DB_NAME"),
		BaseURL:      os.Getenv("BASE_URL"),
		Port:         os.Getenv("PORT"),
		Environment:  environment,
		DemoMode:     os.Getenv("DEMO_MODE") == "true",
		JWTSecret:    os.Getenv("JWT_SECRET"),
	}
}

// setLogger builds the zap logger for the given environment:
// "production" logs info and above as JSON, "development" keeps the
// console encoder at info, anything else ("local") logs debug too.
func setLogger(environment string) (*zap.Logger, error) {
	switch environment {
	case "production":
		return zap.NewProduction()
	case "development":
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		return cfg.Build()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	zap.S().With(err).Error(message)
	w.WriteHeader(httpStatusCode)
	w.Write([]byte(fmt.Sprintf(`{"response": "%s, %v"}`, message, err)))
}

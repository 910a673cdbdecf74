package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// package-level logger; a no-op until Init is called so tests can use
// packages that log without any setup.
var log = zap.NewNop().Sugar()

// Init builds the process-wide logger. Pass "production" (or "prod")
// for JSON output; anything else yields the development console format.
func Init(env string) error {
	var cfg zap.Config
	if env == "production" || env == "prod" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	log = built.Sugar()
	return nil
}

// InitFromEnv reads APP_ENV and defaults to the development config.
func InitFromEnv() error {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	return Init(env)
}

// L returns the current sugared logger.
func L() *zap.SugaredLogger { return log }

// Sync flushes buffered entries. Safe to defer from main.
func Sync() { _ = log.Sync() }

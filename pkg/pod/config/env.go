package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/loopholelabs/logging/types"
)

var ErrInvalidEnv = errors.New("invalid environment")

// Env is the process configuration taken from the environment.
type Env struct {
	S3Endpoint  string `env:"PODCOMM_S3_ENDPOINT"`
	S3AccessKey string `env:"PODCOMM_S3_ACCESS_KEY"`
	S3SecretKey string `env:"PODCOMM_S3_SECRET_KEY"`
	S3Bucket    string `env:"PODCOMM_S3_BUCKET" envDefault:"podcomm"`
	S3Prefix    string `env:"PODCOMM_S3_PREFIX" envDefault:"transcripts/"`
	S3Secure    bool   `env:"PODCOMM_S3_SECURE" envDefault:"false"`
	SQLitePath  string `env:"PODCOMM_SQLITE_PATH" envDefault:"podcomm.db"`
	LogLevel    string `env:"PODCOMM_LOG_LEVEL" envDefault:"info"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func LoadEnv() (*Env, error) {
	e := &Env{}
	if err := ParseEnv(e); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Env) Level() (types.Level, error) {
	switch strings.ToLower(strings.TrimSpace(e.LogLevel)) {
	case "trace":
		return types.TraceLevel, nil
	case "debug":
		return types.DebugLevel, nil
	case "", "info":
		return types.InfoLevel, nil
	case "warn", "warning":
		return types.WarnLevel, nil
	case "error":
		return types.ErrorLevel, nil
	}
	return types.InfoLevel, fmt.Errorf("log level %q: %w", e.LogLevel, ErrInvalidEnv)
}

func (e *Env) HasS3() bool {
	return e.S3Endpoint != ""
}

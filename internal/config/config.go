package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const (
	envPrefix = "bank_account"

	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
	DefaultInterestRate = 0.05
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Configuration is read from BANK_ACCOUNT_* environment variables.
type Configuration struct {
	LogLevel     string   `json:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat    string   `json:"log_format" envconfig:"LOG_FORMAT"`
	MetricsAddr  string   `json:"metrics_addr" envconfig:"METRICS_ADDR"`
	InterestRate *float64 `json:"interest_rate" envconfig:"INTEREST_RATE"`
}

func Load() (*Configuration, error) {
	var cnf Configuration
	if err := envconfig.Process(envPrefix, &cnf); err != nil {
		return nil, err
	}
	if err := cnf.validateAndAddDefaults(); err != nil {
		return nil, err
	}
	return &cnf, nil
}

// Level returns the slog level named by LogLevel.
func (cnf *Configuration) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cnf.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func (cnf *Configuration) Rate() float64 {
	if cnf.InterestRate == nil {
		return DefaultInterestRate
	}
	return *cnf.InterestRate
}

func (cnf *Configuration) validateAndAddDefaults() error {
	cnf.LogLevel = strings.ToLower(strings.TrimSpace(cnf.LogLevel))
	cnf.LogFormat = strings.ToLower(strings.TrimSpace(cnf.LogFormat))
	cnf.MetricsAddr = strings.TrimSpace(cnf.MetricsAddr)

	if cnf.LogLevel == "" {
		cnf.LogLevel = DefaultLogLevel
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cnf.LogLevel)); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, cnf.LogLevel)
	}

	if cnf.LogFormat == "" {
		cnf.LogFormat = DefaultLogFormat
	}
	if cnf.LogFormat != "json" && cnf.LogFormat != "text" {
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, cnf.LogFormat)
	}

	if cnf.InterestRate != nil && (math.IsNaN(*cnf.InterestRate) || math.IsInf(*cnf.InterestRate, 0)) {
		return fmt.Errorf("%w: interest rate must be finite", ErrInvalidConfig)
	}
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv and LogLevel.
const (
	// EnvConfig names the TOML file to load.
	EnvConfig = "NEBULA_CONFIG"

	// EnvLogLevel is debug, info, warn or error.
	EnvLogLevel = "NEBULA_LOG_LEVEL"
)

// LoadEnv loads the given .env files (".env" when none are given) into the
// process environment, then loads the file named by NEBULA_CONFIG, or
// returns Default when it is unset. Missing .env files are skipped and
// variables already set in the environment win over .env values.
func LoadEnv(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var present []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			present = append(present, f)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return Config{}, fmt.Errorf("%w: env: %w", ErrInvalidConfig, err)
		}
	}

	path := strings.TrimSpace(os.Getenv(EnvConfig))
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// LogLevel parses NEBULA_LOG_LEVEL. ok is false when it is unset.
func LogLevel() (level slog.Level, ok bool, err error) {
	v := strings.TrimSpace(os.Getenv(EnvLogLevel))
	if v == "" {
		return 0, false, nil
	}
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, false, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, EnvLogLevel, err)
	}
	return level, true, nil
}

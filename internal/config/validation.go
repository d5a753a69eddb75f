package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Scan.ProtectedDir != "" {
		info, err := os.Stat(c.Scan.ProtectedDir)
		if err != nil {
			errs = append(errs, ValidationError{
				Field:   "scan.protected_dir",
				Message: fmt.Sprintf("not accessible: %v", err),
			})
		} else if !info.IsDir() {
			errs = append(errs, ValidationError{
				Field:   "scan.protected_dir",
				Message: "must be a directory",
			})
		}
	}

	if c.Matching.HashBufferKB <= 0 {
		errs = append(errs, ValidationError{
			Field:   "matching.hash_buffer_kb",
			Message: "must be greater than zero",
		})
	}

	if c.Processing.Workers <= 0 {
		errs = append(errs, ValidationError{
			Field:   "processing.workers",
			Message: "must be greater than zero",
		})
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("unknown level %q (expected debug, info, warn or error)", c.Logging.Level),
		})
	}

	switch c.Logging.Format {
	case "", "json", "text":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("unknown format %q (expected json or text)", c.Logging.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

package bubble

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is wrapped by every ConfigError.
	ErrInvalidConfig = errors.New("bubble: invalid configuration")

	// ErrNotReady is returned by Tick when the engine was never initialized
	// or has already been disposed. The call is a no-op.
	ErrNotReady = errors.New("bubble: engine not ready")

	// ErrAlreadyInitialized is returned by Initialize on a live engine.
	// Reconfigure or Dispose first.
	ErrAlreadyInitialized = errors.New("bubble: engine already initialized")
)

// ConfigError describes a rejected configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

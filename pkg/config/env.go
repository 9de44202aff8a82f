// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Renderer names accepted by TETHER_RENDERER
const (
	RendererTerminal = "terminal"
	RendererWindow   = "window"
	RendererNull     = "null"
)

// EnvironmentConfig holds process-level settings read from TETHER_* variables
type EnvironmentConfig struct {
	Renderer   string
	ConfigPath string
	Scene      string
	Preset     string

	TracePath   string
	TraceBuffer int

	// Circuit breaker guarding the trace sink
	CircuitBreakerMaxRequests         uint32
	CircuitBreakerInterval            time.Duration
	CircuitBreakerTimeout             time.Duration
	CircuitBreakerMaxConsecutiveFails uint32

	AudioEnabled bool

	// Terminal cell size in world pixels
	CellWidth  int
	CellHeight int

	ShutdownTimeout time.Duration
}

// ValidationError reports a configuration value that failed validation
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s (%v): %s", e.Field, e.Value, e.Message)
}

// LoadConfigFromEnv reads and validates the environment configuration
func LoadConfigFromEnv() (*EnvironmentConfig, error) {
	config := &EnvironmentConfig{
		Renderer:   getEnvOrDefault("TETHER_RENDERER", RendererTerminal),
		ConfigPath: getEnvOrDefault("TETHER_CONFIG", ""),
		Scene:      getEnvOrDefault("TETHER_SCENE", ""),
		Preset:     getEnvOrDefault("TETHER_PRESET", ""),

		TracePath:   getEnvOrDefault("TETHER_TRACE_PATH", ""),
		TraceBuffer: getEnvAsIntOrDefault("TETHER_TRACE_BUFFER", 256),

		CircuitBreakerMaxRequests:         uint32(getEnvAsIntOrDefault("TETHER_CB_MAX_REQUESTS", 3)),
		CircuitBreakerInterval:            getEnvAsDurationOrDefault("TETHER_CB_INTERVAL", 60*time.Second),
		CircuitBreakerTimeout:             getEnvAsDurationOrDefault("TETHER_CB_TIMEOUT", 30*time.Second),
		CircuitBreakerMaxConsecutiveFails: uint32(getEnvAsIntOrDefault("TETHER_CB_MAX_FAILS", 5)),

		AudioEnabled: getEnvAsBoolOrDefault("TETHER_AUDIO", true),

		CellWidth:  getEnvAsIntOrDefault("TETHER_CELL_WIDTH", 8),
		CellHeight: getEnvAsIntOrDefault("TETHER_CELL_HEIGHT", 16),

		ShutdownTimeout: getEnvAsDurationOrDefault("TETHER_SHUTDOWN_TIMEOUT", 5*time.Second),
	}

	if err := validateEnvironmentConfig(config); err != nil {
		return nil, fmt.Errorf("invalid environment configuration: %w", err)
	}

	return config, nil
}

func validateEnvironmentConfig(config *EnvironmentConfig) error {
	switch config.Renderer {
	case RendererTerminal, RendererWindow, RendererNull:
	default:
		return &ValidationError{Field: "Renderer", Value: config.Renderer, Message: "must be terminal, window or null"}
	}

	if config.Scene != "" && !IsScene(config.Scene) {
		return &ValidationError{Field: "Scene", Value: config.Scene, Message: "unknown scene"}
	}

	if config.Preset != "" && GetPreset(config.Preset) == nil {
		return &ValidationError{Field: "Preset", Value: config.Preset, Message: "unknown preset"}
	}

	if config.TraceBuffer < 1 || config.TraceBuffer > 65536 {
		return &ValidationError{Field: "TraceBuffer", Value: config.TraceBuffer, Message: "must be between 1 and 65536"}
	}

	if config.CircuitBreakerMaxRequests < 1 {
		return &ValidationError{Field: "CircuitBreakerMaxRequests", Value: config.CircuitBreakerMaxRequests, Message: "must be at least 1"}
	}

	if config.CircuitBreakerInterval < time.Second {
		return &ValidationError{Field: "CircuitBreakerInterval", Value: config.CircuitBreakerInterval, Message: "must be at least 1s"}
	}

	if config.CircuitBreakerTimeout < time.Second {
		return &ValidationError{Field: "CircuitBreakerTimeout", Value: config.CircuitBreakerTimeout, Message: "must be at least 1s"}
	}

	if config.CircuitBreakerMaxConsecutiveFails < 1 {
		return &ValidationError{Field: "CircuitBreakerMaxConsecutiveFails", Value: config.CircuitBreakerMaxConsecutiveFails, Message: "must be at least 1"}
	}

	if config.CellWidth < 1 || config.CellWidth > 64 {
		return &ValidationError{Field: "CellWidth", Value: config.CellWidth, Message: "must be between 1 and 64"}
	}

	if config.CellHeight < 1 || config.CellHeight > 64 {
		return &ValidationError{Field: "CellHeight", Value: config.CellHeight, Message: "must be between 1 and 64"}
	}

	if config.ShutdownTimeout < 0 || config.ShutdownTimeout > time.Minute {
		return &ValidationError{Field: "ShutdownTimeout", Value: config.ShutdownTimeout, Message: "must be between 0 and 1m"}
	}

	return nil
}

// ApplyEnvironmentOverrides copies sandbox-level TETHER_* variables onto config
func ApplyEnvironmentOverrides(config *SandboxConfig) error {
	if scene := os.Getenv("TETHER_SCENE"); scene != "" {
		config.Scene = scene
	}
	config.Texture = getEnvOrDefault("TETHER_TEXTURE", config.Texture)
	config.TickMillis = getEnvAsIntOrDefault("TETHER_TICK_MS", config.TickMillis)
	config.Input.LongPressMillis = getEnvAsIntOrDefault("TETHER_LONG_PRESS_MS", config.Input.LongPressMillis)
	config.Gravity.Y = getEnvAsFloatOrDefault("TETHER_GRAVITY_Y", config.Gravity.Y)
	config.Player.Gravity = getEnvAsFloatOrDefault("TETHER_PLAYER_GRAVITY", config.Player.Gravity)

	return config.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}

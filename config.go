package bulkhead

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

type (
	// configFile is the top-level JSON structure loaded by LoadConfig.
	configFile struct {
		Bulkheads map[string]BulkheadConfig `json:"bulkheads"`
	}

	// BulkheadConfig holds the decoded configuration for a single named
	// bulkhead. Export it to embed in your own app config structs for
	// JSON or YAML unmarshaling.
	BulkheadConfig struct {
		// Limit is the maximum number of concurrently in-flight
		// operations. Required, must be positive.
		Limit int `json:"limit" yaml:"limit"`
	}
)

// LoadConfig reads a JSON configuration file and stores the decoded
// bulkhead limits in a [Registry]. Actual [Bulkhead] instances are not
// created until [GetBulkhead] is called, allowing the caller to supply the
// type parameter and a Listener.
func LoadConfig(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bulkhead: read config: %w", err)
	}

	var cfg configFile
	if err = json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("bulkhead: parse config: %w", err)
	}

	limits := make(map[string]int, len(cfg.Bulkheads))

	for name, bc := range cfg.Bulkheads {
		if bc.Limit <= 0 {
			return nil, fmt.Errorf("bulkhead: config %q: limit must be positive, got %d", name, bc.Limit)
		}

		limits[name] = bc.Limit
	}

	reg := NewRegistry()
	reg.mu.Lock()
	reg.limits = limits
	reg.mu.Unlock()

	return reg, nil
}

// GetBulkhead retrieves the named bulkhead's configured limit from a
// config-loaded [Registry], constructs a [Bulkhead] with that limit and
// listener, registers it with reg under name, and returns it. If name was
// not present in the loaded config, fallbackLimit is used instead.
//
//nolint:ireturn // generic type parameter T, not an interface
func GetBulkhead[T any](reg *Registry, name string, listener *Listener, fallbackLimit int) *Bulkhead[T] {
	reg.mu.Lock()
	limit, ok := reg.limits[name]
	reg.mu.Unlock()

	if !ok {
		limit = fallbackLimit
	}

	b := New[T](limit, listener)
	reg.Register(name, b)

	return b
}

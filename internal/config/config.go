// Package config loads YAML run configurations for the cadence CLI and
// builds live policy/handler strategies from them. Strategy blocks are
// open maps discriminated by a "type" key and decoded into typed specs
// with mapstructure, so new strategy kinds can be added without touching
// the file format.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/cadence/pkg/handler"
	"github.com/aretw0/cadence/pkg/policy"
	"github.com/aretw0/cadence/pkg/ports"
)

// ErrUnknownType is returned when a strategy block names a type that is
// not registered.
var ErrUnknownType = errors.New("unknown strategy type")

// Config is one run configuration.
//
//	policy:
//	  type: fixed
//	  count: 10
//	handler:
//	  type: threshold
//	  limit: 2
//	  shared: true
//	parallel: 4
//	isolated: true
type Config struct {
	Policy   map[string]any `yaml:"policy"`
	Handler  map[string]any `yaml:"handler"`
	Parallel int            `yaml:"parallel"`
	Isolated bool           `yaml:"isolated"`
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(raw)
}

// Parse parses YAML config bytes.
func Parse(raw []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

type fixedCountSpec struct {
	Count int `mapstructure:"count"`
}

type thresholdSpec struct {
	Limit  int  `mapstructure:"limit"`
	Shared bool `mapstructure:"shared"`
}

func kind(block map[string]any) (string, bool) {
	t, ok := block["type"].(string)
	return t, ok
}

// BuildPolicy constructs the completion policy named by the policy block.
// An absent block (or type "unbounded") yields the default policy.
func (c *Config) BuildPolicy() (ports.CompletionPolicy, error) {
	if len(c.Policy) == 0 {
		return policy.NewUnbounded(), nil
	}
	t, ok := kind(c.Policy)
	if !ok {
		return nil, fmt.Errorf("policy block is missing 'type'")
	}

	switch t {
	case "unbounded":
		return policy.NewUnbounded(), nil
	case "fixed":
		var spec fixedCountSpec
		if err := mapstructure.Decode(c.Policy, &spec); err != nil {
			return nil, fmt.Errorf("invalid fixed policy block: %w", err)
		}
		return policy.NewFixedCount(spec.Count)
	default:
		return nil, fmt.Errorf("%w: policy %q", ErrUnknownType, t)
	}
}

// BuildHandler constructs the exception handler named by the handler
// block. An absent block (or type "propagate") yields the default handler.
func (c *Config) BuildHandler() (ports.ExceptionHandler, error) {
	if len(c.Handler) == 0 {
		return handler.NewPropagate(), nil
	}
	t, ok := kind(c.Handler)
	if !ok {
		return nil, fmt.Errorf("handler block is missing 'type'")
	}

	switch t {
	case "propagate":
		return handler.NewPropagate(), nil
	case "threshold":
		var spec thresholdSpec
		if err := mapstructure.Decode(c.Handler, &spec); err != nil {
			return nil, fmt.Errorf("invalid threshold handler block: %w", err)
		}
		opts := []handler.Option{}
		if spec.Shared {
			opts = append(opts, handler.WithSharedCounter())
		}
		return handler.NewThreshold(spec.Limit, opts...)
	default:
		return nil, fmt.Errorf("%w: handler %q", ErrUnknownType, t)
	}
}

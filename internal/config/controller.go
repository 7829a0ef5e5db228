package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/badhouseplants/shoebill/internal/util/retry"
)

// Defaults for the controller process.
const (
	DefaultMetricsAddr      = ":8080"
	DefaultProbeAddr        = ":8081"
	DefaultLeaderElectionID = "shoebill-controller"
)

// Controller holds the settings of the controller process.
//
// Values are layered: defaults, then an optional YAML file, then SHOEBILL_*
// environment variables, then command line flags.
type Controller struct {
	// MetricsAddr is the bind address of the metrics endpoint. "0" disables it.
	MetricsAddr string `yaml:"metricsBindAddress"`

	// ProbeAddr is the bind address of the health probe endpoint.
	ProbeAddr string `yaml:"healthProbeBindAddress"`

	LeaderElection   bool   `yaml:"leaderElect"`
	LeaderElectionID string `yaml:"leaderElectionID"`

	// RequeueDelay is the fixed wait before a failed ConfigSet is retried.
	RequeueDelay time.Duration `yaml:"requeueDelay"`

	MaxConcurrentReconciles int `yaml:"maxConcurrentReconciles"`

	// Namespace restricts the watch to one namespace. Empty watches all.
	Namespace string `yaml:"namespace"`

	// Debug switches logging to development mode.
	Debug bool `yaml:"debug"`
}

// DefaultController returns the controller settings used when nothing is configured.
func DefaultController() Controller {
	return Controller{
		MetricsAddr:             DefaultMetricsAddr,
		ProbeAddr:               DefaultProbeAddr,
		LeaderElection:          true,
		LeaderElectionID:        DefaultLeaderElectionID,
		RequeueDelay:            retry.DefaultDelay,
		MaxConcurrentReconciles: 1,
	}
}

// LoadController returns the defaults overlaid with the YAML file at path
// (skipped when path is empty) and the SHOEBILL_* environment variables.
// The result is not validated so flags can still be applied on top.
func LoadController(path string) (*Controller, error) {
	cfg := DefaultController()

	if path != "" {
		// #nosec G304
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := parseController(data, &cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnv()
	return &cfg, nil
}

// parseController decodes YAML data over cfg. Keys missing from data keep
// their current value.
func parseController(data []byte, cfg *Controller) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings from environment variables.
//
// Environment Variables:
//   - SHOEBILL_METRICS_BIND_ADDRESS
//   - SHOEBILL_HEALTH_PROBE_BIND_ADDRESS
//   - SHOEBILL_LEADER_ELECT
//   - SHOEBILL_LEADER_ELECTION_ID
//   - SHOEBILL_REQUEUE_DELAY
//   - SHOEBILL_MAX_CONCURRENT_RECONCILES
//   - SHOEBILL_NAMESPACE
//   - SHOEBILL_DEBUG
//
// Unset or unparsable variables leave the current value in place.
func (c *Controller) ApplyEnv() {
	c.MetricsAddr = parseString("SHOEBILL_METRICS_BIND_ADDRESS", c.MetricsAddr)
	c.ProbeAddr = parseString("SHOEBILL_HEALTH_PROBE_BIND_ADDRESS", c.ProbeAddr)
	c.LeaderElection = parseBool("SHOEBILL_LEADER_ELECT", c.LeaderElection)
	c.LeaderElectionID = parseString("SHOEBILL_LEADER_ELECTION_ID", c.LeaderElectionID)
	c.RequeueDelay = parseDuration("SHOEBILL_REQUEUE_DELAY", c.RequeueDelay)
	c.MaxConcurrentReconciles = parseInt("SHOEBILL_MAX_CONCURRENT_RECONCILES", c.MaxConcurrentReconciles)
	c.Namespace = parseString("SHOEBILL_NAMESPACE", c.Namespace)
	c.Debug = parseBool("SHOEBILL_DEBUG", c.Debug)
}

// Validate checks the settings for values the controller cannot run with.
func (c *Controller) Validate() error {
	if c.ProbeAddr == "" {
		return fmt.Errorf("healthProbeBindAddress is required")
	}
	if c.MetricsAddr == "" {
		return fmt.Errorf("metricsBindAddress is required (use \"0\" to disable metrics)")
	}
	if c.LeaderElection && c.LeaderElectionID == "" {
		return fmt.Errorf("leaderElectionID is required when leader election is enabled")
	}
	if c.RequeueDelay <= 0 {
		return fmt.Errorf("requeueDelay must be positive, got %s", c.RequeueDelay)
	}
	if c.MaxConcurrentReconciles < 1 {
		return fmt.Errorf("maxConcurrentReconciles must be at least 1, got %d", c.MaxConcurrentReconciles)
	}
	if c.Namespace != "" {
		if err := validateNamespace(c.Namespace); err != nil {
			return fmt.Errorf("namespace: %w", err)
		}
	}
	return nil
}

// Package config loads and validates the fairview YAML configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is immutable for the process lifetime once loaded.
type Config struct {
	Scan       ScanConfig       `yaml:"scan"`
	Weights    WeightsConfig    `yaml:"weights"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Whitelist  WhitelistConfig  `yaml:"whitelist"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Report     ReportConfig     `yaml:"report"`
}

// ScanConfig controls the periodic loop.
type ScanConfig struct {
	IntervalSeconds int     `yaml:"interval_seconds"`
	RiskThreshold   float64 `yaml:"risk_threshold"`
}

// WeightsConfig holds per-module aggregation weights. Weights need not sum
// to 1.0; the aggregator normalizes over the effective set.
type WeightsConfig struct {
	Process  float64 `yaml:"process_risk"`
	Hardware float64 `yaml:"hardware_risk"`
	Audio    float64 `yaml:"audio_risk"`
	Overlay  float64 `yaml:"overlay_risk"`
	VM       float64 `yaml:"vm_risk"`
}

// ThresholdsConfig holds per-module classification thresholds. Audio doubles
// as the fixed module risk reported when real-time capture is detected.
type ThresholdsConfig struct {
	Process  float64 `yaml:"process_threshold"`
	Hardware float64 `yaml:"hardware_threshold"`
	Audio    float64 `yaml:"audio_threshold"`
	Overlay  float64 `yaml:"overlay_threshold"`
	VM       float64 `yaml:"vm_threshold"`
}

// WhitelistConfig excludes processes from suspicion by name substring or by
// executable directory prefix.
type WhitelistConfig struct {
	Processes   []string `yaml:"processes"`
	Directories []string `yaml:"directories"`
}

// MonitoringConfig enables individual modules and the baseline phase.
type MonitoringConfig struct {
	EnableProcess           bool `yaml:"enable_process_monitoring"`
	EnableHardware          bool `yaml:"enable_hardware_monitoring"`
	EnableAudio             bool `yaml:"enable_audio_monitoring"`
	EnableOverlay           bool `yaml:"enable_overlay_monitoring"`
	EnableVMDetection       bool `yaml:"enable_vm_detection"`
	CollectBaseline         bool `yaml:"collect_baseline"`
	BaselineDurationSeconds int  `yaml:"baseline_duration_seconds"`
	ContinueOnModuleFailure bool `yaml:"continue_on_module_failure"`
}

// ReportConfig selects the report sinks for completed scan results.
type ReportConfig struct {
	Console      bool   `yaml:"console"`
	JSONPath     string `yaml:"json_path"`
	SQLitePath   string `yaml:"sqlite_path"`
	WebsocketURL string `yaml:"websocket_url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			IntervalSeconds: 30,
			RiskThreshold:   0.5,
		},
		Weights: WeightsConfig{
			Process:  0.30,
			Hardware: 0.15,
			Audio:    0.10,
			Overlay:  0.20,
			VM:       0.25,
		},
		Thresholds: ThresholdsConfig{
			Process:  0.6,
			Hardware: 0.5,
			Audio:    0.3,
			Overlay:  0.4,
			VM:       0.7,
		},
		Whitelist: WhitelistConfig{
			Processes: []string{
				"code", "chrome", "firefox", "msedge", "safari", "terminal",
			},
			Directories: []string{
				"C:\\Windows\\System32",
				"C:\\Program Files\\Git",
				"/usr/bin",
				"/usr/libexec",
				"/System",
				"/Applications",
			},
		},
		Monitoring: MonitoringConfig{
			EnableProcess:           true,
			EnableHardware:          true,
			EnableAudio:             true,
			EnableOverlay:           true,
			EnableVMDetection:       true,
			CollectBaseline:         true,
			BaselineDurationSeconds: 10,
			ContinueOnModuleFailure: true,
		},
		Report: ReportConfig{
			Console:  true,
			JSONPath: "fairview_report.jsonl",
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate rejects configurations that would misbehave at runtime. Weight
// sums other than 1.0 are allowed; the aggregator normalizes them.
func (c *Config) Validate() error {
	if c.Scan.IntervalSeconds <= 0 {
		return fmt.Errorf("scan.interval_seconds must be positive, got %d", c.Scan.IntervalSeconds)
	}
	if c.Scan.RiskThreshold < 0 || c.Scan.RiskThreshold > 1 {
		return fmt.Errorf("scan.risk_threshold must be in [0,1], got %.2f", c.Scan.RiskThreshold)
	}

	weights := map[string]float64{
		"process_risk":  c.Weights.Process,
		"hardware_risk": c.Weights.Hardware,
		"audio_risk":    c.Weights.Audio,
		"overlay_risk":  c.Weights.Overlay,
		"vm_risk":       c.Weights.VM,
	}
	for name, w := range weights {
		if w < 0 {
			return fmt.Errorf("weights.%s must not be negative, got %.2f", name, w)
		}
	}

	thresholds := map[string]float64{
		"process_threshold":  c.Thresholds.Process,
		"hardware_threshold": c.Thresholds.Hardware,
		"audio_threshold":    c.Thresholds.Audio,
		"overlay_threshold":  c.Thresholds.Overlay,
		"vm_threshold":       c.Thresholds.VM,
	}
	for name, t := range thresholds {
		if t < 0 || t > 1 {
			return fmt.Errorf("thresholds.%s must be in [0,1], got %.2f", name, t)
		}
	}

	for _, p := range c.Whitelist.Processes {
		if p == "" {
			return fmt.Errorf("whitelist.processes must not contain empty entries")
		}
	}
	for _, d := range c.Whitelist.Directories {
		if d == "" {
			return fmt.Errorf("whitelist.directories must not contain empty entries")
		}
	}

	if c.Monitoring.CollectBaseline && c.Monitoring.BaselineDurationSeconds <= 0 {
		return fmt.Errorf("monitoring.baseline_duration_seconds must be positive, got %d",
			c.Monitoring.BaselineDurationSeconds)
	}
	return nil
}

// Interval returns the scan interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.Scan.IntervalSeconds) * time.Second
}

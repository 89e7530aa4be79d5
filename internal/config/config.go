package config

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"gemrush/internal/cases"
	"gemrush/internal/rain"
)

// Config represents the complete application configuration
type Config struct {
	App   AppSettings  `hcl:"app,block"`
	Rain  RainSettings `hcl:"rain,block"`
	Tiers []TierConfig `hcl:"tier,block"`
	Cases []CaseConfig `hcl:"case,block"`
}

// AppSettings contains application-level configuration
type AppSettings struct {
	LogLevel        string `hcl:"log_level,optional"`
	LogFile         string `hcl:"log_file,optional"`
	DataFile        string `hcl:"data_file,optional"`
	StartingBalance int    `hcl:"starting_balance,optional"`
}

// RainSettings controls the pooled-reward cycle
type RainSettings struct {
	TotalAmount      int `hcl:"total_amount,optional"`
	CountdownSeconds int `hcl:"countdown_seconds,optional"`
	DisplaySeconds   int `hcl:"display_seconds,optional"`
	IntervalSeconds  int `hcl:"interval_seconds,optional"`
}

// TierConfig defines one reward tier for case openings
type TierConfig struct {
	Name        string  `hcl:"name,label"`
	ValueFactor float64 `hcl:"value_factor"`
	Probability float64 `hcl:"probability"`
}

// CaseConfig defines a case preset available to battle lobbies
type CaseConfig struct {
	Name  string `hcl:"name,label"`
	Type  int    `hcl:"type"`
	Price int    `hcl:"price,optional"`
}

// Default returns the configuration matching the original constants
func Default() *Config {
	tiers := make([]TierConfig, 0, 5)
	for _, t := range cases.DefaultTiers() {
		tiers = append(tiers, TierConfig{Name: t.Name, ValueFactor: t.ValueFactor, Probability: t.Probability})
	}
	return &Config{
		App: AppSettings{
			LogLevel:        "info",
			LogFile:         "gemrush.log",
			DataFile:        "gemrush.json",
			StartingBalance: 5000,
		},
		Rain: RainSettings{
			TotalAmount:      5000,
			CountdownSeconds: 1800,
			DisplaySeconds:   3,
			IntervalSeconds:  1800,
		},
		Tiers: tiers,
		Cases: []CaseConfig{
			{Name: "Starter Case", Type: 0, Price: 50},
			{Name: "Bronze Case", Type: 1, Price: 100},
			{Name: "Silver Case", Type: 2, Price: 200},
			{Name: "Gold Case", Type: 3, Price: 350},
			{Name: "Diamond Case", Type: 4, Price: 500},
		},
	}
}

// Load loads configuration from an HCL file, falling back to defaults when
// the file does not exist.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	def := Default()
	if config.App.LogLevel == "" {
		config.App.LogLevel = def.App.LogLevel
	}
	if config.App.LogFile == "" {
		config.App.LogFile = def.App.LogFile
	}
	if config.App.DataFile == "" {
		config.App.DataFile = def.App.DataFile
	}
	if config.App.StartingBalance == 0 {
		config.App.StartingBalance = def.App.StartingBalance
	}
	if config.Rain.TotalAmount == 0 {
		config.Rain.TotalAmount = def.Rain.TotalAmount
	}
	if config.Rain.CountdownSeconds == 0 {
		config.Rain.CountdownSeconds = def.Rain.CountdownSeconds
	}
	if config.Rain.DisplaySeconds == 0 {
		config.Rain.DisplaySeconds = def.Rain.DisplaySeconds
	}
	if config.Rain.IntervalSeconds == 0 {
		config.Rain.IntervalSeconds = def.Rain.IntervalSeconds
	}
	if len(config.Tiers) == 0 {
		config.Tiers = def.Tiers
	}
	if len(config.Cases) == 0 {
		config.Cases = def.Cases
	}
	for i := range config.Cases {
		if config.Cases[i].Price == 0 {
			config.Cases[i].Price = 100
		}
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.StartingBalance < 0 {
		return fmt.Errorf("starting balance must not be negative")
	}
	if c.Rain.TotalAmount <= 0 {
		return fmt.Errorf("rain total amount must be positive")
	}
	if c.Rain.CountdownSeconds <= 0 || c.Rain.DisplaySeconds <= 0 || c.Rain.IntervalSeconds <= 0 {
		return fmt.Errorf("rain durations must be positive")
	}

	var sum float64
	for _, tier := range c.Tiers {
		if tier.Name == "" {
			return fmt.Errorf("tier names must not be empty")
		}
		if tier.ValueFactor <= 0 {
			return fmt.Errorf("tier %s: value factor must be positive", tier.Name)
		}
		if tier.Probability <= 0 || tier.Probability > 1 {
			return fmt.Errorf("tier %s: probability must be in (0, 1]", tier.Name)
		}
		sum += tier.Probability
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("tier probabilities must sum to 1, got %g", sum)
	}

	for _, cs := range c.Cases {
		if cs.Type < 0 {
			return fmt.Errorf("case %s: type must not be negative", cs.Name)
		}
		if cs.Price <= 0 {
			return fmt.Errorf("case %s: price must be positive", cs.Name)
		}
	}
	return nil
}

// RainConfig converts the rain settings to the scheduler's configuration
func (c *Config) RainConfig() rain.Config {
	return rain.Config{
		TotalAmount:     c.Rain.TotalAmount,
		Countdown:       time.Duration(c.Rain.CountdownSeconds) * time.Second,
		DisplayDuration: time.Duration(c.Rain.DisplaySeconds) * time.Second,
		RenewalInterval: time.Duration(c.Rain.IntervalSeconds) * time.Second,
	}
}

// RewardTiers converts the tier blocks to the sampler's tier table
func (c *Config) RewardTiers() []cases.Tier {
	tiers := make([]cases.Tier, 0, len(c.Tiers))
	for _, t := range c.Tiers {
		tiers = append(tiers, cases.Tier{Name: t.Name, ValueFactor: t.ValueFactor, Probability: t.Probability})
	}
	return tiers
}

// CaseByName returns a case preset by name
func (c *Config) CaseByName(name string) *CaseConfig {
	for _, cs := range c.Cases {
		if cs.Name == name {
			return &cs
		}
	}
	return nil
}

// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"log"

	"github.com/Ajaykumar525/EteRNA-Chrome-Extension/internal/rna"
	"github.com/spf13/viper"
)

// defaults are the settings used when neither a settings file nor a flag sets them
var defaults = map[string]interface{}{
	"layout.primary-space": 45.0,
	"layout.pair-space":    45.0,
	"layout.cache-size":    128,
	"fold.engine":          "vienna",
	"fold.rnafold":         "RNAfold",
	"fold.temperature":     37.0,
	"score.transform":      "identity",
}

// LayoutConfig is for settings about drawing structures
type LayoutConfig struct {
	// the distance between consecutive bases along the backbone
	PrimarySpace float64 `mapstructure:"primary-space"`

	// the distance between two paired bases
	PairSpace float64 `mapstructure:"pair-space"`

	// the number of computed layouts to keep around, 0 disables the cache
	CacheSize int `mapstructure:"cache-size"`
}

// FoldConfig is for settings about the external folding engine
type FoldConfig struct {
	// which engine to fold with: "vienna" or "file"
	Engine string `mapstructure:"engine"`

	// path to the RNAfold executable
	RNAfold string `mapstructure:"rnafold"`

	// folding temperature in Celsius
	Temperature float64 `mapstructure:"temperature"`

	// path to a precomputed dot plot, for the "file" engine
	DotPlot string `mapstructure:"dotplot"`

	// precomputed structure in dot-bracket notation, for the "file" engine
	Structure string `mapstructure:"structure"`
}

// ScoreConfig is for settings about ensemble scoring
type ScoreConfig struct {
	// the transform applied to every pairing probability
	Transform string `mapstructure:"transform"`
}

// Config is the root-level settings struct and is a mix
// of settings available in a settings file and those
// available from the command line
type Config struct {
	// Layout settings
	Layout LayoutConfig

	// Fold settings
	Fold FoldConfig

	// Score settings
	Score ScoreConfig

	// Verbose is whether to log progress to stderr
	Verbose bool
}

// SetDefaults loads the default settings into v
func SetDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// New returns a new Config struct populated by Viper settings
// (the settings file and/or command line arguments).
// It exits if the settings can't be read.
func New() *Config {
	c, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("unable to load settings, %v", err)
	}
	return c
}

// Load reads the settings file named by the "settings" key, if any,
// and decodes v into a Config.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	if settings := v.GetString("settings"); settings != "" {
		v.SetConfigFile(settings)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read settings file %s: %v", settings, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}

	if c.Layout.PrimarySpace <= 0 || c.Layout.PairSpace <= 0 {
		return nil, fmt.Errorf("layout spacing must be positive, got primary %v and pair %v",
			c.Layout.PrimarySpace, c.Layout.PairSpace)
	}
	if _, err := c.Transform(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Transform is the configured probability transform
func (c *Config) Transform() (rna.Transform, error) {
	return rna.ParseTransform(c.Score.Transform)
}

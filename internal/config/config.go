// Package config loads bdcoord settings from defaults, an optional YAML
// file, BDCOORD_* environment variables and command-line flags.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pspoerri/bdmercator/internal/coord"
)

// EnvPrefix is prepended to environment variable names, e.g.
// BDCOORD_VIEWPORT_WIDTH sets viewport.width.
const EnvPrefix = "BDCOORD"

// Config holds the viewport used for pixel conversions and output settings.
type Config struct {
	Zoom     int            `mapstructure:"zoom"`
	Center   CenterConfig   `mapstructure:"center"`
	Viewport coord.Viewport `mapstructure:"viewport"`
	Output   string         `mapstructure:"output"`
	Verbose  bool           `mapstructure:"verbose"`
}

// CenterConfig is the viewport center. When Geographic is set, Lng/Lat are
// BD09LL degrees; otherwise they are BD09MC units.
type CenterConfig struct {
	Lng        float64 `mapstructure:"lng"`
	Lat        float64 `mapstructure:"lat"`
	Geographic bool    `mapstructure:"geographic"`
}

// Mercator returns the center in BD09MC.
func (c CenterConfig) Mercator() (coord.MercatorPoint, error) {
	if !c.Geographic {
		return coord.MercatorPoint{Lng: c.Lng, Lat: c.Lat}, nil
	}
	m, err := coord.GeoToMercator(coord.GeoPoint{Lng: c.Lng, Lat: c.Lat})
	if err != nil {
		return coord.MercatorPoint{}, errors.Wrap(err, "center")
	}
	return m, nil
}

// Flag names bound by Load. Keys use dots, flags use dashes.
var flagKeys = map[string]string{
	"zoom":              "zoom",
	"center-lng":        "center.lng",
	"center-lat":        "center.lat",
	"center-geographic": "center.geographic",
	"width":             "viewport.width",
	"height":            "viewport.height",
	"output":            "output",
	"verbose":           "verbose",
	"config":            "",
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "Config file (default: bdcoord.yaml in . , ./configs or $HOME/.config/bdcoord)")
	fs.IntP("zoom", "z", 12, "Zoom level for pixel conversions (0-22)")
	fs.Float64("center-lng", 0, "Viewport center longitude/x")
	fs.Float64("center-lat", 0, "Viewport center latitude/y")
	fs.Bool("center-geographic", false, "Center is given in BD09LL degrees instead of BD09MC units")
	fs.Float64("width", 1024, "Viewport width in pixels")
	fs.Float64("height", 768, "Viewport height in pixels")
	fs.StringP("output", "o", "table", "Output format: table, json, yaml")
	fs.BoolP("verbose", "v", false, "Verbose logging")
}

// Load resolves the configuration. fs may be nil.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("zoom", 12)
	v.SetDefault("center.lng", 0.0)
	v.SetDefault("center.lat", 0.0)
	v.SetDefault("center.geographic", false)
	v.SetDefault("viewport.width", 1024.0)
	v.SetDefault("viewport.height", 768.0)
	v.SetDefault("output", "table")
	v.SetDefault("verbose", false)

	v.SetConfigType("yaml")
	configFile := ""
	if fs != nil {
		if f := fs.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", configFile)
		}
	} else {
		v.SetConfigName("bdcoord")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.config/bdcoord")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.Wrap(err, "reading config")
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if key == "" {
				continue
			}
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "binding flag %s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges that would make pixel conversions meaningless.
func (c *Config) Validate() error {
	if c.Zoom < 0 || c.Zoom > 22 {
		return errors.Errorf("zoom %d out of range 0-22", c.Zoom)
	}
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return errors.Errorf("viewport %vx%v must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return errors.Errorf("unsupported output %q (supported: table, json, yaml)", c.Output)
	}
	return nil
}

package config

import (
	"fmt"

	"github.com/spf13/viper"

	"mahjong-solitaire/internal/game"
	"mahjong-solitaire/internal/layout"
)

// LayoutDef is an extra layout declared in the config file as row runs.
type LayoutDef struct {
	Name string       `mapstructure:"name"`
	Runs []layout.Run `mapstructure:"runs"`
}

type Config struct {
	HTTPAddr         string      `mapstructure:"http_addr" json:"-"`
	DefaultLayout    string      `mapstructure:"default_layout" json:"defaultLayout"`
	CopiesPerVariant int         `mapstructure:"copies_per_variant" json:"copiesPerVariant"`
	MaxAttempts      int         `mapstructure:"max_attempts" json:"maxAttempts"`
	Seed             int64       `mapstructure:"seed" json:"-"` // 0 = time based
	LogLevel         string      `mapstructure:"log_level" json:"-"`
	LogDir           string      `mapstructure:"log_dir" json:"-"`
	Layouts          []LayoutDef `mapstructure:"layouts" json:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("default_layout", layout.Turtle)
	v.SetDefault("copies_per_variant", 4)
	v.SetDefault("max_attempts", game.DefaultMaxAttempts)
	v.SetDefault("seed", 0)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_dir", "")
}

// Default returns the built-in configuration without reading the environment.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(fmt.Sprintf("decode default config: %v", err))
	}
	return c
}

// Load reads defaults, then the optional YAML file at path, then environment
// variables (HTTP_ADDR, DEFAULT_LAYOUT, COPIES_PER_VARIANT, MAX_ATTEMPTS, SEED,
// LOG_LEVEL, LOG_DIR).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigType("yaml")
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c Config) Validate() error {
	if c.CopiesPerVariant < 2 || c.CopiesPerVariant%2 != 0 {
		return fmt.Errorf("copies_per_variant=%d: %w", c.CopiesPerVariant, game.ErrInvalidCopies)
	}
	if c.MaxAttempts <= 0 {
		return fmt.Errorf("max_attempts must be positive, got %d", c.MaxAttempts)
	}
	return nil
}

// Catalog returns the built-in layouts plus those declared in the config.
func (c Config) Catalog() (*layout.Catalog, error) {
	cat := layout.NewCatalog()
	for _, def := range c.Layouts {
		if err := cat.Register(def.Name, def.Runs); err != nil {
			return nil, err
		}
	}
	l, err := cat.Build(c.DefaultLayout)
	if err != nil {
		return nil, fmt.Errorf("default_layout: %w", err)
	}
	if err := game.CheckCopies(l.Len()/2, c.CopiesPerVariant); err != nil {
		return nil, fmt.Errorf("default_layout %s: %w", c.DefaultLayout, err)
	}
	return cat, nil
}

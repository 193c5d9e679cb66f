package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/src-d/go-errors.v1"
	"gopkg.in/yaml.v2"
)

var CfgPath = os.ExpandEnv("$HOME/.config/pgx/")
var CfgFile = filepath.Join(CfgPath, "config.yaml")

// ErrInvalidConfig is returned when a loaded configuration cannot drive a run.
var ErrInvalidConfig = errors.NewKind("invalid configuration %s: %s")

const (
	Production  = "p"
	Staging     = "s"
	Development = "d"
)

type Config struct {
	DefaultEnvironment string             `yaml:"default_environment"`
	Client             string             `yaml:"client"`
	FilterTool         string             `yaml:"filter_tool"`
	Shell              string             `yaml:"shell"`
	SSLMode            string             `yaml:"ssl_mode,omitempty"`
	Environments       map[string]*Preset `yaml:"environments"`
	Style              Style              `yaml:"style"`
}

type Style struct {
	Accent string `yaml:"accent_color,omitempty"`
}

// Preset describes where the credentials of one environment come from.
// A literal value wins over the variable name next to it.
type Preset struct {
	Host     string `yaml:"host,omitempty"`
	HostEnv  string `yaml:"host_env,omitempty"`
	User     string `yaml:"user,omitempty"`
	UserEnv  string `yaml:"user_env,omitempty"`
	Database string `yaml:"database"`
}

func Default() *Config {
	return &Config{
		DefaultEnvironment: Staging,
		Client:             "psql",
		FilterTool:         "jq",
		Shell:              "/bin/sh",
		Environments: map[string]*Preset{
			Production: {
				HostEnv:  "PG_HOST_EXM",
				UserEnv:  "PG_USER_ME",
				Database: "exm-production",
			},
			Staging: {
				HostEnv:  "PG_HOST_EXM",
				UserEnv:  "PG_USER_LOC",
				Database: "exm-staging",
			},
			Development: {
				Host:     "localhost",
				UserEnv:  "PG_USER_LOC",
				Database: "exm-development",
			},
		},
	}
}

// LoadConfig reads the YAML file at path. A missing file is not an error,
// the built-in defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Client == "" {
		return ErrInvalidConfig.New("client", "must not be empty")
	}
	if c.FilterTool == "" {
		return ErrInvalidConfig.New("filter_tool", "must not be empty")
	}
	if c.Shell == "" {
		return ErrInvalidConfig.New("shell", "must not be empty")
	}
	if _, ok := c.Environments[Production]; !ok {
		return ErrInvalidConfig.New("environments", "production preset \"p\" is required")
	}

	for _, tag := range c.Tags() {
		p := c.Environments[tag]
		if p == nil {
			return ErrInvalidConfig.New("environments."+tag, "preset is empty")
		}
		if p.Host == "" && p.HostEnv == "" {
			return ErrInvalidConfig.New("environments."+tag, "needs host or host_env")
		}
		if p.User == "" && p.UserEnv == "" {
			return ErrInvalidConfig.New("environments."+tag, "needs user or user_env")
		}
		if p.Database == "" {
			return ErrInvalidConfig.New("environments."+tag, "needs database")
		}
	}
	return nil
}

// Preset returns the preset for tag. Unknown tags fall back to production.
func (c *Config) Preset(tag string) Preset {
	if p, ok := c.Environments[tag]; ok && p != nil {
		return *p
	}
	return *c.Environments[Production]
}

func (c *Config) Tags() []string {
	tags := make([]string, 0, len(c.Environments))
	for tag := range c.Environments {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (c *Config) Save(path string) error {
	err := os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

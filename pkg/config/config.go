package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the per-directory configuration file
	ConfigFileName = ".linear-pm.yml"
	// EnvPrefix prefixes environment overrides, e.g. LINEAR_PM_LOG_LEVEL
	EnvPrefix = "LINEAR_PM"
	// APIKeyEnv is the conventional environment variable for the Linear API key
	APIKeyEnv = "LINEAR_API_KEY"

	DefaultEndpoint = "https://api.linear.app/graphql"
	DefaultTimeout  = 30 * time.Second
)

// Config represents the project configuration
type Config struct {
	API        APIConfig       `yaml:"api" mapstructure:"api"`
	Defaults   DefaultsConfig  `yaml:"defaults" mapstructure:"defaults"`
	Priorities map[string]int  `yaml:"priorities" mapstructure:"priorities"`
	Output     OutputConfig    `yaml:"output" mapstructure:"output"`
	Log        LogConfig       `yaml:"log" mapstructure:"log"`
	Metadata   *ConfigMetadata `yaml:"metadata,omitempty" mapstructure:"metadata"`

	// Path is the file the configuration was read from, if any
	Path string `yaml:"-" mapstructure:"-"`
}

// APIConfig represents the Linear API connection settings
type APIConfig struct {
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// APIKey is normally supplied through LINEAR_API_KEY or the keyring
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`
}

// DefaultsConfig represents values applied to new issues
type DefaultsConfig struct {
	Team     string   `yaml:"team" mapstructure:"team"`
	Priority string   `yaml:"priority" mapstructure:"priority"`
	State    string   `yaml:"state" mapstructure:"state"`
	Labels   []string `yaml:"labels" mapstructure:"labels"`
}

// OutputConfig represents output settings
type OutputConfig struct {
	Format string `yaml:"format" mapstructure:"format"`
}

// LogConfig represents logger settings
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ConfigMetadata represents cached workspace metadata
type ConfigMetadata struct {
	Viewer    UserMetadata   `yaml:"viewer" mapstructure:"viewer"`
	Teams     []TeamMetadata `yaml:"teams" mapstructure:"teams"`
	UpdatedAt time.Time      `yaml:"updated_at" mapstructure:"updated_at"`
}

// UserMetadata represents the cached authenticated user
type UserMetadata struct {
	ID    string `yaml:"id" mapstructure:"id"`
	Name  string `yaml:"name" mapstructure:"name"`
	Email string `yaml:"email" mapstructure:"email"`
}

// TeamMetadata represents cached team IDs with workflow states and labels
type TeamMetadata struct {
	ID     string    `yaml:"id" mapstructure:"id"`
	Key    string    `yaml:"key" mapstructure:"key"`
	Name   string    `yaml:"name" mapstructure:"name"`
	States []NamedID `yaml:"states,omitempty" mapstructure:"states"`
	Labels []NamedID `yaml:"labels,omitempty" mapstructure:"labels"`
}

// NamedID pairs a display name with its remote ID
type NamedID struct {
	ID   string `yaml:"id" mapstructure:"id"`
	Name string `yaml:"name" mapstructure:"name"`
}

var (
	validOutputFormats = []string{"table", "json", "csv"}
	validLogLevels     = []string{"debug", "info", "warn", "error"}
	validLogFormats    = []string{"structured", "console"}
)

// DefaultPriorities maps priority names to Linear priority numbers
func DefaultPriorities() map[string]int {
	return map[string]int{
		"none":   0,
		"urgent": 1,
		"high":   2,
		"medium": 3,
		"low":    4,
	}
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  DefaultTimeout,
		},
		Defaults: DefaultsConfig{
			Priority: "medium",
			Labels:   []string{},
		},
		Priorities: DefaultPriorities(),
		Output: OutputConfig{
			Format: "table",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// defaultValues flattens DefaultConfig into viper keys so environment
// overrides are recognized for every setting
func defaultValues() map[string]interface{} {
	d := DefaultConfig()
	return map[string]interface{}{
		"api.endpoint":      d.API.Endpoint,
		"api.timeout":       d.API.Timeout,
		"api.api_key":       "",
		"defaults.team":     d.Defaults.Team,
		"defaults.priority": d.Defaults.Priority,
		"defaults.state":    d.Defaults.State,
		"defaults.labels":   d.Defaults.Labels,
		"priorities":        d.Priorities,
		"output.format":     d.Output.Format,
		"log.level":         d.Log.Level,
		"log.format":        d.Log.Format,
	}
}

// Load reads the configuration at path, or the nearest ConfigFileName when
// path is empty, applying defaults and environment overrides. A missing
// file is not an error when path is empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("api.api_key", APIKeyEnv, EnvPrefix+"_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind API key environment: %w", err)
	}

	for key, value := range defaultValues() {
		v.SetDefault(key, value)
	}

	explicit := path != ""
	if !explicit {
		path = findConfigFile()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if explicit || !(errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
				return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
			}
			path = ""
		}
	}

	var cfg Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(&cfg, hooks); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Path = path

	return &cfg, nil
}

// LoadConfig loads configuration and requires a config file to exist
func LoadConfig() (*Config, error) {
	path := findConfigFile()
	if path == "" {
		return nil, fmt.Errorf("configuration file %s not found in current or parent directories", ConfigFileName)
	}
	return Load(path)
}

// Save saves configuration to file. The API key is never written.
func (c *Config) Save(path string) error {
	out := *c
	out.API.APIKey = ""

	data, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// findConfigFile searches for config file in current and parent directories
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// Exists checks if configuration file exists
func Exists() bool {
	return findConfigFile() != ""
}

// FindConfigPath returns the path to the configuration file
func FindConfigPath() string {
	return findConfigFile()
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	endpoint, err := url.Parse(c.API.Endpoint)
	if err != nil || (endpoint.Scheme != "http" && endpoint.Scheme != "https") || endpoint.Host == "" {
		return fmt.Errorf("invalid API endpoint '%s': must be an absolute http(s) URL", c.API.Endpoint)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("API timeout must not be negative")
	}

	for name, value := range c.Priorities {
		if value < 0 || value > 4 {
			return fmt.Errorf("priority '%s' maps to %d: Linear priorities range from 0 to 4", name, value)
		}
	}

	if c.Defaults.Priority != "" {
		if _, err := c.ResolvePriority(c.Defaults.Priority); err != nil {
			return fmt.Errorf("default priority '%s' is not defined in priority mappings", c.Defaults.Priority)
		}
	}

	if c.Defaults.Team != "" && c.Metadata != nil && len(c.Metadata.Teams) > 0 {
		if c.TeamByKey(c.Defaults.Team) == nil {
			return fmt.Errorf("default team '%s' is not present in cached metadata", c.Defaults.Team)
		}
	}

	if c.Output.Format != "" && !contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format '%s': must be one of %s", c.Output.Format, strings.Join(validOutputFormats, ", "))
	}

	if c.Log.Level != "" && !contains(validLogLevels, strings.ToLower(c.Log.Level)) {
		return fmt.Errorf("invalid log level '%s': must be one of %s", c.Log.Level, strings.Join(validLogLevels, ", "))
	}

	if c.Log.Format != "" && !contains(validLogFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("invalid log format '%s': must be one of %s", c.Log.Format, strings.Join(validLogFormats, ", "))
	}

	return nil
}

// ResolvePriority maps a priority name (or a number 0-4) to a Linear priority
func (c *Config) ResolvePriority(name string) (int, error) {
	key := strings.ToLower(strings.TrimSpace(name))

	priorities := c.Priorities
	if len(priorities) == 0 {
		priorities = DefaultPriorities()
	}

	if value, ok := priorities[key]; ok {
		return value, nil
	}

	if len(key) == 1 && key[0] >= '0' && key[0] <= '4' {
		return int(key[0] - '0'), nil
	}

	names := make([]string, 0, len(priorities))
	for n := range priorities {
		names = append(names, n)
	}
	sort.Strings(names)

	return 0, fmt.Errorf("unknown priority '%s': must be one of %s", name, strings.Join(names, ", "))
}

// TeamByKey returns cached team metadata matched by key, name or ID
func (c *Config) TeamByKey(key string) *TeamMetadata {
	if c.Metadata == nil {
		return nil
	}
	for i := range c.Metadata.Teams {
		team := &c.Metadata.Teams[i]
		if strings.EqualFold(team.Key, key) || strings.EqualFold(team.Name, key) || team.ID == key {
			return team
		}
	}
	return nil
}

// DefaultTeam returns the cached metadata of the default team
func (c *Config) DefaultTeam() *TeamMetadata {
	if c.Defaults.Team == "" {
		return nil
	}
	return c.TeamByKey(c.Defaults.Team)
}

// StateID returns the ID of the workflow state with the given name
func (t *TeamMetadata) StateID(name string) (string, bool) {
	return lookupID(t.States, name)
}

// LabelID returns the ID of the label with the given name
func (t *TeamMetadata) LabelID(name string) (string, bool) {
	return lookupID(t.Labels, name)
}

func lookupID(items []NamedID, name string) (string, bool) {
	for _, item := range items {
		if strings.EqualFold(item.Name, name) || item.ID == name {
			return item.ID, true
		}
	}
	return "", false
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

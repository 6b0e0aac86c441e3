package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	yaml "gopkg.in/yaml.v2"
)

// Config is the root of the YAML configuration file.
type Config struct {
	Analyzer   Analyzer   `yaml:"analyzer"`
	Service    Service    `yaml:"service"`
	Logger     Logger     `yaml:"logger"`
	HTTPClient HTTPClient `yaml:"http_client"`
	GitClient  GitClient  `yaml:"git_client"`
}

// Analyzer holds the working folders and discovery settings of the tool.
type Analyzer struct {
	HomeFolder     string   `yaml:"home_folder"`
	ProjectsFolder string   `yaml:"projects_folder"`
	ResultsFolder  string   `yaml:"results_folder"`
	ExcludeDirs    []string `yaml:"exclude_dirs"`
}

// Service describes the remote analysis API.
type Service struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
}

type Logger struct {
	Level string `yaml:"level"`
}

// HTTPClient holds tuning options for the resty HTTP client.
type HTTPClient struct {
	Debug            *bool           `yaml:"debug"`
	RetryCount       int             `yaml:"retry_count"`
	RetryWaitTime    time.Duration   `yaml:"retry_wait_time"`
	RetryMaxWaitTime time.Duration   `yaml:"retry_max_wait_time"`
	Timeout          time.Duration   `yaml:"timeout"`
	TLSClientConfig  TLSClientConfig `yaml:"tls_client_config"`
	Proxy            Proxy           `yaml:"proxy"`
}

type TLSClientConfig struct {
	Verify *bool `yaml:"verify"`
}

type Proxy struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GitClient holds options for fetching remote repositories.
type GitClient struct {
	Timeout     time.Duration `yaml:"timeout"`
	Depth       int           `yaml:"depth"`
	InsecureTLS *bool         `yaml:"insecure_tls"`
}

// ValidateConfigPath checks that the given path points to a regular file.
func ValidateConfigPath(path string) error {
	s, err := os.Stat(path)
	if err != nil {
		return err
	}
	if s.IsDir() {
		return fmt.Errorf("'%s' is a directory, not a file", path)
	}
	return nil
}

// LoadYAML decodes a YAML file into the given destination.
func LoadYAML(configPath string, data interface{}) error {
	if err := ValidateConfigPath(configPath); err != nil {
		return err
	}

	file, err := os.Open(configPath)
	if err != nil {
		return err
	}
	defer file.Close()

	d := yaml.NewDecoder(file)
	if err := d.Decode(data); err != nil {
		return fmt.Errorf("failed to decode %q: %w", configPath, err)
	}

	return nil
}

// LoadConfig reads the configuration file from the given path.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	if err := LoadYAML(configPath, config); err != nil {
		return nil, err
	}

	return config, nil
}

// NewDefault returns an empty configuration; defaults are applied during
// validation and by the consumers of each section.
func NewDefault() *Config {
	return &Config{}
}

// GetAnalyzerHome returns the resolved home folder of the tool.
func GetAnalyzerHome(cfg *Config) string {
	return cfg.Analyzer.HomeFolder
}

// GetProjectsHome returns the folder fetched repositories are cloned into.
func GetProjectsHome(cfg *Config) string {
	if cfg.Analyzer.ProjectsFolder != "" {
		return cfg.Analyzer.ProjectsFolder
	}
	return filepath.Join(cfg.Analyzer.HomeFolder, "projects")
}

// GetResultsHome returns the folder analysis reports are written into.
func GetResultsHome(cfg *Config) string {
	if cfg.Analyzer.ResultsFolder != "" {
		return cfg.Analyzer.ResultsFolder
	}
	return filepath.Join(cfg.Analyzer.HomeFolder, "results")
}

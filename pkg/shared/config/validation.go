package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/IARD-Solutions/solidity-analyzer/pkg/shared/files"
)

// ValidateConfig checks if the global configuration has valid values and
// resolves folders, the service endpoint and the API key.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateAnalyzerConfig(cfg); err != nil {
		return fmt.Errorf("YAML global config: analyzer directive is invalid: %w", err)
	}
	if err := ValidateServiceConfig(&cfg.Service); err != nil {
		return fmt.Errorf("YAML global config: service directive is invalid: %w", err)
	}
	if err := ValidateHTTPConfig(&cfg.HTTPClient); err != nil {
		return fmt.Errorf("YAML global config: http_client directive is invalid: %w", err)
	}
	if err := ValidateGitConfig(&cfg.GitClient); err != nil {
		return fmt.Errorf("YAML global config: git_client directive is invalid: %w", err)
	}
	return nil
}

// ValidateAnalyzerConfig resolves the analyzer folders and discovery settings.
func ValidateAnalyzerConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("analyzer configuration is nil")
	}
	if err := updateHome(cfg); err != nil {
		return fmt.Errorf("failed to resolve home folder: %w", err)
	}
	if err := updateFolder(&cfg.Analyzer.ProjectsFolder, "SOLIDITY_ANALYZER_PROJECTS_FOLDER", "projects", cfg); err != nil {
		return fmt.Errorf("failed to resolve projects folder: %w", err)
	}
	if err := updateFolder(&cfg.Analyzer.ResultsFolder, "SOLIDITY_ANALYZER_RESULTS_FOLDER", "results", cfg); err != nil {
		return fmt.Errorf("failed to resolve results folder: %w", err)
	}
	if len(cfg.Analyzer.ExcludeDirs) == 0 {
		cfg.Analyzer.ExcludeDirs = DefaultExcludeDirs
	}
	return nil
}

// ValidateServiceConfig resolves the endpoint and the API key.
// The SOLIDITY_ANALYZER_API_KEY environment variable takes precedence over
// the configuration file so keys can live in the environment or a .env file.
func ValidateServiceConfig(serviceConfig *Service) error {
	if serviceConfig == nil {
		return fmt.Errorf("service configuration is nil")
	}
	if key := os.Getenv("SOLIDITY_ANALYZER_API_KEY"); key != "" {
		serviceConfig.APIKey = key
	}
	if serviceConfig.Endpoint == "" {
		serviceConfig.Endpoint = DefaultEndpoint
	}
	parsed, err := url.Parse(serviceConfig.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("endpoint URL must use http or https: %q", serviceConfig.Endpoint)
	}
	return nil
}

// ValidateGitConfig checks if the Git configuration has valid values.
func ValidateGitConfig(gitConfig *GitClient) error {
	if gitConfig == nil {
		return fmt.Errorf("git configuration is nil")
	}
	if gitConfig.Depth < 0 {
		return fmt.Errorf("depth cannot be negative: %d", gitConfig.Depth)
	}
	if err := validateDuration(gitConfig.Timeout, "timeout", 1*time.Hour); err != nil {
		return err
	}
	return nil
}

// ValidateHTTPConfig checks if the HTTP configuration has valid values.
func ValidateHTTPConfig(httpConfig *HTTPClient) error {
	if httpConfig == nil {
		return fmt.Errorf("HTTP configuration is nil")
	}
	if httpConfig.RetryCount < 0 || httpConfig.RetryCount > 20 {
		return fmt.Errorf("retry_count must be between 0 and 20: %d", httpConfig.RetryCount)
	}

	durations := map[string]time.Duration{
		"RetryMaxWaitTime": httpConfig.RetryMaxWaitTime,
		"RetryWaitTime":    httpConfig.RetryWaitTime,
		"Timeout":          httpConfig.Timeout,
	}
	for name, duration := range durations {
		if err := validateDuration(duration, name, 100*time.Second); err != nil {
			return err
		}
	}

	if err := validateProxy(&httpConfig.Proxy); err != nil {
		return err
	}

	return nil
}

// validateDuration checks that a time.Duration is valid and within a specified maximum duration.
func validateDuration(d time.Duration, name string, max time.Duration) error {
	if d < 0 {
		return fmt.Errorf("invalid duration for %q: %v cannot be negative", name, d)
	}
	if d > max {
		return fmt.Errorf("%q duration is too long: %v exceeds maximum of %v", name, d, max)
	}
	return nil
}

// validateProxy checks if the given Proxy settings are valid.
func validateProxy(proxy *Proxy) error {
	if proxy == nil {
		return fmt.Errorf("proxy configuration is nil")
	}

	// If host or port is not set, skip further validation
	if proxy.Host == "" || proxy.Port == 0 {
		return nil
	}

	if err := validateHost(&proxy.Host); err != nil {
		return err
	}

	if err := validatePort(proxy.Port); err != nil {
		return err
	}

	return nil
}

// validateHost checks if the host part of the proxy configuration is valid.
// It ensures the host includes a scheme; adds "http" if missing.
func validateHost(host *string) error {
	if host == nil {
		return fmt.Errorf("host string pointer is nil")
	}

	if !strings.Contains(*host, "://") {
		*host = "http://" + *host
	}
	*host = strings.TrimRight(*host, "/")

	_, err := url.Parse(*host)
	if err != nil {
		return fmt.Errorf("invalid host URL: %w", err)
	}

	return nil
}

// validatePort checks if the port part of the proxy configuration is valid.
func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", port)
	}
	return nil
}

// updateHome resolves the home folder from environment variables or sets a default value.
// Folders are created lazily by the components that write into them.
func updateHome(cfg *Config) error {
	if homeFolder := os.Getenv("SOLIDITY_ANALYZER_HOME"); homeFolder != "" {
		cfg.Analyzer.HomeFolder = homeFolder
	} else if cfg.Analyzer.HomeFolder == "" {
		homeFolder, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("unable to get user home folder: %w", err)
		}
		cfg.Analyzer.HomeFolder = filepath.Join(homeFolder, ".solidity-analyzer")
	}

	expandedHomePath, err := files.ExpandPath(cfg.Analyzer.HomeFolder)
	if err != nil {
		return fmt.Errorf("failed to expand home path %q: %w", cfg.Analyzer.HomeFolder, err)
	}
	cfg.Analyzer.HomeFolder = expandedHomePath
	return nil
}

// updateFolder resolves a folder path in the analyzer configuration.
func updateFolder(folder *string, envVar, defaultSubFolder string, cfg *Config) error {
	if envVarValue := os.Getenv(envVar); envVarValue != "" {
		*folder = envVarValue
	} else if *folder == "" {
		*folder = filepath.Join(GetAnalyzerHome(cfg), defaultSubFolder)
	}

	expandedPath, err := files.ExpandPath(*folder)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", *folder, err)
	}
	*folder = expandedPath
	return nil
}

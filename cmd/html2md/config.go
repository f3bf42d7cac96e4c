package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2md/internal/fileutil"
	"github.com/alnah/go-html2md/internal/hints"
	"github.com/alnah/go-html2md/internal/yamlutil"
)

// Sentinel errors for configuration handling.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("config file invalid")
)

// defaultConfigName is searched in the CWD and the user config directory
// when no --config flag is given.
const defaultConfigName = "html2md.yaml"

// FetchConfig holds HTTP fetch settings.
type FetchConfig struct {
	Timeout   string `yaml:"timeout"`    // Go duration string, e.g. "30s"
	UserAgent string `yaml:"user_agent"` // User-Agent header
}

// ImagesConfig holds image relocation settings.
type ImagesConfig struct {
	Enabled        bool `yaml:"enabled"`
	KeepUnresolved bool `yaml:"keep_unresolved"`
	EnsureBucket   bool `yaml:"ensure_bucket"`
}

// BlobConfig holds object-store settings.
type BlobConfig struct {
	Endpoint        string `yaml:"endpoint"`
	AccessKey       string `yaml:"access_key"`
	SecretKey       string `yaml:"secret_key"`
	Bucket          string `yaml:"bucket"`
	NoTLS           bool   `yaml:"no_tls"`
	PublicURLPrefix string `yaml:"public_url_prefix"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Path string `yaml:"path"` // default output file, "-" or empty = stdout
}

// Config is the full CLI configuration, loadable from YAML.
type Config struct {
	Fetch  FetchConfig  `yaml:"fetch"`
	Images ImagesConfig `yaml:"images"`
	Blob   BlobConfig   `yaml:"blob"`
	Output OutputConfig `yaml:"output"`
}

// DefaultConfig returns the zero-value configuration; library defaults
// apply for anything left unset.
func DefaultConfig() *Config {
	return &Config{}
}

// userConfigDir returns the per-user config directory for html2md.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "go-html2md")
}

// configSearchPaths lists candidate locations for the named config.
// A bare name searches the CWD then ~/.config/go-html2md/; a path is
// used as-is.
func configSearchPaths(name string) []string {
	if name == "" {
		name = defaultConfigName
	}
	if fileutil.IsFilePath(name) {
		return []string{name}
	}
	if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
		name += ".yaml"
	}

	paths := []string{name}
	if dir := userConfigDir(); dir != "" {
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths
}

// LoadConfig reads a YAML config by name or path. Unknown fields are
// rejected so typos fail loudly instead of being silently ignored.
func LoadConfig(name string) (*Config, error) {
	paths := configSearchPaths(name)

	var path string
	for _, p := range paths {
		if fileutil.FileExists(p) {
			path = p
			break
		}
	}
	if path == "" {
		return nil, fmt.Errorf("%w: %s%s", ErrConfigNotFound,
			strings.Join(paths, ", "), hints.ForConfigNotFound(paths))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrConfigParse, path, err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}
	return cfg, nil
}

// loadConfigForFlags resolves the effective configuration: explicit
// --config must exist; the default name is optional.
func loadConfigForFlags(flags *convertFlags) (*Config, error) {
	if flags.common.config != "" {
		return LoadConfig(flags.common.config)
	}

	cfg, err := LoadConfig("")
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// applyEnvConfig overrides store credentials and endpoint from HTML2MD_*
// environment variables. Precedence: CLI flags > env vars > config file
// (mergeFlags runs after this and wins).
func applyEnvConfig(getenv func(string) string, cfg *Config) {
	if v := getenv("HTML2MD_ENDPOINT"); v != "" {
		cfg.Blob.Endpoint = v
	}
	if v := getenv("HTML2MD_ACCESS_KEY"); v != "" {
		cfg.Blob.AccessKey = v
	}
	if v := getenv("HTML2MD_SECRET_KEY"); v != "" {
		cfg.Blob.SecretKey = v
	}
	if v := getenv("HTML2MD_BUCKET"); v != "" {
		cfg.Blob.Bucket = v
	}
}

// mergeFlags applies CLI flags on top of the loaded config (CLI wins).
func mergeFlags(flags *convertFlags, cfg *Config) {
	if flags.timeout != "" {
		cfg.Fetch.Timeout = flags.timeout
	}
	if flags.userAgent != "" {
		cfg.Fetch.UserAgent = flags.userAgent
	}
	if flags.images {
		cfg.Images.Enabled = true
	}
	if flags.keepUnresolved {
		cfg.Images.KeepUnresolved = true
	}
	if flags.blob.ensureBucket {
		cfg.Images.EnsureBucket = true
	}
	if flags.blob.endpoint != "" {
		cfg.Blob.Endpoint = flags.blob.endpoint
	}
	if flags.blob.accessKey != "" {
		cfg.Blob.AccessKey = flags.blob.accessKey
	}
	if flags.blob.secretKey != "" {
		cfg.Blob.SecretKey = flags.blob.secretKey
	}
	if flags.blob.bucket != "" {
		cfg.Blob.Bucket = flags.blob.bucket
	}
	if flags.blob.noTLS {
		cfg.Blob.NoTLS = true
	}
	if flags.blob.urlPrefix != "" {
		cfg.Blob.PublicURLPrefix = flags.blob.urlPrefix
	}
	if flags.output != "" {
		cfg.Output.Path = flags.output
	}
}

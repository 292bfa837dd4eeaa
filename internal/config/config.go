package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
)

// Config is the root configuration for mfe, stored in ~/.mfe/config.json.
// The file may contain // and /* */ comments and trailing commas.
type Config struct {
	Micropub MicropubConfig `json:"micropub"`
	Output   OutputConfig   `json:"output"`
	Hugo     HugoConfig     `json:"hugo"`
}

// MicropubConfig holds the endpoint queried by `mfe fetch`.
type MicropubConfig struct {
	// Endpoint is the Micropub endpoint URL, e.g. "https://example.com/micropub".
	Endpoint string `json:"endpoint"`
	// Token is a bearer token. A token stored with `mfe login` takes precedence.
	Token string `json:"token"`
}

// OutputConfig controls how decoded entries are printed.
type OutputConfig struct {
	// Format is one of "text", "json", "yaml", "toml".
	Format string `json:"format"`
}

// HugoConfig controls `mfe hugo`.
type HugoConfig struct {
	// FrontMatter is "yaml" or "toml".
	FrontMatter string `json:"front_matter"`
	// ContentDir is the directory content files are written to.
	ContentDir string `json:"content_dir"`
}

const (
	DefaultFormat      = "text"
	DefaultFrontMatter = "toml"
	DefaultContentDir  = "content/posts"
)

// Environment variables that override the config file.
const (
	EnvEndpoint = "MFE_MICROPUB_ENDPOINT"
	EnvToken    = "MFE_MICROPUB_TOKEN"
	EnvFormat   = "MFE_FORMAT"
)

func defaultConfig() Config {
	return Config{
		Output: OutputConfig{Format: DefaultFormat},
		Hugo: HugoConfig{
			FrontMatter: DefaultFrontMatter,
			ContentDir:  DefaultContentDir,
		},
	}
}

// configTemplate is the annotated config written on first run.
const configTemplate = `// mfe configuration – ~/.mfe/config.json
//
// All settings are optional. Environment variables MFE_MICROPUB_ENDPOINT,
// MFE_MICROPUB_TOKEN and MFE_FORMAT (also read from ./.env) override them.
{
  "micropub": {
    // Micropub endpoint used by: mfe fetch <post-url>
    "endpoint": "",

    // Bearer token for the endpoint. Prefer: mfe login --token <token>
    "token": "",
  },

  "output": {
    // Default output format of decode and fetch: text, json, yaml or toml.
    "format": "text",
  },

  "hugo": {
    // Front matter flavour written by mfe hugo: toml (+++) or yaml (---).
    "front_matter": "toml",

    // Directory the generated .md files go to. Override with --out.
    "content_dir": "content/posts",
  },
}
`

// FilePath returns the config file path below base.
func FilePath(base string) string {
	return filepath.Join(base, "config.json")
}

// Load reads <base>/config.json, creating it with annotated defaults on first
// run, and applies environment overrides.
func Load(base string) (Config, error) {
	if err := loadDotEnv(); err != nil {
		return defaultConfig(), err
	}

	path := FilePath(base)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		cfg := defaultConfig()
		applyEnv(&cfg)
		return cfg, nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

// Parse decodes commented JSON config and fills zero-value fields with
// built-in defaults.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
		return Config{}, err
	}
	def := defaultConfig()
	if cfg.Output.Format == "" {
		cfg.Output.Format = def.Output.Format
	}
	if cfg.Hugo.FrontMatter == "" {
		cfg.Hugo.FrontMatter = def.Hugo.FrontMatter
	}
	if cfg.Hugo.ContentDir == "" {
		cfg.Hugo.ContentDir = def.Hugo.ContentDir
	}
	return cfg, nil
}

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

// loadDotEnv exports the variables of ./.env. A missing file is not an error.
func loadDotEnv() error {
	err := godotenv.Load(DotEnvFile)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", DotEnvFile, err)
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvEndpoint); v != "" {
		cfg.Micropub.Endpoint = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Micropub.Token = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		cfg.Output.Format = v
	}
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	// DirName is the per-user config directory under $HOME.
	DirName = "modeltrust"

	defaultRegistryURL = "https://huggingface.co"
	defaultLLMEndpoint = "https://genai.rcac.purdue.edu"
	defaultLLMModel    = "llama3.1:latest"
	defaultHTTPTimeout = 10 * time.Second
	defaultLLMTimeout  = 15 * time.Second
	defaultGitTimeout  = 60 * time.Second
	defaultMaxCapMB    = 16 * 1024
	defaultWorkers     = 1
)

// Env var names honored by FromEnv. Set env values win over file values.
const (
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFile     = "LOG_FILE"
	EnvLLMKey      = "GEN_AI_STUDIO_API_KEY"
	EnvLLMEndpoint = "GENAI_ENDPOINT"
	EnvLLMModel    = "GENAI_MODEL"
	EnvLLMWait     = "GENAI_TIMEOUT"
	EnvHTTPWait    = "HF_TIMEOUT"
	EnvGHToken     = "GITHUB_TOKEN"
)

// Config holds all scoring run settings.
type Config struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	RegistryURL string        `yaml:"registry_url"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	GitTimeout  time.Duration `yaml:"git_timeout"`

	LLMEndpoint string        `yaml:"llm_endpoint"`
	LLMModel    string        `yaml:"llm_model"`
	LLMTimeout  time.Duration `yaml:"llm_timeout"`

	// Capacities maps device names to byte capacities used for the
	// deployability score. Empty selects the built-in device set.
	Capacities    map[string]int64 `yaml:"capacities,omitempty"`
	MaxCapacityMB float64          `yaml:"max_capacity_mb"`

	Workers int `yaml:"workers"`
}

func getDefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		RegistryURL:   defaultRegistryURL,
		HTTPTimeout:   defaultHTTPTimeout,
		GitTimeout:    defaultGitTimeout,
		LLMEndpoint:   defaultLLMEndpoint,
		LLMModel:      defaultLLMModel,
		LLMTimeout:    defaultLLMTimeout,
		MaxCapacityMB: defaultMaxCapMB,
		Workers:       defaultWorkers,
	}
}

// FromEnv overlays environment settings onto the config. Only
// variables that are actually set override file values.
func (c *Config) FromEnv() *Config {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvLLMEndpoint); v != "" {
		c.LLMEndpoint = v
	}
	if v := os.Getenv(EnvLLMModel); v != "" {
		c.LLMModel = v
	}
	if d, ok := envSeconds(EnvLLMWait); ok {
		c.LLMTimeout = d
	}
	if d, ok := envSeconds(EnvHTTPWait); ok {
		c.HTTPTimeout = d
	}
	return c
}

// envSeconds reads a plain-seconds timeout variable, matching the
// evaluator service convention. Unset or invalid values are skipped.
func envSeconds(name string) (time.Duration, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v + "s")
	if err != nil || d <= 0 {
		log.Debugf("ignoring invalid %s value: %q", name, v)
		return 0, false
	}
	return d, true
}

func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return errors.Wrapf(err, "failed to write config file: %s", configFileName)
	}
	return nil
}

// ReadOrCreate reads app config from directory or creates a new one
// with defaults. Env overlays are applied after the file is read.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dirPath, dirMode); err != nil {
			return nil, errors.Wrapf(err, "failed to create dir: %s", dirPath)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error opening config file: %s", path)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading config file: %s", path)
	}

	c := getDefaultConfig()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, errors.Wrapf(err, "error unmarshalling config file: %s", path)
	}
	return c.FromEnv(), nil
}

// GetOrCreateHomeDir returns the app config directory for the current
// user, creating it on first use. The created flag is set when the
// directory did not exist before.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, errors.Wrap(err, "failed to get user home dir")
	}
	log.Debugf("home dir: %s", home)

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		log.Debugf("creating dir: %s", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, errors.Wrapf(err, "failed to create dir: %s", dir)
		}
		created = true
	}
	return dir, created, nil
}

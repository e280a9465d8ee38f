package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	SourceRoot     string `yaml:"source_root"`
	DestRoot       string `yaml:"dest_root"`
	WorkspacePath  string `yaml:"workspace"`
	ResultsDirName string `yaml:"results_dir"`

	PipelineProgram        string   `yaml:"pipeline_program"`
	PipelineArgs           []string `yaml:"pipeline_args"`
	PipelineInputFlag      string   `yaml:"pipeline_input_flag"`
	PipelineTimeoutSeconds int      `yaml:"pipeline_timeout_seconds"`

	VerifyInputs    bool   `yaml:"verify_inputs"`
	MetricsTextfile string `yaml:"metrics_textfile"`
}

// Default matches the constants of the original batch script.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",

		SourceRoot:     "./ICIS_test_code",
		DestRoot:       "./ICIS_test_code_md",
		WorkspacePath:  "./localworkspace",
		ResultsDirName: "results",

		PipelineProgram:   "python",
		PipelineArgs:      []string{"-m", "olmocr.pipeline"},
		PipelineInputFlag: "--pdfs",

		VerifyInputs: true,
	}
}

// Load builds the effective configuration: defaults, then the optional YAML
// file named by OLMOCR_CONFIG_FILE, then environment variables.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("OLMOCR_CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c Config) PipelineTimeout() time.Duration {
	return time.Duration(c.PipelineTimeoutSeconds) * time.Second
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.LogLevel = envString("OLMOCR_LOG_LEVEL", c.LogLevel)
	c.LogFormat = envString("OLMOCR_LOG_FORMAT", c.LogFormat)

	c.SourceRoot = envString("OLMOCR_SOURCE_ROOT", c.SourceRoot)
	c.DestRoot = envString("OLMOCR_DEST_ROOT", c.DestRoot)
	c.WorkspacePath = envString("OLMOCR_WORKSPACE", c.WorkspacePath)
	c.ResultsDirName = envString("OLMOCR_RESULTS_DIR", c.ResultsDirName)

	c.PipelineProgram = envString("OLMOCR_PIPELINE_PROGRAM", c.PipelineProgram)
	if v := os.Getenv("OLMOCR_PIPELINE_ARGS"); v != "" {
		c.PipelineArgs = strings.Fields(v)
	}
	c.PipelineInputFlag = envString("OLMOCR_PIPELINE_INPUT_FLAG", c.PipelineInputFlag)
	c.PipelineTimeoutSeconds = envInt("OLMOCR_PIPELINE_TIMEOUT_SECONDS", c.PipelineTimeoutSeconds)

	c.VerifyInputs = envBool("OLMOCR_VERIFY_INPUTS", c.VerifyInputs)
	c.MetricsTextfile = envString("OLMOCR_METRICS_TEXTFILE", c.MetricsTextfile)
}

func envString(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

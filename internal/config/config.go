// Package config provides repository configuration management for fragref,
// combining an optional JSON config file with environment overrides.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

// Defaults for the commit-and-push pipeline. The bot identity matches the
// identity GitHub attributes to github-actions commits.
const (
	DefaultChangelogDir  = "changelog.d"
	DefaultPlaceholder   = "NUMBER"
	DefaultRemote        = "origin"
	DefaultCommitMessage = "(actions) update PR references"
	DefaultBotName       = "github-actions bot"
	DefaultBotEmail      = "41898282+github-actions[bot]@users.noreply.github.com"
)

// ConfigFileName is the per-repository config file, looked up at the repo root
const ConfigFileName = ".fragref.json"

// FileConfig is the JSON shape of the per-repository config file.
// All fields are optional; zero values fall back to defaults.
type FileConfig struct {
	ChangelogDir  *string `json:"changelogDir,omitempty"`
	Placeholder   *string `json:"placeholder,omitempty"`
	Remote        *string `json:"remote,omitempty"`
	CommitMessage *string `json:"commitMessage,omitempty"`
	BotName       *string `json:"botName,omitempty"`
	BotEmail      *string `json:"botEmail,omitempty"`
}

// EnvConfig holds environment overrides, which win over the file.
// GITHUB_TOKEN is the standard CI token variable.
type EnvConfig struct {
	Token         string `env:"GITHUB_TOKEN"`
	ChangelogDir  string `env:"FRAGREF_DIR"`
	Remote        string `env:"FRAGREF_REMOTE"`
	CommitMessage string `env:"FRAGREF_COMMIT_MESSAGE"`
	BotName       string `env:"FRAGREF_BOT_NAME"`
	BotEmail      string `env:"FRAGREF_BOT_EMAIL"`
	LogFile       string `env:"FRAGREF_LOG_FILE"`
}

// Config is the fully resolved configuration used by commands
type Config struct {
	ChangelogDir  string
	Placeholder   string
	Remote        string
	CommitMessage string
	BotName       string
	BotEmail      string
	Token         string
	LogFile       string
}

// Load resolves configuration for the repository rooted at repoRoot:
// defaults, then the JSON config file if present, then environment variables.
func Load(ctx context.Context, repoRoot string) (*Config, error) {
	cfg := &Config{
		ChangelogDir:  DefaultChangelogDir,
		Placeholder:   DefaultPlaceholder,
		Remote:        DefaultRemote,
		CommitMessage: DefaultCommitMessage,
		BotName:       DefaultBotName,
		BotEmail:      DefaultBotEmail,
	}

	fileCfg, err := readFileConfig(repoRoot)
	if err != nil {
		return nil, err
	}
	if fileCfg != nil {
		applyFileConfig(cfg, fileCfg)
	}

	var env EnvConfig
	if err := envconfig.Process(ctx, &env); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	applyEnvConfig(cfg, &env)

	return cfg, nil
}

// Identity returns the bot name and email as a pair
func (c *Config) Identity() (string, string) {
	return c.BotName, c.BotEmail
}

func readFileConfig(repoRoot string) (*FileConfig, error) {
	configPath := filepath.Join(repoRoot, ConfigFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file is optional
		return nil, nil
	}

	var fileCfg FileConfig
	if err := json.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}

	return &fileCfg, nil
}

func applyFileConfig(cfg *Config, fileCfg *FileConfig) {
	if fileCfg.ChangelogDir != nil && *fileCfg.ChangelogDir != "" {
		cfg.ChangelogDir = *fileCfg.ChangelogDir
	}
	if fileCfg.Placeholder != nil && *fileCfg.Placeholder != "" {
		cfg.Placeholder = *fileCfg.Placeholder
	}
	if fileCfg.Remote != nil && *fileCfg.Remote != "" {
		cfg.Remote = *fileCfg.Remote
	}
	if fileCfg.CommitMessage != nil && *fileCfg.CommitMessage != "" {
		cfg.CommitMessage = *fileCfg.CommitMessage
	}
	if fileCfg.BotName != nil && *fileCfg.BotName != "" {
		cfg.BotName = *fileCfg.BotName
	}
	if fileCfg.BotEmail != nil && *fileCfg.BotEmail != "" {
		cfg.BotEmail = *fileCfg.BotEmail
	}
}

func applyEnvConfig(cfg *Config, env *EnvConfig) {
	if env.Token != "" {
		cfg.Token = env.Token
	}
	if env.ChangelogDir != "" {
		cfg.ChangelogDir = env.ChangelogDir
	}
	if env.Remote != "" {
		cfg.Remote = env.Remote
	}
	if env.CommitMessage != "" {
		cfg.CommitMessage = env.CommitMessage
	}
	if env.BotName != "" {
		cfg.BotName = env.BotName
	}
	if env.BotEmail != "" {
		cfg.BotEmail = env.BotEmail
	}
	if env.LogFile != "" {
		cfg.LogFile = env.LogFile
	}
}

// Write persists a FileConfig to the repo root, used by `fragref init`
func Write(repoRoot string, fileCfg *FileConfig) error {
	configJSON, err := json.MarshalIndent(fileCfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(repoRoot, ConfigFileName), configJSON, 0600)
}

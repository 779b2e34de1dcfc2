package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	configName = "aria-config"
	envPrefix  = "ARIA"
)

// Load reads configuration from aria-config.yaml (searched in the working
// directory and $HOME), applies ARIA_* environment overrides, and fills
// defaults for anything unset. A missing config file is not an error.
func Load() (Config, error) {
	return LoadFrom("")
}

// LoadFrom behaves like Load but reads the given file when path is non-empty.
func LoadFrom(path string) (Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cfg := DefaultConfig()
	setViperDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if path != "" {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	// API keys are usually supplied via environment, never the file.
	if key := os.Getenv("ARIA_API_KEY"); key != "" {
		cfg.LLM.APIKey = key
	} else if key := os.Getenv("OPENAI_API_KEY"); key != "" && cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = key
	}

	return cfg, nil
}

// WriteDefault writes a commented-out starter config to path, refusing to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func setViperDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("llm.provider", cfg.LLM.Provider)
	v.SetDefault("llm.model", cfg.LLM.Model)
	v.SetDefault("llm.base_url", cfg.LLM.BaseURL)
	v.SetDefault("llm.timeout_seconds", cfg.LLM.TimeoutSeconds)
	v.SetDefault("llm.max_retries", cfg.LLM.MaxRetries)
	v.SetDefault("llm.cache_size", cfg.LLM.CacheSize)
	v.SetDefault("wake.word", cfg.Wake.Word)
	v.SetDefault("wake.selection_max_tries", cfg.Wake.SelectionMaxTries)
	v.SetDefault("wake.history_token_budget", cfg.Wake.HistoryTokenBudget)
	v.SetDefault("monitor.reminder_interval", cfg.Monitor.ReminderInterval)
	v.SetDefault("monitor.focus_interval", cfg.Monitor.FocusInterval)
	v.SetDefault("monitor.health_interval", cfg.Monitor.HealthInterval)
	v.SetDefault("monitor.error_backoff", cfg.Monitor.ErrorBackoff)
	v.SetDefault("monitor.event_limit", cfg.Monitor.EventLimit)
	v.SetDefault("monitor.focus_keywords", cfg.Monitor.FocusKeywords)
	v.SetDefault("monitor.quiet_hour_start", cfg.Monitor.QuietHourStart)
	v.SetDefault("monitor.quiet_hour_end", cfg.Monitor.QuietHourEnd)
	v.SetDefault("monitor.battery_threshold", cfg.Monitor.BatteryThreshold)
	v.SetDefault("monitor.cpu_threshold", cfg.Monitor.CPUThreshold)
	v.SetDefault("monitor.alert_cooldown", cfg.Monitor.AlertCooldown)
	v.SetDefault("monitor.morning_briefing", cfg.Monitor.MorningBriefing)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.allowed_origins", cfg.Server.AllowedOrigins)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

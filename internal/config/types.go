package config

import "time"

// Config is the full runtime configuration for the assistant core.
type Config struct {
	LLM     LLMConfig     `json:"llm" yaml:"llm"`
	Wake    WakeConfig    `json:"wake" yaml:"wake"`
	Monitor MonitorConfig `json:"monitor" yaml:"monitor"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// LLMConfig configures the language model collaborator.
type LLMConfig struct {
	Provider       string `json:"provider" yaml:"provider"`
	Model          string `json:"model" yaml:"model"`
	APIKey         string `json:"api_key" yaml:"api_key"`
	BaseURL        string `json:"base_url" yaml:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRetries     int    `json:"max_retries" yaml:"max_retries"`
	CacheSize      int    `json:"cache_size" yaml:"cache_size"`
}

// WakeConfig configures wake-word handling and dialogue limits.
type WakeConfig struct {
	Word               string `json:"word" yaml:"word"`
	SelectionMaxTries  int    `json:"selection_max_tries" yaml:"selection_max_tries"`
	HistoryTokenBudget int    `json:"history_token_budget" yaml:"history_token_budget"`
}

// MonitorConfig configures the proactive background loops.
type MonitorConfig struct {
	ReminderInterval time.Duration `json:"reminder_interval" yaml:"reminder_interval"`
	FocusInterval    time.Duration `json:"focus_interval" yaml:"focus_interval"`
	HealthInterval   time.Duration `json:"health_interval" yaml:"health_interval"`
	ErrorBackoff     time.Duration `json:"error_backoff" yaml:"error_backoff"`

	EventLimit    int      `json:"event_limit" yaml:"event_limit"`
	FocusKeywords []string `json:"focus_keywords" yaml:"focus_keywords"`

	QuietHourStart int `json:"quiet_hour_start" yaml:"quiet_hour_start"`
	QuietHourEnd   int `json:"quiet_hour_end" yaml:"quiet_hour_end"`

	BatteryThreshold int           `json:"battery_threshold" yaml:"battery_threshold"`
	CPUThreshold     float64       `json:"cpu_threshold" yaml:"cpu_threshold"`
	AlertCooldown    time.Duration `json:"alert_cooldown" yaml:"alert_cooldown"`

	MorningBriefing bool `json:"morning_briefing" yaml:"morning_briefing"`
}

// ServerConfig configures the HTTP delivery surface.
type ServerConfig struct {
	Addr           string   `json:"addr" yaml:"addr"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`
}

// LogConfig configures structured logging output.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns the baseline configuration used when no file or
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider:       "openai",
			Model:          "gpt-4o-mini",
			BaseURL:        "https://api.openai.com/v1",
			TimeoutSeconds: 30,
			MaxRetries:     2,
			CacheSize:      256,
		},
		Wake: WakeConfig{
			Word:               "aria",
			SelectionMaxTries:  3,
			HistoryTokenBudget: 512,
		},
		Monitor: DefaultMonitorConfig(),
		Server: ServerConfig{
			Addr:           "127.0.0.1:8793",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultMonitorConfig returns the baseline proactive monitor settings.
func DefaultMonitorConfig() MonitorConfig {
	return MonitorConfig{
		ReminderInterval: 15 * time.Minute,
		FocusInterval:    time.Minute,
		HealthInterval:   time.Minute,
		ErrorBackoff:     10 * time.Second,
		EventLimit:       10,
		FocusKeywords:    []string{"focus time", "deep work", "focus session"},
		QuietHourStart:   5,
		QuietHourEnd:     23,
		BatteryThreshold: 25,
		CPUThreshold:     90,
		AlertCooldown:    5 * time.Minute,
		MorningBriefing:  true,
	}
}

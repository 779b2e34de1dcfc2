package main

import (
	"fmt"

	"aria/internal/assistant"
	"aria/internal/command"
	"aria/internal/config"
	"aria/internal/dialog"
	"aria/internal/intent"
	"aria/internal/llm"
	"aria/internal/logging"
	"aria/internal/metrics"
	"aria/internal/notify"
	"aria/internal/proactive"
	"aria/internal/tts"
)

// app bundles everything a command needs after wiring.
type app struct {
	cfg       config.Config
	logger    logging.Logger
	metrics   *metrics.Metrics
	assistant *assistant.Assistant
	center    *notify.Center
	monitor   *proactive.Monitor
	speaker   *tts.Queue
}

// buildApp loads configuration and wires the core. Collaborators that
// need host integration (calendar, mail, notes, system control) are
// left unwired here; handlers degrade to apologies and the monitor
// loops skip the missing sources.
func buildApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	model := llm.New(cfg.LLM, logging.NewComponentLogger("llm"))
	if !model.Available() {
		logger.Warn("no API key configured, falling back to deterministic responses")
	}

	speaker := tts.NewQueue(&tts.MockProvider{}, nil, "", logging.NewComponentLogger("tts"))
	center := notify.NewCenter(speaker, logging.NewComponentLogger("notify"))
	m := metrics.New()

	dispatcher := command.NewDispatcher(command.Collaborators{Model: model}, nil, logging.NewComponentLogger("command"))
	classifier := intent.NewClassifier(model, cfg.LLM.CacheSize, cfg.Wake.HistoryTokenBudget, logging.NewComponentLogger("intent"))

	monitor := proactive.NewMonitor(cfg.Monitor, proactive.Collaborators{Model: model}, center, m, logging.NewComponentLogger("proactive"))

	core := assistant.New(assistant.Options{
		Classifier:        classifier,
		Dispatcher:        dispatcher,
		Sessions:          dialog.NewManager(cfg.Wake.Word),
		Monitor:           monitor,
		Metrics:           m,
		Logger:            logging.NewComponentLogger("assistant"),
		SelectionMaxTries: cfg.Wake.SelectionMaxTries,
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		assistant: core,
		center:    center,
		monitor:   monitor,
		speaker:   speaker,
	}, nil
}

func loadConfig() (config.Config, error) {
	if configPath != "" {
		cfg, err := config.LoadFrom(configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

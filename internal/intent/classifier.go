package intent

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kaptinlin/jsonrepair"

	"aria/internal/logging"
	"aria/internal/ports"
)

// Classification sources, recorded on every result for observability.
const (
	SourceFastPath = "fastpath"
	SourceModel    = "model"
	SourceFallback = "fallback"
	SourceCache    = "cache"
)

// Result is the outcome of classifying one turn. Immutable once created;
// confidence is advisory only and always lies in [0,1].
type Result struct {
	Intent     Intent
	Confidence float64
	Parameters map[string]any
	Source     string
}

// Param returns the named string parameter, or "" when absent or not a string.
func (r Result) Param(key string) string {
	if r.Parameters == nil {
		return ""
	}
	if s, ok := r.Parameters[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// fallbackResult is returned whenever the model is unavailable or its
// output cannot be trusted.
func fallbackResult() Result {
	return Result{Intent: GeneralChat, Confidence: 0, Parameters: map[string]any{}, Source: SourceFallback}
}

// Classifier maps normalized utterance text to a vocabulary intent. The
// exact-phrase fast path runs first, then the model, then the
// deterministic fallback; the ordering is fixed and each layer is
// testable in isolation.
type Classifier struct {
	model         ports.LanguageModel
	logger        logging.Logger
	cache         *lru.Cache[string, Result]
	historyBudget int
	now           func() time.Time
}

// NewClassifier creates a Classifier. cacheSize <= 0 disables caching.
func NewClassifier(model ports.LanguageModel, cacheSize, historyBudget int, logger logging.Logger) *Classifier {
	var cache *lru.Cache[string, Result]
	if cacheSize > 0 {
		cache, _ = lru.New[string, Result](cacheSize)
	}
	return &Classifier{
		model:         model,
		logger:        logging.OrNop(logger),
		cache:         cache,
		historyBudget: historyBudget,
		now:           time.Now,
	}
}

var (
	jsonObject  = regexp.MustCompile(`(?s)\{.*\}`)
	weatherCity = regexp.MustCompile(`(?i)weather (?:in|for|at) ([a-zA-Z ]+)`)
)

// Classify turns normalized text into a Result. It never returns an
// error: any model failure degrades to the general_chat fallback.
func (c *Classifier) Classify(ctx context.Context, text string, history []Exchange) Result {
	cleaned := cleanForFastPath(text)
	if it, ok := fastPath[cleaned]; ok {
		return Result{Intent: it, Confidence: 1, Parameters: map[string]any{}, Source: SourceFastPath}
	}

	if c.cache != nil {
		if cached, ok := c.cache.Get(text); ok {
			return cached
		}
	}

	if c.model == nil || !c.model.Available() {
		return fallbackResult()
	}

	prompt := buildClassificationPrompt(text, history, c.historyBudget, c.now())
	raw, err := c.model.Complete(ctx, ports.CompletionRequest{
		System:    promptSystem,
		Prompt:    prompt,
		ForceJSON: true,
	})
	if err != nil {
		c.logger.Warn("classifier: model call failed: %v", err)
		return fallbackResult()
	}

	result, ok := c.parse(raw, text)
	if !ok {
		return fallbackResult()
	}

	if c.cache != nil {
		c.cache.Add(text, result)
	}
	return result
}

// parse validates the model's JSON against the strict result schema.
func (c *Classifier) parse(raw, text string) (Result, bool) {
	match := jsonObject.FindString(raw)
	if match == "" {
		c.logger.Warn("classifier: no JSON object in model output")
		return Result{}, false
	}

	var payload struct {
		Intent     string         `json:"intent"`
		Confidence float64        `json:"confidence"`
		Parameters map[string]any `json:"parameters"`
	}
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(match)
		if repairErr != nil {
			c.logger.Warn("classifier: unparseable model output: %v", err)
			return Result{}, false
		}
		if err := json.Unmarshal([]byte(repaired), &payload); err != nil {
			c.logger.Warn("classifier: repaired output still invalid: %v", err)
			return Result{}, false
		}
	}

	if payload.Intent == "" {
		return Result{}, false
	}

	result := Result{
		Intent:     Coerce(Intent(payload.Intent)),
		Confidence: clampConfidence(payload.Confidence),
		Parameters: payload.Parameters,
		Source:     SourceModel,
	}
	if result.Parameters == nil {
		result.Parameters = map[string]any{}
	}

	// Deterministic post-processing: recover a missing weather city from
	// the raw text before returning.
	if result.Intent == WeatherCheck && result.Param("city") == "" {
		if m := weatherCity.FindStringSubmatch(text); m != nil {
			result.Parameters["city"] = strings.TrimSpace(m[1])
		}
	}

	return result, true
}

func clampConfidence(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

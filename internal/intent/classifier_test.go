package intent

import (
	"context"
	"errors"
	"testing"

	"aria/internal/ports"
)

func TestFastPathBypassesModel(t *testing.T) {
	model := &ports.ScriptedModel{Responses: []string{`{"intent":"web_open","confidence":0.9,"parameters":{}}`}}
	c := NewClassifier(model, 0, 0, nil)

	result := c.Classify(context.Background(), "what time is it?", nil)

	if result.Intent != TimeCheck {
		t.Errorf("expected time_check, got %s", result.Intent)
	}
	if result.Source != SourceFastPath {
		t.Errorf("expected fastpath source, got %s", result.Source)
	}
	if len(model.Prompts) != 0 {
		t.Error("fast path must not invoke the model")
	}
}

func TestClassifyParsesModelOutput(t *testing.T) {
	model := &ports.ScriptedModel{Responses: []string{
		`{"intent":"app_open","confidence":0.92,"parameters":{"app_name":"Spotify"}}`,
	}}
	c := NewClassifier(model, 0, 0, nil)

	result := c.Classify(context.Background(), "open spotify", nil)

	if result.Intent != AppOpen {
		t.Errorf("expected app_open, got %s", result.Intent)
	}
	if result.Param("app_name") != "Spotify" {
		t.Errorf("expected Spotify parameter, got %q", result.Param("app_name"))
	}
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("confidence out of range: %f", result.Confidence)
	}
	if result.Source != SourceModel {
		t.Errorf("expected model source, got %s", result.Source)
	}
}

func TestClassifyGarbageFallsBackToGeneralChat(t *testing.T) {
	cases := []string{
		"not json at all",
		`{"intent":"launch_rocket","confidence":0.9,"parameters":{}}`, // unknown intent coerced, but still valid JSON
		`{"confidence":0.9}`,
		"",
	}
	for _, response := range cases {
		model := &ports.ScriptedModel{Responses: []string{response}}
		c := NewClassifier(model, 0, 0, nil)
		result := c.Classify(context.Background(), "do the thing", nil)
		if !Valid(result.Intent) {
			t.Errorf("response %q produced out-of-vocabulary intent %q", response, result.Intent)
		}
		if result.Intent != GeneralChat {
			t.Errorf("response %q: expected general_chat, got %s", response, result.Intent)
		}
	}
}

func TestClassifyRepairsMalformedJSON(t *testing.T) {
	// Trailing comma plus single quotes: jsonrepair territory.
	model := &ports.ScriptedModel{Responses: []string{
		"```json\n{'intent': 'web_search', 'confidence': 0.8, 'parameters': {'query': 'go generics'},}\n```",
	}}
	c := NewClassifier(model, 0, 0, nil)

	result := c.Classify(context.Background(), "search for go generics", nil)

	if result.Intent != WebSearch {
		t.Errorf("expected web_search after repair, got %s", result.Intent)
	}
}

func TestClassifyModelDownReturnsFallback(t *testing.T) {
	c := NewClassifier(&ports.ScriptedModel{Down: true}, 0, 0, nil)
	result := c.Classify(context.Background(), "open spotify", nil)
	if result.Intent != GeneralChat || result.Source != SourceFallback {
		t.Errorf("expected deterministic fallback, got %+v", result)
	}
}

func TestClassifyModelErrorReturnsFallback(t *testing.T) {
	c := NewClassifier(&ports.ScriptedModel{Err: errors.New("boom")}, 0, 0, nil)
	result := c.Classify(context.Background(), "open spotify", nil)
	if result.Intent != GeneralChat {
		t.Errorf("expected general_chat, got %s", result.Intent)
	}
	if result.Confidence != 0 {
		t.Errorf("fallback confidence must be 0, got %f", result.Confidence)
	}
}

func TestWeatherCityFallbackExtraction(t *testing.T) {
	model := &ports.ScriptedModel{Responses: []string{
		`{"intent":"weather_check","confidence":0.9,"parameters":{}}`,
	}}
	c := NewClassifier(model, 0, 0, nil)

	result := c.Classify(context.Background(), "what's the weather in London", nil)

	if result.Intent != WeatherCheck {
		t.Fatalf("expected weather_check, got %s", result.Intent)
	}
	if result.Param("city") != "London" {
		t.Errorf("expected city London, got %q", result.Param("city"))
	}
}

func TestClassifyDeterministicWithStub(t *testing.T) {
	response := `{"intent":"music_play","confidence":0.88,"parameters":{"song":"jazz"}}`
	model := &ports.ScriptedModel{Responses: []string{response, response}}
	c := NewClassifier(model, 0, 0, nil)

	first := c.Classify(context.Background(), "play some jazz", nil)
	second := c.Classify(context.Background(), "play some jazz", nil)

	if first.Intent != second.Intent || first.Param("song") != second.Param("song") {
		t.Errorf("classification not deterministic: %+v vs %+v", first, second)
	}
}

func TestClassifyCachesResults(t *testing.T) {
	model := &ports.ScriptedModel{Responses: []string{
		`{"intent":"web_open","confidence":0.9,"parameters":{"url":"https://youtube.com"}}`,
	}}
	c := NewClassifier(model, 8, 0, nil)

	first := c.Classify(context.Background(), "open youtube", nil)
	second := c.Classify(context.Background(), "open youtube", nil)

	if len(model.Prompts) != 1 {
		t.Errorf("expected single model call, got %d", len(model.Prompts))
	}
	if second.Intent != first.Intent {
		t.Errorf("cached result differs: %+v vs %+v", first, second)
	}
}

func TestConfidenceClamped(t *testing.T) {
	model := &ports.ScriptedModel{Responses: []string{
		`{"intent":"web_open","confidence":3.5,"parameters":{}}`,
	}}
	c := NewClassifier(model, 0, 0, nil)
	result := c.Classify(context.Background(), "open example", nil)
	if result.Confidence < 0 || result.Confidence > 1 {
		t.Errorf("confidence must be clamped to [0,1], got %f", result.Confidence)
	}
}

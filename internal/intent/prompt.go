package intent

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pkoukk/tiktoken-go"
)

// Exchange is one prior turn of conversation supplied as classifier context.
type Exchange struct {
	Role    string
	Content string
}

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// countTokens estimates the token count of text, falling back to a
// bytes/4 heuristic when the encoding cannot be loaded (offline hosts).
func countTokens(text string) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})
	if encoding != nil {
		return len(encoding.Encode(text, nil, nil))
	}
	return len(text)/4 + 1
}

// trimHistory keeps the most recent exchanges that fit the token budget.
func trimHistory(history []Exchange, budget int) []Exchange {
	if budget <= 0 || len(history) == 0 {
		return nil
	}
	total := 0
	start := len(history)
	for i := len(history) - 1; i >= 0; i-- {
		total += countTokens(history[i].Content)
		if total > budget {
			break
		}
		start = i
	}
	return history[start:]
}

const promptSystem = "You are a command intent classifier for a voice assistant. " +
	"Return ONLY a JSON object, no prose."

// buildClassificationPrompt enumerates the vocabulary and worked examples
// around the user's command.
func buildClassificationPrompt(text string, history []Exchange, budget int, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the user's command and determine their intent.\n\n")
	fmt.Fprintf(&b, "CURRENT DATE: %s\n", now.Format("Monday, 2006-01-02"))

	if trimmed := trimHistory(history, budget); len(trimmed) > 0 {
		b.WriteString("\nRECENT CONVERSATION HISTORY:\n")
		for _, msg := range trimmed {
			fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(msg.Role), msg.Content)
		}
	}

	fmt.Fprintf(&b, "\nUSER COMMAND: %q\n\nAVAILABLE INTENTS:\n", text)
	for _, it := range vocabularyOrder {
		fmt.Fprintf(&b, "  - %q: %s\n", string(it), descriptions[it])
	}

	b.WriteString(`
RULES:
1. Do NOT invent new intents. Use ONLY the ones listed above.
2. Choose the MOST SPECIFIC intent that matches. If the command is a
   general question or conversation, use "general_chat".
3. Extract relevant parameters into the "parameters" object.
4. "open [app name]" is "app_open"; "open [website]" is "web_open";
   when ambiguous prefer "app_open".
5. Questions needing real-time or external knowledge are "web_search",
   not "general_chat".

EXAMPLES:
- "what's the weather in London" -> {"intent":"weather_check","confidence":0.95,"parameters":{"city":"London"}}
- "open spotify" -> {"intent":"app_open","confidence":0.9,"parameters":{"app_name":"Spotify"}}
- "open youtube" -> {"intent":"web_open","confidence":0.9,"parameters":{"url":"https://youtube.com","name":"YouTube"}}
- "play some jazz" -> {"intent":"music_play","confidence":0.9,"parameters":{"song":"jazz"}}
- "send an email to Sam about the launch" -> {"intent":"email_send","confidence":0.9,"parameters":{}}
- "what do I have on Friday" -> {"intent":"calendar_query","confidence":0.9,"parameters":{"date_reference":"friday"}}
- "summarize my project notes" -> {"intent":"notes_query","confidence":0.85,"parameters":{"query":"project notes"}}
- "change my wallpaper" -> {"intent":"general_chat","confidence":0.8,"parameters":{}}

Return ONLY a JSON object with this exact structure:
{"intent": "the_intent_name", "confidence": 0.95, "parameters": {}}
`)

	return b.String()
}

package assistant

import "time"

// Greeting returns a time-of-day greeting for a bare wake-word turn.
func Greeting(t time.Time) string {
	switch hour := t.Hour(); {
	case hour < 5:
		return "You're up late! How can I help?"
	case hour < 12:
		return "Good morning! How can I help?"
	case hour < 17:
		return "Good afternoon! What can I do for you?"
	case hour < 21:
		return "Good evening! How can I help?"
	default:
		return "Hello! What do you need?"
	}
}

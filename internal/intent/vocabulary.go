// Package intent turns free-form utterances into structured intents drawn
// from a closed, versioned vocabulary.
package intent

// Intent is an element of the closed command vocabulary.
type Intent string

// VocabularyVersion identifies the intent set; bump when intents are
// added or removed. The set is never extended at runtime.
const VocabularyVersion = "2024-06"

// The command vocabulary.
const (
	WebOpen        Intent = "web_open"
	AppOpen        Intent = "app_open"
	WebSearch      Intent = "web_search"
	MusicPlay      Intent = "music_play"
	EmailSend      Intent = "email_send"
	EmailCheck     Intent = "email_check"
	WeatherCheck   Intent = "weather_check"
	CalendarQuery  Intent = "calendar_query"
	CalendarCreate Intent = "calendar_create"
	NotesQuery     Intent = "notes_query"
	NotesCreate    Intent = "notes_create"
	TimeCheck      Intent = "time_check"
	DateCheck      Intent = "date_check"
	BatteryCheck   Intent = "battery_check"
	CPUCheck       Intent = "cpu_check"
	RAMCheck       Intent = "ram_check"
	SystemStats    Intent = "system_stats"
	FocusModeOn    Intent = "focus_mode_on"
	FocusModeOff   Intent = "focus_mode_off"
	MinimizeAll    Intent = "minimize_all"
	GeneralChat    Intent = "general_chat"
)

// descriptions feeds the classification prompt; one line per intent.
var descriptions = map[Intent]string{
	WebOpen:        "Open a website (YouTube, a URL, etc.)",
	AppOpen:        "Open a desktop application",
	WebSearch:      "Search the web for information",
	MusicPlay:      "Play music or a specific song",
	EmailSend:      "Send an email",
	EmailCheck:     "Check unread emails or inbox",
	WeatherCheck:   "Check weather for a specific location",
	CalendarQuery:  "Check schedule or events",
	CalendarCreate: "Create a calendar event",
	NotesQuery:     "Search or summarize notes",
	NotesCreate:    "Add an item or page to notes",
	TimeCheck:      "Get current time",
	DateCheck:      "Get current date",
	BatteryCheck:   "Check battery status and percentage",
	CPUCheck:       "Check CPU usage",
	RAMCheck:       "Check RAM/memory usage",
	SystemStats:    "Get all system statistics (battery, CPU, RAM)",
	FocusModeOn:    "Turn on Focus Mode / Deep Work / Do Not Disturb",
	FocusModeOff:   "Turn off Focus Mode / Deep Work",
	MinimizeAll:    "Minimize all windows / Show desktop",
	GeneralChat:    "General conversation or questions (fallback)",
}

// vocabularyOrder fixes prompt enumeration order so prompts are
// deterministic across runs.
var vocabularyOrder = []Intent{
	WebOpen, AppOpen, WebSearch, MusicPlay,
	EmailSend, EmailCheck,
	WeatherCheck,
	CalendarQuery, CalendarCreate,
	NotesQuery, NotesCreate,
	TimeCheck, DateCheck,
	BatteryCheck, CPUCheck, RAMCheck, SystemStats,
	FocusModeOn, FocusModeOff, MinimizeAll,
	GeneralChat,
}

// Valid reports whether the intent is part of the vocabulary.
func Valid(i Intent) bool {
	_, ok := descriptions[i]
	return ok
}

// Coerce maps any out-of-vocabulary value to GeneralChat.
func Coerce(i Intent) Intent {
	if Valid(i) {
		return i
	}
	return GeneralChat
}

// fastPath maps cleaned exact phrases to intents, bypassing the model.
var fastPath = map[string]Intent{
	"what time is it":     TimeCheck,
	"current time":        TimeCheck,
	"what date is it":     DateCheck,
	"todays date":         DateCheck,
	"check battery":       BatteryCheck,
	"battery status":      BatteryCheck,
	"focus mode on":       FocusModeOn,
	"focus mode off":      FocusModeOff,
	"deep work mode":      FocusModeOn,
	"minimize everything": MinimizeAll,
	"show desktop":        MinimizeAll,
	"check my email":      EmailCheck,
	"system stats":        SystemStats,
}

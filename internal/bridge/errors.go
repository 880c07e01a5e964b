package bridge

import "encoding/json"

// SuggestionError is returned by command handlers when the failure has
// a user-facing remedy. Its Error string is a JSON object carrying the
// localization key of the suggestion, so clients that only see the
// message text can still recover the key.
type SuggestionError struct {
	Key string
	Err error
}

// Suggest wraps err with the localization key of a user-facing remedy
func Suggest(key string, err error) error {
	return &SuggestionError{Key: key, Err: err}
}

func (e *SuggestionError) Error() string {
	encoded, err := json.Marshal(struct {
		Suggestion string `json:"suggestion"`
	}{e.Key})
	if err != nil {
		return e.Key
	}
	return string(encoded)
}

func (e *SuggestionError) Unwrap() error {
	return e.Err
}

// FaultKind tells whether a command error carried a structured
// suggestion or only raw message text
type FaultKind int

const (
	// FaultRaw - plain message text, shown to the user as-is
	FaultRaw FaultKind = iota
	// FaultStructured - carries a localization key with a suggested fix
	FaultStructured
)

// Fault is the client-side view of a failed command. It is produced by
// a single parse at the bridge boundary; display code switches on Kind
// and never inspects Message again.
type Fault struct {
	Kind       FaultKind
	Message    string
	Suggestion string
}

// ParseFault classifies a command error message. Messages that decode
// as {"suggestion": <key>} become structured faults; everything else
// stays raw.
func ParseFault(message string) Fault {
	var probe struct {
		Suggestion string `json:"suggestion"`
	}
	if err := json.Unmarshal([]byte(message), &probe); err == nil && probe.Suggestion != "" {
		return Fault{Kind: FaultStructured, Message: message, Suggestion: probe.Suggestion}
	}
	return Fault{Kind: FaultRaw, Message: message}
}

// FaultFrom classifies err for display. A nil err yields a zero Fault.
func FaultFrom(err error) Fault {
	if err == nil {
		return Fault{}
	}
	return ParseFault(err.Error())
}

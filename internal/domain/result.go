package domain

// Result is the structured outcome of a single tool call. It is the only
// shape the dispatcher hands back to callers: either a success with an
// operation-specific payload and an optional user-facing message, or a
// failure with a message and actionable suggestions.
type Result struct {
	Success     bool     `json:"success"`
	Data        any      `json:"data,omitempty"`
	Message     string   `json:"message,omitempty"`
	Error       string   `json:"error,omitempty"`
	Suggestions []string `json:"suggestions"`
}

// OK creates a successful Result carrying data and a user-facing message.
func OK(data any, message string) Result {
	return Result{Success: true, Data: data, Message: message, Suggestions: []string{}}
}

// Fail converts a domain error into a failed Result, preserving the
// error's suggestions. Non-domain errors degrade to a generic message with
// retry suggestions so internal detail never leaks to the user.
func Fail(err error) Result {
	if err == nil {
		return Result{Success: false, Error: MsgUnknownError, Suggestions: []string{}}
	}

	suggestions := SuggestionsOf(err)
	if suggestions == nil {
		return Result{
			Success:     false,
			Error:       MsgUnknownError,
			Suggestions: []string{SuggestRetry, SuggestRephrase},
		}
	}

	return Result{Success: false, Error: err.Error(), Suggestions: suggestions}
}

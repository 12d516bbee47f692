package models

// AuthResponse is returned by register and login: the user view plus a
// signed session token the client replays as a bearer credential.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// MessageResponse is a minimal confirmation body (e.g. after a delete).
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body. Errors carries per-field
// validation messages when the failure is a validation error; it is omitted
// otherwise.
type ErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// PriorityBreakdown is the per-priority slice of the insights report.
type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// Insights is the derived statistics report over a single user's tasks.
type Insights struct {
	TotalTasks        int               `json:"totalTasks"`
	CompletedTasks    int               `json:"completedTasks"`
	InProgressTasks   int               `json:"inProgressTasks"`
	TodoTasks         int               `json:"todoTasks"`
	PriorityBreakdown PriorityBreakdown `json:"priorityBreakdown"`

	// TasksDueSoon counts tasks due within the next 7 days, inclusive,
	// that are not yet completed.
	TasksDueSoon int `json:"tasksDueSoon"`

	// CompletionRate is round(completed/total*100), 0 when there are no tasks.
	CompletionRate int `json:"completionRate"`
}

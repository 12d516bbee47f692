package models

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the body of PUT /api/users/profile.
// Only the display name is mutable through this path.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// CreateTaskRequest is the body of POST /api/tasks.
// DueDate is an RFC 3339 or "2006-01-02" date string; an unparseable value
// is treated as "no due date" rather than rejected.
type CreateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	Labels      []string `json:"labels"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}.
//
// Partial-update semantics: empty or absent string fields leave the stored
// value untouched, so a field cannot be cleared by sending "". Labels is the
// exception: an absent array (nil after decoding) is ignored, while a present
// array replaces the stored labels even when it is empty.
type UpdateTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	DueDate     string   `json:"dueDate"`
	Labels      []string `json:"labels"`
}

// Sort orders accepted by the task listing endpoint. Anything else falls
// back to newest-first creation order.
const (
	SortDueDateAsc   = "dueDate-asc"
	SortDueDateDesc  = "dueDate-desc"
	SortPriorityAsc  = "priority-asc"
	SortPriorityDesc = "priority-desc"
)

// TaskFilter carries the optional query parameters of GET /api/tasks.
// Zero values mean "no constraint"; the owner constraint is always applied
// by the repository regardless of the filter contents.
type TaskFilter struct {
	Status   string
	Priority string
	Search   string
	Sort     string
}

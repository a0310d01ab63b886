package task

import "time"

// Draft is the input for creating a task. Empty Status and Priority take
// their defaults (New, Medium).
type Draft struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Patch is the input for a merge-patch update. A nil field leaves the stored
// value unchanged. A nil DueDate cannot clear an existing due date.
type Patch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

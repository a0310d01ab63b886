package task

import "time"

// Status represents the workflow state of a task.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Priority represents how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// MaxDescriptionLength is the longest description a task may carry.
const MaxDescriptionLength = 1000

// Task is the core domain entity representing a tracked piece of work.
// Timestamps are owned by the service, so GORM's automatic tracking is off.
type Task struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Description *string    `gorm:"size:1000" json:"description"`
	Status      Status     `gorm:"type:varchar(20);not null;default:New;index" json:"status"`
	Priority    Priority   `gorm:"type:varchar(20);not null;default:Medium" json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

package domain

import "time"

// TaskStatus is also the kanban column.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in-progress"
	TaskReview     TaskStatus = "review"
	TaskCompleted  TaskStatus = "completed"
)

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskCompleted}

// TaskPriority enumerates urgency.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// Task is a unit of work owned by a department.
type Task struct {
	ID             string
	CompanyID      string
	Title          string
	Description    string
	DepartmentID   string
	DepartmentName string
	AssigneeID     *string
	AssigneeName   string
	Priority       TaskPriority
	DueDate        *time.Time
	Status         TaskStatus
	Subtasks       []Subtask
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Overdue reports whether the task is past its due date and not completed.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.Status != TaskCompleted && t.DueDate.Before(now)
}

// Subtask is a checklist item under a task.
type Subtask struct {
	ID         string
	TaskID     string
	Title      string
	AssigneeID *string
	Status     TaskStatus
	CreatedAt  time.Time
}

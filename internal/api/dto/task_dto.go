package dto

import (
	"time"

	"github.com/emsdev/ems-service/internal/domain"
)

// TaskRequest creates or replaces a task.
type TaskRequest struct {
	Title        string              `json:"title" validate:"required,min=3"`
	Description  string              `json:"description" validate:"max=2000"`
	DepartmentID string              `json:"department_id" validate:"required,uuid"`
	AssigneeID   *string             `json:"assignee_id" validate:"omitempty,uuid|len=0"`
	Priority     domain.TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	DueDate      string              `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Status       domain.TaskStatus   `json:"status" validate:"omitempty,oneof=todo in-progress review completed"`
}

// TaskStatusRequest moves a task or subtask between columns.
type TaskStatusRequest struct {
	Status domain.TaskStatus `json:"status" validate:"required,oneof=todo in-progress review completed"`
}

// SubtaskRequest adds a checklist item.
type SubtaskRequest struct {
	Title      string  `json:"title" validate:"required,min=3"`
	AssigneeID *string `json:"assignee_id" validate:"omitempty,uuid|len=0"`
}

// TaskResponse payload.
type TaskResponse struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	DepartmentID   string              `json:"department_id"`
	DepartmentName string              `json:"department_name"`
	AssigneeID     *string             `json:"assignee_id"`
	AssigneeName   string              `json:"assignee_name,omitempty"`
	Priority       domain.TaskPriority `json:"priority"`
	DueDate        *string             `json:"due_date"`
	Status         domain.TaskStatus   `json:"status"`
	Overdue        bool                `json:"overdue"`
	Subtasks       []SubtaskResponse   `json:"subtasks"`
	Progress       int                 `json:"progress"`
	CreatedAt      time.Time           `json:"created_at"`
}

// SubtaskResponse payload.
type SubtaskResponse struct {
	ID         string            `json:"id"`
	Title      string            `json:"title"`
	AssigneeID *string           `json:"assignee_id"`
	Status     domain.TaskStatus `json:"status"`
}

// BoardColumnResponse is one kanban lane.
type BoardColumnResponse struct {
	Status domain.TaskStatus `json:"status"`
	Count  int               `json:"count"`
	Tasks  []TaskResponse    `json:"tasks"`
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/events"
	"github.com/emsdev/ems-service/internal/listing"
	"github.com/emsdev/ems-service/internal/repository"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// TaskInput carries the editable task fields.
type TaskInput struct {
	Title        string
	Description  string
	DepartmentID string
	AssigneeID   *string
	Priority     domain.TaskPriority
	DueDate      *time.Time
	Status       domain.TaskStatus
}

// SubtaskInput carries a new checklist item.
type SubtaskInput struct {
	Title      string
	AssigneeID *string
}

// BoardColumn is one kanban lane.
type BoardColumn struct {
	Status domain.TaskStatus
	Tasks  []domain.Task
}

// TaskDependencies encapsulates repo requirements for the task service.
type TaskDependencies struct {
	TaskRepo       repository.TaskRepository
	DepartmentRepo repository.DepartmentRepository
	EmployeeRepo   repository.EmployeeRepository
}

// TaskService manages tasks, subtasks and the kanban board.
type TaskService struct {
	tasks       repository.TaskRepository
	departments repository.DepartmentRepository
	employees   repository.EmployeeRepository
	col         *Collections
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies, col *Collections) *TaskService {
	return &TaskService{
		tasks:       deps.TaskRepo,
		departments: deps.DepartmentRepo,
		employees:   deps.EmployeeRepo,
		col:         col,
	}
}

// All returns the tenant's tasks with their subtasks.
func (s *TaskService) All(ctx context.Context, actor Actor) ([]domain.Task, error) {
	items, err := loadCollection(ctx, s.col, actor.CompanyID, ResourceTasks, func(ctx context.Context) ([]domain.Task, error) {
		return s.tasks.List(ctx, actor.CompanyID)
	})
	return items, apperrors.MapError(err)
}

// List runs the list pipeline over the task collection.
func (s *TaskService) List(ctx context.Context, actor Actor, q listing.Query) (listing.Page[domain.Task], error) {
	items, err := s.All(ctx, actor)
	if err != nil {
		return listing.Page[domain.Task]{}, err
	}
	return list(s.col, TaskSpec, q, items), nil
}

// Board groups the filtered tasks by status. The board ignores pagination and any status filter.
func (s *TaskService) Board(ctx context.Context, actor Actor, q listing.Query) ([]BoardColumn, error) {
	items, err := s.All(ctx, actor)
	if err != nil {
		return nil, err
	}
	if q.Filters != nil {
		filters := make(map[string]string, len(q.Filters))
		for k, v := range q.Filters {
			if k != "status" {
				filters[k] = v
			}
		}
		q.Filters = filters
	}
	filtered := listing.Filter(TaskSpec, q, items)

	columns := make([]BoardColumn, 0, len(domain.TaskStatuses))
	index := make(map[domain.TaskStatus]int, len(domain.TaskStatuses))
	for i, status := range domain.TaskStatuses {
		columns = append(columns, BoardColumn{Status: status, Tasks: []domain.Task{}})
		index[status] = i
	}
	for _, t := range filtered {
		if i, ok := index[t.Status]; ok {
			columns[i].Tasks = append(columns[i].Tasks, t)
		}
	}
	return columns, nil
}

// Get returns one task with subtasks.
func (s *TaskService) Get(ctx context.Context, actor Actor, id string) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "task")
	}
	return t, nil
}

// Create adds a task after checking its department and assignee belong to the tenant.
func (s *TaskService) Create(ctx context.Context, actor Actor, in TaskInput) (*domain.Task, error) {
	if err := s.checkRefs(ctx, actor.CompanyID, in.DepartmentID, in.AssigneeID); err != nil {
		return nil, err
	}
	t := &domain.Task{CompanyID: actor.CompanyID}
	applyTaskInput(t, in)
	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.col.invalidate(ctx, actor.CompanyID, ResourceTasks)
	if t.AssigneeID != nil {
		s.col.publish(ctx, events.New(events.EventTaskAssigned, actor.CompanyID, actor.UserID, t.ID,
			events.TaskAssignedPayload{Title: t.Title, AssigneeID: *t.AssigneeID}))
	}
	return s.Get(ctx, actor, t.ID)
}

// Update replaces a task's editable fields. Subtasks are kept.
func (s *TaskService) Update(ctx context.Context, actor Actor, id string, in TaskInput) (*domain.Task, error) {
	existing, err := s.tasks.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "task")
	}
	if err := s.checkRefs(ctx, actor.CompanyID, in.DepartmentID, in.AssigneeID); err != nil {
		return nil, err
	}

	oldStatus := existing.Status
	oldAssignee := existing.AssigneeID
	applyTaskInput(existing, in)
	if err := s.tasks.Update(ctx, existing); err != nil {
		return nil, apperrors.MapError(err, "task")
	}

	s.col.invalidate(ctx, actor.CompanyID, ResourceTasks)
	if oldStatus != existing.Status {
		s.publishStatus(ctx, actor, id, oldStatus, existing.Status)
	}
	if existing.AssigneeID != nil && (oldAssignee == nil || *oldAssignee != *existing.AssigneeID) {
		s.col.publish(ctx, events.New(events.EventTaskAssigned, actor.CompanyID, actor.UserID, id,
			events.TaskAssignedPayload{Title: existing.Title, AssigneeID: *existing.AssigneeID}))
	}
	return s.Get(ctx, actor, id)
}

// UpdateStatus moves a task to another kanban column.
func (s *TaskService) UpdateStatus(ctx context.Context, actor Actor, id string, status domain.TaskStatus) (*domain.Task, error) {
	existing, err := s.tasks.GetByID(ctx, actor.CompanyID, id)
	if err != nil {
		return nil, apperrors.MapError(err, "task")
	}
	if existing.Status == status {
		return existing, nil
	}
	if err := s.tasks.UpdateStatus(ctx, actor.CompanyID, id, status); err != nil {
		return nil, apperrors.MapError(err, "task")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceTasks)
	s.publishStatus(ctx, actor, id, existing.Status, status)

	existing.Status = status
	return existing, nil
}

// Delete removes a task and its subtasks.
func (s *TaskService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := s.tasks.Delete(ctx, actor.CompanyID, id); err != nil {
		return apperrors.MapError(err, "task")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceTasks)
	return nil
}

// AddSubtask appends a checklist item to a task.
func (s *TaskService) AddSubtask(ctx context.Context, actor Actor, taskID string, in SubtaskInput) (*domain.Subtask, error) {
	if _, err := s.tasks.GetByID(ctx, actor.CompanyID, taskID); err != nil {
		return nil, apperrors.MapError(err, "task")
	}
	if err := s.checkAssignee(ctx, actor.CompanyID, in.AssigneeID); err != nil {
		return nil, err
	}
	sub := &domain.Subtask{
		TaskID:     taskID,
		Title:      strings.TrimSpace(in.Title),
		AssigneeID: in.AssigneeID,
		Status:     domain.TaskTodo,
	}
	if err := s.tasks.AddSubtask(ctx, sub); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceTasks)
	return sub, nil
}

// UpdateSubtaskStatus changes a subtask's status.
func (s *TaskService) UpdateSubtaskStatus(ctx context.Context, actor Actor, taskID, subtaskID string, status domain.TaskStatus) (*domain.Task, error) {
	if _, err := s.tasks.GetByID(ctx, actor.CompanyID, taskID); err != nil {
		return nil, apperrors.MapError(err, "task")
	}
	if err := s.tasks.UpdateSubtaskStatus(ctx, taskID, subtaskID, status); err != nil {
		return nil, apperrors.MapError(err, "subtask")
	}
	s.col.invalidate(ctx, actor.CompanyID, ResourceTasks)
	return s.Get(ctx, actor, taskID)
}

func (s *TaskService) publishStatus(ctx context.Context, actor Actor, id string, from, to domain.TaskStatus) {
	s.col.publish(ctx, events.New(events.EventTaskStatusChanged, actor.CompanyID, actor.UserID, id,
		events.StatusChangedPayload{OldStatus: string(from), NewStatus: string(to)}))
}

func (s *TaskService) checkRefs(ctx context.Context, companyID, departmentID string, assigneeID *string) error {
	if _, err := s.departments.GetByID(ctx, companyID, departmentID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError("unknown department", map[string]any{"department": departmentID})
		}
		return apperrors.MapError(err)
	}
	return s.checkAssignee(ctx, companyID, assigneeID)
}

func (s *TaskService) checkAssignee(ctx context.Context, companyID string, assigneeID *string) error {
	if assigneeID == nil {
		return nil
	}
	if _, err := s.employees.GetByID(ctx, companyID, *assigneeID); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError("unknown assignee", map[string]any{"assignee": *assigneeID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func applyTaskInput(t *domain.Task, in TaskInput) {
	t.Title = strings.TrimSpace(in.Title)
	t.Description = strings.TrimSpace(in.Description)
	t.DepartmentID = in.DepartmentID
	t.AssigneeID = in.AssigneeID
	t.Priority = in.Priority
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	t.DueDate = in.DueDate
	if in.Status != "" {
		t.Status = in.Status
	}
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
}

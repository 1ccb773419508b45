package repository

import (
	"context"

	"github.com/emsdev/ems-service/internal/domain"
)

// TaskRepository encapsulates task and subtask persistence.
type TaskRepository interface {
	List(ctx context.Context, companyID string) ([]domain.Task, error)
	GetByID(ctx context.Context, companyID, id string) (*domain.Task, error)
	Create(ctx context.Context, task *domain.Task) error
	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, companyID, id string, status domain.TaskStatus) error
	Delete(ctx context.Context, companyID, id string) error
	AddSubtask(ctx context.Context, subtask *domain.Subtask) error
	UpdateSubtaskStatus(ctx context.Context, taskID, id string, status domain.TaskStatus) error
}

type taskRepository struct {
	db DB
}

// NewTaskRepository instantiates repository.
func NewTaskRepository(db DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskSelect = `
        SELECT t.id, t.company_id, t.title, t.description, t.department_id, d.name,
            t.assignee_id, COALESCE(e.name, ''), t.priority, t.due_date, t.status, t.created_at, t.updated_at
        FROM tasks t
        JOIN departments d ON d.id = t.department_id
        LEFT JOIN employees e ON e.id = t.assignee_id`

func scanTask(row rowScanner) (domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID,
		&t.CompanyID,
		&t.Title,
		&t.Description,
		&t.DepartmentID,
		&t.DepartmentName,
		&t.AssigneeID,
		&t.AssigneeName,
		&t.Priority,
		&t.DueDate,
		&t.Status,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	t.Subtasks = []domain.Subtask{}
	return t, err
}

func scanSubtask(row rowScanner) (domain.Subtask, error) {
	var s domain.Subtask
	err := row.Scan(&s.ID, &s.TaskID, &s.Title, &s.AssigneeID, &s.Status, &s.CreatedAt)
	return s, err
}

func (r *taskRepository) List(ctx context.Context, companyID string) ([]domain.Task, error) {
	rows, err := r.db.Query(ctx, taskSelect+` WHERE t.company_id=$1 ORDER BY t.created_at, t.id`, companyID)
	if err != nil {
		return nil, err
	}
	tasks, err := collect(rows, scanTask)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return tasks, nil
	}

	const subtaskQuery = `
        SELECT s.id, s.task_id, s.title, s.assignee_id, s.status, s.created_at
        FROM subtasks s JOIN tasks t ON t.id = s.task_id
        WHERE t.company_id=$1 ORDER BY s.created_at, s.id`
	subRows, err := r.db.Query(ctx, subtaskQuery, companyID)
	if err != nil {
		return nil, err
	}
	subtasks, err := collect(subRows, scanSubtask)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(tasks))
	for i := range tasks {
		index[tasks[i].ID] = i
	}
	for _, s := range subtasks {
		if i, ok := index[s.TaskID]; ok {
			tasks[i].Subtasks = append(tasks[i].Subtasks, s)
		}
	}
	return tasks, nil
}

func (r *taskRepository) GetByID(ctx context.Context, companyID, id string) (*domain.Task, error) {
	t, err := scanTask(r.db.QueryRow(ctx, taskSelect+` WHERE t.id=$1 AND t.company_id=$2`, id, companyID))
	if err != nil {
		return nil, err
	}

	const subtaskQuery = `
        SELECT id, task_id, title, assignee_id, status, created_at
        FROM subtasks WHERE task_id=$1 ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, subtaskQuery, t.ID)
	if err != nil {
		return nil, err
	}
	if t.Subtasks, err = collect(rows, scanSubtask); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (company_id, title, description, department_id, assignee_id, priority, due_date, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		task.CompanyID,
		task.Title,
		task.Description,
		task.DepartmentID,
		task.AssigneeID,
		task.Priority,
		task.DueDate,
		task.Status,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, description=$2, department_id=$3, assignee_id=$4, priority=$5, due_date=$6, status=$7, updated_at=NOW()
        WHERE id=$8 AND company_id=$9`
	return expectAffected(r.db.Exec(ctx, query,
		task.Title,
		task.Description,
		task.DepartmentID,
		task.AssigneeID,
		task.Priority,
		task.DueDate,
		task.Status,
		task.ID,
		task.CompanyID,
	))
}

func (r *taskRepository) UpdateStatus(ctx context.Context, companyID, id string, status domain.TaskStatus) error {
	const query = `UPDATE tasks SET status=$1, updated_at=NOW() WHERE id=$2 AND company_id=$3`
	return expectAffected(r.db.Exec(ctx, query, status, id, companyID))
}

func (r *taskRepository) Delete(ctx context.Context, companyID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM tasks WHERE id=$1 AND company_id=$2`, id, companyID))
}

func (r *taskRepository) AddSubtask(ctx context.Context, subtask *domain.Subtask) error {
	const query = `
        INSERT INTO subtasks (task_id, title, assignee_id, status)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		subtask.TaskID,
		subtask.Title,
		subtask.AssigneeID,
		subtask.Status,
	).Scan(&subtask.ID, &subtask.CreatedAt)
}

func (r *taskRepository) UpdateSubtaskStatus(ctx context.Context, taskID, id string, status domain.TaskStatus) error {
	const query = `UPDATE subtasks SET status=$1 WHERE id=$2 AND task_id=$3`
	return expectAffected(r.db.Exec(ctx, query, status, id, taskID))
}

package servicetest

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/emsdev/ems-service/internal/domain"
)

type taskRepo struct{ s *Store }

func (r taskRepo) hydrate(t *domain.Task) domain.Task {
	cp := *t
	cp.Subtasks = append([]domain.Subtask{}, t.Subtasks...)
	cp.DepartmentName, cp.AssigneeName = "", ""
	for _, d := range r.s.departments {
		if d.ID == t.DepartmentID {
			cp.DepartmentName = d.Name
		}
	}
	if t.AssigneeID != nil {
		for _, e := range r.s.employees {
			if e.ID == *t.AssigneeID {
				cp.AssigneeName = e.Name
			}
		}
	}
	return cp
}

func (r taskRepo) find(companyID, id string) *domain.Task {
	for _, t := range r.s.tasks {
		if t.ID == id && (companyID == "" || t.CompanyID == companyID) {
			return t
		}
	}
	return nil
}

func (r taskRepo) List(_ context.Context, companyID string) ([]domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Calls["tasks"]++
	out := []domain.Task{}
	for _, t := range r.s.tasks {
		if t.CompanyID == companyID {
			out = append(out, r.hydrate(t))
		}
	}
	return out, nil
}

func (r taskRepo) GetByID(_ context.Context, companyID, id string) (*domain.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t := r.find(companyID, id); t != nil {
		cp := r.hydrate(t)
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r taskRepo) Create(_ context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	task.ID = uuid.NewString()
	task.CreatedAt, task.UpdatedAt = stamp(), stamp()
	cp := *task
	cp.Subtasks = nil
	r.s.tasks = append(r.s.tasks, &cp)
	return nil
}

func (r taskRepo) Update(_ context.Context, task *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := r.find(task.CompanyID, task.ID)
	if t == nil {
		return pgx.ErrNoRows
	}
	subtasks := t.Subtasks
	*t = *task
	t.Subtasks = subtasks
	t.UpdatedAt = stamp()
	return nil
}

func (r taskRepo) UpdateStatus(_ context.Context, companyID, id string, status domain.TaskStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := r.find(companyID, id)
	if t == nil {
		return pgx.ErrNoRows
	}
	t.Status = status
	return nil
}

func (r taskRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, t := range r.s.tasks {
		if t.ID == id && t.CompanyID == companyID {
			r.s.tasks = append(r.s.tasks[:i], r.s.tasks[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r taskRepo) AddSubtask(_ context.Context, subtask *domain.Subtask) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := r.find("", subtask.TaskID)
	if t == nil {
		return fkViolation("subtasks_task_id_fkey")
	}
	subtask.ID, subtask.CreatedAt = uuid.NewString(), stamp()
	t.Subtasks = append(t.Subtasks, *subtask)
	return nil
}

func (r taskRepo) UpdateSubtaskStatus(_ context.Context, taskID, id string, status domain.TaskStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t := r.find("", taskID)
	if t == nil {
		return pgx.ErrNoRows
	}
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			t.Subtasks[i].Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

type jobRepo struct{ s *Store }

func (r jobRepo) hydrate(j *domain.JobPosting) domain.JobPosting {
	cp := *j
	cp.Applications = 0
	for _, a := range r.s.applications {
		if a.JobID == j.ID {
			cp.Applications++
		}
	}
	for _, d := range r.s.departments {
		if d.ID == j.DepartmentID {
			cp.DepartmentName = d.Name
		}
	}
	return cp
}

func (r jobRepo) List(_ context.Context, companyID string) ([]domain.JobPosting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Calls["jobs"]++
	out := []domain.JobPosting{}
	for _, j := range r.s.jobs {
		if j.CompanyID == companyID {
			out = append(out, r.hydrate(j))
		}
	}
	return out, nil
}

func (r jobRepo) GetByID(_ context.Context, companyID, id string) (*domain.JobPosting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, j := range r.s.jobs {
		if j.ID == id && j.CompanyID == companyID {
			cp := r.hydrate(j)
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r jobRepo) Create(_ context.Context, job *domain.JobPosting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	job.ID = uuid.NewString()
	job.PostedAt, job.UpdatedAt = stamp(), stamp()
	cp := *job
	r.s.jobs = append(r.s.jobs, &cp)
	return nil
}

func (r jobRepo) Update(_ context.Context, job *domain.JobPosting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, j := range r.s.jobs {
		if j.ID == job.ID && j.CompanyID == job.CompanyID {
			job.UpdatedAt = stamp()
			cp := *job
			r.s.jobs[i] = &cp
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r jobRepo) UpdateStatus(_ context.Context, companyID, id string, status domain.JobStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, j := range r.s.jobs {
		if j.ID == id && j.CompanyID == companyID {
			j.Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r jobRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, j := range r.s.jobs {
		if j.ID == id && j.CompanyID == companyID {
			r.s.jobs = append(r.s.jobs[:i], r.s.jobs[i+1:]...)
			kept := r.s.applications[:0]
			for _, a := range r.s.applications {
				if a.JobID != id {
					kept = append(kept, a)
				}
			}
			r.s.applications = kept
			return nil
		}
	}
	return pgx.ErrNoRows
}

type applicationRepo struct{ s *Store }

func (r applicationRepo) List(_ context.Context, companyID string) ([]domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Calls["applications"]++
	out := []domain.Application{}
	for _, a := range r.s.applications {
		if a.CompanyID == companyID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r applicationRepo) GetByID(_ context.Context, companyID, id string) (*domain.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.applications {
		if a.ID == id && a.CompanyID == companyID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r applicationRepo) Create(_ context.Context, app *domain.Application) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	app.ID, app.AppliedAt = uuid.NewString(), stamp()
	cp := *app
	r.s.applications = append(r.s.applications, &cp)
	return nil
}

func (r applicationRepo) UpdateStatus(_ context.Context, companyID, id string, status domain.ApplicationStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.applications {
		if a.ID == id && a.CompanyID == companyID {
			a.Status = status
			return nil
		}
	}
	return pgx.ErrNoRows
}

type paymentRepo struct{ s *Store }

func (r paymentRepo) List(_ context.Context, companyID string) ([]domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Calls["payments"]++
	out := []domain.Payment{}
	for _, p := range r.s.payments {
		if p.CompanyID == companyID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r paymentRepo) GetByID(_ context.Context, companyID, id string) (*domain.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.CompanyID == companyID && (p.ID == id || p.Key == id) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r paymentRepo) Create(_ context.Context, payment *domain.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.Key == payment.Key {
			return uniqueViolation("payments_reference_key_key")
		}
	}
	payment.ID, payment.PaidAt = uuid.NewString(), stamp()
	cp := *payment
	r.s.payments = append(r.s.payments, &cp)
	return nil
}

// Subscribe applies the payment, the company package and the role change together,
// or none of them.
func (r paymentRepo) Subscribe(_ context.Context, payment *domain.Payment, userID string, role domain.Role) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.Key == payment.Key {
			return uniqueViolation("payments_reference_key_key")
		}
	}
	var company *domain.Company
	for _, c := range r.s.companies {
		if c.ID == payment.CompanyID {
			company = c
		}
	}
	if company == nil || payment.PackageID == nil {
		return pgx.ErrNoRows
	}
	var user *domain.User
	if role != "" {
		for _, u := range r.s.users {
			if u.ID == userID && u.CompanyID == payment.CompanyID {
				user = u
			}
		}
		if user == nil {
			return pgx.ErrNoRows
		}
	}

	payment.ID, payment.PaidAt = uuid.NewString(), stamp()
	cp := *payment
	r.s.payments = append(r.s.payments, &cp)
	pkg := *payment.PackageID
	company.PackageID = &pkg
	if user != nil {
		user.Role = role
	}
	return nil
}

// CompletePayment marks a payment completed, standing in for a settlement callback.
func (s *Store) CompletePayment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID == id {
			p.Status = domain.PaymentCompleted
		}
	}
}

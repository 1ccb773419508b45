package servicetest

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/emsdev/ems-service/internal/domain"
)

type employeeRepo struct{ s *Store }

func (r employeeRepo) List(_ context.Context, companyID string) ([]domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Calls["employees"]++
	out := []domain.Employee{}
	for _, e := range r.s.employees {
		if e.CompanyID == companyID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r employeeRepo) GetByID(_ context.Context, companyID, id string) (*domain.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.ID == id && e.CompanyID == companyID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r employeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.CompanyID == employee.CompanyID && strings.EqualFold(e.Email, employee.Email) {
			return uniqueViolation("employees_company_id_email_key")
		}
	}
	employee.ID = uuid.NewString()
	employee.CreatedAt, employee.UpdatedAt = stamp(), stamp()
	cp := *employee
	r.s.employees = append(r.s.employees, &cp)
	return nil
}

func (r employeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.employees {
		if e.ID == employee.ID && e.CompanyID == employee.CompanyID {
			employee.UpdatedAt = stamp()
			cp := *employee
			r.s.employees[i] = &cp
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r employeeRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, e := range r.s.employees {
		if e.ID == id && e.CompanyID == companyID {
			r.s.employees = append(r.s.employees[:i], r.s.employees[i+1:]...)
			for _, t := range r.s.tasks {
				if t.AssigneeID != nil && *t.AssigneeID == id {
					t.AssigneeID = nil
				}
			}
			return nil
		}
	}
	return pgx.ErrNoRows
}

type departmentRepo struct{ s *Store }

func (r departmentRepo) withCount(d *domain.Department) domain.Department {
	cp := *d
	cp.EmployeeCount = 0
	for _, e := range r.s.employees {
		if e.CompanyID == d.CompanyID && e.Department == d.Name {
			cp.EmployeeCount++
		}
	}
	return cp
}

func (r departmentRepo) List(_ context.Context, companyID string) ([]domain.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Calls["departments"]++
	out := []domain.Department{}
	for _, d := range r.s.departments {
		if d.CompanyID == companyID {
			out = append(out, r.withCount(d))
		}
	}
	return out, nil
}

func (r departmentRepo) GetByID(_ context.Context, companyID, id string) (*domain.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.departments {
		if d.ID == id && d.CompanyID == companyID {
			cp := r.withCount(d)
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r departmentRepo) Create(_ context.Context, dept *domain.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.departments {
		if d.CompanyID == dept.CompanyID && d.Name == dept.Name {
			return uniqueViolation("departments_company_id_name_key")
		}
	}
	dept.ID = uuid.NewString()
	dept.CreatedAt, dept.UpdatedAt = stamp(), stamp()
	cp := *dept
	r.s.departments = append(r.s.departments, &cp)
	return nil
}

func (r departmentRepo) Update(_ context.Context, dept *domain.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, d := range r.s.departments {
		if d.ID != dept.ID && d.CompanyID == dept.CompanyID && d.Name == dept.Name {
			return uniqueViolation("departments_company_id_name_key")
		}
	}
	for _, d := range r.s.departments {
		if d.ID == dept.ID && d.CompanyID == dept.CompanyID {
			if d.Name != dept.Name {
				for _, e := range r.s.employees {
					if e.CompanyID == d.CompanyID && e.Department == d.Name {
						e.Department = dept.Name
					}
				}
				for _, p := range r.s.positions {
					if p.CompanyID == d.CompanyID && p.Department == d.Name {
						p.Department = dept.Name
					}
				}
			}
			d.Name, d.Description, d.Manager = dept.Name, dept.Description, dept.Manager
			d.UpdatedAt = stamp()
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r departmentRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tasks {
		if t.DepartmentID == id {
			return fkViolation("tasks_department_id_fkey")
		}
	}
	for _, j := range r.s.jobs {
		if j.DepartmentID == id {
			return fkViolation("job_postings_department_id_fkey")
		}
	}
	for i, d := range r.s.departments {
		if d.ID == id && d.CompanyID == companyID {
			r.s.departments = append(r.s.departments[:i], r.s.departments[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type profileRepo struct{ s *Store }

func (r profileRepo) ListSkills(_ context.Context, userID string) ([]domain.Skill, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Skill{}
	for _, v := range r.s.skills {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r profileRepo) AddSkill(_ context.Context, skill *domain.Skill) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	skill.ID, skill.CreatedAt = uuid.NewString(), stamp()
	cp := *skill
	r.s.skills = append(r.s.skills, &cp)
	return nil
}

func (r profileRepo) DeleteSkill(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, v := range r.s.skills {
		if v.ID == id && v.UserID == userID {
			r.s.skills = append(r.s.skills[:i], r.s.skills[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r profileRepo) ListEducation(_ context.Context, userID string) ([]domain.Education, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Education{}
	for _, v := range r.s.education {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r profileRepo) AddEducation(_ context.Context, edu *domain.Education) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	edu.ID, edu.CreatedAt = uuid.NewString(), stamp()
	cp := *edu
	r.s.education = append(r.s.education, &cp)
	return nil
}

func (r profileRepo) DeleteEducation(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, v := range r.s.education {
		if v.ID == id && v.UserID == userID {
			r.s.education = append(r.s.education[:i], r.s.education[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r profileRepo) ListExperience(_ context.Context, userID string) ([]domain.Experience, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Experience{}
	for _, v := range r.s.experience {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r profileRepo) AddExperience(_ context.Context, exp *domain.Experience) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	exp.ID, exp.CreatedAt = uuid.NewString(), stamp()
	cp := *exp
	r.s.experience = append(r.s.experience, &cp)
	return nil
}

func (r profileRepo) DeleteExperience(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, v := range r.s.experience {
		if v.ID == id && v.UserID == userID {
			r.s.experience = append(r.s.experience[:i], r.s.experience[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r profileRepo) ListCertifications(_ context.Context, userID string) ([]domain.Certification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []domain.Certification{}
	for _, v := range r.s.certifications {
		if v.UserID == userID {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r profileRepo) AddCertification(_ context.Context, cert *domain.Certification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cert.ID, cert.CreatedAt = uuid.NewString(), stamp()
	cp := *cert
	r.s.certifications = append(r.s.certifications, &cp)
	return nil
}

func (r profileRepo) DeleteCertification(_ context.Context, userID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, v := range r.s.certifications {
		if v.ID == id && v.UserID == userID {
			r.s.certifications = append(r.s.certifications[:i], r.s.certifications[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

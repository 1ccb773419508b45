package handlers

import (
	"time"

	"github.com/emsdev/ems-service/internal/api/dto"
	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/export"
	"github.com/emsdev/ems-service/internal/service"
)

func userResponse(u *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		CompanyID: u.CompanyID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

func companyResponse(c *domain.Company) dto.CompanyResponse {
	resp := dto.CompanyResponse{
		ID:          c.ID,
		Name:        c.Name,
		Website:     c.Website,
		Email:       c.Email,
		Phone:       c.Phone,
		Address:     c.Address,
		Description: c.Description,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.PackageID != nil {
		if pkg, ok := domain.FindPackage(*c.PackageID); ok {
			p := packageResponse(pkg)
			resp.Package = &p
		}
	}
	return resp
}

func positionResponse(p domain.Position) dto.PositionResponse {
	return dto.PositionResponse{
		ID:          p.ID,
		Title:       p.Title,
		Department:  p.Department,
		Description: p.Description,
		Salary:      p.Salary.StringFixed(2),
		CreatedAt:   p.CreatedAt,
	}
}

func employeeResponse(e domain.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		Email:      e.Email,
		Position:   e.Position,
		Department: e.Department,
		Status:     e.Status,
		JoinDate:   e.JoinDate.Format(dto.DateLayout),
		Avatar:     e.Avatar,
		CreatedAt:  e.CreatedAt,
	}
}

func departmentResponse(d domain.Department) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Manager:       d.Manager,
		EmployeeCount: d.EmployeeCount,
		CreatedAt:     d.CreatedAt,
	}
}

func taskResponse(t domain.Task, now func() time.Time) dto.TaskResponse {
	resp := dto.TaskResponse{
		ID:             t.ID,
		Title:          t.Title,
		Description:    t.Description,
		DepartmentID:   t.DepartmentID,
		DepartmentName: t.DepartmentName,
		AssigneeID:     t.AssigneeID,
		AssigneeName:   t.AssigneeName,
		Priority:       t.Priority,
		DueDate:        dto.FormatDate(t.DueDate),
		Status:         t.Status,
		Overdue:        t.Overdue(now()),
		Subtasks:       make([]dto.SubtaskResponse, 0, len(t.Subtasks)),
		CreatedAt:      t.CreatedAt,
	}
	done := 0
	for _, s := range t.Subtasks {
		if s.Status == domain.TaskCompleted {
			done++
		}
		resp.Subtasks = append(resp.Subtasks, subtaskResponse(s))
	}
	if len(t.Subtasks) > 0 {
		resp.Progress = done * 100 / len(t.Subtasks)
	}
	return resp
}

func subtaskResponse(s domain.Subtask) dto.SubtaskResponse {
	return dto.SubtaskResponse{ID: s.ID, Title: s.Title, AssigneeID: s.AssigneeID, Status: s.Status}
}

func jobResponse(j domain.JobPosting) dto.JobResponse {
	return dto.JobResponse{
		ID:             j.ID,
		Title:          j.Title,
		DepartmentID:   j.DepartmentID,
		DepartmentName: j.DepartmentName,
		Location:       j.Location,
		Type:           j.Type,
		Salary: dto.SalaryResponse{
			Min:  j.Salary.Min.StringFixed(2),
			Max:  j.Salary.Max.StringFixed(2),
			Show: j.Salary.Show,
		},
		Description:         j.Description,
		Requirements:        j.Requirements,
		ApplicationDeadline: dto.FormatDate(j.ApplicationDeadline),
		Status:              j.Status,
		Applications:        j.Applications,
		PostedAt:            j.PostedAt,
	}
}

func applicationResponse(a domain.Application) dto.ApplicationResponse {
	return dto.ApplicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		JobTitle:       a.JobTitle,
		FullName:       a.FullName,
		Email:          a.Email,
		Phone:          a.Phone,
		Resume:         a.Resume,
		CoverLetter:    a.CoverLetter,
		Experience:     a.Experience,
		CurrentCompany: a.CurrentCompany,
		NoticePeriod:   a.NoticePeriod,
		ExpectedSalary: a.ExpectedSalary,
		Status:         a.Status,
		AppliedAt:      a.AppliedAt,
	}
}

func paymentResponse(p domain.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:            p.ID,
		Key:           p.Key,
		Amount:        p.Amount.StringFixed(2),
		Method:        p.Method,
		AccountNumber: export.MaskAccount(p.AccountNumber),
		Status:        p.Status,
		Reference:     p.Reference,
		Description:   p.Description,
		PackageID:     p.PackageID,
		PaidAt:        p.PaidAt,
	}
}

func packageResponse(p domain.Package) dto.PackageResponse {
	return dto.PackageResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price.StringFixed(2),
		Billing:       p.Billing,
		Description:   p.Description,
		Features:      p.Features,
		EmployeeLimit: p.EmployeeLimit,
		Popular:       p.Popular,
	}
}

func profileResponse(p *domain.Profile) dto.ProfileResponse {
	resp := dto.ProfileResponse{
		User:           userResponse(&p.User),
		Skills:         make([]dto.SkillResponse, 0, len(p.Skills)),
		Education:      make([]dto.EducationResponse, 0, len(p.Education)),
		Experience:     make([]dto.ExperienceResponse, 0, len(p.Experience)),
		Certifications: make([]dto.CertificationResponse, 0, len(p.Certifications)),
	}
	for _, s := range p.Skills {
		resp.Skills = append(resp.Skills, skillResponse(s))
	}
	for _, e := range p.Education {
		resp.Education = append(resp.Education, educationResponse(e))
	}
	for _, e := range p.Experience {
		resp.Experience = append(resp.Experience, experienceResponse(e))
	}
	for _, c := range p.Certifications {
		resp.Certifications = append(resp.Certifications, certificationResponse(c))
	}
	return resp
}

func skillResponse(s domain.Skill) dto.SkillResponse {
	return dto.SkillResponse{ID: s.ID, Name: s.Name, Level: s.Level}
}

func educationResponse(e domain.Education) dto.EducationResponse {
	return dto.EducationResponse{
		ID:           e.ID,
		Institution:  e.Institution,
		Degree:       e.Degree,
		FieldOfStudy: e.FieldOfStudy,
		StartDate:    e.StartDate.Format(dto.DateLayout),
		EndDate:      dto.FormatDate(e.EndDate),
		Current:      e.Current,
	}
}

func experienceResponse(e domain.Experience) dto.ExperienceResponse {
	return dto.ExperienceResponse{
		ID:          e.ID,
		Company:     e.Company,
		Position:    e.Position,
		Description: e.Description,
		StartDate:   e.StartDate.Format(dto.DateLayout),
		EndDate:     dto.FormatDate(e.EndDate),
		Current:     e.Current,
	}
}

func certificationResponse(c domain.Certification) dto.CertificationResponse {
	return dto.CertificationResponse{
		ID:           c.ID,
		Name:         c.Name,
		Issuer:       c.Issuer,
		IssueDate:    c.IssueDate.Format(dto.DateLayout),
		ExpiryDate:   dto.FormatDate(c.ExpiryDate),
		CredentialID: c.CredentialID,
	}
}

func overviewResponse(o *service.Overview) dto.OverviewResponse {
	resp := dto.OverviewResponse{
		Employees:         o.Employees,
		ActiveEmployees:   o.ActiveEmployees,
		ActiveDepartments: o.ActiveDepartments,
		OpenPositions:     o.OpenPositions,
		NewHiresThisMonth: o.NewHiresThisMonth,
		NewHiresLastMonth: o.NewHiresLastMonth,
		Hires:             dto.HiresResponse{Range: string(o.Hires.Window), Since: o.Hires.Since, Count: o.Hires.Count},
		Tasks: dto.TaskTotalsResponse{
			Total:      o.Tasks.Total,
			Completed:  o.Tasks.Completed,
			InProgress: o.Tasks.InProgress,
			Overdue:    o.Tasks.Overdue,
		},
		Headcount:         make([]dto.HeadcountResponse, 0, len(o.Headcount)),
		PaymentsCompleted: o.PaymentsCompleted.StringFixed(2),
		GeneratedAt:       o.GeneratedAt,
	}
	for _, h := range o.Headcount {
		resp.Headcount = append(resp.Headcount, dto.HeadcountResponse{Department: h.Department, Employees: h.Employees})
	}
	return resp
}

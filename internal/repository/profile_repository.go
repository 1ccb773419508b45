package repository

import (
	"context"

	"github.com/emsdev/ems-service/internal/domain"
)

// ProfileRepository persists the collections a user owns on the profile page.
type ProfileRepository interface {
	ListSkills(ctx context.Context, userID string) ([]domain.Skill, error)
	AddSkill(ctx context.Context, skill *domain.Skill) error
	DeleteSkill(ctx context.Context, userID, id string) error

	ListEducation(ctx context.Context, userID string) ([]domain.Education, error)
	AddEducation(ctx context.Context, edu *domain.Education) error
	DeleteEducation(ctx context.Context, userID, id string) error

	ListExperience(ctx context.Context, userID string) ([]domain.Experience, error)
	AddExperience(ctx context.Context, exp *domain.Experience) error
	DeleteExperience(ctx context.Context, userID, id string) error

	ListCertifications(ctx context.Context, userID string) ([]domain.Certification, error)
	AddCertification(ctx context.Context, cert *domain.Certification) error
	DeleteCertification(ctx context.Context, userID, id string) error
}

type profileRepository struct {
	db DB
}

// NewProfileRepository returns a Postgres-backed implementation.
func NewProfileRepository(db DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ListSkills(ctx context.Context, userID string) ([]domain.Skill, error) {
	const query = `
        SELECT id, user_id, name, level, created_at
        FROM profile_skills WHERE user_id=$1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (domain.Skill, error) {
		var s domain.Skill
		err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Level, &s.CreatedAt)
		return s, err
	})
}

func (r *profileRepository) AddSkill(ctx context.Context, skill *domain.Skill) error {
	const query = `
        INSERT INTO profile_skills (user_id, name, level)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query, skill.UserID, skill.Name, skill.Level).Scan(&skill.ID, &skill.CreatedAt)
}

func (r *profileRepository) DeleteSkill(ctx context.Context, userID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM profile_skills WHERE id=$1 AND user_id=$2`, id, userID))
}

func (r *profileRepository) ListEducation(ctx context.Context, userID string) ([]domain.Education, error) {
	const query = `
        SELECT id, user_id, institution, degree, field_of_study, start_date, end_date, current, created_at
        FROM profile_education WHERE user_id=$1 ORDER BY start_date DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (domain.Education, error) {
		var e domain.Education
		err := row.Scan(&e.ID, &e.UserID, &e.Institution, &e.Degree, &e.FieldOfStudy,
			&e.StartDate, &e.EndDate, &e.Current, &e.CreatedAt)
		return e, err
	})
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *domain.Education) error {
	const query = `
        INSERT INTO profile_education (user_id, institution, degree, field_of_study, start_date, end_date, current)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		edu.UserID,
		edu.Institution,
		edu.Degree,
		edu.FieldOfStudy,
		edu.StartDate,
		edu.EndDate,
		edu.Current,
	).Scan(&edu.ID, &edu.CreatedAt)
}

func (r *profileRepository) DeleteEducation(ctx context.Context, userID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM profile_education WHERE id=$1 AND user_id=$2`, id, userID))
}

func (r *profileRepository) ListExperience(ctx context.Context, userID string) ([]domain.Experience, error) {
	const query = `
        SELECT id, user_id, company, position, description, start_date, end_date, current, created_at
        FROM profile_experience WHERE user_id=$1 ORDER BY start_date DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (domain.Experience, error) {
		var e domain.Experience
		err := row.Scan(&e.ID, &e.UserID, &e.Company, &e.Position, &e.Description,
			&e.StartDate, &e.EndDate, &e.Current, &e.CreatedAt)
		return e, err
	})
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *domain.Experience) error {
	const query = `
        INSERT INTO profile_experience (user_id, company, position, description, start_date, end_date, current)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		exp.UserID,
		exp.Company,
		exp.Position,
		exp.Description,
		exp.StartDate,
		exp.EndDate,
		exp.Current,
	).Scan(&exp.ID, &exp.CreatedAt)
}

func (r *profileRepository) DeleteExperience(ctx context.Context, userID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM profile_experience WHERE id=$1 AND user_id=$2`, id, userID))
}

func (r *profileRepository) ListCertifications(ctx context.Context, userID string) ([]domain.Certification, error) {
	const query = `
        SELECT id, user_id, name, issuer, issue_date, expiry_date, credential_id, created_at
        FROM profile_certifications WHERE user_id=$1 ORDER BY issue_date DESC`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(row rowScanner) (domain.Certification, error) {
		var c domain.Certification
		err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Issuer, &c.IssueDate, &c.ExpiryDate, &c.CredentialID, &c.CreatedAt)
		return c, err
	})
}

func (r *profileRepository) AddCertification(ctx context.Context, cert *domain.Certification) error {
	const query = `
        INSERT INTO profile_certifications (user_id, name, issuer, issue_date, expiry_date, credential_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`
	return r.db.QueryRow(ctx, query,
		cert.UserID,
		cert.Name,
		cert.Issuer,
		cert.IssueDate,
		cert.ExpiryDate,
		cert.CredentialID,
	).Scan(&cert.ID, &cert.CreatedAt)
}

func (r *profileRepository) DeleteCertification(ctx context.Context, userID, id string) error {
	return expectAffected(r.db.Exec(ctx, `DELETE FROM profile_certifications WHERE id=$1 AND user_id=$2`, id, userID))
}

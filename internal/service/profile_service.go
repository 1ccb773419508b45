package service

import (
	"context"
	"strings"
	"time"

	"github.com/emsdev/ems-service/internal/domain"
	"github.com/emsdev/ems-service/internal/repository"
	apperrors "github.com/emsdev/ems-service/pkg/util/errorutil"
)

// ProfileInput carries the editable account fields.
type ProfileInput struct {
	Name   string
	Email  string
	Bio    string
	Avatar string
}

// ProfileDependencies encapsulates repo requirements for the profile page.
type ProfileDependencies struct {
	UserRepo    repository.UserRepository
	ProfileRepo repository.ProfileRepository
}

// ProfileService manages the signed in user's profile.
type ProfileService struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
}

// NewProfileService constructs the service.
func NewProfileService(deps ProfileDependencies) *ProfileService {
	return &ProfileService{users: deps.UserRepo, profiles: deps.ProfileRepo}
}

// Get loads the user and every owned profile collection.
func (s *ProfileService) Get(ctx context.Context, actor Actor) (*domain.Profile, error) {
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.MapError(err, "user")
	}
	profile := &domain.Profile{User: *user}
	if profile.Skills, err = s.profiles.ListSkills(ctx, user.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if profile.Education, err = s.profiles.ListEducation(ctx, user.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if profile.Experience, err = s.profiles.ListExperience(ctx, user.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	if profile.Certifications, err = s.profiles.ListCertifications(ctx, user.ID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return profile, nil
}

// Update replaces name, email, bio and avatar.
func (s *ProfileService) Update(ctx context.Context, actor Actor, in ProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, apperrors.MapError(err, "user")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email != strings.ToLower(user.Email) {
		if other, err := s.users.GetByEmail(ctx, email); err == nil && other.ID != user.ID {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, apperrors.MapError(err)
		}
	}
	user.Name = strings.TrimSpace(in.Name)
	user.Email = email
	user.Bio = strings.TrimSpace(in.Bio)
	user.Avatar = in.Avatar
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err, "user")
	}
	return user, nil
}

// AddSkill appends a skill.
func (s *ProfileService) AddSkill(ctx context.Context, actor Actor, name string, level domain.SkillLevel) (*domain.Skill, error) {
	skill := &domain.Skill{UserID: actor.UserID, Name: strings.TrimSpace(name), Level: level}
	if err := s.profiles.AddSkill(ctx, skill); err != nil {
		return nil, apperrors.MapError(err)
	}
	return skill, nil
}

// DeleteSkill removes a skill.
func (s *ProfileService) DeleteSkill(ctx context.Context, actor Actor, id string) error {
	return apperrors.MapError(s.profiles.DeleteSkill(ctx, actor.UserID, id), "skill")
}

// AddEducation appends an education entry.
func (s *ProfileService) AddEducation(ctx context.Context, actor Actor, edu domain.Education) (*domain.Education, error) {
	if err := checkPeriod(edu.StartDate, edu.EndDate, edu.Current); err != nil {
		return nil, err
	}
	edu.UserID = actor.UserID
	if edu.Current {
		edu.EndDate = nil
	}
	if err := s.profiles.AddEducation(ctx, &edu); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &edu, nil
}

// DeleteEducation removes an education entry.
func (s *ProfileService) DeleteEducation(ctx context.Context, actor Actor, id string) error {
	return apperrors.MapError(s.profiles.DeleteEducation(ctx, actor.UserID, id), "education")
}

// AddExperience appends a work experience entry.
func (s *ProfileService) AddExperience(ctx context.Context, actor Actor, exp domain.Experience) (*domain.Experience, error) {
	if err := checkPeriod(exp.StartDate, exp.EndDate, exp.Current); err != nil {
		return nil, err
	}
	exp.UserID = actor.UserID
	if exp.Current {
		exp.EndDate = nil
	}
	if err := s.profiles.AddExperience(ctx, &exp); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &exp, nil
}

// DeleteExperience removes a work experience entry.
func (s *ProfileService) DeleteExperience(ctx context.Context, actor Actor, id string) error {
	return apperrors.MapError(s.profiles.DeleteExperience(ctx, actor.UserID, id), "experience")
}

// AddCertification appends a certification.
func (s *ProfileService) AddCertification(ctx context.Context, actor Actor, cert domain.Certification) (*domain.Certification, error) {
	if cert.ExpiryDate != nil && cert.ExpiryDate.Before(cert.IssueDate) {
		return nil, apperrors.NewValidationError("expiry date precedes issue date", map[string]any{"expiryDate": cert.ExpiryDate.Format("2006-01-02")})
	}
	cert.UserID = actor.UserID
	if err := s.profiles.AddCertification(ctx, &cert); err != nil {
		return nil, apperrors.MapError(err)
	}
	return &cert, nil
}

// DeleteCertification removes a certification.
func (s *ProfileService) DeleteCertification(ctx context.Context, actor Actor, id string) error {
	return apperrors.MapError(s.profiles.DeleteCertification(ctx, actor.UserID, id), "certification")
}

// checkPeriod requires an end date unless the entry is current, and end after start.
func checkPeriod(start time.Time, end *time.Time, current bool) error {
	if current {
		return nil
	}
	if end == nil {
		return apperrors.NewValidationError("end date is required unless current", map[string]any{"endDate": "required"})
	}
	if end.Before(start) {
		return apperrors.NewValidationError("end date precedes start date", map[string]any{"endDate": end.Format("2006-01-02")})
	}
	return nil
}

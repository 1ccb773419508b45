package dto

import "github.com/emsdev/ems-service/internal/domain"

// ProfileRequest updates the signed in account.
type ProfileRequest struct {
	Name   string `json:"name" validate:"required,min=2"`
	Email  string `json:"email" validate:"required,email"`
	Bio    string `json:"bio" validate:"max=500"`
	Avatar string `json:"avatar" validate:"max=2048"`
}

// SkillRequest adds a skill.
type SkillRequest struct {
	Name  string            `json:"name" validate:"required,max=100"`
	Level domain.SkillLevel `json:"level" validate:"required,oneof=Beginner Intermediate Advanced Expert"`
}

// EducationRequest adds an education entry. EndDate is required unless Current.
type EducationRequest struct {
	Institution  string `json:"institution" validate:"required"`
	Degree       string `json:"degree" validate:"required"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Current      bool   `json:"current"`
}

// ExperienceRequest adds a work experience entry.
type ExperienceRequest struct {
	Company     string `json:"company" validate:"required"`
	Position    string `json:"position" validate:"required"`
	Description string `json:"description" validate:"max=1000"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Current     bool   `json:"current"`
}

// CertificationRequest adds a certification.
type CertificationRequest struct {
	Name         string `json:"name" validate:"required"`
	Issuer       string `json:"issuer" validate:"required"`
	IssueDate    string `json:"issue_date" validate:"required,datetime=2006-01-02"`
	ExpiryDate   string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	CredentialID string `json:"credential_id"`
}

// ProfileResponse aggregates the account with its collections.
type ProfileResponse struct {
	User           UserResponse            `json:"user"`
	Skills         []SkillResponse         `json:"skills"`
	Education      []EducationResponse     `json:"education"`
	Experience     []ExperienceResponse    `json:"experience"`
	Certifications []CertificationResponse `json:"certifications"`
}

// SkillResponse payload.
type SkillResponse struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Level domain.SkillLevel `json:"level"`
}

// EducationResponse payload.
type EducationResponse struct {
	ID           string  `json:"id"`
	Institution  string  `json:"institution"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"field_of_study"`
	StartDate    string  `json:"start_date"`
	EndDate      *string `json:"end_date"`
	Current      bool    `json:"current"`
}

// ExperienceResponse payload.
type ExperienceResponse struct {
	ID          string  `json:"id"`
	Company     string  `json:"company"`
	Position    string  `json:"position"`
	Description string  `json:"description"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date"`
	Current     bool    `json:"current"`
}

// CertificationResponse payload.
type CertificationResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Issuer       string  `json:"issuer"`
	IssueDate    string  `json:"issue_date"`
	ExpiryDate   *string `json:"expiry_date"`
	CredentialID string  `json:"credential_id,omitempty"`
}

package domain

import "time"

// Role drives what sections of the dashboard a user can reach.
type Role string

const (
	RoleCEO      Role = "CEO"
	RoleHR       Role = "HR"
	RoleManager  Role = "Manager"
	RoleEmployee Role = "Employee"
	RoleUser     Role = "User"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCEO, RoleHR, RoleManager, RoleEmployee, RoleUser:
		return true
	}
	return false
}

// User is an account that signs into the dashboard. Every user belongs to one company.
type User struct {
	ID           string
	CompanyID    string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Bio          string
	Avatar       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SkillLevel grades a profile skill.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
	SkillExpert       SkillLevel = "Expert"
)

// Skill belongs to a user profile.
type Skill struct {
	ID        string
	UserID    string
	Name      string
	Level     SkillLevel
	CreatedAt time.Time
}

// Education is a profile entry.
type Education struct {
	ID           string
	UserID       string
	Institution  string
	Degree       string
	FieldOfStudy string
	StartDate    time.Time
	EndDate      *time.Time
	Current      bool
	CreatedAt    time.Time
}

// Experience is a profile entry.
type Experience struct {
	ID          string
	UserID      string
	Company     string
	Position    string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Current     bool
	CreatedAt   time.Time
}

// Certification is a profile entry.
type Certification struct {
	ID           string
	UserID       string
	Name         string
	Issuer       string
	IssueDate    time.Time
	ExpiryDate   *time.Time
	CredentialID string
	CreatedAt    time.Time
}

// Profile aggregates a user with its owned collections.
type Profile struct {
	User           User
	Skills         []Skill
	Education      []Education
	Experience     []Experience
	Certifications []Certification
}

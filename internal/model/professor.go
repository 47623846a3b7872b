package model

import "time"

// Professor represents a faculty account.
type Professor struct {
	ID           int       `json:"id"`
	EmployeeID   string    `json:"employee_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Department   *string   `json:"department,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProfessorLoginRequest is the payload for professor authentication.
type ProfessorLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// ProfessorLoginResponse is returned after successful professor login.
type ProfessorLoginResponse struct {
	Token     string    `json:"token"`
	Professor Professor `json:"professor"`
}

// CreateProfessorRequest is the payload for adding a faculty member.
type CreateProfessorRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,min=2,max=20"`
	FirstName  string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string  `json:"last_name" binding:"required,min=1,max=100"`
	Email      string  `json:"email" binding:"required,email,max=255"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Password   string  `json:"password" binding:"required,min=6,max=128"`
}

// ProfessorFaceRegistration is a professor's enrollment record for face
// login. One active registration per professor; re-registration replaces
// the embedding in place.
type ProfessorFaceRegistration struct {
	ID           int        `json:"id"`
	ProfessorID  int        `json:"professor_id"`
	Embedding    []float64  `json:"-"`
	IsActive     bool       `json:"is_active"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ProfessorFaceLoginRequest carries one camera frame for face-based login.
type ProfessorFaceLoginRequest struct {
	Image string `json:"image" binding:"required"`
}

// UpdateProfessorRequest is the payload for editing a faculty member.
type UpdateProfessorRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,min=2,max=20"`
	FirstName  string  `json:"first_name" binding:"required,min=1,max=100"`
	LastName   string  `json:"last_name" binding:"required,min=1,max=100"`
	Email      string  `json:"email" binding:"required,email,max=255"`
	Department *string `json:"department" binding:"omitempty,max=100"`
	Password   string  `json:"password" binding:"omitempty,min=6,max=128"`
}

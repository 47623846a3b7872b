package model

import "time"

// Student represents a student account.
type Student struct {
	ID            int       `json:"id"`
	StudentNumber string    `json:"student_number"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	SectionID     *int      `json:"section_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=4,max=20"`
	Password      string `json:"password" binding:"required,min=4,max=128"`
}

// StudentLoginResponse is returned after successful student login.
type StudentLoginResponse struct {
	Token   string  `json:"token"`
	Student Student `json:"student"`
}

// CreateStudentRequest is the payload for creating a new student account.
type CreateStudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=4,max=20"`
	FirstName     string `json:"first_name" binding:"required,min=1,max=100"`
	LastName      string `json:"last_name" binding:"required,min=1,max=100"`
	Email         string `json:"email" binding:"required,email,max=255"`
	Password      string `json:"password" binding:"required,min=6,max=128"`
	SectionID     *int   `json:"section_id"`
}

// UpdateStudentRequest is the payload for updating an existing student.
type UpdateStudentRequest struct {
	StudentNumber string `json:"student_number" binding:"required,min=4,max=20"`
	FirstName     string `json:"first_name" binding:"required,min=1,max=100"`
	LastName      string `json:"last_name" binding:"required,min=1,max=100"`
	Email         string `json:"email" binding:"required,email,max=255"`
	Password      string `json:"password" binding:"omitempty,min=6,max=128"`
	SectionID     *int   `json:"section_id"`
}

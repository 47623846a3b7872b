package model

import "time"

// Section represents a class section students enroll into.
type Section struct {
	ID           int       `json:"id"`
	SectionCode  string    `json:"section_code"`
	CourseName   string    `json:"course_name"`
	Semester     string    `json:"semester"`
	AcademicYear string    `json:"academic_year"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSectionRequest is the payload for creating or updating a section.
type CreateSectionRequest struct {
	SectionCode  string `json:"section_code" binding:"required,min=2,max=20"`
	CourseName   string `json:"course_name" binding:"required,min=2,max=200"`
	Semester     string `json:"semester" binding:"required,min=1,max=20"`
	AcademicYear string `json:"academic_year" binding:"required,min=4,max=20"`
}

package model

import "time"

// ClassSession is a scheduled weekly meeting of a section: static reference
// data created by an administrator, read-only for the attendance core.
type ClassSession struct {
	ID          int       `json:"id"`
	SectionID   int       `json:"section_id"`
	ProfessorID int       `json:"professor_id"`
	Room        string    `json:"room"`
	DayOfWeek   string    `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	MaxCapacity int       `json:"max_capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateClassSessionRequest is the payload for creating or updating a
// scheduled class.
type CreateClassSessionRequest struct {
	SectionID   int    `json:"section_id" binding:"required"`
	ProfessorID int    `json:"professor_id" binding:"required"`
	Room        string `json:"room" binding:"required,min=1,max=50"`
	DayOfWeek   string `json:"day_of_week" binding:"required,oneof=Sunday Monday Tuesday Wednesday Thursday Friday Saturday"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	MaxCapacity int    `json:"max_capacity" binding:"omitempty,min=1"`
}

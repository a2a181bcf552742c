package model

import "time"

// Student represents an enrolled student.
type Student struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Age         int       `json:"age"`
	Course      string    `json:"course"`
	DriveFolder string    `json:"drive_folder"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateStudentRequest is the payload for creating a new student.
type CreateStudentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Age         int    `json:"age" binding:"omitempty,min=3,max=120"`
	Course      string `json:"course" binding:"omitempty,max=100"`
	DriveFolder string `json:"drive_folder" binding:"omitempty,max=255"`
}

// UpdateStudentRequest is the payload for updating an existing student.
type UpdateStudentRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Age         int    `json:"age" binding:"omitempty,min=3,max=120"`
	Course      string `json:"course" binding:"omitempty,max=100"`
	DriveFolder string `json:"drive_folder" binding:"omitempty,max=255"`
}

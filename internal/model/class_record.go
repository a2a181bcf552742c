package model

import "time"

// ClassRecord is one logged tutoring session for a student.
// StudentName is denormalized so records stay printable after edits.
type ClassRecord struct {
	ID             string    `json:"id"`
	StudentID      string    `json:"student_id"`
	StudentName    string    `json:"student_name"`
	TaughtOn       time.Time `json:"taught_on"`
	ClassRange     string    `json:"class_range"`
	TypingResult   string    `json:"typing_result"`
	WritingResult  string    `json:"writing_result"`
	WritingStep    *int      `json:"writing_step,omitempty"`
	Comment        string    `json:"comment"`
	NextClassRange string    `json:"next_class_range"`
	Instructor     string    `json:"instructor"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ClassRecordRequest is the payload for creating or updating a class record.
// StudentID, ClassRange and Instructor are the required fields.
type ClassRecordRequest struct {
	StudentID      string `json:"student_id" binding:"required"`
	TaughtOn       string `json:"taught_on" binding:"required,datetime=2006-01-02"`
	ClassRange     string `json:"class_range" binding:"required,min=1,max=200"`
	TypingResult   string `json:"typing_result" binding:"omitempty"`
	WritingResult  string `json:"writing_result" binding:"omitempty,max=1000"`
	WritingStep    *int   `json:"writing_step" binding:"omitempty,min=1,max=3"`
	Comment        string `json:"comment" binding:"omitempty,max=2000"`
	NextClassRange string `json:"next_class_range" binding:"omitempty,max=200"`
	Instructor     string `json:"instructor" binding:"required,min=1,max=100"`
}

package model

import "time"

// StudentMemo is a free-form staff note attached to a student.
type StudentMemo struct {
	ID        string    `json:"id"`
	StudentID string    `json:"student_id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StudentMemoRequest is the payload for creating or updating a memo.
type StudentMemoRequest struct {
	Content string `json:"content" binding:"required,min=1,max=2000"`
	Author  string `json:"author" binding:"required,min=1,max=100"`
}

package model

import "time"

// CommentTemplate is a reusable comment snippet grouped by category.
type CommentTemplate struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentTemplateRequest is the payload for creating or updating a template.
type CommentTemplateRequest struct {
	Category string `json:"category" binding:"required,min=1,max=50"`
	Body     string `json:"body" binding:"required,min=1,max=1000"`
}

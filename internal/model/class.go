package model

import "time"

// Class is a named course grouping with a display position.
// Names are unique; SortOrder values stay dense 1..N across reorders.
type Class struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClassRequest is the payload for creating or updating a class.
type ClassRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"omitempty,max=500"`
}

// ReorderRequest carries the full ordered id list for a batched reorder.
type ReorderRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,dive,required"`
}

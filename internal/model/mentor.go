package model

import "time"

// MentorStatus represents a mentor's employment status.
type MentorStatus string

const (
	MentorActive   MentorStatus = "active"
	MentorInactive MentorStatus = "inactive"
	MentorResigned MentorStatus = "resigned"
)

// Mentor represents a tutoring staff member.
type Mentor struct {
	ID        string       `json:"id"`
	LastName  string       `json:"last_name"`
	FirstName string       `json:"first_name"`
	Email     string       `json:"email"`
	Phone     string       `json:"phone"`
	Specialty string       `json:"specialty"`
	Status    MentorStatus `json:"status"`
	JoinedOn  time.Time    `json:"joined_on"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// MentorRequest is the payload for creating or updating a mentor.
type MentorRequest struct {
	LastName  string       `json:"last_name" binding:"required,min=1,max=50"`
	FirstName string       `json:"first_name" binding:"required,min=1,max=50"`
	Email     string       `json:"email" binding:"omitempty,email,max=255"`
	Phone     string       `json:"phone" binding:"omitempty,max=30"`
	Specialty string       `json:"specialty" binding:"omitempty,max=100"`
	Status    MentorStatus `json:"status" binding:"required,oneof=active inactive resigned"`
	JoinedOn  string       `json:"joined_on" binding:"omitempty,datetime=2006-01-02"`
}

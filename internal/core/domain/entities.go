package domain

import "time"

// Role represents an authenticated caller's role in the system
type Role string

const (
	RoleStudent Role = "student"
	RoleCleaner Role = "cleaner"
	RoleAdmin   Role = "admin"
)

// RequestStatus represents the lifecycle state of a cleaning request.
// Transitions are one-directional: pending -> in_progress -> completed.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
)

// CanTransitionTo reports whether s may move to next.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusInProgress
	case StatusInProgress:
		return next == StatusCompleted
	default:
		return false
	}
}

// Student represents a student in the domain layer
type Student struct {
	ID         uint
	Email      string
	Name       string
	Block      string
	RoomNumber string
	GroupNo    string // derived "Block-Room" key, fans out request visibility to roommates
	CreatedAt  time.Time
}

// Cleaner represents a cleaning staff member
type Cleaner struct {
	ID             uint
	EmployeeID     string
	Name           string
	AssignedBlocks []string
	IsActive       bool
	CreatedAt      time.Time
}

// Admin represents an administrator account
type Admin struct {
	ID        uint
	Username  string
	CreatedAt time.Time
}

// Request represents a cleaning request in the domain layer
type Request struct {
	ID           uint
	RequestID    string // human-legible "REQ-XXXXXXXX" token, encoded in the QR proof
	UserID       uint
	Block        string
	RoomNumber   string
	GroupNo      string
	Type         string
	Instructions string
	QRCode       string // PNG data URI, payload equals RequestID for the record's lifetime
	Status       RequestStatus
	CleanerID    *uint
	AcceptedAt   *time.Time
	CompletedAt  *time.Time
	CompletedBy  *uint
	Rating       *int
	Feedback     *string
	CreatedAt    time.Time
}

package models

import (
	"time"

	"github.com/Sujal-Mishra/cleanvit/internal/core/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================================
// Accounts
// ============================================================

// Student represents the users table
type Student struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	Block      string         `gorm:"size:10;not null;index" json:"block"`
	RoomNumber string         `gorm:"size:10;not null" json:"room_number"`
	GroupNo    string         `gorm:"size:30;index" json:"group_no"`
	Role       string         `gorm:"size:20;default:'student'" json:"role"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Student) TableName() string {
	return "users"
}

// StudentResponse DTO
type StudentResponse struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Block      string `json:"block"`
	RoomNumber string `json:"roomNumber"`
	GroupNo    string `json:"group_no"`
}

func (s *Student) ToResponse() *StudentResponse {
	return &StudentResponse{
		ID:         s.ID,
		Email:      s.Email,
		Name:       s.Name,
		Block:      s.Block,
		RoomNumber: s.RoomNumber,
		GroupNo:    s.GroupNo,
	}
}

// Cleaner represents the cleaners table.
// AssignedBlocks is stored as a typed JSON array, consumed everywhere as a
// set of block labels.
type Cleaner struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	EmployeeID     string                      `gorm:"uniqueIndex;size:20;not null" json:"employee_id"`
	Name           string                      `gorm:"size:100;not null" json:"name"`
	Password       string                      `gorm:"size:255;not null" json:"-"`
	AssignedBlocks datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"assigned_blocks"`
	IsActive       bool                        `gorm:"default:true" json:"is_active"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt              `gorm:"index" json:"-"`
}

func (Cleaner) TableName() string {
	return "cleaners"
}

// CoversBlock reports whether the cleaner's assigned-blocks set contains block
func (c *Cleaner) CoversBlock(block string) bool {
	for _, b := range c.AssignedBlocks {
		if b == block {
			return true
		}
	}
	return false
}

// CleanerResponse DTO
type CleanerResponse struct {
	ID             uint      `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	Name           string    `json:"name"`
	AssignedBlocks []string  `json:"blocks"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func (c *Cleaner) ToResponse() *CleanerResponse {
	return &CleanerResponse{
		ID:             c.ID,
		EmployeeID:     c.EmployeeID,
		Name:           c.Name,
		AssignedBlocks: []string(c.AssignedBlocks),
		IsActive:       c.IsActive,
		CreatedAt:      c.CreatedAt,
	}
}

// Admin represents the admins table
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

// ============================================================
// Requests
// ============================================================

// Request represents the requests table. Status, cleaner assignment and the
// completion timestamps are mutated only through RequestRepository's
// conditional updates.
type Request struct {
	ID           uint                 `gorm:"primaryKey" json:"id"`
	RequestID    string               `gorm:"uniqueIndex;size:20;not null" json:"request_id"`
	UserID       uint                 `gorm:"not null;index" json:"user_id"`
	Block        string               `gorm:"size:10;not null;index" json:"block"`
	RoomNumber   string               `gorm:"size:10;not null" json:"room_number"`
	GroupNo      string               `gorm:"size:30;index" json:"group_no"`
	Type         string               `gorm:"size:50;not null" json:"type"`
	Instructions string               `gorm:"type:text" json:"instructions"`
	QRCode       string               `gorm:"type:text;not null" json:"qr_code"`
	Status       domain.RequestStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CleanerID    *uint                `gorm:"index" json:"cleaner_id"`
	AcceptedAt   *time.Time           `json:"accepted_at"`
	CompletedAt  *time.Time           `json:"completed_at"`
	CompletedBy  *uint                `json:"completed_by"`
	Rating       *int                 `json:"rating"`
	Feedback     *string              `gorm:"type:text" json:"feedback"`
	CreatedAt    time.Time            `gorm:"autoCreateTime;index" json:"created_at"`

	// Relations
	Student *Student `gorm:"foreignKey:UserID" json:"-"`
	Cleaner *Cleaner `gorm:"foreignKey:CleanerID" json:"-"`
}

func (Request) TableName() string {
	return "requests"
}

// RequestResponse DTO, flattened the way the dashboards consume it
type RequestResponse struct {
	ID           uint                 `json:"id"`
	RequestID    string               `json:"request_id"`
	UserID       uint                 `json:"user_id"`
	Block        string               `json:"block"`
	RoomNumber   string               `json:"room_number"`
	GroupNo      string               `json:"group_no"`
	Type         string               `json:"type"`
	Instructions string               `json:"instructions"`
	QRCode       string               `json:"qr_code"`
	Status       domain.RequestStatus `json:"status"`
	CleanerID    *uint                `json:"cleaner_id"`
	AcceptedAt   *time.Time           `json:"accepted_at"`
	CompletedAt  *time.Time           `json:"completed_at"`
	Rating       *int                 `json:"rating"`
	Feedback     *string              `json:"feedback"`
	CreatedAt    time.Time            `json:"created_at"`
	StudentName  string               `json:"student_name,omitempty"`
}

func (r *Request) ToResponse() *RequestResponse {
	resp := &RequestResponse{
		ID:           r.ID,
		RequestID:    r.RequestID,
		UserID:       r.UserID,
		Block:        r.Block,
		RoomNumber:   r.RoomNumber,
		GroupNo:      r.GroupNo,
		Type:         r.Type,
		Instructions: r.Instructions,
		QRCode:       r.QRCode,
		Status:       r.Status,
		CleanerID:    r.CleanerID,
		AcceptedAt:   r.AcceptedAt,
		CompletedAt:  r.CompletedAt,
		Rating:       r.Rating,
		Feedback:     r.Feedback,
		CreatedAt:    r.CreatedAt,
	}

	if r.Student != nil {
		resp.StudentName = r.Student.Name
	}

	return resp
}

// ============================================================
// Signup OTPs
// ============================================================

// SignupOTP represents the signup_otps table (OTP-verified signup flow)
type SignupOTP struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:100;not null;index" json:"email"`
	Code      string    `gorm:"size:10;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (SignupOTP) TableName() string {
	return "signup_otps"
}

// IsExpired reports whether the OTP is past its expiry
func (o *SignupOTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Student{},
		&Cleaner{},
		&Admin{},
		&Request{},
		&SignupOTP{},
	)
}

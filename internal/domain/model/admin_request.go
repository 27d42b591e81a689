package model

import "time"

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// AdminRequest is created together with the account at admin registration
// and reviewed exactly once. approved/rejected are terminal.
type AdminRequest struct {
	ID         int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64         `gorm:"not null;index" json:"user_id"`
	Email      string        `gorm:"not null" json:"email"`
	FullName   string        `gorm:"type:varchar(255)" json:"full_name"`
	Reason     string        `gorm:"type:text" json:"reason"`
	Status     RequestStatus `gorm:"type:varchar(20);not null;index;default:'pending'" json:"status"`
	ReviewedBy *int64        `json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time    `json:"reviewed_at,omitempty"`
	CreatedAt  time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
}

package model

import "time"

// User represents a registered account. Email doubles as the login name.
type User struct {
	ID             uint      `json:"-" gorm:"primaryKey"`
	FullName       string    `json:"full_name" gorm:"size:255;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	EmailConfirmed bool      `json:"email_confirmed" gorm:"default:false"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	IsStaff        bool      `json:"is_staff" gorm:"default:false"`
	DateJoined     time.Time `json:"date_joined" gorm:"autoCreateTime"`
}

// TableName keeps the singular table name used by the admin tooling.
func (User) TableName() string {
	return "user"
}

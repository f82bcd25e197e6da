package models

import "time"

// User represents a registered account. The password hash is never serialized.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username     string    `json:"username" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=3,max=50"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;type:varchar(255)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// PublicMap returns the user as a plain field map safe to hand to callers.
// The password hash is deliberately excluded.
func (u *User) PublicMap() map[string]interface{} {
	return map[string]interface{}{
		"id":         u.ID,
		"username":   u.Username,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

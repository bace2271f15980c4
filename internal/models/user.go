package models

import "time"

type RoleName string

const (
	RoleUser  RoleName = "USER"
	RoleAdmin RoleName = "ADMIN"
)

func (r RoleName) Valid() bool { return r == RoleUser || r == RoleAdmin }

type AppUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"username" validate:"required,min=3,max=100"`
	PasswordHash string    `gorm:"not null" json:"-"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email" validate:"omitempty,email"`
	Role         RoleName  `gorm:"type:varchar(10);not null;default:USER" json:"role"`
	Orders       []Order   `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

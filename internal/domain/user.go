package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID              string     `gorm:"primaryKey;size:36" json:"id"`
	Email           string     `gorm:"uniqueIndex;size:254;not null" json:"email"`
	PasswordHash    string     `gorm:"size:100;not null" json:"-"`
	Role            string     `gorm:"size:16;not null;default:user" json:"role"` // "user"/"admin"
	IsSuspended     bool       `gorm:"not null;default:false" json:"isSuspended"`
	SuspendedAt     *time.Time `json:"suspendedAt,omitempty"`
	SuspendedReason string     `gorm:"size:500" json:"suspendedReason,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	List(search string, offset, limit int) ([]User, int64, error)
	Update(u *User) error
	Delete(id string) error
}
